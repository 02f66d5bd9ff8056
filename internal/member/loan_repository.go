package member

import (
	"context"
	"time"

	"github.com/library-circulation/go-api-server/internal/model"
	"gorm.io/gorm"
)

// LoanRepository gives access to a member's loan records addressed by (member_id, seq)
type LoanRepository struct{}

func NewLoanRepository() *LoanRepository {
	return &LoanRepository{}
}

// Create appends loan at the next seq of its member
func (r *LoanRepository) Create(ctx context.Context, db *gorm.DB, loan *model.Loan) error {
	var maxSeq uint32
	err := db.WithContext(ctx).
		Model(&model.Loan{}).
		Where("member_id = ?", loan.MemberID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&maxSeq).Error
	if err != nil {
		return err
	}

	loan.Seq = maxSeq + 1
	return db.WithContext(ctx).Create(loan).Error
}

func (r *LoanRepository) FindByMember(ctx context.Context, db *gorm.DB, memberID uint32) ([]model.Loan, error) {
	var loans []model.Loan
	err := db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("seq ASC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// FindForBook lists the member's loans of one book at one branch, newest first
func (r *LoanRepository) FindForBook(ctx context.Context, db *gorm.DB, memberID, bookID, branchID uint32) ([]model.Loan, error) {
	var loans []model.Loan
	err := db.WithContext(ctx).
		Where("member_id = ? AND book_id = ? AND branch_id = ?", memberID, bookID, branchID).
		Order("seq DESC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// MarkReturned sets the return timestamp once; false means the loan was no longer open
func (r *LoanRepository) MarkReturned(ctx context.Context, db *gorm.DB, loan *model.Loan, at time.Time) (bool, error) {
	result := db.WithContext(ctx).
		Model(&model.Loan{}).
		Where("id = ? AND returned_at IS NULL", loan.ID).
		Update("returned_at", at)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected != 1 {
		return false, nil
	}
	loan.ReturnedAt = &at
	return true, nil
}

func (r *LoanRepository) CountByMember(ctx context.Context, db *gorm.DB, memberID uint32) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Loan{}).
		Where("member_id = ?", memberID).
		Count(&count).Error
	return count, err
}

func (r *LoanRepository) CountCompleted(ctx context.Context, db *gorm.DB, memberID uint32) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Loan{}).
		Where("member_id = ? AND returned_at IS NOT NULL", memberID).
		Count(&count).Error
	return count, err
}

func (r *LoanRepository) CountOpen(ctx context.Context, db *gorm.DB, memberID uint32) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Loan{}).
		Where("member_id = ? AND returned_at IS NULL", memberID).
		Count(&count).Error
	return count, err
}
