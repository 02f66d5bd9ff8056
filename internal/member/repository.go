package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/library-circulation/go-api-server/internal/model"
	"gorm.io/gorm"
)

type MemberRepository struct{}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

// IsExist reports whether the username or the email is already taken
func (m *MemberRepository) IsExist(ctx context.Context, db *gorm.DB, username, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Member{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (m *MemberRepository) Create(ctx context.Context, db *gorm.DB, member *model.Member) error {
	if err := db.WithContext(ctx).Create(member).Error; err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

// UpdatePasscode writes only the passcode columns; reliability counters belong to the lending engine
func (m *MemberRepository) UpdatePasscode(ctx context.Context, db *gorm.DB, member *model.Member) error {
	result := db.WithContext(ctx).
		Model(&model.Member{}).
		Where("id = ?", member.ID).
		Updates(map[string]interface{}{
			"otp":        member.OTP,
			"otp_expiry": member.OTPExpiry,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ConsumePasscode writes the verified state of member, only while code is still the stored passcode
func (m *MemberRepository) ConsumePasscode(ctx context.Context, db *gorm.DB, member *model.Member, code string) error {
	result := db.WithContext(ctx).
		Model(&model.Member{}).
		Where("id = ? AND otp = ?", member.ID, code).
		Updates(map[string]interface{}{
			"email_verified": member.EmailVerified,
			"otp":            member.OTP,
			"otp_expiry":     member.OTPExpiry,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateReliability writes the return counters recomputed by the lending engine
func (m *MemberRepository) UpdateReliability(ctx context.Context, db *gorm.DB, member *model.Member) error {
	result := db.WithContext(ctx).
		Model(&model.Member{}).
		Where("id = ?", member.ID).
		Updates(map[string]interface{}{
			"on_time_returns":   member.OnTimeReturns,
			"reliability_score": member.ReliabilityScore,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (m *MemberRepository) Delete(ctx context.Context, db *gorm.DB, ID uint32) error {
	return db.WithContext(ctx).Delete(&model.Member{}, ID).Error
}

func (m *MemberRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("email = ?", email).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (m *MemberRepository) FindByEmailAndPasscode(ctx context.Context, db *gorm.DB, email, code string) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("email = ? AND otp = ?", email, code).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (m *MemberRepository) FindByID(ctx context.Context, db *gorm.DB, ID uint32) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("id = ?", ID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func translateUniqueViolation(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%v: %w", err, ErrMemberAlreadyExists)
	}
	return err
}
