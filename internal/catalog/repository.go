package catalog

import (
	"context"
	"fmt"

	"github.com/library-circulation/go-api-server/internal/model"
	"gorm.io/gorm"
)

// BookRepository owns book records and their per-branch inventory rows
type BookRepository struct{}

func NewBookRepository() *BookRepository {
	return &BookRepository{}
}

func (r *BookRepository) FindByISBN(ctx context.Context, db *gorm.DB, isbn string) (*model.Book, error) {
	var book model.Book
	err := db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByIDs loads books keyed by id; ids without a row are simply absent
func (r *BookRepository) FindByIDs(ctx context.Context, db *gorm.DB, IDs []uint32) (map[uint32]*model.Book, error) {
	books := make(map[uint32]*model.Book, len(IDs))
	if len(IDs) == 0 {
		return books, nil
	}

	var rows []model.Book
	if err := db.WithContext(ctx).Where("id IN ?", IDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		books[rows[i].ID] = &rows[i]
	}
	return books, nil
}

// Create inserts a book together with its inventory rows
func (r *BookRepository) Create(ctx context.Context, db *gorm.DB, book *model.Book) error {
	for _, inv := range book.Inventory {
		if !inv.Valid() {
			return fmt.Errorf("branch %d: available %d / total %d: %w",
				inv.BranchID, inv.AvailableCopies, inv.TotalCopies, ErrInventoryInconsistent)
		}
	}
	return db.WithContext(ctx).Create(book).Error
}

func (r *BookRepository) FindInventory(ctx context.Context, db *gorm.DB, bookID, branchID uint32) (*model.BranchInventory, error) {
	var inv model.BranchInventory
	err := db.WithContext(ctx).
		Where("book_id = ? AND branch_id = ?", bookID, branchID).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// TakeCopy decrements available copies only while at least one remains.
// Returns false when no row matched (no copy left or no inventory row).
func (r *BookRepository) TakeCopy(ctx context.Context, db *gorm.DB, bookID, branchID uint32) (bool, error) {
	result := db.WithContext(ctx).
		Model(&model.BranchInventory{}).
		Where("book_id = ? AND branch_id = ? AND available_copies > 0", bookID, branchID).
		Updates(map[string]interface{}{
			"available_copies": gorm.Expr("available_copies - 1"),
			"version":          gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// PutBackCopy increments available copies only while below total copies.
// Returns false when the row is already full, which means counters and loans diverged.
func (r *BookRepository) PutBackCopy(ctx context.Context, db *gorm.DB, bookID, branchID uint32) (bool, error) {
	result := db.WithContext(ctx).
		Model(&model.BranchInventory{}).
		Where("book_id = ? AND branch_id = ? AND available_copies < total_copies", bookID, branchID).
		Updates(map[string]interface{}{
			"available_copies": gorm.Expr("available_copies + 1"),
			"version":          gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
