package branch

import (
	"context"

	"github.com/library-circulation/go-api-server/internal/model"
	"gorm.io/gorm"
)

// BranchRepository is the read side of the branch registry
type BranchRepository struct{}

func NewBranchRepository() *BranchRepository {
	return &BranchRepository{}
}

func (r *BranchRepository) FindByID(ctx context.Context, db *gorm.DB, ID uint32) (*model.Branch, error) {
	var branch model.Branch
	err := db.WithContext(ctx).Where("id = ?", ID).First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}
