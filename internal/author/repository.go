package author

import (
	"context"

	"github.com/library-circulation/go-api-server/internal/model"
	"gorm.io/gorm"
)

type AuthorRepository struct{}

func NewAuthorRepository() *AuthorRepository {
	return &AuthorRepository{}
}

func (r *AuthorRepository) FindByID(ctx context.Context, db *gorm.DB, ID uint32) (*model.Author, error) {
	var author model.Author
	err := db.WithContext(ctx).Where("id = ?", ID).First(&author).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}
