package member

import (
	"context"

	"github.com/library-circulation/go-api-server/internal/model"
	"gorm.io/gorm"
)

type SubscriptionRepository struct{}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{}
}

func (r *SubscriptionRepository) IsExist(ctx context.Context, db *gorm.DB, memberID, bookID uint32) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("member_id = ? AND book_id = ?", memberID, bookID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, db *gorm.DB, subscription *model.Subscription) error {
	return db.WithContext(ctx).Create(subscription).Error
}

func (r *SubscriptionRepository) Delete(ctx context.Context, db *gorm.DB, memberID, bookID uint32) error {
	return db.WithContext(ctx).
		Where("member_id = ? AND book_id = ?", memberID, bookID).
		Delete(&model.Subscription{}).Error
}

func (r *SubscriptionRepository) DeleteByMember(ctx context.Context, db *gorm.DB, memberID uint32) error {
	return db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Delete(&model.Subscription{}).Error
}

func (r *SubscriptionRepository) CountByMember(ctx context.Context, db *gorm.DB, memberID uint32) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("member_id = ?", memberID).
		Count(&count).Error
	return count, err
}
