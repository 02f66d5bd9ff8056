package model

import "time"

// Subscription marks a member's interest in a book. Keyed by (member_id, book_id).
type Subscription struct {
	MemberID  uint32    `gorm:"column:member_id;primaryKey;autoIncrement:false"`
	BookID    uint32    `gorm:"column:book_id;primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (*Subscription) TableName() string {
	return "subscription"
}
