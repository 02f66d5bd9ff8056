package model

import (
	"time"
)

// BaseEntity carries the audit timestamps GORM fills on create and update
type BaseEntity struct {
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}
