package model

// Author is the responsible party notified when their book is borrowed
type Author struct {
	ID     uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	NameEn string `gorm:"column:name_en;type:VARCHAR2(100);not null"`
	NameAr string `gorm:"column:name_ar;type:VARCHAR2(100)"`
	Email  string `gorm:"column:email;type:VARCHAR2(255);not null;uniqueIndex:idx_author_email"`

	BaseEntity
}

func (*Author) TableName() string {
	return "author"
}
