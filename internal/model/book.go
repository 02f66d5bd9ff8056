package model

import "time"

// Book is a catalog entry. Physical copies live in BranchInventory.
type Book struct {
	ID   uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	ISBN string `gorm:"column:isbn;type:VARCHAR2(32);not null;uniqueIndex:idx_book_isbn"`

	// Bilingual text (ar optional)
	TitleEn       string `gorm:"column:title_en;type:VARCHAR2(255);not null"`
	TitleAr       string `gorm:"column:title_ar;type:VARCHAR2(255)"`
	DescriptionEn string `gorm:"column:description_en;type:VARCHAR2(2000);not null"`
	DescriptionAr string `gorm:"column:description_ar;type:VARCHAR2(2000)"`
	Genre         string `gorm:"column:genre;type:VARCHAR2(50);not null"`

	// Borrowing policy
	IsBorrowable bool `gorm:"column:is_borrowable;not null;default:true"`
	LoanDays     int  `gorm:"column:loan_days;not null;default:14"`
	MinAge       int  `gorm:"column:min_age;not null;default:0"`

	IsPublished   bool      `gorm:"column:is_published;not null;default:false"`
	PublishedAt   time.Time `gorm:"column:published_at"`
	CoverImageURL string    `gorm:"column:cover_image_url;type:VARCHAR2(500)"`

	AuthorID uint32 `gorm:"column:author_id;not null;index:idx_book_author"`

	Inventory []BranchInventory `gorm:"foreignKey:BookID"`

	BaseEntity
}

func (*Book) TableName() string {
	return "book"
}

// Title is the bilingual title pair
type Title struct {
	En string `json:"en"`
	Ar string `json:"ar,omitempty"`
}

func (b *Book) Title() Title {
	return Title{En: b.TitleEn, Ar: b.TitleAr}
}
