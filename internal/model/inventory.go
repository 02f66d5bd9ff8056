package model

// BranchInventory is the per-branch copy count of a book.
// Invariant: 0 <= AvailableCopies <= TotalCopies.
type BranchInventory struct {
	BookID          uint32 `gorm:"column:book_id;primaryKey;autoIncrement:false"`
	BranchID        uint32 `gorm:"column:branch_id;primaryKey;autoIncrement:false"`
	TotalCopies     int    `gorm:"column:total_copies;not null;check:chk_inventory_total,total_copies >= 0"`
	AvailableCopies int    `gorm:"column:available_copies;not null;check:chk_inventory_available,available_copies >= 0 AND available_copies <= total_copies"`
	Version         uint32 `gorm:"column:version;not null;default:0"`

	Branch *Branch `gorm:"foreignKey:BranchID;constraint:OnDelete:RESTRICT"`

	BaseEntity
}

func (*BranchInventory) TableName() string {
	return "branch_inventory"
}

func (i *BranchInventory) HasAvailable() bool {
	return i.AvailableCopies > 0
}

// Valid reports whether the counters satisfy the inventory invariant
func (i *BranchInventory) Valid() bool {
	return i.AvailableCopies >= 0 && i.AvailableCopies <= i.TotalCopies
}
