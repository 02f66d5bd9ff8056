package model

type Branch struct {
	ID      uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	Name    string `gorm:"column:name;type:VARCHAR2(100);not null"`
	Address string `gorm:"column:address;type:VARCHAR2(255);not null"`
	City    string `gorm:"column:city;type:VARCHAR2(100);not null"`

	BaseEntity
}

func (*Branch) TableName() string {
	return "branch"
}
