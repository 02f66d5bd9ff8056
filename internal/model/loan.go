package model

import "time"

// Loan is one borrow-to-return lifecycle of a (member, book, branch) triple.
// Loans are addressed by (member_id, seq) and never deleted.
type Loan struct {
	ID       uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	LoanULID string `gorm:"column:loan_ulid;type:VARCHAR2(26);not null;uniqueIndex:idx_loan_ulid"`

	MemberID uint32 `gorm:"column:member_id;not null;uniqueIndex:idx_loan_member_seq,priority:1;index:idx_loan_member_book,priority:1"`
	Seq      uint32 `gorm:"column:seq;not null;uniqueIndex:idx_loan_member_seq,priority:2"` // loan index per member
	BookID   uint32 `gorm:"column:book_id;not null;index:idx_loan_member_book,priority:2"`
	BranchID uint32 `gorm:"column:branch_id;not null"`

	BorrowedAt time.Time  `gorm:"column:borrowed_at;not null"`
	ReturnedAt *time.Time `gorm:"column:returned_at"` // nil while open
}

func (*Loan) TableName() string {
	return "loan"
}

func (l *Loan) IsOpen() bool {
	return l.ReturnedAt == nil
}

// DueAt is the borrow time plus the book's loan duration in calendar days
func (l *Loan) DueAt(loanDays int) time.Time {
	return DueDate(l.BorrowedAt, loanDays)
}

// DueDate computes the due date of a loan borrowed at borrowedAt
func DueDate(borrowedAt time.Time, loanDays int) time.Time {
	return borrowedAt.AddDate(0, 0, loanDays)
}
