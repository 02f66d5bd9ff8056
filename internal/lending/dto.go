package lending

import (
	"time"

	"github.com/library-circulation/go-api-server/internal/model"
)

type BorrowRequest struct {
	ISBN     string `json:"isbn" binding:"required,isbncode"`
	BranchID uint32 `json:"branchId" binding:"required"`
}

type ReturnRequest struct {
	ISBN     string `json:"isbn" binding:"required,isbncode"`
	BranchID uint32 `json:"branchId" binding:"required"`
}

type SubscriptionRequest struct {
	ISBN      string `json:"isbn" binding:"required,isbncode"`
	Subscribe *bool  `json:"subscribe" binding:"required"`
}

type OutcomeResponse[T any] struct {
	Status  string `json:"status"` // ACCEPTED | REJECTED
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
	Details *T     `json:"details,omitempty"`
}

type BorrowDetails struct {
	LoanID     string      `json:"loanId"`
	Seq        uint32      `json:"seq"`
	BookID     uint32      `json:"bookId"`
	BranchID   uint32      `json:"branchId"`
	Title      model.Title `json:"title"`
	AuthorName string      `json:"authorName"`
	BorrowedAt time.Time   `json:"borrowedAt"`
	DueAt      time.Time   `json:"dueAt"`
	Message    string      `json:"message"`
}

type ReturnDetails struct {
	LoanID           string    `json:"loanId"`
	BookID           uint32    `json:"bookId"`
	BranchID         uint32    `json:"branchId"`
	ReturnedAt       time.Time `json:"returnedAt"`
	OnTime           bool      `json:"onTime"`
	ReliabilityScore float64   `json:"reliabilityScore"`
	Message          string    `json:"message"`
}

type SubscriptionDetails struct {
	BookID     uint32 `json:"bookId"`
	Subscribed bool   `json:"subscribed"`
	Message    string `json:"message"`
}

// LoanView is one row of the borrowed-books view
type LoanView struct {
	LoanID      string      `json:"loanId"`
	Seq         uint32      `json:"seq"`
	BookID      uint32      `json:"bookId"`
	BranchID    uint32      `json:"branchId"`
	Title       model.Title `json:"title"`
	BorrowedAt  time.Time   `json:"borrowedAt"`
	IsReturned  bool        `json:"isReturned"`
	DaysLeft    *int        `json:"daysLeft"`
	WarningFlag bool        `json:"warningFlag"`
	ExpiredFlag bool        `json:"expiredFlag"`
}

type ListBorrowedResponse struct {
	Loans []LoanView `json:"loans"`
}
