package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/library-circulation/go-api-server/internal/catalog"
	"github.com/library-circulation/go-api-server/internal/model"
	"github.com/library-circulation/go-api-server/internal/shared/notify"
	"gorm.io/gorm"
)

var fixtureSeq atomic.Uint32

// FixedClock is a settable clock for due-date and passcode tests
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SentNotice is one notice captured by RecordingSender
type SentNotice struct {
	To      string
	Subject string
	Body    string
}

// ErrSendFailed is returned by RecordingSender when Fail is set
var ErrSendFailed = errors.New("testutil: send failed")

// RecordingSender captures notices; with Fail set every send errors after recording
type RecordingSender struct {
	mu    sync.Mutex
	Fail  bool
	Gate  <-chan struct{} // non-nil면 닫힐 때까지 전송 지연
	notes []SentNotice
}

func NewRecordingSender() *RecordingSender {
	return &RecordingSender{}
}

func (s *RecordingSender) Send(ctx context.Context, to, subject, body string) error {
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, SentNotice{To: to, Subject: subject, Body: body})
	if s.Fail {
		return ErrSendFailed
	}
	return nil
}

func (s *RecordingSender) Sent() []SentNotice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentNotice(nil), s.notes...)
}

var _ notify.Sender = (*RecordingSender)(nil)

// CreateMember inserts a member born on birthDate
func CreateMember(t *testing.T, db *gorm.DB, birthDate time.Time) *model.Member {
	t.Helper()

	n := fixtureSeq.Add(1)
	m := model.NewMember(
		fmt.Sprintf("Member %d", n),
		fmt.Sprintf("member%d", n),
		fmt.Sprintf("member%d@example.com", n),
		birthDate,
		"$2a$10$hashedpasswordplaceholder",
	)
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("Failed to create member: %v", err)
	}
	return m
}

func CreateBranch(t *testing.T, db *gorm.DB) *model.Branch {
	t.Helper()

	n := fixtureSeq.Add(1)
	b := &model.Branch{
		Name:    fmt.Sprintf("Branch %d", n),
		Address: fmt.Sprintf("%d Library Street", n),
		City:    "Riyadh",
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("Failed to create branch: %v", err)
	}
	return b
}

func CreateAuthor(t *testing.T, db *gorm.DB) *model.Author {
	t.Helper()

	n := fixtureSeq.Add(1)
	a := &model.Author{
		NameEn: fmt.Sprintf("Author %d", n),
		Email:  fmt.Sprintf("author%d@example.com", n),
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("Failed to create author: %v", err)
	}
	return a
}

// BookOption tweaks a book fixture before insert
type BookOption func(*model.Book)

func WithMinAge(age int) BookOption {
	return func(b *model.Book) { b.MinAge = age }
}

func WithLoanDays(days int) BookOption {
	return func(b *model.Book) { b.LoanDays = days }
}

func NotBorrowable() BookOption {
	return func(b *model.Book) { b.IsBorrowable = false }
}

// WithCopies stocks the book at branchID with total copies, all available
func WithCopies(branchID uint32, total int) BookOption {
	return func(b *model.Book) {
		b.Inventory = append(b.Inventory, model.BranchInventory{
			BookID:          b.ID,
			BranchID:        branchID,
			TotalCopies:     total,
			AvailableCopies: total,
		})
	}
}

// CreateBook inserts a borrowable 14-day book by authorID with a unique ISBN
func CreateBook(t *testing.T, db *gorm.DB, authorID uint32, opts ...BookOption) *model.Book {
	t.Helper()

	n := fixtureSeq.Add(1)
	b := &model.Book{
		ISBN:          fmt.Sprintf("ISBN 978-0-%05d-%03d-7", n, n%1000),
		TitleEn:       fmt.Sprintf("Book %d", n),
		DescriptionEn: "A book for tests",
		Genre:         "Fiction",
		IsBorrowable:  true,
		LoanDays:      14,
		IsPublished:   true,
		AuthorID:      authorID,
	}
	for _, opt := range opts {
		opt(b)
	}

	// gorm skips zero-value fields that carry a default tag
	borrowable := b.IsBorrowable
	if err := catalog.NewBookRepository().Create(context.Background(), db, b); err != nil {
		t.Fatalf("Failed to create book: %v", err)
	}
	if !borrowable {
		if err := db.Model(b).Update("is_borrowable", false).Error; err != nil {
			t.Fatalf("Failed to update book: %v", err)
		}
	}
	return b
}

// Inventory reads the current counters of (bookID, branchID)
func Inventory(t *testing.T, db *gorm.DB, bookID, branchID uint32) model.BranchInventory {
	t.Helper()

	var inv model.BranchInventory
	if err := db.Where("book_id = ? AND branch_id = ?", bookID, branchID).First(&inv).Error; err != nil {
		t.Fatalf("Failed to read inventory: %v", err)
	}
	return inv
}

// ReloadMember reads the member row again
func ReloadMember(t *testing.T, db *gorm.DB, memberID uint32) model.Member {
	t.Helper()

	var m model.Member
	if err := db.First(&m, memberID).Error; err != nil {
		t.Fatalf("Failed to reload member: %v", err)
	}
	return m
}
