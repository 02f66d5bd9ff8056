package lending

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/library-circulation/go-api-server/internal/author"
	"github.com/library-circulation/go-api-server/internal/branch"
	"github.com/library-circulation/go-api-server/internal/catalog"
	"github.com/library-circulation/go-api-server/internal/config"
	"github.com/library-circulation/go-api-server/internal/member"
	"github.com/library-circulation/go-api-server/internal/model"
	"github.com/library-circulation/go-api-server/internal/reliability"
	"github.com/library-circulation/go-api-server/internal/shared/clock"
	"github.com/library-circulation/go-api-server/internal/shared/database"
	sharedError "github.com/library-circulation/go-api-server/internal/shared/error"
	"github.com/library-circulation/go-api-server/internal/shared/keylock"
	"github.com/library-circulation/go-api-server/internal/shared/logger"
	"github.com/library-circulation/go-api-server/internal/shared/notify"
	"gorm.io/gorm"
)

// Policy holds the tunable lending rules
type Policy struct {
	MinReliability   float64
	StoreTimeout     time.Duration
	DueWarningWindow time.Duration
}

func PolicyFromConfig(cfg config.LendingConfig) Policy {
	return Policy{
		MinReliability:   cfg.MinReliability,
		StoreTimeout:     cfg.StoreTimeout,
		DueWarningWindow: cfg.DueWarningWindow,
	}
}

// Repositories groups the stores the engine reads and mutates
type Repositories struct {
	Member       *member.MemberRepository
	Loan         *member.LoanRepository
	Subscription *member.SubscriptionRepository
	Book         *catalog.BookRepository
	Branch       *branch.BranchRepository
	Author       *author.AuthorRepository
}

// LendingService checks copies out and in, and keeps subscriptions.
// Borrow and return serialize on the member and on the (book, branch) inventory row,
// and commit member and inventory changes in one transaction.
type LendingService struct {
	db      *gorm.DB
	repos   Repositories
	locker  *keylock.Locker
	notices *notify.Dispatcher
	clock   clock.Clock
	ids     IDGen
	policy  Policy
}

func NewLendingService(
	db *gorm.DB,
	repos Repositories,
	locker *keylock.Locker,
	notices *notify.Dispatcher,
	clk clock.Clock,
	policy Policy,
) *LendingService {
	return &LendingService{
		db:      db,
		repos:   repos,
		locker:  locker,
		notices: notices,
		clock:   clk,
		ids:     ulidGen{clock: clk},
		policy:  policy,
	}
}

type notice struct {
	to      string
	subject string
	body    string
}

// Borrow checks out one copy of the book at branchID for memberID.
// Preconditions run in a fixed order and stop at the first failure.
func (s *LendingService) Borrow(ctx context.Context, isbn string, memberID, branchID uint32) (*Outcome[BorrowDetails], error) {
	ctx = logger.With(ctx, "op", "borrow", "member_id", memberID, "isbn", isbn, "branch_id", branchID)
	log := logger.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.policy.StoreTimeout)
	defer cancel()

	// resolve the inventory lock key; existence is re-checked under the lock
	if _, err := s.findMember(ctx, s.db, memberID); err != nil {
		return nil, storeError("find member", err)
	}
	book, err := s.findBook(ctx, s.db, isbn)
	if err != nil {
		return nil, storeError("find book", err)
	}

	unlock, err := s.locker.Lock(ctx, member.LockKey(memberID), catalog.InventoryLockKey(book.ID, branchID))
	if err != nil {
		log.Error("대출 lock 획득 실패", "error", err)
		return nil, database.Unavailable("lock borrow", err)
	}
	defer unlock() // 커밋 직후 해제됨, panic 경로 대비

	var (
		outcome *Outcome[BorrowDetails]
		sendTo  *notice
	)

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		// 1. member
		m, err := s.findMember(ctx, tx, memberID)
		if err != nil {
			return err
		}
		// 2. book
		b, err := s.findBook(ctx, tx, isbn)
		if err != nil {
			return err
		}
		// 3. branch + inventory entry
		inv, err := s.findInventory(ctx, tx, b.ID, branchID)
		if err != nil {
			return err
		}

		now := s.clock.Now()

		// 4. copies
		if !inv.HasAvailable() {
			outcome = Rejected[BorrowDetails](ReasonNoCopiesAvailable, noCopiesMessage(b))
			return nil
		}
		// 5. age
		if m.AgeAt(now) < b.MinAge {
			outcome = Rejected[BorrowDetails](ReasonBelowMinimumAge,
				fmt.Sprintf("Cannot borrow book, you must be at least %d years old to borrow this book.", b.MinAge))
			return nil
		}
		// 6. reliability, only once the member has loan history
		loanCount, err := s.repos.Loan.CountByMember(ctx, tx, m.ID)
		if err != nil {
			return fmt.Errorf("count loans: %w", err)
		}
		if !reliability.Eligible(loanCount, m.ReliabilityScore, s.policy.MinReliability) {
			outcome = Rejected[BorrowDetails](ReasonReliabilityTooLow,
				fmt.Sprintf("Cannot borrow book, your return rate must be at least %s%%.", formatPercent(s.policy.MinReliability)))
			return nil
		}
		// 7. policy flag
		if !b.IsBorrowable {
			outcome = Rejected[BorrowDetails](ReasonNotBorrowable, "Cannot perform operation, this book is not borrowable!")
			return nil
		}
		// 8. author
		a, err := s.repos.Author.FindByID(ctx, tx, b.AuthorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("authorID=%d %w", b.AuthorID, author.ErrAuthorNotFound)
			}
			return fmt.Errorf("find author: %w", err)
		}

		loanID, err := s.ids.New()
		if err != nil {
			return fmt.Errorf("generate loan id: %w", err)
		}
		loan := &model.Loan{
			LoanULID:   loanID,
			MemberID:   m.ID,
			BookID:     b.ID,
			BranchID:   branchID,
			BorrowedAt: now,
		}
		if err := s.repos.Loan.Create(ctx, tx, loan); err != nil {
			return fmt.Errorf("create loan: %w", err)
		}

		taken, err := s.repos.Book.TakeCopy(ctx, tx, b.ID, branchID)
		if err != nil {
			return fmt.Errorf("take copy: %w", err)
		}
		if !taken {
			return errCopyTaken
		}

		dueAt := model.DueDate(now, b.LoanDays)
		outcome = Accepted(BorrowDetails{
			LoanID:     loan.LoanULID,
			Seq:        loan.Seq,
			BookID:     b.ID,
			BranchID:   branchID,
			Title:      b.Title(),
			AuthorName: a.NameEn,
			BorrowedAt: now,
			DueAt:      dueAt,
			Message: fmt.Sprintf("Book titled %q by author %s has been successfully borrowed. Return date: %s.",
				b.TitleEn, a.NameEn, dueAt.Format(time.DateOnly)),
		})
		sendTo = &notice{
			to:      a.Email,
			subject: "Book Borrowed",
			body:    fmt.Sprintf("Your book titled %q has been borrowed by %s.", b.TitleEn, m.Name),
		}
		return nil
	})

	unlock()

	if errors.Is(err, errCopyTaken) {
		// another process emptied the shelf between our read and the guarded update
		outcome, err = Rejected[BorrowDetails](ReasonNoCopiesAvailable, noCopiesMessage(book)), nil
	}
	if err != nil {
		logFailure(log, err)
		return nil, storeError("borrow", err)
	}

	logOutcome(log, outcome)
	s.dispatch(ctx, sendTo)
	return outcome, nil
}

// Return checks a copy back in and refreshes the member's reliability score
func (s *LendingService) Return(ctx context.Context, isbn string, memberID, branchID uint32) (*Outcome[ReturnDetails], error) {
	ctx = logger.With(ctx, "op", "return", "member_id", memberID, "isbn", isbn, "branch_id", branchID)
	log := logger.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.policy.StoreTimeout)
	defer cancel()

	book, err := s.findBook(ctx, s.db, isbn)
	if err != nil {
		return nil, storeError("find book", err)
	}
	if _, err := s.findMember(ctx, s.db, memberID); err != nil {
		return nil, storeError("find member", err)
	}

	unlock, err := s.locker.Lock(ctx, member.LockKey(memberID), catalog.InventoryLockKey(book.ID, branchID))
	if err != nil {
		log.Error("반납 lock 획득 실패", "error", err)
		return nil, database.Unavailable("lock return", err)
	}
	defer unlock() // 커밋 직후 해제됨, panic 경로 대비

	var (
		outcome *Outcome[ReturnDetails]
		sendTo  *notice
	)

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		b, err := s.findBook(ctx, tx, isbn)
		if err != nil {
			return err
		}
		m, err := s.findMember(ctx, tx, memberID)
		if err != nil {
			return err
		}

		loans, err := s.repos.Loan.FindForBook(ctx, tx, m.ID, b.ID, branchID)
		if err != nil {
			return fmt.Errorf("find loans: %w", err)
		}
		loan := firstOpen(loans)
		if loan == nil {
			if len(loans) > 0 {
				outcome = Rejected[ReturnDetails](ReasonAlreadyReturned, "Book has already been returned.")
				return nil
			}
			return fmt.Errorf("memberID=%d bookID=%d branchID=%d %w", m.ID, b.ID, branchID, ErrLoanNotFound)
		}

		if _, err := s.findInventory(ctx, tx, b.ID, branchID); err != nil {
			return err
		}

		now := s.clock.Now()
		closed, err := s.repos.Loan.MarkReturned(ctx, tx, loan, now)
		if err != nil {
			return fmt.Errorf("mark returned: %w", err)
		}
		if !closed {
			return errLoanClosedAlready
		}

		onTime := !now.After(loan.DueAt(b.LoanDays))
		if onTime {
			m.OnTimeReturns++
		}
		completed, err := s.repos.Loan.CountCompleted(ctx, tx, m.ID)
		if err != nil {
			return fmt.Errorf("count completed loans: %w", err)
		}
		m.ReliabilityScore = reliability.Compute(m.OnTimeReturns, uint32(completed))
		if err := s.repos.Member.UpdateReliability(ctx, tx, m); err != nil {
			return fmt.Errorf("update reliability: %w", err)
		}

		put, err := s.repos.Book.PutBackCopy(ctx, tx, b.ID, branchID)
		if err != nil {
			return fmt.Errorf("put back copy: %w", err)
		}
		if !put {
			return fmt.Errorf("bookID=%d branchID=%d already at total copies %w", b.ID, branchID, catalog.ErrInventoryInconsistent)
		}

		outcome = Accepted(ReturnDetails{
			LoanID:           loan.LoanULID,
			BookID:           b.ID,
			BranchID:         branchID,
			ReturnedAt:       now,
			OnTime:           onTime,
			ReliabilityScore: m.ReliabilityScore,
			Message: fmt.Sprintf("Book with ISBN: %s has been successfully returned by member with ID: %d to branch ID: %d.",
				b.ISBN, m.ID, branchID),
		})
		sendTo = &notice{
			to:      m.Email,
			subject: "Book Returned",
			body:    fmt.Sprintf("Thank you for returning %q.", b.TitleEn),
		}
		return nil
	})

	unlock()

	if errors.Is(err, errLoanClosedAlready) {
		outcome, err = Rejected[ReturnDetails](ReasonAlreadyReturned, "Book has already been returned."), nil
	}
	if err != nil {
		logFailure(log, err)
		return nil, storeError("return", err)
	}

	logOutcome(log, outcome)
	s.dispatch(ctx, sendTo)
	return outcome, nil
}

// SetSubscription adds or removes the book from the member's subscriptions.
// Repeating the current state is rejected with a distinct reason and changes nothing.
func (s *LendingService) SetSubscription(ctx context.Context, isbn string, memberID uint32, subscribe bool) (*Outcome[SubscriptionDetails], error) {
	ctx = logger.With(ctx, "op", "subscription", "member_id", memberID, "isbn", isbn, "subscribe", subscribe)
	log := logger.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.policy.StoreTimeout)
	defer cancel()

	unlock, err := s.locker.Lock(ctx, member.LockKey(memberID))
	if err != nil {
		log.Error("구독 lock 획득 실패", "error", err)
		return nil, database.Unavailable("lock subscription", err)
	}
	defer unlock()

	var outcome *Outcome[SubscriptionDetails]

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		b, err := s.findBook(ctx, tx, isbn)
		if err != nil {
			return err
		}
		m, err := s.findMember(ctx, tx, memberID)
		if err != nil {
			return err
		}

		subscribed, err := s.repos.Subscription.IsExist(ctx, tx, m.ID, b.ID)
		if err != nil {
			return fmt.Errorf("check subscription: %w", err)
		}

		switch {
		case subscribe && subscribed:
			outcome = Rejected[SubscriptionDetails](ReasonAlreadySubscribed, "You are already subscribed to this book")
			return nil
		case !subscribe && !subscribed:
			outcome = Rejected[SubscriptionDetails](ReasonNotSubscribed, "You are not subscribed to this book")
			return nil
		case subscribe:
			err = s.repos.Subscription.Create(ctx, tx, &model.Subscription{MemberID: m.ID, BookID: b.ID, CreatedAt: s.clock.Now()})
		default:
			err = s.repos.Subscription.Delete(ctx, tx, m.ID, b.ID)
		}
		if err != nil {
			return fmt.Errorf("save subscription: %w", err)
		}

		message := "Successfully subscribed to the book"
		if !subscribe {
			message = "Successfully unsubscribed from the book"
		}
		outcome = Accepted(SubscriptionDetails{BookID: b.ID, Subscribed: subscribe, Message: message})
		return nil
	})
	if err != nil {
		logFailure(log, err)
		return nil, storeError("subscription", err)
	}

	logOutcome(log, outcome)
	return outcome, nil
}

// ListBorrowed returns every loan of the member with due-date flags.
// Loans whose book no longer resolves are skipped.
func (s *LendingService) ListBorrowed(ctx context.Context, memberID uint32) ([]LoanView, error) {
	ctx = logger.With(ctx, "op", "list_borrowed", "member_id", memberID)
	log := logger.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.policy.StoreTimeout)
	defer cancel()

	var views []LoanView

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		m, err := s.findMember(ctx, tx, memberID)
		if err != nil {
			return err
		}

		loans, err := s.repos.Loan.FindByMember(ctx, tx, m.ID)
		if err != nil {
			return fmt.Errorf("find loans: %w", err)
		}

		bookIDs := make([]uint32, 0, len(loans))
		seen := make(map[uint32]struct{}, len(loans))
		for _, loan := range loans {
			if _, ok := seen[loan.BookID]; !ok {
				seen[loan.BookID] = struct{}{}
				bookIDs = append(bookIDs, loan.BookID)
			}
		}
		books, err := s.repos.Book.FindByIDs(ctx, tx, bookIDs)
		if err != nil {
			return fmt.Errorf("find books: %w", err)
		}

		now := s.clock.Now()
		views = make([]LoanView, 0, len(loans))
		for i := range loans {
			b, ok := books[loans[i].BookID]
			if !ok {
				log.Warn("Book not found for loan", "loan_id", loans[i].LoanULID, "book_id", loans[i].BookID)
				continue
			}
			views = append(views, buildLoanView(&loans[i], b, now, s.policy.DueWarningWindow))
		}
		return nil
	})
	if err != nil {
		logFailure(log, err)
		return nil, storeError("list borrowed", err)
	}

	return views, nil
}

func buildLoanView(loan *model.Loan, book *model.Book, now time.Time, warningWindow time.Duration) LoanView {
	view := LoanView{
		LoanID:     loan.LoanULID,
		Seq:        loan.Seq,
		BookID:     loan.BookID,
		BranchID:   loan.BranchID,
		Title:      book.Title(),
		BorrowedAt: loan.BorrowedAt,
		IsReturned: !loan.IsOpen(),
	}
	if view.IsReturned {
		return view
	}

	dueAt := loan.DueAt(book.LoanDays)
	remaining := dueAt.Sub(now)

	daysLeft := int(math.Ceil(remaining.Hours() / 24))
	view.DaysLeft = &daysLeft
	view.WarningFlag = remaining > 0 && remaining <= warningWindow
	view.ExpiredFlag = now.After(dueAt)
	return view
}

func (s *LendingService) findMember(ctx context.Context, db *gorm.DB, memberID uint32) (*model.Member, error) {
	m, err := s.repos.Member.FindByID(ctx, db, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("memberID=%d %w", memberID, member.ErrMemberNotFound)
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return m, nil
}

func (s *LendingService) findBook(ctx context.Context, db *gorm.DB, isbn string) (*model.Book, error) {
	b, err := s.repos.Book.FindByISBN(ctx, db, isbn)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("isbn=%s %w", isbn, catalog.ErrBookNotFound)
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return b, nil
}

// findInventory checks the branch registry first, then the book's entry for that branch
func (s *LendingService) findInventory(ctx context.Context, db *gorm.DB, bookID, branchID uint32) (*model.BranchInventory, error) {
	if _, err := s.repos.Branch.FindByID(ctx, db, branchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("branchID=%d %w", branchID, branch.ErrBranchNotFound)
		}
		return nil, fmt.Errorf("find branch: %w", err)
	}

	inv, err := s.repos.Book.FindInventory(ctx, db, bookID, branchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("bookID=%d branchID=%d %w", bookID, branchID, catalog.ErrInventoryNotFound)
		}
		return nil, fmt.Errorf("find inventory: %w", err)
	}
	return inv, nil
}

// dispatch queues a notice once the transaction committed and the locks are released.
// Delivery runs in the background and its failure never reaches the caller.
func (s *LendingService) dispatch(ctx context.Context, n *notice) {
	if n == nil {
		return
	}
	s.notices.Dispatch(ctx, n.to, n.subject, n.body)
}

func logOutcome[T any](log *slog.Logger, outcome *Outcome[T]) {
	if r, rejected := outcome.Rejection(); rejected {
		log.Info("Request rejected", "reason", r.Reason)
		return
	}
	log.Info("Request accepted")
}

// logFailure logs not-found style domain errors at warn and store failures at error
func logFailure(log *slog.Logger, err error) {
	var domainErr sharedError.DomainError
	if errors.As(err, &domainErr) {
		log.Warn("Request failed", "error", err)
		return
	}
	log.Error("Store failure", "error", err)
}

// storeError passes domain errors through and marks everything else as a store failure
func storeError(op string, err error) error {
	var domainErr sharedError.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return database.Unavailable(op, err)
}

func firstOpen(loans []model.Loan) *model.Loan {
	for i := range loans {
		if loans[i].IsOpen() {
			return &loans[i]
		}
	}
	return nil
}

func noCopiesMessage(b *model.Book) string {
	return fmt.Sprintf("Cannot perform operation, book titled %q has no available copies left in the specified branch.", b.TitleEn)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%g", v)
}
