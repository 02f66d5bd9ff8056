package member

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/library-circulation/go-api-server/internal/shared/clock"
	"github.com/library-circulation/go-api-server/internal/shared/database"
	"github.com/library-circulation/go-api-server/internal/shared/keylock"
	"github.com/library-circulation/go-api-server/internal/shared/logger"
	"github.com/library-circulation/go-api-server/internal/shared/notify"
	"gorm.io/gorm"
)

const (
	passcodeMin = 100000
	passcodeMax = 999999
)

type MemberService struct {
	db                     *gorm.DB
	memberRepository       *MemberRepository
	loanRepository         *LoanRepository
	subscriptionRepository *SubscriptionRepository
	locker                 *keylock.Locker
	sender                 notify.Sender
	clock                  clock.Clock
	passcodeTTL            time.Duration
}

func NewMemberService(
	db *gorm.DB,
	memberRepository *MemberRepository,
	loanRepository *LoanRepository,
	subscriptionRepository *SubscriptionRepository,
	locker *keylock.Locker,
	sender notify.Sender,
	clk clock.Clock,
	passcodeTTL time.Duration,
) *MemberService {
	return &MemberService{
		db:                     db,
		memberRepository:       memberRepository,
		loanRepository:         loanRepository,
		subscriptionRepository: subscriptionRepository,
		locker:                 locker,
		sender:                 sender,
		clock:                  clk,
		passcodeTTL:            passcodeTTL,
	}
}

func (s *MemberService) GetProfile(ctx context.Context, memberID uint32) (*GetProfileResponse, error) {
	var response *GetProfileResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.memberRepository.FindByID(ctx, tx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("회원을 찾을 수 없습니다 memberID=%d %w", memberID, ErrMemberNotFound)
			}
			return fmt.Errorf("회원 조회 실패: %w", err)
		}

		openLoans, err := s.loanRepository.CountOpen(ctx, tx, memberID)
		if err != nil {
			return fmt.Errorf("대출 건수 조회 실패: %w", err)
		}
		subscriptions, err := s.subscriptionRepository.CountByMember(ctx, tx, memberID)
		if err != nil {
			return fmt.Errorf("구독 건수 조회 실패: %w", err)
		}

		response = &GetProfileResponse{
			ID:               member.ID,
			Name:             member.Name,
			Username:         member.Username,
			Email:            member.Email,
			BirthDate:        member.BirthDate.Format(time.DateOnly),
			EmailVerified:    member.EmailVerified,
			OnTimeReturns:    member.OnTimeReturns,
			ReliabilityScore: member.ReliabilityScore,
			OpenLoans:        openLoans,
			Subscriptions:    subscriptions,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return response, nil
}

// DeleteMember removes a member who has no open loans. Loan history is kept.
func (s *MemberService) DeleteMember(ctx context.Context, memberID uint32) error {
	log := logger.FromContext(ctx)

	unlock, err := s.locker.Lock(ctx, LockKey(memberID))
	if err != nil {
		log.Error("회원 lock 획득 실패", "member_id", memberID, "error", err)
		return database.Unavailable("lock member", err)
	}
	defer unlock()

	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := s.memberRepository.FindByID(ctx, tx, memberID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("회원을 찾을 수 없습니다 memberID=%d %w", memberID, ErrMemberNotFound)
			}
			return fmt.Errorf("회원 조회 실패: %w", err)
		}

		openLoans, err := s.loanRepository.CountOpen(ctx, tx, memberID)
		if err != nil {
			return fmt.Errorf("대출 건수 조회 실패: %w", err)
		}
		if openLoans > 0 {
			log.Warn("미반납 도서가 있어 회원 삭제 거부", "member_id", memberID, "open_loans", openLoans)
			return fmt.Errorf("open loans=%d %w", openLoans, ErrMemberHasOpenLoans)
		}

		if err := s.subscriptionRepository.DeleteByMember(ctx, tx, memberID); err != nil {
			return fmt.Errorf("구독 삭제 실패: %w", err)
		}
		if err := s.memberRepository.Delete(ctx, tx, memberID); err != nil {
			return fmt.Errorf("회원 삭제 실패: %w", err)
		}

		log.Info("Member deleted", "member_id", memberID)
		return nil
	})
}

// IssuePasscode stores a fresh six digit passcode on the member and mails it
func (s *MemberService) IssuePasscode(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	code, err := generatePasscode()
	if err != nil {
		log.Error("Failed to generate passcode", "error", err)
		return fmt.Errorf("generate passcode: %w", err)
	}
	expiry := s.clock.Now().Add(s.passcodeTTL)

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.memberRepository.FindByEmail(ctx, tx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn("인증 코드 발급 실패 - member email not found", "email", logger.MaskEmail(email))
				return fmt.Errorf("error %w", ErrMemberNotFound)
			}
			return fmt.Errorf("회원 조회 실패: %w", err)
		}

		member.SetPasscode(code, expiry)
		if err := s.memberRepository.UpdatePasscode(ctx, tx, member); err != nil {
			return fmt.Errorf("인증 코드 저장 실패: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	notify.SendBestEffort(ctx, s.sender, email,
		"Your OTP Code",
		fmt.Sprintf("Your OTP is %s. It expires in %d minutes.", code, int(s.passcodeTTL.Minutes())),
	)

	log.Info("Passcode issued", "email", logger.MaskEmail(email), "expires_at", expiry)
	return nil
}

// VerifyPasscode marks the email verified when code matches and has not expired
func (s *MemberService) VerifyPasscode(ctx context.Context, email, code string) error {
	log := logger.FromContext(ctx)

	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.memberRepository.FindByEmailAndPasscode(ctx, tx, email, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn("인증 코드 불일치", "email", logger.MaskEmail(email))
				return fmt.Errorf("error %w", ErrInvalidPasscode)
			}
			return fmt.Errorf("회원 조회 실패: %w", err)
		}

		if member.PasscodeExpired(s.clock.Now()) {
			log.Warn("인증 코드 만료", "email", logger.MaskEmail(email))
			return fmt.Errorf("error %w", ErrPasscodeExpired)
		}

		member.MarkVerified()
		if err := s.memberRepository.ConsumePasscode(ctx, tx, member, code); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn("인증 코드 이미 사용됨", "email", logger.MaskEmail(email))
				return fmt.Errorf("error %w", ErrInvalidPasscode)
			}
			return fmt.Errorf("인증 상태 저장 실패: %w", err)
		}

		log.Info("Email verified", "email", logger.MaskEmail(email))
		return nil
	})
}

func generatePasscode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(passcodeMax-passcodeMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+passcodeMin), nil
}
