package router

import (
	"github.com/gin-gonic/gin"
	"github.com/library-circulation/go-api-server/internal/auth"
	"github.com/library-circulation/go-api-server/internal/author"
	"github.com/library-circulation/go-api-server/internal/branch"
	"github.com/library-circulation/go-api-server/internal/catalog"
	"github.com/library-circulation/go-api-server/internal/config"
	"github.com/library-circulation/go-api-server/internal/lending"
	"github.com/library-circulation/go-api-server/internal/member"
	"github.com/library-circulation/go-api-server/internal/meta"
	"github.com/library-circulation/go-api-server/internal/shared/clock"
	"github.com/library-circulation/go-api-server/internal/shared/database"
	"github.com/library-circulation/go-api-server/internal/shared/keylock"
	"github.com/library-circulation/go-api-server/internal/shared/middleware"
	"github.com/library-circulation/go-api-server/internal/shared/notify"
	"github.com/library-circulation/go-api-server/internal/shared/token"
)

// Runtime exposes the long-lived lending components the process drains on shutdown
type Runtime struct {
	Locker  *keylock.Locker
	Notices *notify.Dispatcher
}

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB) *Runtime {
	// shared services
	tokenManager := token.NewJWTManager(cfg)
	locker := keylock.New() // shared by lending and member deletion
	sender := notify.New(cfg)
	notices := notify.NewDispatcher(sender, cfg.Mail.SendTimeout)
	clk := clock.New()

	// Meta handler (health check)
	metaHandler := meta.NewHandler(cfg, db, locker, notices)
	router.GET("/health", metaHandler.Health)

	// repository
	memberRepository := member.NewMemberRepository()
	loanRepository := member.NewLoanRepository()
	subscriptionRepository := member.NewSubscriptionRepository()
	bookRepository := catalog.NewBookRepository()
	branchRepository := branch.NewBranchRepository()
	authorRepository := author.NewAuthorRepository()

	// service
	authService := auth.NewAuthService(db.DB, memberRepository, tokenManager)
	memberService := member.NewMemberService(
		db.DB,
		memberRepository,
		loanRepository,
		subscriptionRepository,
		locker,
		sender,
		clk,
		cfg.Lending.PasscodeTTL,
	)
	lendingService := lending.NewLendingService(
		db.DB,
		lending.Repositories{
			Member:       memberRepository,
			Loan:         loanRepository,
			Subscription: subscriptionRepository,
			Book:         bookRepository,
			Branch:       branchRepository,
			Author:       authorRepository,
		},
		locker,
		notices,
		clk,
		lending.PolicyFromConfig(cfg.Lending),
	)

	// handler
	authHandler := auth.NewAuthHandler(authService)
	memberHandler := member.NewMemberHandler(memberService)
	lendingHandler := lending.NewLendingHandler(lendingService)

	// API v1 routes
	authV1 := router.Group("/api/v1/auth")
	{
		authV1.POST("/signup", authHandler.Signup)
		authV1.POST("/login", authHandler.Login)
	}

	verificationV1 := router.Group("/api/v1/members/verification")
	{
		verificationV1.POST("", memberHandler.IssuePasscode)
		verificationV1.POST("/confirm", memberHandler.VerifyPasscode)
	}

	memberV1 := router.Group("/api/v1/members")
	memberV1.Use(middleware.JWT(tokenManager))
	{
		memberV1.GET("/me", memberHandler.GetProfile)
		memberV1.DELETE("/me", memberHandler.DeleteProfile)
	}

	loanV1 := router.Group("/api/v1/loans")
	loanV1.Use(middleware.JWT(tokenManager))
	{
		loanV1.POST("", lendingHandler.Borrow)
		loanV1.GET("", lendingHandler.ListBorrowed)
		loanV1.POST("/return", lendingHandler.Return)
	}

	subscriptionV1 := router.Group("/api/v1/subscriptions")
	subscriptionV1.Use(middleware.JWT(tokenManager))
	{
		subscriptionV1.PUT("", lendingHandler.SetSubscription)
	}

	return &Runtime{Locker: locker, Notices: notices}
}
