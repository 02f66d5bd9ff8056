package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/library-circulation/go-api-server/internal/bootstrap"
	"github.com/library-circulation/go-api-server/internal/config"
	"github.com/library-circulation/go-api-server/internal/router"
	"github.com/library-circulation/go-api-server/internal/shared/database"
	"github.com/library-circulation/go-api-server/internal/shared/logger"
	"github.com/library-circulation/go-api-server/internal/shared/validator"
)

func main() {
	// Parse command line flags
	env := parseFlags()

	// Initialize logger
	logger.Setup(env)
	slog.Info("서버 초기화 시작", "env", env)

	// Run application
	if err := run(env); err != nil {
		slog.Error("서버 초기화 실패", "error", err)
		os.Exit(1)
	}

	slog.Info("서버 종료 완료", "env", env)
}

// parseFlags parses command line arguments
func parseFlags() string {
	env := flag.String("env", "local", "Environment (local|dev|prod), selects .env.<env>")
	flag.Parse()
	return *env
}

// run contains the main application logic
func run(env string) error {
	// Create root context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	slog.Info("환경 변수 로드 성공")

	// Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("데이터베이스 종료 실패", "error", err)
		}
	}()

	// Setup server
	srv, rt := setupServer(cfg, db)

	// Start server with graceful shutdown
	return startWithGracefulShutdown(ctx, srv, rt, cfg.Server.GracefulTimeout)
}

// setupServer initializes and configures the HTTP server
func setupServer(cfg *config.Config, db *database.DB) (*bootstrap.Server, *router.Runtime) {
	// Bootstrap server with common setup
	boot := bootstrap.NewBootstrap(cfg)
	ginEngine := boot.SetupEngine()

	// Register common validators
	if err := validator.RegisterAll(); err != nil {
		slog.Error("공통 Validator 등록 실패", "error", err)
		panic(err)
	}

	// Setup application-specific routes
	rt := router.Setup(ginEngine, cfg, db)

	slog.Info("서버 설정 완료",
		"env", cfg.App.Env,
		"app", cfg.App.Name,
		"db_driver", cfg.Database.Driver,
		"min_reliability", cfg.Lending.MinReliability,
		"store_timeout", cfg.Lending.StoreTimeout.String(),
		"mail_enabled", cfg.IsMailEnabled(),
		"mail_send_timeout", cfg.Mail.SendTimeout.String(),
	)

	return bootstrap.New(cfg, ginEngine), rt
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
// HTTP를 먼저 닫고 (진행 중인 대출/반납 완료), 그 다음 남은 알림을 drain
func startWithGracefulShutdown(ctx context.Context, srv *bootstrap.Server, rt *router.Runtime, gracefulTimeout time.Duration) error {
	// Channel to receive server errors
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		serverErrors <- srv.Start()
	}()

	// Channel to receive OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for either server error or interrupt signal
	select {
	case err := <-serverErrors:
		// Server failed to start or stopped unexpectedly
		if err != nil {
			return fmt.Errorf("서버 오류: %w", err)
		}
		drainCtx, cancel := context.WithTimeout(ctx, gracefulTimeout)
		defer cancel()
		drainLending(drainCtx, rt)
		return nil

	case sig := <-quit:
		// Received shutdown signal
		slog.Info("종료 신호 수신됨", "signal", sig.String())

		// Create shutdown context with timeout
		shutdownCtx, cancel := context.WithTimeout(ctx, gracefulTimeout)
		defer cancel()

		// Attempt graceful shutdown
		slog.Info("서버 종료 중...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			drainLending(shutdownCtx, rt)
			return fmt.Errorf("서버 강제 종료: %w", err)
		}
		drainLending(shutdownCtx, rt)
		return nil
	}
}

// drainLending waits for queued loan notices and reports locks still held
func drainLending(ctx context.Context, rt *router.Runtime) {
	pending := rt.Notices.Pending()
	if err := rt.Notices.Wait(ctx); err != nil {
		slog.Warn("알림 발송 대기 중 종료", "pending", rt.Notices.Pending(), "error", err)
	} else if pending > 0 {
		slog.Info("남은 알림 발송 완료", "sent", pending)
	}

	if held := rt.Locker.Len(); held > 0 {
		// 트랜잭션은 롤백되므로 재고 카운터는 일관됨
		slog.Warn("종료 시점에 대출 lock 보유 중", "held_locks", held)
	}
}
