package notify

import (
	"context"
	"log/slog"

	"github.com/library-circulation/go-api-server/internal/config"
	"github.com/library-circulation/go-api-server/internal/shared/logger"
)

// Sender delivers an outbound notice. Delivery and retry policy belong to the implementation.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// New picks the SMTP sender when a mail host is configured, otherwise the log sender
func New(cfg *config.Config) Sender {
	if cfg.IsMailEnabled() {
		slog.Info("SMTP 알림 발송 활성화", "host", cfg.Mail.Host, "port", cfg.Mail.Port)
		return NewSMTPSender(cfg.Mail)
	}
	slog.Warn("SMTP_HOST 미설정 - 알림은 로그로만 기록됩니다")
	return NewLogSender()
}

// SendBestEffort sends a notice and only logs a failure.
// The caller's workflow never depends on delivery.
func SendBestEffort(ctx context.Context, sender Sender, to, subject, body string) {
	if sender == nil {
		return
	}
	if err := sender.Send(ctx, to, subject, body); err != nil {
		logger.FromContext(ctx).Warn("알림 발송 실패",
			"to", logger.MaskEmail(to),
			"subject", subject,
			"error", err,
		)
	}
}

// LogSender writes notices to the request logger instead of delivering them
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	logger.FromContext(ctx).Info("notification",
		"to", logger.MaskEmail(to),
		"subject", subject,
		"body_length", len(body),
	)
	return nil
}

var (
	_ Sender = (*LogSender)(nil)
	_ Sender = (*SMTPSender)(nil)
)
