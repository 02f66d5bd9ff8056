package notify

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"testing"

	"github.com/library-circulation/go-api-server/internal/config"
	"github.com/stretchr/testify/assert"
)

type failingSender struct {
	calls int
}

func (f *failingSender) Send(context.Context, string, string, string) error {
	f.calls++
	return errors.New("smtp down")
}

func TestSendBestEffort_SwallowsFailure(t *testing.T) {
	sender := &failingSender{}

	assert.NotPanics(t, func() {
		SendBestEffort(context.Background(), sender, "reader@example.com", "Book Borrowed", "body")
	})
	assert.Equal(t, 1, sender.calls)
}

func TestSendBestEffort_NilSender(t *testing.T) {
	assert.NotPanics(t, func() {
		SendBestEffort(context.Background(), nil, "reader@example.com", "s", "b")
	})
}

func TestNew_SelectsSenderByConfig(t *testing.T) {
	cfg := &config.Config{}
	assert.IsType(t, &LogSender{}, New(cfg))

	cfg.Mail = config.MailConfig{Host: "smtp.example.com", Port: 587, From: "Library <no-reply@example.com>"}
	assert.IsType(t, &SMTPSender{}, New(cfg))
}

func TestBuildMessage(t *testing.T) {
	from := &mail.Address{Name: "Library", Address: "no-reply@example.com"}
	to := &mail.Address{Address: "reader@example.com"}

	msg := string(buildMessage(from, to, "Your OTP Code", "Your OTP is 123456."))

	assert.True(t, strings.HasPrefix(msg, "From: \"Library\" <no-reply@example.com>\r\n"))
	assert.Contains(t, msg, "To: <reader@example.com>\r\n")
	assert.Contains(t, msg, "Subject: Your OTP Code\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nYour OTP is 123456."))
}
