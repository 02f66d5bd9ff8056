package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs the process wide slog logger for env.
// prod는 JSON, 그 외는 text
func Setup(env string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var out io.Writer = os.Stdout
	useJSON := false

	switch env {
	case "production", "prod":
		// 거절은 Info, 저장소 장애는 Error
		useJSON = true
	case "local", "dev", "development":
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	case "test":
		// 동시 대출 테스트의 경합 로그는 버림
		out = io.Discard
	}

	var handler slog.Handler
	if useJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("Logger 초기화", "env", env, "level", opts.Level.Level().String())
}
