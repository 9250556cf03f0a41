package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/santa/log"
)

func Example_basic() {
	logger := log.Make(os.Stderr)
	logger.Warn("script exited early", slog.Int("code", 3))
}

func Example_configuration() {
	logger := log.Make(os.Stderr,
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("RFC3339Nano"),
		log.WithCaller(true))

	logger.Trace("statement evaluated", slog.String("kind", "Assignment"))
}

func Example_levels() {
	logger := log.Make(os.Stderr, log.WithLevel(log.LevelWarn))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	logger.Error("error message", slog.String("error", "something failed"))
}

func Example_jsonFormat() {
	logger := log.Make(os.Stderr, log.WithFormat(log.FormatJSON), log.WithPretty(false))
	logger.Error("parse failed", slog.Int("line", 4), slog.Int("column", 9))
}

func Example_withAttributes() {
	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
	logger = logger.With(slog.String("script", "gifts.santa"))

	logger.Info("running script")
	logger.Debug("statement count", slog.Int("n", 12))
}

func Example_withContext() {
	type requestIDKey struct{}

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-789")

	logger := log.Make(os.Stderr, log.WithLevel(log.LevelInfo))

	logger.InfoContext(ctx, "handling network message")
	logger.DebugContext(ctx, "message details", slog.String("source", "Dasher"))
}
