package report

import (
	"context"
	"log/slog"
)

// LogWriter emits outcomes as structured log records
type LogWriter struct {
	Logger *slog.Logger
}

func (this *LogWriter) WriteOutcome(ctx context.Context, outcome Outcome) error {

	logger := this.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []slog.Attr{
		slog.String("label", outcome.Label),
		slog.String("request_id", outcome.RequestID),
		slog.Duration("elapsed", outcome.Elapsed),
	}

	if outcome.Failed() {
		attrs = append(attrs, slog.String("err", outcome.Err.Error()))
		logger.LogAttrs(ctx, slog.LevelWarn, "login probe failed", attrs...)
		return nil
	}

	attrs = append(attrs,
		slog.Int("http_status", outcome.StatusCode),
		slog.Int("body_size", len(outcome.Body)))

	logger.LogAttrs(ctx, slog.LevelInfo, "login probe done", attrs...)
	return nil
}
