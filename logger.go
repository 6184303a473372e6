package stylealign

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with stylealign-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithTarget adds the edit target text to the logger.
func (l *Logger) WithTarget(target string) *Logger {
	return &Logger{
		Logger: l.Logger.With("target", target),
	}
}

// WithLatent adds a latent index field to the logger.
func (l *Logger) WithLatent(latent int) *Logger {
	return &Logger{
		Logger: l.Logger.With("latent", latent),
	}
}

// WithAttempt adds an attempt index field to the logger.
func (l *Logger) WithAttempt(attempt int) *Logger {
	return &Logger{
		Logger: l.Logger.With("attempt", attempt),
	}
}

// LogDisentangle logs the group sizes of one disentanglement.
func (l *Logger) LogDisentangle(ctx context.Context, core, unwanted, positive int) {
	l.DebugContext(ctx, "disentangled",
		"core", core,
		"unwanted", unwanted,
		"positive", positive,
	)
}

// LogAttempt logs one edit attempt.
func (l *Logger) LogAttempt(ctx context.Context, a *Attempt, err error) {
	if err != nil {
		l.WarnContext(ctx, "attempt failed",
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "attempt completed",
		"changed_channels", a.Boundary.NumChanged(),
		"core_delta", a.Scores.Core,
		"unwanted_delta", a.Scores.Unwanted,
		"positive_delta", a.Scores.Positive,
		"identity", a.Scores.Identity,
		"duration", a.Duration,
	)
}

// LogRun logs the summary of a run.
func (l *Logger) LogRun(ctx context.Context, s Summary) {
	if s.Failed > 0 {
		l.WarnContext(ctx, "run completed with failures",
			"total", s.Attempts,
			"failed", s.Failed,
			"success", s.Attempts-s.Failed,
		)
		return
	}
	l.InfoContext(ctx, "run completed",
		"attempts", s.Attempts,
		"mean_core_delta", s.MeanScores.Core,
	)
}
