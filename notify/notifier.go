// Package notify carries user-facing notifications out of the service
// layer. The notifier is injected everywhere it is needed; there is no
// process-wide mutable handler.
package notify

import (
	"context"
	"log/slog"
)

type Notifier interface {
	// Warn surfaces a recoverable, user-actionable condition.
	Warn(ctx context.Context, message string)
	// Error surfaces a failure with a safe generic message. Raw error
	// detail belongs in the diagnostic log, not here.
	Error(ctx context.Context, message string)
}

type logNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Warn(ctx context.Context, message string) {
	n.logger.WarnContext(ctx, "user notification", slog.String("message", message))
}

func (n *logNotifier) Error(ctx context.Context, message string) {
	n.logger.ErrorContext(ctx, "user notification", slog.String("message", message))
}
