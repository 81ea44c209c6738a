package mailer

import (
	"context"
	"log/slog"

	"github.com/consolebusters/account-service/internal/ports"
)

// LogMailer writes outgoing mail to the structured log instead of delivering
// it. Useful for development runs without a mail provider.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg ports.EmailMessage) error {
	m.logger.InfoContext(ctx, "email dispatched to log",
		"module", "mailer",
		"layer", "adapter",
		"operation", "send",
		"outcome", "success",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.TextBody,
	)
	return nil
}
