package mail

import (
	"context"
	"log/slog"

	"pricecompare/internal/domain/service"
)

// logMailer writes verification emails to the logger. Intended for local development.
type logMailer struct {
	logger  *slog.Logger
	baseURL string
}

// NewLogMailer creates a mailer that only logs.
func NewLogMailer(logger *slog.Logger, baseURL string) service.VerificationMailer {
	return &logMailer{logger: logger, baseURL: baseURL}
}

func (m *logMailer) SendVerificationEmail(ctx context.Context, recipient, token string) error {
	msg, err := newVerificationMessage(recipient, m.baseURL, token)
	if err != nil {
		return err
	}

	m.logger.InfoContext(ctx, "Verification email (log provider)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	m.logger.DebugContext(ctx, "Verification email body", slog.String("text", msg.TextBody))

	return nil
}
