package service

import "context"

// VerificationMailer delivers the account verification link to a new registrant.
type VerificationMailer interface {
	SendVerificationEmail(ctx context.Context, recipient, token string) error
}
