package mail

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/pkg/errors"

	"pricecompare/internal/domain/service"
)

const charsetUTF8 = "UTF-8"

// sesAPI is the subset of *ses.Client used by the mailer.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// sesMailer sends verification emails through AWS SES.
type sesMailer struct {
	client      sesAPI
	fromAddress string
	baseURL     string
}

// NewSESMailer creates an SES-backed mailer.
func NewSESMailer(client sesAPI, fromAddress, baseURL string) service.VerificationMailer {
	return &sesMailer{
		client:      client,
		fromAddress: fromAddress,
		baseURL:     baseURL,
	}
}

func (m *sesMailer) SendVerificationEmail(ctx context.Context, recipient, token string) error {
	msg, err := newVerificationMessage(recipient, m.baseURL, token)
	if err != nil {
		return err
	}

	input := &ses.SendEmailInput{
		Source:      aws.String(m.fromAddress),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charsetUTF8)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String(charsetUTF8)},
				Html: &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String(charsetUTF8)},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return errors.Wrapf(err, "ses: failed to send verification email to %s", recipient)
	}

	return nil
}
