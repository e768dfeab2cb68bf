// Package mail delivers account verification emails.
package mail

import (
	"bytes"
	"html/template"
	"net/url"

	"github.com/pkg/errors"
)

const verificationSubject = "Verify your account"

var verificationHTML = template.Must(template.New("verification").Parse(
	`<p>Welcome!</p>` +
		`<p>Please confirm your email address by following <a href="{{.Link}}">this link</a>.</p>` +
		`<p>If you did not create an account, ignore this message.</p>`,
))

// message is a rendered verification email.
type message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// verificationLink appends the token to baseURL as the verification_token query parameter.
func verificationLink(baseURL, token string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", errors.Wrap(err, "invalid verification base url")
	}

	query := u.Query()
	query.Set("verification_token", token)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

func newVerificationMessage(recipient, baseURL, token string) (*message, error) {
	link, err := verificationLink(baseURL, token)
	if err != nil {
		return nil, err
	}

	var html bytes.Buffer
	if err := verificationHTML.Execute(&html, struct{ Link string }{Link: link}); err != nil {
		return nil, errors.Wrap(err, "failed to render verification email")
	}

	return &message{
		To:       recipient,
		Subject:  verificationSubject,
		TextBody: "Please confirm your email address by opening this link:\n\n" + link + "\n",
		HTMLBody: html.String(),
	}, nil
}
