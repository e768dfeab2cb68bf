package entity

import "time"

// TokenTypeBearer is the OAuth2 token type returned with every access token.
const TokenTypeBearer = "bearer"

// AccessToken is a signed, time-bounded credential issued at login.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}
