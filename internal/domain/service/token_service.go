package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pricecompare/internal/domain/entity"
)

// AccessTokenType is the value of the "type" claim on access tokens.
const AccessTokenType = "access"

// Claims defines the custom claims for the JWT access tokens.
type Claims struct {
	Email string `json:"email,omitempty"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// AccountID parses the subject claim as an account identifier.
func (c *Claims) AccountID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService defines the interface for issuing and validating access tokens.
type TokenService interface {
	// GenerateAccessToken issues a signed token for the account, expiring after the configured TTL.
	GenerateAccessToken(accountID uuid.UUID, email string) (*entity.AccessToken, error)

	// ValidateToken checks signature, algorithm, type and expiry of a token string.
	ValidateToken(tokenString string) (*Claims, error)
}
