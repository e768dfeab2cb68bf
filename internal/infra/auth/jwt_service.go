// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"pricecompare/config"
	"pricecompare/internal/domain/entity"
	domainerrors "pricecompare/internal/domain/errors"
	"pricecompare/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret []byte            // Secret key for signing access tokens.
	accessTTL    time.Duration     // Time-to-live for access tokens.
	method       jwt.SigningMethod // Named HMAC algorithm.
	now          func() time.Time
}

// JWTOption customizes a jwtService.
type JWTOption func(*jwtService)

// WithClock overrides the time source used for iat/exp.
func WithClock(now func() time.Time) JWTOption {
	return func(s *jwtService) {
		s.now = now
	}
}

// NewJWTService is the constructor for jwtService.
// A missing secret or a non-HMAC algorithm is a configuration error raised here, not at call time.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	svc, err := newJWTService(cfg)
	if err != nil {
		return nil, err
	}

	return svc, nil
}

func newJWTService(cfg *config.Config, opts ...JWTOption) (*jwtService, error) {
	if cfg == nil || cfg.SecretKey.Access == "" {
		return nil, errors.Wrap(domainerrors.ErrConfiguration, "jwt access secret must be provided")
	}

	ttl := config.DefaultAccessTokenTTL
	algorithm := config.DefaultSigningAlgorithm
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			ttl = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.SigningAlgorithm != "" {
			algorithm = cfg.Auth.SigningAlgorithm
		}
	}

	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, errors.Wrapf(domainerrors.ErrConfiguration, "unsupported jwt signing algorithm %q", algorithm)
	}

	svc := &jwtService{
		accessSecret: []byte(cfg.SecretKey.Access),
		accessTTL:    ttl,
		method:       method,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// GenerateAccessToken creates a signed access token for the account.
func (s *jwtService) GenerateAccessToken(accountID uuid.UUID, email string) (*entity.AccessToken, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.accessTTL)

	claims := service.Claims{
		Email: email,
		Type:  service.AccessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),            // Subject (who the token is for)
			IssuedAt:  jwt.NewNumericDate(issuedAt),  // Issued At
			ExpiresAt: jwt.NewNumericDate(expiresAt), // Expiration Time
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.accessSecret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign access token")
	}

	return &entity.AccessToken{
		Token:     signed,
		TokenType: entity.TokenTypeBearer,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken parses the token and checks its signature, algorithm, type and expiry.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.accessSecret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrAccessTokenInvalid, err.Error())
	}
	if !token.Valid || claims.Type != service.AccessTokenType {
		return nil, errors.Wrap(domainerrors.ErrAccessTokenInvalid, "unexpected token type")
	}

	return claims, nil
}
