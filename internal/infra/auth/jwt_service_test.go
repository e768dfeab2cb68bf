package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricecompare/config"
	domainerrors "pricecompare/internal/domain/errors"
	"pricecompare/internal/domain/service"
)

func newTestJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.ApplyDefaults()

	return cfg
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	accountID := uuid.New()

	accessToken, err := jwtService.GenerateAccessToken(accountID, "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken.Token)
	assert.Equal(t, "bearer", accessToken.TokenType)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), accessToken.ExpiresAt, 5*time.Second)

	claims, err := jwtService.ValidateToken(accessToken.Token)
	require.NoError(t, err)

	gotID, err := claims.AccountID()
	require.NoError(t, err)
	assert.Equal(t, accountID, gotID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, service.AccessTokenType, claims.Type)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	_, err = jwtService.ValidateToken("invalid.token.here")
	assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)

	_, err = jwtService.ValidateToken("")
	assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	otherCfg := newTestJWTConfig()
	otherCfg.SecretKey.Access = "a_completely_different_secret_key"
	verifier, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := issuer.GenerateAccessToken(uuid.New(), "bob@example.com")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token.Token)
	assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)
}

func TestJWTService_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	current := issuedAt
	clock := func() time.Time { return current }

	svc, err := newJWTService(newTestJWTConfig(), WithClock(clock))
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(uuid.New(), "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(15*time.Minute), token.ExpiresAt)

	current = issuedAt.Add(14 * time.Minute)
	_, err = svc.ValidateToken(token.Token)
	require.NoError(t, err)

	current = issuedAt.Add(16 * time.Minute)
	_, err = svc.ValidateToken(token.Token)
	assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)
}

func TestJWTService_ConfiguredTTLAndAlgorithm(t *testing.T) {
	cfg := newTestJWTConfig()
	cfg.Auth.AccessTokenTTL = time.Hour
	cfg.Auth.SigningAlgorithm = "HS512"

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc, err := newJWTService(cfg, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(uuid.New(), "dave@example.com")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), token.ExpiresAt)

	parsed, _, err := jwt.NewParser().ParseUnverified(token.Token, &service.Claims{})
	require.NoError(t, err)
	assert.Equal(t, "HS512", parsed.Method.Alg())

	// A verifier pinned to another algorithm rejects the token.
	hs256, err := newJWTService(newTestJWTConfig(), WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	_, err = hs256.ValidateToken(token.Token)
	assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)
}

func TestJWTService_RejectsNonAccessType(t *testing.T) {
	cfg := newTestJWTConfig()
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	claims := service.Claims{
		Type: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SecretKey.Access))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)
}

func TestJWTService_RejectsTokenWithoutExpiry(t *testing.T) {
	cfg := newTestJWTConfig()
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	claims := service.Claims{
		Type:             service.AccessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SecretKey.Access))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)
}

func TestNewJWTService_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{
			name:   "empty secret",
			mutate: func(cfg *config.Config) { cfg.SecretKey.Access = "" },
		},
		{
			name:   "asymmetric algorithm",
			mutate: func(cfg *config.Config) { cfg.Auth.SigningAlgorithm = "RS256" },
		},
		{
			name:   "unknown algorithm",
			mutate: func(cfg *config.Config) { cfg.Auth.SigningAlgorithm = "HS999" },
		},
		{
			name:   "none algorithm",
			mutate: func(cfg *config.Config) { cfg.Auth.SigningAlgorithm = "none" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestJWTConfig()
			tt.mutate(cfg)

			svc, err := NewJWTService(cfg)
			assert.Nil(t, svc)
			assert.ErrorIs(t, err, domainerrors.ErrConfiguration)
		})
	}

	svc, err := NewJWTService(nil)
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, domainerrors.ErrConfiguration)
}
