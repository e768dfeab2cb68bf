package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	domainerrors "pricecompare/internal/domain/errors"
	"pricecompare/internal/domain/service"
)

const (
	contextKeyAccountID = "accountID"

	bearerPrefix = "Bearer "
)

// AuthMiddleware validates bearer access tokens.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate rejects the request with 401 unless it carries a valid access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrAccessTokenInvalid.WrapMessage("authorization header is missing")
		}

		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return domainerrors.ErrAccessTokenInvalid.WrapMessage("authorization header must be a bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(authHeader[len(bearerPrefix):])
		if err != nil {
			return errors.WithStack(err)
		}

		accountID, err := claims.AccountID()
		if err != nil {
			return domainerrors.ErrAccessTokenInvalid.WrapMessage("invalid subject in token")
		}

		c.Set(contextKeyAccountID, accountID)

		return next(c)
	}
}

// GetAccountID returns the authenticated account ID set by Authenticate.
func GetAccountID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(contextKeyAccountID).(uuid.UUID)

	return id, ok
}
