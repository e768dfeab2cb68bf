// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"pricecompare/internal/delivery/api/middleware"
	"pricecompare/internal/delivery/api/response"
	domainerrors "pricecompare/internal/domain/errors"
	"pricecompare/internal/usecase"
)

// RegisterRequest is the body of POST /register, accepted as JSON or form.
type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=20,excludes=@"`
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginRequest is the body of POST /login. Username is accepted as an alias for identifier
// so that OAuth2 password-form clients work unchanged.
type LoginRequest struct {
	Identifier string `json:"identifier" form:"identifier"`
	Username   string `json:"username" form:"username"`
	Password   string `json:"password" form:"password" validate:"required"`
}

// RegisterResponse is the public view of a newly registered account.
type RegisterResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	EmailWarning string    `json:"email_warning,omitempty"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MessageResponse is a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, RegisterResponse{
		ID:           output.Account.ID,
		Username:     output.Account.Username,
		Email:        output.Account.Email,
		EmailWarning: output.EmailWarning,
	})
}

// Login handles the login request.
func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}

	identifier := req.Identifier
	if strings.TrimSpace(identifier) == "" {
		identifier = req.Username
	}
	if strings.TrimSpace(identifier) == "" {
		return domainerrors.ErrValidationFailed.WithDetails(map[string]any{"fields": []string{"identifier"}})
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Identifier: identifier,
		Password:   req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, LoginResponse{
		AccessToken: output.AccessToken.Token,
		TokenType:   output.AccessToken.TokenType,
		ExpiresAt:   output.AccessToken.ExpiresAt,
	})
}

// VerifyAccount consumes the verification_token query parameter.
func (h *AccountHandler) VerifyAccount(c echo.Context) error {
	token := c.QueryParam("verification_token")

	if err := h.uc.VerifyAccount(c.Request().Context(), token); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, MessageResponse{Message: "Account verified successfully"})
}

// Me returns the authenticated account.
func (h *AccountHandler) Me(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrAccessTokenInvalid
	}

	summary, err := h.uc.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
