// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	"go.uber.org/fx"

	"pricecompare/config"
	deliverycontext "pricecompare/internal/delivery/context"
	"pricecompare/internal/domain/entity"
	domainerrors "pricecompare/internal/domain/errors"
	"pricecompare/internal/domain/repository"
	"pricecompare/internal/domain/service"
	"pricecompare/internal/usecase"
)

const emailWarningMessage = "Account created, but the verification email could not be sent. Please contact support to receive a new link."

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	tokenIssuer  *verificationTokenIssuer
	mailer       service.VerificationMailer
	logger       *slog.Logger

	tokenMaxAttempts  int
	tokenRetryBackoff time.Duration
	mailMaxAttempts   int
	mailRetryBackoff  time.Duration
	mailSendTimeout   time.Duration
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	AccountRepo    repository.AccountRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	TokenGenerator service.VerificationTokenGenerator
	Mailer         service.VerificationMailer
	Config         *config.Config
	Logger         *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	cfg := params.Config

	return &accountService{
		txManager:         params.TxManager,
		accountRepo:       params.AccountRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		tokenIssuer:       newVerificationTokenIssuer(params.TokenGenerator, cfg.Auth.TokenMaxAttempts),
		mailer:            params.Mailer,
		logger:            params.Logger,
		tokenMaxAttempts:  cfg.Auth.TokenMaxAttempts,
		tokenRetryBackoff: cfg.Auth.TokenRetryBackoff,
		mailMaxAttempts:   cfg.Mail.MaxAttempts,
		mailRetryBackoff:  cfg.Mail.RetryBackoff,
		mailSendTimeout:   cfg.Mail.SendTimeout,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// retriesFor converts an attempt budget into the retry count go-retry expects.
func retriesFor(attempts int) uint64 {
	if attempts < 1 {
		return 0
	}

	return uint64(attempts - 1)
}

// NormalizeEmail trims and lower-cases an email address before storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified account and sends its verification email.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	username := strings.TrimSpace(input.Username)
	email := NormalizeEmail(input.Email)
	if username == "" || email == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("username and email are required")
	}
	if entity.IsEmailIdentifier(username) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("username must not contain '@'")
	}

	srv.log(ctx).Info("Starting registration", slog.String("username", username), slog.String("email", email))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("username", username), slog.Any("error", err))

		return nil, err
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	account, err := srv.createAccount(ctx, username, email, passwordHash)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", account.ID))

	output := &usecase.RegisterOutput{Account: account.Summary()}
	if err := srv.sendVerificationEmail(ctx, account.Email, *account.VerificationToken); err != nil {
		srv.log(ctx).Warn("Verification email not delivered",
			slog.Any("accountID", account.ID),
			slog.String("email", account.Email),
			slog.Any("error", err),
		)
		output.EmailWarning = emailWarningMessage
	}

	return output, nil
}

// createAccount inserts the account, drawing a fresh verification token whenever the insert
// loses a race on the token's unique index.
func (srv *accountService) createAccount(ctx context.Context, username, email, passwordHash string) (*entity.Account, error) {
	var created *entity.Account

	backoff := retry.WithMaxRetries(retriesFor(srv.tokenMaxAttempts), retry.NewExponential(srv.tokenRetryBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			accountRepo := repoFactory.AccountRepo()

			if err := srv.checkAvailability(ctx, accountRepo, username, email); err != nil {
				return err
			}

			token, err := srv.tokenIssuer.Issue(ctx, accountRepo)
			if err != nil {
				return err
			}

			account := &entity.Account{
				Username:          username,
				Email:             email,
				PasswordHash:      passwordHash,
				ActivationState:   entity.ActivationStateUnverified,
				VerificationToken: &token,
			}
			if err := accountRepo.Create(ctx, account); err != nil {
				return err
			}
			created = account

			return nil
		})

		if errors.Is(err, repository.ErrVerificationTokenTaken) {
			srv.log(ctx).Debug("Verification token collided on insert, retrying")

			return retry.RetryableError(err)
		}

		return err
	})

	switch {
	case err == nil:
		return created, nil
	case errors.Is(err, repository.ErrVerificationTokenTaken):
		srv.log(ctx).Error("Verification token retry budget exhausted", slog.Int("attempts", srv.tokenMaxAttempts))

		return nil, errors.Wrapf(domainerrors.ErrTokenIssuanceExhausted, "token collided on %d inserts", srv.tokenMaxAttempts)
	case errors.Is(err, repository.ErrUsernameTaken):
		return nil, domainerrors.NewAccountConflictError(domainerrors.FieldUsername)
	case errors.Is(err, repository.ErrEmailTaken):
		return nil, domainerrors.NewAccountConflictError(domainerrors.FieldEmail)
	default:
		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}
}

// checkAvailability reports every taken field at once.
func (srv *accountService) checkAvailability(ctx context.Context, accountRepo repository.AccountRepository, username, email string) error {
	var taken []string

	if _, err := accountRepo.FindByUsername(ctx, username); err == nil {
		taken = append(taken, domainerrors.FieldUsername)
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return errors.Wrap(err, "failed to check username")
	}

	if _, err := accountRepo.FindByEmail(ctx, email); err == nil {
		taken = append(taken, domainerrors.FieldEmail)
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return errors.Wrap(err, "failed to check email")
	}

	if len(taken) > 0 {
		srv.log(ctx).Warn("Registration conflict", slog.Any("fields", taken))

		return domainerrors.NewAccountConflictError(taken...)
	}

	return nil
}

func (srv *accountService) sendVerificationEmail(ctx context.Context, recipient, token string) error {
	sendCtx, cancel := context.WithTimeout(ctx, srv.mailSendTimeout)
	defer cancel()

	backoff := retry.WithMaxRetries(retriesFor(srv.mailMaxAttempts), retry.NewExponential(srv.mailRetryBackoff))

	return retry.Do(sendCtx, backoff, func(ctx context.Context) error {
		if err := srv.mailer.SendVerificationEmail(ctx, recipient, token); err != nil {
			srv.log(ctx).Debug("Verification email attempt failed", slog.Any("error", err))

			return retry.RetryableError(err)
		}

		return nil
	})
}

// Login authenticates an active account by username or email and issues an access token.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" {
		return nil, domainerrors.ErrAccountNotFound
	}

	account, err := srv.accountRepo.FindByIdentifier(ctx, identifier)
	if errors.Is(err, repository.ErrAccountNotFound) {
		srv.log(ctx).Info("Login for unknown identifier", slog.String("identifier", identifier))

		return nil, domainerrors.ErrAccountNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account for login")
	}

	if !account.IsActive() {
		srv.log(ctx).Info("Login for unverified account", slog.Any("accountID", account.ID))

		return nil, domainerrors.ErrAccountNotFound
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Invalid password", slog.Any("accountID", account.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to issue access token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue access token")
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{AccessToken: accessToken}, nil
}

// VerifyAccount consumes a verification token, moving its account from unverified to active.
func (srv *accountService) VerifyAccount(ctx context.Context, token string) error {
	if token == "" {
		return domainerrors.ErrVerificationTokenInvalid
	}

	activated, err := srv.accountRepo.ActivateByToken(ctx, token)
	if err != nil {
		return errors.Wrap(err, "failed to activate account")
	}
	if !activated {
		srv.log(ctx).Info("Verification token did not match an unverified account")

		return domainerrors.ErrVerificationTokenInvalid
	}

	srv.log(ctx).Info("Account activated")

	return nil
}

// GetAccount returns the public summary of an account.
func (srv *accountService) GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.AccountSummary, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrAccountNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account")
	}

	summary := account.Summary()

	return &summary, nil
}
