package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"pricecompare/config"
	"pricecompare/internal/domain/entity"
	"pricecompare/internal/domain/repository"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "account_service_test_secret"
	cfg.Auth = &config.AuthConfig{
		BcryptCost:        bcrypt.MinCost,
		TokenRetryBackoff: time.Millisecond,
	}
	cfg.Mail = &config.MailConfig{
		RetryBackoff: time.Millisecond,
		SendTimeout:  time.Second,
	}
	cfg.ApplyDefaults()

	return cfg
}

// memoryAccountStore is an in-memory AccountRepository that enforces the same
// unique columns and conditional activation as the accounts table.
type memoryAccountStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account

	// forcedTokenCollisions makes the next N inserts fail on the token index.
	forcedTokenCollisions int
	createCalls           atomic.Int32
}

func newMemoryAccountStore() *memoryAccountStore {
	return &memoryAccountStore{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (s *memoryAccountStore) find(match func(*entity.Account) bool) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if match(account) {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (s *memoryAccountStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	return s.find(func(a *entity.Account) bool { return a.ID == id })
}

func (s *memoryAccountStore) FindByUsername(_ context.Context, username string) (*entity.Account, error) {
	return s.find(func(a *entity.Account) bool { return a.Username == username })
}

func (s *memoryAccountStore) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	return s.find(func(a *entity.Account) bool { return a.Email == email })
}

func (s *memoryAccountStore) FindByIdentifier(_ context.Context, identifier string) (*entity.Account, error) {
	if entity.IsEmailIdentifier(identifier) {
		email := NormalizeEmail(identifier)

		return s.find(func(a *entity.Account) bool { return a.Email == email })
	}

	return s.find(func(a *entity.Account) bool { return a.Username == identifier })
}

func (s *memoryAccountStore) FindByVerificationToken(_ context.Context, token string) (*entity.Account, error) {
	return s.find(func(a *entity.Account) bool {
		return a.VerificationToken != nil && *a.VerificationToken == token
	})
}

func (s *memoryAccountStore) Create(_ context.Context, account *entity.Account) error {
	s.createCalls.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.forcedTokenCollisions > 0 {
		s.forcedTokenCollisions--

		return repository.ErrVerificationTokenTaken
	}

	for _, existing := range s.accounts {
		switch {
		case existing.Username == account.Username:
			return repository.ErrUsernameTaken
		case existing.Email == account.Email:
			return repository.ErrEmailTaken
		case existing.VerificationToken != nil && account.VerificationToken != nil &&
			*existing.VerificationToken == *account.VerificationToken:
			return repository.ErrVerificationTokenTaken
		}
	}

	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	copied := *account
	s.accounts[account.ID] = &copied

	return nil
}

func (s *memoryAccountStore) ActivateByToken(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.VerificationToken != nil && *account.VerificationToken == token &&
			account.ActivationState == entity.ActivationStateUnverified {
			now := time.Now()
			account.ActivationState = entity.ActivationStateActive
			account.VerificationToken = nil
			account.ActivatedAt = &now
			account.UpdatedAt = now

			return true, nil
		}
	}

	return false, nil
}

func (s *memoryAccountStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.accounts)
}

// tokenOf returns the pending verification token of the named account.
func (s *memoryAccountStore) tokenOf(username string) string {
	account, err := s.FindByUsername(context.Background(), username)
	if err != nil || account.VerificationToken == nil {
		return ""
	}

	return *account.VerificationToken
}

type memoryTxManager struct {
	store *memoryAccountStore
}

func (m *memoryTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *memoryTxManager) AccountRepo() repository.AccountRepository {
	return m.store
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendVerificationEmail(ctx context.Context, recipient, token string) error {
	return m.Called(ctx, recipient, token).Error(0)
}

// scriptedTokenGenerator replays fixed tokens, then falls back to random ones.
type scriptedTokenGenerator struct {
	mu     sync.Mutex
	script []string
}

func (g *scriptedTokenGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.script) > 0 {
		token := g.script[0]
		g.script = g.script[1:]

		return token, nil
	}
	return uuid.NewString(), nil
}
