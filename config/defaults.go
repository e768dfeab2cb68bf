package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultAccessTokenTTL    = 15 * time.Minute
	DefaultSigningAlgorithm  = "HS256"
	DefaultTokenMaxAttempts  = 5
	DefaultTokenRetryBackoff = 5 * time.Millisecond

	DefaultPasswordMinLength = 8
	// bcrypt ignores input beyond 72 bytes
	DefaultPasswordMaxLength = 72
	DefaultSpecialCharacters = "@$!%*?&"
	DefaultMailProvider      = "log"
	DefaultMailMaxAttempts   = 3
	DefaultMailRetryBackoff  = 200 * time.Millisecond
	DefaultMailSendTimeout   = 10 * time.Second
	DefaultVerificationLink  = "http://localhost:8080/verify_account"
	DefaultMailFromAddress   = "noreply@pricecompare.local"
)

// ApplyDefaults fills every unset auth, password and mail option.
// It is idempotent and safe to call on a hand-built Config in tests.
func (cfg *Config) ApplyDefaults() {
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Auth.AccessTokenTTL <= 0 {
		cfg.Auth.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if cfg.Auth.SigningAlgorithm == "" {
		cfg.Auth.SigningAlgorithm = DefaultSigningAlgorithm
	}
	if cfg.Auth.TokenMaxAttempts <= 0 {
		cfg.Auth.TokenMaxAttempts = DefaultTokenMaxAttempts
	}
	if cfg.Auth.TokenRetryBackoff <= 0 {
		cfg.Auth.TokenRetryBackoff = DefaultTokenRetryBackoff
	}

	if cfg.PasswordStrength == nil {
		cfg.PasswordStrength = &PasswordStrengthConfig{}
	}
	if cfg.PasswordStrength.MinLength <= 0 {
		cfg.PasswordStrength.MinLength = DefaultPasswordMinLength
	}
	if cfg.PasswordStrength.MaxLength <= 0 {
		cfg.PasswordStrength.MaxLength = DefaultPasswordMaxLength
	}
	if cfg.PasswordStrength.SpecialCharacters == "" {
		cfg.PasswordStrength.SpecialCharacters = DefaultSpecialCharacters
	}

	if cfg.Mail == nil {
		cfg.Mail = &MailConfig{}
	}
	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = DefaultMailProvider
	}
	if cfg.Mail.FromAddress == "" {
		cfg.Mail.FromAddress = DefaultMailFromAddress
	}
	if cfg.Mail.VerificationBaseURL == "" {
		cfg.Mail.VerificationBaseURL = DefaultVerificationLink
	}
	if cfg.Mail.MaxAttempts <= 0 {
		cfg.Mail.MaxAttempts = DefaultMailMaxAttempts
	}
	if cfg.Mail.RetryBackoff <= 0 {
		cfg.Mail.RetryBackoff = DefaultMailRetryBackoff
	}
	if cfg.Mail.SendTimeout <= 0 {
		cfg.Mail.SendTimeout = DefaultMailSendTimeout
	}
}
