// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password policy, hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	// It never returns an error; a malformed hash is simply a mismatch.
	Check(password, hash string) bool

	// ValidatePasswordStrength checks the password against the configured policy.
	// The returned error lists every violated rule.
	ValidatePasswordStrength(password string) error
}
