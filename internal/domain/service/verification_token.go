package service

// VerificationTokenLength is the number of characters in a verification token.
const VerificationTokenLength = 30

// VerificationTokenGenerator draws random verification tokens.
// It does not guarantee uniqueness; callers resolve collisions against storage.
type VerificationTokenGenerator interface {
	Generate() (string, error)
}
