package auth

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"

	"pricecompare/internal/domain/service"
)

const verificationTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

type randomTokenGenerator struct {
	source io.Reader
	length int
}

// NewVerificationTokenGenerator returns a generator backed by crypto/rand.
func NewVerificationTokenGenerator() service.VerificationTokenGenerator {
	return &randomTokenGenerator{
		source: rand.Reader,
		length: service.VerificationTokenLength,
	}
}

// Generate draws each character uniformly from the alphanumeric alphabet.
func (g *randomTokenGenerator) Generate() (string, error) {
	limit := big.NewInt(int64(len(verificationTokenAlphabet)))
	token := make([]byte, g.length)

	for i := range token {
		n, err := rand.Int(g.source, limit)
		if err != nil {
			return "", errors.Wrap(err, "failed to draw verification token")
		}
		token[i] = verificationTokenAlphabet[n.Int64()]
	}

	return string(token), nil
}
