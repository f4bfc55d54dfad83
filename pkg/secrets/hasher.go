package secrets

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const saltLength = 16

const saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SecretHasher defines the interface for irreversible secret hashing.
type SecretHasher interface {
	// Hash produces the encrypted, non-reversible form of a secret.
	Hash(secret string) (string, error)

	// Verify checks whether secret matches the stored hash.
	Verify(secret, hashedSecret string) (bool, error)
}

// BcryptHasher implements SecretHasher using salted bcrypt. Each call to
// Hash draws a fresh random salt, so hashing the same secret twice
// yields different values. The stored format is "salt:hash".
type BcryptHasher struct {
	cost int
}

// BcryptHasherOption configures a BcryptHasher.
type BcryptHasherOption func(*BcryptHasher)

// WithCost sets the bcrypt cost factor.
func WithCost(cost int) BcryptHasherOption {
	return func(h *BcryptHasher) {
		h.cost = cost
	}
}

// NewBcryptHasher creates a BcryptHasher. The default cost is
// bcrypt.DefaultCost+2, matching the salted hashing scheme used for new
// credentials.
func NewBcryptHasher(opts ...BcryptHasherOption) *BcryptHasher {
	h := &BcryptHasher{
		cost: bcrypt.DefaultCost + 2,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Hash implements SecretHasher.Hash.
func (h *BcryptHasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret cannot be empty")
	}

	salt, err := randomSalt(saltLength)
	if err != nil {
		return "", err
	}

	saltedSecret := salt + secret
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(saltedSecret), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}

	return fmt.Sprintf("%s:%s", salt, string(hashedBytes)), nil
}

// Verify implements SecretHasher.Verify.
func (h *BcryptHasher) Verify(secret, hashedSecret string) (bool, error) {
	if secret == "" || hashedSecret == "" {
		return false, errors.New("secret and hashed secret cannot be empty")
	}

	parts := strings.SplitN(hashedSecret, ":", 2)
	if len(parts) != 2 {
		return false, errors.New("invalid secret hash format")
	}

	salt := parts[0]
	hash := parts[1]

	saltedSecret := salt + secret
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(saltedSecret))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func randomSalt(length int) (string, error) {
	max := big.NewInt(int64(len(saltAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate salt: %w", err)
		}
		buf[i] = saltAlphabet[n.Int64()]
	}
	return string(buf), nil
}
