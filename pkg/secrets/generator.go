package secrets

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// TempSecretLength is the length of generated temporary secrets.
const TempSecretLength = 12

// TempSecretAlphabet is the character set temporary secrets are drawn from.
const TempSecretAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// GenerateTemporarySecret returns a new 12-character temporary secret
// drawn uniformly from TempSecretAlphabet using crypto/rand.
func GenerateTemporarySecret() (string, error) {
	return generateSecret(TempSecretLength)
}

func generateSecret(length int) (string, error) {
	max := big.NewInt(int64(len(TempSecretAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate secret: %w", err)
		}
		buf[i] = TempSecretAlphabet[n.Int64()]
	}
	return string(buf), nil
}
