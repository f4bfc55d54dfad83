package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTemporarySecret(t *testing.T) {
	secret, err := GenerateTemporarySecret()
	require.NoError(t, err)
	assert.Len(t, secret, TempSecretLength)

	for _, r := range secret {
		assert.True(t, strings.ContainsRune(TempSecretAlphabet, r),
			"character %q outside alphabet", r)
	}
}

func TestGenerateTemporarySecret_NoCollisions(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		secret, err := GenerateTemporarySecret()
		require.NoError(t, err)
		require.False(t, seen[secret], "duplicate secret after %d draws", i)
		seen[secret] = true
	}
}
