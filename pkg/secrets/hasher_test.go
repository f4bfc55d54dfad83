package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher(WithCost(bcrypt.MinCost))

	hash, err := hasher.Hash("my-secret-value")
	require.NoError(t, err)
	assert.NotEqual(t, "my-secret-value", hash)
	assert.NotContains(t, hash, "my-secret-value")

	parts := strings.SplitN(hash, ":", 2)
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], saltLength)

	ok, err := hasher.Verify("my-secret-value", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong-secret", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_FreshSaltPerCall(t *testing.T) {
	hasher := NewBcryptHasher(WithCost(bcrypt.MinCost))

	first, err := hasher.Hash("same-secret")
	require.NoError(t, err)
	second, err := hasher.Hash("same-secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	ok, err := hasher.Verify("same-secret", first)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = hasher.Verify("same-secret", second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasher_EmptySecret(t *testing.T) {
	hasher := NewBcryptHasher(WithCost(bcrypt.MinCost))

	_, err := hasher.Hash("")
	assert.Error(t, err)

	_, err = hasher.Verify("", "salt:hash")
	assert.Error(t, err)
}

func TestBcryptHasher_InvalidStoredFormat(t *testing.T) {
	hasher := NewBcryptHasher(WithCost(bcrypt.MinCost))

	_, err := hasher.Verify("secret", "no-separator-here")
	assert.Error(t, err)
}
