package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/paylink/terminal/internal/auth/domain"
)

func TestNewPasswordVerifier_NotConfigured(t *testing.T) {
	verifier, err := NewPasswordVerifier("", "")
	assert.ErrorIs(t, err, authDomain.ErrPasswordNotConfigured)
	assert.Nil(t, verifier)
}

func TestDigestVerifier(t *testing.T) {
	verifier, err := NewPasswordVerifier("correct horse", "")
	require.NoError(t, err)

	assert.True(t, verifier.Verify("correct horse"))
	assert.False(t, verifier.Verify("correct horse "))
	assert.False(t, verifier.Verify(""))
	assert.False(t, verifier.Verify(strings.Repeat("correct horse", 100)))
}

func TestArgon2Verifier(t *testing.T) {
	hasher, err := NewPasswordHasher()
	require.NoError(t, err)

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	t.Run("hash takes precedence over plain password", func(t *testing.T) {
		verifier, err := NewPasswordVerifier("ignored", hash)
		require.NoError(t, err)

		assert.True(t, verifier.Verify("correct horse"))
		assert.False(t, verifier.Verify("ignored"))
	})

	t.Run("malformed hash never verifies", func(t *testing.T) {
		verifier, err := NewPasswordVerifier("", "not-a-phc-string")
		require.NoError(t, err)
		assert.False(t, verifier.Verify("correct horse"))
	})
}
