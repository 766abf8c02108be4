package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/careloop/backend/auth"
)

func TestHashPassword(t *testing.T) {
	t.Run("produces a verifiable digest", func(t *testing.T) {
		hash, err := auth.HashPassword("Sup3r$ecret")
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$2a$"))

		assert.NoError(t, auth.ComparePasswordAndHash("Sup3r$ecret", hash))
	})

	t.Run("same password hashes to different digests", func(t *testing.T) {
		first, err := auth.HashPassword("Sup3r$ecret")
		assert.NoError(t, err)
		second, err := auth.HashPassword("Sup3r$ecret")
		assert.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		hash, err := auth.HashPassword("")
		assert.Empty(t, hash)
		assert.True(t, auth.IsTextCode(err, auth.TextCodeValidationFailed))
	})

	t.Run("rejects passwords over the bcrypt limit as invalid input", func(t *testing.T) {
		hash, err := auth.HashPassword(strings.Repeat("Aa1@", 25))
		assert.Empty(t, hash)
		assert.True(t, auth.IsTextCode(err, auth.TextCodeValidationFailed))
	})

	t.Run("accepts a password at the bcrypt limit", func(t *testing.T) {
		hash, err := auth.HashPassword(strings.Repeat("Aa1@", 18))
		assert.NoError(t, err)
		assert.NotEmpty(t, hash)
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := auth.HashPassword("Sup3r$ecret")
	assert.NoError(t, err)

	t.Run("mismatch reports bad credentials", func(t *testing.T) {
		err := auth.ComparePasswordAndHash("wrong-password", hash)
		assert.True(t, auth.IsTextCode(err, auth.TextCodeBadCredentials))
	})

	t.Run("invalid digest is an internal failure", func(t *testing.T) {
		err := auth.ComparePasswordAndHash("Sup3r$ecret", "not-a-bcrypt-digest")
		assert.Error(t, err)
		assert.False(t, auth.IsTextCode(err, auth.TextCodeBadCredentials))
	})
}
