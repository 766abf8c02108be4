package auth_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/careloop/backend/auth"
)

func TestResolveSigningKey(t *testing.T) {
	t.Run("decodes a configured base64 key", func(t *testing.T) {
		raw := []byte("configured-signing-key-material!")
		encoded := base64.StdEncoding.EncodeToString(raw)

		key, generated, err := auth.ResolveSigningKey(encoded)
		assert.NoError(t, err)
		assert.False(t, generated)
		assert.Equal(t, raw, key)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		raw := []byte("configured-signing-key-material!")
		encoded := "  " + base64.StdEncoding.EncodeToString(raw) + "\n"

		key, generated, err := auth.ResolveSigningKey(encoded)
		assert.NoError(t, err)
		assert.False(t, generated)
		assert.Equal(t, raw, key)
	})

	t.Run("generates an ephemeral key when unset", func(t *testing.T) {
		key, generated, err := auth.ResolveSigningKey("")
		assert.NoError(t, err)
		assert.True(t, generated)
		assert.Len(t, key, 32)

		other, _, err := auth.ResolveSigningKey("")
		assert.NoError(t, err)
		assert.NotEqual(t, key, other)
	})

	t.Run("rejects invalid base64", func(t *testing.T) {
		key, generated, err := auth.ResolveSigningKey("%%%not-base64%%%")
		assert.Nil(t, key)
		assert.False(t, generated)
		assert.True(t, auth.IsTextCode(err, auth.TextCodeKeyUnavailable))
	})
}
