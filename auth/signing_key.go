package auth

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/goliatone/go-errors"
)

const generatedKeySize = 32

// ResolveSigningKey decodes the configured base64 signing secret. When the
// secret is empty it generates a fresh random key for this process lifetime;
// tokens issued before a restart then become unverifiable, so production
// deployments must configure a key explicitly.
//
// The second return value reports whether the key was generated rather than
// configured, so callers can log the fallback loudly or refuse to start.
func ResolveSigningKey(encoded string) ([]byte, bool, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		key := make([]byte, generatedKeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, false, errors.Wrap(err, ErrKeyUnavailable.Category, ErrKeyUnavailable.Message).
				WithTextCode(ErrKeyUnavailable.TextCode)
		}
		return key, true, nil
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false, errors.Wrap(err, errors.CategoryValidation, "signing key is not valid base64").
			WithTextCode(TextCodeKeyUnavailable)
	}

	if len(key) == 0 {
		return nil, false, errors.New("signing key decodes to zero bytes", errors.CategoryValidation).
			WithTextCode(TextCodeKeyUnavailable)
	}

	return key, false, nil
}
