package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/careloop/backend/auth"
)

var testSigningKey = []byte("test-signing-key-32-bytes-long!!")

func newTestTokenService(ttl time.Duration) auth.TokenService {
	return auth.NewTokenService(testSigningKey, ttl, nil)
}

func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(time.Hour)

	tokenString, err := service.Generate("walter")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := service.Validate(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "walter", claims.Subject())

	t.Run("issued and expiry timestamps track the TTL", func(t *testing.T) {
		issuedAt := claims.IssuedAt()
		expires := claims.Expires()

		assert.WithinDuration(t, time.Now(), issuedAt, 5*time.Second)
		assert.Equal(t, time.Hour, expires.Sub(issuedAt))
	})

	t.Run("tokens carry a unique id", func(t *testing.T) {
		other, err := service.Generate("walter")
		assert.NoError(t, err)
		assert.NotEqual(t, tokenString, other, "two tokens for the same subject must differ")
	})
}

func TestTokenService_Validate_Expired(t *testing.T) {
	service := newTestTokenService(time.Hour)

	tokenString, err := service.GenerateWithTTL("walter", -time.Minute)
	assert.NoError(t, err)

	claims, err := service.Validate(tokenString)
	assert.Nil(t, claims)
	assert.Error(t, err)
	assert.True(t, auth.IsTextCode(err, auth.TextCodeTokenExpired))
	assert.True(t, auth.IsInvalidToken(err))
}

func TestTokenService_Validate_Tampered(t *testing.T) {
	service := newTestTokenService(time.Hour)

	tokenString, err := service.Generate("walter")
	assert.NoError(t, err)

	t.Run("flipped payload byte", func(t *testing.T) {
		parts := strings.Split(tokenString, ".")
		assert.Len(t, parts, 3)

		payload := []byte(parts[1])
		if payload[0] == 'A' {
			payload[0] = 'B'
		} else {
			payload[0] = 'A'
		}
		tampered := parts[0] + "." + string(payload) + "." + parts[2]

		claims, err := service.Validate(tampered)
		assert.Nil(t, claims)
		assert.True(t, auth.IsTextCode(err, auth.TextCodeTokenMalformed))
	})

	t.Run("signed with a different key", func(t *testing.T) {
		other := auth.NewTokenService([]byte("another-key-entirely-0123456789!"), time.Hour, nil)
		foreign, err := other.Generate("walter")
		assert.NoError(t, err)

		claims, err := service.Validate(foreign)
		assert.Nil(t, claims)
		assert.True(t, auth.IsTextCode(err, auth.TextCodeTokenMalformed))
	})

	t.Run("garbage input", func(t *testing.T) {
		claims, err := service.Validate("not-a-token")
		assert.Nil(t, claims)
		assert.True(t, auth.IsTextCode(err, auth.TextCodeTokenMalformed))
	})
}

func TestTokenService_Validate_RejectsNoneAlgorithm(t *testing.T) {
	service := newTestTokenService(time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "walter",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	claims, err := service.Validate(tokenString)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestTokenService_Validate_EmptySubject(t *testing.T) {
	service := newTestTokenService(time.Hour)

	tokenString, err := service.Generate("")
	assert.NoError(t, err)

	claims, err := service.Validate(tokenString)
	assert.Nil(t, claims)
	assert.True(t, auth.IsTextCode(err, auth.TextCodeTokenMalformed))
}

func TestTokenService_Generate_NoKey(t *testing.T) {
	service := auth.NewTokenService(nil, time.Hour, nil)

	tokenString, err := service.Generate("walter")
	assert.Empty(t, tokenString)
	assert.True(t, auth.IsTextCode(err, auth.TextCodeKeyUnavailable))
}

func TestTokenService_TTL(t *testing.T) {
	service := newTestTokenService(42 * time.Minute)
	assert.Equal(t, 42*time.Minute, service.TTL())
}
