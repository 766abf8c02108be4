package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenServiceImpl implements the TokenService interface using HS256 over a
// process-wide symmetric key. Pure cryptographic computation, no I/O; safe
// for concurrent use since the key is immutable after construction.
type TokenServiceImpl struct {
	signingKey []byte
	ttl        time.Duration
	logger     Logger
}

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte, ttl time.Duration, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		signingKey: signingKey,
		ttl:        ttl,
		logger:     logger,
	}
}

// TTL returns the configured default token lifetime.
func (ts *TokenServiceImpl) TTL() time.Duration {
	return ts.ttl
}

// Generate issues a token for subject with the configured default TTL.
func (ts *TokenServiceImpl) Generate(subject string) (string, error) {
	return ts.GenerateWithTTL(subject, ts.ttl)
}

// GenerateWithTTL issues a token with iat = now and exp = now + ttl.
func (ts *TokenServiceImpl) GenerateWithTTL(subject string, ttl time.Duration) (string, error) {
	if len(ts.signingKey) == 0 {
		return "", ErrKeyUnavailable
	}

	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	ensureTokenID(&claims.RegisteredClaims)

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses a token string, checks signature integrity and expiry
// together, and returns the structured claims. Expiry is an exclusive upper
// bound: a token is rejected once now >= exp.
func (ts *TokenServiceImpl) Validate(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode claims")
		return nil, ErrTokenMalformed
	}

	if claims.RegisteredClaims.Subject == "" {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
