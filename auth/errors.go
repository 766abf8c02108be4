package auth

import (
	"github.com/goliatone/go-errors"
)

// Text codes attached to rich errors so logs and clients can tell reasons
// apart without parsing messages.
const (
	TextCodeTokenExpired         = "TOKEN_EXPIRED"
	TextCodeTokenMalformed       = "TOKEN_MALFORMED"
	TextCodeKeyUnavailable       = "KEY_UNAVAILABLE"
	TextCodeDuplicateUsername    = "DUPLICATE_USERNAME"
	TextCodeDuplicateEmail       = "DUPLICATE_EMAIL"
	TextCodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	TextCodeAccountNotFound      = "ACCOUNT_NOT_FOUND"
	TextCodeBadCredentials       = "BAD_CREDENTIALS"
	TextCodeTooManyAttempts      = "TOO_MANY_ATTEMPTS"
	TextCodeValidationFailed     = "VALIDATION_FAILED"
)

// ErrTokenExpired is returned by token validation once now >= exp.
var ErrTokenExpired = errors.New("Token has expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed covers every other validation failure: tampered payload,
// wrong key, truncated token, unexpected algorithm.
var ErrTokenMalformed = errors.New("Invalid token", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenMalformed)

// ErrKeyUnavailable signals that no signing key is configured and key
// generation failed. Treated as a fatal startup error.
var ErrKeyUnavailable = errors.New("signing key unavailable", errors.CategoryInternal).
	WithCode(errors.CodeInternal).
	WithTextCode(TextCodeKeyUnavailable)

// ErrDuplicateUsername and ErrDuplicateEmail distinguish which field collided
// during registration. Not a security sensitive distinction.
var ErrDuplicateUsername = errors.New("Username is already taken", errors.CategoryConflict).
	WithCode(errors.CodeConflict).
	WithTextCode(TextCodeDuplicateUsername)

var ErrDuplicateEmail = errors.New("Email is already registered", errors.CategoryConflict).
	WithCode(errors.CodeConflict).
	WithTextCode(TextCodeDuplicateEmail)

// ErrAccountNotFound is the internal lookup failure. Login never returns it
// to callers directly; it is folded into ErrAuthenticationFailed.
var ErrAccountNotFound = errors.New("User not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode(TextCodeAccountNotFound)

// ErrBadCredentials is the internal password mismatch failure.
var ErrBadCredentials = errors.New("password does not match", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeBadCredentials)

// ErrAuthenticationFailed is the single outward login failure. It carries a
// generic message regardless of whether the identifier was unknown or the
// password was wrong, so callers cannot enumerate usernames.
var ErrAuthenticationFailed = errors.New("Invalid username/email or password", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeAuthenticationFailed)

// ErrTooManyLoginAttempts is returned while an account is cooling down after
// repeated failed logins.
var ErrTooManyLoginAttempts = errors.New("Too many login attempts, try again later", errors.CategoryRateLimit).
	WithTextCode(TextCodeTooManyAttempts)

// IsInvalidToken reports whether err is either token validation failure.
func IsInvalidToken(err error) bool {
	return IsTextCode(err, TextCodeTokenExpired) || IsTextCode(err, TextCodeTokenMalformed)
}

// IsTextCode reports whether err is a rich error carrying the given text code.
func IsTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return false
	}
	return rich.TextCode == code
}
