package auth

import (
	"github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost the original deployment hashed its digests
// with; changing it only affects newly created accounts.
const bcryptCost = 12

// maxPasswordBytes is bcrypt's input limit; GenerateFromPassword errors on
// anything longer.
const maxPasswordBytes = 72

// HashPassword will generate a password hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty", errors.CategoryValidation).
			WithTextCode(TextCodeValidationFailed)
	}

	if len(password) > maxPasswordBytes {
		return "", errors.New("Password must not exceed 72 characters", errors.CategoryValidation).
			WithTextCode(TextCodeValidationFailed)
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}
	return string(h), nil
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrBadCredentials
		}
		return errors.Wrap(err, errors.CategoryInternal, "password comparison failed")
	}
	return nil
}

type bcryptHasher struct{}

// NewPasswordHasher returns the bcrypt-backed PasswordAuthenticator.
func NewPasswordHasher() PasswordAuthenticator {
	return bcryptHasher{}
}

func (bcryptHasher) HashPassword(password string) (string, error) {
	return HashPassword(password)
}

func (bcryptHasher) ComparePasswordAndHash(password, hash string) error {
	return ComparePasswordAndHash(password, hash)
}
