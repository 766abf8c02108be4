package auth

import (
	"context"
	"fmt"
	"time"
)

// Logger is the minimal structured logger the auth components depend on.
// Arguments are alternating key/value pairs appended to the message.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Identity holds the attributes of a resolved principal. It is constructed
// fresh per request and never persisted.
type Identity interface {
	ID() string
	UserID() string
	Username() string
	Email() string
	Roles() []string
}

// Config holds the auth options the service is wired with.
type Config interface {
	GetSigningKey() string
	GetTokenTTL() time.Duration
	GetAuthScheme() string
}

// TokenService signs and verifies compact bearer tokens.
type TokenService interface {
	Generate(subject string) (string, error)
	GenerateWithTTL(subject string, ttl time.Duration) (string, error)
	Validate(token string) (*JWTClaims, error)
	TTL() time.Duration
}

// IdentityProvider resolves identities from the credential store.
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error)
	FindIdentityByUsername(ctx context.Context, username string) (Identity, error)
}

// PasswordAuthenticator hashes and verifies passwords.
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// Authenticator orchestrates registration, login, and identity lookups.
type Authenticator interface {
	Register(ctx context.Context, msg RegisterUserMessage) (*AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context, username string) (*UserView, error)
}

// DefaultLogger returns the fallback logger used when none is configured.
func DefaultLogger() Logger {
	return defLogger{}
}

type defLogger struct{}

func (d defLogger) Debug(msg string, args ...any) { d.print("DBG", msg, args...) }
func (d defLogger) Info(msg string, args ...any)  { d.print("INF", msg, args...) }
func (d defLogger) Warn(msg string, args ...any)  { d.print("WRN", msg, args...) }
func (d defLogger) Error(msg string, args ...any) { d.print("ERR", msg, args...) }

func (defLogger) print(level, msg string, args ...any) {
	out := "[" + level + "] AUTH " + msg
	for i := 0; i+1 < len(args); i += 2 {
		out += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	fmt.Println(out)
}
