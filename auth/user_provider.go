package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// UserTracker is the slice of the credential store the verifier needs.
type UserTracker interface {
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	TrackAttemptedLogin(ctx context.Context, user *User) error
	TrackSuccessfulLogin(ctx context.Context, user *User) error
}

// MaxLoginAttempts is the maximum number of failed attempts an account gets
// within the cooldown period.
var MaxLoginAttempts = 5

// CoolDownPeriod is the window after which the attempt counter resets.
var CoolDownPeriod = 24 * time.Hour

// UserProvider resolves accounts and confirms passwords against stored
// digests. It performs no I/O beyond store lookups and attempt tracking.
type UserProvider struct {
	store  UserTracker
	hasher PasswordAuthenticator
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserTracker) *UserProvider {
	return &UserProvider{
		store:  store,
		hasher: NewPasswordHasher(),
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

func (u *UserProvider) WithHasher(h PasswordAuthenticator) *UserProvider {
	if h != nil {
		u.hasher = h
	}
	return u
}

// VerifyIdentity finds the account by username-or-email, compares the
// password, and returns the resolved identity. An unknown identifier yields
// ErrAccountNotFound and a password mismatch ErrBadCredentials; callers that
// face the network must fold both into a single outward failure.
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user.LoginAttemptAt != nil && time.Since(*user.LoginAttemptAt) > CoolDownPeriod {
		user.LoginAttempts = 0
	}

	// too many attempts inside the window, cool off
	if user.LoginAttempts > MaxLoginAttempts {
		return nil, ErrTooManyLoginAttempts
	}

	if err := u.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if !IsTextCode(err, TextCodeBadCredentials) {
			return nil, err
		}
		if err2 := u.store.TrackAttemptedLogin(ctx, user); err2 != nil {
			return nil, errors.Wrap(err2, errors.CategoryInternal, "failed to track login attempt")
		}
		return nil, ErrBadCredentials
	}

	if err := u.store.TrackSuccessfulLogin(ctx, user); err != nil {
		u.logger.Error("failed to track successful login", "error", err)
	}

	return NewAccountIdentity(user), nil
}

// FindIdentityByUsername resolves the token subject to an identity. Used by
// the bearer gate after a token validates.
func (u *UserProvider) FindIdentityByUsername(ctx context.Context, username string) (Identity, error) {
	user, err := u.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return NewAccountIdentity(user), nil
}

// accountIdentity is the single concrete Identity variant: a principal
// backed by a resolved account record.
type accountIdentity struct {
	id       string
	userID   string
	username string
	email    string
	roles    []string
}

// NewAccountIdentity builds the request-scoped principal from an account.
// The password digest is deliberately not carried over.
func NewAccountIdentity(user *User) Identity {
	roles := append([]string(nil), user.Roles...)
	if len(roles) == 0 {
		roles = []string{RoleUser}
	}

	return accountIdentity{
		id:       user.ID.String(),
		userID:   user.UserID,
		username: user.Username,
		email:    user.Email,
		roles:    roles,
	}
}

func (a accountIdentity) ID() string       { return a.id }
func (a accountIdentity) UserID() string   { return a.userID }
func (a accountIdentity) Username() string { return a.username }
func (a accountIdentity) Email() string    { return a.email }
func (a accountIdentity) Roles() []string  { return append([]string(nil), a.roles...) }

var _ Identity = accountIdentity{}
