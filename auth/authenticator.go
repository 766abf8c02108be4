package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

// Auther orchestrates registration and login: uniqueness checks, account
// creation, credential verification, and token issuance.
type Auther struct {
	repo     RepositoryManager
	provider IdentityProvider
	tokens   TokenService
	hasher   PasswordAuthenticator
	logger   Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(repo RepositoryManager, provider IdentityProvider, tokens TokenService) *Auther {
	return &Auther{
		repo:     repo,
		provider: provider,
		tokens:   tokens,
		hasher:   NewPasswordHasher(),
		logger:   defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *Auther) WithHasher(hasher PasswordAuthenticator) *Auther {
	if hasher != nil {
		s.hasher = hasher
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokens
}

// RegisterUserMessage carries a registration request into the service.
// Payload shape validation happens at the transport boundary; by the time
// the message arrives here the fields are well formed.
type RegisterUserMessage struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Register creates an account and issues its first token. The existence
// pre-checks give fast, friendly duplicate errors; the store's unique
// indexes remain the authoritative guard, so a concurrent duplicate that
// slips past the pre-check still fails with the same error kind.
func (s *Auther) Register(ctx context.Context, msg RegisterUserMessage) (*AuthResult, error) {
	username := NormalizeIdentifier(msg.Username)
	email := NormalizeIdentifier(msg.Email)

	s.logger.Info("registration attempt", "username", username, "email", email)

	users := s.repo.Users()

	if taken, err := users.ExistsByUsername(ctx, username); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check username uniqueness")
	} else if taken {
		s.logger.Warn("registration failed, username exists", "username", username)
		return nil, ErrDuplicateUsername
	}

	if taken, err := users.ExistsByEmail(ctx, email); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check email uniqueness")
	} else if taken {
		s.logger.Warn("registration failed, email exists", "email", email)
		return nil, ErrDuplicateEmail
	}

	hash, err := s.hasher.HashPassword(msg.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Roles:        []string{RoleUser},
		CreatedBy:    username,
	}

	if id, err := hashid.NewUUID(username + ":" + email); err == nil {
		user.UserID = id.String()
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		created, err := users.RegisterTx(ctx, tx, user)
		if err != nil {
			return err
		}
		user = created
		return nil
	})

	if err != nil {
		var rich *errors.Error
		if errors.As(err, &rich) {
			return nil, rich
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "user registration transaction failed")
	}

	s.logger.Info("registration successful", "username", user.Username)

	return s.authResult(user)
}

// Login verifies credentials and issues a fresh token, with a new issued-at
// and expiry every time. Unknown identifier and wrong password both surface
// as ErrAuthenticationFailed so the response cannot be used to enumerate
// accounts; the distinguishing cause is logged here and only here.
func (s *Auther) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		if IsTextCode(err, TextCodeTooManyAttempts) {
			s.logger.Warn("login blocked by attempt cooldown", "identifier", identifier)
			return nil, err
		}
		if IsTextCode(err, TextCodeAccountNotFound) || IsTextCode(err, TextCodeBadCredentials) {
			s.logger.Warn("login failed", "identifier", identifier, "cause", err)
			return nil, ErrAuthenticationFailed
		}
		s.logger.Error("login verify identity error", "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "authentication manager failure")
	}

	user, err := s.repo.Users().GetByUsername(ctx, identity.Username())
	if err != nil {
		s.logger.Error("login could not load account for verified identity", "username", identity.Username())
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load account")
	}

	s.logger.Info("login successful", "username", user.Username)

	return s.authResult(user)
}

// CurrentUser is the lookup behind /me for already-authenticated requests.
func (s *Auther) CurrentUser(ctx context.Context, username string) (*UserView, error) {
	user, err := s.repo.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			// A valid token whose subject no longer resolves is a
			// consistency anomaly worth the louder log level.
			s.logger.Error("authenticated subject missing from store", "username", username)
			return nil, ErrAccountNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load current user")
	}

	return user.PublicView(), nil
}

func (s *Auther) authResult(user *User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
		User:      user.PublicView(),
	}, nil
}

var _ Authenticator = (*Auther)(nil)
