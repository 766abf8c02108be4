package auth_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/careloop/backend/auth"
)

const sqliteCreateUsers = `CREATE TABLE users (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL,
    username VARCHAR NOT NULL,
    email VARCHAR NOT NULL,
    password_hash VARCHAR NOT NULL,
    roles TEXT NOT NULL DEFAULT '["USER"]',
    profile_picture VARCHAR,
    login_attempts INTEGER NOT NULL DEFAULT 0,
    login_attempt_at TIMESTAMP,
    loggedin_at TIMESTAMP,
    created_by VARCHAR,
    updated_by VARCHAR,
    deleted_by VARCHAR,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at TIMESTAMP
);
CREATE UNIQUE INDEX idx_users_username ON users (username);
CREATE UNIQUE INDEX idx_users_email ON users (email);`

// storeTracker narrows the users repository to the tracker slice the
// identity provider needs, as the composition root does.
type storeTracker struct {
	users auth.Users
}

func (a storeTracker) GetByIdentifier(ctx context.Context, identifier string) (*auth.User, error) {
	return a.users.GetByIdentifier(ctx, identifier)
}

func (a storeTracker) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return a.users.GetByUsername(ctx, username)
}

func (a storeTracker) TrackAttemptedLogin(ctx context.Context, user *auth.User) error {
	return a.users.TrackAttemptedLogin(ctx, user)
}

func (a storeTracker) TrackSuccessfulLogin(ctx context.Context, user *auth.User) error {
	return a.users.TrackSuccessfulLogin(ctx, user)
}

func setupUsersStore(t *testing.T) auth.RepositoryManager {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec(sqliteCreateUsers)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})

	return auth.NewRepositoryManager(db)
}

func newStoreBackedAuther(repo auth.RepositoryManager) *auth.Auther {
	tokens := newTestTokenService(time.Hour)
	provider := auth.NewUserProvider(storeTracker{users: repo.Users()})
	return auth.NewAuthenticator(repo, provider, tokens)
}

func TestUsersRepository_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	repo := setupUsersStore(t)
	auther := newStoreBackedAuther(repo)

	registered, err := auther.Register(ctx, auth.RegisterUserMessage{
		Username: " Walter ",
		Email:    "Walter@Example.com",
		Password: "Sup3r$ecret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "walter", registered.User.Username)
	assert.Equal(t, "walter@example.com", registered.User.Email)
	assert.Equal(t, []string{auth.RoleUser}, registered.User.Roles)
	assert.NotEmpty(t, registered.User.UserID)

	t.Run("login by username issues a token and records the login", func(t *testing.T) {
		result, err := auther.Login(ctx, "walter", "Sup3r$ecret1")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)

		claims, err := newTestTokenService(time.Hour).Validate(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "walter", claims.Subject())

		user, err := repo.Users().GetByUsername(ctx, "walter")
		require.NoError(t, err)
		assert.NotNil(t, user.LoggedInAt)
		assert.Zero(t, user.LoginAttempts)
	})

	t.Run("login by email with sloppy casing resolves the same account", func(t *testing.T) {
		result, err := auther.Login(ctx, " WALTER@example.COM ", "Sup3r$ecret1")
		require.NoError(t, err)
		assert.Equal(t, "walter", result.User.Username)
	})

	t.Run("wrong password is tracked against the account", func(t *testing.T) {
		_, err := auther.Login(ctx, "walter", "wrong-password")
		assert.True(t, auth.IsTextCode(err, auth.TextCodeAuthenticationFailed))

		user, err := repo.Users().GetByUsername(ctx, "walter")
		require.NoError(t, err)
		assert.Equal(t, 1, user.LoginAttempts)
		assert.NotNil(t, user.LoginAttemptAt)
	})

	t.Run("a later successful login clears the attempt counter", func(t *testing.T) {
		_, err := auther.Login(ctx, "walter", "Sup3r$ecret1")
		require.NoError(t, err)

		user, err := repo.Users().GetByUsername(ctx, "walter")
		require.NoError(t, err)
		assert.Zero(t, user.LoginAttempts)
		assert.Nil(t, user.LoginAttemptAt)
	})
}

func TestUsersRepository_DuplicateRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("second registration with the same username is a conflict", func(t *testing.T) {
		repo := setupUsersStore(t)
		auther := newStoreBackedAuther(repo)

		_, err := auther.Register(ctx, auth.RegisterUserMessage{
			Username: "walter",
			Email:    "walter@example.com",
			Password: "Sup3r$ecret1",
		})
		require.NoError(t, err)

		_, err = auther.Register(ctx, auth.RegisterUserMessage{
			Username: "walter",
			Email:    "other@example.com",
			Password: "Sup3r$ecret1",
		})
		assert.True(t, auth.IsTextCode(err, auth.TextCodeDuplicateUsername))
	})

	t.Run("unique index is authoritative when the pre-check is bypassed", func(t *testing.T) {
		repo := setupUsersStore(t)
		users := repo.Users()

		_, err := users.Register(ctx, &auth.User{
			UserID:       "u-1",
			Username:     "walter",
			Email:        "walter@example.com",
			PasswordHash: "digest",
		})
		require.NoError(t, err)

		_, err = users.Register(ctx, &auth.User{
			UserID:       "u-2",
			Username:     "walter",
			Email:        "another@example.com",
			PasswordHash: "digest",
		})
		assert.True(t, auth.IsTextCode(err, auth.TextCodeDuplicateUsername))

		_, err = users.Register(ctx, &auth.User{
			UserID:       "u-3",
			Username:     "another",
			Email:        "walter@example.com",
			PasswordHash: "digest",
		})
		assert.True(t, auth.IsTextCode(err, auth.TextCodeDuplicateEmail))
	})

	t.Run("concurrent registrations end with exactly one account", func(t *testing.T) {
		repo := setupUsersStore(t)
		auther := newStoreBackedAuther(repo)

		msg := auth.RegisterUserMessage{
			Username: "walter",
			Email:    "walter@example.com",
			Password: "Sup3r$ecret1",
		}

		const attempts = 2
		results := make([]error, attempts)

		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = auther.Register(context.Background(), msg)
			}(i)
		}
		wg.Wait()

		var successes, conflicts int
		for _, err := range results {
			if err == nil {
				successes++
				continue
			}
			var rich *goerrors.Error
			require.True(t, goerrors.As(err, &rich), "unexpected error kind: %v", err)
			assert.Equal(t, goerrors.CategoryConflict, rich.Category)
			conflicts++
		}

		assert.Equal(t, 1, successes)
		assert.Equal(t, attempts-1, conflicts)

		exists, err := repo.Users().ExistsByUsername(context.Background(), "walter")
		require.NoError(t, err)
		assert.True(t, exists)
	})
}
