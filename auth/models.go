package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Role labels an account may carry. Every account has at least RoleUser.
const (
	RoleUser      = "USER"
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

// User is the account model. Username and email are globally unique among
// non-deleted accounts, enforced by unique indexes in the store; the
// password digest is set at creation and never copied into outward views.
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID         string     `bun:"user_id,notnull" json:"user_id,omitempty"`
	Username       string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash   string     `bun:"password_hash,notnull" json:"-"`
	Roles          []string   `bun:"roles,type:jsonb" json:"roles,omitempty"`
	ProfilePicture string     `bun:"profile_picture" json:"profile_picture,omitempty"`
	LoginAttempts  int        `bun:"login_attempts" json:"login_attempts,omitempty"`
	LoginAttemptAt *time.Time `bun:"login_attempt_at" json:"login_attempt_at,omitempty"`
	LoggedInAt     *time.Time `bun:"loggedin_at" json:"loggedin_at,omitempty"`
	CreatedBy      string     `bun:"created_by" json:"created_by,omitempty"`
	UpdatedBy      string     `bun:"updated_by" json:"updated_by,omitempty"`
	DeletedBy      string     `bun:"deleted_by" json:"deleted_by,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// EnsureRoles applies the default role set to accounts created without one.
func (u *User) EnsureRoles() {
	if len(u.Roles) == 0 {
		u.Roles = []string{RoleUser}
	}
}

// HasRole reports whether the account carries the given role label.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserView is the public-safe projection of an account. The password digest
// is structurally absent, not merely omitted.
type UserView struct {
	ID            string   `json:"id"`
	UserID        string   `json:"userId"`
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	Roles         []string `json:"roles"`
	ProfilePicURL string   `json:"profilePicUrl,omitempty"`
}

// PublicView projects the account into its outward shape.
func (u *User) PublicView() *UserView {
	view := &UserView{
		ID:            u.ID.String(),
		UserID:        u.UserID,
		Username:      u.Username,
		Email:         u.Email,
		Roles:         append([]string(nil), u.Roles...),
		ProfilePicURL: u.ProfilePicture,
	}
	if len(view.Roles) == 0 {
		view.Roles = []string{RoleUser}
	}
	return view
}

// AuthResult is what registration and login hand back to the transport
// layer: the bearer token plus the public-safe account view.
type AuthResult struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresIn int64     `json:"expiresIn"`
	User      *UserView `json:"user"`
}

// NormalizeIdentifier applies the single normalization rule used at both
// write and read time: trim surrounding whitespace and lowercase. Username
// and email are normalized identically so lookups always match stored values.
func NormalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
