// Package bearerware installs a request identity from a bearer token.
//
// The gate is opportunistic: a missing, malformed, or expired token never
// fails the request here. The gate only resolves an identity when it can,
// and leaves enforcement to RequireIdentity, which consults the access
// policy for the route.
package bearerware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/careloop/backend/auth"
	"github.com/careloop/backend/rest"
)

var defaultAuthScheme = "Bearer"

// ContextKey is where the resolved identity is stored in fiber locals.
const ContextKey = "identity"

type Config struct {
	// Filter skips the gate entirely when it returns true.
	Filter func(*fiber.Ctx) bool
	// Tokens validates raw bearer tokens. Required.
	Tokens auth.TokenService
	// Identities resolves token subjects to accounts. Required.
	Identities auth.IdentityProvider
	// AuthScheme defaults to "Bearer".
	AuthScheme string
	// ContextKey defaults to "identity".
	ContextKey string
	Logger     auth.Logger
}

func getDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Tokens == nil {
		panic("AUTH: bearer middleware configuration: TokenService is required.")
	}

	if cfg.Identities == nil {
		panic("AUTH: bearer middleware configuration: IdentityProvider is required.")
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = defaultAuthScheme
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = ContextKey
	}

	if cfg.Logger == nil {
		cfg.Logger = auth.DefaultLogger()
	}

	return cfg
}

// New creates the identity gate. It inspects the Authorization header and,
// when it holds a valid token for a known account, installs the identity in
// both fiber locals and the request context. Every request proceeds.
func New(config ...Config) fiber.Handler {
	cfg := getDefaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		if _, ok := auth.IdentityFromContext(c.UserContext()); ok {
			return c.Next()
		}

		raw, ok := tokenFromHeader(c.Get(fiber.HeaderAuthorization), cfg.AuthScheme)
		if !ok {
			return c.Next()
		}

		claims, err := cfg.Tokens.Validate(raw)
		if err != nil {
			cfg.Logger.Debug("bearer token rejected", "error", err)
			return c.Next()
		}

		identity, err := cfg.Identities.FindIdentityByUsername(c.UserContext(), claims.Subject())
		if err != nil {
			cfg.Logger.Debug("bearer subject not resolved", "subject", claims.Subject(), "error", err)
			return c.Next()
		}

		c.Locals(cfg.ContextKey, identity)
		c.SetUserContext(auth.WithIdentity(c.UserContext(), identity))

		return c.Next()
	}
}

// RequireIdentity enforces the access policy: public routes and CORS
// preflight pass through, everything else needs an identity installed by the
// gate.
func RequireIdentity(policy *auth.AccessPolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch policy.Decide(c.Method(), c.Path()) {
		case auth.DecisionPublic, auth.DecisionPermitPreflight:
			return c.Next()
		}

		if _, ok := auth.IdentityFromContext(c.UserContext()); !ok {
			return rest.JSON(c, http.StatusUnauthorized, rest.Failure("Access token is missing or invalid"))
		}

		return c.Next()
	}
}

// tokenFromHeader extracts the raw token from an Authorization header value.
func tokenFromHeader(header, authScheme string) (string, bool) {
	l := len(authScheme)
	if len(header) > l+1 && strings.EqualFold(header[:l], authScheme) {
		token := strings.TrimSpace(header[l:])
		if token != "" {
			return token, true
		}
	}
	return "", false
}
