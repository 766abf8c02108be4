package auth

import (
	"net/http"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/careloop/backend/rest"
)

// AuthControllerRoutes are the paths the controller mounts its handlers on.
type AuthControllerRoutes struct {
	Register string
	Login    string
	Logout   string
	Me       string
	Health   string
}

// DefaultAuthRoutes returns the route table the access policy derives its
// public set from.
func DefaultAuthRoutes() *AuthControllerRoutes {
	return &AuthControllerRoutes{
		Register: "/register",
		Login:    "/login",
		Logout:   "/logout",
		Me:       "/me",
		Health:   "/health",
	}
}

// AuthController exposes the identity subsystem over HTTP.
type AuthController struct {
	Logger Logger
	Auther Authenticator
	Routes *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: DefaultAuthRoutes(),
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

func WithAuthenticator(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithRoutes(routes *AuthControllerRoutes) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if routes != nil {
			c.Routes = routes
		}
		return c
	}
}

// RegisterAuthRoutes mounts the controller on the given router.
func RegisterAuthRoutes(app fiber.Router, opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Register, controller.RegisterPost)
	app.Post(controller.Routes.Login, controller.LoginPost)
	app.Post(controller.Routes.Logout, controller.LogoutPost)
	app.Get(controller.Routes.Me, controller.MeShow)
	app.Get(controller.Routes.Health, controller.HealthShow)

	return controller
}

// PublicRoutes lists the controller paths that never require an identity.
func (a *AuthController) PublicRoutes() []string {
	return []string{a.Routes.Register, a.Routes.Login, a.Routes.Health}
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// RegisterRequest payload
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required.Error("Username is required"),
			validation.Match(usernamePattern).
				Error("Username must be 3-20 characters, alphanumeric and underscores only"),
		),
		validation.Field(
			&r.Email,
			validation.Required.Error("Email is required"),
			is.Email.Error("Please provide a valid email address"),
		),
		validation.Field(
			&r.Password,
			validation.Required.Error("Password is required"),
			validation.Length(8, 72).
				Error("Password must be 8-72 characters"),
			validation.By(validatePasswordStrength),
		),
	)
}

// LoginRequest payload
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Identifier,
			validation.Required.Error("Username or email is required"),
		),
		validation.Field(
			&r.Password,
			validation.Required.Error("Password is required"),
		),
	)
}

func (a *AuthController) RegisterPost(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Warn("register parse payload", "error", err)
		return rest.RespondError(c, rest.BindError(err), a.Logger)
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Warn("register validate payload", "error", err)
		return rest.RespondError(c, rest.ValidationError(err), a.Logger)
	}

	result, err := a.Auther.Register(c.UserContext(), RegisterUserMessage{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		return rest.RespondError(c, err, a.Logger)
	}

	return rest.JSON(c, http.StatusCreated, rest.Success(result, "User registered successfully"))
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Warn("login parse payload", "error", err)
		return rest.RespondError(c, rest.BindError(err), a.Logger)
	}

	if err := payload.Validate(); err != nil {
		return rest.RespondError(c, rest.ValidationError(err), a.Logger)
	}

	result, err := a.Auther.Login(c.UserContext(), payload.Identifier, payload.Password)
	if err != nil {
		return rest.RespondError(c, err, a.Logger)
	}

	return rest.JSON(c, http.StatusOK, rest.Success(result, "Login successful"))
}

func (a *AuthController) MeShow(c *fiber.Ctx) error {
	identity, ok := IdentityFromContext(c.UserContext())
	if !ok {
		return rest.JSON(c, http.StatusUnauthorized, rest.Failure("Access token is missing or invalid"))
	}

	view, err := a.Auther.CurrentUser(c.UserContext(), identity.Username())
	if err != nil {
		return rest.RespondError(c, err, a.Logger)
	}

	return rest.JSON(c, http.StatusOK, rest.Success(view, "User details retrieved successfully"))
}

// LogoutPost acknowledges a stateless logout. Tokens carry no server-side
// state, so discarding the token client-side is the whole operation.
func (a *AuthController) LogoutPost(c *fiber.Ctx) error {
	return rest.JSON(c, http.StatusOK, rest.Success(nil, "Logout successful"))
}

func (a *AuthController) HealthShow(c *fiber.Ctx) error {
	return rest.JSON(c, http.StatusOK, rest.Success("Service is running", "Health check passed"))
}

// validatePasswordStrength enforces the character class requirements the
// stored digests were created under. Go's regexp has no lookaheads, so the
// classes are checked individually.
func validatePasswordStrength(value any) error {
	password, _ := value.(string)

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune("@$!%*?&", r):
			hasSpecial = true
		}
	}

	if hasLower && hasUpper && hasDigit && hasSpecial {
		return nil
	}

	return errors.New(
		"Password must be 8-72 characters and contain: uppercase letter, lowercase letter, digit, and special character (@$!%*?&)",
		errors.CategoryValidation,
	)
}
