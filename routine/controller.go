package routine

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/careloop/backend/auth"
	"github.com/careloop/backend/rest"
)

// Controller exposes routine CRUD over HTTP. Every route requires an
// authenticated identity; ownership checks guard cross-user reads.
type Controller struct {
	service *Service
	logger  auth.Logger
}

func NewController(service *Service, logger auth.Logger) *Controller {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &Controller{service: service, logger: logger}
}

// RegisterRoutes mounts the controller under /routines.
func (c *Controller) RegisterRoutes(app fiber.Router) {
	group := app.Group("/routines")

	group.Post("/", c.Create)
	group.Get("/", c.List)
	group.Get("/my", c.ListMine)
	group.Get("/my/status/:status", c.ListMineByStatus)
	group.Get("/status/:status", c.ListByStatus)
	group.Get("/user/:userId", c.ListByUser)
	group.Get("/:id", c.Show)
	group.Patch("/:id", c.Update)
	group.Patch("/:id/status", c.UpdateStatus)
	group.Delete("/:id", c.Delete)
}

// CreateRequest payload
type CreateRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        Type      `json:"routineType"`
	Frequency   Frequency `json:"routineFrequency"`
	Status      Status    `json:"routineStatus"`
}

// Validate will run validation rules
func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Name,
			validation.Required.Error("Routine name is required"),
			validation.Length(1, 120),
		),
		validation.Field(
			&r.Type,
			validation.Required.Error("Routine type is required"),
			validation.By(validType),
		),
		validation.Field(&r.Frequency, validation.By(validFrequency)),
		validation.Field(&r.Status, validation.By(validStatus)),
	)
}

type statusRequest struct {
	Status Status `json:"status"`
}

func (c *Controller) Create(ctx *fiber.Ctx) error {
	payload := new(CreateRequest)

	if err := ctx.BodyParser(payload); err != nil {
		return rest.RespondError(ctx, rest.BindError(err), c.logger)
	}

	if err := payload.Validate(); err != nil {
		return rest.RespondError(ctx, rest.ValidationError(err), c.logger)
	}

	created, err := c.service.Create(ctx.UserContext(), &Routine{
		Name:        payload.Name,
		Description: payload.Description,
		Type:        payload.Type,
		Frequency:   payload.Frequency,
		Status:      payload.Status,
	})
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}

	return rest.JSON(ctx, http.StatusCreated, rest.Success(created, "Routine created successfully"))
}

func (c *Controller) List(ctx *fiber.Ctx) error {
	records, err := c.service.List(ctx.UserContext())
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}
	return rest.JSON(ctx, http.StatusOK, rest.Success(records, "Routines retrieved successfully"))
}

func (c *Controller) ListMine(ctx *fiber.Ctx) error {
	records, err := c.service.ListMine(ctx.UserContext())
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}
	return rest.JSON(ctx, http.StatusOK, rest.Success(records, "Your routines retrieved successfully"))
}

func (c *Controller) ListMineByStatus(ctx *fiber.Ctx) error {
	records, err := c.service.ListMineByStatus(ctx.UserContext(), Status(ctx.Params("status")))
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}
	return rest.JSON(ctx, http.StatusOK, rest.Success(records, "Your routines retrieved successfully"))
}

func (c *Controller) ListByStatus(ctx *fiber.Ctx) error {
	records, err := c.service.ListByStatus(ctx.UserContext(), Status(ctx.Params("status")))
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}
	return rest.JSON(ctx, http.StatusOK, rest.Success(records, "Routines retrieved successfully"))
}

// ListByUser only serves the caller's own routines unless they are an admin.
func (c *Controller) ListByUser(ctx *fiber.Ctx) error {
	target := ctx.Params("userId")

	identity, _ := auth.IdentityFromContext(ctx.UserContext())
	if identity == nil || (identity.Username() != target && !hasRole(identity, auth.RoleAdmin)) {
		return rest.JSON(ctx, http.StatusForbidden, rest.Failure("Access denied: Cannot access other user's routines"))
	}

	records, err := c.service.ListByUser(ctx.UserContext(), target)
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}
	return rest.JSON(ctx, http.StatusOK, rest.Success(records, "User routines retrieved successfully"))
}

func (c *Controller) Show(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}

	record, err := c.service.Get(ctx.UserContext(), id)
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}
	return rest.JSON(ctx, http.StatusOK, rest.Success(record, "Routine retrieved successfully"))
}

func (c *Controller) Update(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}

	payload := new(CreateRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return rest.RespondError(ctx, rest.BindError(err), c.logger)
	}

	if err := payload.Validate(); err != nil {
		return rest.RespondError(ctx, rest.ValidationError(err), c.logger)
	}

	updated, err := c.service.Update(ctx.UserContext(), id, &Routine{
		Name:        payload.Name,
		Description: payload.Description,
		Type:        payload.Type,
		Frequency:   payload.Frequency,
		Status:      payload.Status,
	})
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}

	return rest.JSON(ctx, http.StatusOK, rest.Success(updated, "Routine updated successfully"))
}

func (c *Controller) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}

	payload := new(statusRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return rest.RespondError(ctx, rest.BindError(err), c.logger)
	}

	updated, err := c.service.UpdateStatus(ctx.UserContext(), id, payload.Status)
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}

	return rest.JSON(ctx, http.StatusOK, rest.Success(updated, "Routine status updated successfully"))
}

func (c *Controller) Delete(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}

	if err := c.service.Delete(ctx.UserContext(), id); err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}

	return rest.JSON(ctx, http.StatusOK, rest.Success(nil, "Routine deleted successfully"))
}

func parseID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, rest.BindError(err)
	}
	return id, nil
}

func hasRole(identity auth.Identity, role string) bool {
	for _, r := range identity.Roles() {
		if r == role {
			return true
		}
	}
	return false
}

func validType(value any) error {
	t, _ := value.(Type)
	if t == "" || t.Valid() {
		return nil
	}
	return validation.NewError("validation_routine_type", "Routine type must be one of SKIN, HAIR, FACE")
}

func validFrequency(value any) error {
	f, _ := value.(Frequency)
	if f == "" || f.Valid() {
		return nil
	}
	return validation.NewError("validation_routine_frequency", "Invalid routine frequency")
}

func validStatus(value any) error {
	s, _ := value.(Status)
	if s == "" || s.Valid() {
		return nil
	}
	return validation.NewError("validation_routine_status", "Invalid routine status")
}
