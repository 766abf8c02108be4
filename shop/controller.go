package shop

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/careloop/backend/auth"
	"github.com/careloop/backend/rest"
)

// Controller exposes shop CRUD over HTTP. All routes require an
// authenticated identity.
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

// RegisterRoutes mounts the controller under /shop.
func (c *Controller) RegisterRoutes(app fiber.Router) {
	group := app.Group("/shop")

	group.Post("/", c.Create)
	group.Get("/", c.List)
	group.Get("/user/:userId", c.ShowByUser)
	group.Patch("/:id", c.Update)
	group.Delete("/:id", c.Delete)
}

type shopRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	GSTIN       string `json:"gstin"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

func (r *shopRequest) model() *Shop {
	return &Shop{
		Name:        r.Name,
		Description: r.Description,
		GSTIN:       r.GSTIN,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
	}
}

func (c *Controller) Create(ctx *fiber.Ctx) error {
	payload := new(shopRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return rest.RespondError(ctx, rest.BindError(err), c.logger)
	}

	created, err := c.service.Create(ctx.UserContext(), payload.model())
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}

	return rest.JSON(ctx, http.StatusCreated, rest.Success(created, "Shop created successfully"))
}

func (c *Controller) List(ctx *fiber.Ctx) error {
	records, err := c.service.List(ctx.UserContext())
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}
	return rest.JSON(ctx, http.StatusOK, rest.Success(records, "Shops retrieved successfully"))
}

func (c *Controller) ShowByUser(ctx *fiber.Ctx) error {
	record, err := c.service.GetByUser(ctx.UserContext(), ctx.Params("userId"))
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}
	return rest.JSON(ctx, http.StatusOK, rest.Success(record, "Shop retrieved successfully"))
}

func (c *Controller) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return rest.RespondError(ctx, rest.BindError(err), c.logger)
	}

	payload := new(shopRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return rest.RespondError(ctx, rest.BindError(err), c.logger)
	}

	updated, err := c.service.Update(ctx.UserContext(), id, payload.model())
	if err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}

	return rest.JSON(ctx, http.StatusOK, rest.Success(updated, "Shop updated successfully"))
}

func (c *Controller) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return rest.RespondError(ctx, rest.BindError(err), c.logger)
	}

	if err := c.service.Delete(ctx.UserContext(), id); err != nil {
		return rest.RespondError(ctx, err, c.logger)
	}

	return rest.JSON(ctx, http.StatusOK, rest.Success(nil, "Shop deleted successfully"))
}
