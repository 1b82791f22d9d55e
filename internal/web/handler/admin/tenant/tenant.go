// Package tenant provides the HQ admin handlers for managing licensees.
package tenant

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/auth"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/config"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/controller/tenant"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/web/handler"
)

const (
	// Path is the path to the admin tenant endpoints.
	Path = handler.APIPath + "/admin/tenants"
)

// CreateRequest is the tenant creation body.
type CreateRequest struct {
	Slug         string `json:"slug"         validate:"required,hostname"`
	Name         string `json:"name"         validate:"required"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
}

// ActiveRequest toggles a tenant's active flag.
type ActiveRequest struct {
	Active bool `json:"active"`
}

// Service is the admin tenant handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
	validator   *validator.Validate
}

// Handler is the admin tenant handler.
var Handler = Service{}

// Init initializes the admin tenant handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.authService = authService
	s.validator = validator.New()

	requireTenants := auth.RequirePermission(authService, auth.PermAdminTenants)

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, requireTenants, s.Get)
		router.Post(handler.RouterRootPath, requireTenants, s.Post)
		router.Get("/:id", requireTenants, s.GetOne)
		router.Put("/:id/active", requireTenants, s.PutActive)
		router.Delete("/:id", requireTenants, s.Delete)
	})
}

// Get lists all tenants ordered by slug.
func (s *Service) Get(c *fiber.Ctx) error {
	tenants, err := tenant.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list tenants")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(tenants)
}

// GetOne returns a single tenant by ID.
func (s *Service) GetOne(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tenant id"})
	}

	row, err := tenant.GetByID(s.db, uint64(id))
	if errors.Is(err, tenant.ErrTenantNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		log.Error().Err(err).Int("tenant_id", id).Msg("failed to get tenant")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(row)
}

// Post creates a new tenant.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(CreateRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	row, err := tenant.Create(s.db, req.Slug, req.Name, req.ContactEmail)
	if err != nil {
		switch {
		case errors.Is(err, tenant.ErrTenantSlugEmpty), errors.Is(err, tenant.ErrTenantNameEmpty):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, tenant.ErrTenantAlreadyExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Error().Err(err).Str("slug", req.Slug).Msg("failed to create tenant")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
	}

	log.Info().Str("slug", row.Slug).Uint64("tenant_id", row.ID).Msg("tenant created")

	return c.Status(fiber.StatusCreated).JSON(row)
}

// PutActive activates or deactivates a tenant.
func (s *Service) PutActive(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tenant id"})
	}

	req := new(ActiveRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := tenant.SetActive(s.db, uint64(id), req.Active); err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Int("tenant_id", id).Msg("failed to update tenant active flag")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().Int("tenant_id", id).Bool("active", req.Active).Msg("tenant active flag updated")

	return c.JSON(fiber.Map{"id": id, "active": req.Active})
}

// Delete removes a tenant.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tenant id"})
	}

	if err := tenant.Delete(s.db, uint64(id)); err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Int("tenant_id", id).Msg("failed to delete tenant")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().Int("tenant_id", id).Msg("tenant deleted")

	return c.SendStatus(fiber.StatusNoContent)
}
