// Package settings provides the licensee portal handlers for tenant settings.
//
// All endpoints operate on the tenant of the logged-in user; a licensee can
// never address another tenant's settings.
package settings

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/auth"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/config"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/models"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/settings"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/web/handler"
)

const (
	// Path is the path to the licensee settings endpoints.
	Path = handler.APIPath + "/licensee/settings"
)

// SettingView is the wire representation of one overridable setting as the
// licensee sees it.
type SettingView struct {
	Key         string `json:"key"`
	Category    string `json:"category"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Effective   any    `json:"effective"`
}

// UpdateRequest is the licensee settings update body.
type UpdateRequest struct {
	Updates []settings.Update `json:"updates"`
}

// UpdateResponse reports how many items of the batch were applied.
type UpdateResponse struct {
	Updated int `json:"updated"`
}

// Service is the licensee settings handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
}

// Handler is the licensee settings handler.
var Handler = Service{}

// Init initializes the licensee settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.authService = authService

	requireSettings := auth.RequirePermission(authService, auth.PermLicenseeSettings)

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, requireSettings, s.Get)
		router.Post(handler.RouterRootPath, requireSettings, s.Post)
		router.Get("/audit", requireSettings, s.GetAudit)
		router.Delete("/:key", requireSettings, s.Delete)
	})
}

// tenantFromSession returns the logged-in user's tenant and user IDs. When
// the tenant ID is 0 the error response has already been written.
func (s *Service) tenantFromSession(c *fiber.Ctx) (tenantID, userID uint64, err error) {
	sessionData := auth.UserFromContext(c)
	if sessionData == nil {
		return 0, 0, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if sessionData.User.TenantID == 0 {
		return 0, 0, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "account is not associated with a tenant",
		})
	}

	return sessionData.User.TenantID, sessionData.User.ID, nil
}

// Get returns the overridable settings with their effective values for the
// licensee's tenant.
func (s *Service) Get(c *fiber.Ctx) error {
	tenantID, _, err := s.tenantFromSession(c)
	if tenantID == 0 {
		return err
	}

	effective, err := settings.ResolveAll(s.db, tenantID)
	if err != nil {
		log.Error().Err(err).Uint64("tenant_id", tenantID).Msg("failed to resolve tenant settings")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	views := make([]SettingView, 0)

	for _, def := range settings.Definitions() {
		if !def.TenantOverridable {
			continue
		}

		views = append(views, SettingView{
			Key:         def.Key,
			Category:    string(def.Category),
			Label:       def.Label,
			Description: def.Description,
			Type:        string(def.Type),
			Effective:   effective[def.Key],
		})
	}

	return c.JSON(views)
}

// Post applies a batch of overrides for the licensee's tenant. Items for
// non-overridable keys are skipped.
func (s *Service) Post(c *fiber.Ctx) error {
	tenantID, userID, err := s.tenantFromSession(c)
	if tenantID == 0 {
		return err
	}

	req := new(UpdateRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if len(req.Updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no updates given"})
	}

	updated, err := settings.UpdateTenant(s.db, tenantID, req.Updates, userID, models.SourceLicenseeUI)
	if err != nil {
		log.Error().Err(err).Uint64("tenant_id", tenantID).Msg("tenant settings update failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Uint64("user_id", userID).
		Uint64("tenant_id", tenantID).
		Int("updated", updated).
		Int("requested", len(req.Updates)).
		Msg("tenant settings updated")

	return c.JSON(UpdateResponse{Updated: updated})
}

// Delete removes the tenant's override for one key, falling back to the
// global or default value. Deleting a key with no override is a no-op.
func (s *Service) Delete(c *fiber.Ctx) error {
	tenantID, userID, err := s.tenantFromSession(c)
	if tenantID == 0 {
		return err
	}

	key := c.Params("key")

	reset, err := settings.ResetTenant(s.db, tenantID, key, userID)
	if err != nil {
		if errors.Is(err, settings.ErrUnknownSettingKey) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Uint64("tenant_id", tenantID).Str("key", key).Msg("tenant settings reset failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(fiber.Map{"key": key, "reset": reset})
}

// GetAudit returns the change history for the licensee's own tenant.
func (s *Service) GetAudit(c *fiber.Ctx) error {
	tenantID, _, err := s.tenantFromSession(c)
	if tenantID == 0 {
		return err
	}

	tid := tenantID
	filter := settings.AuditFilter{
		TenantID: &tid,
		Key:      c.Query("key"),
		Limit:    c.QueryInt("limit"),
		Offset:   c.QueryInt("offset"),
	}

	entries, err := settings.AuditHistory(s.db, filter)
	if err != nil {
		log.Error().Err(err).Uint64("tenant_id", tenantID).Msg("failed to read tenant audit history")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(entries)
}
