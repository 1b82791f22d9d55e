// Package settings provides the HQ admin handlers for platform settings.
package settings

import (
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
	// Path is the path to the admin settings endpoints.
	Path = handler.APIPath + "/admin/settings"
)

// DefinitionView is the wire representation of one registered setting.
type DefinitionView struct {
	Key               string `json:"key"`
	Category          string `json:"category"`
	Label             string `json:"label"`
	Description       string `json:"description"`
	Type              string `json:"type"`
	Default           any    `json:"default"`
	TenantOverridable bool   `json:"tenantOverridable"`
	Effective         any    `json:"effective"`
}

// UpdateRequest is the admin settings update body.
type UpdateRequest struct {
	Updates []settings.Update `json:"updates"`
}

// UpdateResponse reports how many items of the batch were applied.
type UpdateResponse struct {
	Updated int `json:"updated"`
}

// Service is the admin settings handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
}

// Handler is the admin settings handler.
var Handler = Service{}

// Init initializes the admin settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.authService = authService

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath,
			auth.RequirePermission(authService, auth.PermAdminSettings),
			s.Get,
		)
		router.Post(handler.RouterRootPath,
			auth.RequirePermission(authService, auth.PermAdminSettings),
			s.Post,
		)
		router.Get("/audit",
			auth.RequirePermission(authService, auth.PermAdminAudit),
			s.GetAudit,
		)
	})
}

// Get returns all registered settings with their effective GLOBAL values.
func (s *Service) Get(c *fiber.Ctx) error {
	effective, err := settings.ResolveAll(s.db, 0)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve global settings")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	definitions := settings.Definitions()
	views := make([]DefinitionView, 0, len(definitions))

	for _, def := range definitions {
		views = append(views, DefinitionView{
			Key:               def.Key,
			Category:          string(def.Category),
			Label:             def.Label,
			Description:       def.Description,
			Type:              string(def.Type),
			Default:           def.Default,
			TenantOverridable: def.TenantOverridable,
			Effective:         effective[def.Key],
		})
	}

	return c.JSON(views)
}

// Post applies a batch of GLOBAL setting updates. Invalid items are skipped;
// the response reports the number applied.
func (s *Service) Post(c *fiber.Ctx) error {
	sessionData := auth.UserFromContext(c)
	if sessionData == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	req := new(UpdateRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if len(req.Updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no updates given"})
	}

	updated, err := settings.UpdateGlobal(s.db, req.Updates, sessionData.User.ID, models.SourceAdminUI)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", sessionData.User.ID).Msg("global settings update failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Uint64("user_id", sessionData.User.ID).
		Int("updated", updated).
		Int("requested", len(req.Updates)).
		Msg("global settings updated")

	return c.JSON(UpdateResponse{Updated: updated})
}

// GetAudit returns the settings change history, newest first. Supports
// tenantId, key, limit and offset query parameters.
func (s *Service) GetAudit(c *fiber.Ctx) error {
	filter := settings.AuditFilter{
		Key:    c.Query("key"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}

	if tenantID := c.QueryInt("tenantId", -1); tenantID >= 0 {
		tid := uint64(tenantID)
		filter.TenantID = &tid
	}

	entries, err := settings.AuditHistory(s.db, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to read settings audit history")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(entries)
}
