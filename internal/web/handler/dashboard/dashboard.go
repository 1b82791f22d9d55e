// Package dashboard provides the dashboard handler summarizing platform state.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/auth"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/config"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/controller/tenant"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/models"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/settings"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/web/handler"
)

const (
	// Path is the path to the dashboard endpoint.
	Path = handler.RootPath + "dashboard"
)

// Data is the dashboard summary payload.
type Data struct {
	Title            string `json:"title"`
	SiteName         string `json:"siteName"`
	MaintenanceMode  bool   `json:"maintenanceMode"`
	PaymentsEnabled  bool   `json:"paymentsEnabled"`
	StripeMode       string `json:"stripeMode"`
	RegistrationOpen bool   `json:"registrationOpen"`
	TenantCount      int    `json:"tenantCount,omitempty"`
	ActiveTenants    int    `json:"activeTenants,omitempty"`
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.authService = authService

	// register routes with permission checks
	app.Get(Path,
		auth.RequirePermission(authService, auth.PermDashboardView),
		s.Get,
	)
}

// Get returns the platform summary for the current user. Tenant-scoped users
// see their own tenant's effective state; HQ staff see the global view plus
// tenant counts.
func (s *Service) Get(c *fiber.Ctx) error {
	sessionData := auth.UserFromContext(c)
	if sessionData == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	tenantID := sessionData.User.TenantID

	siteName, err := settings.Resolve(s.db, settings.KeySiteName, tenantID)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve site name")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	data := Data{
		Title:            s.cfg.Title,
		MaintenanceMode:  settings.MaintenanceMode(s.db),
		PaymentsEnabled:  settings.PaymentsEnabled(s.db),
		StripeMode:       settings.ActiveStripeMode(s.db),
		RegistrationOpen: settings.RegistrationOpen(s.db, tenantID),
	}

	if name, ok := siteName.(string); ok {
		data.SiteName = name
	}

	// HQ staff additionally see tenant counts
	if tenantID == 0 {
		tenants, err := tenant.GetAll(s.db)
		if err != nil {
			log.Error().Err(err).Msg("failed to list tenants")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}

		data.TenantCount = len(tenants)
		data.ActiveTenants = countActive(tenants)
	}

	log.Debug().
		Uint64("user_id", sessionData.User.ID).
		Uint64("tenant_id", tenantID).
		Bool("maintenance_mode", data.MaintenanceMode).
		Msg("dashboard summary retrieved")

	return c.JSON(data)
}

func countActive(tenants []models.Tenant) int {
	active := 0

	for i := range tenants {
		if tenants[i].Active {
			active++
		}
	}

	return active
}
