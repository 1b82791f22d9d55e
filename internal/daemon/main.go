// Package daemon wires configuration, database, session storage and the web
// service into a running application.
package daemon

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/config"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/dsn"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/models"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/web"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start runs the web service and blocks until shutdown.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go d.webService.WaitShutdown()

	return d.webService.Start(addr)
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := gorm.Open(openDialector(cfg), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	if err = db.AutoMigrate(
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.User{},
		&models.Tenant{},
		&models.Setting{},
		&models.SettingsAuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
		return nil
	}

	seed(cfg, db)

	session.Init(openSessionStorage(cfg))

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}
}

// openDialector selects the gorm driver for the configured engine. An empty
// engine falls back to MySQL, matching dsn.Create.
func openDialector(cfg *config.Config) gorm.Dialector {
	if cfg.DB.Engine == config.DBEnginePostgres {
		return gormpostgres.Open(dsn.Create(cfg))
	}

	return gormmysql.Open(dsn.Create(cfg))
}

// openSessionStorage creates the fiber session store on the same database
// engine the application uses.
func openSessionStorage(cfg *config.Config) fiber.Storage {
	if cfg.DB.Engine == config.DBEnginePostgres {
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         "sessions",
		})
	}

	return sessionmysql.New(sessionmysql.Config{
		ConnectionURI: dsn.Create(cfg),
		Table:         "sessions",
	})
}
