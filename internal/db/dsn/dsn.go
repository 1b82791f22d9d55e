// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/config"
)

// Create builds the Data Source Name from the configuration. The format
// depends on DB.Engine; an empty engine falls back to MySQL.
func Create(cfg *config.Config) string {
	if cfg.DB.Engine == config.DBEnginePostgres {
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s %s",
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Name,
			cfg.DB.Extras,
		)

		return out
	}

	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Name,
		cfg.DB.Extras,
	)

	return out
}
