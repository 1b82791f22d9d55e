package config

// Supported database engines.
const (
	DBEngineMySQL    = "mysql"
	DBEnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Engine   string // mysql or postgres, defaults to mysql
}
