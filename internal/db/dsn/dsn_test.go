package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/config"
)

func TestCreate(t *testing.T) {
	testCases := []struct {
		name     string
		db       config.DB
		expected string
	}{
		{
			name: "mysql",
			db: config.DB{
				Engine:   config.DBEngineMySQL,
				Host:     "127.0.0.1",
				Port:     3306,
				User:     "camp",
				Password: "secret",
				Name:     "camp",
				Extras:   "parseTime=True",
			},
			expected: "camp:secret@tcp(127.0.0.1:3306)/camp?parseTime=True",
		},
		{
			name: "empty engine defaults to mysql",
			db: config.DB{
				Host:     "db",
				Port:     3306,
				User:     "u",
				Password: "p",
				Name:     "n",
			},
			expected: "u:p@tcp(db:3306)/n?",
		},
		{
			name: "postgres",
			db: config.DB{
				Engine:   config.DBEnginePostgres,
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "camp",
				Password: "secret",
				Name:     "camp",
				Extras:   "sslmode=disable",
			},
			expected: "host=127.0.0.1 port=5432 user=camp password=secret dbname=camp sslmode=disable",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{DB: tc.db}
			assert.Equal(t, tc.expected, Create(cfg))
		})
	}
}
