package config

import (
	"time"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
}

// Webserver implement webserver settings.
type Webserver struct {
	CacheEnabled        bool    // true = enable cache, false = disable cache
	CleanPath           bool    // use clean path middleware to allow multi slash requests
	DisableRecover      bool    // disable recover middleware
	Domain              string  // domain name for the webserver
	Port                int     // listening port for the webserver
	ShutDownTime        int     // wait time for shutdown
	URL                 string  // base url for the webserver
	CookieEncryptionKey string  // encryption key for cookies
	Argon2Salt          string  // salt for argon2 hashing
	Session             Session // session settings
}

// Auth groups the authentication provider settings.
type Auth struct {
	OIDC OIDC
}

// OIDC holds the OpenID Connect provider settings. Local database
// authentication is always available; OIDC is opt-in.
type OIDC struct {
	Enabled      bool
	ProviderURL  string // provider discovery URL, e.g. "https://accounts.google.com"
	ClientID     string
	ClientSecret string
	RedirectURL  string   // callback URL registered with the provider
	Scopes       []string // defaults to openid, profile, email
}
