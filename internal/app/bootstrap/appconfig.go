// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (FAMHUB_* prefix),
// configuration files, or command-line flags (loaded in LoadConfig).
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS); AppConfig is everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// Base URL for OAuth callbacks
	BaseURL string

	// Google OAuth configuration; when blank the provider routes answer 404
	// and only the bootstrap local login works.
	GoogleClientID     string
	GoogleClientSecret string

	// Bootstrap local admin. When both are set, Startup provisions (or
	// refreshes) an admin account with a bcrypt hash of the password.
	AdminEmail    string
	AdminPassword string

	// Seed values for the coming-from option list, comma separated. Only
	// applied when the collection is empty.
	ComingFromSeed string
}
