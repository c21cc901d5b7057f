// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, log level, CORS, body limits).
type AppConfig struct {
	// School API
	APIBaseURL   string        // scheme://host[:port] of the school API
	APILoginPath string        // credential exchange endpoint, relative to APIBaseURL
	APITimeout   time.Duration // bound on one collection fetch; writes get twice this

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: schooladmin-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime; the token's exp still decides validity

	// List pages
	PageSize        int    // rows per list page
	DisplayTimezone string // IANA zone for "Created" columns and exports

	// Optional MongoDB audit store. Blank URI disables it.
	MongoURI      string
	MongoDatabase string

	// Audit logging: "all" (db+log), "db", "log", or "off"
	AuditLog string

	// Expose Prometheus metrics at /metrics.
	MetricsEnabled bool
}
