// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/schooladmin/internal/app/system/apiclient"
	"github.com/dalemusser/schooladmin/internal/app/system/auditlog"
	"github.com/dalemusser/schooladmin/internal/app/system/timezones"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// minProdKeyLen is the shortest session key accepted in production.
const minProdKeyLen = 32

// appConfigKeys defines the configuration keys for the console.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: SCHOOLADMIN_API_BASE_URL, SCHOOLADMIN_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:8075", Desc: "Base URL of the school API"},
	{Name: "api_login_path", Default: apiclient.DefaultLoginPath, Desc: "Login endpoint path on the school API"},
	{Name: "api_timeout", Default: "10s", Desc: "Timeout for one school API read (e.g., 10s); writes get twice this"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "schooladmin-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "12h", Desc: "Session cookie lifetime"},

	{Name: "page_size", Default: 5, Desc: "Rows per list page"},
	{Name: "display_timezone", Default: timezones.Default, Desc: "IANA time zone for displayed and exported timestamps"},

	{Name: "mongo_uri", Default: "", Desc: "MongoDB URI for the audit store (blank disables it)"},
	{Name: "mongo_database", Default: "schooladmin", Desc: "MongoDB database name"},

	{Name: "audit_log", Default: "log", Desc: "Audit logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "metrics_enabled", Default: true, Desc: "Serve Prometheus metrics at /metrics"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, SCHOOLADMIN_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SCHOOLADMIN", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL:   appValues.String("api_base_url"),
		APILoginPath: appValues.String("api_login_path"),
		APITimeout:   appValues.Duration("api_timeout", 10*time.Second),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 12*time.Hour),

		PageSize:        appValues.Int("page_size"),
		DisplayTimezone: appValues.String("display_timezone"),

		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		AuditLog:       appValues.String("audit_log"),
		MetricsEnabled: appValues.Bool("metrics_enabled"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if _, err := apiclient.ParseBaseURL(appCfg.APIBaseURL); err != nil {
		logger.Error("invalid school API base URL", zap.Error(err))
		return fmt.Errorf("invalid api_base_url: %w", err)
	}
	if coreCfg.Env == "prod" && len(appCfg.SessionKey) < minProdKeyLen {
		return fmt.Errorf("session_key must be at least %d characters in prod", minProdKeyLen)
	}
	if appCfg.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", appCfg.PageSize)
	}
	if !timezones.Valid(appCfg.DisplayTimezone) {
		return fmt.Errorf("display_timezone %q is not a known time zone", appCfg.DisplayTimezone)
	}
	switch appCfg.AuditLog {
	case auditlog.ModeAll, auditlog.ModeDB, auditlog.ModeLog, auditlog.ModeOff:
	default:
		return fmt.Errorf("audit_log must be all, db, log or off, got %q", appCfg.AuditLog)
	}
	if appCfg.MongoURI != "" {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	} else if appCfg.AuditLog == auditlog.ModeDB {
		logger.Warn("audit_log is 'db' but mongo_uri is blank; audit events will be dropped")
	}
	return nil
}
