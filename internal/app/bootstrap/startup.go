// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/schooladmin/internal/app/resources"
	"github.com/dalemusser/schooladmin/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeoutsFor(appCfg))
	logger.Info("upstream timeouts configured",
		zap.Duration("fetch", timeouts.Fetch()),
		zap.Duration("submit", timeouts.Submit()))

	resources.LoadSharedTemplates()
	return nil
}

// timeoutsFor derives the call bounds from api_timeout: reads get it as is,
// writes twice it, and pings a fifth (at least the default).
func timeoutsFor(appCfg AppConfig) timeouts.Config {
	d := appCfg.APITimeout
	if d <= 0 {
		return timeouts.Config{}
	}
	return timeouts.Config{
		Ping:   max(d/5, timeouts.DefaultPing),
		Fetch:  d,
		Submit: 2 * d,
	}
}
