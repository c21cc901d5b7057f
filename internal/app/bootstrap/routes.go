// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"sync"
	"time"

	auditlogfeature "github.com/dalemusser/schooladmin/internal/app/features/auditlog"
	centersfeature "github.com/dalemusser/schooladmin/internal/app/features/centers"
	dashboardfeature "github.com/dalemusser/schooladmin/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/schooladmin/internal/app/features/errors"
	healthfeature "github.com/dalemusser/schooladmin/internal/app/features/health"
	loginfeature "github.com/dalemusser/schooladmin/internal/app/features/login"
	logoutfeature "github.com/dalemusser/schooladmin/internal/app/features/logout"
	registerfeature "github.com/dalemusser/schooladmin/internal/app/features/register"
	schoolsfeature "github.com/dalemusser/schooladmin/internal/app/features/schools"
	studentsfeature "github.com/dalemusser/schooladmin/internal/app/features/students"
	teachersfeature "github.com/dalemusser/schooladmin/internal/app/features/teachers"
	"github.com/dalemusser/schooladmin/internal/app/store/audit"
	"github.com/dalemusser/schooladmin/internal/app/system/apiclient"
	"github.com/dalemusser/schooladmin/internal/app/system/auditlog"
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/dalemusser/schooladmin/internal/app/system/metrics"
	"github.com/dalemusser/schooladmin/internal/app/system/ratelimit"
	"github.com/dalemusser/schooladmin/internal/app/system/timezones"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	bgMu     sync.Mutex
	bgCancel context.CancelFunc
)

// startBackground returns a context that lives until Shutdown.
func startBackground() context.Context {
	bgMu.Lock()
	defer bgMu.Unlock()
	if bgCancel != nil {
		bgCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	bgCancel = cancel
	return ctx
}

func stopBackground() {
	bgMu.Lock()
	defer bgMu.Unlock()
	if bgCancel != nil {
		bgCancel()
		bgCancel = nil
	}
}

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The console is a thin layer over the
// school API: every feature gets the same API client, and everything under
// /dashboard sits behind the session guard.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	var upstream *metrics.Upstream
	if appCfg.MetricsEnabled {
		upstream = metrics.NewUpstream()
	}
	api, err := apiclient.New(apiclient.Options{
		BaseURL:   appCfg.APIBaseURL,
		LoginPath: appCfg.APILoginPath,
		Metrics:   upstream,
	}, logger)
	if err != nil {
		logger.Error("school API client init failed", zap.Error(err))
		return nil, err
	}

	loc, err := timezones.Resolve(appCfg.DisplayTimezone)
	if err != nil {
		return nil, err
	}
	logger.Info("display time zone", zap.String("zone", timezones.Label(loc, time.Now())))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	var events *audit.Store
	if deps.MongoDatabase != nil {
		events = audit.New(deps.MongoDatabase)
	}
	auditLog := auditlog.New(events, logger, auditlog.ConfigFromMode(appCfg.AuditLog))
	errLog := errorsfeature.NewErrorLogger(logger)

	loginLimiter := ratelimit.NewLoginLimiter()
	go loginLimiter.Run(startBackground(), 5*time.Minute)

	r := chi.NewRouter()

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(api, deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	if upstream != nil {
		r.Handle("/metrics", upstream.Handler())
	}

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})

	// Authentication
	loginHandler := loginfeature.NewHandler(api, sessionMgr, errLog, auditLog, loginLimiter, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLog, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	registerHandler := registerfeature.NewHandler(api, sessionMgr, errLog, auditLog, logger)
	r.Mount("/register", registerfeature.Routes(registerHandler))

	dashboardHandler := dashboardfeature.NewHandler(api, events, errLog, logger)
	dashboardHandler.Loc = loc
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	if events != nil {
		auditHandler := auditlogfeature.NewHandler(events, errLog, logger)
		auditHandler.Loc = loc
		r.Mount("/dashboard/audit", auditlogfeature.Routes(auditHandler, sessionMgr))
	}

	// Masters
	centersHandler := centersfeature.NewHandler(api, errLog, auditLog, logger)
	centersHandler.Loc, centersHandler.PageSize = loc, appCfg.PageSize
	r.Mount("/dashboard/masters/center", centersfeature.Routes(centersHandler, sessionMgr))

	schoolsHandler := schoolsfeature.NewHandler(api, sessionMgr, errLog, auditLog, logger)
	schoolsHandler.Loc, schoolsHandler.PageSize = loc, appCfg.PageSize
	r.Mount("/dashboard/masters/school", schoolsfeature.Routes(schoolsHandler, sessionMgr))

	teachersHandler := teachersfeature.NewHandler(api, sessionMgr, errLog, auditLog, logger)
	teachersHandler.Loc, teachersHandler.PageSize = loc, appCfg.PageSize
	r.Mount("/dashboard/masters/teacher", teachersfeature.Routes(teachersHandler, sessionMgr))

	studentsHandler := studentsfeature.NewHandler(api, sessionMgr, errLog, auditLog, logger)
	studentsHandler.Loc, studentsHandler.PageSize = loc, appCfg.PageSize
	r.Mount("/dashboard/masters/student", studentsfeature.Routes(studentsHandler, sessionMgr))

	return r, nil
}
