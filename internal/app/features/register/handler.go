// internal/app/features/register/handler.go
package register

import (
	"time"

	uierrors "github.com/dalemusser/schooladmin/internal/app/features/errors"
	"github.com/dalemusser/schooladmin/internal/app/system/apiclient"
	"github.com/dalemusser/schooladmin/internal/app/system/auditlog"
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler serves the console account sign-up form.
type Handler struct {
	API      *apiclient.Client
	Sessions *auth.SessionManager
	ErrLog   *uierrors.ErrorLogger
	Audit    *auditlog.Logger
	Log      *zap.Logger

	Render viewdata.Renderer
	Now    func() time.Time
}

func NewHandler(api *apiclient.Client, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, aud *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		API:      api,
		Sessions: sm,
		ErrLog:   errLog,
		Audit:    aud,
		Log:      logger,
		Render:   viewdata.Render,
		Now:      time.Now,
	}
}
