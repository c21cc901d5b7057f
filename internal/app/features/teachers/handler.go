// internal/app/features/teachers/handler.go
package teachers

import (
	"time"

	uierrors "github.com/dalemusser/schooladmin/internal/app/features/errors"
	"github.com/dalemusser/schooladmin/internal/app/system/apiclient"
	"github.com/dalemusser/schooladmin/internal/app/system/auditlog"
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/dalemusser/schooladmin/internal/app/system/paging"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for the teacher master pages.
type Handler struct {
	API      *apiclient.Client
	Sessions *auth.SessionManager
	ErrLog   *uierrors.ErrorLogger
	Audit    *auditlog.Logger
	Log      *zap.Logger

	Loc      *time.Location
	PageSize int

	Render  viewdata.Renderer
	Snippet viewdata.SnippetRenderer
}

// NewHandler constructs a teachers Handler.
func NewHandler(api *apiclient.Client, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, aud *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		API:      api,
		Sessions: sm,
		ErrLog:   errLog,
		Audit:    aud,
		Log:      logger,
		Loc:      time.UTC,
		PageSize: paging.PageSize,
		Render:   viewdata.Render,
		Snippet:  viewdata.RenderSnippet,
	}
}
