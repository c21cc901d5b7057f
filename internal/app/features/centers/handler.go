// internal/app/features/centers/handler.go
package centers

import (
	"time"

	uierrors "github.com/dalemusser/schooladmin/internal/app/features/errors"
	"github.com/dalemusser/schooladmin/internal/app/system/apiclient"
	"github.com/dalemusser/schooladmin/internal/app/system/auditlog"
	"github.com/dalemusser/schooladmin/internal/app/system/paging"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler serves the read-only center master list.
type Handler struct {
	API    *apiclient.Client
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
	Log    *zap.Logger

	Loc      *time.Location
	PageSize int

	Render  viewdata.Renderer
	Snippet viewdata.SnippetRenderer
}

// NewHandler constructs a centers Handler.
func NewHandler(api *apiclient.Client, errLog *uierrors.ErrorLogger, aud *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		API:      api,
		ErrLog:   errLog,
		Audit:    aud,
		Log:      logger,
		Loc:      time.UTC,
		PageSize: paging.PageSize,
		Render:   viewdata.Render,
		Snippet:  viewdata.RenderSnippet,
	}
}
