// internal/app/features/dashboard/handler.go
package dashboard

import (
	"time"

	uierrors "github.com/dalemusser/schooladmin/internal/app/features/errors"
	"github.com/dalemusser/schooladmin/internal/app/store/audit"
	"github.com/dalemusser/schooladmin/internal/app/system/apiclient"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// recentLimit is how many audit events the dashboard lists.
const recentLimit = 10

type Handler struct {
	API    *apiclient.Client
	Events *audit.Store // nil when no Mongo is configured
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger

	Loc    *time.Location
	Render viewdata.Renderer
}

func NewHandler(api *apiclient.Client, events *audit.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		API:    api,
		Events: events,
		ErrLog: errLog,
		Log:    logger,
		Loc:    time.UTC,
		Render: viewdata.Render,
	}
}
