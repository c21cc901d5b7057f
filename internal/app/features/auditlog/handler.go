// internal/app/features/auditlog/handler.go
package auditlog

import (
	"time"

	uierrors "github.com/dalemusser/schooladmin/internal/app/features/errors"
	"github.com/dalemusser/schooladmin/internal/app/store/audit"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
	"go.uber.org/zap"
)

type Handler struct {
	Events *audit.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger

	// Loc is the zone dates are entered and shown in.
	Loc    *time.Location
	Render viewdata.Renderer
}

// NewHandler constructs an Audit Log feature handler over the event store.
func NewHandler(events *audit.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Events: events,
		Log:    logger,
		ErrLog: errLog,
		Loc:    time.UTC,
		Render: viewdata.Render,
	}
}
