package auditlog_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/schooladmin/internal/app/store/audit"
	"github.com/dalemusser/schooladmin/internal/app/system/auditlog"
	"github.com/dalemusser/schooladmin/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	req := httptest.NewRequest("GET", "/", nil)

	// These should all be no-ops, not panic
	logger.Log(context.Background(), audit.Event{EventType: "test"})
	logger.LoginSuccess(context.Background(), req, "asha")
	logger.StudentDeleted(context.Background(), req, "asha", 7)
}

func TestLogger_ModesWithoutStore(t *testing.T) {
	tests := []struct {
		mode     string
		wantLogs int
	}{
		{auditlog.ModeAll, 1},
		{auditlog.ModeLog, 1},
		{auditlog.ModeDB, 0},
		{auditlog.ModeOff, 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			zl, logs := observed()
			l := auditlog.New(nil, zl, auditlog.ConfigFromMode(tt.mode))
			l.Logout(context.Background(), httptest.NewRequest("POST", "/logout", nil), "asha")
			if logs.Len() != tt.wantLogs {
				t.Errorf("logs = %d, want %d", logs.Len(), tt.wantLogs)
			}
		})
	}
}

func TestLogger_CategoriesConfiguredSeparately(t *testing.T) {
	zl, logs := observed()
	l := auditlog.New(nil, zl, auditlog.Config{Auth: auditlog.ModeOff, Master: auditlog.ModeLog})
	req := httptest.NewRequest("POST", "/", nil)

	l.LoginSuccess(context.Background(), req, "asha")
	l.SchoolCreated(context.Background(), req, "asha", "Green Valley")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event_type"] != audit.EventSchoolCreated || fields["detail_name"] != "Green Valley" {
		t.Errorf("fields = %v", fields)
	}
}

func TestLogger_FailureLogsWarn(t *testing.T) {
	zl, logs := observed()
	l := auditlog.New(nil, zl, auditlog.ConfigFromMode(auditlog.ModeLog))
	req := httptest.NewRequest("POST", "/login", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")

	l.LoginFailed(context.Background(), req, "ravi", "rejected")

	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("entries = %+v", entries)
	}
	fields := entries[0].ContextMap()
	if fields["ip"] != "203.0.113.9" || fields["failure_reason"] != "rejected" || fields["actor"] != "ravi" {
		t.Errorf("fields = %v", fields)
	}
}

func TestLogger_WritesToStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	l := auditlog.New(store, zap.NewNop(), auditlog.ConfigFromMode(auditlog.ModeDB))
	req := httptest.NewRequest("POST", "/", nil)
	l.StudentDeleted(ctx, req, "asha", 7)
	l.Exported(ctx, req, "asha", "Students", 12)

	events, err := store.Query(ctx, audit.QueryFilter{Actor: "asha"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
}
