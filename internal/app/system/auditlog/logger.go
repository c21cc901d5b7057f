// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/schooladmin/internal/app/store/audit"
	"github.com/dalemusser/schooladmin/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Destination settings for Config fields.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for login, logout and registration events.
	Auth string
	// Master controls logging for create, delete and export of master data.
	Master string
}

// ConfigFromMode applies one mode to every category.
func ConfigFromMode(mode string) Config {
	return Config{Auth: mode, Master: mode}
}

// Logger provides convenience methods for logging audit events.
// It logs to MongoDB (via audit.Store) and structured logs (via zap).
// A nil store turns "all" into "log" and "db" into "off".
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{store: store, zapLog: zapLog, config: config}
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.Actor != "" {
		fields = append(fields, zap.String("actor", event.Actor))
	}
	if event.Resource != "" {
		fields = append(fields, zap.String("resource", event.Resource))
	}
	if event.RecordID != "" {
		fields = append(fields, zap.String("record_id", event.RecordID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryMaster:
		setting = l.config.Master
	default:
		setting = ModeAll
	}
	if setting == "" || setting == ModeOff {
		return
	}

	if setting == ModeAll || setting == ModeLog {
		l.logToZap(event)
	}

	if (setting == ModeAll || setting == ModeDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func base(r *http.Request, category, eventType, actor string) audit.Event {
	return audit.Event{
		Category:  category,
		EventType: eventType,
		Actor:     actor,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, username string) {
	l.Log(ctx, base(r, audit.CategoryAuth, audit.EventLoginSuccess, username))
}

// LoginFailed logs a login the API refused or could not answer.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, username, reason string) {
	e := base(r, audit.CategoryAuth, audit.EventLoginFailed, username)
	e.Success = false
	e.FailureReason = reason
	l.Log(ctx, e)
}

// Logout logs a user-initiated logout.
func (l *Logger) Logout(ctx context.Context, r *http.Request, username string) {
	l.Log(ctx, base(r, audit.CategoryAuth, audit.EventLogout, username))
}

// UserRegistered logs a registration attempt. reason is empty on success.
func (l *Logger) UserRegistered(ctx context.Context, r *http.Request, username, role, reason string) {
	e := base(r, audit.CategoryAuth, audit.EventUserRegistered, username)
	e.Resource = "UserDetails"
	e.Details = map[string]string{"role": role}
	if reason != "" {
		e.Success = false
		e.FailureReason = reason
	}
	l.Log(ctx, e)
}

// --- Master Data Events ---

// SchoolCreated logs a new school.
func (l *Logger) SchoolCreated(ctx context.Context, r *http.Request, actor, name string) {
	e := base(r, audit.CategoryMaster, audit.EventSchoolCreated, actor)
	e.Resource = "Schools"
	e.Details = map[string]string{"name": name}
	l.Log(ctx, e)
}

// TeachersCreated logs a bulk teacher insert.
func (l *Logger) TeachersCreated(ctx context.Context, r *http.Request, actor string, schoolID, count int) {
	e := base(r, audit.CategoryMaster, audit.EventTeachersCreated, actor)
	e.Resource = "Teachers"
	e.Details = map[string]string{
		"school_id": strconv.Itoa(schoolID),
		"count":     strconv.Itoa(count),
	}
	l.Log(ctx, e)
}

// StudentCreated logs a new student.
func (l *Logger) StudentCreated(ctx context.Context, r *http.Request, actor, name string) {
	e := base(r, audit.CategoryMaster, audit.EventStudentCreated, actor)
	e.Resource = "Students"
	e.Details = map[string]string{"name": name}
	l.Log(ctx, e)
}

// StudentDeleted logs a student deletion.
func (l *Logger) StudentDeleted(ctx context.Context, r *http.Request, actor string, id int) {
	e := base(r, audit.CategoryMaster, audit.EventStudentDeleted, actor)
	e.Resource = "Students"
	e.RecordID = strconv.Itoa(id)
	l.Log(ctx, e)
}

// Exported logs a CSV download of a list view.
func (l *Logger) Exported(ctx context.Context, r *http.Request, actor, resource string, rows int) {
	e := base(r, audit.CategoryMaster, audit.EventExported, actor)
	e.Resource = resource
	e.Details = map[string]string{"rows": strconv.Itoa(rows)}
	l.Log(ctx, e)
}
