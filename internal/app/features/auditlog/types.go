// internal/app/features/auditlog/types.go
package auditlog

import (
	"github.com/dalemusser/schooladmin/internal/app/store/audit"
	"github.com/dalemusser/schooladmin/internal/app/system/formutil"
	"github.com/dalemusser/schooladmin/internal/app/system/paging"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
)

// listItem represents a single audit event row for display.
type listItem struct {
	When      string
	Category  string
	EventType string
	Actor     string
	Resource  string
	RecordID  string
	IP        string
	Success   bool
	Reason    string
	Details   map[string]string
}

// listData is the view model for the audit log list page.
type listData struct {
	viewdata.BaseVM

	Items []listItem

	// Filters, echoed back into the form
	Actor     string
	StartDate string
	EndDate   string

	Categories []formutil.Option
	EventTypes []formutil.Option

	Range    paging.Range
	PrevHref string
	NextHref string
	Zone     string
}

var categoryLabels = map[string]string{
	audit.CategoryAuth:   "Authentication",
	audit.CategoryMaster: "Master data",
}

// categoryOptions lists the filterable categories.
func categoryOptions(selected string) []formutil.Option {
	return formutil.Options([]string{audit.CategoryAuth, audit.CategoryMaster},
		func(c string) string { return c },
		func(c string) string { return categoryLabels[c] },
		selected)
}

// eventTypesFor returns the event types of category, or all of them when
// category is empty.
func eventTypesFor(category string) []string {
	auth := []string{
		audit.EventLoginSuccess,
		audit.EventLoginFailed,
		audit.EventLogout,
		audit.EventUserRegistered,
	}
	master := []string{
		audit.EventSchoolCreated,
		audit.EventTeachersCreated,
		audit.EventStudentCreated,
		audit.EventStudentDeleted,
		audit.EventExported,
	}
	switch category {
	case audit.CategoryAuth:
		return auth
	case audit.CategoryMaster:
		return master
	}
	return append(auth, master...)
}
