// internal/app/features/schools/types.go
package schools

import (
	"github.com/dalemusser/schooladmin/internal/app/system/formutil"
	"github.com/dalemusser/schooladmin/internal/app/system/listview"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
)

// listData is the view model for the schools list page.
type listData struct {
	viewdata.BaseVM
	List listview.View
}

// addData is the view model for the "Add School" page.
type addData struct {
	formutil.Base

	SchoolID    string
	Name        string
	Address     string
	PinCode     string
	TeacherName string
	ContactNo1  string
	ContactNo2  string
	Email       string

	Centers   []formutil.Option
	Districts []formutil.Option
	// Tehsils holds only the tehsils of the chosen district.
	Tehsils []formutil.Option
}
