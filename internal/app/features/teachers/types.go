// internal/app/features/teachers/types.go
package teachers

import (
	"github.com/dalemusser/schooladmin/internal/app/system/formutil"
	"github.com/dalemusser/schooladmin/internal/app/system/listview"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
)

type listData struct {
	viewdata.BaseVM
	List listview.View
}

// teacherRow is one editable row of the bulk form.
type teacherRow struct {
	Index      int
	Name       string
	ContactNo1 string
	ContactNo2 string
	Email      string
	Error      string
}

func (t teacherRow) blank() bool {
	return t.Name == "" && t.ContactNo1 == "" && t.ContactNo2 == "" && t.Email == ""
}

// addData is the view model for the bulk "Add Teachers" page.
type addData struct {
	formutil.Base

	Centers []formutil.Option
	// Schools holds only the schools of the chosen center.
	Schools []formutil.Option
	Rows    []teacherRow
}
