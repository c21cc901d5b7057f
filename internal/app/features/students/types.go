// internal/app/features/students/types.go
package students

import (
	"github.com/dalemusser/schooladmin/internal/app/system/formutil"
	"github.com/dalemusser/schooladmin/internal/app/system/listview"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
)

type listData struct {
	viewdata.BaseVM
	List listview.View
}

// addData is the view model for the student registration form.
type addData struct {
	formutil.Base

	Surname    string
	Firstname  string
	Lastname   string
	MotherName string
	BirthDate  string
	Mobile     string

	Genders []formutil.Option
	Classes []formutil.Option
	Mediums []formutil.Option
	Centers []formutil.Option
	// Schools holds only the schools of the chosen center.
	Schools []formutil.Option
}

// deleteData is the view model for the delete confirmation page.
type deleteData struct {
	viewdata.BaseVM
	ID   int
	Name string
}
