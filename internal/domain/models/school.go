// internal/domain/models/school.go
package models

// School is a school record from /api/Schools. DistrictID, TehsilID and
// CenterID reference District, Tehsil and Center ids; zero means unset.
type School struct {
	ID          int           `json:"id"`
	SchoolID    int           `json:"schoolId"`
	CenterID    int           `json:"centerId"`
	Name        string        `json:"name"`
	Address     string        `json:"address"`
	DistrictID  int           `json:"districtId"`
	TehsilID    int           `json:"tehsilId"`
	State       string        `json:"state"`
	PinCode     int           `json:"pinCode"`
	TeacherName string        `json:"teacherName"`
	ContactNo1  ContactNumber `json:"contactNo1"`
	ContactNo2  ContactNumber `json:"contactNo2"`
	Email       string        `json:"email"`
	Password    string        `json:"password,omitempty"`
	IsDeleted   bool          `json:"isDeleted"`
	Created     Timestamp     `json:"created"`
}

// DefaultSchoolState is the state every school is registered under.
const DefaultSchoolState = "Maharashtra"
