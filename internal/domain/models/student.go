// internal/domain/models/student.go
package models

// Ref is the {id, name} shape the API embeds for related entities.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Student is a student record. On reads the API embeds School and Center;
// on writes only SchoolID and CenterID are sent.
type Student struct {
	ID         int           `json:"id"`
	Surname    string        `json:"surname"`
	Firstname  string        `json:"firstname"`
	Lastname   string        `json:"lastname"`
	MotherName string        `json:"motherName"`
	BirthDate  string        `json:"birthDate,omitempty"`
	Gender     string        `json:"gender,omitempty"`
	Mobile     ContactNumber `json:"mobile,omitempty"`
	Medium     string        `json:"medium"`
	ClassName  string        `json:"className"`
	SchoolID   int           `json:"schoolId"`
	CenterID   int           `json:"centerId"`
	School     *Ref          `json:"school,omitempty"`
	Center     *Ref          `json:"center,omitempty"`
	Created    Timestamp     `json:"created"`
}

// SchoolName returns the embedded school name, or "" when absent.
func (s Student) SchoolName() string {
	if s.School == nil {
		return ""
	}
	return s.School.Name
}

// CenterName returns the embedded center name, or "" when absent.
func (s Student) CenterName() string {
	if s.Center == nil {
		return ""
	}
	return s.Center.Name
}

// ClassOptions are the classes a student can be registered into.
var ClassOptions = []string{"1st", "2nd", "3rd", "4th", "5th", "6th"}

// MediumOptions are the languages of instruction offered.
var MediumOptions = []string{"Marathi", "Semi English", "English"}

// GenderOptions are the accepted gender values.
var GenderOptions = []string{"male", "female", "other"}
