// internal/domain/models/teacher.go
package models

// Teacher is a teacher record from /api/Teachers.
type Teacher struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	ContactNo1 ContactNumber `json:"contactNo1"`
	ContactNo2 ContactNumber `json:"contactNo2"`
	Email      string        `json:"email"`
	CenterID   int           `json:"centerId"`
	SchoolID   int           `json:"schoolId"`
}

// SchoolsInCenter returns the schools attached to centerID, preserving
// input order. A zero centerID yields nothing.
func SchoolsInCenter(all []School, centerID int) []School {
	if centerID == 0 {
		return nil
	}
	out := make([]School, 0, len(all))
	for _, s := range all {
		if s.CenterID == centerID {
			out = append(out, s)
		}
	}
	return out
}
