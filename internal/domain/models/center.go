// internal/domain/models/center.go
package models

// Center is an exam/coordination center. The API joins district and tehsil
// names onto the record, so no reference lookup is needed for them.
type Center struct {
	ID           int       `json:"id"`
	CenterID     int       `json:"centerId"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	DistrictName string    `json:"districtName"`
	TehsilName   string    `json:"tehsilName"`
	Created      Timestamp `json:"created"`
}

// District is an entry of /api/Centers/districts.
type District struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Tehsil is an entry of /api/Centers/tehsils.
type Tehsil struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	DistrictID int    `json:"districtId"`
}

// TehsilsInDistrict returns the tehsils whose DistrictID matches districtID,
// preserving input order. A zero districtID yields nothing.
func TehsilsInDistrict(all []Tehsil, districtID int) []Tehsil {
	if districtID == 0 {
		return nil
	}
	out := make([]Tehsil, 0, len(all))
	for _, t := range all {
		if t.DistrictID == districtID {
			out = append(out, t)
		}
	}
	return out
}
