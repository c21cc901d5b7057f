// internal/domain/models/userdetails.go
package models

// UserDetails is the registration payload for /api/UserDetails.
type UserDetails struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Password    string    `json:"password"`
	FirstName   string    `json:"firstName"`
	MiddleName  string    `json:"middleName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedDate Timestamp `json:"createddate"`
}

// RoleOptions are the roles a console user may register with.
var RoleOptions = []string{"User", "Admin"}
