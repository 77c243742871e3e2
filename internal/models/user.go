// Package models holds the normalized domain types of the storefront client
// and the adapters that map the backend's wire shapes onto them.
package models

// Role values returned by the backend.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the authenticated identity. A nil *User means anonymous.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
