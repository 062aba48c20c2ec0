package domain

import "time"

type Role string

const (
	RoleSystemAdmin Role = "system admin"
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RoleEmployee    Role = "employee"
)

type User struct {
	ID         int64
	EmployeeID string
	Email      string
	Role       Role
	FirstName  *string
	LastName   *string
	BU         *string
	Company    *string
	PG         *string

	// RefreshTokenHash is nil exactly when the user has no refreshable
	// session: before first login or after logout.
	RefreshTokenHash *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName is used in outgoing email. Falls back to the email address
// when no name is on record.
func (u *User) DisplayName() string {
	name := ""
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}
