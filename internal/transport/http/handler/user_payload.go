package handler

import (
	"time"

	"github.com/peoplecare/hrportal/internal/domain"
)

// userResponse is the wire shape of a directory user. The refresh-token
// hash never appears here.
type userResponse struct {
	ID         int64       `json:"id"`
	EmployeeID string      `json:"employeeId"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	FirstName  *string     `json:"firstName,omitempty"`
	LastName   *string     `json:"lastName,omitempty"`
	BU         *string     `json:"bu,omitempty"`
	Company    *string     `json:"company,omitempty"`
	PG         *string     `json:"pg,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		EmployeeID: u.EmployeeID,
		Email:      u.Email,
		Role:       u.Role,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		BU:         u.BU,
		Company:    u.Company,
		PG:         u.PG,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
