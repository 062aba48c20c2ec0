package repository

import (
	"context"

	"github.com/peoplecare/hrportal/internal/domain"
)

// UserUpdate carries the partial fields of a directory update. Nil means
// "leave unchanged".
type UserUpdate struct {
	Email      *string
	EmployeeID *string
	Role       *domain.Role
	FirstName  *string
	LastName   *string
	BU         *string
	Company    *string
	PG         *string
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*domain.User, error)
	Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int64) error

	// SetRefreshTokenHash overwrites the stored refresh-token hash. Passing
	// nil revokes the session (logout).
	SetRefreshTokenHash(ctx context.Context, id int64, hash *string) error
}
