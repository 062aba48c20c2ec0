package usecase

import (
	"context"

	"github.com/peoplecare/hrportal/internal/domain"
	"github.com/peoplecare/hrportal/internal/repository"
)

// UserUsecase is the thin directory layer over the user repository. The
// auth core depends on its repository, not on this.
type UserUsecase struct {
	users repository.UserRepository
}

func NewUserUsecase(users repository.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

type CreateUserInput struct {
	Email      string
	EmployeeID string
	Role       domain.Role
	FirstName  *string
	LastName   *string
	BU         *string
	Company    *string
	PG         *string
}

func (u *UserUsecase) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	return u.users.Create(ctx, &domain.User{
		Email:      input.Email,
		EmployeeID: input.EmployeeID,
		Role:       role,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		BU:         input.BU,
		Company:    input.Company,
		PG:         input.PG,
	})
}

func (u *UserUsecase) List(ctx context.Context) ([]*domain.User, error) {
	return u.users.List(ctx)
}

func (u *UserUsecase) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return u.users.FindByID(ctx, id)
}

func (u *UserUsecase) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.User, error) {
	return u.users.FindByEmployeeID(ctx, employeeID)
}

func (u *UserUsecase) UpdateByEmployeeID(ctx context.Context, employeeID string, upd repository.UserUpdate) (*domain.User, error) {
	user, err := u.users.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return u.users.Update(ctx, user.ID, upd)
}

func (u *UserUsecase) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	user, err := u.users.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}
	return u.users.Delete(ctx, user.ID)
}
