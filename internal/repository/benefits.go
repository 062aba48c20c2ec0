package repository

import (
	"context"

	"github.com/peoplecare/hrportal/internal/domain"
)

type LeaveBalanceRepository interface {
	ListByEmployeeID(ctx context.Context, employeeID string) ([]*domain.LeaveBalance, error)
}

type BenefitRepository interface {
	// FindByEmployeeID returns (nil, nil) when the employee has no benefit
	// row; an empty feed, not an error.
	FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Benefit, error)
}
