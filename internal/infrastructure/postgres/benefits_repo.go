package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peoplecare/hrportal/internal/domain"
)

type LeaveBalanceRepository struct {
	pool *pgxpool.Pool
}

func NewLeaveBalanceRepository(pool *pgxpool.Pool) *LeaveBalanceRepository {
	return &LeaveBalanceRepository{pool: pool}
}

func (r *LeaveBalanceRepository) ListByEmployeeID(ctx context.Context, employeeID string) ([]*domain.LeaveBalance, error) {
	// numeric(10,3) cast to float8; three decimal places fit comfortably.
	rows, err := r.pool.Query(ctx, `
		SELECT id, employee_id, accrual_bank,
		       accrued::float8, used::float8, ending_balance::float8,
		       updated_at
		FROM leave_balances
		WHERE employee_id = $1
		ORDER BY accrual_bank`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []*domain.LeaveBalance
	for rows.Next() {
		var b domain.LeaveBalance
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.AccrualBank,
			&b.Accrued, &b.Used, &b.EndingBalance, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan leave balance: %w", err)
		}
		balances = append(balances, &b)
	}
	return balances, rows.Err()
}

type BenefitRepository struct {
	pool *pgxpool.Pool
}

func NewBenefitRepository(pool *pgxpool.Pool) *BenefitRepository {
	return &BenefitRepository{pool: pool}
}

func (r *BenefitRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Benefit, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT row_id, employee_id, policy_profile, ipd_room,
		       med_accu::float8, med_balance::float8,
		       den_accu::float8, den_balance::float8,
		       max_credit
		FROM emp_benefit
		WHERE employee_id = $1
		LIMIT 1`, employeeID)

	var b domain.Benefit
	err := row.Scan(&b.RowID, &b.EmployeeID, &b.PolicyProfile, &b.IPDRoom,
		&b.MedAccu, &b.MedBalance, &b.DenAccu, &b.DenBalance, &b.MaxCredit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan benefit: %w", err)
	}
	return &b, nil
}
