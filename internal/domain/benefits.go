package domain

import "time"

// LeaveBalance is one accrual bank (Annual, Sick, Personal, ...) for an
// employee, imported from the HRIS.
type LeaveBalance struct {
	ID            int64
	EmployeeID    string
	AccrualBank   string
	Accrued       float64
	Used          float64
	EndingBalance float64
	UpdatedAt     *time.Time
}

// Benefit is the medical/dental entitlement row for an employee. All
// entitlement fields are optional; the upstream feed leaves gaps.
type Benefit struct {
	RowID         int64
	EmployeeID    string
	PolicyProfile *string
	IPDRoom       *int
	MedAccu       *float64
	MedBalance    *float64
	DenAccu       *float64
	DenBalance    *float64
	MaxCredit     *int
}
