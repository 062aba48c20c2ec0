// seed applies the schema and inserts demo users, leave balances, and
// benefit rows into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/peoplecare/hrportal/internal/infrastructure/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id                 BIGSERIAL PRIMARY KEY,
	employee_id        TEXT NOT NULL,
	email              TEXT NOT NULL,
	role               TEXT NOT NULL DEFAULT 'employee',
	first_name         TEXT,
	last_name          TEXT,
	bu                 TEXT,
	company            TEXT,
	pg                 TEXT,
	refresh_token_hash TEXT,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT users_email_key UNIQUE (email),
	CONSTRAINT users_employee_id_key UNIQUE (employee_id)
);

CREATE TABLE IF NOT EXISTS magic_links (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	token_hash TEXT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	used_at    TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_magic_links_live
	ON magic_links (user_id) WHERE used_at IS NULL;

CREATE TABLE IF NOT EXISTS leave_balances (
	id             BIGSERIAL PRIMARY KEY,
	employee_id    VARCHAR(20) NOT NULL,
	accrual_bank   VARCHAR(50) NOT NULL,
	accrued        NUMERIC(10,3) NOT NULL DEFAULT 0,
	used           NUMERIC(10,3) NOT NULL DEFAULT 0,
	ending_balance NUMERIC(10,3) NOT NULL DEFAULT 0,
	updated_at     TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_leave_employee ON leave_balances (employee_id);

CREATE TABLE IF NOT EXISTS emp_benefit (
	row_id         BIGSERIAL PRIMARY KEY,
	employee_id    VARCHAR(20),
	policy_profile VARCHAR(25),
	ipd_room       INT,
	med_accu       NUMERIC(8,2),
	med_balance    NUMERIC(8,2),
	den_accu       NUMERIC(8,2),
	den_balance    NUMERIC(8,2),
	max_credit     INT
);
CREATE INDEX IF NOT EXISTS idx_benefit_employee ON emp_benefit (employee_id);
`

type userSpec struct {
	employeeID string
	email      string
	role       string
	firstName  string
	lastName   string
	bu         string
	company    string
	pg         string
}

var users = []userSpec{
	{"E0001", "admin@peoplecare.local", "system admin", "Somchai", "Ruangrit", "Corporate", "PeopleCare", "HR"},
	{"E1001", "nina@peoplecare.local", "manager", "Nina", "Wattana", "Retail", "PeopleCare", "Stores"},
	{"E1002", "krit@peoplecare.local", "employee", "Krit", "Boonmee", "Retail", "PeopleCare", "Stores"},
	{"E1003", "mali@peoplecare.local", "employee", "Mali", "Srisuk", "Digital", "PeopleCare", "Platform"},
}

type leaveSpec struct {
	employeeID string
	bank       string
	accrued    float64
	used       float64
	ending     float64
}

var leaves = []leaveSpec{
	{"E1001", "Annual", 15, 4, 11},
	{"E1001", "Sick", 30, 1, 29},
	{"E1002", "Annual", 10, 2.5, 7.5},
	{"E1002", "Sick", 30, 0, 30},
	{"E1002", "Personal", 3, 1, 2},
	{"E1003", "Annual", 12, 12, 0},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalf("apply schema: %v", err)
	}
	fmt.Println("schema applied")

	for _, u := range users {
		_, err := pool.Exec(ctx, `
			INSERT INTO users (employee_id, email, role, first_name, last_name, bu, company, pg)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (email) DO UPDATE SET updated_at = NOW()`,
			u.employeeID, u.email, u.role, u.firstName, u.lastName, u.bu, u.company, u.pg,
		)
		if err != nil {
			log.Fatalf("seed user %s: %v", u.employeeID, err)
		}
	}
	fmt.Printf("seeded %d users\n", len(users))

	for _, l := range leaves {
		_, err := pool.Exec(ctx, `
			INSERT INTO leave_balances (employee_id, accrual_bank, accrued, used, ending_balance, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW())`,
			l.employeeID, l.bank, l.accrued, l.used, l.ending,
		)
		if err != nil {
			log.Fatalf("seed leave %s/%s: %v", l.employeeID, l.bank, err)
		}
	}
	fmt.Printf("seeded %d leave balances\n", len(leaves))

	benefits := []struct {
		employeeID string
		profile    string
		ipdRoom    int
		medAccu    float64
		medBalance float64
		denAccu    float64
		denBalance float64
		maxCredit  int
	}{
		{"E1001", "MGR-A", 4000, 1250.50, 8749.50, 500, 1500, 60000},
		{"E1002", "EMP-B", 2500, 0, 6000, 0, 1000, 30000},
		{"E1003", "EMP-B", 2500, 5999.99, 0.01, 1000, 0, 30000},
	}
	for _, b := range benefits {
		_, err := pool.Exec(ctx, `
			INSERT INTO emp_benefit (employee_id, policy_profile, ipd_room, med_accu, med_balance, den_accu, den_balance, max_credit)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			b.employeeID, b.profile, b.ipdRoom, b.medAccu, b.medBalance, b.denAccu, b.denBalance, b.maxCredit,
		)
		if err != nil {
			log.Fatalf("seed benefit %s: %v", b.employeeID, err)
		}
	}
	fmt.Printf("seeded %d benefit rows\n", len(benefits))
}
