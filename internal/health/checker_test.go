package health_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/peoplecare/hrportal/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeDB struct {
	pingErr error
}

func (f *fakeDB) Ping(_ context.Context) error { return f.pingErr }

func newChecker(db *fakeDB) (*health.Checker, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return health.NewChecker(db, logger, reg), reg
}

func expectGauge(t *testing.T, reg *prometheus.Registry, value string) {
	t.Helper()
	expected := `
# HELP hrportal_health_check_up Whether a dependency is reachable. 1 = up, 0 = down.
# TYPE hrportal_health_check_up gauge
hrportal_health_check_up{dependency="postgres"} ` + value + "\n"
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "hrportal_health_check_up"); err != nil {
		t.Error(err)
	}
}

func TestLiveness_UpEvenWhenPostgresIsNot(t *testing.T) {
	c, _ := newChecker(&fakeDB{pingErr: errors.New("connection refused")})

	result := c.Liveness(context.Background())
	if result.Status != "up" {
		t.Fatalf("liveness = %q, want up", result.Status)
	}
	if result.Checks != nil {
		t.Fatalf("liveness must not run dependency checks, got %v", result.Checks)
	}
}

func TestReadiness_Healthy(t *testing.T) {
	c, reg := newChecker(&fakeDB{})

	result := c.Readiness(context.Background())
	if result.Status != "up" {
		t.Fatalf("readiness = %q, want up", result.Status)
	}
	if pg := result.Checks["postgres"]; pg.Status != "up" || pg.Error != "" {
		t.Fatalf("postgres check = %+v", pg)
	}

	expectGauge(t, reg, "1")
}

func TestReadiness_PostgresUnreachable(t *testing.T) {
	c, reg := newChecker(&fakeDB{pingErr: errors.New("connection refused")})

	result := c.Readiness(context.Background())
	if result.Status != "down" {
		t.Fatalf("readiness = %q, want down", result.Status)
	}
	pg := result.Checks["postgres"]
	if pg.Status != "down" {
		t.Fatalf("postgres check = %+v", pg)
	}
	if !strings.Contains(pg.Error, "connection refused") {
		t.Errorf("check error = %q", pg.Error)
	}

	expectGauge(t, reg, "0")
}

func TestReadiness_RecoversAfterOutage(t *testing.T) {
	db := &fakeDB{pingErr: errors.New("connection refused")}
	c, reg := newChecker(db)

	if result := c.Readiness(context.Background()); result.Status != "down" {
		t.Fatalf("readiness during outage = %q, want down", result.Status)
	}

	db.pingErr = nil
	if result := c.Readiness(context.Background()); result.Status != "up" {
		t.Fatalf("readiness after recovery = %q, want up", result.Status)
	}
	expectGauge(t, reg, "1")
}
