// Package housekeeping removes dead magic-link rows on a schedule. Rows
// that are used or expired can never verify again, so deleting them
// changes no auth behavior.
package housekeeping

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/peoplecare/hrportal/internal/metrics"
	"github.com/peoplecare/hrportal/internal/repository"
	"github.com/robfig/cron/v3"
)

type Purger struct {
	links  repository.MagicLinkRepository
	logger *slog.Logger
	sched  cron.Schedule
}

// NewPurger parses the cron spec ("@hourly", "*/30 * * * *", ...) up
// front so a bad config fails at startup, not on the first tick.
func NewPurger(links repository.MagicLinkRepository, logger *slog.Logger, spec string) (*Purger, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse purge cron %q: %w", spec, err)
	}
	return &Purger{
		links:  links,
		logger: logger.With("component", "housekeeping"),
		sched:  sched,
	}, nil
}

func (p *Purger) Start(ctx context.Context) {
	p.logger.Info("housekeeping started", "next_run", p.sched.Next(time.Now()))

	for {
		timer := time.NewTimer(time.Until(p.sched.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			p.logger.Info("housekeeping shut down")
			return
		case <-timer.C:
			p.purge(ctx)
		}
	}
}

func (p *Purger) purge(ctx context.Context) {
	n, err := p.links.DeleteDead(ctx)
	if err != nil {
		p.logger.Error("purge dead magic links", "error", err)
		return
	}
	metrics.PurgedLinksTotal.Add(float64(n))
	if n > 0 {
		p.logger.Info("purged dead magic links", "count", n)
	}
}
