package steps

import (
	"context"
	"log"
	"time"

	"fitcats/services"
)

// Poller re-queries the source on a fixed interval (reference period 3s) and
// feeds each cumulative value into the tracker. One poller runs per signed-in
// session and lives until the session's context is cancelled.
type Poller struct {
	source   Source
	tracker  *services.StepTracker
	interval time.Duration
}

func NewPoller(source Source, tracker *services.StepTracker, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Poller{source: source, tracker: tracker, interval: interval}
}

// Run polls until ctx is cancelled. Each tick queries the open week window
// (Monday 00:00 to now) and replaces the user's weekly total. Individual
// query or persist failures are logged and retried on the next tick.
func (p *Poller) Run(ctx context.Context, userID string) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.observeOnce(ctx, userID)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) observeOnce(ctx context.Context, userID string) {
	now := time.Now()
	steps, err := p.source.Query(ctx, services.WeekStart(now), now)
	if err != nil {
		log.Printf("Step query for %s failed: %v", userID, err)
		return
	}
	if err := p.tracker.ObserveSteps(ctx, userID, steps, now); err != nil {
		log.Printf("Recording steps for %s failed: %v", userID, err)
	}
}
