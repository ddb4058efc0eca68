package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"discord-tickets/utils"

	"github.com/robfig/cron/v3"
)

type reconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

type pruner interface {
	PruneClosedTickets(ctx context.Context, before time.Time) (int64, error)
}

type limiterPruner interface {
	Prune() int
}

// maintenance holds the scheduled ticket housekeeping jobs.
type maintenance struct {
	reconciler    reconciler
	pruner        pruner
	limiters      limiterPruner
	retentionDays int
	now           func() time.Time
}

// reconcile closes open tickets whose channel was removed while the bot was away.
func (m *maintenance) reconcile(ctx context.Context) {
	n, err := m.reconciler.Reconcile(ctx)
	if err != nil {
		utils.Error("Scheduler", "Reconcile", err.Error())
		return
	}
	if n > 0 {
		utils.Info("Scheduler", "Reconcile", fmt.Sprintf("Closed %d tickets whose channel no longer exists", n))
	}
}

// prune deletes closed tickets past the retention window. A zero window keeps them forever.
func (m *maintenance) prune(ctx context.Context) {
	if m.retentionDays <= 0 {
		return
	}
	cutoff := m.now().AddDate(0, 0, -m.retentionDays)
	n, err := m.pruner.PruneClosedTickets(ctx, cutoff)
	if err != nil {
		utils.Error("Scheduler", "Prune", err.Error())
		return
	}
	if n > 0 {
		utils.Info("Scheduler", "Prune", fmt.Sprintf("Successfully cleaned up %d closed tickets", n))
	}
}

// pruneLimiters forgets members whose creation throttle has refilled.
func (m *maintenance) pruneLimiters() {
	if m.limiters == nil {
		return
	}
	if n := m.limiters.Prune(); n > 0 {
		log.Printf("Pruned %d idle ticket creation limiters.", n)
	}
}

func (m *maintenance) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	log.Println("Running ticket maintenance...")
	m.reconcile(ctx)
	m.prune(ctx)
	m.pruneLimiters()
}

// startScheduler starts the cron jobs.
func startScheduler(spec string, m *maintenance) (*cron.Cron, error) {
	log.Println("Initializing scheduler...")
	c := cron.New()
	if _, err := c.AddFunc(spec, m.run); err != nil {
		return nil, fmt.Errorf("could not set up cron job %q: %w", spec, err)
	}
	c.Start()
	log.Printf("Ticket maintenance scheduled (%s).", spec)

	// Catch up on channels deleted while the bot was offline.
	go m.run()
	return c, nil
}

// stopScheduler stops the cron jobs.
func stopScheduler(c *cron.Cron) {
	if c != nil {
		<-c.Stop().Done()
		log.Println("Scheduler stopped.")
	}
}
