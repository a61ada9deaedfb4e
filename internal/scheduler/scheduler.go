package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/floatchat/floatchat/internal/chat"
)

// Scheduler periodically removes expired query history from the store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     chat.HistoryStore
	interval  time.Duration
	retention time.Duration
}

// New creates a cleanup scheduler. Records older than retention are removed
// every interval.
func New(store chat.HistoryStore, interval, retention time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		store:     store,
		interval:  interval,
		retention: retention,
	}
}

// Start schedules the periodic cleanup job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	if s.store == nil {
		log.Println("scheduler: no history store configured; nothing to schedule")
		return nil
	}

	hours := int(s.interval.Hours())
	if hours <= 0 {
		hours = 24
	}

	_, err := s.scheduler.Every(hours).Hours().Do(func() {
		log.Println("scheduler: running history cleanup job")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cutoff := time.Now().UTC().Add(-s.retention)
		removed, err := s.store.Cleanup(ctx, cutoff)
		if err != nil {
			log.Printf("scheduler: history cleanup failed: %v", err)
			return
		}
		log.Printf("scheduler: removed %d expired history records", removed)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
