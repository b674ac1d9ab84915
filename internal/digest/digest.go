// Package digest schedules the daily activity summary sent to the admin.
package digest

import (
	"context"
	"fmt"

	"github.com/babyGialo/sigmabot/core/logger"
	"github.com/babyGialo/sigmabot/internal/journal"
	"github.com/babyGialo/sigmabot/internal/notify"

	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler fires the digest job on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	journal  *journal.Store
	notifier *notify.Notifier
}

// New builds a scheduler; it does nothing until Start.
func New(schedule string, j *journal.Store, n *notify.Notifier) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		schedule: schedule,
		journal:  j,
		notifier: n,
	}
}

// Start registers the digest job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("digest: invalid schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	logger.Info(context.Background(), "digest", "digest.scheduled",
		slog.String("status", "ok"),
		slog.String("mode", s.schedule),
	)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run() {
	ctx := context.Background()
	st := s.journal.Stats()
	s.notifier.Digest(ctx, st)
	logger.Info(ctx, "digest", "digest.sent",
		slog.String("status", "ok"),
		slog.Int("users", st.Users),
		slog.Int("records", st.Records),
		slog.Int("active_today", st.ActiveToday),
	)
}
