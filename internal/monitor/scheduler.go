package monitor

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the cycle on a fixed interval. Singleton-reschedule mode
// keeps a slow cycle (hanging SMTP or IMAP call) from piling up concurrent
// runs that would race on the persisted snapshot.
type Scheduler struct {
	cycle    *Cycle
	interval time.Duration
	// -----
	sched gocron.Scheduler
}

func NewScheduler(cycle *Cycle, interval time.Duration) *Scheduler {
	return &Scheduler{cycle: cycle, interval: interval}
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = scheduler

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func(jobCtx context.Context) {
			s.cycle.Run(jobCtx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}
