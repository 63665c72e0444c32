package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Poller runs a single poll iteration.
type Poller interface {
	Poll(ctx context.Context)
}

// PollScheduler triggers the poller once at start and then every period.
// Iterations never overlap: a tick that arrives while a poll is still running is skipped.
type PollScheduler struct {
	cronEngine *cron.Cron
	poller     Poller
	logger     *logrus.Entry
	period     time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	initial sync.WaitGroup // the poll Start runs outside the cron engine
}

func NewPollScheduler(poller Poller, period time.Duration, logger *logrus.Entry) *PollScheduler {
	cronLogger := cron.PrintfLogger(logger)
	return &PollScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local), // Use server's local time for cron
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		poller: poller,
		logger: logger,
		period: period,
	}
}

// Start polls immediately, then hands the poller to the cron engine.
// Cancelling ctx aborts in-flight requests; call Stop to wait for them.
func (s *PollScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	jobCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.initial.Add(1)
	s.mu.Unlock()

	s.logger.WithField("period", s.period.String()).Info("Starting homework poll scheduler...")

	s.runPoll(jobCtx)
	s.initial.Done()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.cronEngine.Schedule(cron.Every(s.period), cron.FuncJob(func() {
		s.runPoll(jobCtx)
	}))
	s.cronEngine.Start()
	s.logger.Info("Homework poll scheduler started.")
}

func (s *PollScheduler) runPoll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.logger.Debug("Poll triggered")
	s.poller.Poll(ctx)
}

// Stop halts the schedule and waits for a running poll to finish.
func (s *PollScheduler) Stop() {
	s.logger.Info("Stopping homework poll scheduler...")
	s.mu.Lock()
	s.stopped = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.initial.Wait()
	s.logger.Info("Homework poll scheduler gracefully stopped.")
}
