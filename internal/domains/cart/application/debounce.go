package application

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// scheduledTask runs the most recently scheduled job once delay has elapsed
// without a newer call to schedule.
type scheduledTask struct {
	delay  time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	job     func(context.Context) error
	closed  bool
	running sync.WaitGroup
}

func newScheduledTask(delay time.Duration, logger *slog.Logger) *scheduledTask {
	return &scheduledTask{delay: delay, logger: logger}
}

// schedule replaces the pending job and restarts the timer.
func (s *scheduledTask) schedule(job func(context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.job = job
	s.stopLocked()
	s.running.Add(1)
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// flush runs the pending job immediately, if any.
func (s *scheduledTask) flush(ctx context.Context) error {
	s.mu.Lock()
	s.stopLocked()
	job := s.job
	s.job = nil
	s.mu.Unlock()
	if job == nil {
		return nil
	}
	return job(ctx)
}

// cancel drops the pending job without running it.
func (s *scheduledTask) cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.job = nil
}

// close flushes the pending job, refuses further scheduling and waits for a
// timer callback that already started.
func (s *scheduledTask) close(ctx context.Context) error {
	err := s.flush(ctx)
	s.mu.Lock()
	s.closed = true
	s.stopLocked()
	s.mu.Unlock()
	s.running.Wait()
	return err
}

func (s *scheduledTask) pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.job != nil
}

func (s *scheduledTask) fire() {
	defer s.running.Done()
	s.mu.Lock()
	job := s.job
	s.job = nil
	s.mu.Unlock()
	if job == nil {
		return
	}
	if err := job(context.Background()); err != nil && s.logger != nil {
		s.logger.Warn("scheduled cart task failed", slog.String("error", err.Error()))
	}
}

func (s *scheduledTask) stopLocked() {
	if s.timer != nil && s.timer.Stop() {
		s.running.Done()
	}
	s.timer = nil
}
