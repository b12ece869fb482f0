package refresh

import (
	"context"
	"log"
	"sync"
	"time"
)

// Sweeper runs one refresh pass; *Engine satisfies it.
type Sweeper interface {
	Sweep(ctx context.Context) (Report, error)
}

// Scheduler runs sweeps one after another: wait, sweep, wait. Sweeps never
// overlap, so the engine is the only writer of dynamic answers.
type Scheduler struct {
	Engine     Sweeper
	Interval   time.Duration
	RunOnStart bool

	trigger chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	last   *Report
}

func NewScheduler(e Sweeper, interval time.Duration, runOnStart bool) *Scheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{
		Engine:     e,
		Interval:   interval,
		RunOnStart: runOnStart,
		trigger:    make(chan struct{}, 1),
	}
}

// Trigger asks for a sweep as soon as the loop is idle. It returns false if
// one is already queued.
func (s *Scheduler) Trigger() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	skipWait := s.RunOnStart
	for {
		if !skipWait {
			t := time.NewTimer(s.Interval)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			case <-s.trigger:
				t.Stop()
			}
		}
		skipWait = false

		rep, err := s.Engine.Sweep(ctx)
		s.mu.Lock()
		s.last = &rep
		s.mu.Unlock()
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			log.Printf("refresh: sweep error: %v", err)
		}
	}
}

// Start launches Run in the background.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		if err := s.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("refresh: scheduler stopped: %v", err)
		}
	}(s.done)
	log.Printf("refresh: scheduler started (every %s, run on start: %v)", s.Interval, s.RunOnStart)
}

// Stop cancels the loop, including an in-flight sweep, and waits for it to
// exit or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if done == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
		log.Printf("refresh: scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastReport returns the most recent sweep report, if any.
func (s *Scheduler) LastReport() (Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Report{}, false
	}
	return *s.last, true
}
