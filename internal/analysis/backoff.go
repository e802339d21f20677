package analysis

import (
	"context"
	"sync"
	"time"
)

// sleepFunc waits for d or until ctx is done. Swapped out in tests.
type sleepFunc func(ctx context.Context, d time.Duration) error

func contextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retrySchedule is the explicit state of the retry loop: an attempt counter
// and the delay to apply before the next attempt. Only the client advances
// it; the schedule itself never sleeps.
type retrySchedule struct {
	maxAttempts int
	factor      float64

	attempt int
	next    time.Duration
}

func newRetrySchedule(maxAttempts int, initial time.Duration, factor float64) *retrySchedule {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if factor < 1 {
		factor = 2.0
	}
	return &retrySchedule{
		maxAttempts: maxAttempts,
		factor:      factor,
		next:        initial,
	}
}

// Begin records the start of an attempt and reports whether one is allowed.
func (s *retrySchedule) Begin() bool {
	if s.attempt >= s.maxAttempts {
		return false
	}
	s.attempt++
	return true
}

// Attempt returns the 1-based number of the attempt in progress.
func (s *retrySchedule) Attempt() int {
	return s.attempt
}

// Delay returns the backoff delay to apply before the next attempt and
// advances the schedule. The first retry waits the initial delay; each
// subsequent retry multiplies it by the growth factor. No jitter is applied.
func (s *retrySchedule) Delay() time.Duration {
	d := s.next
	s.next = time.Duration(float64(s.next) * s.factor)
	return d
}

// Exhausted reports whether no further attempts remain.
func (s *retrySchedule) Exhausted() bool {
	return s.attempt >= s.maxAttempts
}

// pacer enforces a minimum delay between consecutive outbound calls across
// the whole run, independent of per-attempt backoff. One pacer is shared by
// every image in a batch; the last-call timestamp is the only state.
type pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	sleep    sleepFunc
	now      func() time.Time
}

func newPacer(interval time.Duration) *pacer {
	return &pacer{
		interval: interval,
		sleep:    contextSleep,
		now:      time.Now,
	}
}

// Wait blocks until at least the configured interval has elapsed since the
// previous call, then stamps the current call.
func (p *pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.interval > 0 && !p.last.IsZero() {
		if wait := p.interval - p.now().Sub(p.last); wait > 0 {
			if err := p.sleep(ctx, wait); err != nil {
				return err
			}
		}
	}
	p.last = p.now()
	return nil
}
