package analysis

import (
	"context"
	"testing"
	"time"
)

func TestRetrySchedule_ExponentialDelays(t *testing.T) {
	s := newRetrySchedule(4, 2*time.Second, 2.0)

	expected := []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}
	for i, want := range expected {
		if !s.Begin() {
			t.Fatalf("Expected attempt %d to be allowed", i+1)
		}
		if got := s.Delay(); got != want {
			t.Errorf("Delay %d: expected %s, got %s", i+1, want, got)
		}
	}
	if !s.Begin() {
		t.Fatal("Expected the final attempt to be allowed")
	}
	if !s.Exhausted() {
		t.Error("Expected the schedule to be exhausted after 4 attempts")
	}
	if s.Begin() {
		t.Error("Expected no attempt beyond the configured cap")
	}
}

func TestRetrySchedule_SingleAttempt(t *testing.T) {
	s := newRetrySchedule(1, time.Second, 2.0)
	if !s.Begin() {
		t.Fatal("Expected the first attempt to be allowed")
	}
	if !s.Exhausted() {
		t.Error("Expected a one-attempt schedule to be exhausted immediately")
	}
}

func TestRetrySchedule_DefensiveBounds(t *testing.T) {
	s := newRetrySchedule(0, time.Second, 0.5)
	if s.maxAttempts != 1 {
		t.Errorf("Expected attempt floor of 1, got %d", s.maxAttempts)
	}
	if s.factor != 2.0 {
		t.Errorf("Expected factor floor of 2.0, got %f", s.factor)
	}
}

func TestPacer_WaitsOutRemainingInterval(t *testing.T) {
	current := time.Unix(1000, 0)
	var slept []time.Duration

	p := newPacer(time.Second)
	p.now = func() time.Time { return current }
	p.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		current = current.Add(d)
		return nil
	}

	ctx := context.Background()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("First wait failed: %v", err)
	}
	if len(slept) != 0 {
		t.Errorf("Expected no sleep before the first call, got %v", slept)
	}

	// 300ms of work elapses; the next call should wait out the rest.
	current = current.Add(300 * time.Millisecond)
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("Second wait failed: %v", err)
	}
	if len(slept) != 1 || slept[0] != 700*time.Millisecond {
		t.Errorf("Expected a single 700ms sleep, got %v", slept)
	}

	// More than the interval elapses; no sleep is needed.
	current = current.Add(2 * time.Second)
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("Third wait failed: %v", err)
	}
	if len(slept) != 1 {
		t.Errorf("Expected no additional sleep, got %v", slept)
	}
}

func TestPacer_ZeroIntervalNeverSleeps(t *testing.T) {
	p := newPacer(0)
	p.sleep = func(ctx context.Context, d time.Duration) error {
		t.Errorf("Unexpected sleep of %s", d)
		return nil
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait %d failed: %v", i, err)
		}
	}
}

func TestContextSleep_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := contextSleep(ctx, time.Minute); err == nil {
		t.Error("Expected an error for a cancelled context")
	}
}
