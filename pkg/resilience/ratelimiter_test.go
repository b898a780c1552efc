package resilience

import (
	"context"
	"testing"
	"time"
)

func newTestLimiter(rate float64, burst int) (*Limiter, *time.Time) {
	l := NewLimiter(LimiterOpts{Rate: rate, Burst: burst})
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }
	return l, &clock
}

func TestLimiterAllowsBurst(t *testing.T) {
	l, _ := newTestLimiter(1, 3)
	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("request %d within burst denied", i)
		}
	}
	if l.Allow() {
		t.Fatal("request beyond burst allowed")
	}
}

func TestLimiterRefills(t *testing.T) {
	l, clock := newTestLimiter(2, 2)
	l.Allow()
	l.Allow()
	if l.Allow() {
		t.Fatal("bucket should be empty")
	}

	*clock = clock.Add(time.Second)
	if !l.Allow() || !l.Allow() {
		t.Fatal("one second at rate 2 should refill two tokens")
	}
	if l.Allow() {
		t.Fatal("refill must not exceed burst")
	}
}

func TestLimiterRefillCapped(t *testing.T) {
	l, clock := newTestLimiter(10, 2)
	l.Allow()
	*clock = clock.Add(time.Hour)

	granted := 0
	for l.Allow() {
		granted++
	}
	if granted != 2 {
		t.Fatalf("granted %d after idle, want burst of 2", granted)
	}
}

func TestLimiterBurstDefaultsToOne(t *testing.T) {
	l := NewLimiter(LimiterOpts{Rate: 1})
	if !l.Allow() {
		t.Fatal("first request denied")
	}
	if l.Allow() {
		t.Fatal("second request should be denied with burst 1")
	}
}

func TestLimiterWait(t *testing.T) {
	l := NewLimiter(LimiterOpts{Rate: 100, Burst: 1})
	l.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Wait(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestLimiterWaitZeroRateFailsFast(t *testing.T) {
	l := NewLimiter(LimiterOpts{Rate: 0, Burst: 1})

	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("burst token should satisfy the first wait: %v", err)
	}
	// The bucket can never refill; Wait must fail instead of polling.
	if err := l.Wait(context.Background()); err != ErrRateLimited {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
}

func TestLimiterWaitCancelled(t *testing.T) {
	l := NewLimiter(LimiterOpts{Rate: 0.001, Burst: 1})
	l.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); err != context.DeadlineExceeded {
		t.Fatalf("err = %v", err)
	}
}
