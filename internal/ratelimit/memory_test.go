package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_EnforcesLimit(t *testing.T) {
	l := NewMemoryLimiter(time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		d, err := l.Allow(ctx, "signup:10.0.0.1", 5)
		if err != nil {
			t.Fatalf("allow errored: %v", err)
		}
		if !d.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	d, err := l.Allow(ctx, "signup:10.0.0.1", 5)
	if err != nil {
		t.Fatalf("allow errored: %v", err)
	}
	if d.Allowed {
		t.Fatalf("6th request within the window should be denied")
	}
	if d.RetryAfter <= 0 || d.RetryAfter > time.Minute {
		t.Fatalf("unexpected retry-after: %v", d.RetryAfter)
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	l := NewMemoryLimiter(time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := l.Allow(ctx, "signup:10.0.0.1", 5); err != nil {
			t.Fatalf("allow errored: %v", err)
		}
	}

	// Same address, different endpoint class.
	d, _ := l.Allow(ctx, "login:10.0.0.1", 10)
	if !d.Allowed {
		t.Fatalf("different endpoint class should have its own window")
	}

	// Same class, different address.
	d, _ = l.Allow(ctx, "signup:10.0.0.2", 5)
	if !d.Allowed {
		t.Fatalf("different address should have its own window")
	}
}

func TestMemoryLimiter_WindowSlides(t *testing.T) {
	l := NewMemoryLimiter(time.Minute)
	ctx := context.Background()

	current := time.Now()
	l.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		l.Allow(ctx, "k", 5)
	}
	if d, _ := l.Allow(ctx, "k", 5); d.Allowed {
		t.Fatalf("expected denial inside window")
	}

	current = current.Add(61 * time.Second)
	if d, _ := l.Allow(ctx, "k", 5); !d.Allowed {
		t.Fatalf("expected allowance after window elapsed")
	}
}

func TestMemoryLimiter_EvictsIdleKeys(t *testing.T) {
	l := NewMemoryLimiter(time.Minute)
	ctx := context.Background()

	current := time.Now()
	l.now = func() time.Time { return current }

	l.Allow(ctx, "idle", 5)
	l.Allow(ctx, "busy", 5)

	// Past the sweep interval with "idle" aged out; the next check triggers
	// the sweep.
	current = current.Add(6 * time.Minute)
	l.Allow(ctx, "busy", 5)

	l.mu.Lock()
	_, idleKept := l.requests["idle"]
	l.mu.Unlock()
	if idleKept {
		t.Fatalf("idle key should have been evicted")
	}
}
