package edgar

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestRateLimiter_SpacesRequests(t *testing.T) {
	l := NewRateLimiter(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	elapsed := time.Since(start)
	if elapsed < 100*time.Millisecond {
		t.Errorf("expected at least 100ms for 3 calls at 50ms spacing, got %v", elapsed)
	}
}

func TestRateLimiter_ConcurrentCallersSerialize(t *testing.T) {
	l := NewRateLimiter(20 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Wait(ctx); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("expected 4 concurrent callers to serialize over 60ms, got %v", elapsed)
	}
}

func TestRateLimiter_ContextCancellation(t *testing.T) {
	l := NewRateLimiter(time.Second)
	ctx := context.Background()
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := l.Wait(cancelled); err == nil {
		t.Error("expected context error while waiting")
	}
}
