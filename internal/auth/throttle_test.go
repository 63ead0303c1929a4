package auth

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestThrottleLocksAfterFiveFailures(t *testing.T) {
	th := NewThrottle()

	for i := 0; i < 4; i++ {
		th.RecordFailure("user@gmail.com", "10.0.0.1")
		if err := th.Check("user@gmail.com", "10.0.0.1"); err != nil {
			t.Fatalf("expected no lockout after %d failures, got %v", i+1, err)
		}
	}

	th.RecordFailure("user@gmail.com", "10.0.0.1")
	err := th.Check("user@gmail.com", "10.0.0.1")
	if err == nil {
		t.Fatal("expected lockout after 5 failures")
	}

	var lockout *LockoutError
	if !errors.As(err, &lockout) {
		t.Fatalf("expected *LockoutError, got %T", err)
	}
	if lockout.RetryAfterMinutes < 1 || lockout.RetryAfterMinutes > 15 {
		t.Fatalf("unexpected retry-after: %d", lockout.RetryAfterMinutes)
	}
}

func TestThrottleKeyIsPerIdentifierAndAddress(t *testing.T) {
	th := NewThrottle()
	for i := 0; i < 5; i++ {
		th.RecordFailure("user@gmail.com", "10.0.0.1")
	}

	if err := th.Check("user@gmail.com", "10.0.0.2"); err != nil {
		t.Fatalf("different address should not be locked, got %v", err)
	}
	if err := th.Check("other@gmail.com", "10.0.0.1"); err != nil {
		t.Fatalf("different identifier should not be locked, got %v", err)
	}
	if err := th.Check("  USER@gmail.com ", "10.0.0.1"); err == nil {
		t.Fatal("identifier normalisation should hit the same bucket")
	}
}

func TestThrottleResetClearsCounter(t *testing.T) {
	th := NewThrottle()
	for i := 0; i < 5; i++ {
		th.RecordFailure("user@gmail.com", "10.0.0.1")
	}
	th.Reset("user@gmail.com", "10.0.0.1")

	if err := th.Check("user@gmail.com", "10.0.0.1"); err != nil {
		t.Fatalf("expected reset to clear lockout, got %v", err)
	}
}

func TestThrottleLazyExpiry(t *testing.T) {
	th := NewThrottle()
	current := time.Now()
	th.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		th.RecordFailure("user@gmail.com", "10.0.0.1")
	}
	if err := th.Check("user@gmail.com", "10.0.0.1"); err == nil {
		t.Fatal("expected active lockout")
	}

	current = current.Add(16 * time.Minute)
	if err := th.Check("user@gmail.com", "10.0.0.1"); err != nil {
		t.Fatalf("expected expired lockout to clear, got %v", err)
	}

	// The expired entry was dropped, so a single new failure must not lock.
	th.RecordFailure("user@gmail.com", "10.0.0.1")
	if err := th.Check("user@gmail.com", "10.0.0.1"); err != nil {
		t.Fatalf("expected fresh counter after expiry, got %v", err)
	}
}

func TestThrottleSkipsOnMissingKeyParts(t *testing.T) {
	th := NewThrottle()
	for i := 0; i < 10; i++ {
		th.RecordFailure("", "10.0.0.1")
		th.RecordFailure("user@gmail.com", "")
	}
	if err := th.Check("", "10.0.0.1"); err != nil {
		t.Fatalf("missing identifier must never block, got %v", err)
	}
	if err := th.Check("user@gmail.com", ""); err != nil {
		t.Fatalf("missing address must never block, got %v", err)
	}
}

func TestThrottleConcurrentFailures(t *testing.T) {
	th := NewThrottle()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			th.RecordFailure("user@gmail.com", "10.0.0.1")
		}()
	}
	wg.Wait()

	th.mu.Lock()
	counter := th.attempts["user@gmail.com-10.0.0.1"]
	th.mu.Unlock()

	if counter == nil || counter.count != 50 {
		t.Fatalf("expected 50 recorded failures, got %+v", counter)
	}
}
