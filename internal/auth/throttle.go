package auth

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
)

const (
	maxFailures     = 5
	lockoutDuration = 15 * time.Minute
)

// LockoutError reports an active lockout and how long the caller has to wait.
type LockoutError struct {
	RetryAfterMinutes int
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("Too many login attempts. Try again in %d minutes", e.RetryAfterMinutes)
}

type attemptCounter struct {
	count     int
	lockUntil time.Time
}

// Throttle counts failed logins per (identifier, source address) in process
// memory. State is ephemeral: a restart clears every lockout, expired entries
// are only reclaimed when their key is checked again, and the map otherwise
// grows for the life of the process. In production this would live in Redis.
type Throttle struct {
	mu       sync.Mutex
	attempts map[string]*attemptCounter
	now      func() time.Time
}

func NewThrottle() *Throttle {
	return &Throttle{
		attempts: make(map[string]*attemptCounter),
		now:      time.Now,
	}
}

func throttleKey(identifier, addr string) string {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || addr == "" {
		return ""
	}
	return identifier + "-" + addr
}

// Check fails with *LockoutError while a lockout is active. An entry past its
// expiry is dropped on the spot. Missing identifier or address skips the
// throttle entirely; it must never block a login on its own.
func (t *Throttle) Check(identifier, addr string) error {
	key := throttleKey(identifier, addr)
	if key == "" {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	counter, ok := t.attempts[key]
	if !ok {
		return nil
	}

	if !counter.lockUntil.IsZero() {
		if counter.lockUntil.After(t.now()) {
			remaining := counter.lockUntil.Sub(t.now())
			return &LockoutError{
				RetryAfterMinutes: int(math.Ceil(remaining.Minutes())),
			}
		}
		delete(t.attempts, key)
	}
	return nil
}

// RecordFailure increments the counter; the fifth failure arms a 15 minute
// lockout.
func (t *Throttle) RecordFailure(identifier, addr string) {
	key := throttleKey(identifier, addr)
	if key == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	counter, ok := t.attempts[key]
	if !ok {
		counter = &attemptCounter{}
		t.attempts[key] = counter
	}

	counter.count++
	if counter.count >= maxFailures {
		counter.lockUntil = t.now().Add(lockoutDuration)
	}
}

// Reset clears the counter after a successful authentication.
func (t *Throttle) Reset(identifier, addr string) {
	key := throttleKey(identifier, addr)
	if key == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, key)
}
