package credentials

import (
	"sync"
	"time"
)

type attempt struct {
	count       int
	lastAttempt time.Time
}

// AttemptLimiter tracks failed-login counters per identity (email) with a
// sliding lockout window. State is process-lifetime only and resets on
// restart, which is acceptable given there is no server authority.
type AttemptLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attempt

	maxAttempts     int
	lockoutDuration time.Duration

	now func() time.Time
}

// NewAttemptLimiter returns a limiter denying an identity after maxAttempts
// attempts within lockoutDuration of each other.
func NewAttemptLimiter(maxAttempts int, lockoutDuration time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		attempts:        make(map[string]*attempt),
		maxAttempts:     maxAttempts,
		lockoutDuration: lockoutDuration,
		now:             time.Now,
	}
}

// Check records a login attempt for identity and reports whether it is
// allowed. A fresh identity starts a counter at 1. Once lockoutDuration has
// elapsed since the last attempt the counter resets to 1. At or above
// maxAttempts the attempt is denied without touching the window.
func (l *AttemptLimiter) Check(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	a, ok := l.attempts[identity]
	if !ok {
		l.attempts[identity] = &attempt{count: 1, lastAttempt: now}
		return true
	}

	if now.Sub(a.lastAttempt) > l.lockoutDuration {
		a.count = 1
		a.lastAttempt = now
		return true
	}

	if a.count >= l.maxAttempts {
		return false
	}

	a.count++
	a.lastAttempt = now
	return true
}

// Reset clears the counter for identity. Called on successful login.
func (l *AttemptLimiter) Reset(identity string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, identity)
}
