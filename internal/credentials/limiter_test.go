package credentials

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(maxAttempts int, window time.Duration) (*AttemptLimiter, *time.Time) {
	l := NewAttemptLimiter(maxAttempts, window)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAttemptLimiter_FreshIdentityAllowed(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)
	assert.True(t, l.Check("a@b.c"))
}

func TestAttemptLimiter_DeniesAtMax(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	assert.True(t, l.Check("a@b.c"))  // count 1
	assert.True(t, l.Check("a@b.c"))  // count 2
	assert.True(t, l.Check("a@b.c"))  // count 3
	assert.False(t, l.Check("a@b.c")) // denied
	assert.False(t, l.Check("a@b.c"), "stays denied inside the window")
}

func TestAttemptLimiter_WindowExpiryResets(t *testing.T) {
	l, now := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		l.Check("a@b.c")
	}
	assert.False(t, l.Check("a@b.c"))

	*now = now.Add(time.Minute + time.Second)
	assert.True(t, l.Check("a@b.c"), "counter resets after the window elapses")
	assert.True(t, l.Check("a@b.c"))
}

func TestAttemptLimiter_ResetClearsCounter(t *testing.T) {
	l, _ := newTestLimiter(2, time.Minute)

	l.Check("a@b.c")
	l.Check("a@b.c")
	assert.False(t, l.Check("a@b.c"))

	l.Reset("a@b.c")
	assert.True(t, l.Check("a@b.c"))
}

func TestAttemptLimiter_IdentitiesIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	assert.True(t, l.Check("a@b.c"))
	assert.False(t, l.Check("a@b.c"))
	assert.True(t, l.Check("x@y.z"), "other identities keep their own counter")
}
