package reconcile

import (
	"sync"
	"time"
)

// DefaultEditWindow is how long a manual edit holds off reconciliation.
const DefaultEditWindow = 350 * time.Millisecond

// EditLock marks that the user just edited a quantity. The timestamp comes
// from time.Now, so comparisons use the monotonic clock.
type EditLock struct {
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	touched time.Time
	held    bool
}

func NewEditLock(window time.Duration) *EditLock {
	return newEditLock(window, time.Now)
}

func newEditLock(window time.Duration, now func() time.Time) *EditLock {
	if window <= 0 {
		window = DefaultEditWindow
	}
	return &EditLock{window: window, now: now}
}

// Touch records a manual edit now.
func (l *EditLock) Touch() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.touched = l.now()
	l.held = true
}

// Remaining is the time left in the window, or zero once it has passed.
func (l *EditLock) Remaining() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.held {
		return 0
	}

	left := l.window - l.now().Sub(l.touched)
	if left <= 0 {
		l.held = false
		return 0
	}
	return left
}

func (l *EditLock) Release() {
	l.mu.Lock()
	l.held = false
	l.mu.Unlock()
}
