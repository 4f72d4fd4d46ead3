// Package schedule runs a function at a parsed instant.
package schedule

import (
	"math"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/aidanlsb/datekit/internal/dates"
)

// ErrInvalidInstant is returned when the target date is Invalid.
var ErrInvalidInstant = errors.New("cannot schedule an invalid date")

// MaxDelay is the longest wait Delay reports. Targets further away saturate to
// it rather than wrapping.
const MaxDelay = time.Duration(math.MaxInt64)

const maxDelayMillis = int64(MaxDelay / time.Millisecond)

// Handle is a pending call created by Schedule.
type Handle struct {
	at    dates.Date
	delay time.Duration
	timer *time.Timer
	done  chan struct{}

	mu      sync.Mutex
	stopped bool
	fired   bool
}

// Delay returns how long to wait from now until at, never negative.
func Delay(at, now dates.Date) (time.Duration, error) {
	if !at.Valid() || !now.Valid() {
		return 0, ErrInvalidInstant
	}
	gap := at.Millis() - now.Millis()
	if (gap < 0) != (at.Millis() < now.Millis()) {
		gap = math.MaxInt64
		if at.Millis() < now.Millis() {
			gap = math.MinInt64
		}
	}
	switch {
	case gap <= 0:
		return 0, nil
	case gap > maxDelayMillis:
		return MaxDelay, nil
	}
	return time.Duration(gap) * time.Millisecond, nil
}

// Schedule calls fn once the wall clock reaches at, measured from now. An
// instant already in the past fires immediately.
func Schedule(at, now dates.Date, fn func()) (*Handle, error) {
	delay, err := Delay(at, now)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, errors.New("schedule: nil callback")
	}

	h := &Handle{at: at, delay: delay, done: make(chan struct{})}
	h.timer = time.AfterFunc(delay, func() {
		h.mu.Lock()
		if h.stopped {
			h.mu.Unlock()
			return
		}
		h.fired = true
		h.mu.Unlock()

		defer close(h.done)
		fn()
	})
	return h, nil
}

// At returns the target instant.
func (h *Handle) At() dates.Date { return h.at }

// Delay returns the wait computed when the call was scheduled.
func (h *Handle) Delay() time.Duration { return h.delay }

// Done is closed after the callback returns. It is never closed for a
// stopped handle.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Stop cancels the call. It reports false when the callback already started.
func (h *Handle) Stop() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.fired {
		return false
	}
	h.stopped = true
	h.timer.Stop()
	return true
}
