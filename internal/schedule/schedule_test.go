package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/datekit/internal/dates"
)

func TestScheduleFires(t *testing.T) {
	now := dates.FromTime(time.Now())
	var calls atomic.Int32

	h, err := Schedule(now.Add(20, "millisecond"), now, func() { calls.Add(1) })
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, h.Delay())

	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("callback did not fire")
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, h.Stop(), "stop after firing")
}

func TestSchedulePastFiresImmediately(t *testing.T) {
	now := dates.FromTime(time.Now())
	h, err := Schedule(now.Add(-1, "hour"), now, func() {})
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), h.Delay())

	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("past instant did not fire")
	}
}

func TestDelayFarFutureSaturates(t *testing.T) {
	now := dates.FromTime(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	at := dates.FromTime(time.Date(3000, time.January, 1, 0, 0, 0, 0, time.UTC))

	delay, err := Delay(at, now)
	require.NoError(t, err)
	assert.Equal(t, MaxDelay, delay)

	delay, err = Delay(now, at)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), delay)
}

func TestScheduleStop(t *testing.T) {
	now := dates.FromTime(time.Now())
	var calls atomic.Int32

	h, err := Schedule(now.Add(1, "hour"), now, func() { calls.Add(1) })
	require.NoError(t, err)
	assert.True(t, h.Stop())

	select {
	case <-h.Done():
		t.Fatal("stopped handle reported done")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestScheduleRejectsInvalid(t *testing.T) {
	now := dates.FromTime(time.Now())

	_, err := Schedule(dates.Invalid, now, func() {})
	assert.True(t, errors.Is(err, ErrInvalidInstant))

	_, err = Schedule(now, now, nil)
	assert.Error(t, err)
}

func TestDelay(t *testing.T) {
	now := dates.FromTime(time.Date(2010, 7, 19, 0, 0, 0, 0, time.UTC))

	d, err := Delay(now.Add(90, "minute"), now)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	d, err = Delay(now.Add(-1, "day"), now)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), d)

	_, err = Delay(now, dates.Invalid)
	assert.True(t, errors.Is(err, ErrInvalidInstant))
}
