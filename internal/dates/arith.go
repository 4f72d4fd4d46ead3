package dates

import (
	"math"
	"time"
)

// Add returns d moved by amount units. Unknown unit names use days.
func (d Date) Add(amount float64, unit string) Date {
	if !d.valid || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Invalid
	}
	u := LookupUnit(unit)
	if u.Calendar != nil {
		return FromTime(u.Calendar.Add(d.t, amount))
	}
	ms, ok := addMillis(d.Millis(), amount*float64(u.Factor))
	if !ok {
		return Invalid
	}
	sub := time.Duration(d.t.Nanosecond() % int(time.Millisecond))
	return FromTime(time.UnixMilli(ms).Add(sub).In(d.Location()))
}

// addMillis adds delta to base, reporting false when either delta or the sum
// leaves the int64 range.
func addMillis(base int64, delta float64) (int64, bool) {
	if delta >= math.MaxInt64 || delta < math.MinInt64 {
		return 0, false
	}
	step := int64(delta)
	sum := base + step
	if (step > 0 && sum < base) || (step < 0 && sum > base) {
		return 0, false
	}
	return sum, true
}

// Succ returns the date one unit ahead; an empty unit means a day.
func (d Date) Succ(unit string) Date {
	if unit == "" {
		unit = UnitDay.Name
	}
	return d.Add(1, unit)
}

// Diff returns d minus other in the given unit. Positive means d is later.
// Without allowDecimal the result is truncated toward zero. Either side being
// invalid yields NaN.
func (d Date) Diff(other Date, unit string, allowDecimal bool) float64 {
	if !d.valid || !other.valid {
		return math.NaN()
	}
	u := LookupUnit(unit)
	var v float64
	if u.Calendar != nil {
		v = u.Calendar.Diff(d.t, other.t)
	} else {
		v = float64(d.Millis()-other.Millis()) / float64(u.Factor)
	}
	if allowDecimal {
		return v
	}
	return towardZero(v)
}

// compareUnit defaults comparisons to millisecond granularity.
func compareUnit(unit string) string {
	if unit == "" {
		return UnitMillisecond.Name
	}
	return unit
}

// IsBefore reports whether d is earlier than other at the given granularity.
func (d Date) IsBefore(other Date, unit string) bool {
	v := d.Diff(other, compareUnit(unit), false)
	return !math.IsNaN(v) && v < 0
}

// IsAfter reports whether d is later than other at the given granularity.
func (d Date) IsAfter(other Date, unit string) bool {
	v := d.Diff(other, compareUnit(unit), false)
	return !math.IsNaN(v) && v > 0
}

// Equals reports whether d and other fall within one unit of each other.
func (d Date) Equals(other Date, unit string) bool {
	v := d.Diff(other, compareUnit(unit), false)
	return !math.IsNaN(v) && v == 0
}
