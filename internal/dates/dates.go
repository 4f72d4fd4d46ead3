// Package dates provides the date value shared by the parser, the template
// engine and the CLI, together with the unit table, calendar arithmetic and
// relative text rendering.
//
// A Date is a value: every method returns a new Date and never changes the
// receiver. The zero Date is Invalid, the "not a date" marker. Operations on an
// invalid date short-circuit: arithmetic returns Invalid, Diff returns NaN,
// comparisons report false and String returns InvalidText.
package dates

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	// DateLayout is the canonical YYYY-MM-DD layout.
	DateLayout = "2006-01-02"
	// DatetimeLayout is the canonical YYYY-MM-DDTHH:MM layout.
	DatetimeLayout = "2006-01-02T15:04"
)

// InvalidText is the rendering of an invalid date.
const InvalidText = "Invalid Date"

// ErrInvalidComponent reports a calendar component outside its valid range
// (month 13, day 32, hour 24 ...). Strict construction never wraps such values.
var ErrInvalidComponent = errors.New("invalid date component")

// Date is an absolute instant plus the location used to read its calendar
// fields.
type Date struct {
	t     time.Time
	valid bool
}

// Invalid is the not-a-date marker.
var Invalid = Date{}

// FromTime wraps t.
func FromTime(t time.Time) Date {
	return Date{t: t, valid: true}
}

// FromMillis returns the date ms milliseconds after the Unix epoch, read in loc.
// A nil loc means time.Local.
func FromMillis(ms int64, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(time.UnixMilli(ms).In(loc))
}

// Build constructs a date from positional components the way a calendar
// constructor does: year, zero-based month, then optional day (default 1),
// hour, minute, second and millisecond. Out-of-range components carry into the
// next larger field (month 12 is January of the following year).
func Build(loc *time.Location, year, month0 int, rest ...int) Date {
	if loc == nil {
		loc = time.Local
	}
	parts := [5]int{1, 0, 0, 0, 0}
	for i := 0; i < len(rest) && i < len(parts); i++ {
		parts[i] = rest[i]
	}
	return FromTime(time.Date(year, time.Month(month0+1), parts[0], parts[1], parts[2], parts[3],
		parts[4]*int(time.Millisecond), loc))
}

// Strict constructs a date from a 1-based month and validates every component.
// Out-of-range values yield ErrInvalidComponent instead of being normalized.
func Strict(loc *time.Location, year, month, day, hour, minute, second, msec int) (Date, error) {
	if loc == nil {
		loc = time.Local
	}
	switch {
	case month < 1 || month > 12:
		return Invalid, errors.Wrapf(ErrInvalidComponent, "month %d", month)
	case day < 1 || day > DaysIn(year, month):
		return Invalid, errors.Wrapf(ErrInvalidComponent, "day %d of %04d-%02d", day, year, month)
	case hour < 0 || hour > 23:
		return Invalid, errors.Wrapf(ErrInvalidComponent, "hour %d", hour)
	case minute < 0 || minute > 59:
		return Invalid, errors.Wrapf(ErrInvalidComponent, "minute %d", minute)
	case second < 0 || second > 59:
		return Invalid, errors.Wrapf(ErrInvalidComponent, "second %d", second)
	case msec < 0 || msec > 999:
		return Invalid, errors.Wrapf(ErrInvalidComponent, "millisecond %d", msec)
	}
	return FromTime(time.Date(year, time.Month(month), day, hour, minute, second, msec*int(time.Millisecond), loc)), nil
}

// DaysIn returns the number of days in the 1-based month of year. February is
// probed: it has 29 days when the 29th does not roll into March.
func DaysIn(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if time.Date(year, time.February, 29, 0, 0, 0, 0, time.UTC).Day() == 29 {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// Valid reports whether d is a real date.
func (d Date) Valid() bool { return d.valid }

// Time returns the wrapped time. It is the zero time for Invalid.
func (d Date) Time() time.Time { return d.t }

// Millis returns milliseconds since the Unix epoch.
func (d Date) Millis() int64 { return d.t.UnixMilli() }

// Location returns the location calendar fields are read in.
func (d Date) Location() *time.Location { return d.t.Location() }

// In returns the same instant read in loc.
func (d Date) In(loc *time.Location) Date {
	if !d.valid || loc == nil {
		return d
	}
	return FromTime(d.t.In(loc))
}

// Clone returns a copy of d.
func (d Date) Clone() Date { return d }

func (d Date) Year() int        { return d.t.Year() }
func (d Date) Month() int       { return int(d.t.Month()) }
func (d Date) Day() int         { return d.t.Day() }
func (d Date) Weekday() int     { return int(d.t.Weekday()) }
func (d Date) Hour() int        { return d.t.Hour() }
func (d Date) Minute() int      { return d.t.Minute() }
func (d Date) Second() int      { return d.t.Second() }
func (d Date) Millisecond() int { return d.t.Nanosecond() / int(time.Millisecond) }

// WithClock returns d with its time of day replaced. Values carry over like
// Build.
func (d Date) WithClock(hour, minute, second, msec int) Date {
	if !d.valid {
		return Invalid
	}
	t := d.t
	return FromTime(time.Date(t.Year(), t.Month(), t.Day(), hour, minute, second, msec*int(time.Millisecond), t.Location()))
}

// YmdInt packs year, month and day into one integer (20131219) for fast
// comparison.
func (d Date) YmdInt() int {
	if !d.valid {
		return 0
	}
	return d.Year()*10000 + d.Month()*100 + d.Day()
}

// DaysInMonth returns the length of d's month.
func (d Date) DaysInMonth() int {
	return DaysIn(d.Year(), d.Month())
}

// IsLeapYear reports whether February of d's year has 29 days.
func (d Date) IsLeapYear() bool {
	return DaysIn(d.Year(), 2) == 29
}

// String renders d as an RFC 3339 timestamp with milliseconds.
func (d Date) String() string {
	if !d.valid {
		return InvalidText
	}
	return d.t.Format("2006-01-02T15:04:05.000Z07:00")
}

// GoString is used by %#v in test failure output.
func (d Date) GoString() string {
	return fmt.Sprintf("dates.Date(%s)", d.String())
}
