package dates

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrBadOffset is returned for text that is not a ±HH:MM or ±HHMM offset.
var ErrBadOffset = errors.New("invalid UTC offset")

var offsetRe = regexp.MustCompile(`([+-]?)([01]\d|2[0-3]):?([0-5]\d)`)

// ParseOffset reads the first ±HH:MM or ±HHMM in s and returns it in minutes
// east of UTC. A missing sign means positive.
func ParseOffset(s string) (int, error) {
	m := offsetRe.FindStringSubmatch(s)
	if m == nil {
		return 0, errors.WithHint(errors.Wrapf(ErrBadOffset, "%q", s), "use +HH:MM or +HHMM")
	}
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	total := hours*60 + minutes
	if m[1] == "-" {
		total = -total
	}
	return total, nil
}

// FormatOffset renders minutes east of UTC as ±HH:MM.
func FormatOffset(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("%c%02d:%02d", sign, minutes/60, minutes%60)
}

// FixedZone returns an unnamed location at the given offset in minutes. Zero
// is time.UTC.
func FixedZone(minutes int) *time.Location {
	if minutes == 0 {
		return time.UTC
	}
	return time.FixedZone("", minutes*60)
}

// OffsetMinutes returns d's offset from UTC in minutes east.
func (d Date) OffsetMinutes() int {
	_, secs := d.t.Zone()
	return secs / 60
}

// UTCOffset renders d's offset as ±HH:MM. UTC is "+00:00".
func (d Date) UTCOffset() string {
	return FormatOffset(d.OffsetMinutes())
}

// UTCOffsetNumber renders d's offset as ±HHMM.
func (d Date) UTCOffsetNumber() string {
	s := d.UTCOffset()
	return s[:3] + s[4:]
}

// TimezoneOffset is the offset in minutes behind UTC (positive west of
// Greenwich), the sign convention of JavaScript's getTimezoneOffset.
func (d Date) TimezoneOffset() int {
	return -d.OffsetMinutes()
}

// TimezoneName returns the zone abbreviation, or "GMT±HHMM" for unnamed zones.
func (d Date) TimezoneName() string {
	name, _ := d.t.Zone()
	if name == "" {
		return "GMT" + d.UTCOffsetNumber()
	}
	return name
}

// SetUTCOffset keeps d's wall clock and places it at the given offset (minutes
// east of UTC). The instant moves by the difference between the two offsets.
func (d Date) SetUTCOffset(minutes int) Date {
	if !d.valid {
		return Invalid
	}
	t := d.t
	return FromTime(time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
		t.Nanosecond(), FixedZone(minutes)))
}

// SetUTCOffsetString is SetUTCOffset for ±HH:MM or ±HHMM text. Unparseable
// text leaves d unchanged.
func (d Date) SetUTCOffsetString(offset string) Date {
	minutes, err := ParseOffset(offset)
	if err != nil {
		return d
	}
	return d.SetUTCOffset(minutes)
}

// Unix returns seconds since the epoch, rounded half up.
func (d Date) Unix() int64 {
	return int64(math.Floor(float64(d.Millis())/1000 + 0.5))
}
