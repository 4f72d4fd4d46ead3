package datekit

import (
	"math"
	"time"

	"github.com/aidanlsb/datekit/internal/dates"
)

// maxComponents is year, month, day, hour, minute, second, millisecond.
const maxComponents = 7

// Create builds a date from whatever it is given:
//
//   - nothing (or a single nil): now
//   - a dates.Date: returned unchanged
//   - a time.Time: wrapped
//   - a single number: milliseconds since the Unix epoch
//   - a single string: parsed; Invalid when unrecognized
//   - 2 to 7 numbers: year, zero-based month, day, hour, minute, second and
//     millisecond, normalized like a calendar constructor
//
// Extra positional numbers beyond seven are ignored. Anything else is Invalid.
func (k *Kit) Create(args ...any) dates.Date {
	switch len(args) {
	case 0:
		return k.Now()
	case 1:
		return k.createOne(args[0])
	}

	if len(args) > maxComponents {
		args = args[:maxComponents]
	}
	parts := make([]int, len(args))
	for i, arg := range args {
		n, ok := toInt64(arg)
		if !ok {
			return dates.Invalid
		}
		parts[i] = int(n)
	}
	return dates.Build(k.location, parts[0], parts[1], parts[2:]...)
}

// CreateUTC is Create with the resulting wall clock read as UTC.
func (k *Kit) CreateUTC(args ...any) dates.Date {
	return k.Create(args...).SetUTCOffset(0)
}

func (k *Kit) createOne(arg any) dates.Date {
	switch v := arg.(type) {
	case nil:
		return k.Now()
	case dates.Date:
		return v
	case *dates.Date:
		if v == nil {
			return k.Now()
		}
		return *v
	case time.Time:
		return dates.FromTime(v)
	case string:
		d, err := k.Parse(v)
		if err != nil {
			return dates.Invalid
		}
		return d
	}
	if ms, ok := toInt64(arg); ok {
		return dates.FromMillis(ms, k.location)
	}
	return dates.Invalid
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
