package template

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/aidanlsb/datekit/internal/dates"
)

// ErrBadAccessor is returned for an accessor spec that names no accessor or
// carries a malformed pad width.
var ErrBadAccessor = errors.New("unknown accessor")

// Accessor is a getter derived from a date value.
type Accessor int

const (
	AccessorUnknown Accessor = iota
	FullYear
	ShortYear
	IsLeapYear
	MonthNumber
	MonthName
	AbbrMonthName
	DaysInMonth
	DayOfMonth
	DayName
	AbbrDayName
	Weekday
	DayOrdinal
	Hours
	Hours12
	AmPm
	AmPmLower
	Minutes
	Seconds
	Milliseconds
	Unix
	TimezoneOffset
	TimezoneName
	UTCOffset
	UTCOffsetNumber
)

// accessorNames are the names used in accessor specs. DayOfMonth is "Date"
// and Weekday is "Day" to match the calendar getters they mirror.
var accessorNames = map[Accessor]string{
	FullYear:        "FullYear",
	ShortYear:       "ShortYear",
	IsLeapYear:      "isLeapYear",
	MonthNumber:     "MonthNumber",
	MonthName:       "MonthName",
	AbbrMonthName:   "AbbrMonthName",
	DaysInMonth:     "daysInMonth",
	DayOfMonth:      "Date",
	DayName:         "DayName",
	AbbrDayName:     "AbbrDayName",
	Weekday:         "Day",
	DayOrdinal:      "DayOrdinal",
	Hours:           "Hours",
	Hours12:         "Hours12",
	AmPm:            "AmPm",
	AmPmLower:       "AmPmLower",
	Minutes:         "Minutes",
	Seconds:         "Seconds",
	Milliseconds:    "Milliseconds",
	Unix:            "Unix",
	TimezoneOffset:  "TimezoneOffset",
	TimezoneName:    "TimezoneName",
	UTCOffset:       "UTCOffset",
	UTCOffsetNumber: "UTCOffsetNumber",
}

var accessorsByName = func() map[string]Accessor {
	m := make(map[string]Accessor, len(accessorNames))
	for a, name := range accessorNames {
		m[strings.ToLower(name)] = a
	}
	return m
}()

func (a Accessor) String() string {
	if name, ok := accessorNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Value computes the unpadded accessor value for d.
func (a Accessor) Value(d dates.Date, names *dates.Names) string {
	names = dates.OrNames(names)
	switch a {
	case FullYear:
		return strconv.Itoa(d.Year())
	case ShortYear:
		return strconv.Itoa(d.Year() % 100)
	case IsLeapYear:
		if d.IsLeapYear() {
			return "1"
		}
		return "0"
	case MonthNumber:
		return strconv.Itoa(d.Month())
	case MonthName:
		return names.Months[d.Month()-1]
	case AbbrMonthName:
		return names.AbbrMonths[d.Month()-1]
	case DaysInMonth:
		return strconv.Itoa(d.DaysInMonth())
	case DayOfMonth:
		return strconv.Itoa(d.Day())
	case DayName:
		return names.Days[d.Weekday()]
	case AbbrDayName:
		return names.AbbrDays[d.Weekday()]
	case Weekday:
		return strconv.Itoa(d.Weekday())
	case DayOrdinal:
		return names.Ordinal(d.Day())
	case Hours:
		return strconv.Itoa(d.Hour())
	case Hours12:
		h := d.Hour() % 12
		if h == 0 {
			h = 12
		}
		return strconv.Itoa(h)
	case AmPm:
		if d.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case AmPmLower:
		if d.Hour() < 12 {
			return "am"
		}
		return "pm"
	case Minutes:
		return strconv.Itoa(d.Minute())
	case Seconds:
		return strconv.Itoa(d.Second())
	case Milliseconds:
		return strconv.Itoa(d.Millisecond())
	case Unix:
		return strconv.FormatInt(d.Unix(), 10)
	case TimezoneOffset:
		return strconv.Itoa(d.TimezoneOffset())
	case TimezoneName:
		return d.TimezoneName()
	case UTCOffset:
		return d.UTCOffset()
	case UTCOffsetNumber:
		return d.UTCOffsetNumber()
	default:
		return ""
	}
}

// Code is a parsed accessor spec: an accessor plus an optional zero-pad width.
type Code struct {
	Accessor Accessor
	Width    int
}

// ParseCode parses "AccessorName" or "AccessorName.width". Accessor names are
// matched case-insensitively.
func ParseCode(spec string) (Code, error) {
	name, width, hasWidth := strings.Cut(strings.TrimSpace(spec), ".")
	a, ok := accessorsByName[strings.ToLower(name)]
	if !ok {
		return Code{}, errors.Wrapf(ErrBadAccessor, "%q", spec)
	}
	code := Code{Accessor: a}
	if hasWidth {
		n, err := strconv.Atoi(width)
		if err != nil || n < 0 {
			return Code{}, errors.Wrapf(ErrBadAccessor, "pad width in %q", spec)
		}
		code.Width = n
	}
	return code, nil
}

// MustCode is ParseCode for tables known at compile time.
func MustCode(spec string) Code {
	c, err := ParseCode(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// Render returns the accessor value left-padded with zeros to Width.
func (c Code) Render(d dates.Date, names *dates.Names) string {
	v := c.Accessor.Value(d, names)
	if n := c.Width - len(v); n > 0 {
		return strings.Repeat("0", n) + v
	}
	return v
}

func (c Code) String() string {
	if c.Width > 0 {
		return c.Accessor.String() + "." + strconv.Itoa(c.Width)
	}
	return c.Accessor.String()
}
