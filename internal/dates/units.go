package dates

import (
	"math"
	"time"
)

// CalendarUnit is a unit whose length depends on where it is applied.
type CalendarUnit interface {
	Add(t time.Time, amount float64) time.Time
	Diff(a, b time.Time) float64
}

// Unit is an entry of the unit table: either a fixed length in milliseconds or
// a calendar handler.
type Unit struct {
	Name     string
	Factor   int64
	Calendar CalendarUnit
}

// Fixed reports whether u has a uniform length.
func (u Unit) Fixed() bool { return u.Calendar == nil }

var (
	UnitMillisecond = Unit{Name: "millisecond", Factor: 1}
	UnitSecond      = Unit{Name: "second", Factor: 1000}
	UnitMinute      = Unit{Name: "minute", Factor: 60 * 1000}
	UnitHour        = Unit{Name: "hour", Factor: 60 * 60 * 1000}
	UnitDay         = Unit{Name: "day", Factor: 24 * 60 * 60 * 1000}
	UnitWeek        = Unit{Name: "week", Factor: 7 * 24 * 60 * 60 * 1000}
	UnitMonth       = Unit{Name: "month", Calendar: monthUnit{}}
	UnitYear        = Unit{Name: "year", Calendar: yearUnit{}}
)

var canonicalUnits = []Unit{
	UnitMillisecond, UnitSecond, UnitMinute, UnitHour,
	UnitDay, UnitWeek, UnitMonth, UnitYear,
}

// unitTable maps every canonical name and its plural alias to the entry.
var unitTable = func() map[string]Unit {
	table := make(map[string]Unit, len(canonicalUnits)*2)
	for _, u := range canonicalUnits {
		table[u.Name] = u
		table[u.Name+"s"] = u
	}
	return table
}()

// LookupUnit returns the unit registered under name (exact, case-sensitive).
// Unknown names silently resolve to the day unit.
func LookupUnit(name string) Unit {
	if u, ok := unitTable[name]; ok {
		return u
	}
	return UnitDay
}

// KnownUnit reports whether name is a canonical unit name or alias.
func KnownUnit(name string) bool {
	_, ok := unitTable[name]
	return ok
}

// UnitNames returns the canonical unit names, smallest first.
func UnitNames() []string {
	names := make([]string, len(canonicalUnits))
	for i, u := range canonicalUnits {
		names[i] = u.Name
	}
	return names
}

// towardZero truncates with floor for positive values and ceil otherwise.
func towardZero(x float64) float64 {
	if x > 0 {
		return math.Floor(x)
	}
	v := math.Ceil(x)
	if v == 0 {
		return 0
	}
	return v
}

type yearUnit struct{}

func (yearUnit) Add(t time.Time, amount float64) time.Time {
	return time.Date(t.Year()+int(towardZero(amount)), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func (yearUnit) Diff(a, b time.Time) float64 {
	return monthUnit{}.Diff(a, b) / 12
}

type monthUnit struct{}

// Add moves t by amount months. Whole years go through the year handler, the
// remainder advances the month index. When the day of month cannot exist in
// the target month the result is the last day of that month.
func (m monthUnit) Add(t time.Time, amount float64) time.Time {
	prevDay := t.Day()
	t = yearUnit{}.Add(t, amount/12)

	year := t.Year()
	month := int(t.Month()) - 1 + int(math.Trunc(math.Mod(amount, 12)))
	switch {
	case month > 11:
		month -= 12
		year++
	case month < 0:
		month += 12
		year--
	}

	next := time.Date(year, time.Month(month+1), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if next.Day() == prevDay {
		return next
	}

	// The day overflowed into the following month.
	back := m.Add(next, -1)
	return time.Date(back.Year(), back.Month(), DaysIn(back.Year(), int(back.Month())),
		back.Hour(), back.Minute(), back.Second(), back.Nanosecond(), back.Location())
}

// Diff counts whole months plus a day fraction over a fixed 30-day month.
// The approximation is not calendar-exact; it is kept for compatibility.
func (monthUnit) Diff(a, b time.Time) float64 {
	years := a.Year() - b.Year()
	months := int(a.Month()) - int(b.Month()) + years*12
	days := a.Day() - b.Day()
	return float64(months) + float64(days)/30
}
