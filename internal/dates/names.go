package dates

import "strings"

// Names holds the swappable name tables used for rendering and for resolving
// month and weekday words. Months are January first, days Sunday first and
// Ordinals are indexed by the last digit of the day of month.
type Names struct {
	Months     [12]string
	AbbrMonths [12]string
	Days       [7]string
	AbbrDays   [7]string
	Ordinals   [10]string
}

// English is the default name table.
var English = &Names{
	Months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	AbbrMonths: [12]string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	},
	Days:     [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	AbbrDays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	Ordinals: [10]string{"th", "st", "nd", "rd", "th", "th", "th", "th", "th", "th"},
}

// OrNames returns n, or English when n is nil.
func OrNames(n *Names) *Names {
	if n == nil {
		return English
	}
	return n
}

// MonthByName resolves a month name or abbreviation to 1..12 by comparing the
// first three letters case-insensitively.
func (n *Names) MonthByName(name string) (int, bool) {
	key := prefix3(name)
	for i, abbr := range n.AbbrMonths {
		if prefix3(abbr) == key {
			return i + 1, true
		}
	}
	return 0, false
}

// WeekdayByName resolves a weekday name or abbreviation to 0 (Sunday) .. 6.
func (n *Names) WeekdayByName(name string) (int, bool) {
	key := prefix3(name)
	for i, abbr := range n.AbbrDays {
		if prefix3(abbr) == key {
			return i, true
		}
	}
	return 0, false
}

// Ordinal returns the suffix for day of month, e.g. "st" for 21.
func (n *Names) Ordinal(day int) string {
	if day < 0 {
		day = -day
	}
	return n.Ordinals[day%10]
}

func prefix3(s string) string {
	r := []rune(strings.ToLower(strings.TrimSpace(s)))
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}
