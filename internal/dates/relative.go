package dates

import (
	"fmt"
	"math"
	"strings"
)

var relativeDateKeywords = map[string]int{
	"today":     0,
	"now":       0,
	"tomorrow":  1,
	"yesterday": -1,
}

// NormalizeRelativeDateKeyword normalizes and validates a relative date keyword.
// Returns the canonical keyword and true when valid.
func NormalizeRelativeDateKeyword(value string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if _, ok := relativeDateKeywords[normalized]; !ok {
		return "", false
	}
	return normalized, true
}

// ResolveRelativeDateKeyword resolves today, now, tomorrow or yesterday against
// now. The time of day is kept.
func ResolveRelativeDateKeyword(value string, now Date) (Date, bool) {
	keyword, ok := NormalizeRelativeDateKeyword(value)
	if !ok {
		return Invalid, false
	}
	days := relativeDateKeywords[keyword]
	if days == 0 {
		return now, true
	}
	return now.Add(float64(days), UnitDay.Name), true
}

// Bucket thresholds in seconds.
const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	secondsPerWeek   = 604800
	secondsPerMonth  = 2592000
	secondsPerYear   = 31536000
)

// DiffText describes d relative to compare in approximate English, for example
// "in 3 days", "2 hours ago", "tomorrow" or "last year".
func (d Date) DiffText(compare Date) string {
	if !d.valid || !compare.valid {
		return InvalidText
	}
	seconds := d.Diff(compare, UnitSecond.Name, false)
	diff := math.Abs(seconds)
	future := seconds > 0

	pick := func(ahead, behind string) string {
		if future {
			return ahead
		}
		return behind
	}

	var counted string
	switch {
	case diff < 2*secondsPerMinute:
		if seconds >= 0 {
			return "in a moment"
		}
		return "moments ago"
	case diff < secondsPerHour:
		counted = fmt.Sprintf("%d minutes", int(diff/secondsPerMinute))
	case diff < secondsPerDay:
		hours := int(diff / secondsPerHour)
		counted = fmt.Sprintf("%d hours", hours)
		if hours == 1 {
			counted = "1 hour"
		}
	case diff < 2*secondsPerDay:
		return pick("tomorrow", "yesterday")
	case diff < secondsPerWeek:
		counted = fmt.Sprintf("%d days", int(diff/secondsPerDay))
	case diff < 2*secondsPerWeek:
		return pick("next week", "last week")
	case diff < 4*secondsPerWeek:
		counted = fmt.Sprintf("%d weeks", int(diff/secondsPerWeek))
	case diff < 2*secondsPerMonth:
		return pick("next month", "last month")
	case diff < secondsPerYear:
		counted = fmt.Sprintf("%d months", int(diff/secondsPerMonth))
	case diff < 2*secondsPerYear:
		return pick("next year", "last year")
	default:
		counted = fmt.Sprintf("%d years", int(diff/secondsPerYear))
	}

	if future {
		return "in " + counted
	}
	return counted + " ago"
}
