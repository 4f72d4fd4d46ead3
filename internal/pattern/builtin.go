package pattern

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aidanlsb/datekit/internal/dates"
)

// Builtins returns fresh copies of the built-in patterns in precedence order.
func Builtins() []*Entry {
	return []*Entry{
		// 2010-03-15
		MustEntry("iso_8601", `^(_YEAR_)-(_MONTH_)-(_DAY_)$`, Fields{Year: 1, Month: 2, Day: 3}),
		// 3-15-2010, 3/15/2010
		MustEntry("us", `^(_MONTH_)([/-])(_DAY_)\2(_YEAR_)$`, Fields{Month: 1, Day: 3, Year: 4}),
		// 15.03.2010, 15/03/2010
		MustEntry("world", `^(_DAY_)([/.])(_MONTH_)\2(_YEAR_)$`, Fields{Day: 1, Month: 3, Year: 4}),
		// 15-Mar-2010, 8 Dec 2011, Thu, 8 Dec 2011
		MustEntry("chicago", `^(?:(?:_DAYNAME_),? )?(_DAY_)([ -])(_MONTHNAME_)\2(_YEAR_)$`,
			Fields{Day: 1, MonthName: 3, Year: 4}),
		// March 4, 2012; Mar 4 2012; Sun Mar 4 2012
		MustEntry("conversational", `^(?:(?:_DAYNAME_),? )?(_MONTHNAME_) (_DAY_),? (_YEAR_)$`,
			Fields{MonthName: 1, Day: 2, Year: 3}),
		// Tue Jun 22 17:47:27 +0000 2010
		MustEntry("month_day_time_year",
			`^(?:_DAYNAME_) (_MONTHNAME_) (_DAY_) ((?:_H24_):(?:_MIN_)(?::_SEC_)?) (_TIMEZONE_) (_YEAR_)$`,
			ResolverFunc(resolveMonthDayTimeYear)),
		// @1312132465
		MustEntry("unix", `^@(-?\d+)$`, ResolverFunc(resolveUnix)),
		// 20:15, 2006-08-01 20:15:59, 2010-11-26T12:01:05.179-05:00, ... GMT-0600 (MDT)
		MustEntry("24_hour",
			`^(?:(.+?)(?: |T))?(_H24_):(_MIN_)(?::(_SEC_)(?:\.(_MS_))?)? ?(?:GMT)?(_TIMEZONE_)?(?: \([A-Z]+\))?$`,
			ResolverFunc(resolve24Hour)),
		// 8pm, 8:15pm, 10-28-2007 8:15:00 pm
		MustEntry("12_hour", `^(?:(.+) )?(_H12_)(?::(_MIN_)(?::(_SEC_))?)? ?(_AMPM_)$`,
			ResolverFunc(resolve12Hour)),
		// 2 weeks after today, 3 months before 3-5-2008
		MustEntry("weeks_months_before_after", `^(\d+) (_UNIT_)s? (before|from|after) (.+)$`,
			ResolverFunc(resolveBeforeAfter)),
		// 5 months ago
		MustEntry("time_ago", `^(\d+) (_UNIT_)s? ago$`, ResolverFunc(resolveAgo)),
		// in 2 hours
		MustEntry("in_time", `^in (\d+) (_UNIT_)s?$`, ResolverFunc(resolveIn)),
		// +2 hours, -3 years
		MustEntry("plus_minus", `^([+-]) ?(\d+) (_UNIT_)s?$`, ResolverFunc(resolvePlusMinus)),
		// /Date(1296824894000)/, /Date(1296824894000-0700)/
		MustEntry("asp_json", `^/Date\((\d+)([+-]\d{4})?\)/$`, ResolverFunc(resolveASPJSON)),
		// today, now, tomorrow, yesterday
		MustEntry("today_tomorrow", `^(today|now|tomorrow|yesterday)`, ResolverFunc(resolveKeyword)),
		// this week, next january, last thursday
		MustEntry("this_next_last", `^(this|next|last) (?:(_UNIT_)s?|(_MONTHNAME_)|(_DAYNAME_))$`,
			ResolverFunc(resolveThisNextLast)),
		// January 4th, July the 4th
		MustEntry("conversational_sans_year", `^(_MONTHNAME_) (?:the )?(\d+)(?:st|nd|rd|th)?$`,
			ResolverFunc(resolveSansYear)),
	}
}

func atoi(s string, fallback int) (int, bool) {
	if s == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func resolveMonthDayTimeYear(ctx *Context, m Match) (dates.Date, bool) {
	month, ok := ctx.Names.MonthByName(m.Group(1))
	if !ok {
		return dates.Invalid, false
	}
	day, ok := atoi(m.Group(2), 1)
	if !ok {
		return dates.Invalid, false
	}
	iso := fmt.Sprintf("%s-%02d-%02dT%s%s", m.Group(5), month, day, m.Group(3), m.Group(4))
	return ctx.Parse(iso)
}

func resolveUnix(ctx *Context, m Match) (dates.Date, bool) {
	secs, err := strconv.ParseInt(m.Group(1), 10, 64)
	if err != nil || secs > math.MaxInt64/1000 || secs < math.MinInt64/1000 {
		return dates.Invalid, false
	}
	return dates.FromMillis(secs*1000, ctx.Location), true
}

// anchor parses the date segment in group i, or returns now when the group did
// not participate.
func anchor(ctx *Context, m Match, i int) (dates.Date, bool) {
	if m.Has(i) && m.Group(i) != "" {
		return ctx.Parse(m.Group(i))
	}
	return ctx.Now, true
}

func resolve24Hour(ctx *Context, m Match) (dates.Date, bool) {
	base, ok := anchor(ctx, m, 1)
	if !ok {
		return dates.Invalid, false
	}
	hour, ok1 := atoi(m.Group(2), 0)
	minute, ok2 := atoi(m.Group(3), 0)
	second, ok3 := atoi(m.Group(4), 0)
	msec := 0
	if frac := m.Group(5); frac != "" {
		// Only millisecond precision is kept.
		msec, _ = strconv.Atoi(frac[:3])
	}
	if !ok1 || !ok2 || !ok3 {
		return dates.Invalid, false
	}

	d := base.WithClock(hour, minute, second, msec)
	if m.Has(6) {
		offset, err := dates.ParseOffset(m.Group(6))
		if err != nil {
			return dates.Invalid, false
		}
		d = d.SetUTCOffset(offset)
	}
	return d, true
}

func resolve12Hour(ctx *Context, m Match) (dates.Date, bool) {
	base, ok := anchor(ctx, m, 1)
	if !ok {
		return dates.Invalid, false
	}
	hour, ok1 := atoi(m.Group(2), 0)
	minute, ok2 := atoi(m.Group(3), 0)
	second, ok3 := atoi(m.Group(4), 0)
	if !ok1 || !ok2 || !ok3 {
		return dates.Invalid, false
	}

	if strings.EqualFold(m.Group(5), "am") {
		if hour == 12 {
			hour = 0
		}
	} else if hour != 12 {
		hour += 12
	}
	return base.WithClock(hour, minute, second, 0), true
}

func resolveBeforeAfter(ctx *Context, m Match) (dates.Date, bool) {
	amount, ok := atoi(m.Group(1), 0)
	if !ok {
		return dates.Invalid, false
	}
	from, ok := ctx.Parse(m.Group(4))
	if !ok {
		return dates.Invalid, false
	}
	if strings.EqualFold(m.Group(3), "before") {
		amount = -amount
	}
	return from.Add(float64(amount), strings.ToLower(m.Group(2))), true
}

func resolveAgo(ctx *Context, m Match) (dates.Date, bool) {
	amount, ok := atoi(m.Group(1), 0)
	if !ok {
		return dates.Invalid, false
	}
	return ctx.Now.Add(float64(-amount), strings.ToLower(m.Group(2))), true
}

func resolveIn(ctx *Context, m Match) (dates.Date, bool) {
	amount, ok := atoi(m.Group(1), 0)
	if !ok {
		return dates.Invalid, false
	}
	return ctx.Now.Add(float64(amount), strings.ToLower(m.Group(2))), true
}

func resolvePlusMinus(ctx *Context, m Match) (dates.Date, bool) {
	amount, ok := atoi(m.Group(2), 0)
	if !ok {
		return dates.Invalid, false
	}
	if m.Group(1) == "-" {
		amount = -amount
	}
	return ctx.Now.Add(float64(amount), strings.ToLower(m.Group(3))), true
}

// resolveASPJSON reads epoch milliseconds. A trailing offset selects the zone
// the instant is shown in; it does not move the instant.
func resolveASPJSON(ctx *Context, m Match) (dates.Date, bool) {
	ms, err := strconv.ParseInt(m.Group(1), 10, 64)
	if err != nil {
		return dates.Invalid, false
	}
	d := dates.FromMillis(ms, ctx.Location)
	if m.Has(2) {
		offset, err := dates.ParseOffset(m.Group(2))
		if err != nil {
			return dates.Invalid, false
		}
		d = d.In(dates.FixedZone(offset))
	}
	return d, true
}

func resolveKeyword(ctx *Context, m Match) (dates.Date, bool) {
	return dates.ResolveRelativeDateKeyword(m.Group(1), ctx.Now)
}

func resolveThisNextLast(ctx *Context, m Match) (dates.Date, bool) {
	which := strings.ToLower(m.Group(1))
	sign := 1
	if which == "last" {
		sign = -1
	}
	now := ctx.Now

	switch {
	case m.Has(2):
		return now.Add(float64(sign), strings.ToLower(m.Group(2))), true

	case m.Has(3):
		month, ok := ctx.Names.MonthByName(m.Group(3))
		if !ok {
			return dates.Invalid, false
		}
		// Months until the next occurrence, 1..12; the current month is a
		// year away.
		diff := 12 - (now.Month() - month)
		if diff > 12 {
			diff -= 12
		}
		return now.Add(float64(sign*diff), dates.UnitMonth.Name), true

	case m.Has(4):
		weekday, ok := ctx.Names.WeekdayByName(m.Group(4))
		if !ok {
			return dates.Invalid, false
		}
		var days int
		switch which {
		case "next":
			days = weekday - now.Weekday()
			if days <= 0 {
				days += 7
			}
		case "last":
			days = now.Weekday() - weekday
			if days <= 0 {
				days += 7
			}
			days = -days
		default:
			days = weekday - now.Weekday()
			if days < 0 {
				days += 7
			}
		}
		return now.Add(float64(days), dates.UnitDay.Name), true
	}
	return dates.Invalid, false
}

func resolveSansYear(ctx *Context, m Match) (dates.Date, bool) {
	month, ok := ctx.Names.MonthByName(m.Group(1))
	if !ok {
		return dates.Invalid, false
	}
	day, ok := atoi(m.Group(2), 0)
	if !ok {
		return dates.Invalid, false
	}
	now := ctx.Now
	d, err := dates.Strict(now.Location(), now.Year(), month, day,
		now.Hour(), now.Minute(), now.Second(), now.Millisecond())
	if err != nil {
		return dates.Invalid, false
	}
	return d, true
}
