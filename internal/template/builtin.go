package template

// Built-in dialect names.
const (
	StrftimeName = "strftime"
	PHPName      = "php"
	SQLName      = "sql"
)

// Canonical templates in the strftime dialect.
const (
	ISOTemplate    = "%Y-%m-%dT%H:%M:%S.%N%G"
	SQLTemplate    = "%Y-%m-%d %H:%M:%S"
	RFC822Template = "%a, %d %b %Y %H:%M:%S %#G"
)

// NewStrftime returns the %-prefixed dialect. A # after the % drops padding.
func NewStrftime() *Dialect {
	return MustDialect(DialectSpec{
		Name:            StrftimeName,
		Matcher:         `()%(#?(%|[a-z]))`,
		DefaultTemplate: "%Y-%m-%d %H:%M:%s",
		Codes: map[string]string{
			"Y":  "FullYear",
			"y":  "ShortYear.2",
			"m":  "MonthNumber.2",
			"#m": "MonthNumber",
			"B":  "MonthName",
			"b":  "AbbrMonthName",
			"d":  "Date.2",
			"#d": "Date",
			"e":  "Date",
			"A":  "DayName",
			"a":  "AbbrDayName",
			"w":  "Day",
			"o":  "DayOrdinal",
			"H":  "Hours.2",
			"#H": "Hours",
			"I":  "Hours12.2",
			"#I": "Hours12",
			"P":  "AmPmLower",
			"p":  "AmPm",
			"M":  "Minutes.2",
			"#M": "Minutes",
			"S":  "Seconds.2",
			"#S": "Seconds",
			"s":  "Unix",
			"N":  "Milliseconds.3",
			"#N": "Milliseconds",
			"O":  "TimezoneOffset",
			"Z":  "TimezoneName",
			"G":  "UTCOffset",
			"#G": "UTCOffsetNumber",
		},
		Shortcuts: map[string]string{
			"F":  "%Y-%m-%d",
			"T":  "%H:%M:%S",
			"X":  "%H:%M:%S",
			"x":  "%m/%d/%y",
			"D":  "%m/%d/%y",
			"#c": "%a %b %e %H:%M:%S %Y",
			"v":  "%e-%b-%Y",
			"R":  "%H:%M",
			"r":  "%I:%M:%S %p",
			"t":  "\t",
			"n":  "\n",
			"%":  "%",
		},
	})
}

// NewPHP returns the bare-letter dialect. A backslash escapes the next letter.
func NewPHP() *Dialect {
	return MustDialect(DialectSpec{
		Name:            PHPName,
		Matcher:         `(\\)?([a-z])`,
		Escape:          `\`,
		DefaultTemplate: "Y-m-d H:i:s",
		Codes: map[string]string{
			"Y": "FullYear",
			"y": "ShortYear.2",
			"L": "isLeapYear",
			"m": "MonthNumber.2",
			"n": "MonthNumber",
			"F": "MonthName",
			"M": "AbbrMonthName",
			"t": "daysInMonth",
			"d": "Date.2",
			"j": "Date",
			"l": "DayName",
			"D": "AbbrDayName",
			"w": "Day",
			"S": "DayOrdinal",
			"H": "Hours.2",
			"G": "Hours",
			"h": "Hours12.2",
			"g": "Hours12",
			"a": "AmPmLower",
			"A": "AmPm",
			"i": "Minutes.2",
			"s": "Seconds.2",
			"U": "Unix",
			"Z": "TimezoneOffset",
			"e": "TimezoneName",
			"P": "UTCOffset",
			"O": "UTCOffsetNumber",
		},
		Shortcuts: map[string]string{
			"c": `Y-m-d\TH:i:sP`,
			"r": "D, j M Y H:i:s O",
		},
	})
}

// NewSQL returns the word-token dialect. Tokens are accepted in lower or upper
// case.
func NewSQL() *Dialect {
	return MustDialect(DialectSpec{
		Name:            SQLName,
		Matcher:         `()(mi|am|pm|ss|yyyy|yy|m{1,4}|d{1,4}|w|hh?24|hh?12)`,
		DefaultTemplate: "yyyy-mm-dd hh24:mi:ss",
		FoldCase:        true,
		Codes: map[string]string{
			"yyyy": "FullYear",
			"yy":   "ShortYear.2",
			"mm":   "MonthNumber.2",
			"m":    "MonthNumber",
			"mmm":  "AbbrMonthName",
			"mmmm": "MonthName",
			"dd":   "Date.2",
			"d":    "Date",
			"ddd":  "AbbrDayName",
			"dddd": "DayName",
			"w":    "Day",
			"hh24": "Hours.2",
			"h24":  "Hours",
			"hh":   "Hours12.2",
			"hh12": "Hours12.2",
			"h12":  "Hours12",
			"am":   "AmPm",
			"pm":   "AmPm",
			"mi":   "Minutes.2",
			"ss":   "Seconds.2",
		},
	})
}
