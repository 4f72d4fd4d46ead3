package pattern

import (
	"regexp"
	"sort"
)

// Fragments maps placeholder names to regex source. A pattern source refers
// to a fragment as _NAME_; substitution happens once, when an entry is built.
type Fragments map[string]string

var builtinFragments = Fragments{
	"YEAR":      `[1-9]\d{3}`,
	"MONTH":     `1[0-2]|0?[1-9]`,
	"MONTH2":    `1[0-2]|0[1-9]`,
	"MONTHNAME": `jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|september|oct|october|nov|november|dec|december`,
	"DAYNAME":   `mon|monday|tue|tuesday|wed|wednesday|thu|thursday|fri|friday|sat|saturday|sun|sunday`,
	"DAY":       `3[01]|[12]\d|0?[1-9]`,
	"DAY2":      `3[01]|[12]\d|0[1-9]`,
	"TIMEZONE":  `[+-][01]\d:?[0-5]\d`,
	"H24":       `[01]\d|2[0-3]`,
	"MIN":       `[0-5]\d`,
	"SEC":       `[0-5]\d`,
	"MS":        `\d{3,}`,
	"H12":       `0?[1-9]|1[012]`,
	"AMPM":      `am|pm`,
	"UNIT":      `year|month|week|day|hour|minute|second|millisecond`,
}

var placeholderRe = regexp.MustCompile(`_([A-Z][A-Z0-9]+)_`)

// DefaultFragments returns a copy of the built-in fragment table.
func DefaultFragments() Fragments {
	out := make(Fragments, len(builtinFragments))
	for k, v := range builtinFragments {
		out[k] = v
	}
	return out
}

// With returns a copy of f with extra added over it.
func (f Fragments) With(extra map[string]string) Fragments {
	out := make(Fragments, len(f)+len(extra))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Expand substitutes every _NAME_ placeholder in source. Unknown placeholders
// are left as written.
func (f Fragments) Expand(source string) string {
	return placeholderRe.ReplaceAllStringFunc(source, func(token string) string {
		if v, ok := f[token[1:len(token)-1]]; ok {
			return v
		}
		return token
	})
}

// Names returns the fragment names, sorted.
func (f Fragments) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
