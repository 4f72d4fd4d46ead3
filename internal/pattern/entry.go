package pattern

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dlclark/regexp2"

	"github.com/aidanlsb/datekit/internal/dates"
)

// matchTimeout bounds a single regex evaluation; user patterns can backtrack.
const matchTimeout = 250 * time.Millisecond

// ErrBadPattern is returned when an entry's regex does not compile.
var ErrBadPattern = errors.New("invalid pattern")

// Resolver turns a regex match into a date. Returning false declines the
// match and lets the parser try the next entry.
type Resolver interface {
	Resolve(ctx *Context, m Match) (dates.Date, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx *Context, m Match) (dates.Date, bool)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx *Context, m Match) (dates.Date, bool) {
	return f(ctx, m)
}

// Fields resolves a match by reading calendar fields straight from capture
// groups. Each value is a group index; zero means the field is absent. A
// missing year means the current year. Month is read numerically from Month
// or by name from MonthName. Construction is strict, so month 13 or day 32
// declines the match.
type Fields struct {
	Year      int
	Month     int
	MonthName int
	Day       int
}

// Resolve implements Resolver.
func (f Fields) Resolve(ctx *Context, m Match) (dates.Date, bool) {
	year := ctx.Now.Year()
	if f.Year > 0 {
		n, err := strconv.Atoi(m.Group(f.Year))
		if err != nil {
			return dates.Invalid, false
		}
		year = n
	}

	var month int
	switch {
	case f.Month > 0:
		n, err := strconv.Atoi(m.Group(f.Month))
		if err != nil {
			return dates.Invalid, false
		}
		month = n
	case f.MonthName > 0:
		n, ok := ctx.Names.MonthByName(m.Group(f.MonthName))
		if !ok {
			return dates.Invalid, false
		}
		month = n
	default:
		return dates.Invalid, false
	}

	day := 1
	if f.Day > 0 {
		n, err := strconv.Atoi(m.Group(f.Day))
		if err != nil {
			return dates.Invalid, false
		}
		day = n
	}

	d, err := dates.Strict(ctx.Location, year, month, day, 0, 0, 0, 0)
	if err != nil {
		return dates.Invalid, false
	}
	return d, true
}

// Match exposes the capture groups of a successful match.
type Match struct {
	groups  []string
	present []bool
}

// Group returns capture group i, or "" when it did not participate.
func (m Match) Group(i int) string {
	if i < 0 || i >= len(m.groups) {
		return ""
	}
	return m.groups[i]
}

// Has reports whether capture group i participated in the match.
func (m Match) Has(i int) bool {
	return i >= 0 && i < len(m.present) && m.present[i]
}

// Len returns the number of groups including group 0.
func (m Match) Len() int { return len(m.groups) }

// Entry is a named regex paired with a resolver.
type Entry struct {
	Name     string
	Source   string
	Resolver Resolver

	expanded string
	re       *regexp2.Regexp
}

// NewEntry expands fragment placeholders in source and compiles it
// case-insensitively. A nil fragments uses DefaultFragments.
func NewEntry(name, source string, resolver Resolver, fragments Fragments) (*Entry, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("pattern name is required")
	}
	if resolver == nil {
		return nil, errors.Newf("pattern %s has no resolver", name)
	}
	if fragments == nil {
		fragments = builtinFragments
	}
	expanded := fragments.Expand(source)
	re, err := regexp2.Compile(expanded, regexp2.IgnoreCase)
	if err != nil {
		return nil, errors.Wrapf(ErrBadPattern, "pattern %s: %v", name, err)
	}
	re.MatchTimeout = matchTimeout
	return &Entry{
		Name:     name,
		Source:   source,
		Resolver: resolver,
		expanded: expanded,
		re:       re,
	}, nil
}

// MustEntry is NewEntry for built-in tables.
func MustEntry(name, source string, resolver Resolver) *Entry {
	e, err := NewEntry(name, source, resolver, nil)
	if err != nil {
		panic(err)
	}
	return e
}

// Expanded returns the regex source after fragment substitution.
func (e *Entry) Expanded() string { return e.expanded }

// match runs the regex against input.
func (e *Entry) match(input string) (Match, bool, error) {
	m, err := e.re.FindStringMatch(input)
	if err != nil || m == nil {
		return Match{}, false, err
	}
	n := m.GroupCount()
	out := Match{groups: make([]string, n), present: make([]bool, n)}
	for i := 0; i < n; i++ {
		g := m.GroupByNumber(i)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		out.groups[i] = g.String()
		out.present[i] = true
	}
	return out, true, nil
}
