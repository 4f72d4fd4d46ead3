// Package datekit is the facade over parsing, formatting and arithmetic.
//
// A Kit owns a pattern registry, a dialect registry, a clock, a location and
// name tables. Everything is injected through options so a Kit can be pinned
// for reproducible output:
//
//	kit := datekit.New(datekit.WithLocation(time.UTC), datekit.WithClock(fixed))
//	d := kit.Create("3 months ago")
//	fmt.Println(kit.Format(d, "%B %e, %Y"))
package datekit

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/aidanlsb/datekit/internal/dates"
	"github.com/aidanlsb/datekit/internal/pattern"
	"github.com/aidanlsb/datekit/internal/template"
)

// Kit bundles the registries and environment used to create and render dates.
type Kit struct {
	patterns        *pattern.Registry
	dialects        *template.Registry
	parser          *pattern.Parser
	clock           func() time.Time
	location        *time.Location
	names           *dates.Names
	logger          *zap.Logger
	defaultTemplate string
}

// Option configures a Kit.
type Option func(*Kit)

// WithClock fixes the source of "now".
func WithClock(clock func() time.Time) Option {
	return func(k *Kit) {
		if clock != nil {
			k.clock = clock
		}
	}
}

// WithLocation sets the location for dates without an explicit offset.
func WithLocation(loc *time.Location) Option {
	return func(k *Kit) {
		if loc != nil {
			k.location = loc
		}
	}
}

// WithNames swaps the month and weekday name tables.
func WithNames(names *dates.Names) Option {
	return func(k *Kit) {
		if names != nil {
			k.names = names
		}
	}
}

// WithLogger sets the logger shared with the registries and parser.
func WithLogger(logger *zap.Logger) Option {
	return func(k *Kit) {
		if logger != nil {
			k.logger = logger
		}
	}
}

// WithPatterns replaces the built-in pattern registry.
func WithPatterns(r *pattern.Registry) Option {
	return func(k *Kit) { k.patterns = r }
}

// WithDialects replaces the built-in dialect registry.
func WithDialects(r *template.Registry) Option {
	return func(k *Kit) { k.dialects = r }
}

// WithDefaultTemplate sets the template used when Format gets an empty one.
func WithDefaultTemplate(tmpl string) Option {
	return func(k *Kit) { k.defaultTemplate = tmpl }
}

// New returns a Kit with the built-in patterns and dialects unless replaced.
func New(opts ...Option) *Kit {
	k := &Kit{
		clock:    time.Now,
		location: time.Local,
		names:    dates.English,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.patterns == nil {
		k.patterns = pattern.NewBuiltinRegistry(k.logger)
	}
	if k.dialects == nil {
		k.dialects = template.NewBuiltinRegistry(k.logger)
	}
	k.parser = pattern.NewParser(k.patterns,
		pattern.WithClock(k.clock),
		pattern.WithLocation(k.location),
		pattern.WithNames(k.names),
		pattern.WithLogger(k.logger),
	)
	return k
}

// Patterns returns the pattern registry. Mutate it only during setup.
func (k *Kit) Patterns() *pattern.Registry { return k.patterns }

// Dialects returns the dialect registry. Mutate it only during setup.
func (k *Kit) Dialects() *template.Registry { return k.dialects }

// Location returns the Kit's default location.
func (k *Kit) Location() *time.Location { return k.location }

// Names returns the Kit's name tables.
func (k *Kit) Names() *dates.Names { return k.names }

// Now returns the current instant in the Kit's location.
func (k *Kit) Now() dates.Date {
	return dates.FromTime(k.clock().In(k.location))
}

// Parse recognizes text. Failure wraps pattern.ErrUnrecognized.
func (k *Kit) Parse(text string) (dates.Date, error) {
	return k.parser.Parse(text)
}

// Recognize is Parse that also reports the winning pattern.
func (k *Kit) Recognize(text string) (pattern.Result, error) {
	return k.parser.Recognize(text)
}

// Format renders d, picking strftime when tmpl contains % and php otherwise.
// An empty tmpl uses the Kit default template, then the dialect default.
func (k *Kit) Format(d dates.Date, tmpl string) string {
	if tmpl == "" {
		tmpl = k.defaultTemplate
	}
	out, err := k.dialects.Format(d, tmpl, k.names)
	if err == nil {
		return out
	}
	k.logger.Debug("dialect missing, using built-in", zap.Error(err))
	fallback := template.NewPHP()
	if template.DetectDialect(tmpl) == template.StrftimeName {
		fallback = template.NewStrftime()
	}
	return template.Apply(fallback, tmpl, d, k.names)
}

// FormatWith renders d with the named dialect.
func (k *Kit) FormatWith(dialect string, d dates.Date, tmpl string) (string, error) {
	return k.dialects.FormatWith(dialect, d, tmpl, k.names)
}

// Diff coerces a and b with Create and returns a minus b in unit.
func (k *Kit) Diff(a, b any, unit string, allowDecimal bool) float64 {
	return k.Create(a).Diff(k.Create(b), unit, allowDecimal)
}

// IsBefore reports whether a is earlier than b at unit granularity
// (millisecond when unit is empty).
func (k *Kit) IsBefore(a, b any, unit string) bool {
	return k.Create(a).IsBefore(k.Create(b), unit)
}

// IsAfter reports whether a is later than b at unit granularity.
func (k *Kit) IsAfter(a, b any, unit string) bool {
	return k.Create(a).IsAfter(k.Create(b), unit)
}

// Equals reports whether a and b agree at unit granularity.
func (k *Kit) Equals(a, b any, unit string) bool {
	return k.Create(a).Equals(k.Create(b), unit)
}

// DiffText describes d relative to compare, or to now when compare is omitted.
func (k *Kit) DiffText(d any, compare ...any) string {
	ref := k.Now()
	if len(compare) > 0 {
		ref = k.Create(compare[0])
	}
	return k.Create(d).DiffText(ref)
}

// AutoFormat is the input-field collaborator: it parses text and renders the
// result with tmpl. When parsing fails the text is returned unchanged with
// false.
func (k *Kit) AutoFormat(text, tmpl string) (string, bool) {
	d, err := k.Parse(text)
	if err != nil {
		return text, false
	}
	return k.Format(d, tmpl), true
}

// DiffNumber is Diff with NaN mapped to ok=false, for callers that print.
func (k *Kit) DiffNumber(a, b any, unit string, allowDecimal bool) (float64, bool) {
	v := k.Diff(a, b, unit, allowDecimal)
	return v, !math.IsNaN(v)
}
