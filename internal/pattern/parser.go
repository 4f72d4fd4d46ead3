// Package pattern recognizes date-like text through an ordered registry of
// named regex patterns.
//
// Each pattern pairs a case-insensitive regex, written with shared fragments
// such as _YEAR_ and _MONTHNAME_, with a resolver that builds the date from the
// captured groups. The parser normalizes its input and walks the registry in
// order; the first resolver that produces a date wins.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/aidanlsb/datekit/internal/dates"
)

// ErrUnrecognized is the cause of every ParseError.
var ErrUnrecognized = errors.New("unrecognized date")

// maxDepth bounds nested parses ("1 day before 2 weeks after ...").
const maxDepth = 8

// ParseError reports input no pattern could resolve.
type ParseError struct {
	Input string
	// Matched lists the patterns whose regex matched but whose resolver
	// declined.
	Matched []string
}

func (e *ParseError) Error() string {
	if len(e.Matched) > 0 {
		return fmt.Sprintf("unrecognized date %q (matched but rejected by %s)", e.Input, strings.Join(e.Matched, ", "))
	}
	return fmt.Sprintf("unrecognized date %q", e.Input)
}

// Unwrap returns ErrUnrecognized.
func (e *ParseError) Unwrap() error { return ErrUnrecognized }

// Context is what a resolver sees besides its match.
type Context struct {
	// Input is the normalized text being parsed.
	Input string
	// Now is the reference instant, fixed for the whole parse.
	Now dates.Date
	// Location is where dates without an explicit offset are placed.
	Location *time.Location
	Names    *dates.Names

	parser *Parser
	depth  int
}

// Parse parses s with the same parser, reference instant and location. It is
// how resolvers handle an embedded date ("3 days after <date>").
func (c *Context) Parse(s string) (dates.Date, bool) {
	if c.parser == nil || c.depth >= maxDepth {
		return dates.Invalid, false
	}
	r, err := c.parser.parse(s, c.Now, c.depth+1)
	return r.Date, err == nil
}

// Parser turns text into dates using a Registry.
type Parser struct {
	registry *Registry
	clock    func() time.Time
	location *time.Location
	names    *dates.Names
	logger   *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the source of the reference instant.
func WithClock(clock func() time.Time) Option {
	return func(p *Parser) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithLocation sets the location for dates without an explicit offset.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		if loc != nil {
			p.location = loc
		}
	}
}

// WithNames sets the month and weekday name tables.
func WithNames(names *dates.Names) Option {
	return func(p *Parser) {
		if names != nil {
			p.names = names
		}
	}
}

// WithLogger sets the logger. Parses are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser returns a parser over registry. Defaults: time.Now, time.Local,
// English names and a no-op logger.
func NewParser(registry *Registry, opts ...Option) *Parser {
	p := &Parser{
		registry: registry,
		clock:    time.Now,
		location: time.Local,
		names:    dates.English,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the registry the parser walks.
func (p *Parser) Registry() *Registry { return p.registry }

// Location returns the parser's default location.
func (p *Parser) Location() *time.Location { return p.location }

// Now returns the current instant in the parser's location.
func (p *Parser) Now() dates.Date {
	return dates.FromTime(p.clock().In(p.location))
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize trims input and collapses whitespace runs to one space.
func Normalize(input string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(input), " ")
}

// Result is a recognized date and the pattern that produced it. Pattern is
// empty for blank input.
type Result struct {
	Date    dates.Date
	Pattern string
}

// Parse recognizes input. Blank input is the current instant. Failure is a
// *ParseError wrapping ErrUnrecognized.
func (p *Parser) Parse(input string) (dates.Date, error) {
	r, err := p.parse(input, p.Now(), 0)
	return r.Date, err
}

// ParseAt is Parse with an explicit reference instant.
func (p *Parser) ParseAt(input string, now dates.Date) (dates.Date, error) {
	r, err := p.parse(input, now, 0)
	return r.Date, err
}

// Recognize is Parse that also reports the winning pattern.
func (p *Parser) Recognize(input string) (Result, error) {
	return p.parse(input, p.Now(), 0)
}

func (p *Parser) parse(input string, now dates.Date, depth int) (Result, error) {
	text := Normalize(input)
	if text == "" {
		return Result{Date: now}, nil
	}

	ctx := &Context{
		Input:    text,
		Now:      now,
		Location: p.location,
		Names:    p.names,
		parser:   p,
		depth:    depth,
	}

	var declined []string
	for _, e := range p.registry.entries {
		m, ok, err := e.match(text)
		if err != nil {
			p.logger.Debug("pattern match failed",
				zap.String("pattern", e.Name),
				zap.String("input", text),
				zap.Error(err),
			)
			continue
		}
		if !ok {
			continue
		}
		d, ok := e.Resolver.Resolve(ctx, m)
		if ok && d.Valid() {
			p.logger.Debug("date recognized",
				zap.String("pattern", e.Name),
				zap.String("input", text),
				zap.Int("depth", depth),
			)
			return Result{Date: d, Pattern: e.Name}, nil
		}
		declined = append(declined, e.Name)
	}

	p.logger.Debug("date unrecognized",
		zap.String("input", text),
		zap.Strings("declined", declined),
		zap.Int("depth", depth),
	)
	return Result{Date: dates.Invalid}, &ParseError{Input: text, Matched: declined}
}
