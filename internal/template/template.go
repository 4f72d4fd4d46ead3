// Package template renders dates through format dialects.
//
// A dialect pairs a two-group matcher with a table of codes and shortcuts.
// Group 1 is an optional marker preceding the token, group 2 the token. Tokens
// naming a shortcut are expanded recursively, tokens naming a code are replaced
// by the accessor value and anything else passes through unchanged.
package template

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/aidanlsb/datekit/internal/dates"
)

// ErrBadMatcher is returned for a matcher that does not compile or has fewer
// than two capture groups.
var ErrBadMatcher = errors.New("invalid dialect matcher")

// maxShortcutDepth bounds shortcut expansion. Shortcuts must not refer to
// themselves; past this depth the token is emitted literally.
const maxShortcutDepth = 16

// Dialect is a named format code scheme.
type Dialect struct {
	Name            string
	Matcher         *regexp.Regexp
	Escape          string
	DefaultTemplate string
	Codes           map[string]Code
	Shortcuts       map[string]string
}

// DialectSpec is the textual form of a dialect, as declared in extension files.
type DialectSpec struct {
	Name            string
	Matcher         string
	Escape          string
	DefaultTemplate string
	// Codes maps tokens to accessor specs such as "MonthNumber.2".
	Codes     map[string]string
	Shortcuts map[string]string
	// FoldCase registers an upper-case copy of every code.
	FoldCase bool
}

// NewDialect compiles spec. The matcher is compiled case-insensitively.
func NewDialect(spec DialectSpec) (*Dialect, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, errors.New("dialect name is required")
	}
	re, err := regexp.Compile("(?i)" + spec.Matcher)
	if err != nil {
		return nil, errors.Wrapf(ErrBadMatcher, "dialect %s: %v", spec.Name, err)
	}
	if re.NumSubexp() < 2 {
		return nil, errors.WithHint(
			errors.Wrapf(ErrBadMatcher, "dialect %s has %d capture groups", spec.Name, re.NumSubexp()),
			"group 1 is the marker before a token and group 2 the token, e.g. ()%(#?[a-z])",
		)
	}

	d := &Dialect{
		Name:            spec.Name,
		Matcher:         re,
		Escape:          spec.Escape,
		DefaultTemplate: spec.DefaultTemplate,
		Codes:           make(map[string]Code, len(spec.Codes)),
		Shortcuts:       make(map[string]string, len(spec.Shortcuts)),
	}
	for token, accessor := range spec.Codes {
		code, err := ParseCode(accessor)
		if err != nil {
			return nil, errors.Wrapf(err, "dialect %s code %q", spec.Name, token)
		}
		d.Codes[token] = code
		if spec.FoldCase {
			d.Codes[strings.ToUpper(token)] = code
		}
	}
	for token, expansion := range spec.Shortcuts {
		d.Shortcuts[token] = expansion
	}
	return d, nil
}

// MustDialect is NewDialect for built-in tables.
func MustDialect(spec DialectSpec) *Dialect {
	d, err := NewDialect(spec)
	if err != nil {
		panic(err)
	}
	return d
}

// Apply renders date through d. An empty tmpl uses the dialect default.
// A nil names means English.
func Apply(d *Dialect, tmpl string, date dates.Date, names *dates.Names) string {
	if !date.Valid() {
		return dates.InvalidText
	}
	if tmpl == "" {
		tmpl = d.DefaultTemplate
	}
	var b strings.Builder
	d.apply(&b, tmpl, date, dates.OrNames(names), 0)
	return b.String()
}

func (d *Dialect) apply(b *strings.Builder, source string, date dates.Date, names *dates.Names, depth int) {
	for source != "" {
		loc := d.Matcher.FindStringSubmatchIndex(source)
		if loc == nil {
			break
		}
		b.WriteString(source[:loc[0]])

		marker := submatch(source, loc, 1)
		token := submatch(source, loc, 2)
		if d.Escape != "" && marker == d.Escape {
			b.WriteString(token)
		} else {
			b.WriteString(marker)
			d.resolve(b, token, date, names, depth)
		}

		if loc[1] == loc[0] {
			// Empty match: copy one rune so the scan advances.
			_, size := utf8.DecodeRuneInString(source[loc[1]:])
			b.WriteString(source[loc[1] : loc[1]+size])
			source = source[loc[1]+size:]
			continue
		}
		source = source[loc[1]:]
	}
	b.WriteString(source)
}

func (d *Dialect) resolve(b *strings.Builder, token string, date dates.Date, names *dates.Names, depth int) {
	if expansion, ok := d.Shortcuts[token]; ok && depth < maxShortcutDepth {
		d.apply(b, expansion, date, names, depth+1)
		return
	}
	if code, ok := d.Codes[token]; ok {
		b.WriteString(code.Render(date, names))
		return
	}
	b.WriteString(token)
}

func submatch(s string, loc []int, group int) string {
	if 2*group+1 >= len(loc) || loc[2*group] < 0 {
		return ""
	}
	return s[loc[2*group]:loc[2*group+1]]
}
