package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/datekit/internal/pattern"
	"github.com/aidanlsb/datekit/internal/slugs"
	"github.com/aidanlsb/datekit/internal/template"
)

// Extensions declares fragments, patterns and dialects added on top of the
// built-ins.
//
//	fragments:
//	  PERIOD: "1[0-2]|[1-9]"
//	patterns:
//	  - name: fiscal period
//	    regex: "^P(_PERIOD_) (_YEAR_)$"
//	    after: iso_8601
//	    fields: {year: 2, month: 1}
//	dialects:
//	  - name: dotnet
//	    matcher: "()(yyyy|mm|dd)"
//	    codes: {yyyy: FullYear, mm: MonthNumber.2, dd: Date.2}
type Extensions struct {
	Fragments map[string]string `yaml:"fragments"`
	Patterns  []PatternSpec     `yaml:"patterns"`
	Dialects  []DialectSpec     `yaml:"dialects"`
}

// PatternSpec is a declarative pattern resolved from capture groups.
type PatternSpec struct {
	Name   string    `yaml:"name"`
	Regex  string    `yaml:"regex"`
	After  string    `yaml:"after"`
	Fields FieldSpec `yaml:"fields"`
}

// FieldSpec maps calendar fields to capture group numbers.
type FieldSpec struct {
	Year      int `yaml:"year"`
	Month     int `yaml:"month"`
	MonthName int `yaml:"month_name"`
	Day       int `yaml:"day"`
}

// DialectSpec is the YAML form of template.DialectSpec.
type DialectSpec struct {
	Name      string            `yaml:"name"`
	Matcher   string            `yaml:"matcher"`
	Escape    string            `yaml:"escape"`
	Default   string            `yaml:"default"`
	FoldCase  bool              `yaml:"fold_case"`
	Codes     map[string]string `yaml:"codes"`
	Shortcuts map[string]string `yaml:"shortcuts"`
}

// LoadExtensions reads an extensions file.
func LoadExtensions(path string) (*Extensions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read extensions %s: %w", path, err)
	}
	ext, err := ParseExtensions(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extensions %s: %w", path, err)
	}
	return ext, nil
}

// ParseExtensions decodes extensions YAML. Unknown keys are errors.
func ParseExtensions(data []byte) (*Extensions, error) {
	var ext Extensions
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ext); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &ext, nil
}

// Apply registers the declared patterns and dialects. Names are normalized
// with slugs.Name. Patterns without an anchor go to the front of the registry
// in the order they are listed.
func (e *Extensions) Apply(patterns *pattern.Registry, dialects *template.Registry) error {
	if e == nil {
		return nil
	}

	extra := make(map[string]string, len(e.Fragments))
	for name, source := range e.Fragments {
		extra[strings.ToUpper(strings.TrimSpace(name))] = source
	}
	fragments := pattern.DefaultFragments().With(extra)

	front := ""
	for i, spec := range e.Patterns {
		name := slugs.Name(spec.Name)
		if name == "" {
			return fmt.Errorf("pattern %d: name is required", i+1)
		}
		fields := pattern.Fields{
			Year:      spec.Fields.Year,
			Month:     spec.Fields.Month,
			MonthName: spec.Fields.MonthName,
			Day:       spec.Fields.Day,
		}
		if fields.Month == 0 && fields.MonthName == 0 {
			return fmt.Errorf("pattern %s: fields need month or month_name", name)
		}
		entry, err := pattern.NewEntry(name, spec.Regex, fields, fragments)
		if err != nil {
			return fmt.Errorf("pattern %s: %w", name, err)
		}

		after := slugs.Name(spec.After)
		if after == "" {
			after = front
			front = name
		}
		if err := patterns.Add(entry, after); err != nil {
			return fmt.Errorf("pattern %s: %w", name, err)
		}
	}

	for i, spec := range e.Dialects {
		name := slugs.Name(spec.Name)
		if name == "" {
			return fmt.Errorf("dialect %d: name is required", i+1)
		}
		d, err := template.NewDialect(template.DialectSpec{
			Name:            name,
			Matcher:         spec.Matcher,
			Escape:          spec.Escape,
			DefaultTemplate: spec.Default,
			Codes:           spec.Codes,
			Shortcuts:       spec.Shortcuts,
			FoldCase:        spec.FoldCase,
		})
		if err != nil {
			return fmt.Errorf("dialect %s: %w", name, err)
		}
		if err := dialects.Register(d); err != nil {
			return fmt.Errorf("dialect %s: %w", name, err)
		}
	}

	return nil
}
