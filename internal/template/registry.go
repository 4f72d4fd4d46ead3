package template

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/aidanlsb/datekit/internal/dates"
)

var (
	// ErrUnknownDialect is returned when no dialect is registered under a name.
	ErrUnknownDialect = errors.New("unknown dialect")
	// ErrDuplicateDialect is returned when registering a name twice.
	ErrDuplicateDialect = errors.New("dialect already registered")
)

// Registry holds the dialects available to Format.
//
// Registration is meant for setup time. A Registry is not safe for mutation
// concurrent with formatting.
type Registry struct {
	dialects map[string]*Dialect
	order    []string
	logger   *zap.Logger
}

// NewRegistry returns an empty registry. A nil logger discards logs.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{dialects: make(map[string]*Dialect), logger: logger}
}

// NewBuiltinRegistry returns a registry holding strftime, php and sql.
func NewBuiltinRegistry(logger *zap.Logger) *Registry {
	r := NewRegistry(logger)
	for _, d := range []*Dialect{NewStrftime(), NewPHP(), NewSQL()} {
		// Built-in names are distinct.
		_ = r.Register(d)
	}
	return r
}

// Register adds d under d.Name.
func (r *Registry) Register(d *Dialect) error {
	if d == nil {
		return errors.New("nil dialect")
	}
	if _, exists := r.dialects[d.Name]; exists {
		return errors.Wrapf(ErrDuplicateDialect, "%s", d.Name)
	}
	r.dialects[d.Name] = d
	r.order = append(r.order, d.Name)
	r.logger.Debug("dialect registered", zap.String("dialect", d.Name), zap.Int("codes", len(d.Codes)))
	return nil
}

// Unregister removes the dialect registered under name.
func (r *Registry) Unregister(name string) bool {
	if _, ok := r.dialects[name]; !ok {
		return false
	}
	delete(r.dialects, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.logger.Debug("dialect unregistered", zap.String("dialect", name))
	return true
}

// Get returns the dialect registered under name.
func (r *Registry) Get(name string) (*Dialect, error) {
	d, ok := r.dialects[name]
	if !ok {
		return nil, errors.WithHint(errors.Wrapf(ErrUnknownDialect, "%q", name),
			"available: "+strings.Join(r.List(), ", "))
	}
	return d, nil
}

// List returns dialect names in registration order.
func (r *Registry) List() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// DetectDialect picks strftime for templates containing % and php otherwise.
// The empty template selects strftime.
func DetectDialect(tmpl string) string {
	if tmpl == "" || strings.Contains(tmpl, "%") {
		return StrftimeName
	}
	return PHPName
}

// Format renders date with the dialect chosen by DetectDialect.
func (r *Registry) Format(date dates.Date, tmpl string, names *dates.Names) (string, error) {
	return r.FormatWith(DetectDialect(tmpl), date, tmpl, names)
}

// FormatWith renders date with the named dialect.
func (r *Registry) FormatWith(name string, date dates.Date, tmpl string, names *dates.Names) (string, error) {
	d, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return Apply(d, tmpl, date, names), nil
}

// CodeRow is one entry of a dialect's code table.
type CodeRow struct {
	Token    string
	Accessor string
	Shortcut bool
}

// Table lists d's codes then its shortcuts, each sorted by token.
func (d *Dialect) Table() []CodeRow {
	rows := make([]CodeRow, 0, len(d.Codes)+len(d.Shortcuts))
	for token, code := range d.Codes {
		rows = append(rows, CodeRow{Token: token, Accessor: code.String()})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Token < rows[j].Token })
	shortcuts := make([]CodeRow, 0, len(d.Shortcuts))
	for token, expansion := range d.Shortcuts {
		shortcuts = append(shortcuts, CodeRow{Token: token, Accessor: expansion, Shortcut: true})
	}
	sort.Slice(shortcuts, func(i, j int) bool { return shortcuts[i].Token < shortcuts[j].Token })
	return append(rows, shortcuts...)
}
