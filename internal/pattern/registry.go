package pattern

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateName is returned when adding an entry whose name is taken.
	ErrDuplicateName = errors.New("pattern name already registered")
	// ErrNotFound is returned when an operation names a missing entry.
	ErrNotFound = errors.New("pattern not found")
)

// Registry is the ordered list of patterns the parser walks. Earlier entries
// win.
//
// Registries are set up before use. Adding or removing entries while another
// goroutine parses through the same registry is a data race.
type Registry struct {
	entries []*Entry
	logger  *zap.Logger
}

// NewRegistry returns an empty registry. A nil logger discards logs.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{logger: logger}
}

// NewBuiltinRegistry returns a registry holding the built-in patterns in
// precedence order.
func NewBuiltinRegistry(logger *zap.Logger) *Registry {
	r := NewRegistry(logger)
	r.entries = append(r.entries, Builtins()...)
	return r
}

// Add inserts e right after the entry named after. An empty or unknown after
// puts e at the front.
func (r *Registry) Add(e *Entry, after string) error {
	if e == nil {
		return errors.New("nil pattern")
	}
	if r.index(e.Name) >= 0 {
		return errors.WithHint(errors.Wrapf(ErrDuplicateName, "%s", e.Name),
			"remove the existing pattern first")
	}

	pos := 0
	if after != "" {
		if i := r.index(after); i >= 0 {
			pos = i + 1
		}
	}
	r.entries = append(r.entries, nil)
	copy(r.entries[pos+1:], r.entries[pos:])
	r.entries[pos] = e

	r.logger.Debug("pattern added",
		zap.String("pattern", e.Name),
		zap.String("after", after),
		zap.Int("position", pos),
	)
	return nil
}

// Remove deletes the entry named name and returns it.
func (r *Registry) Remove(name string) (*Entry, bool) {
	i := r.index(name)
	if i < 0 {
		return nil, false
	}
	e := r.entries[i]
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	r.logger.Debug("pattern removed", zap.String("pattern", name))
	return e, true
}

// Move re-inserts the entry named name after the entry named after.
func (r *Registry) Move(name, after string) error {
	e, ok := r.Remove(name)
	if !ok {
		return errors.Wrapf(ErrNotFound, "%s", name)
	}
	return r.Add(e, after)
}

// Lookup returns the entry named name.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	if i := r.index(name); i >= 0 {
		return r.entries[i], true
	}
	return nil, false
}

// Names returns entry names in precedence order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the entry list in precedence order.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.entries) }

func (r *Registry) index(name string) int {
	for i, e := range r.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}
