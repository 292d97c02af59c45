package emit

import (
	"fmt"
	"io"
	"sort"
)

// Constructor builds a fresh Emitter writing to w. Registered under a
// format name so callers can select one by string (the CLI's --format
// flag), mirroring original_source's ExporterFactory::createExporter and
// the teacher's printer.Format switch.
type Constructor func(w io.Writer) Emitter

// Registry holds named Emitter constructors. The zero value is not usable;
// construct one with NewRegistry.
type Registry struct {
	byName map[string]Constructor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Constructor)}
}

// DefaultRegistry returns a Registry pre-populated with "text" and "json",
// this package's two built-in emitters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("text", func(w io.Writer) Emitter { return NewTextEmitter(w, DefaultTextOptions()) })
	r.Register("json", func(w io.Writer) Emitter { return NewJSONEmitter(w) })
	return r
}

// Register adds or replaces the constructor for name.
func (r *Registry) Register(name string, ctor Constructor) {
	r.byName[name] = ctor
}

// New builds an Emitter for the named format. Returns an error if name was
// never registered, analogous to ExporterFactory returning nullptr for an
// unrecognized format.
func (r *Registry) New(name string, w io.Writer) (Emitter, error) {
	ctor, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("emit: no emitter registered for format %q (known: %v)", name, r.Names())
	}
	return ctor(w), nil
}

// Names returns the registered format names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
