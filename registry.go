package patgen

import (
	"fmt"
	"sync"
)

// Registry maps names to compiled patterns so definitions can reference
// each other with $name. References resolve on every evaluation: redefining
// a name is immediately visible to trees that reference it, and referencing
// an undefined name yields empty output rather than an error.
//
// A Registry must outlive every pattern that references it. It makes no
// acyclicity guarantee: a definition chain that ultimately references
// itself recurses until the stack is exhausted.
//
// Lookups and Generate are safe for concurrent use. Compilation is not:
// define patterns from one goroutine, generate from as many as you like.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Pattern

	slots     int // registry-wide draw-site allocator
	maxDepth  int
	maxRepeat int
}

// RegistryOption configures a Registry before use.
type RegistryOption func(*Registry)

// WithMaxDepth rejects patterns whose group nesting exceeds n.
// Zero means unlimited.
func WithMaxDepth(n int) RegistryOption {
	return func(r *Registry) { r.maxDepth = n }
}

// WithMaxRepeat rejects repetitions whose upper bound exceeds n.
// Zero means unlimited.
func WithMaxRepeat(n int) RegistryOption {
	return func(r *Registry) { r.maxRepeat = n }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{entries: make(map[string]*Pattern)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Define stores p under name, replacing any previous definition.
func (r *Registry) Define(name string, p *Pattern) {
	r.mu.Lock()
	r.entries[name] = p
	r.mu.Unlock()
}

// DefineString compiles expr against the registry as it exists so far and
// stores the result under name.
func (r *Registry) DefineString(name, expr string) error {
	p, err := Compile(expr, r)
	if err != nil {
		return err
	}
	r.Define(name, p)
	return nil
}

// Lookup returns the pattern defined under name.
func (r *Registry) Lookup(name string) (*Pattern, bool) {
	r.mu.RLock()
	p, ok := r.entries[name]
	r.mu.RUnlock()
	return p, ok
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Names returns the defined names in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}

// Generate evaluates the pattern defined under name once, drawing
// randomness from rnd.
func (r *Registry) Generate(name string, rnd *Rand) (string, error) {
	p, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p.Generate(rnd), nil
}
