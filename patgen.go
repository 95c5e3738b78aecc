package patgen

import (
	"fmt"
	"strings"
)

// Pattern is a compiled pattern, ready to generate randomized text.
// A Pattern is immutable once compiled and may be shared between
// goroutines; give each goroutine its own *Rand.
type Pattern struct {
	expr string
	root Node
}

// Compile parses expr into a generator tree and optimizes it. reg supplies
// name resolution for $variable references and may be nil, in which case
// every reference resolves to empty output.
func Compile(expr string, reg *Registry) (*Pattern, error) {
	c := newCompiler(expr, reg)
	root, err := c.compile()
	if err != nil {
		return nil, err
	}
	return &Pattern{expr: expr, root: Optimize(root)}, nil
}

// MustCompile is like Compile but panics if the pattern is invalid.
func MustCompile(expr string, reg *Registry) *Pattern {
	p, err := Compile(expr, reg)
	if err != nil {
		panic(fmt.Sprintf("patgen: Compile(%q): %v", expr, err))
	}
	return p
}

// String returns the source text used to compile the pattern.
func (p *Pattern) String() string {
	return p.expr
}

// Root returns the root of the compiled generator tree.
func (p *Pattern) Root() Node {
	return p.root
}

// Generate evaluates the pattern once, drawing randomness from rnd.
func (p *Pattern) Generate(rnd *Rand) string {
	var sb strings.Builder
	p.AppendTo(&sb, rnd)
	return sb.String()
}

// AppendTo evaluates the pattern once, appending its output to sb.
func (p *Pattern) AppendTo(sb *strings.Builder, rnd *Rand) {
	appendTo(p.root, sb, rnd)
}
