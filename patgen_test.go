package patgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileNilRegistry(t *testing.T) {
	p, err := Compile("a$nobody z", nil)
	require.NoError(t, err)

	out := p.Generate(newCountRand())
	require.Equal(t, "a z", out)
}

func TestMustCompilePanics(t *testing.T) {
	require.Panics(t, func() { MustCompile("a{", nil) })
	require.NotPanics(t, func() { MustCompile("a{2}", nil) })
}

func TestPatternString(t *testing.T) {
	const expr = "abc(def|ghi)"
	require.Equal(t, expr, MustCompile(expr, nil).String())
}

func TestAppendTo(t *testing.T) {
	p := MustCompile("[ab]", nil)
	rnd := newCountRand()

	var sb strings.Builder
	sb.WriteString(">> ")
	p.AppendTo(&sb, rnd)
	p.AppendTo(&sb, rnd)
	require.Equal(t, ">> ab", sb.String())
}

// The same tree generates the same output whenever the injected sources
// repeat the same integer sequences.
func TestGenerateDeterministic(t *testing.T) {
	p := MustCompile("(foo|bar|baz)-[0-9]{2,4}", nil)

	a := p.Generate(newCountRand())
	b := p.Generate(newCountRand())
	require.Equal(t, a, b)
}
