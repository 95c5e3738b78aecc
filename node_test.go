package patgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		node Node
		want bool
	}{
		{&Literal{Text: ""}, true},
		{&Literal{Text: "x"}, false},
		{&CharClass{}, true},
		{&CharClass{Chars: []rune("ab")}, false},
		{&Variable{Name: "x"}, false}, // unknown until evaluation
		{&Repetition{Min: 0, Max: 0, Body: &Literal{Text: "x"}}, true},
		{&Repetition{Min: 0, Max: 1, Body: &Literal{Text: "x"}}, false},
		{&Sequence{}, true},
		{&Sequence{Nodes: []Node{&Literal{Text: "x"}}}, false},
		{&Alternation{}, true},
		{&Alternation{Nodes: []Node{&Literal{Text: "x"}}}, false},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, IsEmpty(tc.node), "%T %+v", tc.node, tc.node)
	}
}

// Structurally empty draw sites write nothing instead of dividing by zero.
func TestEmptyNodesAreInert(t *testing.T) {
	rnd := newCountRand()
	var sb strings.Builder

	appendTo(&CharClass{}, &sb, rnd)
	appendTo(&Alternation{}, &sb, rnd)
	appendTo(&Variable{Name: "orphan"}, &sb, rnd) // nil registry
	require.Equal(t, "", sb.String())
}

func TestCharClassWrapsSelection(t *testing.T) {
	cc := &CharClass{Chars: []rune("ab")}
	var sb strings.Builder
	rnd := newCountRand()
	for i := 0; i < 4; i++ {
		appendTo(cc, &sb, rnd)
	}
	require.Equal(t, "abab", sb.String())
}

func TestRepetitionCountRange(t *testing.T) {
	// min + (r mod (max-min+1)) for r = 0,1,2,... cycles 1,2,3,1.
	rep := &Repetition{Min: 1, Max: 3, Body: &Literal{Text: "x"}}
	rnd := newCountRand()
	want := []string{"x", "xx", "xxx", "x"}
	for i, w := range want {
		var sb strings.Builder
		appendTo(rep, &sb, rnd)
		require.Equal(t, w, sb.String(), "call %d", i)
	}
}

func TestNodeTypes(t *testing.T) {
	tests := []struct {
		node Node
		want NodeType
	}{
		{&Literal{}, NodeLiteral},
		{&CharClass{}, NodeCharClass},
		{&Variable{}, NodeVariable},
		{&Repetition{}, NodeRepetition},
		{&Sequence{}, NodeSequence},
		{&Alternation{}, NodeAlternation},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, tc.node.Type())
	}
}
