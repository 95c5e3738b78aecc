package patgen

import "strings"

// NodeType identifies the type of generator node.
type NodeType int

const (
	NodeLiteral NodeType = iota
	NodeCharClass
	NodeVariable
	NodeRepetition
	NodeSequence
	NodeAlternation
)

// Node is the base interface for generator nodes. The set of variants is
// closed: Literal, CharClass, Variable, Repetition, Sequence and
// Alternation. Evaluation, emptiness and optimization are exhaustive
// switches over these types.
type Node interface {
	Type() NodeType
}

// Literal emits a fixed string and consumes no randomness.
type Literal struct {
	Text string
}

func (n *Literal) Type() NodeType { return NodeLiteral }

// CharClass emits one character from Chars per evaluation, selected by a
// single draw. Chars is kept exactly as the compiler built it, duplicates
// included.
type CharClass struct {
	Chars []rune
	Slot  int
}

func (n *CharClass) Type() NodeType { return NodeCharClass }

// Variable emits whatever the registry entry of the same name emits.
// The name is a lookup key, resolved on every evaluation rather than at
// compile time; an undefined name emits nothing.
type Variable struct {
	Name string
	reg  *Registry
}

func (n *Variable) Type() NodeType { return NodeVariable }

// Repetition emits its body k times, with k drawn uniformly from
// [Min, Max] inclusive.
type Repetition struct {
	Min  int
	Max  int
	Body Node
	Slot int
}

func (n *Repetition) Type() NodeType { return NodeRepetition }

// Sequence emits its children in order.
type Sequence struct {
	Nodes []Node
}

func (n *Sequence) Type() NodeType { return NodeSequence }

// Alternation emits exactly one of its children, chosen by a single draw.
type Alternation struct {
	Nodes []Node
	Slot  int
}

func (n *Alternation) Type() NodeType { return NodeAlternation }

// appendTo evaluates n, writing its output to sb and drawing randomness
// from rnd. Evaluation never mutates the tree, so a tree may be shared
// between goroutines as long as each uses its own Rand.
func appendTo(n Node, sb *strings.Builder, rnd *Rand) {
	switch n := n.(type) {
	case *Literal:
		sb.WriteString(n.Text)
	case *CharClass:
		if len(n.Chars) == 0 {
			return
		}
		sb.WriteRune(n.Chars[rnd.draw(n.Slot)%len(n.Chars)])
	case *Variable:
		if n.reg == nil {
			return
		}
		if p, ok := n.reg.Lookup(n.Name); ok {
			appendTo(p.root, sb, rnd)
		}
	case *Repetition:
		count := n.Min
		if span := n.Max - n.Min + 1; span > 0 {
			count += rnd.draw(n.Slot) % span
		}
		for i := 0; i < count; i++ {
			appendTo(n.Body, sb, rnd)
		}
	case *Sequence:
		for _, child := range n.Nodes {
			appendTo(child, sb, rnd)
		}
	case *Alternation:
		if len(n.Nodes) == 0 {
			return
		}
		appendTo(n.Nodes[rnd.draw(n.Slot)%len(n.Nodes)], sb, rnd)
	}
}

// IsEmpty reports whether n can be dropped from a Sequence without
// changing its output. A Variable's emptiness depends on the registry at
// evaluation time, so variables always report non-empty.
func IsEmpty(n Node) bool {
	switch n := n.(type) {
	case *Literal:
		return n.Text == ""
	case *CharClass:
		return len(n.Chars) == 0
	case *Variable:
		return false
	case *Repetition:
		return n.Min == 0 && n.Max == 0
	case *Sequence:
		return len(n.Nodes) == 0
	case *Alternation:
		return len(n.Nodes) == 0
	}
	return false
}
