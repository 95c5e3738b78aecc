package patgen

// Optimize rewrites a freshly compiled tree bottom-up: empty children are
// dropped from sequences (stable, order-preserving), adjacent literals are
// folded, and single-child sequences and alternations collapse into their
// child. Compile runs the pass once per pattern; running it again on an
// already-optimized tree is a no-op.
//
// The rewrite never changes what a tree generates: surviving draw sites
// keep their compile-time slots, so they see the same random streams with
// or without the pruned nodes.
func Optimize(n Node) Node {
	switch n := n.(type) {
	case *Repetition:
		n.Body = Optimize(n.Body)
		return n
	case *Sequence:
		kept := n.Nodes[:0]
		for _, child := range n.Nodes {
			child = Optimize(child)
			if !IsEmpty(child) {
				kept = append(kept, child)
			}
		}
		n.Nodes = foldLiterals(kept)
		if len(n.Nodes) == 1 {
			return n.Nodes[0]
		}
		return n
	case *Alternation:
		for i, child := range n.Nodes {
			n.Nodes[i] = Optimize(child)
		}
		if len(n.Nodes) == 1 {
			return n.Nodes[0]
		}
		return n
	default:
		return n
	}
}

// foldLiterals merges adjacent Literal siblings into one.
func foldLiterals(nodes []Node) []Node {
	out := nodes[:0]
	for _, n := range nodes {
		if lit, ok := n.(*Literal); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*Literal); ok {
				prev.Text += lit.Text
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
