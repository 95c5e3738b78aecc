package patgen

import (
	"fmt"
	"strconv"
)

type parseState int

const (
	stateDefault parseState = iota
	stateCharClass
	stateVariableName
	stateRepetition
	stateEscape
)

// endOfInput is fed to the state machine after the last real character to
// force closure of the outermost scope, exactly as ')' would.
const endOfInput rune = -1

// scope accumulates one parenthesized group: the alternatives closed so
// far and the sequence of nodes for the alternative currently being built.
type scope struct {
	alts []Node
	seq  []Node
}

// compiler is the character-driven state machine that turns one pattern
// into a generator node tree. Nested groups are tracked with an explicit
// frame stack rather than recursion, so malformed nesting surfaces as a
// CompileError instead of tying correctness to call-stack depth.
type compiler struct {
	expr string
	reg  *Registry

	state  parseState
	saved  []parseState // saved states for re-entrant scopes
	scopes []*scope     // group frames; scopes[0] is the implicit top level
	root   Node

	buf       []rune // pending literal, class or variable-name text
	bounds    []int  // repetition bounds collected so far
	digits    []rune // digit run of the bound being read
	classDash bool   // '-' seen in a char class, range pending

	slots *int // draw-site allocator, registry-wide when compiling through one

	maxDepth  int
	maxRepeat int
}

func newCompiler(expr string, reg *Registry) *compiler {
	c := &compiler{
		expr:   expr,
		reg:    reg,
		scopes: []*scope{{}},
	}
	if reg != nil {
		c.slots = &reg.slots
		c.maxDepth = reg.maxDepth
		c.maxRepeat = reg.maxRepeat
	} else {
		c.slots = new(int)
	}
	return c
}

func (c *compiler) compile() (Node, error) {
	for pos, r := range c.expr {
		if err := c.process(r, pos); err != nil {
			return nil, err
		}
	}
	if err := c.process(endOfInput, len(c.expr)); err != nil {
		return nil, err
	}
	return c.root, nil
}

// process runs one character through the machine. Some transitions restore
// a saved state that must re-consume the triggering character, hence the
// re-apply loop.
func (c *compiler) process(r rune, pos int) error {
	for {
		reapply, err := c.step(r, pos)
		if err != nil || !reapply {
			return err
		}
	}
}

func (c *compiler) step(r rune, pos int) (bool, error) {
	switch c.state {
	case stateDefault:
		return false, c.stepDefault(r, pos)
	case stateCharClass:
		return c.stepCharClass(r)
	case stateVariableName:
		return c.stepVariableName(r)
	case stateRepetition:
		return false, c.stepRepetition(r, pos)
	case stateEscape:
		return false, c.stepEscape(r, pos)
	}
	return false, nil
}

func (c *compiler) stepDefault(r rune, pos int) error {
	switch r {
	case '\\':
		c.pushState(stateEscape)
	case '$':
		c.flushLiteral()
		c.pushState(stateVariableName)
	case '(':
		c.flushLiteral()
		if c.maxDepth > 0 && len(c.scopes) > c.maxDepth {
			return c.errorf(pos, "group nesting exceeds limit of %d", c.maxDepth)
		}
		c.pushState(stateDefault)
		c.scopes = append(c.scopes, &scope{})
	case ')':
		c.flushLiteral()
		if len(c.scopes) < 2 {
			return c.errorf(pos, "unmatched )")
		}
		c.closeScope()
		c.popState()
	case '{':
		c.flushLiteral()
		c.pushState(stateRepetition)
		c.bounds = c.bounds[:0]
		c.digits = c.digits[:0]
	case '[':
		c.flushLiteral()
		c.pushState(stateCharClass)
		c.classDash = false
	case '|':
		c.flushLiteral()
		cur := c.scopes[len(c.scopes)-1]
		cur.alts = append(cur.alts, &Sequence{Nodes: cur.seq})
		cur.seq = nil
	case endOfInput:
		c.flushLiteral()
		if len(c.scopes) != 1 {
			return c.errorf(pos, "unclosed group")
		}
		top := c.scopes[0]
		top.alts = append(top.alts, &Sequence{Nodes: top.seq})
		top.seq = nil
		c.root = &Alternation{Nodes: top.alts, Slot: c.nextSlot()}
	default:
		c.buf = append(c.buf, r)
	}
	return nil
}

// closeScope wraps the innermost group into an Alternation and appends it
// to the enclosing scope's sequence.
func (c *compiler) closeScope() {
	inner := c.scopes[len(c.scopes)-1]
	c.scopes = c.scopes[:len(c.scopes)-1]
	inner.alts = append(inner.alts, &Sequence{Nodes: inner.seq})
	outer := c.scopes[len(c.scopes)-1]
	outer.seq = append(outer.seq, &Alternation{Nodes: inner.alts, Slot: c.nextSlot()})
}

func (c *compiler) stepCharClass(r rune) (bool, error) {
	switch r {
	case '\\':
		c.pushState(stateEscape)
	case '-':
		c.classDash = true
	case ']':
		c.emitClass()
		c.popState()
	case endOfInput:
		// Malformed input lacking ']': close the class anyway, then let
		// the restored state see end of input and close the pattern.
		c.emitClass()
		c.popState()
		return true, nil
	default:
		if c.classDash {
			c.classDash = false
			if len(c.buf) == 0 {
				// Leading '-' has no range start; both are literal.
				c.buf = append(c.buf, '-', r)
				return false, nil
			}
			// Expand from the previous character (exclusive) through r.
			// An inverted range (from >= r) is silently skipped.
			for ch := c.buf[len(c.buf)-1] + 1; ch <= r; ch++ {
				c.buf = append(c.buf, ch)
			}
		} else {
			c.buf = append(c.buf, r)
		}
	}
	return false, nil
}

func (c *compiler) emitClass() {
	if len(c.buf) == 0 {
		return
	}
	cur := c.scopes[len(c.scopes)-1]
	cur.seq = append(cur.seq, &CharClass{
		Chars: append([]rune(nil), c.buf...),
		Slot:  c.nextSlot(),
	})
	c.buf = c.buf[:0]
}

func (c *compiler) stepVariableName(r rune) (bool, error) {
	if isNameChar(r) {
		c.buf = append(c.buf, r)
		return false, nil
	}
	if len(c.buf) > 0 {
		cur := c.scopes[len(c.scopes)-1]
		cur.seq = append(cur.seq, &Variable{Name: string(c.buf), reg: c.reg})
		c.buf = c.buf[:0]
	}
	c.popState()
	// The delimiter belongs to the restored state.
	return true, nil
}

func isNameChar(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_'
}

func (c *compiler) stepRepetition(r rune, pos int) error {
	switch {
	case r >= '0' && r <= '9':
		c.digits = append(c.digits, r)
	case r == ',' || r == '}':
		// An empty digit run parses as 0, supporting the {,n} shorthand.
		val := 0
		if len(c.digits) > 0 {
			v, err := strconv.Atoi(string(c.digits))
			if err != nil {
				return c.errorf(pos, "repetition bound out of range")
			}
			val = v
		}
		c.digits = c.digits[:0]
		c.bounds = append(c.bounds, val)
		if r == '}' {
			return c.finishRepetition(pos)
		}
	case r == endOfInput:
		return c.errorf(pos, "unterminated repetition")
	default:
		return c.errorf(pos, "unexpected character %q in repetition", r)
	}
	return nil
}

func (c *compiler) finishRepetition(pos int) error {
	if len(c.bounds) > 2 {
		return c.errorf(pos, "too many bounds in repetition")
	}
	if len(c.bounds) == 1 {
		// {n} means exactly n.
		c.bounds = append(c.bounds, c.bounds[0])
	}
	min, max := c.bounds[0], c.bounds[1]
	if min > max {
		return c.errorf(pos, "invalid repetition bounds: %d > %d", min, max)
	}
	if c.maxRepeat > 0 && max > c.maxRepeat {
		return c.errorf(pos, "repetition bound exceeds limit of %d", c.maxRepeat)
	}
	cur := c.scopes[len(c.scopes)-1]
	if len(cur.seq) == 0 {
		return c.errorf(pos, "repetition has nothing to repeat")
	}
	last := len(cur.seq) - 1
	cur.seq[last] = &Repetition{Min: min, Max: max, Body: cur.seq[last], Slot: c.nextSlot()}
	c.popState()
	return nil
}

func (c *compiler) stepEscape(r rune, pos int) error {
	if r == endOfInput {
		return c.errorf(pos, "trailing backslash")
	}
	c.buf = append(c.buf, r)
	c.popState()
	return nil
}

// Helpers

func (c *compiler) flushLiteral() {
	if len(c.buf) == 0 {
		return
	}
	cur := c.scopes[len(c.scopes)-1]
	cur.seq = append(cur.seq, &Literal{Text: string(c.buf)})
	c.buf = c.buf[:0]
}

func (c *compiler) pushState(s parseState) {
	c.saved = append(c.saved, c.state)
	c.state = s
}

func (c *compiler) popState() {
	c.state = c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
}

func (c *compiler) nextSlot() int {
	s := *c.slots
	*c.slots++
	return s
}

func (c *compiler) errorf(pos int, format string, args ...any) error {
	return &CompileError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
