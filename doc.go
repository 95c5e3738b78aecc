// Package patgen compiles a small regex-like pattern grammar into generator
// trees that emit randomized text: log lines, test fixtures, sample data.
//
// Patterns support literal text, [character classes] with a-z ranges,
// (grouped) alternatives separated by |, {min,max} repetition of the
// preceding item, $name references to other definitions, and \ to escape
// any character:
//
//	word = [a-z]{3,8}
//	line = GET /$word/$word took [0-9]{1,3}ms
//
// Definitions live in a Registry and may reference each other by name.
// References resolve at generation time, never at compile time: forward
// references are legal and produce empty output until the name is defined,
// and redefining a name is immediately visible to every tree that
// references it. The registry performs no cycle detection; a definition
// that ultimately references itself recurses until the stack is exhausted.
//
// Randomness is an injected capability. Evaluation draws integers from a
// Rand, which feeds every draw site in a compiled pattern from its own
// Source, so supplying a deterministic Source factory reproduces output
// exactly.
package patgen
