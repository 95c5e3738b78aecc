package patgen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryDefineLookup(t *testing.T) {
	reg := NewRegistry()
	require.Equal(t, 0, reg.Len())

	require.NoError(t, reg.DefineString("digit", "[0-9]"))
	p, ok := reg.Lookup("digit")
	require.True(t, ok)
	require.Equal(t, "[0-9]", p.String())

	_, ok = reg.Lookup("missing")
	require.False(t, ok)
	require.ElementsMatch(t, []string{"digit"}, reg.Names())
}

func TestRegistryGenerateNotFound(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Generate("missing", newCountRand())
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "missing")
}

func TestVariableResolution(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.DefineString("digit", "[0-9]"))
	require.NoError(t, reg.DefineString("num", "$digit$digit"))

	// Both references share the one "digit" tree, so its class advances
	// across them.
	out, err := reg.Generate("num", newCountRand())
	require.NoError(t, err)
	require.Equal(t, "01", out)
}

func TestVariableForwardReference(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.DefineString("greeting", "hello $who"))

	// Not yet defined: resolves to empty output, never an error.
	out, err := reg.Generate("greeting", newCountRand())
	require.NoError(t, err)
	require.Equal(t, "hello ", out)

	require.NoError(t, reg.DefineString("who", "world"))
	out, err = reg.Generate("greeting", newCountRand())
	require.NoError(t, err)
	require.Equal(t, "hello world", out)
}

func TestVariableSeesRedefinition(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.DefineString("x", "a"))
	require.NoError(t, reg.DefineString("ref", "$x$x"))

	out, err := reg.Generate("ref", newCountRand())
	require.NoError(t, err)
	require.Equal(t, "aa", out)

	// Resolution happens at generation time, so existing references see
	// the new definition.
	require.NoError(t, reg.DefineString("x", "b"))
	out, err = reg.Generate("ref", newCountRand())
	require.NoError(t, err)
	require.Equal(t, "bb", out)
}

func TestRegistryLimits(t *testing.T) {
	reg := NewRegistry(WithMaxDepth(2), WithMaxRepeat(100))

	require.NoError(t, reg.DefineString("ok", "a{1,100}(b(c))"))

	err := reg.DefineString("deep", "(((a)))")
	require.Error(t, err)
	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)

	err = reg.DefineString("big", "a{1,101}")
	require.Error(t, err)
	require.ErrorAs(t, err, &cerr)
}

// TestConcurrentGenerate shares one registry across goroutines, each with
// its own Rand.
func TestConcurrentGenerate(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.DefineString("word", "[a-z]{3,8}"))
	require.NoError(t, reg.DefineString("line", "$word $word $word"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := NewPseudoRand(seed)
			for j := 0; j < 100; j++ {
				if _, err := reg.Generate("line", rnd); err != nil {
					t.Error(err)
					return
				}
			}
		}(int64(i))
	}
	wg.Wait()
}
