package patgen

import mrand "math/rand"

// Source supplies non-negative integers on demand. No ordering is imposed
// beyond "a deterministic implementation yields deterministic output".
type Source interface {
	Next() int
}

// Rand is the randomness capability consumed during evaluation. Every
// draw site in a compiled pattern (char class, repetition, alternation)
// is assigned a distinct slot at compile time, and Rand feeds each slot
// from its own Source, created on first use by the injected factory.
// Draw sites therefore see independent streams, which is what makes
// output reproducible under a deterministic factory.
//
// A Rand is not safe for concurrent use; give each evaluating goroutine
// its own.
type Rand struct {
	newSource func() Source
	sources   []Source
}

// NewRand returns a Rand whose slots draw from Sources produced by
// newSource.
func NewRand(newSource func() Source) *Rand {
	return &Rand{newSource: newSource}
}

// NewPseudoRand returns a Rand where every slot draws from a single
// math/rand generator seeded with seed.
func NewPseudoRand(seed int64) *Rand {
	rng := mrand.New(mrand.NewSource(seed))
	return NewRand(func() Source { return pseudoSource{rng} })
}

type pseudoSource struct {
	rng *mrand.Rand
}

func (s pseudoSource) Next() int { return s.rng.Int() }

func (r *Rand) draw(slot int) int {
	for len(r.sources) <= slot {
		r.sources = append(r.sources, nil)
	}
	if r.sources[slot] == nil {
		r.sources[slot] = r.newSource()
	}
	return r.sources[slot].Next()
}
