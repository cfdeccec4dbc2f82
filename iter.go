package arena

import (
	"iter"

	"github.com/pavanmanishd/erased/fatref"
)

// Each calls fn for every live entry from front to back until fn returns
// false. Entries pushed by fn are not visited; fn must not pop, retain,
// reset or push.
func (a *Arena[I, S, PS]) Each(fn func(I) bool) {
	a.checkUsable()
	a.iterating++
	defer func() { a.iterating-- }()

	for off, end := a.read, a.write; off < end; {
		ref, n, live := a.entryAt(off)
		off += 1 + n
		if live && !fn(fatref.Recompose[I](ref)) {
			return
		}
	}
}

// All returns an iterator over the live entries from front to back.
// Entries projected as pointers can be mutated in place through it.
func (a *Arena[I, S, PS]) All() iter.Seq[I] {
	return a.Each
}

// Enumerate returns an iterator over live entries paired with their
// position from the front.
func (a *Arena[I, S, PS]) Enumerate() iter.Seq2[int, I] {
	return func(yield func(int, I) bool) {
		i := 0
		a.Each(func(v I) bool {
			ok := yield(i, v)
			i++
			return ok
		})
	}
}
