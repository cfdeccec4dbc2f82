// Package arena implements a fixed-capacity FIFO of type-erased values.
// Typical usage: pick a storage size, push values of any pointer-free type
// that implements the shared interface, then pop them in insertion order.
package arena

import (
	"errors"

	"go.uber.org/zap"

	"github.com/pavanmanishd/erased/erase"
	"github.com/pavanmanishd/erased/fatref"
	"github.com/pavanmanishd/erased/storage"
)

var (
	// ErrCapacityExceeded is returned by insertions that do not fit.
	ErrCapacityExceeded = storage.ErrCapacityExceeded
	// ErrConstructor is returned when building an element of a batch
	// insertion fails or panics.
	ErrConstructor = errors.New("arena: element constructor failed")
	// ErrProjection is returned when a projection does not return the
	// stored value or a pointer to it.
	ErrProjection = erase.ErrProjection
)

// Dropper is the optional teardown hook of a stored value.
type Dropper = erase.Dropper

// tombstoneBit marks a header word whose entry was removed by Retain.
// Real metadata words are pointers and never have it set; the rest of a
// tombstone header holds the entry's value word count.
const tombstoneBit = 1

// Arena is a linear FIFO of type-erased entries. Not goroutine-safe.
// Use SafeArena for concurrent access.
//
// Each entry is one metadata word followed by the value, rounded up to
// whole words. Words between read and write belong to live entries or
// tombstones; space is reclaimed only by Reset.
type Arena[I any, S any, PS storage.Ptr[S]] struct {
	read       int // word offset of the front entry
	write      int // word offset one past the last entry
	count      int // live entries
	tombstones int

	popping bool
	popSeq  uint64
	popRef  fatref.FatRef
	popNext int

	iterating int
	released  bool
	log       *zap.Logger

	storage S
}

// New creates an empty arena backed by s.
func New[I any, S any, PS storage.Ptr[S]](s S, opts ...Option) *Arena[I, S, PS] {
	o := buildOptions(opts)
	return &Arena[I, S, PS]{storage: s, log: o.logger}
}

// PushBack appends value at the tail.
//
// project is called once, on a pointer to the stored copy, and must return
// that pointer or the value itself as an I. If the entry does not fit the
// arena is left unchanged and the error wraps ErrCapacityExceeded.
func PushBack[I any, V any, S any, PS storage.Ptr[S]](a *Arena[I, S, PS], value V, project func(*V) I) error {
	a.checkMutable()
	l, err := storage.Check[V]()
	if err != nil {
		return err
	}
	if err := storage.Fits(a.st(), a.write, 1+l.Words); err != nil {
		a.log.Debug("push rejected",
			zap.Stringer("type", l.Type),
			zap.Int("need", 1+l.Words),
			zap.Int("remaining", a.RemainingWords()))
		return err
	}
	return writeEntry(a, value, project, l)
}

// PushBackClones appends n clones of *src.
//
// Room for all n entries is checked before anything is built. If clone
// returns an error or panics, the entries already appended stay in the
// arena and are dropped like any other entry later on; the failed element
// is never stored. The number of appended entries is returned.
func PushBackClones[I any, V any, S any, PS storage.Ptr[S]](
	a *Arena[I, S, PS], src *V, n int, project func(*V) I, clone func(*V) (V, error),
) (int, error) {
	a.checkMutable()
	if n <= 0 {
		return 0, nil
	}
	l, err := storage.Check[V]()
	if err != nil {
		return 0, err
	}
	if err := storage.FitsN(a.st(), a.write, n, 1+l.Words); err != nil {
		a.log.Debug("batch push rejected",
			zap.Stringer("type", l.Type),
			zap.Int("count", n),
			zap.Int("entry_words", 1+l.Words),
			zap.Int("remaining", a.RemainingWords()))
		return 0, err
	}
	for i := 0; i < n; i++ {
		v, err := cloneOne(src, clone)
		if err != nil {
			a.log.Debug("batch push stopped", zap.Int("element", i), zap.Int("count", n), zap.Error(err))
			return i, errors.Join(ErrConstructor, err)
		}
		if err := writeEntry(a, v, project, l); err != nil {
			return i, err
		}
	}
	return n, nil
}

func writeEntry[I any, V any, S any, PS storage.Ptr[S]](a *Arena[I, S, PS], value V, project func(*V) I, l storage.Layout) error {
	st := a.st()
	off := a.write
	if err := storage.Fits(st, off, 1+l.Words); err != nil {
		return err
	}
	p := storage.Store(st, off+1, value)
	ref, err := erase.Capture(p, project)
	if err != nil {
		storage.Clear(st, off+1, l.Words)
		return err
	}
	st.Words()[off] = ref.Meta
	a.write = off + 1 + l.Words
	a.count++
	return nil
}

func cloneOne[V any](src *V, clone func(*V) (V, error)) (v V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return clone(src)
}

// Front returns the front entry without removing it.
func (a *Arena[I, S, PS]) Front() (I, bool) {
	a.checkUsable()
	a.skipTombstones()
	if a.read == a.write {
		var zero I
		return zero, false
	}
	ref, _, _ := a.entryAt(a.read)
	return fatref.Recompose[I](ref), true
}

// PopFront starts removing the front entry. The entry stays readable
// through the handle until PopHandle.Release, which drops it. Until then
// every other arena operation except Release panics.
func (a *Arena[I, S, PS]) PopFront() (PopHandle[I, S, PS], bool) {
	a.checkMutable()
	a.skipTombstones()
	if a.read == a.write {
		return PopHandle[I, S, PS]{}, false
	}
	ref, words, _ := a.entryAt(a.read)
	a.popping = true
	a.popSeq++
	a.popRef = ref
	a.popNext = a.read + 1 + words
	return PopHandle[I, S, PS]{a: a, seq: a.popSeq}, true
}

// Pop removes the front entry, passing it to fn first. The entry is
// dropped even if fn panics. Pop reports false if the arena is empty.
func (a *Arena[I, S, PS]) Pop(fn func(I)) bool {
	h, ok := a.PopFront()
	if !ok {
		return false
	}
	defer h.Release()
	if fn != nil {
		fn(h.Value())
	}
	return true
}

func (a *Arena[I, S, PS]) finishPop() {
	ref := a.popRef
	a.popping = false
	a.popRef = fatref.FatRef{}
	a.read = a.popNext
	a.count--
	erase.Drop[I](ref)
}

// Retain drops every entry for which keep returns false. keep is called
// once per live entry, in order. Removed entries leave tombstones behind,
// so no capacity is given back.
func (a *Arena[I, S, PS]) Retain(keep func(I) bool) {
	a.checkMutable()
	a.iterating++
	defer func() { a.iterating-- }()

	words := a.st().Words()
	for off, end := a.read, a.write; off < end; {
		ref, n, live := a.entryAt(off)
		if live && !keep(fatref.Recompose[I](ref)) {
			words[off] = uintptr(n)<<1 | tombstoneBit
			a.count--
			a.tombstones++
			erase.Drop[I](ref)
		}
		off += 1 + n
	}
	a.skipTombstones()
}

// Len returns the number of live entries.
func (a *Arena[I, S, PS]) Len() int {
	return a.count
}

// IsEmpty reports whether there are no live entries.
func (a *Arena[I, S, PS]) IsEmpty() bool {
	return a.count == 0
}

// Reset drops every live entry and rewinds both cursors, making the whole
// capacity available again.
func (a *Arena[I, S, PS]) Reset() {
	a.checkMutable()
	dropped := a.count
	a.drain()
	a.read, a.write, a.tombstones = 0, 0, 0
	storage.Clear(a.st(), 0, a.CapacityWords())
	a.log.Debug("arena reset", zap.Int("dropped", dropped))
}

// Release drops every remaining entry and makes the arena unusable.
// Any subsequent operations will panic. An outstanding PopHandle is
// finalized here and its own Release becomes a no-op.
func (a *Arena[I, S, PS]) Release() {
	if a.released {
		return
	}
	if a.iterating > 0 {
		panic("arena: Release() during iteration")
	}
	if a.popping {
		a.finishPop()
	}
	dropped := a.count
	a.drain()
	a.read, a.write, a.tombstones = 0, 0, 0
	a.released = true
	var zero S
	a.storage = zero
	a.log.Debug("arena released", zap.Int("dropped", dropped))
}

// drain drops live entries front to back. The cursor moves past each
// entry before its Drop runs so a panicking Drop is never repeated.
func (a *Arena[I, S, PS]) drain() {
	for a.read < a.write {
		ref, n, live := a.entryAt(a.read)
		a.read += 1 + n
		if !live {
			a.tombstones--
			continue
		}
		a.count--
		erase.Drop[I](ref)
	}
}

// entryAt decodes the entry whose header is at off.
func (a *Arena[I, S, PS]) entryAt(off int) (ref fatref.FatRef, words int, live bool) {
	st := a.st()
	meta := st.Words()[off]
	if meta&tombstoneBit != 0 {
		return fatref.FatRef{}, int(meta >> 1), false
	}
	ref = fatref.FatRef{Addr: storage.Addr(st, off+1), Meta: meta}
	return ref, erase.Words[I](ref), true
}

func (a *Arena[I, S, PS]) skipTombstones() {
	for a.read < a.write {
		_, n, live := a.entryAt(a.read)
		if live {
			return
		}
		a.read += 1 + n
		a.tombstones--
	}
}

func (a *Arena[I, S, PS]) st() PS {
	return PS(&a.storage)
}

// checkUsable panics if the arena has been released or a pop is pending.
func (a *Arena[I, S, PS]) checkUsable() {
	if a.released {
		panic("arena: use after Release()")
	}
	if a.popping {
		panic("arena: pop in progress")
	}
}

// checkMutable additionally rejects structural changes during iteration.
func (a *Arena[I, S, PS]) checkMutable() {
	a.checkUsable()
	if a.iterating > 0 {
		panic("arena: mutation during iteration")
	}
}
