// Package cell implements a single-slot container that stores one value
// of a caller-chosen type inside fixed storage and hands it out behind an
// interface.
package cell

import (
	"github.com/pavanmanishd/erased/erase"
	"github.com/pavanmanishd/erased/fatref"
	"github.com/pavanmanishd/erased/storage"
)

// Dropper is the optional teardown hook of a stored value.
type Dropper = erase.Dropper

// Cell owns exactly one value. The value lives at word 0 of the cell's
// storage; only the interface metadata is kept beside it.
type Cell[I any, S any, PS storage.Ptr[S]] struct {
	storage  S
	meta     uintptr
	words    int
	released bool
}

// New moves value into a cell backed by s.
//
// project is called once, on a pointer to the stored copy, and must return
// either that pointer or the value itself as an I. Returning the pointer
// lets methods with pointer receivers mutate the stored value in place.
// Nothing is written if the value does not fit.
func New[I any, V any, S any, PS storage.Ptr[S]](value V, project func(*V) I, s S) (*Cell[I, S, PS], error) {
	l, err := storage.Check[V]()
	if err != nil {
		return nil, err
	}
	c := &Cell[I, S, PS]{storage: s, words: l.Words}
	st := PS(&c.storage)
	if err := storage.Fits(st, 0, l.Words); err != nil {
		return nil, err
	}
	p := storage.Store(st, 0, value)
	ref, err := erase.Capture(p, project)
	if err != nil {
		storage.Clear(st, 0, l.Words)
		return nil, err
	}
	c.meta = ref.Meta
	return c, nil
}

// Get returns the stored value as an I. It panics after Release.
func (c *Cell[I, S, PS]) Get() I {
	return fatref.Recompose[I](c.ref())
}

// Release drops the stored value. Calling it again does nothing.
func (c *Cell[I, S, PS]) Release() {
	if c.released {
		return
	}
	ref := c.ref()
	c.released = true
	defer storage.Clear(PS(&c.storage), 0, c.words)
	erase.Drop[I](ref)
}

// Released reports whether Release has run.
func (c *Cell[I, S, PS]) Released() bool {
	return c.released
}

// SizeInUse returns the number of words the stored value occupies.
func (c *Cell[I, S, PS]) SizeInUse() int {
	if c.released {
		return 0
	}
	return c.words
}

// Capacity returns the capacity of the backing storage in words.
func (c *Cell[I, S, PS]) Capacity() int {
	return PS(&c.storage).CapacityWords()
}

func (c *Cell[I, S, PS]) ref() fatref.FatRef {
	if c.released {
		panic("cell: use after Release()")
	}
	return fatref.FatRef{Addr: storage.Addr(PS(&c.storage), 0), Meta: c.meta}
}
