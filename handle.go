package arena

import (
	"github.com/pavanmanishd/erased/fatref"
	"github.com/pavanmanishd/erased/storage"
)

// PopHandle is an exclusive borrow of the front entry returned by
// PopFront. Release drops the entry and advances the arena exactly once;
// further calls, including on copies of the handle, do nothing.
type PopHandle[I any, S any, PS storage.Ptr[S]] struct {
	a   *Arena[I, S, PS]
	seq uint64
}

// Value returns the entry being popped.
// It panics once the handle has been released.
func (h *PopHandle[I, S, PS]) Value() I {
	if !h.active() {
		panic("arena: PopHandle used after Release()")
	}
	return fatref.Recompose[I](h.a.popRef)
}

// Release drops the entry and moves the arena past it.
func (h *PopHandle[I, S, PS]) Release() {
	if !h.active() {
		return
	}
	h.a.finishPop()
}

func (h *PopHandle[I, S, PS]) active() bool {
	return h.a != nil && h.a.popping && h.a.popSeq == h.seq
}
