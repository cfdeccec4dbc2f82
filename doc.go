// Package arena implements a fixed-capacity FIFO of type-erased values.
//
// # Overview
//
// An Arena stores values of different concrete types one after another in
// a single block of words and hands them back through one shared
// interface. Nothing is allocated per entry: each entry is one metadata
// word (the interface's dispatch word) followed by the value's bytes,
// rounded up to whole words. This is useful for:
//
//   - Bounded queues of small heterogeneous commands or events
//   - Scratch pipelines where the capacity must be known up front
//   - Keeping many small values out of the garbage collector's way
//
// # Basic Usage
//
//	a := arena.New[Shape](storage.Inline[[64]uintptr]{})
//	defer a.Release() // Drops whatever is left
//
//	// The projection turns a pointer to the stored copy into the interface
//	err := arena.PushBack(a, Circle{R: 2}, func(c *Circle) Shape { return c })
//	if errors.Is(err, arena.ErrCapacityExceeded) {
//		// Nothing was written
//	}
//
//	// Drain in insertion order
//	for a.Pop(func(s Shape) { fmt.Println(s.Area()) }) {
//	}
//
// # Storage
//
// The backing words come from the storage package: storage.Inline keeps
// them inside the arena itself, storage.Heap in a slice sized once. The
// arena logic is identical for both.
//
// # Stored Values
//
// A value type must be pointer-free (numbers, bools, arrays and structs of
// those) and need no more than word alignment; the words are invisible to
// the garbage collector. A value whose type (or pointer type) has a Drop
// method gets it called exactly once: when popped, rejected by Retain, or
// drained by Reset or Release.
//
// # Capacity
//
// The arena is linear. Popping an entry does not give its words back;
// WrittenWords only grows until Reset rewinds the whole arena.
//
// # Thread Safety
//
// The basic Arena type is not thread-safe. For concurrent access, use SafeArena:
//
//	s := arena.NewSafe[Shape](storage.NewHeap(1024))
//	defer s.Release()
//	err := arena.SafePushBack(s, Square{Side: 3}, func(q *Square) Shape { return q })
package arena
