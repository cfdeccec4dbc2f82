package arena

import (
	"sync"

	"github.com/pavanmanishd/erased/storage"
)

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// All operations are thread-safe but come with the overhead of mutex locking.
// Values are only reachable inside callbacks, which run under the lock.
type SafeArena[I any, S any, PS storage.Ptr[S]] struct {
	mu sync.Mutex
	a  *Arena[I, S, PS]
}

// NewSafe creates a new thread-safe arena backed by s.
func NewSafe[I any, S any, PS storage.Ptr[S]](s S, opts ...Option) *SafeArena[I, S, PS] {
	return &SafeArena[I, S, PS]{a: New[I, S, PS](s, opts...)}
}

// SafePushBack thread-safely appends value at the tail.
func SafePushBack[I any, V any, S any, PS storage.Ptr[S]](s *SafeArena[I, S, PS], value V, project func(*V) I) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PushBack(s.a, value, project)
}

// Pop thread-safely removes the front entry, passing it to fn first.
func (s *SafeArena[I, S, PS]) Pop(fn func(I)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Pop(fn)
}

// Front thread-safely passes the front entry to fn without removing it.
func (s *SafeArena[I, S, PS]) Front(fn func(I)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.a.Front()
	if ok {
		fn(v)
	}
	return ok
}

// Each thread-safely visits the live entries from front to back.
func (s *SafeArena[I, S, PS]) Each(fn func(I) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Each(fn)
}

// Retain thread-safely drops the entries keep rejects.
func (s *SafeArena[I, S, PS]) Retain(keep func(I) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Retain(keep)
}

// Len thread-safely returns the number of live entries.
func (s *SafeArena[I, S, PS]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Len()
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena[I, S, PS]) Metrics() ArenaMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}

// Reset thread-safely drops all entries and rewinds the arena.
func (s *SafeArena[I, S, PS]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Release thread-safely drops all entries and makes the arena unusable.
func (s *SafeArena[I, S, PS]) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}
