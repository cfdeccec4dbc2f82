// Package storage provides fixed-capacity, word-addressed backing memory
// for the containers in this module.
//
// Two forms share the Storage interface: Inline keeps its words in an
// array embedded in the owning struct, Heap keeps them in a slice sized
// once at construction. Neither ever grows. Nothing in this package checks
// bounds on typed access; callers prove their offsets with Fits first.
package storage

import (
	"errors"
	"fmt"
	"unsafe"
)

// WordSize is the size of a machine word in bytes.
const WordSize = int(unsafe.Sizeof(uintptr(0)))

var (
	// ErrCapacityExceeded is returned when a write would run past the
	// end of a storage.
	ErrCapacityExceeded = errors.New("storage: capacity exceeded")
	// ErrPointerful is returned for value types that contain pointers.
	// Storage words are not scanned by the garbage collector.
	ErrPointerful = errors.New("storage: value type contains pointers")
	// ErrAlignment is returned for value types that need more than word
	// alignment.
	ErrAlignment = errors.New("storage: value type alignment exceeds word size")
)

// Storage is a fixed run of machine words.
type Storage interface {
	// Words returns the whole capacity as words.
	Words() []uintptr
	// Bytes returns the whole capacity as bytes.
	Bytes() []byte
	// CapacityWords returns the number of words; it never changes.
	CapacityWords() int
}

// Ptr is satisfied by *S when S is a storage value. Containers embed an
// S and reach the Storage methods through PS(&s).
type Ptr[S any] interface {
	*S
	Storage
}

// Array lists the inline sizes Inline can be instantiated with.
type Array interface {
	~[1]uintptr | ~[2]uintptr | ~[3]uintptr | ~[4]uintptr |
		~[5]uintptr | ~[6]uintptr | ~[7]uintptr | ~[8]uintptr |
		~[9]uintptr | ~[10]uintptr | ~[12]uintptr | ~[16]uintptr |
		~[24]uintptr | ~[32]uintptr | ~[64]uintptr | ~[128]uintptr |
		~[256]uintptr | ~[512]uintptr | ~[1024]uintptr | ~[4096]uintptr
}

// Inline is storage held directly in the embedding value. The zero value
// is ready to use.
//
//	var s storage.Inline[[8]uintptr] // eight words
type Inline[A Array] struct {
	words A
}

// Words implements Storage.
func (s *Inline[A]) Words() []uintptr {
	return unsafe.Slice((*uintptr)(unsafe.Pointer(&s.words)), len(s.words))
}

// Bytes implements Storage.
func (s *Inline[A]) Bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&s.words)), len(s.words)*WordSize)
}

// CapacityWords implements Storage.
func (s *Inline[A]) CapacityWords() int {
	return len(s.words)
}

// Heap is storage backed by a slice allocated once by NewHeap.
// The zero value has no capacity.
type Heap struct {
	words []uintptr
}

// NewHeap returns a Heap of the given number of words.
// If words <= 0 the storage has no capacity.
func NewHeap(words int) Heap {
	if words <= 0 {
		return Heap{}
	}
	return Heap{words: make([]uintptr, words)}
}

// Words implements Storage.
func (h *Heap) Words() []uintptr {
	return h.words
}

// Bytes implements Storage.
func (h *Heap) Bytes() []byte {
	if len(h.words) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(h.words))), len(h.words)*WordSize)
}

// CapacityWords implements Storage.
func (h *Heap) CapacityWords() int {
	return len(h.words)
}

// RoundToWords returns the number of whole words needed for n bytes.
func RoundToWords(n uintptr) int {
	const mask = uintptr(WordSize) - 1
	return int((n + mask) / uintptr(WordSize))
}

// Fits reports whether words more words can be written at offset off.
// The returned error wraps ErrCapacityExceeded.
func Fits(s Storage, off, words int) error {
	capacity := s.CapacityWords()
	if off < 0 || words < 0 || off > capacity || words > capacity-off {
		return fmt.Errorf("%w: need %d words at offset %d, capacity %d",
			ErrCapacityExceeded, words, off, capacity)
	}
	return nil
}

// FitsN reports whether count runs of words each can be written at
// offset off. It never multiplies count by words, so huge counts cannot
// wrap around into a passing check.
func FitsN(s Storage, off, count, words int) error {
	capacity := s.CapacityWords()
	if off < 0 || off > capacity || count < 0 || words < 0 ||
		(words > 0 && count > (capacity-off)/words) {
		return fmt.Errorf("%w: need %d runs of %d words at offset %d, capacity %d",
			ErrCapacityExceeded, count, words, off, capacity)
	}
	return nil
}
