package storage

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

// zeroBase is handed out for zero-size values that sit at the very end of
// a storage, where no word exists to point at.
var zeroBase uintptr

// Addr returns the address of word off. An offset equal to the capacity
// yields a stand-in address that is only valid for zero-size values.
func Addr(s Storage, off int) unsafe.Pointer {
	words := s.Words()
	if off >= len(words) {
		return unsafe.Pointer(&zeroBase)
	}
	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(words)), off*WordSize)
}

// At returns a *V located at word off. The memory is not initialized.
func At[V any](s Storage, off int) *V {
	return (*V)(Addr(s, off))
}

// Store writes v at word off.
func Store[V any](s Storage, off int, v V) *V {
	p := At[V](s, off)
	*p = v
	return p
}

// Clear zeroes n words starting at off.
func Clear(s Storage, off, n int) {
	if n <= 0 {
		return
	}
	clear(s.Words()[off : off+n])
}

// Layout describes how a value type occupies storage.
type Layout struct {
	Type        reflect.Type
	Size        uintptr
	Align       uintptr
	Words       int  // RoundToWords(Size)
	PointerFree bool // no pointer the garbage collector would need to see
}

var layouts sync.Map // reflect.Type -> Layout

// LayoutOf returns the cached Layout of V.
func LayoutOf[V any]() Layout {
	t := reflect.TypeFor[V]()
	if l, ok := layouts.Load(t); ok {
		return l.(Layout)
	}
	l := Layout{
		Type:        t,
		Size:        t.Size(),
		Align:       uintptr(t.Align()),
		Words:       RoundToWords(t.Size()),
		PointerFree: pointerFree(t),
	}
	layouts.Store(t, l)
	return l
}

// Check returns V's layout, or an error if V cannot live in storage.
func Check[V any]() (Layout, error) {
	l := LayoutOf[V]()
	if !l.PointerFree {
		return l, fmt.Errorf("%w: %s", ErrPointerful, l.Type)
	}
	if l.Align > uintptr(WordSize) {
		return l, fmt.Errorf("%w: %s aligns to %d", ErrAlignment, l.Type, l.Align)
	}
	return l, nil
}

func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
