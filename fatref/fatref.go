// Package fatref converts interface values to and from their two-word
// representation: the address of the value and the dispatch word (itab or
// type descriptor) the runtime uses to find its methods.
//
// It is the only place in this module that looks inside an interface
// value. Everything else treats a FatRef as opaque and gets it back into
// an interface through Recompose.
package fatref

import (
	"fmt"
	"reflect"
	"unsafe"
)

const wordSize = unsafe.Sizeof(uintptr(0))

// An interface value must be exactly two words. If that ever stops being
// true one of these array lengths overflows and the package fails to build.
var (
	_ [unsafe.Sizeof(any(nil)) - 2*wordSize]struct{}
	_ [2*wordSize - unsafe.Sizeof(any(nil))]struct{}
	_ [unsafe.Sizeof(fmt.Stringer(nil)) - 2*wordSize]struct{}
	_ [2*wordSize - unsafe.Sizeof(fmt.Stringer(nil))]struct{}
)

// iface is the runtime layout shared by empty and non-empty interfaces.
type iface struct {
	tab  unsafe.Pointer
	data unsafe.Pointer
}

// FatRef is the decomposed form of an interface value.
//
// A FatRef never owns memory. Meta is only meaningful together with an
// Addr that holds a value of the exact concrete type Meta was captured
// from. Meta points at an itab or type descriptor, which the runtime
// keeps outside the collected heap and never moves, so it is safe to
// hold as a plain word; Addr is a real pointer and keeps its target alive.
type FatRef struct {
	Addr unsafe.Pointer // address of the value
	Meta uintptr        // itab (non-empty interface) or type descriptor (any)
}

// IsNil reports whether f came from a nil interface.
func (f FatRef) IsNil() bool {
	return f.Meta == 0
}

// Rebase returns f pointing at addr with the same metadata.
func (f FatRef) Rebase(addr unsafe.Pointer) FatRef {
	return FatRef{Addr: addr, Meta: f.Meta}
}

// Pointer returns Addr.
func (f FatRef) Pointer() unsafe.Pointer {
	return f.Addr
}

// String implements fmt.Stringer.
func (f FatRef) String() string {
	return fmt.Sprintf("fatref{addr=%p meta=%#x}", f.Addr, f.Meta)
}

// Decompose splits ref into its address and metadata words.
// I must be an interface type.
func Decompose[I any](ref I) FatRef {
	mustBeInterface[I]()
	p := (*iface)(unsafe.Pointer(&ref))
	return FatRef{Addr: p.data, Meta: uintptr(p.tab)}
}

// Recompose rebuilds an interface value from f.
//
// The caller guarantees that f.Meta was captured from a value of the same
// concrete type that lives at f.Addr, and that the memory at f.Addr stays
// reachable for as long as the returned value is used.
func Recompose[I any](f FatRef) I {
	mustBeInterface[I]()
	var ref I
	p := (*iface)(unsafe.Pointer(&ref))
	p.tab = unsafe.Pointer(f.Meta)
	p.data = f.Addr
	return ref
}

// TypeOf returns the dynamic type behind f, or nil for a nil reference.
func TypeOf[I any](f FatRef) reflect.Type {
	if f.IsNil() {
		return nil
	}
	return reflect.TypeOf(any(Recompose[I](f)))
}

func mustBeInterface[I any]() {
	if t := reflect.TypeFor[I](); t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("fatref: %s is not an interface type", t))
	}
}
