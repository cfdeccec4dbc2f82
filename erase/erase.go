// Package erase holds the pieces shared by the type-erased containers:
// capturing metadata through a projection, sizing an entry from its
// metadata and running an entry's destructor.
package erase

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/pavanmanishd/erased/fatref"
	"github.com/pavanmanishd/erased/storage"
)

// ErrProjection is returned when a projection yields nil or a value whose
// dynamic type is neither V nor *V.
var ErrProjection = errors.New("erase: projection must return the stored value or a pointer to it")

// Dropper is implemented by values that need a teardown step when a
// container releases them. Drop is called exactly once per stored value.
// Either a value or a pointer receiver works.
type Dropper interface {
	Drop()
}

// Capture runs project once on p and returns the resulting reference
// re-anchored at p. p must point into the storage that will keep the value.
func Capture[I any, V any](p *V, project func(*V) I) (fatref.FatRef, error) {
	ref := fatref.Decompose(project(p))
	if ref.IsNil() {
		return fatref.FatRef{}, fmt.Errorf("%w: got nil", ErrProjection)
	}
	vt := reflect.TypeFor[V]()
	if t := fatref.TypeOf[I](ref); t != vt && t != reflect.PointerTo(vt) {
		return fatref.FatRef{}, fmt.Errorf("%w: stored %s, projected %s", ErrProjection, vt, t)
	}
	return ref.Rebase(unsafe.Pointer(p)), nil
}

// ElemType returns the stored value type behind ref, looking through the
// pointer of a *V projection.
func ElemType[I any](ref fatref.FatRef) reflect.Type {
	t := fatref.TypeOf[I](ref)
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// Words returns how many storage words the value behind ref occupies.
func Words[I any](ref fatref.FatRef) int {
	return storage.RoundToWords(ElemType[I](ref).Size())
}

// Drop calls Drop on the value behind ref if its type has one.
func Drop[I any](ref fatref.FatRef) {
	p := reflect.NewAt(ElemType[I](ref), ref.Pointer()).Interface()
	if d, ok := p.(Dropper); ok {
		d.Drop()
	}
}
