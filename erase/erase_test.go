package erase

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/erased/fatref"
	"github.com/pavanmanishd/erased/storage"
)

type point struct {
	X, Y int
}

func (p point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

var pointDrops int

func (p *point) Drop() { pointDrops++ }

type other struct{ N int }

func (o *other) String() string { return "other" }

var slot = storage.NewHeap(4)

func TestCapturePointerProjection(t *testing.T) {
	p := storage.Store(&slot, 0, point{X: 1, Y: 2})
	ref, err := Capture(p, func(v *point) fmt.Stringer { return v })
	require.NoError(t, err)
	assert.Equal(t, storage.Addr(&slot, 0), ref.Pointer())
	assert.Equal(t, reflect.TypeFor[*point](), fatref.TypeOf[fmt.Stringer](ref))
	assert.Equal(t, reflect.TypeFor[point](), ElemType[fmt.Stringer](ref))
	assert.Equal(t, "(1,2)", fatref.Recompose[fmt.Stringer](ref).String())
}

func TestCaptureValueProjection(t *testing.T) {
	p := storage.Store(&slot, 0, point{X: 3, Y: 4})
	ref, err := Capture(p, func(v *point) fmt.Stringer { return *v })
	require.NoError(t, err)

	// the projected copy is discarded; the reference reads the slot
	p.X = 30
	assert.Equal(t, "(30,4)", fatref.Recompose[fmt.Stringer](ref).String())
	assert.Equal(t, reflect.TypeFor[point](), ElemType[fmt.Stringer](ref))
}

func TestCaptureRejectsForeignValues(t *testing.T) {
	p := storage.Store(&slot, 0, point{})

	_, err := Capture(p, func(*point) fmt.Stringer { return nil })
	assert.ErrorIs(t, err, ErrProjection)

	_, err = Capture(p, func(*point) fmt.Stringer { return &other{} })
	assert.ErrorIs(t, err, ErrProjection)
	assert.Contains(t, err.Error(), "*erase.other")
}

func TestWords(t *testing.T) {
	p := storage.Store(&slot, 0, point{})
	ref, err := Capture(p, func(v *point) fmt.Stringer { return v })
	require.NoError(t, err)
	assert.Equal(t, storage.RoundToWords(2*uintptr(storage.WordSize)), Words[fmt.Stringer](ref))
}

func TestDrop(t *testing.T) {
	pointDrops = 0
	p := storage.Store(&slot, 0, point{})

	// pointer-receiver Drop runs even for a value projection
	ref, err := Capture(p, func(v *point) fmt.Stringer { return *v })
	require.NoError(t, err)
	Drop[fmt.Stringer](ref)
	assert.Equal(t, 1, pointDrops)

	o := storage.Store(&slot, 0, other{})
	ref, err = Capture(o, func(v *other) fmt.Stringer { return v })
	require.NoError(t, err)
	assert.NotPanics(t, func() { Drop[fmt.Stringer](ref) })
	assert.Equal(t, 1, pointDrops)
}
