package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/erased/erase"
	"github.com/pavanmanishd/erased/storage"
)

type Shape interface {
	Area() float64
}

var drops [8]int

type rect struct {
	ID   int
	W, H float64
}

func (r *rect) Area() float64 { return r.W * r.H }
func (r *rect) Scale(k float64) {
	r.W *= k
	r.H *= k
}
func (r *rect) Drop() { drops[r.ID]++ }

type disc struct {
	ID int
	R  float64
}

func (d disc) Area() float64 { return 3 * d.R * d.R }
func (d disc) Drop()         { drops[d.ID]++ }

type tag struct {
	Name string
}

func (tag) Area() float64 { return 0 }

func projRect(r *rect) Shape { return r }

func TestCellRoundTrip(t *testing.T) {
	t.Run("inline", func(t *testing.T) {
		c, err := New[Shape](rect{ID: 1, W: 2, H: 3}, projRect, storage.Inline[[4]uintptr]{})
		require.NoError(t, err)
		assert.Equal(t, 6.0, c.Get().Area())
		assert.Equal(t, 4, c.Capacity())
	})
	t.Run("heap", func(t *testing.T) {
		c, err := New[Shape](disc{ID: 2, R: 1}, func(d *disc) Shape { return *d }, storage.NewHeap(2))
		require.NoError(t, err)
		assert.Equal(t, 3.0, c.Get().Area())
		assert.Equal(t, 2, c.Capacity())
	})
}

func TestCellMutatesInPlace(t *testing.T) {
	c, err := New[Shape](rect{W: 1, H: 1}, projRect, storage.Inline[[4]uintptr]{})
	require.NoError(t, err)

	c.Get().(interface{ Scale(float64) }).Scale(3)
	assert.Equal(t, 9.0, c.Get().Area())
}

func TestCellCapacity(t *testing.T) {
	c, err := New[Shape](rect{ID: 3}, projRect, storage.Inline[[2]uintptr]{})
	assert.ErrorIs(t, err, storage.ErrCapacityExceeded)
	assert.Nil(t, c)

	_, err = New[Shape](rect{}, projRect, storage.Heap{})
	assert.ErrorIs(t, err, storage.ErrCapacityExceeded)
	assert.Zero(t, drops[3], "rejected values are never dropped")
}

func TestCellRejectsBadValues(t *testing.T) {
	_, err := New[Shape](tag{Name: "x"}, func(v *tag) Shape { return v }, storage.NewHeap(8))
	assert.ErrorIs(t, err, storage.ErrPointerful)

	_, err = New[Shape](rect{}, func(*rect) Shape { return disc{} }, storage.NewHeap(8))
	assert.ErrorIs(t, err, erase.ErrProjection)
}

func TestCellReleaseOnce(t *testing.T) {
	drops = [8]int{}
	c, err := New[Shape](rect{ID: 4, W: 1, H: 1}, projRect, storage.NewHeap(4))
	require.NoError(t, err)
	assert.Equal(t, storage.RoundToWords(3*uintptr(storage.WordSize)), c.SizeInUse())

	c.Release()
	c.Release()
	assert.Equal(t, 1, drops[4])
	assert.True(t, c.Released())
	assert.Zero(t, c.SizeInUse())
	assert.PanicsWithValue(t, "cell: use after Release()", func() { c.Get() })

	d, err := New[Shape](disc{ID: 5}, func(d *disc) Shape { return d }, storage.NewHeap(4))
	require.NoError(t, err)
	d.Release()
	assert.Equal(t, 1, drops[5])
}

func TestCellDropPanicIsNotRepeated(t *testing.T) {
	c, err := New[Shape](bomb{}, func(b *bomb) Shape { return b }, storage.Inline[[1]uintptr]{})
	require.NoError(t, err)
	bombDrops = 0

	assert.Panics(t, func() { c.Release() })
	assert.NotPanics(t, func() { c.Release() })
	assert.Equal(t, 1, bombDrops)
}

var bombDrops int

type bomb struct{}

func (*bomb) Area() float64 { return 0 }
func (*bomb) Drop() {
	bombDrops++
	panic("drop failed")
}
