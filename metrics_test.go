package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/erased/storage"
)

func TestArenaMetrics(t *testing.T) {
	require64(t)
	a := New[Shape](storage.NewHeap(20))

	m := a.Metrics()
	assert.Equal(t, ArenaMetrics{CapacityWords: 20}, m)

	require.NoError(t, PushBack(a, oneWord{ID: 1}, projOne))
	require.NoError(t, PushBack(a, threeWords{ID: 2}, projThree))
	a.Pop(nil)

	m = a.Metrics()
	assert.Equal(t, 1, m.Len)
	assert.Equal(t, 4, m.UsedWords)
	assert.Equal(t, 6, m.WrittenWords)
	assert.Equal(t, 20, m.CapacityWords)
	assert.InDelta(t, 0.3, m.Utilization, 1e-9)
	assert.Equal(t, 14, a.RemainingWords())
}

func TestArenaUtilizationEmptyStorage(t *testing.T) {
	a := New[Shape](storage.Heap{})
	assert.Zero(t, a.Utilization())
	assert.ErrorIs(t, PushBack(a, marker{}, func(m *marker) Shape { return m }), ErrCapacityExceeded)
}
