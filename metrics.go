package arena

// CapacityWords returns the capacity of the backing storage in words.
func (a *Arena[I, S, PS]) CapacityWords() int {
	if a.released {
		return 0
	}
	return a.st().CapacityWords()
}

// UsedWords returns the number of words between the front entry and the
// tail, tombstones included.
func (a *Arena[I, S, PS]) UsedWords() int {
	return a.write - a.read
}

// WrittenWords returns the number of words consumed since the last Reset.
// Popped entries still count; the arena never reuses their space.
func (a *Arena[I, S, PS]) WrittenWords() int {
	return a.write
}

// RemainingWords returns the number of words still available at the tail.
func (a *Arena[I, S, PS]) RemainingWords() int {
	return a.CapacityWords() - a.write
}

// Utilization returns the ratio of written words to capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena[I, S, PS]) Utilization() float64 {
	capacity := a.CapacityWords()
	if capacity == 0 {
		return 0
	}
	return float64(a.write) / float64(capacity)
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena[I, S, PS]) Metrics() ArenaMetrics {
	return ArenaMetrics{
		Len:           a.Len(),
		UsedWords:     a.UsedWords(),
		WrittenWords:  a.WrittenWords(),
		CapacityWords: a.CapacityWords(),
		Tombstones:    a.tombstones,
		Utilization:   a.Utilization(),
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	Len           int     // Live entries
	UsedWords     int     // Words from the front entry to the tail
	WrittenWords  int     // Words consumed since the last Reset
	CapacityWords int     // Total capacity in words
	Tombstones    int     // Entries removed by Retain but not yet passed
	Utilization   float64 // Ratio of written words to capacity (0.0-1.0)
}
