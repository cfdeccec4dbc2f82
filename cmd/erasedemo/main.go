package main

import (
	"errors"
	"log"

	"go.uber.org/zap"

	arena "github.com/pavanmanishd/erased"
	"github.com/pavanmanishd/erased/internal/config"
	"github.com/pavanmanishd/erased/storage"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	newLogger := zap.NewProduction
	if cfg.Debug {
		newLogger = zap.NewDevelopment
	}
	logger, err := newLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck
	sugar := logger.Sugar()

	m, inline := start(cfg, logger)
	sugar.Infow("done", "capacity_words", m.CapacityWords, "inline", inline)
}

// start runs the demo on inline storage when the configured capacity
// matches one of the inline sizes exactly, and on the heap otherwise. It
// returns the metrics taken after filling.
func start(cfg *config.Config, logger *zap.Logger) (arena.ArenaMetrics, bool) {
	sugar := logger.Sugar()
	opt := arena.WithLogger(logger)
	if !cfg.Heap {
		switch cfg.Capacity {
		case 64:
			return run(arena.New[Shape](storage.Inline[[64]uintptr]{}, opt), cfg, sugar), true
		case 256:
			return run(arena.New[Shape](storage.Inline[[256]uintptr]{}, opt), cfg, sugar), true
		case 1024:
			return run(arena.New[Shape](storage.Inline[[1024]uintptr]{}, opt), cfg, sugar), true
		}
	}
	return run(arena.New[Shape](storage.NewHeap(cfg.Capacity), opt), cfg, sugar), false
}

func run[S any, PS storage.Ptr[S]](a *arena.Arena[Shape, S, PS], cfg *config.Config, sugar *zap.SugaredLogger) arena.ArenaMetrics {
	defer a.Release()

	pushed, err := fill(a, cfg.Count)
	m := a.Metrics()
	if err != nil && !errors.Is(err, arena.ErrCapacityExceeded) {
		sugar.Errorw("push failed", "error", err)
		return m
	}
	sugar.Infow("arena filled",
		"pushed", pushed,
		"requested", cfg.Count,
		"written_words", m.WrittenWords,
		"capacity_words", m.CapacityWords,
		"utilization", m.Utilization)

	if cfg.MinArea > 0 {
		a.Retain(func(s Shape) bool { return s.Area() >= cfg.MinArea })
		sugar.Infow("small shapes removed", "min_area", cfg.MinArea, "left", a.Len(), "dropped", dropped)
	}

	var total float64
	for a.Pop(func(s Shape) {
		total += s.Area()
		sugar.Debugw("popped", "shape", s.Describe(), "area", s.Area())
	}) {
	}
	sugar.Infow("arena drained", "total_area", total, "dropped", dropped)
	return m
}

// fill pushes count shapes in a fixed rotation and stops at the first
// capacity error.
func fill[S any, PS storage.Ptr[S]](a *arena.Arena[Shape, S, PS], count int) (int, error) {
	for i := 0; i < count; i++ {
		var err error
		size := float64(i%5 + 1)
		switch i % 3 {
		case 0:
			err = arena.PushBack(a, circle{R: size}, func(c *circle) Shape { return c })
		case 1:
			err = arena.PushBack(a, square{Side: size}, func(s *square) Shape { return s })
		case 2:
			err = arena.PushBack(a, triangle{A: 3, B: 4, C: size + 2}, func(t *triangle) Shape { return t })
		}
		if err != nil {
			return i, err
		}
	}
	return count, nil
}
