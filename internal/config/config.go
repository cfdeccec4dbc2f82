package config

import (
	"errors"
	"flag"
	"os"
)

type Config struct {
	Capacity int     // storage size in words
	Heap     bool    // heap-backed storage instead of inline
	Count    int     // shapes to generate
	MinArea  float64 // Retain threshold, 0 - keep everything
	Debug    bool
}

var ErrCapacity = errors.New("config: capacity must be positive")

func NewConfig() (*Config, error) {
	return Parse(flag.CommandLine, os.Args[1:])
}

// Parse reads flags from args into a Config.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	c := fs.Int("capacity", 256, "arena capacity in words")
	h := fs.Bool("heap", false, "use heap-backed storage")
	n := fs.Int("count", 24, "number of shapes to push")
	m := fs.Float64("min-area", 0, "drop shapes smaller than this before draining")
	d := fs.Bool("debug", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *c <= 0 {
		return nil, ErrCapacity
	}

	return &Config{
		Capacity: *c,
		Heap:     *h,
		Count:    *n,
		MinArea:  *m,
		Debug:    *d,
	}, nil
}
