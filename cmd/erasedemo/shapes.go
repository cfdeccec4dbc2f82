package main

import (
	"fmt"
	"math"
)

type Shape interface {
	Area() float64
	Describe() string
}

type circle struct {
	R float64
}

func (c *circle) Area() float64    { return math.Pi * c.R * c.R }
func (c *circle) Describe() string { return fmt.Sprintf("circle r=%.1f", c.R) }

type square struct {
	Side float64
}

func (s *square) Area() float64    { return s.Side * s.Side }
func (s *square) Describe() string { return fmt.Sprintf("square side=%.1f", s.Side) }

type triangle struct {
	A, B, C float64
}

func (t *triangle) Area() float64 {
	p := (t.A + t.B + t.C) / 2
	return math.Sqrt(p * (p - t.A) * (p - t.B) * (p - t.C))
}

func (t *triangle) Describe() string {
	return fmt.Sprintf("triangle %.1f/%.1f/%.1f", t.A, t.B, t.C)
}

// dropped counts shapes torn down by the arena.
var dropped int

func (c *circle) Drop()   { dropped++ }
func (s *square) Drop()   { dropped++ }
func (t *triangle) Drop() { dropped++ }
