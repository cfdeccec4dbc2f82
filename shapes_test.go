package arena

import "github.com/pavanmanishd/erased/storage"

// Shape is the interface every test value is stored behind.
type Shape interface {
	Area() float64
	Key() int
}

// drops counts Drop calls per value key. Values stay pointer-free, so they
// record through this table rather than a pointer to a counter.
var drops [256]int

func resetDrops() {
	drops = [256]int{}
}

// oneWord is one word on every platform that has 8-byte words.
type oneWord struct {
	ID int
}

func (v *oneWord) Area() float64 { return 1 }
func (v *oneWord) Key() int      { return v.ID }
func (v *oneWord) Drop()         { drops[v.ID]++ }

type twoWords struct {
	ID int
	W  float64
}

func (v *twoWords) Area() float64 { return v.W }
func (v *twoWords) Key() int      { return v.ID }
func (v *twoWords) Drop()         { drops[v.ID]++ }

type threeWords struct {
	ID   int
	W, H float64
}

func (v *threeWords) Area() float64 { return v.W * v.H }
func (v *threeWords) Key() int      { return v.ID }
func (v *threeWords) Drop()         { drops[v.ID]++ }

// circle uses value receivers and is projected by value.
type circle struct {
	ID int
	R  float64
}

func (c circle) Area() float64 { return 3 * c.R * c.R }
func (c circle) Key() int      { return c.ID }
func (c circle) Drop()         { drops[c.ID]++ }

// marker has no size at all.
type marker struct{}

func (marker) Area() float64 { return 0 }
func (marker) Key() int      { return -1 }

type named struct {
	ID   int
	Name string
}

func (n *named) Area() float64 { return 0 }
func (n *named) Key() int      { return n.ID }

func projOne(v *oneWord) Shape      { return v }
func projTwo(v *twoWords) Shape     { return v }
func projThree(v *threeWords) Shape { return v }
func projCircle(c *circle) Shape    { return *c }

func keys[S any, PS storage.Ptr[S]](a *Arena[Shape, S, PS]) []int {
	var out []int
	for s := range a.All() {
		out = append(out, s.Key())
	}
	return out
}

func drain[S any, PS storage.Ptr[S]](a *Arena[Shape, S, PS]) []int {
	var out []int
	for a.Pop(func(s Shape) { out = append(out, s.Key()) }) {
	}
	return out
}
