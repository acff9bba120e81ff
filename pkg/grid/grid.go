package grid

import (
	"fmt"
	"iter"
	"slices"
)

// Source supplies uniformly distributed integers in [0, n). *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Grid is a finite, non-wrapping field of cells. It stores width rows (indexed
// by x) of height cells (indexed by y) in a single x-major slice.
//
// A Grid is owned by one caller and is not safe for concurrent use.
type Grid struct {
	w, h  int
	cells []Cell
}

// New allocates an all-Dead grid. Non-positive dimensions are clamped to 1.
func New(width, height int) *Grid {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &Grid{w: width, h: height, cells: make([]Cell, width*height)}
}

// Width returns the number of rows (the x extent).
func (g *Grid) Width() int { return g.w }

// Height returns the number of cells per row (the y extent).
func (g *Grid) Height() int { return g.h }

func (g *Grid) index(x, y int) int { return x*g.h + y }

// InBounds reports whether (x, y) lies inside [0,width)×[0,height).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

func (g *Grid) mustContain(x, y int) {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: index (%d,%d) out of range %dx%d", x, y, g.w, g.h))
	}
}

// At returns the cell at (x, y). It panics if the position is out of bounds.
func (g *Grid) At(x, y int) Cell {
	g.mustContain(x, y)
	return g.cells[g.index(x, y)]
}

// Set stores c at (x, y). It panics if the position is out of bounds.
func (g *Grid) Set(x, y int, c Cell) {
	g.mustContain(x, y)
	g.cells[g.index(x, y)] = c
}

// Randomize sets each cell in [1,width)×[1,height) Alive with probability
// density/100. Row 0 and column 0 keep their current state. Density is
// clamped to 0..100.
func (g *Grid) Randomize(src Source, density int) {
	density = max(0, min(100, density))
	for x := 1; x < g.w; x++ {
		for y := 1; y < g.h; y++ {
			c := Dead
			if src.IntN(100) < density {
				c = Alive
			}
			g.cells[g.index(x, y)] = c
		}
	}
}

// Invert returns a new grid with every cell swapped. g is not modified.
func (g *Grid) Invert() *Grid {
	out := &Grid{w: g.w, h: g.h, cells: make([]Cell, len(g.cells))}
	for i, c := range g.cells {
		out.cells[i] = c.Swap()
	}
	return out
}

// Neighbors counts the live cells in the Moore neighbourhood of (x, y).
// Positions outside the field are absent; there is no wraparound.
func (g *Grid) Neighbors(x, y int) int {
	n := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if g.InBounds(nx, ny) && g.cells[g.index(nx, ny)] == Alive {
				n++
			}
		}
	}
	return n
}

// Step advances the field by one generation under rs. Every cell reads only
// the pre-step field; the new generation replaces it once fully computed.
func (g *Grid) Step(rs RuleSet) {
	next := make([]Cell, len(g.cells))
	for x := 0; x < g.w; x++ {
		for y := 0; y < g.h; y++ {
			idx := g.index(x, y)
			next[idx] = g.cells[idx].Next(rs, g.Neighbors(x, y))
		}
	}
	g.cells = next
}

// Grow doubles both dimensions, replicating each cell into a 2×2 block.
func (g *Grid) Grow() {
	nw, nh := g.w*2, g.h*2
	next := make([]Cell, nw*nh)
	for x := 0; x < g.w; x++ {
		for y := 0; y < g.h; y++ {
			c := g.cells[g.index(x, y)]
			next[(2*x)*nh+2*y] = c
			next[(2*x)*nh+2*y+1] = c
			next[(2*x+1)*nh+2*y] = c
			next[(2*x+1)*nh+2*y+1] = c
		}
	}
	g.w, g.h, g.cells = nw, nh, next
}

// Rows yields (x, row) pairs in ascending x. Each ranging takes a snapshot of
// the field when it starts, so later mutations of g are not observed and the
// sequence can be ranged again for a fresh snapshot. Yielded rows are copies.
func (g *Grid) Rows() iter.Seq2[int, []Cell] {
	return func(yield func(int, []Cell) bool) {
		w, h := g.w, g.h
		snap := slices.Clone(g.cells)
		for x := 0; x < w; x++ {
			if !yield(x, snap[x*h:(x+1)*h:(x+1)*h]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	return &Grid{w: g.w, h: g.h, cells: slices.Clone(g.cells)}
}

// Equal reports whether both grids have the same dimensions and cells.
func (g *Grid) Equal(o *Grid) bool {
	if o == nil {
		return false
	}
	return g.w == o.w && g.h == o.h && slices.Equal(g.cells, o.cells)
}

// Population returns the number of Alive cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		if c == Alive {
			n++
		}
	}
	return n
}
