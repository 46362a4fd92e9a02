package tilemap

import (
	"strings"

	"github.com/matzehuels/dungeonforge/pkg/core/geom"
)

// Cell is the content of one grid cell.
type Cell uint8

const (
	Empty Cell = iota
	Wall
)

func (c Cell) String() string {
	if c == Wall {
		return "#"
	}
	return "0"
}

// Grid is a W×H array of cells indexed by (x, y) with y growing upwards.
type Grid struct {
	w, h  int
	cells []Cell
}

// NewGrid returns an all-empty grid. Negative sizes are treated as zero.
func NewGrid(size geom.Point) *Grid {
	w, h := max(size.X, 0), max(size.Y, 0)
	return &Grid{w: w, h: h, cells: make([]Cell, w*h)}
}

func (g *Grid) Width() int             { return g.w }
func (g *Grid) Height() int            { return g.h }
func (g *Grid) Size() geom.Point       { return geom.Pt(g.w, g.h) }
func (g *Grid) InBounds(x, y int) bool { return x >= 0 && x < g.w && y >= 0 && y < g.h }

// At returns the cell at (x, y). Cells outside the grid are Empty.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.cells[y*g.w+x]
}

// Set writes c at (x, y). Writes outside the grid are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if g.InBounds(x, y) {
		g.cells[y*g.w+x] = c
	}
}

// Count returns the number of cells holding c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Rasterize returns a grid of the given size where the border ring of each
// room is Wall and every door cell is Empty again.
func Rasterize(size geom.Point, rooms []geom.Rect, doors []geom.Point) *Grid {
	g := NewGrid(size)
	for _, r := range rooms {
		if r.Empty() {
			continue
		}
		for x := r.X; x < r.XMax(); x++ {
			g.Set(x, r.Y, Wall)
			g.Set(x, r.YMax()-1, Wall)
		}
		for y := r.Y; y < r.YMax(); y++ {
			g.Set(r.X, y, Wall)
			g.Set(r.XMax()-1, y, Wall)
		}
	}
	for _, d := range doors {
		g.Set(d.X, d.Y, Empty)
	}
	return g
}

// TileCase returns the marching-squares index of the 2x2 window whose
// lower-left cell is (x, y): bottomRight + 2·topRight + 4·topLeft +
// 8·bottomLeft, counting Wall as 1.
func (g *Grid) TileCase(x, y int) int {
	bit := func(x, y int) int {
		if g.At(x, y) == Wall {
			return 1
		}
		return 0
	}
	return bit(x+1, y) + 2*bit(x+1, y+1) + 4*bit(x, y+1) + 8*bit(x, y)
}

// TileCases returns TileCase for every window fully inside the grid,
// indexed [y][x].
func (g *Grid) TileCases() [][]int {
	if g.w < 2 || g.h < 2 {
		return nil
	}
	out := make([][]int, g.h-1)
	for y := range out {
		out[y] = make([]int, g.w-1)
		for x := range out[y] {
			out[y][x] = g.TileCase(x, y)
		}
	}
	return out
}

// Dump renders the grid one row per line, '0' for Empty and '#' for Wall.
// Rows run from y=0 down; flip reverses them so y grows upwards on screen.
func (g *Grid) Dump(flip bool) string {
	var b strings.Builder
	b.Grow((g.w + 1) * g.h)
	for i := range g.h {
		y := i
		if flip {
			y = g.h - 1 - i
		}
		for x := range g.w {
			b.WriteString(g.At(x, y).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
