package geom

import (
	"fmt"
	"math"
)

// Point is an integer grid coordinate or extent.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Vec returns the point as a continuous vector.
func (p Point) Vec() Vec2 { return Vec2{float64(p.X), float64(p.Y)} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Rect is an axis-aligned integer rectangle. It covers the cells
// [X, X+W) × [Y, Y+H).
type Rect struct {
	X, Y int
	W, H int
}

// R builds a rectangle from a position and a size.
func R(pos, size Point) Rect { return Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y} }

// Pos returns the rectangle origin.
func (r Rect) Pos() Point { return Point{r.X, r.Y} }

// Size returns the rectangle extent.
func (r Rect) Size() Point { return Point{r.W, r.H} }

// XMax is the exclusive right edge.
func (r Rect) XMax() int { return r.X + r.W }

// YMax is the exclusive top edge.
func (r Rect) YMax() int { return r.Y + r.H }

// Area returns W*H, or 0 for degenerate rectangles.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Center returns the geometric centre. Odd extents give half-integer
// coordinates.
func (r Rect) Center() Vec2 {
	return Vec2{float64(r.X) + float64(r.W)/2, float64(r.Y) + float64(r.H)/2}
}

// Contains reports whether the cell p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.XMax() && p.Y >= r.Y && p.Y < r.YMax()
}

// Intersect returns the overlap of r and s. Rectangles that do not overlap
// yield the zero Rect.
func (r Rect) Intersect(s Rect) Rect {
	x0, y0 := max(r.X, s.X), max(r.Y, s.Y)
	x1, y1 := min(r.XMax(), s.XMax()), min(r.YMax(), s.YMax())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.W, r.H)
}

// Vec2 is a point in continuous space.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Dist returns the Euclidean distance between v and w.
func (v Vec2) Dist(w Vec2) float64 { return math.Hypot(v.X-w.X, v.Y-w.Y) }

// Cell returns the grid cell containing v.
func (v Vec2) Cell() Point {
	return Point{int(math.Floor(v.X)), int(math.Floor(v.Y))}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}

// CompareVec2 orders vectors by Y, then X. It is the canonical ordering used
// for deterministic neighbour iteration.
func CompareVec2(a, b Vec2) int {
	switch {
	case a.Y < b.Y:
		return -1
	case a.Y > b.Y:
		return 1
	case a.X < b.X:
		return -1
	case a.X > b.X:
		return 1
	}
	return 0
}
