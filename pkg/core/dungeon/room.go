package dungeon

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/dungeonforge/pkg/core/geom"
)

// Room is a rectangular region of the dungeon. Its geometry is fixed at
// creation; only the list of doors changes.
type Room struct {
	bounds geom.Rect
	doors  []Door
}

// NewRoom returns a room at pos with the given size and no doors.
func NewRoom(pos, size geom.Point) *Room {
	return &Room{bounds: geom.R(pos, size)}
}

func (r *Room) Position() geom.Point { return r.bounds.Pos() }
func (r *Room) Size() geom.Point     { return r.bounds.Size() }
func (r *Room) Bounds() geom.Rect    { return r.bounds }
func (r *Room) Area() int            { return r.bounds.Area() }

// Center is the room's node in the room/door graph.
func (r *Room) Center() geom.Vec2 { return r.bounds.Center() }

// Doors returns the room's doors in the order they were added. The slice is
// owned by the room.
func (r *Room) Doors() []Door { return r.doors }

// HasDoor reports whether d is on the room's door list.
func (r *Room) HasDoor(d Door) bool { return slices.Contains(r.doors, d) }

// AddDoor appends d to the door list.
func (r *Room) AddDoor(d Door) { r.doors = append(r.doors, d) }

// RemoveDoor removes d and returns its former index, or -1 if the room did
// not own it.
func (r *Room) RemoveDoor(d Door) int {
	i := slices.Index(r.doors, d)
	if i >= 0 {
		r.doors = slices.Delete(r.doors, i, i+1)
	}
	return i
}

func (r *Room) insertDoor(i int, d Door) {
	r.doors = slices.Insert(r.doors, min(i, len(r.doors)), d)
}

func (r *Room) String() string {
	return fmt.Sprintf("room%s doors=%d", r.bounds, len(r.doors))
}

// Door is a one-cell opening joining two rooms. Doors hold no reference to
// their rooms; see [Dungeon.RoomsSharing].
type Door struct {
	X, Y int
}

func (d Door) Position() geom.Point { return geom.Pt(d.X, d.Y) }
func (d Door) Bounds() geom.Rect    { return geom.Rect{X: d.X, Y: d.Y, W: 1, H: 1} }

// Node is the door's node in the room/door graph.
func (d Door) Node() geom.Vec2 { return geom.V(float64(d.X), float64(d.Y)) }

func (d Door) String() string { return fmt.Sprintf("door(%d,%d)", d.X, d.Y) }

// Axis selects the coordinate a room is cut along.
type Axis int

const (
	// AxisX cuts at an x coordinate, producing a left and a right room.
	AxisX Axis = iota
	// AxisY cuts at a y coordinate, producing a lower and an upper room.
	AxisY
)

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// splitRange returns the inclusive range of legal cut positions along a.
// A cut below pos+2 would leave the second child as large as the parent, so
// the lower bound never drops under that.
func (r *Room) splitRange(a Axis, minSize geom.Point) (lo, hi int) {
	pos, size, m := r.bounds.X, r.bounds.W, minSize.X
	if a == AxisY {
		pos, size, m = r.bounds.Y, r.bounds.H, minSize.Y
	}
	return max(pos+m, pos+2), pos + size - m
}

// split cuts the room along a, falling back to the other axis when a has no
// legal position. The children share the cell at the cut as wall.
func (r *Room) split(a Axis, minSize geom.Point, rng *rand.Rand) (first, second *Room, used Axis, ok bool) {
	lo, hi := r.splitRange(a, minSize)
	if lo > hi {
		a = a.Other()
		lo, hi = r.splitRange(a, minSize)
		if lo > hi {
			return nil, nil, a, false
		}
	}
	at := lo + rng.IntN(hi-lo+1)

	b := r.bounds
	if a == AxisX {
		first = NewRoom(b.Pos(), geom.Pt(at-b.X, b.H))
		second = NewRoom(geom.Pt(at-1, b.Y), geom.Pt(b.XMax()-at+1, b.H))
	} else {
		first = NewRoom(b.Pos(), geom.Pt(b.W, at-b.Y))
		second = NewRoom(geom.Pt(b.X, at-1), geom.Pt(b.W, b.YMax()-at+1))
	}
	return first, second, a, true
}
