package dungeon

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"

	"github.com/matzehuels/dungeonforge/pkg/core/geom"
	"github.com/matzehuels/dungeonforge/pkg/core/graph"
)

// NewGraph returns an empty room/door graph whose neighbours iterate in
// [geom.CompareVec2] order.
func NewGraph() *graph.Graph[geom.Vec2] {
	return graph.New(geom.CompareVec2)
}

// BuildGraph returns the room/door graph of rooms: one node per room centre,
// one node per door, and an edge from every door to the centre of each room
// that owns it. Room centres are never linked to each other directly.
func BuildGraph(rooms []*Room) *graph.Graph[geom.Vec2] {
	g := NewGraph()
	buildGraph(rooms, g, &emitter{})
	return g
}

func buildGraph(rooms []*Room, g *graph.Graph[geom.Vec2], e *emitter) {
	for _, r := range rooms {
		c := r.Center()
		if g.AddNode(c) && !e.emit(Step{Op: OpNode, Bounds: r.Bounds(), Node: c}) {
			return
		}
		for _, d := range r.Doors() {
			if g.AddNode(d.Node()) && !e.emit(Step{Op: OpNode, Bounds: d.Bounds(), Node: d.Node()}) {
				return
			}
			g.AddEdge(d.Node(), c)
		}
	}
}

// doorIndex maps every door to the rooms whose door list contains it.
func doorIndex(rooms []*Room) map[Door][]*Room {
	idx := make(map[Door][]*Room)
	for _, r := range rooms {
		for _, d := range r.Doors() {
			idx[d] = append(idx[d], r)
		}
	}
	return idx
}

// RoomsSharing returns the rooms in rooms whose door list contains d.
func RoomsSharing(rooms []*Room, d Door) []*Room {
	var out []*Room
	for _, r := range rooms {
		if r.HasDoor(d) {
			out = append(out, r)
		}
	}
	return out
}

// Connected reports whether every room can be reached from rooms[0] by
// walking through shared doors. An empty room list is not connected.
func Connected(rooms []*Room) bool {
	if len(rooms) == 0 {
		return false
	}
	idx := doorIndex(rooms)

	visited := mapset.New[*Room]()
	st := stack.New[*Room]()
	st.Push(rooms[0])
	for st.Size() > 0 {
		r := st.Pop()
		if visited.Has(r) {
			continue
		}
		visited.Put(r)
		for _, d := range r.Doors() {
			for _, other := range idx[d] {
				if !visited.Has(other) {
					st.Push(other)
				}
			}
		}
	}
	return visited.Size() == len(rooms)
}
