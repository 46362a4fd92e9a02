package tilemap

import (
	"iter"

	"github.com/zyedidia/generic/stack"

	"github.com/matzehuels/dungeonforge/pkg/core/geom"
	"github.com/matzehuels/dungeonforge/pkg/core/graph"
)

var (
	orthogonal = []geom.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}
	surround   = []geom.Point{
		{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
		{X: -1, Y: 0}, {X: 1, Y: 0},
		{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
	}
)

// CellNode returns the graph node for the cell at p.
func CellNode(p geom.Point) geom.Vec2 {
	return geom.V(float64(p.X)+0.5, float64(p.Y)+0.5)
}

// Traversal flood-fills a grid into a graph of walkable cells.
type Traversal struct {
	Graph *graph.Graph[geom.Vec2]

	grid    *Grid
	visited []bool
}

// NewTraversal returns a traversal over g with an empty graph.
func NewTraversal(g *Grid) *Traversal {
	return &Traversal{
		Graph:   graph.New(geom.CompareVec2),
		grid:    g,
		visited: make([]bool, g.w*g.h),
	}
}

// Visited reports whether the last fill reached (x, y).
func (t *Traversal) Visited(x, y int) bool {
	return t.grid.InBounds(x, y) && t.visited[y*t.grid.w+x]
}

// Fill visits every Empty cell 4-connected to seed, depth first, and yields
// each cell as it becomes a node. Each new node is linked to every visited
// cell among its eight neighbours. A seed outside the grid or on a Wall
// yields nothing.
//
// Every run starts from an empty graph and visited layer.
func (t *Traversal) Fill(seed geom.Point) iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		t.Graph = graph.New(geom.CompareVec2)
		clear(t.visited)

		g := t.grid
		if !g.InBounds(seed.X, seed.Y) || g.At(seed.X, seed.Y) != Empty {
			return
		}

		st := stack.New[geom.Point]()
		st.Push(seed)
		for st.Size() > 0 {
			p := st.Pop()
			if !g.InBounds(p.X, p.Y) || g.At(p.X, p.Y) != Empty || t.Visited(p.X, p.Y) {
				continue
			}
			t.visited[p.Y*g.w+p.X] = true

			node := CellNode(p)
			t.Graph.AddNode(node)
			for _, off := range surround {
				q := p.Add(off)
				if t.Visited(q.X, q.Y) {
					t.Graph.AddEdge(node, CellNode(q))
				}
			}
			if !yield(p) {
				return
			}

			for _, off := range orthogonal {
				q := p.Add(off)
				if g.InBounds(q.X, q.Y) && !t.Visited(q.X, q.Y) {
					st.Push(q)
				}
			}
		}
	}
}

// FloodFill runs a complete fill of g from seed and returns the graph.
func FloodFill(g *Grid, seed geom.Point) *graph.Graph[geom.Vec2] {
	t := NewTraversal(g)
	for range t.Fill(seed) {
	}
	return t.Graph
}
