// Package pathfind finds shortest paths over traversal graphs.
//
// Graphs are keyed by [geom.Vec2]; edge cost and the A* heuristic are both
// Euclidean distance, so the heuristic is admissible and the first time the
// goal leaves the frontier its path is optimal.
package pathfind

import (
	"math"
	"slices"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/dungeonforge/pkg/core/geom"
	"github.com/matzehuels/dungeonforge/pkg/core/graph"
)

// Path is a sequence of nodes from start to goal. An empty path means the
// goal is unreachable.
type Path []geom.Vec2

// Cost returns the summed length of the path's segments.
func (p Path) Cost() float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		total += p[i-1].Dist(p[i])
	}
	return total
}

// Hops returns the number of edges on the path.
func (p Path) Hops() int { return max(len(p)-1, 0) }

// Nearest returns the node of g closest to p. Ties go to the node added
// first. ok is false when g has no nodes.
func Nearest(g *graph.Graph[geom.Vec2], p geom.Vec2) (node geom.Vec2, ok bool) {
	best := math.Inf(1)
	for _, n := range g.Nodes() {
		if d := n.Dist(p); d < best {
			best, node, ok = d, n, true
		}
	}
	return node, ok
}

type frontierItem struct {
	node geom.Vec2
	f    float64
	seq  int
}

// AStar returns a shortest path from start to goal in g. The frontier is a
// binary heap ordered by f = g + h with insertion order breaking ties;
// entries made stale by a later improvement are skipped.
func AStar(g *graph.Graph[geom.Vec2], start, goal geom.Vec2) Path {
	if !g.HasNode(start) || !g.HasNode(goal) {
		return Path{}
	}

	frontier := heap.New(func(a, b frontierItem) bool {
		if a.f != b.f {
			return a.f < b.f
		}
		return a.seq < b.seq
	})
	cost := map[geom.Vec2]float64{start: 0}
	parent := make(map[geom.Vec2]geom.Vec2)
	closed := mapset.New[geom.Vec2]()
	seq := 0

	frontier.Push(frontierItem{node: start, f: start.Dist(goal), seq: seq})
	for {
		item, ok := frontier.Pop()
		if !ok {
			return Path{}
		}
		cur := item.node
		if closed.Has(cur) {
			continue
		}
		if cur == goal {
			return reconstruct(parent, start, goal)
		}
		closed.Put(cur)

		for _, next := range g.Neighbors(cur) {
			if closed.Has(next) {
				continue
			}
			c := cost[cur] + cur.Dist(next)
			if old, seen := cost[next]; seen && c >= old {
				continue
			}
			cost[next] = c
			parent[next] = cur
			seq++
			frontier.Push(frontierItem{node: next, f: c + next.Dist(goal), seq: seq})
		}
	}
}

func reconstruct(parent map[geom.Vec2]geom.Vec2, start, goal geom.Vec2) Path {
	path := Path{goal}
	for n := goal; n != start; {
		n = parent[n]
		path = append(path, n)
	}
	slices.Reverse(path)
	return path
}

// FindPath snaps from and to onto their nearest nodes and returns the
// shortest path between them.
func FindPath(g *graph.Graph[geom.Vec2], from, to geom.Vec2) Path {
	start, ok := Nearest(g, from)
	if !ok {
		return Path{}
	}
	goal, _ := Nearest(g, to)
	return AStar(g, start, goal)
}
