package graph

import (
	"slices"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// Graph is an undirected graph keyed by K.
//
// The zero value is not usable - use New.
type Graph[K comparable] struct {
	adj   map[K]mapset.Set[K]
	seq   map[K]uint64 // insertion sequence, stable across removals
	order []K
	next  uint64
	edges int
	cmp   func(a, b K) int
}

// New creates an empty graph. cmp orders neighbour lists; when nil,
// neighbours are returned in node insertion order.
func New[K comparable](cmp func(a, b K) int) *Graph[K] {
	return &Graph[K]{
		adj: make(map[K]mapset.Set[K]),
		seq: make(map[K]uint64),
		cmp: cmp,
	}
}

// AddNode adds n to the graph. It reports whether the node was new.
func (g *Graph[K]) AddNode(n K) bool {
	if _, ok := g.adj[n]; ok {
		return false
	}
	g.adj[n] = mapset.New[K]()
	g.seq[n] = g.next
	g.next++
	g.order = append(g.order, n)
	return true
}

// RemoveNode deletes n and every edge incident to it. Removing an unknown
// node is a no-op.
func (g *Graph[K]) RemoveNode(n K) {
	nbrs, ok := g.adj[n]
	if !ok {
		return
	}
	nbrs.Each(func(m K) {
		g.adj[m].Remove(n)
		g.edges--
	})
	delete(g.adj, n)
	delete(g.seq, n)
	if i := slices.Index(g.order, n); i >= 0 {
		g.order = slices.Delete(g.order, i, i+1)
	}
}

// AddEdge links a and b in both directions, adding missing endpoints.
// Duplicate edges and self-loops are ignored.
func (g *Graph[K]) AddEdge(a, b K) {
	if a == b {
		g.AddNode(a)
		return
	}
	g.AddNode(a)
	g.AddNode(b)
	if g.adj[a].Has(b) {
		return
	}
	g.adj[a].Put(b)
	g.adj[b].Put(a)
	g.edges++
}

// RemoveEdge unlinks a and b. Missing edges are ignored.
func (g *Graph[K]) RemoveEdge(a, b K) {
	if !g.HasEdge(a, b) {
		return
	}
	g.adj[a].Remove(b)
	g.adj[b].Remove(a)
	g.edges--
}

// HasNode reports whether n is in the graph.
func (g *Graph[K]) HasNode(n K) bool {
	_, ok := g.adj[n]
	return ok
}

// HasEdge reports whether a and b are adjacent.
func (g *Graph[K]) HasEdge(a, b K) bool {
	nbrs, ok := g.adj[a]
	return ok && nbrs.Has(b)
}

// Neighbors returns the nodes adjacent to n in canonical order.
// Unknown nodes have no neighbours.
func (g *Graph[K]) Neighbors(n K) []K {
	nbrs, ok := g.adj[n]
	if !ok {
		return nil
	}
	out := make([]K, 0, nbrs.Size())
	nbrs.Each(func(m K) { out = append(out, m) })
	slices.SortFunc(out, g.compare)
	return out
}

// Degree returns the number of neighbours of n.
func (g *Graph[K]) Degree(n K) int {
	nbrs, ok := g.adj[n]
	if !ok {
		return 0
	}
	return nbrs.Size()
}

// Nodes returns all nodes in insertion order. The slice is a copy.
func (g *Graph[K]) Nodes() []K { return slices.Clone(g.order) }

// NodeCount returns the number of nodes.
func (g *Graph[K]) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of undirected edges.
func (g *Graph[K]) EdgeCount() int { return g.edges }

// Edges returns every undirected edge once, ordered by the insertion order
// of the first endpoint.
func (g *Graph[K]) Edges() [][2]K {
	out := make([][2]K, 0, g.edges)
	done := mapset.New[K]()
	for _, a := range g.order {
		for _, b := range g.Neighbors(a) {
			if !done.Has(b) {
				out = append(out, [2]K{a, b})
			}
		}
		done.Put(a)
	}
	return out
}

// BFS returns every node reachable from start in discovery order, start
// first. An unknown start yields nil.
func (g *Graph[K]) BFS(start K) []K {
	if !g.HasNode(start) {
		return nil
	}
	visited := mapset.New[K]()
	visited.Put(start)
	q := queue.New[K]()
	q.Enqueue(start)

	var out []K
	for !q.Empty() {
		n := q.Dequeue()
		out = append(out, n)
		for _, m := range g.Neighbors(n) {
			if !visited.Has(m) {
				visited.Put(m)
				q.Enqueue(m)
			}
		}
	}
	return out
}

// Connected reports whether every node is reachable from the first one.
// The empty graph is considered connected.
func (g *Graph[K]) Connected() bool {
	if len(g.order) == 0 {
		return true
	}
	return len(g.BFS(g.order[0])) == len(g.order)
}

// Clone returns a deep copy of g.
func (g *Graph[K]) Clone() *Graph[K] {
	c := New(g.cmp)
	for _, n := range g.order {
		c.AddNode(n)
	}
	for _, e := range g.Edges() {
		c.AddEdge(e[0], e[1])
	}
	return c
}

func (g *Graph[K]) compare(a, b K) int {
	if g.cmp != nil {
		return g.cmp(a, b)
	}
	sa, sb := g.seq[a], g.seq[b]
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}
