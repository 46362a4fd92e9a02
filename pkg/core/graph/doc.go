// Package graph provides a generic undirected graph used for both the
// room/door topology and the tile traversal network of a dungeon.
//
// # Overview
//
// A [Graph] maps each node key to the set of its neighbours. Edges are
// symmetric and stored once per direction; adding an edge twice is a no-op and
// removing a node removes every edge that references it.
//
// Two logically distinct graphs are built from this type during generation:
//
//   - the room/door graph, whose nodes are room centres and door positions,
//     with every door linked to the two rooms it joins;
//   - the traversal graph, whose nodes are floor-cell centres produced by
//     flood fill, linked to their eight surrounding cells.
//
// # Determinism
//
// Map iteration in Go is randomized, which would make breadth-first search,
// spanning trees and path tie-breaking vary between runs. [Graph.Nodes]
// therefore returns nodes in insertion order and [Graph.Neighbors] returns
// neighbours sorted by the comparison function passed to [New] (or by
// insertion order when it is nil). Every algorithm built on top of the graph
// inherits this ordering.
//
// # Debug Export
//
// [ToDOT] writes a Graphviz DOT description of the graph and [RenderSVG]
// renders DOT to SVG through go-graphviz. Both exist for inspection only.
//
// # Concurrency
//
// Graph is not safe for concurrent use without external synchronization.
package graph
