// Package tilemap turns a room layout into a tile grid and the grid into a
// navigable graph.
//
// [Rasterize] draws the wall ring of every room and clears each door cell.
// [Grid.TileCase] classifies every 2x2 window of cells into one of sixteen
// marching-squares cases for tile selection.
//
// [Traversal] flood-fills the empty cells reachable from a seed and links
// every visited cell to its visited neighbours, including diagonals. Nodes
// sit at cell centres, (x+0.5, y+0.5). The visited layer is kept apart from
// the wall layer, so the grid is never modified by a fill.
package tilemap
