// Package geom provides the small geometric value types shared by the
// dungeon packages.
//
// Integer types ([Point], [Rect]) describe the grid: room bounds, door cells
// and tile coordinates. The continuous [Vec2] is used for graph node keys
// (room centres are half-integer) and for path points.
//
// All types are plain values. They are comparable with == and safe to use as
// map keys.
package geom
