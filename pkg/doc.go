// Package pkg provides the core libraries for Dungeonforge procedural
// dungeon generation.
//
// # Overview
//
// Dungeonforge partitions a rectangular area into rooms, connects them with
// doors, prunes the layout to a connected tree, rasterizes it into a tile
// grid and finds walkable paths through the result. The pkg directory is
// organized into three main areas:
//
//  1. [core] - Domain logic (geometry, graphs, rooms and doors, tiles, paths)
//  2. [pipeline] - Orchestration (stages, pacing, options)
//  3. Support packages ([errors], [observability], [buildinfo])
//
// # Architecture
//
// The data flow through one run:
//
//	Options (size, minimum room size, seed)
//	         ↓
//	    [core/dungeon] package (rooms, doors, room/door graph, pruning)
//	         ↓
//	    [core/tilemap] package (tile grid + flood-fill traversal graph)
//	         ↓
//	    [core/pathfind] package (A* over the traversal graph)
//
// Every stage is an iterator of checkpoints. The [pipeline] runner drives
// them through a [pacing] policy so front ends can animate or step through
// generation without changing its result.
//
// # Quick Start
//
// Run every stage and find a path:
//
//	import (
//	    "context"
//	    "fmt"
//	    "github.com/matzehuels/dungeonforge/pkg/core/geom"
//	    "github.com/matzehuels/dungeonforge/pkg/pipeline"
//	)
//
//	func main() {
//	    r := pipeline.NewRunner(nil, nil)
//	    st, err := r.Execute(context.Background(), pipeline.Options{Seed: 7})
//	    if err != nil {
//	        panic(err)
//	    }
//	    path, _ := r.ComputePath(context.Background(), st, geom.V(2, 2), geom.V(70, 50))
//	    fmt.Println(path.Hops(), path.Cost())
//	}
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/core/dungeon/...       # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/dungeonforge/pkg/core
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/dungeonforge/pkg/pipeline
// [pacing]: https://pkg.go.dev/github.com/matzehuels/dungeonforge/pkg/pacing
// [errors]: https://pkg.go.dev/github.com/matzehuels/dungeonforge/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/dungeonforge/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/dungeonforge/pkg/buildinfo
//
// [core/dungeon]: https://pkg.go.dev/github.com/matzehuels/dungeonforge/pkg/core/dungeon
// [core/tilemap]: https://pkg.go.dev/github.com/matzehuels/dungeonforge/pkg/core/tilemap
// [core/pathfind]: https://pkg.go.dev/github.com/matzehuels/dungeonforge/pkg/core/pathfind
package pkg
