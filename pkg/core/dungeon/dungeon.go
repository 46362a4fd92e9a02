package dungeon

import (
	"iter"
	"math/rand/v2"

	"github.com/matzehuels/dungeonforge/pkg/core/geom"
	"github.com/matzehuels/dungeonforge/pkg/core/graph"
	"github.com/matzehuels/dungeonforge/pkg/errors"
)

// Dungeon holds the layout as it moves through the generation stages.
// Fields are updated in place while a stage runs.
type Dungeon struct {
	Bounds geom.Rect
	Seed   int64

	Rooms      []*Room
	Doors      []Door
	Graph      *graph.Graph[geom.Vec2] // nil until BuildGraph completes
	Discovered []geom.Vec2

	doorSource *rand.PCG // generator state after GenerateRooms, never advanced
	roomsReady bool
	doorsReady bool
}

// New returns an empty dungeon covering size cells from the origin.
func New(size geom.Point, seed int64) *Dungeon {
	return &Dungeon{Bounds: geom.R(geom.Point{}, size), Seed: seed}
}

// Assemble returns a dungeon from an existing layout, ready for BuildGraph.
// Every door must already be on the door lists of the rooms it joins.
func Assemble(bounds geom.Rect, rooms []*Room, doors []Door) *Dungeon {
	return &Dungeon{Bounds: bounds, Rooms: rooms, Doors: doors, roomsReady: true, doorsReady: true}
}

// NewRand returns the generator used for a run seeded with seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(newSource(seed))
}

func newSource(seed int64) *rand.PCG {
	return rand.NewPCG(uint64(seed), uint64(seed)^0xdeadbeef)
}

// GenerateRooms partitions the bounds into rooms no smaller than minSize.
// It reseeds the generator and discards every later stage's output.
func (d *Dungeon) GenerateRooms(minSize geom.Point) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		src := newSource(d.Seed)
		d.Rooms, d.Doors, d.Graph, d.Discovered = nil, nil, nil, nil
		d.roomsReady, d.doorsReady, d.doorSource = false, false, nil

		stopped := false
		partition(d.Bounds, minSize, rand.New(src), &d.Rooms, &emitter{yield: func(s Step) bool {
			stopped = !yield(s)
			return !stopped
		}})
		if !stopped {
			snapshot := *src
			d.roomsReady, d.doorSource = true, &snapshot
		}
	}
}

// GenerateDoors places doors between the rooms, continuing the generator
// state left by GenerateRooms. Every run starts from that same state, so
// rerunning the stage reproduces the same doors. Dungeons built with
// Assemble draw from a fresh generator for Seed.
func (d *Dungeon) GenerateDoors() (iter.Seq[Step], error) {
	if !d.roomsReady {
		return nil, errors.Precondition("generate-doors", "generate-rooms")
	}
	return func(yield func(Step) bool) {
		src := newSource(d.Seed)
		if d.doorSource != nil {
			*src = *d.doorSource
		}
		for _, r := range d.Rooms {
			r.doors = nil
		}
		d.Doors, d.Graph, d.Discovered = nil, nil, nil
		d.doorsReady = false

		stopped := false
		placeDoors(d.Rooms, rand.New(src), &d.Doors, &emitter{yield: func(s Step) bool {
			stopped = !yield(s)
			return !stopped
		}})
		d.doorsReady = !stopped
	}, nil
}

// BuildGraph builds the room/door graph from the current rooms and doors.
func (d *Dungeon) BuildGraph() (iter.Seq[Step], error) {
	if !d.roomsReady || !d.doorsReady {
		return nil, errors.Precondition("build-graph", "generate-doors")
	}
	return func(yield func(Step) bool) {
		d.Graph, d.Discovered = NewGraph(), nil
		buildGraph(d.Rooms, d.Graph, &emitter{yield: yield})
	}, nil
}

// SearchGraph records the nodes reachable from the first graph node in
// breadth-first order.
func (d *Dungeon) SearchGraph() (iter.Seq[Step], error) {
	if d.Graph == nil {
		return nil, errors.Precondition("search-graph", "build-graph")
	}
	return func(yield func(Step) bool) {
		d.Discovered = nil
		nodes := d.Graph.Nodes()
		if len(nodes) == 0 {
			return
		}
		e := &emitter{yield: yield}
		for _, n := range d.Graph.BFS(nodes[0]) {
			d.Discovered = append(d.Discovered, n)
			if !e.emit(Step{Op: OpDiscover, Node: n}) {
				return
			}
		}
	}, nil
}

// PurgeRooms drops up to a tenth of the rooms, smallest first, keeping only
// removals that leave the rest connected.
func (d *Dungeon) PurgeRooms() (iter.Seq[Step], error) {
	if d.Graph == nil {
		return nil, errors.Precondition("purge-rooms", "build-graph")
	}
	return func(yield func(Step) bool) {
		d.purgeRooms(&emitter{yield: yield})
	}, nil
}

// PurgeDoors removes every door that is not needed to keep the rooms
// connected. On a connected dungeon exactly len(Rooms)-1 doors remain.
func (d *Dungeon) PurgeDoors() (iter.Seq[Step], error) {
	if d.Graph == nil {
		return nil, errors.Precondition("purge-doors", "build-graph")
	}
	return func(yield func(Step) bool) {
		d.purgeDoors(&emitter{yield: yield})
	}, nil
}

// RoomBounds returns the bounds of every room, in room order.
func (d *Dungeon) RoomBounds() []geom.Rect {
	out := make([]geom.Rect, len(d.Rooms))
	for i, r := range d.Rooms {
		out[i] = r.Bounds()
	}
	return out
}

// DoorPositions returns the position of every door, in door order.
func (d *Dungeon) DoorPositions() []geom.Point {
	out := make([]geom.Point, len(d.Doors))
	for i, door := range d.Doors {
		out[i] = door.Position()
	}
	return out
}
