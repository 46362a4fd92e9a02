package dungeon

import (
	"math/rand/v2"

	"github.com/matzehuels/dungeonforge/pkg/core/geom"
)

const (
	// DoorSpace is the longest shared wall that gets no door.
	DoorSpace = 4
	// DoorMargin keeps doors this many cells away from both ends of the
	// shared wall. On a wall from Min to Max (exclusive) the door lies in
	// [Min+DoorMargin, Max-1-DoorMargin], inclusive at both ends, so the
	// corner cell and its neighbour are excluded on either side.
	DoorMargin = 2
)

// PlaceDoors adds a door between every pair of rooms whose bounds overlap
// along a wall segment longer than [DoorSpace]. Pairs are visited in room
// order. Each door is appended to both rooms and to the returned list.
func PlaceDoors(rooms []*Room, rng *rand.Rand, yield func(Step) bool) []Door {
	var doors []Door
	placeDoors(rooms, rng, &doors, &emitter{yield: yield})
	return doors
}

func placeDoors(rooms []*Room, rng *rand.Rand, doors *[]Door, e *emitter) {
	for i := range rooms {
		for j := i + 1; j < len(rooms); j++ {
			d, ok := doorBetween(rooms[i].Bounds(), rooms[j].Bounds(), rng)
			if !ok {
				continue
			}
			rooms[i].AddDoor(d)
			rooms[j].AddDoor(d)
			*doors = append(*doors, d)
			if !e.emit(Step{Op: OpDoor, Bounds: d.Bounds()}) {
				return
			}
		}
	}
}

// doorBetween picks a door position on the overlap of a and b. The door
// runs along the longer side of the overlap.
func doorBetween(a, b geom.Rect, rng *rand.Rand) (Door, bool) {
	in := a.Intersect(b)
	if in.W <= DoorSpace && in.H <= DoorSpace {
		return Door{}, false
	}
	if in.W > in.H {
		return Door{X: between(in.X+DoorMargin, in.XMax()-1-DoorMargin, rng), Y: in.Y}, true
	}
	return Door{X: in.X, Y: between(in.Y+DoorMargin, in.YMax()-1-DoorMargin, rng)}, true
}

func between(lo, hi int, rng *rand.Rand) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
