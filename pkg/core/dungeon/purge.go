package dungeon

import (
	"cmp"
	"slices"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/dungeonforge/pkg/core/geom"
)

// RoomPurgeRatio is the share of rooms, smallest first, that room purging
// tries to remove.
const RoomPurgeRatio = 0.1

// purgeCount returns ceil(n*RoomPurgeRatio) without floating point drift.
func purgeCount(n int) int { return (n + 9) / 10 }

type detachedDoor struct {
	door   Door
	index  int // position in Dungeon.Doors
	owners []*Room
	slots  []int // position in each owner's door list
}

// purgeRooms removes the smallest rooms one at a time, undoing any removal
// that would disconnect the remaining rooms.
func (d *Dungeon) purgeRooms(e *emitter) {
	candidates := slices.Clone(d.Rooms)
	slices.SortStableFunc(candidates, func(a, b *Room) int { return cmp.Compare(a.Area(), b.Area()) })
	candidates = candidates[:min(purgeCount(len(candidates)), len(candidates))]

	for _, room := range candidates {
		at := slices.Index(d.Rooms, room)
		if at < 0 {
			continue
		}
		detached := d.detachRoom(at)
		if !Connected(d.Rooms) {
			d.restoreRoom(at, room, detached)
			continue
		}
		if !e.emit(Step{Op: OpPurgeRoom, Bounds: room.Bounds(), Node: room.Center()}) {
			return
		}
	}
}

// detachRoom removes the room at index at together with its doors from the
// room list, the door list, the other rooms and the graph.
func (d *Dungeon) detachRoom(at int) []detachedDoor {
	room := d.Rooms[at]
	d.Rooms = slices.Delete(d.Rooms, at, at+1)

	doors := slices.Clone(room.Doors())
	out := make([]detachedDoor, len(doors))
	for i, door := range doors {
		out[i] = detachedDoor{door: door, index: slices.Index(d.Doors, door)}
	}
	d.Doors = slices.DeleteFunc(d.Doors, func(x Door) bool { return slices.Contains(doors, x) })

	for i, door := range doors {
		for _, other := range RoomsSharing(d.Rooms, door) {
			out[i].owners = append(out[i].owners, other)
			out[i].slots = append(out[i].slots, other.RemoveDoor(door))
		}
		d.Graph.RemoveNode(door.Node())
	}
	d.Graph.RemoveNode(room.Center())
	return out
}

// restoreRoom reverses detachRoom. Doors go back to their former positions.
func (d *Dungeon) restoreRoom(at int, room *Room, detached []detachedDoor) {
	d.Rooms = slices.Insert(d.Rooms, at, room)
	c := room.Center()
	d.Graph.AddNode(c)

	// Indices refer to the list before detachRoom, so ascending inserts
	// land each door back in place.
	byIndex := slices.Clone(detached)
	slices.SortStableFunc(byIndex, func(a, b detachedDoor) int { return cmp.Compare(a.index, b.index) })
	for _, dd := range byIndex {
		if dd.index >= 0 {
			d.Doors = slices.Insert(d.Doors, min(dd.index, len(d.Doors)), dd.door)
		}
	}
	for _, dd := range detached {
		n := dd.door.Node()
		d.Graph.AddEdge(n, c)
		for i, other := range dd.owners {
			other.insertDoor(dd.slots[i], dd.door)
			d.Graph.AddEdge(n, other.Center())
		}
	}
}

type frontierEntry struct {
	room geom.Vec2
	door geom.Vec2
	cost int
	seq  int
}

// spanningDoors grows a tree over room centres from the first room, always
// admitting the frontier room with the lowest degree. It returns the door
// nodes used to admit rooms.
func (d *Dungeon) spanningDoors() mapset.Set[geom.Vec2] {
	selected := mapset.New[geom.Vec2]()
	if len(d.Rooms) == 0 {
		return selected
	}

	frontier := heap.New(func(a, b frontierEntry) bool {
		if a.cost != b.cost {
			return a.cost < b.cost
		}
		return a.seq < b.seq
	})
	visited := mapset.New[geom.Vec2]()
	seq := 0
	expand := func(room geom.Vec2) {
		for _, door := range d.Graph.Neighbors(room) {
			for _, next := range d.Graph.Neighbors(door) {
				if visited.Has(next) {
					continue
				}
				frontier.Push(frontierEntry{room: next, door: door, cost: d.Graph.Degree(next), seq: seq})
				seq++
			}
		}
	}

	start := d.Rooms[0].Center()
	visited.Put(start)
	expand(start)
	for {
		entry, ok := frontier.Pop()
		if !ok {
			break
		}
		if visited.Has(entry.room) {
			continue
		}
		visited.Put(entry.room)
		selected.Put(entry.door)
		expand(entry.room)
	}
	return selected
}

// purgeDoors keeps only the doors of a spanning tree over the rooms.
func (d *Dungeon) purgeDoors(e *emitter) {
	keep := d.spanningDoors()
	for _, door := range slices.Clone(d.Doors) {
		if keep.Has(door.Node()) {
			continue
		}
		for _, r := range RoomsSharing(d.Rooms, door) {
			r.RemoveDoor(door)
		}
		if i := slices.Index(d.Doors, door); i >= 0 {
			d.Doors = slices.Delete(d.Doors, i, i+1)
		}
		d.Graph.RemoveNode(door.Node())
		if !e.emit(Step{Op: OpPurgeDoor, Bounds: door.Bounds(), Node: door.Node()}) {
			return
		}
	}
}
