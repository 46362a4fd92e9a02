package dungeon

import (
	"slices"
	"testing"

	"github.com/matzehuels/dungeonforge/pkg/core/geom"
)

// gridRooms returns four 10x10 rooms in a square plus a tall room to their
// right. Door placement gives them six doors.
func gridRooms() []*Room {
	return []*Room{
		NewRoom(geom.Pt(0, 0), geom.Pt(10, 10)),
		NewRoom(geom.Pt(9, 0), geom.Pt(10, 10)),
		NewRoom(geom.Pt(0, 9), geom.Pt(10, 10)),
		NewRoom(geom.Pt(9, 9), geom.Pt(10, 10)),
		NewRoom(geom.Pt(18, 0), geom.Pt(10, 19)),
	}
}

func assemble(t *testing.T, rooms []*Room) *Dungeon {
	t.Helper()
	bounds := geom.Rect{}
	for _, r := range rooms {
		b := r.Bounds()
		bounds.W = max(bounds.W, b.XMax())
		bounds.H = max(bounds.H, b.YMax())
	}
	doors := PlaceDoors(rooms, NewRand(1), nil)
	d := Assemble(bounds, rooms, doors)
	drain(t)(d.BuildGraph())
	return d
}

func checkDoorLists(t *testing.T, d *Dungeon) {
	t.Helper()
	for _, door := range d.Doors {
		if n := len(RoomsSharing(d.Rooms, door)); n != 2 {
			t.Errorf("%v on %d rooms, want 2", door, n)
		}
		if !d.Graph.HasNode(door.Node()) {
			t.Errorf("%v missing from graph", door)
		}
	}
	for _, r := range d.Rooms {
		for _, door := range r.Doors() {
			if !slices.Contains(d.Doors, door) {
				t.Errorf("%v on %v but not in door list", door, r.Bounds())
			}
		}
	}
}

func TestPurgeDoorsSpanningTree(t *testing.T) {
	d := assemble(t, gridRooms())
	if len(d.Doors) != 6 {
		t.Fatalf("doors = %d, want 6", len(d.Doors))
	}

	removed := drain(t)(d.PurgeDoors())

	if removed != 2 || len(d.Doors) != 4 {
		t.Errorf("removed %d, doors = %d, want 2 and 4", removed, len(d.Doors))
	}
	if !Connected(d.Rooms) {
		t.Error("rooms disconnected after door purge")
	}
	if got, want := d.Graph.EdgeCount(), d.Graph.NodeCount()-1; got != want {
		t.Errorf("graph edges = %d, want %d", got, want)
	}
	if !d.Graph.Connected() {
		t.Error("graph disconnected after door purge")
	}
	checkDoorLists(t, d)
}

func TestPurgeDoorsTreeUnchanged(t *testing.T) {
	d := assemble(t, gridRooms())
	drain(t)(d.PurgeDoors())
	before := slices.Clone(d.Doors)

	if n := drain(t)(d.PurgeDoors()); n != 0 {
		t.Errorf("second purge removed %d doors", n)
	}
	if !slices.Equal(d.Doors, before) {
		t.Errorf("doors = %v, want %v", d.Doors, before)
	}
}

func TestPurgeRoomsRollback(t *testing.T) {
	// The smallest room is the only link between the other two.
	rooms := []*Room{
		NewRoom(geom.Pt(0, 0), geom.Pt(10, 10)),
		NewRoom(geom.Pt(9, 0), geom.Pt(6, 10)),
		NewRoom(geom.Pt(14, 0), geom.Pt(10, 10)),
	}
	d := assemble(t, rooms)
	doors := slices.Clone(d.Doors)
	middle := slices.Clone(rooms[1].Doors())
	nodes, edges := d.Graph.NodeCount(), d.Graph.EdgeCount()

	if n := drain(t)(d.PurgeRooms()); n != 0 {
		t.Errorf("purged %d rooms, want 0", n)
	}
	if !slices.Equal(d.Rooms, rooms) {
		t.Errorf("rooms changed: %v", d.RoomBounds())
	}
	if !slices.Equal(d.Doors, doors) {
		t.Errorf("doors = %v, want %v", d.Doors, doors)
	}
	if !slices.Equal(rooms[1].Doors(), middle) {
		t.Errorf("middle doors = %v, want %v", rooms[1].Doors(), middle)
	}
	if d.Graph.NodeCount() != nodes || d.Graph.EdgeCount() != edges {
		t.Errorf("graph = %d nodes %d edges, want %d and %d",
			d.Graph.NodeCount(), d.Graph.EdgeCount(), nodes, edges)
	}
	checkDoorLists(t, d)
}

func TestPurgeRoomsCommit(t *testing.T) {
	// The smallest room is a dead end.
	rooms := []*Room{
		NewRoom(geom.Pt(0, 0), geom.Pt(10, 10)),
		NewRoom(geom.Pt(9, 0), geom.Pt(10, 10)),
		NewRoom(geom.Pt(18, 0), geom.Pt(6, 10)),
	}
	d := assemble(t, rooms)

	if n := drain(t)(d.PurgeRooms()); n != 1 {
		t.Fatalf("purged %d rooms, want 1", n)
	}
	if len(d.Rooms) != 2 || slices.Contains(d.Rooms, rooms[2]) {
		t.Errorf("rooms = %v", d.RoomBounds())
	}
	if len(d.Doors) != 1 || len(rooms[1].Doors()) != 1 {
		t.Errorf("doors = %v, middle doors = %v", d.Doors, rooms[1].Doors())
	}
	if d.Graph.NodeCount() != 3 || d.Graph.EdgeCount() != 2 {
		t.Errorf("graph = %d nodes %d edges, want 3 and 2", d.Graph.NodeCount(), d.Graph.EdgeCount())
	}
	checkDoorLists(t, d)
}

func TestPurgeRoomsGenerated(t *testing.T) {
	for seed := int64(0); seed < 15; seed++ {
		d := generate(t, geom.Pt(80, 60), geom.Pt(10, 10), seed)
		drain(t)(d.BuildGraph())
		n := len(d.Rooms)
		wasConnected := Connected(d.Rooms)

		drain(t)(d.PurgeRooms())

		// At most ceil(n/10) rooms go, which for some n leaves fewer than
		// ceil(0.9n) rooms (15 rooms can drop to 13).
		if len(d.Rooms) < n-purgeCount(n) {
			t.Errorf("seed %d: %d rooms left of %d", seed, len(d.Rooms), n)
		}
		if wasConnected && !Connected(d.Rooms) {
			t.Errorf("seed %d: room purge disconnected the dungeon", seed)
		}
		checkDoorLists(t, d)

		drain(t)(d.PurgeDoors())
		if wasConnected && len(d.Doors) != len(d.Rooms)-1 {
			t.Errorf("seed %d: doors = %d, want %d", seed, len(d.Doors), len(d.Rooms)-1)
		}
	}
}

func TestPurgeCount(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0}, {1, 1}, {9, 1}, {10, 1}, {11, 2}, {15, 2}, {20, 2}, {21, 3},
	}
	for _, tt := range tests {
		if got := purgeCount(tt.n); got != tt.want {
			t.Errorf("purgeCount(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
