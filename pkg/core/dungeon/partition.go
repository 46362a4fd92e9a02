package dungeon

import (
	"math/rand/v2"
	"slices"

	"github.com/zyedidia/generic/queue"

	"github.com/matzehuels/dungeonforge/pkg/core/geom"
)

type pendingSplit struct {
	room *Room
	axis Axis
}

// Partition divides bounds into rooms by repeated binary splits. Rooms are
// processed first in, first out; each child is queued with the axis
// perpendicular to the cut that produced it. A room with no legal cut on
// either axis is a leaf. yield, if non-nil, receives one [OpSplit] step per
// split and may return false to stop early.
//
// Every leaf is at least minSize in both dimensions unless bounds itself is
// smaller. Non-positive sizes give a single unsplit room.
func Partition(bounds geom.Rect, minSize geom.Point, rng *rand.Rand, yield func(Step) bool) []*Room {
	var rooms []*Room
	partition(bounds, minSize, rng, &rooms, &emitter{yield: yield})
	return rooms
}

// partition writes into *rooms as it goes so that a paused caller sees the
// current room set.
func partition(bounds geom.Rect, minSize geom.Point, rng *rand.Rand, rooms *[]*Room, e *emitter) {
	root := NewRoom(bounds.Pos(), bounds.Size())
	*rooms = []*Room{root}
	if bounds.Empty() || minSize.X <= 0 || minSize.Y <= 0 {
		return
	}

	q := queue.New[pendingSplit]()
	q.Enqueue(pendingSplit{room: root, axis: Axis(rng.IntN(2))})
	for !q.Empty() {
		p := q.Dequeue()
		first, second, used, ok := p.room.split(p.axis, minSize, rng)
		if !ok {
			continue
		}

		if i := slices.Index(*rooms, p.room); i >= 0 {
			*rooms = slices.Delete(*rooms, i, i+1)
		}
		*rooms = append(*rooms, first, second)

		next := used.Other()
		q.Enqueue(pendingSplit{room: first, axis: next})
		q.Enqueue(pendingSplit{room: second, axis: next})

		if !e.emit(Step{Op: OpSplit, Bounds: p.room.Bounds()}) {
			return
		}
	}
}
