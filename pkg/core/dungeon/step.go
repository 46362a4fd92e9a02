package dungeon

import (
	"fmt"
	"iter"

	"github.com/matzehuels/dungeonforge/pkg/core/geom"
)

// Op names the kind of work a [Step] reports.
type Op string

const (
	OpSplit     Op = "split"
	OpDoor      Op = "door"
	OpNode      Op = "node"
	OpDiscover  Op = "discover"
	OpPurgeRoom Op = "purge-room"
	OpPurgeDoor Op = "purge-door"
)

// Step is a checkpoint emitted after one unit of stage work.
type Step struct {
	Op     Op
	Index  int       // 0-based position within the stage run
	Bounds geom.Rect // room or door cell the step touched, if any
	Node   geom.Vec2 // graph node the step touched, if any
}

func (s Step) String() string {
	switch s.Op {
	case OpNode, OpDiscover:
		return fmt.Sprintf("%s #%d %s", s.Op, s.Index, s.Node)
	default:
		return fmt.Sprintf("%s #%d %s", s.Op, s.Index, s.Bounds)
	}
}

// Drain runs seq to completion and returns the number of steps it produced.
func Drain(seq iter.Seq[Step]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

// emitter numbers steps and forwards them to a yield function. A nil yield
// accepts everything.
type emitter struct {
	yield func(Step) bool
	n     int
}

func (e *emitter) emit(s Step) bool {
	s.Index = e.n
	e.n++
	if e.yield == nil {
		return true
	}
	return e.yield(s)
}
