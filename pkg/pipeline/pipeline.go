// Package pipeline runs dungeon generation stages by name.
//
// This package ties the core packages together into the pipeline that the
// CLI and library callers use:
//
//  1. generate-rooms, generate-doors: lay out rooms and doors
//  2. build-graph, search-graph: build and explore the room/door graph
//  3. purge-rooms, purge-doors: prune the layout to a connected tree
//  4. rasterize-tiles, flood-fill: turn the layout into a walkable grid
//
// Shortest paths are computed on demand with [Runner.ComputePath] once the
// flood fill has run.
//
// # Preconditions
//
// Each stage requires an earlier one (see [Stage.Requires]). Running a
// stage before its prerequisite fails with a PRECONDITION_FAILED error, and
// re-running a stage invalidates every stage after it in pipeline order.
//
// # Usage
//
// Run the whole pipeline:
//
//	runner := pipeline.NewRunner(logger, nil)
//	st, err := runner.Execute(ctx, pipeline.Options{Seed: 7})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(st.Grid.Dump(true))
//
// Run stages one at a time:
//
//	st, _ := pipeline.NewState(opts)
//	err := runner.RunStage(ctx, st, pipeline.StageGenerateRooms)
//
// # Pacing
//
// A [pacing.Pacer] set on the runner pauses between checkpoints, which
// lets a front end animate generation or step through it by hand.
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/dungeonforge/pkg/core/dungeon"
	"github.com/matzehuels/dungeonforge/pkg/core/geom"
	"github.com/matzehuels/dungeonforge/pkg/core/tilemap"
)

// State holds everything one pipeline run has produced so far.
type State struct {
	// ID identifies the run in logs and hook events.
	ID uuid.UUID

	Options   Options
	Dungeon   *dungeon.Dungeon
	Grid      *tilemap.Grid      // nil until rasterize-tiles
	Traversal *tilemap.Traversal // nil until flood-fill

	Stats Stats

	completed map[Stage]bool
}

// NewState validates opts and returns a state ready for the first stage.
func NewState(opts Options) (*State, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &State{
		ID:        uuid.New(),
		Options:   opts,
		Dungeon:   dungeon.New(geom.Pt(opts.Width, opts.Height), opts.Seed),
		completed: make(map[Stage]bool),
	}, nil
}

// Done reports whether stage has completed and has not been invalidated
// since.
func (s *State) Done(stage Stage) bool { return s.completed[stage] }

// Completed returns the completed stages in pipeline order.
func (s *State) Completed() []Stage {
	var out []Stage
	for _, st := range stageOrder {
		if s.completed[st] {
			out = append(out, st)
		}
	}
	return out
}

// begin invalidates stage and every stage after it.
func (s *State) begin(stage Stage) {
	at := stage.position()
	for st := range s.completed {
		if st.position() >= at {
			delete(s.completed, st)
		}
	}
	switch {
	case at <= StageRasterizeTiles.position():
		s.Grid, s.Traversal = nil, nil
	case at <= StageFloodFill.position():
		s.Traversal = nil
	}
}

// =============================================================================
// Statistics
// =============================================================================

// StageStats records one completed stage run.
type StageStats struct {
	Stage    Stage
	Steps    int
	Duration time.Duration
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Stages []StageStats
}

// Total returns the summed duration of all recorded stage runs.
func (s Stats) Total() time.Duration {
	var d time.Duration
	for _, st := range s.Stages {
		d += st.Duration
	}
	return d
}

// Counts summarizes the sizes of the run's outputs.
type Counts struct {
	Rooms          int
	Doors          int
	GraphNodes     int
	GraphEdges     int
	Discovered     int
	Walls          int
	TraversalNodes int
	TraversalEdges int
}

// Counts returns the current output sizes of the run.
func (s *State) Counts() Counts {
	var c Counts
	d := s.Dungeon
	c.Rooms, c.Doors, c.Discovered = len(d.Rooms), len(d.Doors), len(d.Discovered)
	if d.Graph != nil {
		c.GraphNodes, c.GraphEdges = d.Graph.NodeCount(), d.Graph.EdgeCount()
	}
	if s.Grid != nil {
		c.Walls = s.Grid.Count(tilemap.Wall)
	}
	if s.Traversal != nil {
		c.TraversalNodes, c.TraversalEdges = s.Traversal.Graph.NodeCount(), s.Traversal.Graph.EdgeCount()
	}
	return c
}
