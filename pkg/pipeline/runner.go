package pipeline

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dungeonforge/pkg/core/dungeon"
	"github.com/matzehuels/dungeonforge/pkg/core/geom"
	"github.com/matzehuels/dungeonforge/pkg/core/pathfind"
	"github.com/matzehuels/dungeonforge/pkg/core/tilemap"
	"github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/observability"
	"github.com/matzehuels/dungeonforge/pkg/pacing"
)

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Checkpoint is one unit of progress reported by a running stage.
type Checkpoint struct {
	Stage  Stage
	Index  int
	Detail string
}

// Runner executes stages against a [State]. Stage logs go to the state's
// Options.Logger; Execute fills that in from the runner when unset.
//
// The Runner holds no run data; the same Runner can drive many states, but
// a single State must not be advanced from two goroutines at once.
type Runner struct {
	Logger *log.Logger
	Pacer  pacing.Pacer

	// Observe, if set, is called at every checkpoint before the pacer
	// pauses. Front ends use it to redraw.
	Observe func(*State, Checkpoint)
}

// NewRunner creates a runner. A nil logger uses log.Default(); a nil pacer
// runs stages without pausing.
func NewRunner(logger *log.Logger, pacer pacing.Pacer) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if pacer == nil {
		pacer = pacing.Instant{}
	}
	return &Runner{Logger: logger, Pacer: pacer}
}

// Execute creates a state from opts and runs every stage in order.
func (r *Runner) Execute(ctx context.Context, opts Options) (*State, error) {
	r.applyLogger(&opts)
	st, err := NewState(opts)
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := r.RunStages(ctx, st, Stages()); err != nil {
		return st, err
	}
	return st, nil
}

// RunStages runs stages in the given order, stopping at the first error.
func (r *Runner) RunStages(ctx context.Context, st *State, stages []Stage) error {
	for _, s := range stages {
		if err := r.RunStage(ctx, st, s); err != nil {
			return err
		}
	}
	return nil
}

// RunStage runs one stage to completion. It fails with PRECONDITION_FAILED
// when the stage's prerequisite has not completed.
func (r *Runner) RunStage(ctx context.Context, st *State, stage Stage) error {
	if _, ok := stageInfo[stage]; !ok {
		return errors.New(errors.ErrCodeInvalidStage, "unknown stage %q", stage)
	}
	if req := stage.Requires(); req != "" && !st.Done(req) {
		return errors.Precondition(string(stage), string(req))
	}

	seq, err := r.sequence(st, stage)
	if err != nil {
		return err
	}
	st.begin(stage)

	logger := st.Options.Logger
	runID := st.ID.String()
	hooks := observability.Stage()
	hooks.OnStageStart(ctx, runID, string(stage))

	start := time.Now()
	n, err := pacing.Drive(ctx, seq, r.Pacer, func(c Checkpoint) error {
		logger.Debug("checkpoint", "stage", stage, "index", c.Index, "detail", c.Detail)
		hooks.OnCheckpoint(ctx, runID, string(stage), c.Index)
		if r.Observe != nil {
			r.Observe(st, c)
		}
		return nil
	})
	elapsed := time.Since(start)
	hooks.OnStageComplete(ctx, runID, string(stage), n, elapsed, err)
	if err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}

	st.completed[stage] = true
	st.Stats.Stages = append(st.Stats.Stages, StageStats{Stage: stage, Steps: n, Duration: elapsed})
	r.logStage(st, stage, n, elapsed)
	return nil
}

func (r *Runner) logStage(st *State, stage Stage, steps int, elapsed time.Duration) {
	c := st.Counts()
	kv := []any{"stage", stage, "steps", steps, "duration", elapsed}
	switch stage {
	case StageGenerateRooms, StagePurgeRooms:
		kv = append(kv, "rooms", c.Rooms)
	case StageGenerateDoors, StagePurgeDoors:
		kv = append(kv, "doors", c.Doors)
	case StageBuildGraph:
		kv = append(kv, "nodes", c.GraphNodes, "edges", c.GraphEdges)
	case StageSearchGraph:
		kv = append(kv, "discovered", c.Discovered)
	case StageRasterizeTiles:
		kv = append(kv, "walls", c.Walls)
	case StageFloodFill:
		kv = append(kv, "nodes", c.TraversalNodes, "edges", c.TraversalEdges)
	}
	st.Options.Logger.Info("stage complete", kv...)
}

// sequence returns the checkpoints of stage as run against st.
func (r *Runner) sequence(st *State, stage Stage) (iter.Seq[Checkpoint], error) {
	d := st.Dungeon
	var (
		steps iter.Seq[dungeon.Step]
		err   error
	)
	switch stage {
	case StageGenerateRooms:
		steps = d.GenerateRooms(geom.Pt(st.Options.MinRoomWidth, st.Options.MinRoomHeight))
	case StageGenerateDoors:
		steps, err = d.GenerateDoors()
	case StageBuildGraph:
		steps, err = d.BuildGraph()
	case StageSearchGraph:
		steps, err = d.SearchGraph()
	case StagePurgeRooms:
		steps, err = d.PurgeRooms()
	case StagePurgeDoors:
		steps, err = d.PurgeDoors()
	case StageRasterizeTiles:
		return rasterize(st), nil
	case StageFloodFill:
		return floodFill(st), nil
	}
	if err != nil {
		return nil, err
	}
	return fromSteps(stage, steps), nil
}

func fromSteps(stage Stage, steps iter.Seq[dungeon.Step]) iter.Seq[Checkpoint] {
	return func(yield func(Checkpoint) bool) {
		for s := range steps {
			if !yield(Checkpoint{Stage: stage, Index: s.Index, Detail: s.String()}) {
				return
			}
		}
	}
}

func rasterize(st *State) iter.Seq[Checkpoint] {
	return func(yield func(Checkpoint) bool) {
		d := st.Dungeon
		st.Grid = tilemap.Rasterize(d.Bounds.Size(), d.RoomBounds(), d.DoorPositions())
		yield(Checkpoint{
			Stage:  StageRasterizeTiles,
			Detail: fmt.Sprintf("%dx%d grid, %d walls", st.Grid.Width(), st.Grid.Height(), st.Grid.Count(tilemap.Wall)),
		})
	}
}

func floodFill(st *State) iter.Seq[Checkpoint] {
	return func(yield func(Checkpoint) bool) {
		st.Traversal = tilemap.NewTraversal(st.Grid)
		seed, ok := FloodSeed(st.Dungeon, st.Grid)
		if !ok {
			return
		}
		i := 0
		for p := range st.Traversal.Fill(seed) {
			if !yield(Checkpoint{Stage: StageFloodFill, Index: i, Detail: p.String()}) {
				return
			}
			i++
		}
	}
}

// FloodSeed returns the first room centre, in room order, that falls on an
// empty tile.
func FloodSeed(d *dungeon.Dungeon, g *tilemap.Grid) (geom.Point, bool) {
	for _, room := range d.Rooms {
		c := room.Center()
		p := geom.Pt(int(c.X), int(c.Y))
		if g.InBounds(p.X, p.Y) && g.At(p.X, p.Y) == tilemap.Empty {
			return p, true
		}
	}
	return geom.Point{}, false
}

// ComputePath returns the shortest walkable path between the tiles nearest
// to from and to. It requires flood-fill.
func (r *Runner) ComputePath(ctx context.Context, st *State, from, to geom.Vec2) (pathfind.Path, error) {
	if !st.Done(StageFloodFill) || st.Traversal == nil {
		return nil, errors.Precondition("compute-path", string(StageFloodFill))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	p := pathfind.FindPath(st.Traversal.Graph, from, to)
	elapsed := time.Since(start)

	observability.Path().OnPath(ctx, st.ID.String(), p.Hops(), p.Cost(), elapsed)
	st.Options.Logger.Info("path computed",
		"from", from,
		"to", to,
		"hops", p.Hops(),
		"cost", fmt.Sprintf("%.2f", p.Cost()),
		"duration", elapsed)
	return p, nil
}
