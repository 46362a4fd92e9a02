package pipeline

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dungeonforge/pkg/core/dungeon"
	"github.com/matzehuels/dungeonforge/pkg/core/geom"
	"github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/observability"
	"github.com/matzehuels/dungeonforge/pkg/pacing"
)

func quietRunner() *Runner {
	return NewRunner(log.NewWithOptions(io.Discard, log.Options{}), nil)
}

func TestParseStage(t *testing.T) {
	tests := []struct {
		input   string
		want    Stage
		wantErr bool
	}{
		{"generate-rooms", StageGenerateRooms, false},
		{" Flood-Fill ", StageFloodFill, false},
		{"purge-doors", StagePurgeDoors, false},
		{"compute-path", "", true},
		{"rooms", "", true},
		{"", "", true},
		{"purge_rooms", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStage(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStage(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidStage) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidStage)
			}
			if got != tt.want {
				t.Errorf("ParseStage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStages(t *testing.T) {
	all, err := ParseStages("")
	if err != nil || !slices.Equal(all, Stages()) {
		t.Errorf("ParseStages(\"\") = %v, %v", all, err)
	}

	got, err := ParseStages("generate-rooms, generate-doors")
	if err != nil {
		t.Fatalf("ParseStages() error = %v", err)
	}
	if want := []Stage{StageGenerateRooms, StageGenerateDoors}; !slices.Equal(got, want) {
		t.Errorf("ParseStages() = %v, want %v", got, want)
	}

	if _, err := ParseStages("generate-rooms,bogus"); err == nil {
		t.Error("ParseStages with unknown stage should fail")
	}
}

func TestStagesMetadata(t *testing.T) {
	for _, s := range Stages() {
		if s.Description() == "" {
			t.Errorf("%s has no description", s)
		}
		if req := s.Requires(); req != "" && req.position() >= s.position() {
			t.Errorf("%s requires later stage %s", s, req)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if opts.MinRoomWidth != DefaultMinRoomWidth || opts.MinRoomHeight != DefaultMinRoomHeight {
		t.Errorf("min room = %dx%d", opts.MinRoomWidth, opts.MinRoomHeight)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed should be %d, got %d", DefaultSeed, opts.Seed)
	}
	if opts.PacingMode() != pacing.ModeInstant {
		t.Errorf("Pacing should be instant, got %s", opts.Pacing)
	}
	if opts.Interval.Duration() != DefaultInterval {
		t.Errorf("Interval should be %s, got %s", DefaultInterval, opts.Interval)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr errors.Code
	}{
		{"defaults", Options{}, ""},
		{"timed", Options{Pacing: "timed", Interval: Interval(time.Second)}, ""},
		{"negative size is accepted", Options{Width: -5}, ""},
		{"bad pacing", Options{Pacing: "sometimes"}, errors.ErrCodeInvalidPacing},
		{"negative interval", Options{Interval: Interval(-time.Second)}, errors.ErrCodeInvalidPacing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if got := errors.GetCode(err); got != tt.wantErr || (tt.wantErr == "" && err != nil) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want code %q", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsKeepZero(t *testing.T) {
	opts := Options{}
	opts.KeepZero("seed", "width", "height")
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Seed != 0 || opts.Width != 0 || opts.Height != 0 {
		t.Errorf("kept zeros replaced: seed=%d size=%dx%d", opts.Seed, opts.Width, opts.Height)
	}
	if opts.MinRoomWidth != DefaultMinRoomWidth {
		t.Errorf("min width = %d, want default", opts.MinRoomWidth)
	}

	st, err := quietRunner().Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if st.Dungeon.Seed != 0 {
		t.Errorf("dungeon seed = %d, want 0", st.Dungeon.Seed)
	}
	if c := st.Counts(); c.Rooms != 1 || c.Doors != 0 || c.TraversalNodes != 0 {
		t.Errorf("zero-sized run counts = %+v, want a single room", c)
	}
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("valid", func(t *testing.T) {
		path := write("dungeon.toml", `
width = 120
height = 90
min_room_width = 12
seed = 7
pacing = "timed"
interval = "50ms"
`)
		opts, err := LoadOptions(path)
		if err != nil {
			t.Fatalf("LoadOptions() error = %v", err)
		}
		if opts.Width != 120 || opts.Height != 90 || opts.MinRoomWidth != 12 || opts.Seed != 7 {
			t.Errorf("LoadOptions() = %+v", opts)
		}
		if opts.Pacing != "timed" || opts.Interval.Duration() != 50*time.Millisecond {
			t.Errorf("pacing = %s %s", opts.Pacing, opts.Interval)
		}
		if opts.MinRoomHeight != 0 {
			t.Errorf("unset key decoded as %d", opts.MinRoomHeight)
		}
	})

	t.Run("explicit zero", func(t *testing.T) {
		opts, err := LoadOptions(write("zero.toml", "seed = 0\n"))
		if err != nil {
			t.Fatal(err)
		}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if opts.Seed != 0 || opts.Width != DefaultWidth {
			t.Errorf("seed = %d width = %d, want 0 and default", opts.Seed, opts.Width)
		}
	})

	tests := []struct {
		name    string
		content string
	}{
		{"syntax error", "width = = 3"},
		{"bad interval", `interval = "soon"`},
		{"unknown key", "depth = 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadOptions(write(tt.name+".toml", tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("LoadOptions() error = %v, want INVALID_CONFIG", err)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadOptions(filepath.Join(dir, "nope.toml")); err == nil {
			t.Error("LoadOptions() on missing file should fail")
		}
	})
}

func TestExecute(t *testing.T) {
	st, err := quietRunner().Execute(context.Background(), Options{Seed: 11})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got := st.Completed(); !slices.Equal(got, Stages()) {
		t.Errorf("Completed() = %v, want all stages", got)
	}
	c := st.Counts()
	if c.Rooms == 0 || c.Walls == 0 || c.TraversalNodes == 0 {
		t.Errorf("Counts() = %+v", c)
	}
	if dungeon.Connected(st.Dungeon.Rooms) && c.Doors != c.Rooms-1 {
		t.Errorf("doors = %d, want %d", c.Doors, c.Rooms-1)
	}
	if len(st.Stats.Stages) != len(Stages()) {
		t.Errorf("recorded %d stage runs, want %d", len(st.Stats.Stages), len(Stages()))
	}
	if st.Grid.Width() != DefaultWidth || st.Grid.Height() != DefaultHeight {
		t.Errorf("grid = %v", st.Grid.Size())
	}
}

func TestExecuteDeterministic(t *testing.T) {
	a, err := quietRunner().Execute(context.Background(), Options{Seed: 5})
	if err != nil {
		t.Fatal(err)
	}
	b, err := quietRunner().Execute(context.Background(), Options{Seed: 5})
	if err != nil {
		t.Fatal(err)
	}

	if a.Grid.Dump(false) != b.Grid.Dump(false) {
		t.Error("same seed produced different tile grids")
	}
	if a.Counts() != b.Counts() {
		t.Errorf("counts differ: %+v vs %+v", a.Counts(), b.Counts())
	}
	if a.ID == b.ID {
		t.Error("runs share an ID")
	}
}

func TestRunStagesRepeatedDoors(t *testing.T) {
	r := quietRunner()
	ctx := context.Background()
	want, err := r.Execute(ctx, Options{Seed: 7})
	if err != nil {
		t.Fatal(err)
	}

	st, err := NewState(Options{Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	stages := append([]Stage{StageGenerateRooms, StageGenerateDoors, StageGenerateDoors}, Stages()[2:]...)
	if err := r.RunStages(ctx, st, stages); err != nil {
		t.Fatalf("RunStages() error = %v", err)
	}

	if got := st.Dungeon.DoorPositions(); !slices.Equal(got, want.Dungeon.DoorPositions()) {
		t.Errorf("doors after rerun = %v, want %v", got, want.Dungeon.DoorPositions())
	}
	if st.Grid.Dump(false) != want.Grid.Dump(false) {
		t.Error("rerunning generate-doors changed the tile grid")
	}
}

func TestRunStagePreconditions(t *testing.T) {
	r := quietRunner()
	ctx := context.Background()

	for _, s := range Stages()[1:] {
		t.Run(string(s), func(t *testing.T) {
			st, _ := NewState(Options{})
			err := r.RunStage(ctx, st, s)
			if !errors.Is(err, errors.ErrCodePrecondition) {
				t.Errorf("RunStage(%s) error = %v, want PRECONDITION_FAILED", s, err)
			}
		})
	}

	st, _ := NewState(Options{})
	if _, err := r.ComputePath(ctx, st, geom.V(0, 0), geom.V(1, 1)); !errors.Is(err, errors.ErrCodePrecondition) {
		t.Errorf("ComputePath() error = %v, want PRECONDITION_FAILED", err)
	}
	if err := r.RunStage(ctx, st, Stage("bogus")); !errors.Is(err, errors.ErrCodeInvalidStage) {
		t.Errorf("RunStage(bogus) error = %v, want INVALID_STAGE", err)
	}
}

func TestRunStageInvalidates(t *testing.T) {
	r := quietRunner()
	ctx := context.Background()
	st, err := r.Execute(ctx, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if err := r.RunStage(ctx, st, StagePurgeRooms); err != nil {
		t.Fatalf("rerun purge-rooms: %v", err)
	}
	if st.Done(StagePurgeDoors) || st.Done(StageRasterizeTiles) || st.Grid != nil {
		t.Error("later stages still marked done after rerun")
	}
	if !st.Done(StageBuildGraph) {
		t.Error("earlier stage invalidated by rerun")
	}
	if err := r.RunStage(ctx, st, StageFloodFill); !errors.Is(err, errors.ErrCodePrecondition) {
		t.Errorf("flood-fill after invalidation: %v", err)
	}

	// Either purge order works.
	if err := r.RunStages(ctx, st, []Stage{StagePurgeDoors, StagePurgeRooms, StageRasterizeTiles, StageFloodFill}); err != nil {
		t.Errorf("purge-doors then purge-rooms: %v", err)
	}
}

func TestComputePath(t *testing.T) {
	r := quietRunner()
	st, err := r.Execute(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	nodes := st.Traversal.Graph.Nodes()
	from, to := nodes[0], nodes[len(nodes)-1]
	p, err := r.ComputePath(context.Background(), st, from, to)
	if err != nil {
		t.Fatalf("ComputePath() error = %v", err)
	}
	if len(p) == 0 || p[0] != from || p[len(p)-1] != to {
		t.Errorf("path = %v, want %v..%v", p, from, to)
	}

	same, _ := r.ComputePath(context.Background(), st, from, from)
	if len(same) != 1 {
		t.Errorf("path to self = %v, want one node", same)
	}
}

func TestFloodSeed(t *testing.T) {
	st, err := quietRunner().Execute(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	seed, ok := FloodSeed(st.Dungeon, st.Grid)
	if !ok {
		t.Fatal("no seed found")
	}
	if !st.Traversal.Visited(seed.X, seed.Y) {
		t.Errorf("seed %v not visited", seed)
	}
}

func TestRunnerObserveAndCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := quietRunner()
	seen := 0
	r.Observe = func(_ *State, c Checkpoint) {
		seen++
		if c.Stage != StageGenerateRooms {
			t.Errorf("checkpoint from %s", c.Stage)
		}
		if seen == 2 {
			cancel()
		}
	}

	st, _ := NewState(Options{})
	err := r.RunStage(ctx, st, StageGenerateRooms)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("RunStage() error = %v, want context.Canceled", err)
	}
	if seen != 2 {
		t.Errorf("observed %d checkpoints, want 2", seen)
	}
	if st.Done(StageGenerateRooms) {
		t.Error("cancelled stage marked done")
	}
}

type recordingHooks struct {
	observability.NoopStageHooks
	observability.NoopPathHooks

	mu          sync.Mutex
	started     []string
	completed   []string
	checkpoints int
	paths       int
}

func (h *recordingHooks) OnStageStart(_ context.Context, _, stage string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = append(h.started, stage)
}

func (h *recordingHooks) OnStageComplete(_ context.Context, _, stage string, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed = append(h.completed, stage)
}

func (h *recordingHooks) OnCheckpoint(context.Context, string, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkpoints++
}

func (h *recordingHooks) OnPath(context.Context, string, int, float64, time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paths++
}

func TestRunnerHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetStageHooks(h)
	observability.SetPathHooks(h)
	defer observability.Reset()

	r := quietRunner()
	st, err := r.Execute(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.ComputePath(context.Background(), st, geom.V(1, 1), geom.V(50, 40)); err != nil {
		t.Fatal(err)
	}

	want := make([]string, 0, len(Stages()))
	for _, s := range Stages() {
		want = append(want, string(s))
	}
	if !slices.Equal(h.started, want) || !slices.Equal(h.completed, want) {
		t.Errorf("started %v, completed %v", h.started, h.completed)
	}
	steps := 0
	for _, s := range st.Stats.Stages {
		steps += s.Steps
	}
	if h.checkpoints != steps {
		t.Errorf("checkpoints = %d, want %d", h.checkpoints, steps)
	}
	if h.paths != 1 {
		t.Errorf("paths = %d, want 1", h.paths)
	}
}
