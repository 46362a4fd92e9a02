package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

// dungeonFlags are the generation flags shared by every command that runs
// the pipeline.
type dungeonFlags struct {
	config        string
	width         int
	height        int
	minRoomWidth  int
	minRoomHeight int
	seed          int64
	pacing        string
	interval      time.Duration
}

func (f *dungeonFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "TOML config file")
	fl.IntVar(&f.width, "width", pipeline.DefaultWidth, "dungeon width in cells")
	fl.IntVar(&f.height, "height", pipeline.DefaultHeight, "dungeon height in cells")
	fl.IntVar(&f.minRoomWidth, "min-width", pipeline.DefaultMinRoomWidth, "minimum room width")
	fl.IntVar(&f.minRoomHeight, "min-height", pipeline.DefaultMinRoomHeight, "minimum room height")
	fl.Int64Var(&f.seed, "seed", pipeline.DefaultSeed, "random seed")
}

func (f *dungeonFlags) registerPacing(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.pacing, "pacing", string(pipeline.DefaultPacing), "checkpoint pacing: instant, timed or gated")
	fl.DurationVar(&f.interval, "interval", pipeline.DefaultInterval, "pause between checkpoints in timed mode")
}

// options builds pipeline options from the config file, if any, with
// explicitly set flags taking precedence.
func (f *dungeonFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.config != "" {
		loaded, err := pipeline.LoadOptions(f.config)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	fl := cmd.Flags()
	keys := map[string]string{
		"width": "width", "height": "height", "min-width": "min_room_width",
		"min-height": "min_room_height", "seed": "seed", "interval": "interval",
	}
	set := func(name string) bool {
		if fl.Changed(name) {
			opts.KeepZero(keys[name])
			return true
		}
		return f.config == ""
	}
	if set("width") {
		opts.Width = f.width
	}
	if set("height") {
		opts.Height = f.height
	}
	if set("min-width") {
		opts.MinRoomWidth = f.minRoomWidth
	}
	if set("min-height") {
		opts.MinRoomHeight = f.minRoomHeight
	}
	if set("seed") {
		opts.Seed = f.seed
	}
	if fl.Lookup("pacing") != nil {
		if set("pacing") {
			opts.Pacing = f.pacing
		}
		if set("interval") {
			opts.Interval = pipeline.Interval(f.interval)
		}
	}

	opts.Logger = loggerFromContext(cmd.Context())
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}
