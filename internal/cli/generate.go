package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/pacing"
	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

// generateFlags holds flags for the generate command.
type generateFlags struct {
	dungeonFlags
	stages string
	noMap  bool
	plain  bool
	flip   bool
	cases  bool
}

// generateCommand creates the generate command for running pipeline stages.
func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dungeon and print its tile map",
		Long: `Generate a dungeon by running pipeline stages and print the resulting tile map.

By default every stage runs without pausing. Use --pacing timed to animate
the run, or --pacing gated to step through checkpoints by hand.`,
		Example: `  # Generate with defaults
  dungeonforge generate

  # A smaller dungeon with a fixed seed
  dungeonforge generate --width 40 --height 30 --seed 7

  # Only partition and connect rooms
  dungeonforge generate --stages generate-rooms,generate-doors

  # Step through every checkpoint
  dungeonforge generate --pacing gated`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, &flags)
		},
	}

	flags.register(cmd)
	flags.registerPacing(cmd)
	cmd.Flags().StringVar(&flags.stages, "stages", "", "comma-separated stages to run (default: all)")
	cmd.Flags().BoolVar(&flags.noMap, "no-map", false, "skip printing the tile map")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "print the map as raw 0/# cells")
	cmd.Flags().BoolVar(&flags.flip, "flip", true, "draw y=0 at the bottom")
	cmd.Flags().BoolVar(&flags.cases, "cases", false, "print marching-squares tile cases")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, flags *generateFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts, err := flags.options(cmd)
	if err != nil {
		return err
	}
	stages, err := pipeline.ParseStages(flags.stages)
	if err != nil {
		return err
	}

	st, err := pipeline.NewState(opts)
	if err != nil {
		return err
	}

	if opts.PacingMode() == pacing.ModeInstant {
		err = runInstant(ctx, logger, st, stages)
	} else {
		err = runStepper(ctx, st, stages, flags.flip)
	}
	if err != nil {
		return err
	}

	p := newPrinter(cmd.OutOrStdout())
	printSummary(p, st)
	if done := st.Completed(); len(done) < len(pipeline.Stages()) && len(done) > 0 {
		p.info("Stopped after %s", done[len(done)-1])
	}
	if !flags.noMap {
		p.newline()
		if flags.plain && st.Grid != nil {
			p.raw(st.Grid.Dump(flags.flip))
		} else {
			p.raw(renderMap(st, nil, flags.flip))
		}
	}
	if flags.cases {
		if st.Grid == nil {
			p.warning("tile cases need %s", pipeline.StageRasterizeTiles)
		} else {
			p.newline()
			p.raw(renderTileCases(st.Grid, flags.flip))
		}
	}

	if st.Done(pipeline.StageFloodFill) {
		p.newline()
		p.nextStep("Find a path", fmt.Sprintf("%s path --seed %d --from x,y --to x,y", appName, opts.Seed))
	}
	return nil
}

func runInstant(ctx context.Context, logger *log.Logger, st *pipeline.State, stages []pipeline.Stage) error {
	prog := newProgress(logger)
	if err := newRunner(logger, pacing.Instant{}).RunStages(ctx, st, stages); err != nil {
		return err
	}
	prog.done("Ran stages", "stages", len(stages))
	return nil
}

// printSummary prints the run's identity, output counts and per-stage
// timings.
func printSummary(p *printer, st *pipeline.State) {
	o := st.Options
	p.success("Generated dungeon %s", StyleHighlight.Render(st.ID.String()[:8]))
	p.keyValue("Size", fmt.Sprintf("%dx%d", o.Width, o.Height))
	p.keyValue("Min room", fmt.Sprintf("%dx%d", o.MinRoomWidth, o.MinRoomHeight))
	p.keyValue("Seed", fmt.Sprint(o.Seed))

	c := st.Counts()
	p.stats(
		"rooms", c.Rooms,
		"doors", c.Doors,
		"graph nodes", c.GraphNodes,
		"graph edges", c.GraphEdges,
		"discovered", c.Discovered,
		"walls", c.Walls,
		"walkable", c.TraversalNodes,
	)
	for _, s := range st.Stats.Stages {
		p.detail("%-16s %4d steps  %s", s.Stage, s.Steps, s.Duration)
	}
}
