package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/pacing"
)

// pathFlags holds flags for the path command.
type pathFlags struct {
	dungeonFlags
	from  string
	to    string
	noMap bool
	flip  bool
}

// pathCommand creates the path command for querying walkable paths.
func (c *CLI) pathCommand() *cobra.Command {
	var flags pathFlags

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Find the shortest walkable path between two points",
		Long: `Generate a dungeon, flood-fill its walkable tiles and find the shortest
path between the tiles nearest to --from and --to.`,
		Example: `  dungeonforge path --from 5,5 --to 70,50
  dungeonforge path --seed 7 --from 1.5,1.5 --to 30,20 --no-map`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPath(cmd, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.from, "from", "", "start point as x,y")
	cmd.Flags().StringVar(&flags.to, "to", "", "end point as x,y")
	cmd.Flags().BoolVar(&flags.noMap, "no-map", false, "skip printing the map")
	cmd.Flags().BoolVar(&flags.flip, "flip", true, "draw y=0 at the bottom")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (c *CLI) runPath(cmd *cobra.Command, flags *pathFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	from, err := parsePoint(flags.from)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := parsePoint(flags.to)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}
	opts, err := flags.options(cmd)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Generating dungeon...")
	spinner.Start()
	runner := newRunner(logger, pacing.Instant{})
	st, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.SetMessage("Finding path...")
	path, err := runner.ComputePath(ctx, st, from, to)
	spinner.Stop()
	if err != nil {
		return err
	}
	p := newPrinter(cmd.OutOrStdout())
	if len(path) == 0 {
		p.warning("No path between %s and %s", from, to)
		return nil
	}

	p.success("Path from %s to %s", StyleHighlight.Render(from.String()), StyleHighlight.Render(to.String()))
	p.keyValue("Hops", fmt.Sprint(path.Hops()))
	p.keyValue("Cost", fmt.Sprintf("%.4f", path.Cost()))
	parts := make([]string, len(path))
	for i, v := range path {
		parts[i] = v.String()
	}
	p.detail("%s", strings.Join(parts, " "))

	if !flags.noMap {
		p.newline()
		p.raw(renderMap(st, path, flags.flip))
	}
	return nil
}
