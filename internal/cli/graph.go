package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/core/geom"
	"github.com/matzehuels/dungeonforge/pkg/core/graph"
	"github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/pacing"
	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

const (
	graphKindRooms     = "rooms"
	graphKindTraversal = "traversal"

	// graphScale converts cells to Graphviz inches for pinned positions.
	graphScale = 0.25
)

// graphFlags holds flags for the graph command.
type graphFlags struct {
	dungeonFlags
	kind   string
	svg    bool
	output string
}

// graphCommand creates the graph command for exporting dungeon graphs.
func (c *CLI) graphCommand() *cobra.Command {
	var flags graphFlags

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the room/door or traversal graph",
		Long: `Export one of the dungeon's graphs in Graphviz DOT format, or as SVG.

The rooms graph links room centres to door nodes. The traversal graph links
every walkable tile to its walkable neighbours. Nodes are pinned to their
dungeon coordinates.`,
		Example: `  dungeonforge graph > rooms.dot
  dungeonforge graph --kind traversal --width 20 --height 15
  dungeonforge graph --svg -o rooms.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.kind, "kind", graphKindRooms, "graph to export: rooms or traversal")
	cmd.Flags().BoolVar(&flags.svg, "svg", false, "render SVG instead of DOT")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, flags *graphFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts, err := flags.options(cmd)
	if err != nil {
		return err
	}
	st, err := newRunner(logger, pacing.Instant{}).Execute(ctx, opts)
	if err != nil {
		return err
	}

	dot, err := graphDOT(st, flags.kind)
	if err != nil {
		return err
	}

	data := []byte(dot)
	if flags.svg {
		spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
		data, err = graph.RenderSVG(ctx, dot)
		if err != nil {
			spinner.StopWithError("Rendering failed")
			return err
		}
		spinner.Stop()
	}

	if err := writeFile(cmd.OutOrStdout(), data, flags.output); err != nil {
		return err
	}
	if flags.output != "" {
		p := newPrinter(cmd.OutOrStdout())
		p.success("Exported %s graph", flags.kind)
		p.file(flags.output)
	}
	return nil
}

// graphDOT exports the graph named by kind from a completed run.
func graphDOT(st *pipeline.State, kind string) (string, error) {
	pos := func(v geom.Vec2) (float64, float64) { return v.X * graphScale, v.Y * graphScale }

	switch strings.ToLower(kind) {
	case graphKindRooms:
		d := st.Dungeon
		centres := make(map[geom.Vec2]int, len(d.Rooms))
		for i, r := range d.Rooms {
			centres[r.Center()] = i
		}
		return graph.ToDOT(d.Graph, graph.DOTOptions[geom.Vec2]{
			Name: "rooms",
			Label: func(v geom.Vec2) string {
				if i, ok := centres[v]; ok {
					return fmt.Sprintf("R%d", i)
				}
				return ""
			},
			Attrs: func(v geom.Vec2) []string {
				if _, ok := centres[v]; ok {
					return []string{"shape=box", "fillcolor=lightblue"}
				}
				return []string{"shape=point", "width=0.1"}
			},
			Pos: pos,
		}), nil
	case graphKindTraversal:
		return graph.ToDOT(st.Traversal.Graph, graph.DOTOptions[geom.Vec2]{
			Name:  "traversal",
			Label: func(geom.Vec2) string { return "" },
			Attrs: func(geom.Vec2) []string { return []string{"shape=point", "width=0.05"} },
			Pos:   pos,
		}), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidKind, "unknown graph kind %q (want %s or %s)",
			kind, graphKindRooms, graphKindTraversal)
	}
}
