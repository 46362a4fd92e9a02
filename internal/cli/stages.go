package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

// stagesCommand creates the stages command that lists pipeline stages.
func (c *CLI) stagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "List the pipeline stages in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printStages(cmd.OutOrStdout())
			return nil
		},
	}
}

func printStages(w io.Writer) {
	name := lipgloss.NewStyle().Foreground(colorCyan).Width(18)
	for i, s := range pipeline.Stages() {
		line := fmt.Sprintf("%d. %s %s", i+1, name.Render(s.String()), s.Description())
		if req := s.Requires(); req != "" {
			line += StyleDim.Render(" (after " + req.String() + ")")
		}
		fmt.Fprintln(w, line)
	}
}
