// Package cli implements the dungeonforge command-line interface.
//
// This package provides commands for generating dungeons, querying paths
// through them and exporting their graphs for debugging. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - generate: Run pipeline stages and print the tile map
//   - path: Find the shortest walkable path between two points
//   - graph: Export the room/door or traversal graph as DOT or SVG
//   - stages: List the pipeline stages
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes one line per stage checkpoint. Loggers are passed through
// context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/buildinfo"
	"github.com/matzehuels/dungeonforge/pkg/pacing"
	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "dungeonforge"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Dungeonforge generates 2-D dungeons",
		Long:         `Dungeonforge procedurally generates 2-D dungeons: it partitions an area into rooms, connects them with doors, prunes the layout to a connected tree, rasterizes it to tiles and finds paths through the result.`,
		Version:      buildinfo.CurrentVersion(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.Logger.Debug("build", buildinfo.LogFields()...)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.stagesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func newRunner(logger *log.Logger, pacer pacing.Pacer) *pipeline.Runner {
	return pipeline.NewRunner(logger, pacer)
}
