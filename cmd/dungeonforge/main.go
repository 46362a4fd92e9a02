package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/internal/cli"
	"github.com/matzehuels/dungeonforge/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx, os.Args[1:])
	stop()

	code := errors.ExitCode(err)
	if code != 0 && code != 130 {
		report(err)
	}
	os.Exit(code)
}

// report prints the failure, moving a code prefix to the front.
func report(err error) {
	if code := errors.GetCode(err); code != "" {
		msg := strings.Replace(err.Error(), string(code)+": ", "", 1)
		fmt.Fprintf(os.Stderr, "Error [%s]: %s\n", code, msg)
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}

func execute(ctx context.Context, args []string) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SilenceErrors = true

	verbose := root.PersistentFlags().BoolP("verbose", "v", false, "log debug output")
	setup := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return setup(cmd, args)
	}
	return root.ExecuteContext(ctx)
}
