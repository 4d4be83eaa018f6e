package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tsgonest/typesurface/internal/runner"
)

const version = "0.1.0-dev"

// app carries the process-wide state shared by the commands.
type app struct {
	stdout io.Writer
	stderr *os.File
	logger *slog.Logger
	hook   *runner.Runner // --exec follow-up command, nil when unset

	logLevel string
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	cmd := newRootCmd(a)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "typesurface",
		Short: "Extract the public type surface of a TypeScript project",
		Long: `typesurface reads a type snapshot of a TypeScript program and writes the
public surface of every module (exports, their resolved types, components
and documentation) as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.stderr, a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")

	root.AddCommand(newExtractCmd(a), newDiffCmd(a), newVersionCmd(a))
	return root
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(a.stdout, "typesurface", version)
			return err
		},
	}
}
