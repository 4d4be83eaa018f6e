package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/tsgonest/typesurface/internal/apidiff"
)

func newDiffCmd(a *app) *cobra.Command {
	var (
		noColor  bool
		exitCode bool
	)
	cmd := &cobra.Command{
		Use:   "diff <old.json> <new.json>",
		Short: "Show exports added, removed or changed between two surfaces",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			old, err := apidiff.LoadFile(args[0])
			if err != nil {
				return err
			}
			updated, err := apidiff.LoadFile(args[1])
			if err != nil {
				return err
			}
			report, err := apidiff.Compare(old, updated)
			if err != nil {
				return err
			}

			colorize := !noColor
			if f, ok := a.stdout.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
				colorize = false
			}
			if err := apidiff.Render(a.stdout, report, colorize); err != nil {
				return err
			}
			if exitCode && report.Breaking() {
				return errors.New("breaking changes found")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Fail when exports were removed or changed")
	return cmd
}
