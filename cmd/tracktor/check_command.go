package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tracktor/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the state directory, dataset artifacts, and export target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			// A missing dataset still checks the state directory.
			dir, _ := ctx.datasetDir()
			results := preflight.RunAll(cmd.Context(), cfg, dir)
			failed := preflight.Failed(results)

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, r := range results {
					kind := statusOK
					if !r.Passed {
						kind = statusError
					}
					fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
				}
				if dir == "" {
					fmt.Fprintln(out, renderStatusLine("Dataset", statusWarn, "none selected", colorize))
				}
			}
			if len(failed) > 0 {
				names := make([]string, 0, len(failed))
				for _, r := range failed {
					names = append(names, r.Name)
				}
				return errors.New("checks failed: " + strings.Join(names, ", "))
			}
			return nil
		},
	}
}
