package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tracktor/internal/session"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the corrected tracking results as a new snapshot",
		Long: "Snapshots are named <tracking_base>_<n>.csv with n one past the highest existing\n" +
			"snapshot. The source tracking file is never modified.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, true, func(c context.Context, s *session.Session) error {
				rec, err := s.Export(c)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, rec)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%s, %d corrected frame(s)) to %s\n",
					rec.Key, humanize.Bytes(uint64(rec.Size)), len(s.Store().ModifiedFrames()), rec.Location)
				return nil
			})
		},
	}
}
