package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tracktor/internal/session"
)

func newJournalCommand(ctx *commandContext) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect or reset journaled corrections",
	}
	journalCmd.AddCommand(newJournalListCommand(ctx))
	journalCmd.AddCommand(newJournalResetCommand(ctx))
	journalCmd.AddCommand(newJournalExportsCommand(ctx))
	return journalCmd
}

func newJournalListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List corrections recorded against the current tracking file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, true, func(c context.Context, s *session.Session) error {
				entries, err := s.Corrections(c)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No corrections recorded")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						strconv.Itoa(e.Seq),
						strconv.Itoa(e.VisionID),
						strconv.Itoa(e.Tag),
						fmt.Sprintf("%d-%d", e.From, e.To),
						humanize.Time(e.CreatedAt),
					})
				}
				fmt.Fprintln(out, tableView{
					headers:      []string{"#", "Vision ID", "Tag", "Frames", "Recorded"},
					rows:         rows,
					rightAligned: rightAlign(0, 1, 2),
					footer:       fmt.Sprintf("%d correction(s)", len(entries)),
				}.render())
				return nil
			})
		},
	}
}

func newJournalResetCommand(ctx *commandContext) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard every correction recorded against the current tracking file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("journal reset discards all corrections; rerun with --yes to confirm")
			}
			return ctx.withSession(cmd, false, func(c context.Context, s *session.Session) error {
				removed, err := s.ResetJournal(c)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]int64{"removed": removed})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d correction(s)\n", removed)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

func newJournalExportsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "exports",
		Short: "List snapshots exported from this dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, true, func(c context.Context, s *session.Session) error {
				exports, err := s.Exports(c)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, exports)
				}
				out := cmd.OutOrStdout()
				if len(exports) == 0 {
					fmt.Fprintln(out, "No snapshots exported")
					return nil
				}
				rows := make([][]string, 0, len(exports))
				for _, e := range exports {
					rows = append(rows, []string{
						e.Key,
						e.Driver,
						humanize.Bytes(uint64(e.Size)),
						humanize.Time(e.CreatedAt),
						e.Location,
					})
				}
				fmt.Fprintln(out, tableView{
					headers:      []string{"Key", "Driver", "Size", "Exported", "Location"},
					rows:         rows,
					rightAligned: rightAlign(2),
				}.render())
				return nil
			})
		},
	}
}
