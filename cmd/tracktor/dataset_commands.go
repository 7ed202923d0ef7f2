package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tracktor/internal/session"
)

func newTagsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the known RFID tags of the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, true, func(_ context.Context, s *session.Session) error {
				tags := s.Dataset().Tags
				if ctx.jsonOutput() {
					return writeJSON(cmd, tags)
				}
				out := cmd.OutOrStdout()
				if len(tags) == 0 {
					fmt.Fprintln(out, "No tags registered")
					return nil
				}
				for _, tag := range tags {
					fmt.Fprintln(out, tag)
				}
				return nil
			})
		},
	}
}

func newReadersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "readers",
		Short: "List RFID reader zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, true, func(_ context.Context, s *session.Session) error {
				readers := s.Dataset().Readers
				if ctx.jsonOutput() {
					return writeJSON(cmd, readers)
				}
				rows := make([][]string, 0, len(readers))
				for _, r := range readers {
					rows = append(rows, []string{strconv.Itoa(r.ReaderID), r.Box.String()})
				}
				fmt.Fprintln(cmd.OutOrStdout(), tableView{
					headers:      []string{"Reader", "Zone"},
					rows:         rows,
					rightAligned: rightAlign(0),
				}.render())
				return nil
			})
		},
	}
}
