package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tracktor/internal/review"
	"tracktor/internal/session"
)

func newCorrectCommand(ctx *commandContext) *cobra.Command {
	var in review.Input

	cmd := &cobra.Command{
		Use:   "correct",
		Short: "Assign an RFID tag to a vision track over a frame range",
		Long: "Relabels the identity of --vision with --tag in every frame of the range where that\n" +
			"vision id appears. Omitted bounds default to the first or last frame. The correction\n" +
			"is journaled and replayed the next time the dataset is opened.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, false, func(c context.Context, s *session.Session) error {
				applied, err := s.Correct(c, in)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, applied)
				}
				out := cmd.OutOrStdout()
				if !applied.Result.Changed() {
					fmt.Fprintf(out, "Vision id %s does not appear in frames %s; nothing changed\n", in.VisionID, applied.Result.Range)
					return nil
				}
				fmt.Fprintf(out, "Tagged vision id %s as %s in %d frame(s) of %s (%d relabelled, %d added)\n",
					in.VisionID, in.Tag, applied.Result.Frames, applied.Result.Range,
					applied.Result.Overwritten, applied.Result.Appended)
				fmt.Fprintf(out, "Journal entry #%d\n", applied.Entry.Seq)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&in.VisionID, "vision", "", "Vision track id to relabel")
	cmd.Flags().StringVar(&in.Tag, "tag", "", "RFID tag to assign")
	cmd.Flags().StringVar(&in.From, "from", "", "First frame of the range (inclusive)")
	cmd.Flags().StringVar(&in.To, "to", "", "Last frame of the range (inclusive)")
	return cmd
}
