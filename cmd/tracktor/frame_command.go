package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tracktor/internal/session"
	"tracktor/internal/tracks"
)

func newFrameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "frame <index>",
		Short: "Show the vision tracks of a frame with their identities",
		Long:  "Frames are zero-based. Each vision box is listed with the RFID tag it currently carries.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || frame < 0 {
				return fmt.Errorf("invalid frame %q: must be a non-negative whole number", args[0])
			}
			return ctx.withSession(cmd, true, func(_ context.Context, s *session.Session) error {
				view, ok := s.Frame(frame)
				if ctx.jsonOutput() {
					return writeJSON(cmd, struct {
						tracks.FrameView
						Present  bool `json:"present"`
						Modified bool `json:"modified"`
					}{view, ok, s.Store().Modified(frame)})
				}
				out := cmd.OutOrStdout()
				if !ok {
					fmt.Fprintf(out, "Frame %d: nothing to show\n", frame)
					return nil
				}
				renderFrame(cmd, s, view)
				return nil
			})
		},
	}
}

func renderFrame(cmd *cobra.Command, s *session.Session, view tracks.FrameView) {
	out := cmd.OutOrStdout()
	status := ""
	if s.Store().Modified(view.Frame) {
		status = " (corrected)"
	}
	fmt.Fprintf(out, "Frame %d%s\n", view.Frame, status)
	if len(view.Matches) == 0 {
		fmt.Fprintln(out, "No vision tracks")
	} else {
		rows := make([][]string, 0, len(view.Matches))
		for _, m := range view.Matches {
			rows = append(rows, []string{
				strconv.Itoa(m.Vision.VisionID),
				m.Vision.Box.String(),
				m.Label().String(),
			})
		}
		fmt.Fprintln(out, tableView{
			headers:      []string{"Vision ID", "Box", "Tag"},
			rows:         rows,
			rightAligned: rightAlign(0),
		}.render())
	}
	for _, a := range view.Ambiguities {
		fmt.Fprintf(out, "Warning: %s at %s\n", strings.ReplaceAll(a.Kind, "_", " "), a.Box)
	}
}
