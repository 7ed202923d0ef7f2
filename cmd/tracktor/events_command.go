package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tracktor/internal/events"
	"tracktor/internal/session"
)

var tabAliases = map[string]string{
	"missing": events.TabMissingData,
	"reads":   events.TabReads,
}

func resolveTab(arg string) string {
	key := strings.ToLower(strings.TrimSpace(arg))
	if tab, ok := tabAliases[key]; ok {
		return tab
	}
	return arg
}

func newEventsCommand(ctx *commandContext) *cobra.Command {
	var after, before int

	cmd := &cobra.Command{
		Use:   "events [missing|reads]",
		Short: "List navigation events or step to the next one",
		Long: "Without a tab every tab is listed. --after N prints the first event after frame N,\n" +
			"--before N the last event before it.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stepping := cmd.Flags().Changed("after") || cmd.Flags().Changed("before")
			if stepping && len(args) == 0 {
				return fmt.Errorf("--after and --before need a tab")
			}
			if cmd.Flags().Changed("after") && cmd.Flags().Changed("before") {
				return fmt.Errorf("use either --after or --before")
			}
			return ctx.withSession(cmd, true, func(_ context.Context, s *session.Session) error {
				nav := s.Navigator()
				if stepping {
					tab := resolveTab(args[0])
					var (
						ev    events.Event
						found bool
						err   error
					)
					if cmd.Flags().Changed("after") {
						ev, found, err = nav.Next(tab, after)
					} else {
						ev, found, err = nav.Prev(tab, before)
					}
					if err != nil {
						return err
					}
					if ctx.jsonOutput() {
						return writeJSON(cmd, struct {
							Found bool          `json:"found"`
							Event *events.Event `json:"event,omitempty"`
						}{found, eventPtr(ev, found)})
					}
					if !found {
						fmt.Fprintln(cmd.OutOrStdout(), "No further events")
						return nil
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", ev.Frame, ev.Label)
					return nil
				}

				tabs := nav.Tabs()
				if len(args) == 1 {
					tabs = []string{resolveTab(args[0])}
				}
				listing := make(map[string][]events.Event, len(tabs))
				for _, tab := range tabs {
					evs, err := nav.Events(tab)
					if err != nil {
						return err
					}
					listing[tab] = evs
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, listing)
				}
				out := cmd.OutOrStdout()
				for _, tab := range tabs {
					evs := listing[tab]
					rows := make([][]string, 0, len(evs))
					for _, ev := range evs {
						rows = append(rows, []string{strconv.Itoa(ev.Frame), ev.Label})
					}
					fmt.Fprintln(out, events.Title(tab))
					if len(rows) == 0 {
						fmt.Fprintln(out, "  none")
						continue
					}
					fmt.Fprintln(out, tableView{
						headers:      []string{"Frame", "Event"},
						rows:         rows,
						rightAligned: rightAlign(0),
					}.render())
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&after, "after", 0, "Print the first event after this frame")
	cmd.Flags().IntVar(&before, "before", 0, "Print the last event before this frame")
	return cmd
}

func eventPtr(ev events.Event, found bool) *events.Event {
	if !found {
		return nil
	}
	return &ev
}
