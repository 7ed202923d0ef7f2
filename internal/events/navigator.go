package events

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tracktor/internal/tracks"
)

const (
	// TabMissingData lists rising-edge track count mismatches.
	TabMissingData = "missing data"
	// TabReads lists aligned RFID reads.
	TabReads = "rfid reads"
)

// Source produces the events of one tab.
type Source func() []Event

type tab struct {
	name string
	// source is nil for fixed tabs.
	source Source
	events []Event
}

// Navigator keeps ordered event tabs and their last computed contents.
type Navigator struct {
	tabs []*tab
}

// NewNavigator returns an empty navigator.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// NewReviewNavigator wires the standard tabs: missing data recomputed from
// store, and reads aligned once against the store's sampling times.
// Corrections change neither the reads nor the sampling times.
func NewReviewNavigator(store *tracks.Store, reads []Read) *Navigator {
	nav := NewNavigator()
	nav.Add(TabMissingData, func() []Event { return MissingData(store) })
	nav.AddFixed(TabReads, ReadEvents(Align(reads, store.SampleTimes())))
	return nav
}

// Add registers a tab and computes its events. Adding an existing name
// replaces its source.
func (n *Navigator) Add(name string, source Source) {
	key := normalizeTab(name)
	for _, t := range n.tabs {
		if t.name == key {
			t.source = source
			t.events = source()
			return
		}
	}
	n.tabs = append(n.tabs, &tab{name: key, source: source, events: source()})
}

// AddFixed registers a tab whose events never change. Refresh leaves it alone.
func (n *Navigator) AddFixed(name string, events []Event) {
	fixed := append([]Event(nil), events...)
	key := normalizeTab(name)
	for _, t := range n.tabs {
		if t.name == key {
			t.source, t.events = nil, fixed
			return
		}
	}
	n.tabs = append(n.tabs, &tab{name: key, events: fixed})
}

// Refresh recomputes every tab with a source; call it after a correction.
func (n *Navigator) Refresh() {
	for _, t := range n.tabs {
		if t.source != nil {
			t.events = t.source()
		}
	}
}

// Tabs returns the tab names in registration order.
func (n *Navigator) Tabs() []string {
	out := make([]string, 0, len(n.tabs))
	for _, t := range n.tabs {
		out = append(out, t.name)
	}
	return out
}

// Title returns the display title of a tab name, e.g. "Missing Data".
func Title(name string) string {
	return cases.Title(language.Und).String(normalizeTab(name))
}

// Events returns the current events of the named tab.
func (n *Navigator) Events(name string) ([]Event, error) {
	t, err := n.find(name)
	if err != nil {
		return nil, err
	}
	return append([]Event(nil), t.events...), nil
}

// Next returns the first event of the tab strictly after frame.
func (n *Navigator) Next(name string, frame int) (Event, bool, error) {
	t, err := n.find(name)
	if err != nil {
		return Event{}, false, err
	}
	var (
		best  Event
		found bool
	)
	for _, ev := range t.events {
		if ev.Frame > frame && (!found || ev.Frame < best.Frame) {
			best, found = ev, true
		}
	}
	return best, found, nil
}

// Prev returns the last event of the tab strictly before frame.
func (n *Navigator) Prev(name string, frame int) (Event, bool, error) {
	t, err := n.find(name)
	if err != nil {
		return Event{}, false, err
	}
	var (
		best  Event
		found bool
	)
	for _, ev := range t.events {
		if ev.Frame < frame && (!found || ev.Frame > best.Frame) {
			best, found = ev, true
		}
	}
	return best, found, nil
}

func (n *Navigator) find(name string) (*tab, error) {
	key := normalizeTab(name)
	for _, t := range n.tabs {
		if t.name == key {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown event tab %q", name)
}

func normalizeTab(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
