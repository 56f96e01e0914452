// Package queue defines the change event payload exchanged over the message
// broker, the publisher that feeds it from planner change events and the
// consumer that writes it to the change log.
package queue

import (
	"time"

	"github.com/iliyamo/cinema-planner/internal/planner"
)

// PlannerChangedEvent is published after every committed planner mutation.
// It carries counts and names only, enough for downstream consumers to log
// or refresh without reading the encrypted data file.
type PlannerChangedEvent struct {
	EventID    string   `json:"event_id"`
	OccurredAt string   `json:"occurred_at"`
	Cinemas    int      `json:"cinemas"`
	Movies     int      `json:"movies"`
	Tags       int      `json:"tags"`
	TagLabels  []string `json:"tag_labels"`
}

// NewPlannerChangedEvent flattens a planner event into its wire form.
func NewPlannerChangedEvent(ev planner.Event) PlannerChangedEvent {
	labels := make([]string, 0, ev.Tags)
	if ev.Snapshot != nil {
		for _, t := range ev.Snapshot.Tags().All() {
			labels = append(labels, t.Label())
		}
	}
	return PlannerChangedEvent{
		EventID:    ev.ID,
		OccurredAt: ev.At.UTC().Format(time.RFC3339),
		Cinemas:    ev.Cinemas,
		Movies:     ev.Movies,
		Tags:       ev.Tags,
		TagLabels:  labels,
	}
}
