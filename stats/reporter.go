// Package stats reports roster statistics for every activity: current
// participant counts and advisory capacities. The reporter implements
// cron.Runnable so it can be driven by a schedule, and it publishes to
// one or more metrics registries (the local scrape registry, and the
// remote-write push registry when monitoring is configured).
package stats

import (
	"fmt"
	"log/slog"

	"github.com/mergington/activities/metrics"
	"github.com/mergington/activities/registry"
	"github.com/prometheus/client_golang/prometheus"
)

// ActivityLister provides a snapshot of all activities.
type ActivityLister interface {
	List() map[string]registry.Activity
}

// rosterGauges holds the per-registry gauge vectors.
type rosterGauges struct {
	participants metrics.GaugeVec
	capacity     metrics.GaugeVec
}

// RosterReporter publishes per-activity participant and capacity gauges.
type RosterReporter struct {
	logger *slog.Logger
	lister ActivityLister
	gauges []rosterGauges
}

// NewRosterReporter creates a reporter that publishes roster gauges to
// every given metrics registry.
func NewRosterReporter(logger *slog.Logger, lister ActivityLister, registries ...metrics.Registry) (*RosterReporter, error) {
	r := &RosterReporter{
		logger: logger,
		lister: lister,
	}

	for _, reg := range registries {
		participants, err := reg.NewGaugeVec(prometheus.GaugeOpts{
			Name: "activity_participants",
			Help: "Current number of participants signed up for an activity.",
		}, []string{"activity"})
		if err != nil {
			return nil, fmt.Errorf("creating participants gauge: %w", err)
		}

		capacity, err := reg.NewGaugeVec(prometheus.GaugeOpts{
			Name: "activity_max_participants",
			Help: "Advisory capacity of an activity.",
		}, []string{"activity"})
		if err != nil {
			return nil, fmt.Errorf("creating capacity gauge: %w", err)
		}

		r.gauges = append(r.gauges, rosterGauges{
			participants: participants,
			capacity:     capacity,
		})
	}

	return r, nil
}

// Run snapshots the registry and updates every gauge. It implements
// cron.Runnable.
func (r *RosterReporter) Run() error {
	activities := r.lister.List()

	total := 0
	for name, act := range activities {
		labels := prometheus.Labels{"activity": name}
		for _, g := range r.gauges {
			g.participants.With(labels).Set(float64(len(act.Participants)))
			g.capacity.With(labels).Set(float64(act.MaxParticipants))
		}
		total += len(act.Participants)
	}

	r.logger.Info("roster stats reported",
		"activities", len(activities),
		"total_participants", total,
	)
	return nil
}
