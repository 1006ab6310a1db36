// Package schedule implements the publication timing policy: decide
// when to emit a state update given the rate-limit floor, change
// detection, and the forced heartbeat. Pure logic; time is always
// injected via time.Time parameters.
package schedule

import (
	"time"

	"github.com/sweeney/multisensor/internal/sensor"
)

const (
	// SoftInterval is the minimum spacing between scheduler
	// evaluations, and therefore between publishes. It bounds the
	// publish rate on a noisy input.
	SoftInterval = 3000 * time.Millisecond

	// HardInterval is the maximum spacing between publishes. A
	// publish is forced once it elapses so a downstream consumer can
	// tell "silent because unchanged" from "node is dead".
	HardInterval = 30000 * time.Millisecond
)

// Scheduler holds the publication state: the last-published snapshot
// and the soft and hard deadlines. The zero previous snapshot is
// all-undefined, so the first real reading always differs and is
// published at the first due evaluation.
type Scheduler struct {
	previous     sensor.Snapshot
	softDeadline time.Time
	hardDeadline time.Time
}

// New creates a Scheduler whose first evaluation is due immediately
// after start.
func New(start time.Time) *Scheduler {
	return &Scheduler{
		softDeadline: start,
		hardDeadline: start,
	}
}

// Due reports whether the soft deadline has elapsed. The caller's
// cycle consults Evaluate only when Due returns true; this is what
// enforces the rate-limit floor.
func (s *Scheduler) Due(now time.Time) bool {
	return now.After(s.softDeadline)
}

// Evaluate decides whether the snapshot should be published now.
// A publish happens iff any field changed since the last published
// snapshot (undefined compares equal only to undefined) or the hard
// deadline elapsed. On publish the snapshot becomes the new baseline
// and the hard deadline is pushed out; the soft deadline is pushed
// out regardless of the decision.
func (s *Scheduler) Evaluate(snap sensor.Snapshot, now time.Time) bool {
	changed := !snap.Equal(s.previous)
	forced := now.After(s.hardDeadline)

	publish := changed || forced
	if publish {
		s.previous = snap
		s.hardDeadline = now.Add(HardInterval)
	}
	s.softDeadline = now.Add(SoftInterval)
	return publish
}

// Previous returns the last published snapshot.
func (s *Scheduler) Previous() sensor.Snapshot {
	return s.previous
}

// SoftDeadline returns the next allowed evaluation time.
func (s *Scheduler) SoftDeadline() time.Time {
	return s.softDeadline
}

// HardDeadline returns the next forced publish time.
func (s *Scheduler) HardDeadline() time.Time {
	return s.hardDeadline
}
