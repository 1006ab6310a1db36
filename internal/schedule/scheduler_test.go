package schedule

import (
	"testing"
	"time"

	"github.com/sweeney/multisensor/internal/sensor"
)

func reading(v int) sensor.Reading {
	return sensor.Reading{Value: v, Valid: true}
}

// snapHT builds a snapshot with humidity, temperature and switch 0
// defined.
func snapHT(hum, temp, sw0 int, t time.Time) sensor.Snapshot {
	return sensor.Snapshot{
		Humidity:    reading(hum),
		Temperature: reading(temp),
		Switches:    [sensor.NumSwitches]sensor.Reading{reading(sw0)},
		Time:        t,
	}
}

func TestNew(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New(start)

	if s.Due(start) {
		t.Error("should not be due exactly at start")
	}
	if !s.Due(start.Add(time.Millisecond)) {
		t.Error("should be due immediately after start")
	}
	if !s.Previous().Equal(sensor.Snapshot{}) {
		t.Error("previous should start all-undefined")
	}
}

func TestFirstReadingAlwaysPublishes(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New(start)

	now := start.Add(time.Second)
	if !s.Evaluate(snapHT(50, 20, 0, now), now) {
		t.Error("first real reading should publish: it differs from the undefined baseline")
	}
}

func TestNoRepublishWithinHardInterval(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New(start)

	now := start.Add(time.Second)
	if !s.Evaluate(snapHT(50, 20, 0, now), now) {
		t.Fatal("expected first publish")
	}

	// Repeated identical snapshots at each soft tick: no publish
	// until the hard deadline elapses.
	for i := 1; i <= 9; i++ {
		at := now.Add(time.Duration(i) * (SoftInterval + time.Millisecond))
		if at.After(s.HardDeadline()) {
			break
		}
		if s.Evaluate(snapHT(50, 20, 0, at), at) {
			t.Errorf("unexpected publish of unchanged snapshot at %v", at)
		}
	}
}

func TestHeartbeatForcesPublish(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New(start)

	var published []time.Time
	// Evaluate an unchanging snapshot once every soft interval for
	// 93 seconds.
	for i := 1; i <= 31; i++ {
		at := start.Add(time.Duration(i) * SoftInterval)
		if s.Evaluate(snapHT(50, 20, 0, at), at) {
			published = append(published, at)
		}
	}

	// First publish at 3s (change from baseline), then one forced
	// heartbeat roughly every 30s: 36s and 69s.
	want := []time.Time{
		start.Add(3 * time.Second),
		start.Add(36 * time.Second),
		start.Add(69 * time.Second),
	}
	if len(published) != len(want) {
		t.Fatalf("expected %d publishes, got %d (%v)", len(want), len(published), published)
	}
	for i := range want {
		if !published[i].Equal(want[i]) {
			t.Errorf("publish %d: got %v, want %v", i, published[i], want[i])
		}
	}
}

func TestChangePublishesImmediatelyWhenDue(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New(start)

	now := start.Add(time.Second)
	s.Evaluate(snapHT(50, 20, 0, now), now)

	// Well inside the hard interval; the change alone triggers the
	// publish.
	at := now.Add(SoftInterval + time.Millisecond)
	if !s.Evaluate(snapHT(50, 20, 1, at), at) {
		t.Error("changed snapshot should publish before the hard deadline")
	}
}

func TestTiltChangeWithinSoftInterval(t *testing.T) {
	// Scenario: publish at t=0, tilt trips at t=1000ms. The change
	// must not surface before the soft deadline at t=3000ms, and
	// must surface at the first due evaluation after it.
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New(t0.Add(-time.Millisecond))

	if !s.Evaluate(snapHT(50, 20, 0, t0), t0) {
		t.Fatal("expected publish at t=0")
	}

	if s.Due(t0.Add(1000 * time.Millisecond)) {
		t.Error("scheduler must not be consulted at t=1000ms")
	}
	if s.Due(t0.Add(3000 * time.Millisecond)) {
		t.Error("soft deadline is exclusive: t=3000ms is not yet due")
	}

	at := t0.Add(3001 * time.Millisecond)
	if !s.Due(at) {
		t.Fatal("expected due after soft deadline")
	}
	if !s.Evaluate(snapHT(50, 20, 1, at), at) {
		t.Error("tilt change should publish at the first due evaluation")
	}
}

func TestFirstEvaluationIsForced(t *testing.T) {
	// The hard deadline starts in the past, so even an all-undefined
	// first snapshot (sensor failure on the first cycle) publishes
	// the sentinel state rather than staying silent.
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New(start)

	now := start.Add(time.Second)
	if !s.Evaluate(sensor.Snapshot{Time: now}, now) {
		t.Error("first evaluation should be forced by the initial hard deadline")
	}
}

func TestUndefinedComparesEqualToUndefined(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New(start)

	// Establish a real baseline, then fail the sensor: the
	// transition to undefined publishes once, and repeated undefined
	// snapshots stay silent until the next heartbeat.
	now := start.Add(time.Second)
	if !s.Evaluate(snapHT(50, 20, 0, now), now) {
		t.Fatal("expected publish of first real reading")
	}

	at := now.Add(SoftInterval + time.Millisecond)
	if !s.Evaluate(sensor.Snapshot{Time: at}, at) {
		t.Error("transition to undefined should publish")
	}
	at = at.Add(SoftInterval + time.Millisecond)
	if s.Evaluate(sensor.Snapshot{Time: at}, at) {
		t.Error("repeated undefined snapshot should not publish again")
	}
}

func TestSoftDeadlineAdvancesWithoutPublish(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New(start)

	now := start.Add(time.Second)
	s.Evaluate(snapHT(50, 20, 0, now), now)

	at := now.Add(SoftInterval + time.Millisecond)
	if s.Evaluate(snapHT(50, 20, 0, at), at) {
		t.Fatal("unchanged snapshot should not publish")
	}
	if !s.SoftDeadline().Equal(at.Add(SoftInterval)) {
		t.Errorf("soft deadline should advance on every evaluation: got %v", s.SoftDeadline())
	}
	// Hard deadline untouched by a no-publish evaluation.
	if !s.HardDeadline().Equal(now.Add(HardInterval)) {
		t.Errorf("hard deadline should only move on publish: got %v", s.HardDeadline())
	}
}

func TestPreviousTracksLastPublished(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New(start)

	now := start.Add(time.Second)
	snap := snapHT(50, 20, 0, now)
	s.Evaluate(snap, now)

	if !s.Previous().Equal(snap) {
		t.Error("previous should be the last published snapshot")
	}

	// A skipped evaluation leaves the baseline alone.
	at := now.Add(SoftInterval + time.Millisecond)
	s.Evaluate(snapHT(50, 20, 0, at), at)
	if !s.Previous().Equal(snap) {
		t.Error("previous should not move without a publish")
	}
}
