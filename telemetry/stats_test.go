package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/orrery/sim"
)

func TestComputeMassStats(t *testing.T) {
	masses := []float64{3, 1, 2, 4, 5, 6, 7, 8, 9, 10}
	total, mean, std, p10, p50, p90, max := ComputeMassStats(masses)

	if math.Abs(total-55) > 0.001 {
		t.Errorf("total = %v, want 55", total)
	}
	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	if std <= 0 {
		t.Errorf("std = %v, want > 0", std)
	}
	// Empirical quantiles pick the smallest sample at or past the cutoff.
	if p10 != 1 {
		t.Errorf("p10 = %v, want 1", p10)
	}
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p90 != 9 {
		t.Errorf("p90 = %v, want 9", p90)
	}
	if max != 10 {
		t.Errorf("max = %v, want 10", max)
	}

	// Input order is preserved.
	if masses[0] != 3 {
		t.Error("input slice was reordered")
	}
}

func TestComputeMassStatsEmpty(t *testing.T) {
	total, mean, std, p10, p50, p90, max := ComputeMassStats(nil)
	if total != 0 || mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 || max != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeMassStatsSingle(t *testing.T) {
	total, mean, std, _, p50, _, max := ComputeMassStats([]float64{7})
	if total != 7 || mean != 7 || p50 != 7 || max != 7 {
		t.Errorf("single element stats: total=%v mean=%v p50=%v max=%v", total, mean, p50, max)
	}
	if std != 0 {
		t.Errorf("single element std = %v, want 0", std)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(5.0, 0.1)

	if c.WindowDurationTicks() != 50 {
		t.Fatalf("window ticks = %d, want 50", c.WindowDurationTicks())
	}
	if c.ShouldFlush(49) {
		t.Error("flushed before window elapsed")
	}
	if !c.ShouldFlush(50) {
		t.Error("did not flush at window boundary")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.5)

	c.Record(sim.Report{Contacts: 4, Bounces: 2, Merges: 1, Absorbed: 1, Skipped: 1})
	c.Record(sim.Report{Contacts: 2, Bounces: 2})
	c.RecordSpawn()

	stats := c.Flush(2, 3, []float64{10, 20, 30}, 150)

	if stats.Contacts != 6 || stats.Bounces != 4 || stats.Merges != 1 ||
		stats.Absorbed != 1 || stats.Skipped != 1 || stats.Spawns != 1 {
		t.Errorf("flushed stats = %+v", stats)
	}
	if stats.KineticEnergy != 150 {
		t.Errorf("kinetic energy = %v, want 150", stats.KineticEnergy)
	}
	if stats.Bodies != 3 {
		t.Errorf("bodies = %d, want 3", stats.Bodies)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("sim time = %v, want 1.0", stats.SimTimeSec)
	}
	if math.Abs(stats.TotalMass-60) > 1e-9 {
		t.Errorf("total mass = %v, want 60", stats.TotalMass)
	}

	// Counters reset after a flush.
	next := c.Flush(4, 3, nil, 0)
	if next.Contacts != 0 || next.Bounces != 0 || next.Merges != 0 || next.Spawns != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 2 {
		t.Errorf("window start = %d, want 2", next.WindowStartTick)
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0.001, 1.0)
	if c.WindowDurationTicks() != 1 {
		t.Errorf("window ticks = %d, want clamp to 1", c.WindowDurationTicks())
	}
}
