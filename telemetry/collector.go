package telemetry

import "github.com/pthm-cable/orrery/sim"

// Collector accumulates tick reports within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawns   int
	contacts int
	bounces  int
	merges   int
	absorbed int
	skipped  int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record accumulates one tick's report.
func (c *Collector) Record(rep sim.Report) {
	c.contacts += rep.Contacts
	c.bounces += rep.Bounces
	c.merges += rep.Merges
	c.absorbed += rep.Absorbed
	c.skipped += rep.Skipped
}

// RecordSpawn counts one user-placed body.
func (c *Collector) RecordSpawn() {
	c.spawns++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// masses and kineticEnergy describe the live bodies at window end.
func (c *Collector) Flush(currentTick int32, bodies int, masses []float64, kineticEnergy float64) WindowStats {
	total, mean, std, p10, p50, p90, max := ComputeMassStats(masses)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Bodies: bodies,

		Spawns:   c.spawns,
		Contacts: c.contacts,
		Bounces:  c.bounces,
		Merges:   c.merges,
		Absorbed: c.absorbed,
		Skipped:  c.skipped,

		KineticEnergy: kineticEnergy,

		TotalMass: total,
		MassMean:  mean,
		MassStd:   std,
		MassP10:   p10,
		MassP50:   p50,
		MassP90:   p90,
		MassMax:   max,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawns = 0
	c.contacts = 0
	c.bounces = 0
	c.merges = 0
	c.absorbed = 0
	c.skipped = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
