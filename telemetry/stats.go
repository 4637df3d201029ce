package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Bodies int `csv:"bodies"`

	// Events during window
	Spawns   int `csv:"spawns"`
	Contacts int `csv:"contacts"`
	Bounces  int `csv:"bounces"`
	Merges   int `csv:"merges"`
	Absorbed int `csv:"absorbed"`
	Skipped  int `csv:"skipped"`

	// System energy (sampled at window end)
	KineticEnergy float64 `csv:"kinetic_energy"`

	// Mass distribution (sampled at window end)
	TotalMass float64 `csv:"total_mass"`
	MassMean  float64 `csv:"mass_mean"`
	MassStd   float64 `csv:"mass_std"`
	MassP10   float64 `csv:"mass_p10"`
	MassP50   float64 `csv:"mass_p50"`
	MassP90   float64 `csv:"mass_p90"`
	MassMax   float64 `csv:"mass_max"`
}

// ComputeMassStats calculates total, mean, deviation and percentiles from
// body masses. The input slice is not modified.
func ComputeMassStats(masses []float64) (total, mean, std, p10, p50, p90, max float64) {
	n := len(masses)
	if n == 0 {
		return 0, 0, 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, masses)
	sort.Float64s(sorted)

	for _, m := range sorted {
		total += m
	}
	mean = stat.Mean(sorted, nil)
	if n > 1 {
		std = stat.StdDev(sorted, nil)
	}
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	max = sorted[n-1]

	return total, mean, std, p10, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("bodies", s.Bodies),
		slog.Int("spawns", s.Spawns),
		slog.Int("contacts", s.Contacts),
		slog.Int("bounces", s.Bounces),
		slog.Int("merges", s.Merges),
		slog.Int("absorbed", s.Absorbed),
		slog.Int("skipped", s.Skipped),
		slog.Float64("kinetic_energy", s.KineticEnergy),
		slog.Float64("total_mass", s.TotalMass),
		slog.Float64("mass_mean", s.MassMean),
		slog.Float64("mass_std", s.MassStd),
		slog.Float64("mass_p10", s.MassP10),
		slog.Float64("mass_p50", s.MassP50),
		slog.Float64("mass_p90", s.MassP90),
		slog.Float64("mass_max", s.MassMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"bodies", s.Bodies,
		"spawns", s.Spawns,
		"contacts", s.Contacts,
		"bounces", s.Bounces,
		"merges", s.Merges,
		"absorbed", s.Absorbed,
		"skipped", s.Skipped,
		"kinetic_energy", s.KineticEnergy,
		"total_mass", s.TotalMass,
		"mass_mean", s.MassMean,
		"mass_std", s.MassStd,
		"mass_p10", s.MassP10,
		"mass_p50", s.MassP50,
		"mass_p90", s.MassP90,
		"mass_max", s.MassMax,
	)
}
