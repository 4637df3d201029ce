// Package game wires the simulation pool, field sampler, camera, telemetry
// and interactive spawn UI into the update/draw loop.
package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orrery/body"
	"github.com/pthm-cable/orrery/camera"
	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/field"
	"github.com/pthm-cable/orrery/sim"
	"github.com/pthm-cable/orrery/telemetry"
)

// Options configures game initialization.
type Options struct {
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete simulation state.
type Game struct {
	pool    *sim.Pool
	sampler *field.Sampler
	cam     *camera.Camera

	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector

	drawer  *Drawer
	spawn   spawnController
	heatmap heatmapView

	tick           int32
	dt             float64
	paused         bool
	stepsPerUpdate int
	logStats       bool
	showDebug      bool
	headless       bool

	panning bool
	panLast pointf

	width, height float64

	massBuf []float64
}

// pointf is a screen-space point. Kept separate from raylib's vector type so
// headless code paths never touch the graphics stack.
type pointf struct {
	X, Y float64
}

// NewGameWithOptions creates a game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	g := &Game{
		pool:           sim.FromConfig(cfg),
		sampler:        field.NewSampler(cfg.Heatmap.CellSize, cfg.Heatmap.UpdateInterval),
		dt:             cfg.Physics.DT,
		stepsPerUpdate: opts.StepsPerUpdate,
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		width:          float64(cfg.Screen.Width),
		height:         float64(cfg.Screen.Height),
	}

	g.cam = camera.New(g.width, g.height, cfg.Physics.SystemScale, cfg.Camera.MinZoom, cfg.Camera.MaxZoom)

	statsWindowSec := opts.StatsWindowSec
	if statsWindowSec <= 0 {
		statsWindowSec = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindowSec, g.dt)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output directory", "dir", opts.OutputDir, "error", err)
	} else {
		g.outputManager = om
		if err := g.outputManager.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
	}

	if !opts.Headless {
		g.drawer = NewDrawer(cfg)
	}

	return g
}

// config returns the global configuration.
func (g *Game) config() *config.Config {
	return config.Cfg()
}

// Update runs input handling and simulation ticks for one frame.
func (g *Game) Update() {
	g.handleInput()

	if !g.paused {
		for i := 0; i < g.stepsPerUpdate; i++ {
			g.simulationStep()
		}
	}

	g.perfCollector.RecordFrame()
}

// UpdateHeadless runs simulation ticks without any rendering or input.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep advances the simulation by one tick: collision and force
// resolution, field sampling, then integration.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseStep)
	rep := g.pool.Step()

	g.perfCollector.StartPhase(telemetry.PhaseField)
	g.sampler.Update(g.dt, g.pool, g.view())

	g.perfCollector.StartPhase(telemetry.PhaseIntegrate)
	g.pool.Integrate(g.dt)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	g.collector.Record(rep)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// view describes the current viewport for field sampling.
func (g *Game) view() field.View {
	return field.View{
		Center: g.cam.Center,
		Zoom:   g.cam.Zoom,
		Scale:  g.cam.Scale,
		Width:  int(g.width),
		Height: int(g.height),
	}
}

// flushTelemetry emits window stats when the stats window elapses.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	masses := g.massBuf[:0]
	var kinetic float64
	g.pool.Each(func(_ ecs.Entity, b *body.Body) {
		masses = append(masses, b.Mass)
		kinetic += 0.5 * b.Mass * (b.Vel.X*b.Vel.X + b.Vel.Y*b.Vel.Y)
	})
	g.massBuf = masses

	stats := g.collector.Flush(g.tick, g.pool.Len(), masses, kinetic)
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// AddBody inserts a body into the pool and counts it as a spawn.
func (g *Game) AddBody(b body.Body) {
	g.pool.Add(b)
	g.collector.RecordSpawn()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Pool exposes the simulation pool, primarily for seeding scenarios.
func (g *Game) Pool() *sim.Pool {
	return g.pool
}

// Unload releases workers, output files and GPU resources.
func (g *Game) Unload() {
	g.pool.Close()

	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}

	if !g.headless {
		g.heatmap.unload()
	}
}
