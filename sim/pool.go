// Package sim implements the body pool: an ECS-backed set of gravitational
// bodies advanced by a two-phase tick. Forces and collisions are computed
// against an immutable snapshot, then resolved and applied in a single
// buffered pass so every body observes the same pre-tick state.
package sim

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orrery/body"
	"github.com/pthm-cable/orrery/config"
)

// Rules holds the collision resolution thresholds.
type Rules struct {
	// MergeAngleTolerance is the radians within 0 or pi that a deflection
	// counts as head-on.
	MergeAngleTolerance float64
	// MergeImpulseFloor merges any contact whose impulse falls below it.
	MergeImpulseFloor float64
	// AbsorbBias removes the affected body when its mass share is below it.
	AbsorbBias float64
	// DominantBias leaves the pair untouched when the affected body's mass
	// share is at or above it.
	DominantBias float64
}

// Options configures a new pool.
type Options struct {
	Tuning body.Tuning
	Rules  Rules
	// Workers is the worker pool size for the force pass. 0 uses GOMAXPROCS.
	Workers int
	// Threshold is the minimum body count before workers engage. 0 uses a
	// default suited to the per-pair cost.
	Threshold int
}

// Pool owns the bodies of one simulated system.
type Pool struct {
	world  *ecs.World
	bodies *ecs.Map1[body.Body]
	filter *ecs.Filter1[body.Body]

	tun   body.Tuning
	rules Rules

	parallel *forceState
	scratch  resolveScratch

	count int
}

// New creates an empty pool.
func New(opts Options) *Pool {
	world := ecs.NewWorld()
	p := &Pool{
		world:    world,
		tun:      opts.Tuning,
		rules:    opts.Rules,
		parallel: newForceState(opts.Workers, opts.Threshold),
	}
	p.bodies = ecs.NewMap1[body.Body](p.world)
	p.filter = ecs.NewFilter1[body.Body](p.world)
	return p
}

// FromConfig creates a pool with tuning and rules taken from cfg.
func FromConfig(cfg *config.Config) *Pool {
	return New(Options{
		Tuning: body.Tuning{
			G:       cfg.Physics.G,
			Scale:   cfg.Physics.SystemScale,
			Damping: cfg.Physics.CollisionDampening,
		},
		Rules: Rules{
			MergeAngleTolerance: cfg.Physics.MergeAngleTolerance,
			MergeImpulseFloor:   cfg.Physics.MergeImpulseFloor,
			AbsorbBias:          cfg.Physics.AbsorbBias,
			DominantBias:        cfg.Physics.DominantBias,
		},
		Workers:   cfg.Parallel.Workers,
		Threshold: cfg.Parallel.Threshold,
	})
}

// Tuning returns the pool's physical constants.
func (p *Pool) Tuning() body.Tuning { return p.tun }

// Add inserts a body and returns its entity handle.
func (p *Pool) Add(b body.Body) ecs.Entity {
	e := p.bodies.NewEntity(&b)
	p.count++
	return e
}

// Remove deletes a body. Removing an already-dead entity is a no-op.
func (p *Pool) Remove(e ecs.Entity) {
	if !p.world.Alive(e) {
		return
	}
	p.world.RemoveEntity(e)
	p.count--
}

// Len returns the number of live bodies.
func (p *Pool) Len() int { return p.count }

// Get returns the body for e, or nil if the entity is dead.
func (p *Pool) Get(e ecs.Entity) *body.Body {
	if !p.world.Alive(e) {
		return nil
	}
	return p.bodies.Get(e)
}

// Each calls fn for every live body. fn must not add or remove bodies.
func (p *Pool) Each(fn func(e ecs.Entity, b *body.Body)) {
	query := p.filter.Query()
	for query.Next() {
		fn(query.Entity(), query.Get())
	}
}

// At returns the first body containing the world-space point p.
func (p *Pool) At(pt r2.Vec) (ecs.Entity, bool) {
	var found ecs.Entity
	var ok bool
	query := p.filter.Query()
	for query.Next() {
		if ok {
			continue
		}
		if query.Get().Contains(pt) {
			found = query.Entity()
			ok = true
		}
	}
	return found, ok
}

// Snapshot appends a copy of every live body to dst and returns it.
func (p *Pool) Snapshot(dst []body.Body) []body.Body {
	query := p.filter.Query()
	for query.Next() {
		dst = append(dst, *query.Get())
	}
	return dst
}

// FieldAt returns the summed field strength of all bodies at the given
// world-space point.
func (p *Pool) FieldAt(pt r2.Vec) float64 {
	total := 0.0
	query := p.filter.Query()
	for query.Next() {
		total += query.Get().FieldAt(pt, p.tun.G).Force
	}
	return total
}

// Integrate advances every body by dt. Call after Step so positions move
// under the accelerations the tick accumulated.
func (p *Pool) Integrate(dt float64) {
	query := p.filter.Query()
	for query.Next() {
		query.Get().Integrate(dt)
	}
}

// Close stops the worker pool. The pool must not be stepped afterwards.
func (p *Pool) Close() {
	p.parallel.stopWorkers()
}
