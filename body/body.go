// Package body implements the physics primitives for a single gravitational
// body: pairwise attraction, collision evaluation, point-field sampling and
// semi-implicit Euler integration.
package body

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Tuning holds the physical constants shared by every body in a pool.
type Tuning struct {
	// G is the gravitational constant.
	G float64
	// Scale divides collision impulses so world-unit velocities stay
	// commensurate with the scaled viewport.
	Scale float64
	// Damping attenuates collision impulses.
	Damping float64
}

// Body is a point mass with a collision radius. It is stored directly as an
// ECS component; position, velocity and pending acceleration are plain vectors
// so the pool can snapshot bodies by value.
type Body struct {
	Name   string
	Mass   float64
	Radius float64
	Color  color.RGBA

	Pos   r2.Vec
	Vel   r2.Vec
	Accel r2.Vec
}

// CollisionInfo describes one overlapping, approaching pair from the
// perspective of the affected body.
type CollisionInfo struct {
	// Granularity is the fragment count a shatter resolution would emit.
	// Shattering is not implemented; the field is carried for telemetry.
	Granularity int
	// Bias is the affected body's share of the pair's total mass.
	Bias float64
	// Impulse is the scalar impulse magnitude applied along Reflect.
	Impulse float64
	// Reflect is the deflection direction of the affected body.
	Reflect r2.Vec
}

// GravityInfo is the field contribution of a single body at a sample point.
type GravityInfo struct {
	Force float64
	Dir   r2.Vec
}

// New returns a body at rest with no pending acceleration. Mass and radius
// must be positive; the gravity and collision formulas are undefined
// otherwise.
func New(name string, mass, radius float64, col color.RGBA, pos r2.Vec) (Body, error) {
	if mass <= 0 {
		return Body{}, fmt.Errorf("body %q: non-positive mass %v", name, mass)
	}
	if radius <= 0 {
		return Body{}, fmt.Errorf("body %q: non-positive radius %v", name, radius)
	}
	return Body{Name: name, Mass: mass, Radius: radius, Color: col, Pos: pos}, nil
}

// MustNew is New for parameters known valid at the call site. It panics on
// invalid input.
func MustNew(name string, mass, radius float64, col color.RGBA, pos r2.Vec) Body {
	b, err := New(name, mass, radius, col, pos)
	if err != nil {
		panic(err)
	}
	return b
}

// GravityTo returns the acceleration this body experiences toward other.
// The magnitude is G*other.Mass/dist^2; coincident bodies contribute nothing.
func (b *Body) GravityTo(other *Body, g float64) r2.Vec {
	d := r2.Sub(other.Pos, b.Pos)
	distSqr := r2.Norm2(d)
	if distSqr == 0 {
		return r2.Vec{}
	}
	force := g * other.Mass / distSqr
	return r2.Scale(force, r2.Unit(d))
}

// FieldAt returns the field strength and direction this body exerts at point
// p. The squared distance is floored at the body's squared radius so samples
// inside the body saturate instead of diverging. The magnitude is mass
// independent; the sampler visualises well shape, not true acceleration.
func (b *Body) FieldAt(p r2.Vec, g float64) GravityInfo {
	d := r2.Sub(p, b.Pos)
	distSqr := r2.Norm2(d)
	if rr := b.Radius * b.Radius; distSqr < rr {
		distSqr = rr
	}
	dist := math.Sqrt(distSqr)
	return GravityInfo{
		Force: g / distSqr,
		Dir:   r2.Scale(1/dist, d),
	}
}

// Collide evaluates the pair (b, other) from b's perspective. It reports
// false when the bodies do not overlap or are separating.
//
// The collision normal keeps its inverse-distance weighting: the relative
// position is divided by the squared separation, so closer pairs produce a
// longer normal and a stronger normal velocity. Downstream resolution depends
// on that weighting.
func (b *Body) Collide(other *Body, tun Tuning) (CollisionInfo, bool) {
	relVel := r2.Sub(b.Vel, other.Vel)
	relPos := r2.Sub(b.Pos, other.Pos)
	relPosMag := r2.Norm2(relPos)

	dist := math.Sqrt(relPosMag)
	intersection := b.Radius + other.Radius - dist
	if intersection < 0 {
		return CollisionInfo{}, false
	}

	bias := b.Mass / (b.Mass + other.Mass)

	// Coincident centers have no resolvable normal. Report the overlap with
	// zero impulse so resolution falls through to merge or absorb.
	if relPosMag == 0 {
		return CollisionInfo{Granularity: defaultGranularity, Bias: bias}, true
	}

	colNormal := r2.Scale(1/relPosMag, relPos)

	relVelN := r2.Dot(relVel, colNormal)
	if relVelN >= 0 {
		return CollisionInfo{}, false
	}

	impulse := -2 * relVelN / (1/b.Mass + 1/other.Mass)
	impulse *= other.Mass / b.Mass
	impulse *= tun.Damping
	impulse /= tun.Scale

	// relVelN < 0 guarantees a nonzero relative velocity.
	reflection := r2.Add(r2.Scale(-1, r2.Unit(relVel)), r2.Scale(2*relVelN, colNormal))

	return CollisionInfo{
		Granularity: defaultGranularity,
		Bias:        bias,
		Impulse:     impulse,
		Reflect:     reflection,
	}, true
}

// defaultGranularity is the fragment count recorded on every collision.
const defaultGranularity = 10

// Contains reports whether p lies within the body's radius.
func (b *Body) Contains(p r2.Vec) bool {
	return r2.Norm2(r2.Sub(p, b.Pos)) <= b.Radius*b.Radius
}

// AddAccel accumulates a pending acceleration.
func (b *Body) AddAccel(a r2.Vec) {
	b.Accel = r2.Add(b.Accel, a)
}

// AddForce accumulates a pending force, dividing by mass.
func (b *Body) AddForce(f r2.Vec) {
	b.Accel = r2.Add(b.Accel, r2.Scale(1/b.Mass, f))
}

// Integrate advances the body by dt using semi-implicit Euler: velocity
// absorbs the pending acceleration first, then position absorbs the updated
// velocity. Pending acceleration is cleared.
func (b *Body) Integrate(dt float64) {
	b.Vel = r2.Add(b.Vel, r2.Scale(dt, b.Accel))
	b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
	b.Accel = r2.Vec{}
}
