package sim

import (
	"image/color"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orrery/body"
)

// Report summarises one tick for telemetry.
type Report struct {
	Bodies   int // live bodies at the start of the tick
	Contacts int // overlapping, approaching pairs (counted per perspective)
	Bounces  int // contacts resolved by partial transfer and deflection
	Merges   int // merge pairs synthesised
	Absorbed int // bodies removed by absorption
	Skipped  int // contacts skipped because the affected body dominates
}

// snapshot captures one body's pre-tick state for the force pass.
type snapshot struct {
	Entity ecs.Entity
	Body   body.Body
}

// contact is one collision recorded against a snapshot index.
type contact struct {
	other int
	info  body.CollisionInfo
}

// intent holds everything the force pass computed for one body.
type intent struct {
	grav     r2.Vec
	contacts []contact
}

// outcome is the buffered result of resolving one body's contacts.
type outcome struct {
	mass   float64
	radius float64
	color  color.RGBA
	due    r2.Vec
}

// resolveScratch holds reusable resolution buffers.
type resolveScratch struct {
	outcomes   []outcome
	mergeClaim map[int]struct{}
	mergePairs [][2]int
	removals   map[int]struct{}
	newBodies  []body.Body
}

// Step runs one simulation tick short of integration: forces and collisions
// are computed against a snapshot, then resolved and applied in a buffered
// pass. Positions do not move until Integrate is called.
func (p *Pool) Step() Report {
	ps := p.parallel

	// Phase A: snapshot every body (single-threaded).
	ps.snapshots = ps.snapshots[:0]
	query := p.filter.Query()
	for query.Next() {
		ps.snapshots = append(ps.snapshots, snapshot{
			Entity: query.Entity(),
			Body:   *query.Get(),
		})
	}

	n := len(ps.snapshots)
	rep := Report{Bodies: n}
	if n == 0 {
		return rep
	}

	if cap(ps.intents) < n {
		ps.intents = append(ps.intents[:cap(ps.intents)], make([]intent, n-cap(ps.intents))...)
	}
	ps.intents = ps.intents[:n]

	// Phase B: pairwise forces and collision detection over the snapshot.
	if n < ps.threshold {
		p.computeChunk(0, n)
	} else {
		p.computeParallel(n)
	}

	// Phase C: resolve contacts in snapshot order (single-threaded,
	// preserves determinism), then apply buffered results.
	p.resolve(&rep)
	p.apply(&rep)

	return rep
}

// computeChunk computes gravity and contacts for snapshots [i0, i1).
func (p *Pool) computeChunk(i0, i1 int) {
	ps := p.parallel
	for i := i0; i < i1; i++ {
		affected := &ps.snapshots[i].Body
		out := &ps.intents[i]
		out.grav = r2.Vec{}
		out.contacts = out.contacts[:0]

		for j := range ps.snapshots {
			if j == i {
				continue
			}
			other := &ps.snapshots[j].Body

			out.grav = r2.Add(out.grav, affected.GravityTo(other, p.tun.G))

			if info, ok := affected.Collide(other, p.tun); ok {
				out.contacts = append(out.contacts, contact{other: j, info: info})
			}
		}
	}
}

// resolve walks every body's contacts and decides its fate: absorption,
// merge claim, or partial transfer with deflection. Results are buffered;
// nothing mutates until apply.
func (p *Pool) resolve(rep *Report) {
	ps := p.parallel
	s := &p.scratch

	n := len(ps.snapshots)
	if cap(s.outcomes) < n {
		s.outcomes = make([]outcome, n)
	}
	s.outcomes = s.outcomes[:n]
	if s.mergeClaim == nil {
		s.mergeClaim = make(map[int]struct{})
		s.removals = make(map[int]struct{})
	} else {
		clear(s.mergeClaim)
		clear(s.removals)
	}
	s.mergePairs = s.mergePairs[:0]
	s.newBodies = s.newBodies[:0]

	for i := range ps.snapshots {
		affected := &ps.snapshots[i].Body
		out := &s.outcomes[i]
		*out = outcome{mass: affected.Mass, radius: affected.Radius, color: affected.Color}

		for _, c := range ps.intents[i].contacts {
			rep.Contacts++
			info := c.info
			other := &ps.snapshots[c.other].Body

			// A vastly outmassed body is consumed whole. Its remaining
			// contacts no longer matter.
			if info.Bias < p.rules.AbsorbBias {
				s.removals[i] = struct{}{}
				rep.Absorbed++
				break
			}

			// A vastly dominant body shrugs the contact off untouched.
			if info.Bias >= p.rules.DominantBias {
				rep.Skipped++
				continue
			}

			// Head-on or feeble contacts coalesce instead of bouncing.
			theta := math.Atan2(info.Reflect.Y, info.Reflect.X)
			if math.Abs(theta) >= math.Pi-p.rules.MergeAngleTolerance ||
				math.Abs(theta) < p.rules.MergeAngleTolerance ||
				info.Impulse < p.rules.MergeImpulseFloor {
				if _, claimed := s.mergeClaim[i]; claimed {
					continue
				}
				s.mergeClaim[i] = struct{}{}
				s.mergeClaim[c.other] = struct{}{}
				s.mergePairs = append(s.mergePairs, [2]int{i, c.other})
				continue
			}

			// Bounce: trade mass toward the heavier body, deflect along the
			// reflection direction, tint toward the partner.
			out.mass = out.mass*info.Bias + other.Mass*(1-info.Bias)
			out.radius = out.radius*info.Bias + other.Radius*(1-info.Bias)
			out.due = r2.Add(out.due, r2.Scale(info.Impulse, info.Reflect))
			out.color = affected.BlendColor(other, info.Bias)
			rep.Bounces++
		}
	}

	// Merged pairs synthesise a combined body from snapshot state. Mass and
	// radius sum, position and velocity are mass-weighted, colors blend
	// evenly. Both partners are removed; the removal set dedupes partners
	// claimed by more than one pair.
	for _, pair := range s.mergePairs {
		b1 := &ps.snapshots[pair[0]].Body
		b2 := &ps.snapshots[pair[1]].Body

		mass := b1.Mass + b2.Mass
		merged := body.Body{
			Name:   b1.Name + "_" + b2.Name,
			Mass:   mass,
			Radius: b1.Radius + b2.Radius,
			Color:  b1.BlendColor(b2, 0.5),
			Pos:    r2.Scale(1/mass, r2.Add(r2.Scale(b1.Mass, b1.Pos), r2.Scale(b2.Mass, b2.Pos))),
			Vel:    r2.Scale(1/mass, r2.Add(r2.Scale(b1.Mass, b1.Vel), r2.Scale(b2.Mass, b2.Vel))),
		}
		s.removals[pair[0]] = struct{}{}
		s.removals[pair[1]] = struct{}{}
		s.newBodies = append(s.newBodies, merged)
		rep.Merges++
	}
}

// apply writes buffered outcomes back to live components, removes absorbed
// and merged bodies, and inserts merge products.
func (p *Pool) apply(rep *Report) {
	ps := p.parallel
	s := &p.scratch

	for i := range ps.snapshots {
		if _, gone := s.removals[i]; gone {
			continue
		}
		if _, claimed := s.mergeClaim[i]; claimed {
			// Claimed bodies are replaced by their merge product; any
			// transfer computed for them is discarded.
			continue
		}

		live := p.bodies.Get(ps.snapshots[i].Entity)
		if live == nil {
			continue
		}

		out := &s.outcomes[i]
		live.Mass = out.mass
		live.Radius = out.radius
		live.Color = out.color
		live.AddAccel(r2.Add(ps.intents[i].grav, out.due))
	}

	for i := range s.removals {
		p.Remove(ps.snapshots[i].Entity)
	}
	for i := range s.newBodies {
		p.Add(s.newBodies[i])
	}
}
