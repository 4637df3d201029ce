package body

import (
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

var testTuning = Tuning{G: 6674.3, Scale: 0.01, Damping: 0.01}

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tol %v)", name, got, want, tol)
	}
}

func TestGravityTo(t *testing.T) {
	a := MustNew("a", 10, 1, color.RGBA{A: 255}, r2.Vec{})
	b := MustNew("b", 100, 1, color.RGBA{A: 255}, r2.Vec{X: 3, Y: 4})

	acc := a.GravityTo(&b, testTuning.G)

	// Magnitude is G*m_other/dist^2 with dist = 5.
	wantMag := testTuning.G * 100 / 25
	approx(t, "norm", r2.Norm(acc), wantMag, 1e-9)

	// Direction points from a toward b.
	unit := r2.Unit(acc)
	approx(t, "unit.X", unit.X, 0.6, 1e-12)
	approx(t, "unit.Y", unit.Y, 0.8, 1e-12)
}

func TestGravityToCoincident(t *testing.T) {
	a := MustNew("a", 10, 1, color.RGBA{A: 255}, r2.Vec{X: 5, Y: 5})
	b := MustNew("b", 10, 1, color.RGBA{A: 255}, r2.Vec{X: 5, Y: 5})

	if acc := a.GravityTo(&b, testTuning.G); acc != (r2.Vec{}) {
		t.Errorf("coincident gravity = %v, want zero", acc)
	}
}

func TestFieldAt(t *testing.T) {
	b := MustNew("sun", 1000, 10, color.RGBA{A: 255}, r2.Vec{})

	tests := []struct {
		name      string
		point     r2.Vec
		wantForce float64
	}{
		{"outside", r2.Vec{X: 20, Y: 0}, testTuning.G / 400},
		{"surface", r2.Vec{X: 10, Y: 0}, testTuning.G / 100},
		// Samples inside the radius are floored to the surface value.
		{"inside", r2.Vec{X: 1, Y: 0}, testTuning.G / 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := b.FieldAt(tt.point, testTuning.G)
			approx(t, "force", info.Force, tt.wantForce, 1e-9)
		})
	}
}

func TestCollideMiss(t *testing.T) {
	a := MustNew("a", 50, 10, color.RGBA{A: 255}, r2.Vec{})
	b := MustNew("b", 50, 10, color.RGBA{A: 255}, r2.Vec{X: 25, Y: 0})

	if _, ok := a.Collide(&b, testTuning); ok {
		t.Error("non-overlapping pair reported a collision")
	}
}

func TestCollideSeparating(t *testing.T) {
	a := MustNew("a", 50, 10, color.RGBA{A: 255}, r2.Vec{})
	b := MustNew("b", 50, 10, color.RGBA{A: 255}, r2.Vec{X: 19, Y: 0})
	a.Vel = r2.Vec{X: -1, Y: 0}
	b.Vel = r2.Vec{X: 1, Y: 0}

	if _, ok := a.Collide(&b, testTuning); ok {
		t.Error("separating pair reported a collision")
	}
}

func TestCollideHeadOn(t *testing.T) {
	a := MustNew("a", 50, 10, color.RGBA{A: 255}, r2.Vec{})
	b := MustNew("b", 50, 10, color.RGBA{A: 255}, r2.Vec{X: 19, Y: 0})
	a.Vel = r2.Vec{X: 0.5, Y: 0}
	b.Vel = r2.Vec{X: -0.5, Y: 0}

	info, ok := a.Collide(&b, testTuning)
	if !ok {
		t.Fatal("expected collision")
	}

	approx(t, "bias", info.Bias, 0.5, 1e-12)

	// relPos = (-19,0), |relPos|^2 = 361, normal = (-19/361, 0).
	// relVelN = 1 * -19/361, impulse = -2*relVelN/(2/50) * 1 * 0.01/0.01.
	wantImpulse := -2 * (-19.0 / 361.0) / (2.0 / 50.0)
	approx(t, "impulse", info.Impulse, wantImpulse, 1e-9)

	// reflection = -(1,0) + 2*relVelN*normal.
	wantRx := -1 + 2*(-19.0/361.0)*(-19.0/361.0)
	approx(t, "reflect.X", info.Reflect.X, wantRx, 1e-9)
	approx(t, "reflect.Y", info.Reflect.Y, 0, 1e-12)

	// Deflection is within merge tolerance of pi.
	theta := math.Atan2(info.Reflect.Y, info.Reflect.X)
	if math.Abs(theta) < math.Pi-0.05 {
		t.Errorf("deflection angle %v, want within 0.05 of pi", theta)
	}

	if info.Granularity != 10 {
		t.Errorf("granularity = %d, want 10", info.Granularity)
	}
}

func TestCollideCoincident(t *testing.T) {
	a := MustNew("a", 25, 10, color.RGBA{A: 255}, r2.Vec{X: 4, Y: 4})
	b := MustNew("b", 75, 10, color.RGBA{A: 255}, r2.Vec{X: 4, Y: 4})

	info, ok := a.Collide(&b, testTuning)
	if !ok {
		t.Fatal("coincident pair must report a collision")
	}
	approx(t, "bias", info.Bias, 0.25, 1e-12)
	if info.Impulse != 0 {
		t.Errorf("impulse = %v, want 0", info.Impulse)
	}
	if info.Reflect != (r2.Vec{}) {
		t.Errorf("reflect = %v, want zero", info.Reflect)
	}
}

func TestIntegrate(t *testing.T) {
	b := MustNew("b", 1, 1, color.RGBA{A: 255}, r2.Vec{X: 1, Y: 1})
	b.Vel = r2.Vec{X: 1, Y: 0}
	b.Accel = r2.Vec{X: 0, Y: 2}

	b.Integrate(0.5)

	// Velocity absorbs acceleration before the position update.
	approx(t, "vel.X", b.Vel.X, 1, 1e-12)
	approx(t, "vel.Y", b.Vel.Y, 1, 1e-12)
	approx(t, "pos.X", b.Pos.X, 1.5, 1e-12)
	approx(t, "pos.Y", b.Pos.Y, 1.5, 1e-12)
	if b.Accel != (r2.Vec{}) {
		t.Errorf("accel = %v, want cleared", b.Accel)
	}
}

func TestAddForce(t *testing.T) {
	b := MustNew("b", 4, 1, color.RGBA{A: 255}, r2.Vec{})
	b.AddForce(r2.Vec{X: 8, Y: 0})
	approx(t, "accel.X", b.Accel.X, 2, 1e-12)
}

func TestContains(t *testing.T) {
	b := MustNew("b", 1, 5, color.RGBA{A: 255}, r2.Vec{X: 10, Y: 10})

	if !b.Contains(r2.Vec{X: 13, Y: 14}) {
		t.Error("boundary point not contained")
	}
	if b.Contains(r2.Vec{X: 16, Y: 10}) {
		t.Error("exterior point contained")
	}
}

func TestBlendColor(t *testing.T) {
	a := MustNew("a", 1, 1, color.RGBA{R: 200, G: 40, B: 40, A: 255}, r2.Vec{})
	b := MustNew("b", 1, 1, color.RGBA{R: 40, G: 40, B: 200, A: 255}, r2.Vec{})

	// Full bias keeps this body's color, up to 8-bit round-trip error.
	self := a.BlendColor(&b, 1.0)
	if d := int(self.R) - 200; d < -1 || d > 1 {
		t.Errorf("bias=1 R = %d, want ~200", self.R)
	}

	// Identical colors blend to themselves at any bias.
	same := a.BlendColor(&a, 0.3)
	if d := int(same.R) - 200; d < -1 || d > 1 {
		t.Errorf("self-blend R = %d, want ~200", same.R)
	}

	if got := a.BlendColor(&b, 0.5); got.A != 255 {
		t.Errorf("alpha = %d, want 255", got.A)
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	if _, err := New("m", 0, 1, color.RGBA{A: 255}, r2.Vec{}); err == nil {
		t.Error("zero mass accepted")
	}
	if _, err := New("m", -5, 1, color.RGBA{A: 255}, r2.Vec{}); err == nil {
		t.Error("negative mass accepted")
	}
	if _, err := New("r", 1, 0, color.RGBA{A: 255}, r2.Vec{}); err == nil {
		t.Error("zero radius accepted")
	}
	if _, err := New("ok", 1, 1, color.RGBA{A: 255}, r2.Vec{}); err != nil {
		t.Errorf("valid body rejected: %v", err)
	}
}

func TestRGBClamps(t *testing.T) {
	c := RGB(-10, 300, 128)
	want := color.RGBA{R: 0, G: 255, B: 128, A: 255}
	if c != want {
		t.Errorf("RGB(-10, 300, 128) = %v, want %v", c, want)
	}
}
