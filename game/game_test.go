package game

import (
	"image/color"
	"os"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orrery/body"
	"github.com/pthm-cable/orrery/config"
)

func TestMain(m *testing.M) {
	config.MustInit("")
	os.Exit(m.Run())
}

func newHeadlessGame(steps int) *Game {
	return NewGameWithOptions(Options{
		Headless:       true,
		StepsPerUpdate: steps,
	})
}

func TestHeadlessTickAdvances(t *testing.T) {
	g := newHeadlessGame(1)
	defer g.Unload()

	for i := 0; i < 5; i++ {
		g.UpdateHeadless()
	}
	if got := g.Tick(); got != 5 {
		t.Fatalf("Tick() = %d, want 5", got)
	}
}

func TestStepsPerUpdateMultiplier(t *testing.T) {
	g := newHeadlessGame(4)
	defer g.Unload()

	g.UpdateHeadless()
	if got := g.Tick(); got != 4 {
		t.Fatalf("Tick() = %d, want 4", got)
	}
}

func TestAddBodyEntersPool(t *testing.T) {
	g := newHeadlessGame(1)
	defer g.Unload()

	g.AddBody(body.MustNew("probe", 10, 5, color.RGBA{R: 255, A: 255}, r2.Vec{X: 100, Y: 100}))
	if got := g.Pool().Len(); got != 1 {
		t.Fatalf("Pool().Len() = %d, want 1", got)
	}

	g.UpdateHeadless()
	if got := g.Pool().Len(); got != 1 {
		t.Fatalf("Pool().Len() after tick = %d, want 1", got)
	}
}

func TestOrbitingPairSurvivesTicks(t *testing.T) {
	g := newHeadlessGame(1)
	defer g.Unload()

	// Widely separated pair, no contact expected.
	g.AddBody(body.MustNew("primary", 1000, 50, color.RGBA{R: 255, A: 255}, r2.Vec{}))
	g.AddBody(body.MustNew("moon", 1, 5, color.RGBA{B: 255, A: 255}, r2.Vec{X: 5000}))

	for i := 0; i < 20; i++ {
		g.UpdateHeadless()
	}
	if got := g.Pool().Len(); got != 2 {
		t.Fatalf("Pool().Len() = %d, want 2", got)
	}
}

func TestInvalidStepsClampedToOne(t *testing.T) {
	g := NewGameWithOptions(Options{Headless: true, StepsPerUpdate: 0})
	defer g.Unload()

	g.UpdateHeadless()
	if got := g.Tick(); got != 1 {
		t.Fatalf("Tick() = %d, want 1", got)
	}
}
