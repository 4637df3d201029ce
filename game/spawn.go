package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orrery/body"
)

// spawnState tracks the interactive placement flow: a body is dragged out of
// the drawer, dropped somewhere, then launched with a velocity click.
type spawnState int

const (
	spawnNone spawnState = iota
	spawnSelected
	spawnDropped
)

type spawnController struct {
	state spawnState
	body  body.Body
	// dropAt is the screen-space point where the body was released.
	dropAt pointf
}

// startDrag begins dragging a body out of the drawer.
func (g *Game) startDrag(b body.Body) {
	g.spawn.state = spawnSelected
	g.spawn.body = b
	g.panning = false
}

// updateSpawn advances the placement state machine.
func (g *Game) updateSpawn(mouse rl.Vector2) {
	switch g.spawn.state {
	case spawnSelected:
		// Body rides the cursor until the button is released.
		g.spawn.body.Pos = g.cam.ScreenToWorld(r2.Vec{X: float64(mouse.X), Y: float64(mouse.Y)})
		if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
			g.spawn.state = spawnDropped
			g.spawn.dropAt = pointf{X: float64(mouse.X), Y: float64(mouse.Y)}
		}

	case spawnDropped:
		// The next click launches the body. The drag vector from the drop
		// point becomes its initial velocity.
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			cfg := g.config()
			scale := g.dt * cfg.Spawn.VelocityScale / (g.cam.Scale * g.cam.Zoom)
			g.spawn.body.Vel = r2.Vec{
				X: (float64(mouse.X) - g.spawn.dropAt.X) * scale,
				Y: (float64(mouse.Y) - g.spawn.dropAt.Y) * scale,
			}
			g.AddBody(g.spawn.body)
			g.spawn.state = spawnNone
		}
	}
}
