package game

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orrery/body"
	"github.com/pthm-cable/orrery/telemetry"
)

// heatmapView owns the GPU texture the field grid is uploaded into. One
// texel per grid cell, stretched over the viewport on draw.
type heatmapView struct {
	tex        rl.Texture2D
	cols, rows int
	pixels     []color.RGBA
	loaded     bool
}

// ensure (re)creates the texture when the grid dimensions change.
func (h *heatmapView) ensure(cols, rows int) {
	if h.loaded && cols == h.cols && rows == h.rows {
		return
	}
	if h.loaded {
		rl.UnloadTexture(h.tex)
	}
	img := rl.GenImageColor(cols, rows, rl.Black)
	h.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	h.cols = cols
	h.rows = rows
	h.pixels = make([]color.RGBA, cols*rows)
	h.loaded = true
}

// upload converts grid intensities to grayscale texels.
func (h *heatmapView) upload(intensities []uint8) {
	for i, v := range intensities {
		h.pixels[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	rl.UpdateTexture(h.tex, h.pixels)
}

func (h *heatmapView) unload() {
	if h.loaded {
		rl.UnloadTexture(h.tex)
		h.loaded = false
	}
}

// Draw renders one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.drawHeatmap()
	hovered := g.drawBodies()
	g.drawSpawnOverlay()
	g.drawer.Draw(g)
	g.drawHUD(hovered)

	rl.EndDrawing()
}

// drawHeatmap stretches the field grid over the viewport.
func (g *Game) drawHeatmap() {
	if !g.sampler.Active() {
		return
	}
	cols, rows := g.sampler.Cols(), g.sampler.Rows()
	if cols == 0 || rows == 0 {
		return
	}

	g.heatmap.ensure(cols, rows)
	if g.sampler.TakeDirty() {
		g.heatmap.upload(g.sampler.Intensities())
	}

	cell := float32(g.sampler.CellSize())
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(cols), Height: float32(rows)}
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(cols) * cell, Height: float32(rows) * cell}
	rl.DrawTexturePro(g.heatmap.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// drawBodies renders every visible body and returns the one under the
// cursor, if any.
func (g *Game) drawBodies() *body.Body {
	mouse := rl.GetMousePosition()
	mouseWorld := g.cam.ScreenToWorld(r2.Vec{X: float64(mouse.X), Y: float64(mouse.Y)})

	var hovered *body.Body
	if !g.drawer.Contains(mouse) {
		if e, ok := g.pool.At(mouseWorld); ok {
			hovered = g.pool.Get(e)
		}
	}

	g.pool.Each(func(_ ecs.Entity, b *body.Body) {
		if !g.cam.IsVisible(b.Pos, b.Radius) {
			return
		}
		screen := g.cam.WorldToScreen(b.Pos)
		pos := rl.Vector2{X: float32(screen.X), Y: float32(screen.Y)}
		r := float32(g.cam.ScreenRadius(b.Radius))
		if r < 1 {
			r = 1
		}

		col := b.Color
		if hovered == b {
			col = brighten(col, 50)
		}
		rl.DrawCircleV(pos, r+2, rl.Black)
		rl.DrawCircleV(pos, r, col)
	})

	if hovered != nil {
		label := fmt.Sprintf("%s - %.3f kg", hovered.Name, hovered.Mass)
		rl.DrawText(label, int32(mouse.X)+14, int32(mouse.Y)-10, 16, rl.RayWhite)
	}
	return hovered
}

// drawSpawnOverlay renders the in-flight spawn body and its launch vector.
func (g *Game) drawSpawnOverlay() {
	if g.spawn.state == spawnNone {
		return
	}

	b := &g.spawn.body
	screen := g.cam.WorldToScreen(b.Pos)
	pos := rl.Vector2{X: float32(screen.X), Y: float32(screen.Y)}
	r := float32(g.cam.ScreenRadius(b.Radius))
	if r < 2 {
		r = 2
	}
	rl.DrawCircleLines(int32(pos.X), int32(pos.Y), r, b.Color)

	if g.spawn.state == spawnDropped {
		// Launch vector from the drop point to the cursor.
		mouse := rl.GetMousePosition()
		from := rl.Vector2{X: float32(g.spawn.dropAt.X), Y: float32(g.spawn.dropAt.Y)}
		rl.DrawLineEx(from, mouse, 2, rl.RayWhite)
	}
}

// drawHUD renders the status line and the optional debug panel.
func (g *Game) drawHUD(hovered *body.Body) {
	status := fmt.Sprintf("bodies: %d  tick: %d  zoom: %.2f  speed: %dx", g.pool.Len(), g.tick, g.cam.Zoom, g.stepsPerUpdate)
	if g.paused {
		status += "  [PAUSED]"
	}
	rl.DrawText(status, int32(g.width)-rl.MeasureText(status, 16)-10, 10, 16, rl.RayWhite)

	controls := "SPACE: Pause | < >: Speed | H: Field | Drag: Pan | Wheel: Zoom | Home: Reset | D: Debug"
	rl.DrawText(controls, int32(g.width)-rl.MeasureText(controls, 10)-10, int32(g.height)-20, 10, rl.Gray)

	if g.showDebug {
		stats := g.perfCollector.Stats()
		lines := []string{
			fmt.Sprintf("FPS: %d", rl.GetFPS()),
			fmt.Sprintf("tick avg: %dus", stats.AvgTickDuration.Microseconds()),
			fmt.Sprintf("step: %.0f%%  field: %.0f%%", stats.PhasePct[telemetry.PhaseStep], stats.PhasePct[telemetry.PhaseField]),
			fmt.Sprintf("integrate: %.0f%%  telemetry: %.0f%%", stats.PhasePct[telemetry.PhaseIntegrate], stats.PhasePct[telemetry.PhaseTelemetry]),
		}
		y := int32(40)
		for _, line := range lines {
			rl.DrawText(line, int32(g.width)-rl.MeasureText(line, 14)-10, y, 14, rl.Lime)
			y += 18
		}
	}
}

// brighten lifts each channel by the given amount, saturating at 255.
func brighten(c color.RGBA, by uint8) color.RGBA {
	add := func(v uint8) uint8 {
		if v > 255-by {
			return 255
		}
		return v + by
	}
	return color.RGBA{R: add(c.R), G: add(c.G), B: add(c.B), A: c.A}
}
