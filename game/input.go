package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Field heatmap toggle
	if rl.IsKeyPressed(rl.KeyH) {
		g.sampler.SetActive(!g.sampler.Active())
	}

	// Debug overlay toggle
	if rl.IsKeyPressed(rl.KeyD) {
		g.showDebug = !g.showDebug
	}

	mouse := rl.GetMousePosition()
	g.drawer.Update(g, mouse)

	// The drawer owns the mouse while it is hovered, unless a spawn drag is
	// already leaving it.
	if g.drawer.Contains(mouse) && g.spawn.state == spawnNone {
		g.panning = false
		return
	}

	g.handleCameraInput(mouse)
	g.updateSpawn(mouse)
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if w == g.width && h == g.height {
		return
	}
	g.width = w
	g.height = h
	g.cam.Resize(w, h)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput(mouse rl.Vector2) {
	cfg := g.config()

	// Pan speed scales inversely with zoom for natural feel
	panSpeed := 8.0 / g.cam.Zoom

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.cam.Pan(0, -panSpeed)
	}

	// Mouse wheel zoom
	wheelMove := rl.GetMouseWheelMove()
	if wheelMove > 0 {
		g.cam.ZoomBy(cfg.Camera.ZoomInStep)
	} else if wheelMove < 0 {
		g.cam.ZoomBy(cfg.Camera.ZoomOutStep)
	}

	// Keyboard zoom
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.cam.ZoomBy(cfg.Camera.ZoomInStep)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.cam.ZoomBy(cfg.Camera.ZoomOutStep)
	}

	// Home resets the view
	if rl.IsKeyPressed(rl.KeyHome) {
		g.cam.Reset()
	}

	// Drag panning. A spawn drag claims the mouse buttons instead.
	if g.spawn.state != spawnNone {
		g.panning = false
		return
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) || rl.IsMouseButtonPressed(rl.MouseButtonMiddle) {
		g.panning = true
		g.panLast = pointf{X: float64(mouse.X), Y: float64(mouse.Y)}
	}
	if g.panning && (rl.IsMouseButtonDown(rl.MouseButtonLeft) || rl.IsMouseButtonDown(rl.MouseButtonMiddle)) {
		g.cam.Pan(g.panLast.X-float64(mouse.X), g.panLast.Y-float64(mouse.Y))
		g.panLast = pointf{X: float64(mouse.X), Y: float64(mouse.Y)}
	} else {
		g.panning = false
	}
}
