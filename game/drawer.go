package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"strconv"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orrery/body"
	"github.com/pthm-cable/orrery/config"
)

// Drawer layout. The panel slides in from the left edge when hovered,
// leaving a thin grab strip visible while closed.
const (
	drawerWidth     = 500
	drawerClosedX   = -490
	drawerSlideRate = 2.5 // slide progress per second

	fieldMaxLen = 64
)

// Drawer is the body spawn panel: editable template fields, config presets
// and a preview that can be dragged into the world.
type Drawer struct {
	slide float64 // 0 fully closed, 1 fully open

	name     string
	mass     string
	radius   string
	colorHex string

	editName   bool
	editMass   bool
	editRadius bool
	editColor  bool

	preview body.Body
}

// NewDrawer builds the panel with the configured default preset as the
// starting template, falling back to the first preset.
func NewDrawer(cfg *config.Config) *Drawer {
	d := &Drawer{}
	if idx, ok := cfg.Derived.PresetIndex[cfg.Spawn.DefaultPreset]; ok {
		d.applyPreset(cfg.Presets[idx])
	} else if len(cfg.Presets) > 0 {
		d.applyPreset(cfg.Presets[0])
	}
	if d.preview.Mass == 0 {
		d.preview = body.MustNew("Earth", 500.972, 800, color.RGBA{R: 0x1c, G: 0x42, B: 0xad, A: 0xff}, r2.Vec{})
		d.syncFields()
	}
	return d
}

// applyPreset loads a preset into the template fields. Presets with invalid
// mass or radius are ignored so a bad config entry cannot corrupt the
// preview.
func (d *Drawer) applyPreset(p config.PresetConfig) {
	b, err := body.New(p.Name, p.Mass, p.Radius, parseHexColor(p.Color, color.RGBA{R: 255, G: 255, B: 255, A: 255}), r2.Vec{})
	if err != nil {
		slog.Warn("skipping invalid body preset", "preset", p.Name, "error", err)
		return
	}
	d.preview = b
	d.syncFields()
}

// syncFields refreshes the text fields from the preview body.
func (d *Drawer) syncFields() {
	d.name = d.preview.Name
	d.mass = strconv.FormatFloat(d.preview.Mass, 'f', -1, 64)
	d.radius = strconv.FormatFloat(d.preview.Radius, 'f', -1, 64)
	d.colorHex = fmt.Sprintf("#%02x%02x%02x", d.preview.Color.R, d.preview.Color.G, d.preview.Color.B)
}

// buildBody parses the template fields into a spawnable body. Fields that
// fail to parse keep the preview's last valid value.
func (d *Drawer) buildBody() body.Body {
	b := d.preview
	b.Name = d.name
	if m, err := strconv.ParseFloat(d.mass, 64); err == nil && m > 0 {
		b.Mass = m
	}
	if r, err := strconv.ParseFloat(d.radius, 64); err == nil && r > 0 {
		b.Radius = r
	}
	b.Color = parseHexColor(d.colorHex, b.Color)
	return b
}

// x returns the panel's current left edge, eased along the slide.
func (d *Drawer) x() float64 {
	return drawerClosedX * (1 - easeInOut(d.slide))
}

// Contains reports whether a screen point is over the panel.
func (d *Drawer) Contains(mouse rl.Vector2) bool {
	x := d.x()
	return float64(mouse.X) >= x && float64(mouse.X) <= x+drawerWidth
}

// Update advances the slide animation toward open while hovered and handles
// widget interaction.
func (d *Drawer) Update(g *Game, mouse rl.Vector2) {
	step := drawerSlideRate * float64(rl.GetFrameTime())
	if d.Contains(mouse) && g.spawn.state == spawnNone {
		d.slide += step
		if d.slide > 1 {
			d.slide = 1
		}
	} else {
		d.slide -= step
		if d.slide < 0 {
			d.slide = 0
		}
		d.editName, d.editMass, d.editRadius, d.editColor = false, false, false, false
	}
}

// Draw renders the panel and its widgets. Widget clicks are handled here
// because raygui is immediate mode.
func (d *Drawer) Draw(g *Game) {
	x := float32(d.x())
	h := float32(g.height)

	rl.DrawRectangle(int32(x), 0, drawerWidth, int32(h), rl.NewColor(24, 24, 32, 230))
	rl.DrawRectangleLines(int32(x), 0, drawerWidth, int32(h), rl.DarkGray)
	rl.DrawText("BODY DRAWER", int32(x)+20, 16, 20, rl.RayWhite)

	// Preview circle. Clicking it starts the drag.
	previewCenter := rl.Vector2{X: x + drawerWidth/2, Y: 120}
	previewRadius := float32(clampf(d.preview.Radius*0.01, 8, 56))
	rl.DrawCircleV(previewCenter, previewRadius+2, rl.Black)
	rl.DrawCircleV(previewCenter, previewRadius, d.preview.Color)
	nameWidth := rl.MeasureText(d.preview.Name, 16)
	rl.DrawText(d.preview.Name, int32(previewCenter.X)-nameWidth/2, int32(previewCenter.Y)+int32(previewRadius)+8, 16, rl.LightGray)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		mouse := rl.GetMousePosition()
		if rl.CheckCollisionPointCircle(mouse, previewCenter, previewRadius+4) && g.spawn.state == spawnNone {
			d.preview = d.buildBody()
			g.startDrag(d.preview)
		}
	}

	// Template fields
	fieldX := x + 110
	fieldW := float32(drawerWidth - 140)
	y := float32(210)

	rl.DrawText("Name", int32(x)+20, int32(y)+6, 16, rl.LightGray)
	if gui.TextBox(rl.Rectangle{X: fieldX, Y: y, Width: fieldW, Height: 28}, &d.name, fieldMaxLen, d.editName) {
		d.editName = !d.editName
	}
	y += 40

	rl.DrawText("Mass", int32(x)+20, int32(y)+6, 16, rl.LightGray)
	if gui.TextBox(rl.Rectangle{X: fieldX, Y: y, Width: fieldW, Height: 28}, &d.mass, fieldMaxLen, d.editMass) {
		d.editMass = !d.editMass
	}
	y += 40

	rl.DrawText("Radius", int32(x)+20, int32(y)+6, 16, rl.LightGray)
	if gui.TextBox(rl.Rectangle{X: fieldX, Y: y, Width: fieldW, Height: 28}, &d.radius, fieldMaxLen, d.editRadius) {
		d.editRadius = !d.editRadius
	}
	y += 40

	rl.DrawText("Color", int32(x)+20, int32(y)+6, 16, rl.LightGray)
	if gui.TextBox(rl.Rectangle{X: fieldX, Y: y, Width: fieldW, Height: 28}, &d.colorHex, fieldMaxLen, d.editColor) {
		d.editColor = !d.editColor
	}
	y += 40

	if gui.Button(rl.Rectangle{X: fieldX, Y: y, Width: fieldW, Height: 28}, "Apply") {
		d.preview = d.buildBody()
		d.syncFields()
	}
	y += 56

	// Presets from config
	rl.DrawText("Presets", int32(x)+20, int32(y), 16, rl.LightGray)
	y += 24
	for _, p := range g.config().Presets {
		if gui.Button(rl.Rectangle{X: x + 20, Y: y, Width: drawerWidth - 40, Height: 28}, p.Name) {
			d.applyPreset(p)
		}
		y += 36
	}

	rl.DrawText("drag the preview into space, click to launch", int32(x)+20, int32(h)-30, 10, rl.Gray)
}

// easeInOut is a smoothstep ramp over [0, 1].
func easeInOut(t float64) float64 {
	return 3*t*t - 2*t*t*t
}

// parseHexColor parses "#rrggbb", falling back when malformed.
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func clampf(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
