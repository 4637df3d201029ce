// Gravitational field preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"image/color"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orrery/body"
	"github.com/pthm-cable/orrery/field"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30

	cellSize = 4
)

// FieldParams holds the preview scene parameters.
type FieldParams struct {
	G           float32
	CentralMass float32
	Satellites  int
	OrbitRadius float32
	OrbitMass   float32
	Zoom        float32
}

func defaultParams() FieldParams {
	return FieldParams{
		G:           6674.3,
		CentralMass: 198900.0,
		Satellites:  4,
		OrbitRadius: 12000,
		OrbitMass:   500,
		Zoom:        0.25,
	}
}

// ringScene is a central body with satellites spaced evenly on a ring.
type ringScene struct {
	bodies []body.Body
	g      float64
}

func buildScene(params FieldParams) *ringScene {
	s := &ringScene{g: float64(params.G)}
	s.bodies = append(s.bodies, body.MustNew("central", float64(params.CentralMass), 6400, color.RGBA{A: 255}, r2.Vec{}))
	for i := 0; i < params.Satellites; i++ {
		theta := 2 * math.Pi * float64(i) / float64(params.Satellites)
		pos := r2.Vec{
			X: float64(params.OrbitRadius) * math.Cos(theta),
			Y: float64(params.OrbitRadius) * math.Sin(theta),
		}
		s.bodies = append(s.bodies, body.MustNew(fmt.Sprintf("sat%d", i), float64(params.OrbitMass), 800, color.RGBA{A: 255}, pos))
	}
	return s
}

// FieldAt sums every body's contribution at a world point.
func (s *ringScene) FieldAt(p r2.Vec) float64 {
	var total float64
	for i := range s.bodies {
		total += s.bodies[i].FieldAt(p, s.g).Force
	}
	return total
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Gravity Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()

	sampler := field.NewSampler(cellSize, 0)
	cols := previewSize / cellSize

	img := rl.GenImageColor(cols, cols, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			sampler.Refresh(buildScene(params), field.View{
				Zoom:   float64(params.Zoom),
				Scale:  0.01,
				Width:  previewSize,
				Height: previewSize,
			})
			updateTexture(texture, sampler.Intensities())
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(cols), Height: float32(cols)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Grid: %dx%d cells  Bodies: %d", sampler.Cols(), sampler.Rows(), params.Satellites+1), 15, statsY, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Gravity Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// G slider
		rl.DrawText("G (gravitational constant)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newG := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"100", "20000",
			params.G, 100, 20000,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.G), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newG != params.G {
			params.G = newG
			needsRegen = true
		}
		panelY += 35

		// Central mass slider
		rl.DrawText("Central mass", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCentral := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"100", "500000",
			params.CentralMass, 100, 500000,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.CentralMass), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newCentral != params.CentralMass {
			params.CentralMass = newCentral
			needsRegen = true
		}
		panelY += 35

		// Satellite count slider
		rl.DrawText("Satellites", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSats := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "12",
			float32(params.Satellites), 0, 12,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Satellites), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newSats) != params.Satellites {
			params.Satellites = int(newSats)
			needsRegen = true
		}
		panelY += 35

		// Orbit radius slider
		rl.DrawText("Orbit radius", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newOrbit := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"2000", "40000",
			params.OrbitRadius, 2000, 40000,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.OrbitRadius), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newOrbit != params.OrbitRadius {
			params.OrbitRadius = newOrbit
			needsRegen = true
		}
		panelY += 35

		// Satellite mass slider
		rl.DrawText("Satellite mass", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newOrbitMass := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "5000",
			params.OrbitMass, 1, 5000,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.OrbitMass), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newOrbitMass != params.OrbitMass {
			params.OrbitMass = newOrbitMass
			needsRegen = true
		}
		panelY += 35

		// Zoom slider
		rl.DrawText("Zoom", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newZoom := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.05", "2.0",
			params.Zoom, 0.05, 2.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Zoom), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newZoom != params.Zoom {
			params.Zoom = newZoom
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlLines := []string{
			"physics:",
			fmt.Sprintf("  g: %.1f", params.G),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(fmt.Sprintf("physics:\n  g: %.1f", params.G))
		}

		rl.EndDrawing()
	}
}

// updateTexture maps normalized intensities onto a dark blue -> cyan ->
// yellow -> white gradient and uploads them.
func updateTexture(texture rl.Texture2D, intensities []uint8) {
	pixels := make([]color.RGBA, len(intensities))
	for i, iv := range intensities {
		v := float32(iv) / 255
		var r, g, b float32
		if v < 0.25 {
			t := v / 0.25
			r, g, b = 10+t*30, 20+t*60, 60+t*100
		} else if v < 0.5 {
			t := (v - 0.25) / 0.25
			r, g, b = 40+t*20, 80+t*120, 160+t*40
		} else if v < 0.75 {
			t := (v - 0.5) / 0.25
			r, g, b = 60+t*140, 200-t*40, 200-t*150
		} else {
			t := (v - 0.75) / 0.25
			r, g, b = 200+t*55, 160+t*95, 50+t*205
		}
		pixels[i] = body.RGB(int(r), int(g), int(b))
	}
	rl.UpdateTexture(texture, pixels)
}
