package game

import (
	"testing"

	"github.com/pthm-cable/orrery/config"
)

func TestNewDrawerDefaultPreset(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Spawn.DefaultPreset = "Sol"

	d := NewDrawer(cfg)
	if d.preview.Name != "Sol" {
		t.Errorf("preview.Name = %q, want Sol", d.preview.Name)
	}
}

func TestNewDrawerUnknownPresetFallsBack(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Spawn.DefaultPreset = "Nemesis"

	d := NewDrawer(cfg)
	if d.preview.Name != cfg.Presets[0].Name {
		t.Errorf("preview.Name = %q, want %q", d.preview.Name, cfg.Presets[0].Name)
	}
}

func TestDrawerBuildBodyParseFallback(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	d := NewDrawer(cfg)
	d.name = "wanderer"
	d.mass = "not-a-number"
	d.radius = "-3"
	d.colorHex = "#zzzzzz"

	b := d.buildBody()
	if b.Name != "wanderer" {
		t.Errorf("Name = %q, want wanderer", b.Name)
	}
	// Unparseable or non-positive fields keep the preview's last valid values.
	if b.Mass != d.preview.Mass || b.Radius != d.preview.Radius || b.Color != d.preview.Color {
		t.Errorf("invalid fields leaked into the built body: %+v", b)
	}
}
