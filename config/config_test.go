package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Physics.G != 6674.3 {
		t.Errorf("Physics.G = %v, want 6674.3", cfg.Physics.G)
	}
	if cfg.Physics.SystemScale != 0.01 {
		t.Errorf("Physics.SystemScale = %v, want 0.01", cfg.Physics.SystemScale)
	}
	if cfg.Heatmap.CellSize != 10 {
		t.Errorf("Heatmap.CellSize = %v, want 10", cfg.Heatmap.CellSize)
	}
	if cfg.Heatmap.UpdateInterval != 15.0 {
		t.Errorf("Heatmap.UpdateInterval = %v, want 15.0", cfg.Heatmap.UpdateInterval)
	}
	if len(cfg.Presets) == 0 {
		t.Fatal("expected at least one preset in defaults")
	}
	if cfg.Presets[0].Name != "Earth" {
		t.Errorf("Presets[0].Name = %q, want Earth", cfg.Presets[0].Name)
	}
	if cfg.Spawn.DefaultPreset != "Earth" {
		t.Errorf("Spawn.DefaultPreset = %q, want Earth", cfg.Spawn.DefaultPreset)
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("physics:\n  g: 1.0\nscreen:\n  width: 640\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing override: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	// Overridden fields take the file's values.
	if cfg.Physics.G != 1.0 {
		t.Errorf("Physics.G = %v, want 1.0", cfg.Physics.G)
	}
	if cfg.Screen.Width != 640 {
		t.Errorf("Screen.Width = %v, want 640", cfg.Screen.Width)
	}
	// Untouched fields keep the embedded defaults.
	if cfg.Physics.CollisionDampening != 0.01 {
		t.Errorf("Physics.CollisionDampening = %v, want 0.01", cfg.Physics.CollisionDampening)
	}
}

func TestDerivedPresetIndex(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	idx, ok := cfg.Derived.PresetIndex["Earth"]
	if !ok {
		t.Fatal("PresetIndex missing Earth")
	}
	if cfg.Presets[idx].Name != "Earth" {
		t.Errorf("PresetIndex[Earth] = %d points at %q", idx, cfg.Presets[idx].Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
