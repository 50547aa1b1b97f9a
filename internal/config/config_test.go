package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MinObjectSize != 20 {
		t.Errorf("Expected MinObjectSize 20, got %d", cfg.MinObjectSize)
	}
	if cfg.Lanes != 3 || cfg.PathLane != 1 {
		t.Errorf("Expected lanes 3 / path lane 1, got %d / %d", cfg.Lanes, cfg.PathLane)
	}
	if cfg.MinWidthRatio != 0.15 {
		t.Errorf("Expected MinWidthRatio 0.15, got %v", cfg.MinWidthRatio)
	}
	if cfg.Presenter != PresenterWindow {
		t.Errorf("Expected presenter %q, got %q", PresenterWindow, cfg.Presenter)
	}
	if cfg.CarCascadePath != "haarcascade_cars.xml" {
		t.Errorf("Unexpected car cascade path: %s", cfg.CarCascadePath)
	}
	if cfg.JournalPath != "" {
		t.Errorf("Journal should be disabled by default, got %s", cfg.JournalPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("IMAGE_DIR", "/data/roads")
	t.Setenv("MIN_WIDTH_RATIO", "0.25")
	t.Setenv("PRESENTER", "file")
	t.Setenv("SEED", "42")
	t.Setenv("MIN_NEIGHBORS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ImageDirectory != "/data/roads" {
		t.Errorf("Expected image dir override, got %s", cfg.ImageDirectory)
	}
	if cfg.MinWidthRatio != 0.25 {
		t.Errorf("Expected MinWidthRatio 0.25, got %v", cfg.MinWidthRatio)
	}
	if cfg.Presenter != PresenterFile {
		t.Errorf("Expected file presenter, got %s", cfg.Presenter)
	}
	if cfg.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", cfg.Seed)
	}
	if cfg.MinNeighbors != 3 {
		t.Errorf("Invalid int should fall back to default, got %d", cfg.MinNeighbors)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LANES=5\n"), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("LANES") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Lanes != 5 {
		t.Errorf("Expected lanes from .env, got %d", cfg.Lanes)
	}
}

func TestLoad_UnknownPresenter(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PRESENTER", "hologram")

	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown presenter")
	}
}

func TestApplyTuningFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	content := []byte("min_width_ratio: 0.3\nlanes: 4\nscale_factor: 1.2\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write tuning file: %v", err)
	}

	cfg := &Config{MinWidthRatio: 0.15, Lanes: 3, PathLane: 1, ScaleFactor: 1.1, MinObjectSize: 20}
	if err := cfg.ApplyTuningFile(path); err != nil {
		t.Fatalf("ApplyTuningFile failed: %v", err)
	}

	if cfg.MinWidthRatio != 0.3 {
		t.Errorf("Expected MinWidthRatio 0.3, got %v", cfg.MinWidthRatio)
	}
	if cfg.Lanes != 4 {
		t.Errorf("Expected lanes 4, got %d", cfg.Lanes)
	}
	if cfg.ScaleFactor != 1.2 {
		t.Errorf("Expected scale factor 1.2, got %v", cfg.ScaleFactor)
	}
	if cfg.PathLane != 1 || cfg.MinObjectSize != 20 {
		t.Error("Values absent from the file must stay untouched")
	}
}

func TestApplyTuningFile_Missing(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ApplyTuningFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing tuning file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"scale factor one", func(c *Config) { c.ScaleFactor = 1.0 }, true},
		{"negative min size", func(c *Config) { c.MinObjectSize = -1 }, true},
		{"negative neighbors", func(c *Config) { c.MinNeighbors = -2 }, true},
		{"web presenter", func(c *Config) { c.Presenter = PresenterWeb }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Presenter: PresenterWindow, ScaleFactor: 1.1, MinObjectSize: 20, MinNeighbors: 3}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
