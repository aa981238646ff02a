package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Ground defaults
	if cfg.Ground.Size != 15 {
		t.Errorf("expected ground size 15, got %v", cfg.Ground.Size)
	}
	if cfg.Ground.Margin != 0.2 {
		t.Errorf("expected ground margin 0.2, got %v", cfg.Ground.Margin)
	}
	if cfg.Ground.Color != 0x5f5033 {
		t.Errorf("expected ground color #5f5033, got %s", cfg.Ground.Color)
	}

	// Blade defaults
	if cfg.Blades.Density != 200 {
		t.Errorf("expected density 200, got %v", cfg.Blades.Density)
	}
	if cfg.Blades.MinHeightMultiplier != -0.5 || cfg.Blades.MaxHeightMultiplier != 0.5 {
		t.Errorf("expected height multiplier range [-0.5, 0.5], got [%v, %v]",
			cfg.Blades.MinHeightMultiplier, cfg.Blades.MaxHeightMultiplier)
	}
	if cfg.Blades.RotationMax[1] <= cfg.Blades.RotationMax[0] {
		t.Error("expected yaw range to be wider than pitch range")
	}

	// Wind defaults
	if cfg.Wind.Strength != 1.0 {
		t.Errorf("expected wind strength 1.0, got %v", cfg.Wind.Strength)
	}
	if cfg.Wind.Speed != 0.6 {
		t.Errorf("expected wind speed 0.6, got %v", cfg.Wind.Speed)
	}

	if len(cfg.Spheres) != 2 {
		t.Fatalf("expected 2 default spheres, got %d", len(cfg.Spheres))
	}
	if cfg.Spheres[0].Trajectory.Type != "circular" || cfg.Spheres[1].Trajectory.Type != "linear" {
		t.Errorf("unexpected default trajectories: %q, %q",
			cfg.Spheres[0].Trajectory.Type, cfg.Spheres[1].Trajectory.Type)
	}

	if cfg.Graphics.SunElevation <= 0 || cfg.Graphics.SunElevation > 90 {
		t.Errorf("expected sun above the horizon, got elevation %v", cfg.Graphics.SunElevation)
	}
	if cfg.Debug.ScreenshotDir != "screenshots" {
		t.Errorf("expected screenshot dir 'screenshots', got %q", cfg.Debug.ScreenshotDir)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meadow.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true

ground:
  color: "#112233"
  size: 10
  margin: 0.5

blades:
  density: 50
  tip_color: 0x445566
  seed: 42

wind:
  strength: 2.5
  direction: 1.2

spheres:
  - name: lonely
    radius: 1
    color: "#ffffff"
    trajectory:
      type: linear
      speed: 1
      start: [0, 1, 0]
      end: [5, 1, 0]

logging:
  level: "debug"
  log_file: "meadow.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Ground.Color != 0x112233 {
		t.Errorf("expected ground color #112233, got %s", cfg.Ground.Color)
	}
	if cfg.Ground.Size != 10 {
		t.Errorf("expected ground size 10, got %v", cfg.Ground.Size)
	}
	if cfg.Blades.Density != 50 {
		t.Errorf("expected density 50, got %v", cfg.Blades.Density)
	}
	if cfg.Blades.TipColor != 0x445566 {
		t.Errorf("expected tip color #445566, got %s", cfg.Blades.TipColor)
	}
	if cfg.Blades.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Blades.Seed)
	}
	// Untouched fields keep their defaults
	if cfg.Blades.BaseColor != 0x3ca334 {
		t.Errorf("expected default base color, got %s", cfg.Blades.BaseColor)
	}
	if cfg.Wind.Speed != 0.6 {
		t.Errorf("expected default wind speed 0.6, got %v", cfg.Wind.Speed)
	}
	if cfg.Wind.Strength != 2.5 {
		t.Errorf("expected wind strength 2.5, got %v", cfg.Wind.Strength)
	}
	if len(cfg.Spheres) != 1 || cfg.Spheres[0].Name != "lonely" {
		t.Errorf("expected spheres list to be replaced, got %+v", cfg.Spheres)
	}
	if cfg.Logging.LogFile != "meadow.log" {
		t.Errorf("expected log file 'meadow.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
ground:
  color: "not a color"
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid color, got nil")
	}
}

func TestLoadFromFileUnquotedColor(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"ground", "ground:\n  color: #ff0000\n"},
		{"blades", "blades:\n  tip_color: #00ff00\n  density: 5\n"},
		{"sphere", "spheres:\n  - name: a\n    radius: 1\n    color:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "meadow.yaml")
			if err := os.WriteFile(configPath, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg := Default()
			err := loadFromFile(cfg, configPath)
			if err == nil || !strings.Contains(err.Error(), "quote hex colors") {
				t.Errorf("loadFromFile error = %v, want unquoted color error", err)
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "meadow.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile(empty) error = %v", err)
	}
	if cfg.Blades.Density != 200 {
		t.Errorf("expected default density 200, got %v", cfg.Blades.Density)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/meadow.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "meadow.yaml")

	cfg := Default()
	cfg.Ground.Color = 0xabcdef
	cfg.Blades.Density = 12.5
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Ground.Color != 0xabcdef {
		t.Errorf("ground color = %s, want #abcdef", loaded.Ground.Color)
	}
	if loaded.Blades.Density != 12.5 {
		t.Errorf("density = %v, want 12.5", loaded.Blades.Density)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#5f5033", 0x5f5033, false},
		{"0x83C71E", 0x83c71e, false},
		{"ffffff", 0xffffff, false},
		{"#fff", 0, true},
		{"#gggggg", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorRGB(t *testing.T) {
	rgb := Color(0xff8000).RGB()
	if rgb[0] != 1 || rgb[2] != 0 {
		t.Errorf("RGB() = %v, want [1 ~0.5 0]", rgb)
	}
	if rgb[1] < 0.5 || rgb[1] > 0.51 {
		t.Errorf("RGB() green = %v, want ~0.502", rgb[1])
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "density flag",
			setup: func() { *flagDensity = 25 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Blades.Density != 25 {
					t.Errorf("expected density 25, got %v", cfg.Blades.Density)
				}
			},
			teardown: func() { *flagDensity = 0 },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 7 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Blades.Seed != 7 {
					t.Errorf("expected seed 7, got %d", cfg.Blades.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meadow.yaml")

	yamlContent := `
blades:
  density: 80
  width: 0.3
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagDensity = 120
	defer func() {
		*flagConfig = ""
		*flagDensity = 0
	}()

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if path != configPath {
		t.Errorf("Load() path = %q, want %q", path, configPath)
	}

	// Density comes from the flag, width from the file
	if cfg.Blades.Density != 120 {
		t.Errorf("expected density 120 from flag, got %v", cfg.Blades.Density)
	}
	if cfg.Blades.Width != 0.3 {
		t.Errorf("expected width 0.3 from file, got %v", cfg.Blades.Width)
	}
}

func TestWatchDeliversReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meadow.yaml")
	if err := os.WriteFile(configPath, []byte("blades:\n  density: 10\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := Watch(ctx, configPath, nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(configPath, []byte("blades:\n  density: 33\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite test config: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-updates:
			if cfg.Blades.Density == 33 {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for config reload")
		}
	}
}

func TestWatchKeepsFlagOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meadow.yaml")
	if err := os.WriteFile(configPath, []byte("wind:\n  speed: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagDensity = 500
	defer func() { *flagDensity = 0 }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := Watch(ctx, configPath, nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(configPath, []byte("wind:\n  speed: 2\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite test config: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-updates:
			if cfg.Wind.Speed != 2 {
				continue
			}
			if cfg.Blades.Density != 500 {
				t.Errorf("density = %v after reload, want 500 from flag", cfg.Blades.Density)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for config reload")
		}
	}
}
