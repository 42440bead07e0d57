package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	if cfg.Graphics.FPSLimit != 60 {
		t.Errorf("expected fps limit 60, got %d", cfg.Graphics.FPSLimit)
	}
	if cfg.Graphics.TextureFilter != "linear_mipmap_linear" {
		t.Errorf("expected linear_mipmap_linear filter, got %s", cfg.Graphics.TextureFilter)
	}

	if cfg.Camera.Speed != 2.5 {
		t.Errorf("expected camera speed 2.5, got %f", cfg.Camera.Speed)
	}
	if cfg.Camera.FOV != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Camera.FOV)
	}

	if len(cfg.Scene.Objects) != 6 {
		t.Errorf("expected 5 cubes and a light, got %d objects", len(cfg.Scene.Objects))
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  title: "Viewer"
  width: 1920
  height: 1080
  fullscreen: true

graphics:
  fps_limit: 144
  texture_filter: nearest
  polygon_mode: line

camera:
  fov: 60
  speed: 5

scene:
  objects:
    - kind: model
      path: models/box.gltf
      position: [1, 2, 3]

logging:
  level: "debug"
  log_file: "engine.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Title != "Viewer" {
		t.Errorf("expected title Viewer, got %s", cfg.Window.Title)
	}
	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}
	if cfg.Graphics.PolygonMode != "line" {
		t.Errorf("expected polygon mode line, got %s", cfg.Graphics.PolygonMode)
	}
	if cfg.Camera.FOV != 60 || cfg.Camera.Speed != 5 {
		t.Errorf("expected fov 60 speed 5, got %f %f", cfg.Camera.FOV, cfg.Camera.Speed)
	}
	// Untouched keys keep their defaults.
	if cfg.Camera.Near != 0.1 {
		t.Errorf("expected default near 0.1, got %f", cfg.Camera.Near)
	}

	if len(cfg.Scene.Objects) != 1 {
		t.Fatalf("expected scene objects to be replaced, got %d", len(cfg.Scene.Objects))
	}
	obj := cfg.Scene.Objects[0]
	if obj.Kind != KindModel || obj.Path != "models/box.gltf" || obj.Position != [3]float32{1, 2, 3} {
		t.Errorf("unexpected object %+v", obj)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestLoadFromFileKeepsDefaultScene(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 1024\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.Scene.Objects) != len(Default().Scene.Objects) {
		t.Errorf("default scene should survive a file without a scene section, got %d objects", len(cfg.Scene.Objects))
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"near beyond far", func(c *Config) { c.Camera.Near = 200 }, "clip range"},
		{"bad fov", func(c *Config) { c.Camera.FOV = 180 }, "fov"},
		{"bad filter", func(c *Config) { c.Graphics.TextureFilter = "bilinear" }, "texture filter"},
		{"bad polygon mode", func(c *Config) { c.Graphics.PolygonMode = "wire" }, "polygon mode"},
		{"unknown kind", func(c *Config) {
			c.Scene.Objects = append(c.Scene.Objects, ObjectConfig{Kind: "camera"})
		}, "unknown kind"},
		{"model without path", func(c *Config) {
			c.Scene.Objects = []ObjectConfig{{Kind: KindModel}}
		}, "needs a path"},
		{"polygon without shader", func(c *Config) {
			c.Scene.Objects = []ObjectConfig{{Kind: KindPolygon}}
		}, "needs a shader"},
		{"rotated light", func(c *Config) {
			c.Scene.Objects = []ObjectConfig{{Kind: KindLight, Rotation: [3]float32{0, 45, 0}}}
		}, "rotation is only supported for polygons"},
		{"rotated model", func(c *Config) {
			c.Scene.Objects = []ObjectConfig{{Kind: KindModel, Path: "a.glb", Rotation: [3]float32{10, 0, 0}}}
		}, "rotation is only supported for polygons"},
		{"scaled model", func(c *Config) {
			c.Scene.Objects = []ObjectConfig{{Kind: KindModel, Path: "a.glb", Scale: Scale(2)}}
		}, "scale is not supported for models"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFromFileZeroScale(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	yamlContent := `
scene:
  objects:
    - kind: polygon
      shader: cube
      scale: 0
    - kind: light
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	flat := cfg.Scene.Objects[0].Scale
	if flat == nil || *flat != 0 {
		t.Errorf("expected explicit scale 0 to be kept, got %v", flat)
	}
	if cfg.Scene.Objects[1].Scale != nil {
		t.Errorf("expected unset scale to stay nil, got %v", *cfg.Scene.Objects[1].Scale)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero scale should validate: %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "assets flag",
			setup: func() { *flagAssets = "/srv/assets" },
			verify: func(cfg *Config) {
				if cfg.Assets.Dir != "/srv/assets" {
					t.Errorf("expected assets dir /srv/assets, got %s", cfg.Assets.Dir)
				}
			},
			teardown: func() { *flagAssets = "" },
		},
		{
			name:  "model flag",
			setup: func() { *flagModel = "duck.gltf" },
			verify: func(cfg *Config) {
				last := cfg.Scene.Objects[len(cfg.Scene.Objects)-1]
				if last.Kind != KindModel || last.Path != "duck.gltf" {
					t.Errorf("expected model object for duck.gltf, got %+v", last)
				}
			},
			teardown: func() { *flagModel = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Title = "Saved"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if loaded.Window.Title != "Saved" {
		t.Errorf("expected saved title, got %s", loaded.Window.Title)
	}
	if len(loaded.Scene.Objects) != len(cfg.Scene.Objects) {
		t.Errorf("expected %d objects after reload, got %d", len(cfg.Scene.Objects), len(loaded.Scene.Objects))
	}
}
