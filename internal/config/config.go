// Package config handles engine configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Object kinds accepted in the scene section.
const (
	KindPolygon = "polygon"
	KindLight   = "light"
	KindModel   = "model"
)

// Config holds all engine settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Assets   AssetsConfig   `yaml:"assets"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// GraphicsConfig holds rendering settings.
type GraphicsConfig struct {
	FPSLimit      int        `yaml:"fps_limit"`      // 0 disables frame pacing
	TextureFilter string     `yaml:"texture_filter"` // linear_mipmap_linear, linear, nearest
	FlipTextures  bool       `yaml:"flip_textures"`
	ClearColor    [4]float32 `yaml:"clear_color"`
	PolygonMode   string     `yaml:"polygon_mode"` // fill, line, point
	ScreenshotDir string     `yaml:"screenshot_dir"`
}

// CameraConfig holds first-person camera settings.
type CameraConfig struct {
	FOV         float32    `yaml:"fov"` // vertical, degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Position    [3]float32 `yaml:"position"`
}

// AssetsConfig holds asset lookup settings.
type AssetsConfig struct {
	Dir string `yaml:"dir"` // overrides embedded shaders and textures when set
}

// SceneConfig declares the objects placed at startup.
type SceneConfig struct {
	Objects []ObjectConfig `yaml:"objects"`
}

// ObjectConfig describes a single scene object.
type ObjectConfig struct {
	Kind     string                `yaml:"kind"`
	Shader   string                `yaml:"shader,omitempty"`
	Texture  string                `yaml:"texture,omitempty"`
	Path     string                `yaml:"path,omitempty"` // glTF document for models
	Position [3]float32            `yaml:"position"`
	Rotation [3]float32            `yaml:"rotation,omitempty"` // polygons only, degrees
	Scale    *float32              `yaml:"scale,omitempty"`    // nil keeps 1; not for models
	Colors   map[string][3]float32 `yaml:"colors,omitempty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Fuel",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Graphics: GraphicsConfig{
			FPSLimit:      60,
			TextureFilter: "linear_mipmap_linear",
			ClearColor:    [4]float32{0, 0, 0, 1},
			PolygonMode:   "fill",
			ScreenshotDir: "screenshots",
		},
		Camera: CameraConfig{
			FOV:         45,
			Near:        0.1,
			Far:         100,
			Speed:       2.5,
			Sensitivity: 0.1,
			Position:    [3]float32{0, 0, 3},
		},
		Scene: SceneConfig{
			Objects: defaultObjects(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func defaultObjects() []ObjectConfig {
	cubes := [][3]float32{
		{0, 0, 0},
		{2, 0, -3},
		{-2, 0, -2},
		{1, 3, -6},
		{-5, -3, -10},
	}
	objects := make([]ObjectConfig, 0, len(cubes)+1)
	for i, pos := range cubes {
		objects = append(objects, ObjectConfig{
			Kind:     KindPolygon,
			Shader:   "cube",
			Texture:  "textures/checker.png",
			Position: pos,
			Rotation: [3]float32{float32(20 * i), float32(10 * i), 0},
			Scale:    Scale(1),
		})
	}
	objects = append(objects, ObjectConfig{
		Kind:     KindLight,
		Position: [3]float32{1.2, 1, 2},
		Scale:    Scale(0.2),
		Colors:   map[string][3]float32{"lightColor": {1, 1, 1}},
	})
	return objects
}

// Scale returns a scale setting. Zero is a legal scale and collapses the object.
func Scale(v float32) *float32 { return &v }

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		return fmt.Errorf("camera clip range [%g, %g] is invalid", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov %g out of range (0, 180)", c.Camera.FOV)
	}
	switch c.Graphics.TextureFilter {
	case "linear_mipmap_linear", "linear", "nearest":
	default:
		return fmt.Errorf("unknown texture filter %q", c.Graphics.TextureFilter)
	}
	switch c.Graphics.PolygonMode {
	case "fill", "line", "point":
	default:
		return fmt.Errorf("unknown polygon mode %q", c.Graphics.PolygonMode)
	}
	for i, obj := range c.Scene.Objects {
		if err := obj.validate(); err != nil {
			return fmt.Errorf("scene object %d: %w", i, err)
		}
	}
	return nil
}

func (o ObjectConfig) validate() error {
	switch o.Kind {
	case KindPolygon:
		if o.Shader == "" {
			return errors.New("polygon needs a shader")
		}
	case KindLight:
	case KindModel:
		if o.Path == "" {
			return errors.New("model needs a path")
		}
		if o.Scale != nil {
			return errors.New("scale is not supported for models")
		}
	default:
		return fmt.Errorf("unknown kind %q", o.Kind)
	}
	if o.Kind != KindPolygon && o.Rotation != ([3]float32{}) {
		return fmt.Errorf("rotation is only supported for polygons, not %s", o.Kind)
	}
	return nil
}
