package main

import (
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

const (
	defaultCanvasID      = "webgl"
	defaultModelPath     = "model.glb"
	defaultConfigPath    = "viewer.yaml"
	defaultMaxPixelRatio = 2.0
	defaultClockStep     = 0.02
	defaultRotationSpeed = 0.005
	defaultPolarAngle    = math.Pi / 3
)

type vec3Config [3]float32

type modelConfig struct {
	Path     string     `yaml:"path"`
	Scale    float32    `yaml:"scale"`
	Rotation vec3Config `yaml:"rotation"`
	Color    uint32     `yaml:"color"`
}

type rendererConfig struct {
	ClearColor    uint32  `yaml:"clear_color"`
	ClearAlpha    float32 `yaml:"clear_alpha"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"`
}

type cameraConfig struct {
	Fov      float64    `yaml:"fov"`
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Position vec3Config `yaml:"position"`
}

type controlsConfig struct {
	MinPolarAngle float64 `yaml:"min_polar_angle"`
	MaxPolarAngle float64 `yaml:"max_polar_angle"`
	EnablePan     bool    `yaml:"enable_pan"`
	EnableZoom    bool    `yaml:"enable_zoom"`
	EnableKeys    bool    `yaml:"enable_keys"`
	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float64 `yaml:"damping_factor"`
}

type animationConfig struct {
	ClockStep     float64 `yaml:"clock_step"`
	RotationSpeed float32 `yaml:"rotation_speed"`
}

type shadowConfig struct {
	MapSize int     `yaml:"map_size"`
	Left    float32 `yaml:"left"`
	Right   float32 `yaml:"right"`
	Top     float32 `yaml:"top"`
	Bottom  float32 `yaml:"bottom"`
	Far     float32 `yaml:"far"`
}

type lightConfig struct {
	Color      uint32       `yaml:"color"`
	Intensity  float32      `yaml:"intensity"`
	Position   vec3Config   `yaml:"position"`
	CastShadow bool         `yaml:"cast_shadow"`
	Shadow     shadowConfig `yaml:"shadow"`
}

type lightsConfig struct {
	Ambient     lightConfig `yaml:"ambient"`
	Directional lightConfig `yaml:"directional"`
}

type viewerConfig struct {
	Canvas    string          `yaml:"canvas"`
	Model     modelConfig     `yaml:"model"`
	Renderer  rendererConfig  `yaml:"renderer"`
	Camera    cameraConfig    `yaml:"camera"`
	Controls  controlsConfig  `yaml:"controls"`
	Animation animationConfig `yaml:"animation"`
	Lights    lightsConfig    `yaml:"lights"`
}

func defaultConfig() viewerConfig {
	return viewerConfig{
		Canvas: defaultCanvasID,
		Model: modelConfig{
			Path:     defaultModelPath,
			Scale:    10,
			Rotation: vec3Config{math.Pi / 2, 0, 0},
			Color:    0xcccccc,
		},
		Renderer: rendererConfig{
			ClearColor:    0xeeeeee,
			ClearAlpha:    1,
			MaxPixelRatio: defaultMaxPixelRatio,
		},
		Camera: cameraConfig{
			Fov:      85,
			Near:     0.1,
			Far:      1000,
			Position: vec3Config{0, 0, 2},
		},
		Controls: controlsConfig{
			MinPolarAngle: defaultPolarAngle,
			MaxPolarAngle: defaultPolarAngle,
			DampingFactor: 0.05,
		},
		Animation: animationConfig{
			ClockStep:     defaultClockStep,
			RotationSpeed: defaultRotationSpeed,
		},
		Lights: lightsConfig{
			Ambient: lightConfig{
				Color:     0xffffff,
				Intensity: 0.8,
			},
			Directional: lightConfig{
				Color:      0xffffff,
				Intensity:  0.6,
				Position:   vec3Config{5, 5, 5},
				CastShadow: true,
				Shadow: shadowConfig{
					MapSize: 1024,
					Left:    -7,
					Right:   7,
					Top:     7,
					Bottom:  -7,
					Far:     15,
				},
			},
		},
	}
}

var (
	errInvalidFov         = errors.New("camera fov must be in (0, 180)")
	errInvalidClipPlanes  = errors.New("camera near must be positive and less than far")
	errInvalidScale       = errors.New("model scale must be positive")
	errInvalidPolarRange  = errors.New("min_polar_angle must not be greater than max_polar_angle")
	errInvalidPixelRatio  = errors.New("max_pixel_ratio must be positive")
	errInvalidShadowMap   = errors.New("shadow map_size must be positive")
	errInvalidDampingRate = errors.New("damping_factor must be in (0, 1]")
	errNotANumber         = errors.New("config values must not be NaN")
)

// parseConfig overlays YAML settings on the defaults.
func parseConfig(b []byte) (viewerConfig, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return defaultConfig(), err
	}
	return cfg, nil
}

func (c *viewerConfig) validate() error {
	switch {
	case c.hasNaN():
		return errNotANumber
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return errInvalidFov
	case c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far:
		return errInvalidClipPlanes
	case c.Model.Scale <= 0:
		return errInvalidScale
	case c.Controls.MinPolarAngle > c.Controls.MaxPolarAngle:
		return errInvalidPolarRange
	case c.Renderer.MaxPixelRatio <= 0:
		return errInvalidPixelRatio
	case c.Lights.Directional.Shadow.MapSize <= 0:
		return errInvalidShadowMap
	case c.Controls.DampingFactor <= 0 || c.Controls.DampingFactor > 1:
		return errInvalidDampingRate
	}
	return nil
}

func (c *viewerConfig) hasNaN() bool {
	vs := []float64{
		c.Camera.Fov, c.Camera.Near, c.Camera.Far,
		c.Controls.MinPolarAngle, c.Controls.MaxPolarAngle, c.Controls.DampingFactor,
		c.Renderer.MaxPixelRatio, float64(c.Renderer.ClearAlpha),
		c.Animation.ClockStep, float64(c.Animation.RotationSpeed),
		float64(c.Model.Scale),
	}
	for _, v := range []vec3Config{
		c.Model.Rotation, c.Camera.Position,
		c.Lights.Ambient.Position, c.Lights.Directional.Position,
	} {
		vs = append(vs, float64(v[0]), float64(v[1]), float64(v[2]))
	}
	for _, l := range []lightConfig{c.Lights.Ambient, c.Lights.Directional} {
		s := l.Shadow
		vs = append(vs,
			float64(l.Intensity),
			float64(s.Left), float64(s.Right), float64(s.Top), float64(s.Bottom), float64(s.Far),
		)
	}
	for _, v := range vs {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// loadConfig fetches the config file, falling back to the defaults
// if it is missing or invalid.
func loadConfig(fetch fetchFunc, path string, logf logger) viewerConfig {
	b, err := fetch(path)
	if err != nil {
		logf("using default config: %v", err)
		return defaultConfig()
	}
	cfg, err := parseConfig(b)
	if err != nil {
		logf("using default config: %v", err)
	}
	return cfg
}
