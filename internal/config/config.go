// Package config handles demo configuration loading and management.
package config

import "math"

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Ground   GroundConfig   `yaml:"ground"`
	Blades   BladesConfig   `yaml:"blades"`
	Wind     WindConfig     `yaml:"wind"`
	Spatial  SpatialConfig  `yaml:"spatial"`
	Spheres  []SphereConfig `yaml:"spheres"`
	Camera   CameraConfig   `yaml:"camera"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int   `yaml:"width"`
	Height     int   `yaml:"height"`
	Fullscreen bool  `yaml:"fullscreen"`
	VSync      bool  `yaml:"vsync"`
	FPSLimit   int   `yaml:"fps_limit"`
	SkyColor   Color `yaml:"sky_color"`

	// Sun position in degrees. Azimuth turns around +Y from +Z, elevation
	// is measured up from the horizon.
	SunAzimuth   float32 `yaml:"sun_azimuth"`
	SunElevation float32 `yaml:"sun_elevation"`

	// Spheres cast sun shadows onto the ground and grass.
	Shadows       bool `yaml:"shadows"`
	ShadowMapSize int  `yaml:"shadow_map_size"`
}

// GroundConfig holds the ground plane settings.
type GroundConfig struct {
	Color  Color   `yaml:"color"`
	Size   float32 `yaml:"size"`   // Side length of the grass-covered square
	Margin float32 `yaml:"margin"` // Bare ground added around the grass
}

// BladesConfig holds grass blade generation and coloring settings.
type BladesConfig struct {
	BaseColor           Color   `yaml:"base_color"`
	TipColor            Color   `yaml:"tip_color"`
	ShineColor          Color   `yaml:"shine_color"`
	Density             float32 `yaml:"density"` // Blades per square unit
	Width               float32 `yaml:"width"`
	Height              float32 `yaml:"height"`
	MinHeightMultiplier float32 `yaml:"min_height_multiplier"`
	MaxHeightMultiplier float32 `yaml:"max_height_multiplier"`

	// Rotation bounds per local axis in radians: X pitch, Y yaw, Z roll.
	RotationMin [3]float32 `yaml:"rotation_min"`
	RotationMax [3]float32 `yaml:"rotation_max"`

	// Seed for blade placement. Zero picks a random seed at startup.
	Seed uint64 `yaml:"seed"`
}

// WindConfig holds the wind shader parameters.
type WindConfig struct {
	Strength  float32 `yaml:"strength"`
	Speed     float32 `yaml:"speed"`
	Direction float32 `yaml:"direction"` // Radians around +Y
	Density   float32 `yaml:"density"`   // Noise frequency of gusts
}

// SpatialConfig holds how strongly influencers bend nearby grass.
type SpatialConfig struct {
	Strength    float32 `yaml:"strength"`
	MaxDistance float32 `yaml:"max_distance"`
}

// SphereConfig describes one moving influencer sphere.
type SphereConfig struct {
	Name       string           `yaml:"name"`
	Radius     float32          `yaml:"radius"`
	Color      Color            `yaml:"color"`
	Trajectory TrajectoryConfig `yaml:"trajectory"`
}

// TrajectoryConfig selects and parameterizes a motion policy.
type TrajectoryConfig struct {
	Type   string     `yaml:"type"` // "circular" or "linear"
	Speed  float32    `yaml:"speed"`
	Center [3]float32 `yaml:"center"` // circular
	Radius float32    `yaml:"radius"` // circular
	Plane  string     `yaml:"plane"`  // circular: "xy" or "xz"
	Start  [3]float32 `yaml:"start"`  // linear
	End    [3]float32 `yaml:"end"`    // linear
}

// CameraConfig holds the initial orbit camera placement.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	Pitch    float32 `yaml:"pitch"`
	Yaw      float32 `yaml:"yaw"`
	FOV      float32 `yaml:"fov"` // Vertical field of view in degrees
	Damping  float32 `yaml:"damping"`
}

// DebugConfig holds debug toggles.
type DebugConfig struct {
	ShowFPS       bool   `yaml:"show_fps"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the demo's default scene.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			VSync:         true,
			SkyColor:      0x88ddda,
			SunAzimuth:    225,
			SunElevation:  55,
			Shadows:       true,
			ShadowMapSize: 2048,
		},
		Ground: GroundConfig{
			Color:  0x5f5033,
			Size:   15,
			Margin: 0.2,
		},
		Blades: BladesConfig{
			BaseColor:           0x3ca334,
			TipColor:            0x83c71e,
			ShineColor:          0xffffe0,
			Density:             200,
			Width:               0.2,
			Height:              0.5,
			MinHeightMultiplier: -0.5,
			MaxHeightMultiplier: 0.5,
			RotationMin:         [3]float32{-math.Pi / 4, 0, -0.2},
			RotationMax:         [3]float32{math.Pi / 4, math.Pi, 0.2},
		},
		Wind: WindConfig{
			Strength:  1.0,
			Speed:     0.6,
			Direction: 0,
			Density:   0.35,
		},
		Spatial: SpatialConfig{
			Strength:    1.0,
			MaxDistance: 1.5,
		},
		Spheres: []SphereConfig{
			{
				Name:   "orbiter",
				Radius: 0.6,
				Color:  0xd94f3d,
				Trajectory: TrajectoryConfig{
					Type:   "circular",
					Speed:  0.5,
					Center: [3]float32{0, 0.6, 0},
					Radius: 4,
					Plane:  "xz",
				},
			},
			{
				Name:   "roller",
				Radius: 0.4,
				Color:  0x3d6fd9,
				Trajectory: TrajectoryConfig{
					Type:  "linear",
					Speed: 0.15,
					Start: [3]float32{-6, 0.4, 3},
					End:   [3]float32{6, 0.4, -3},
				},
			},
		},
		Camera: CameraConfig{
			Distance: 12,
			Pitch:    0.6,
			Yaw:      0,
			FOV:      75,
			Damping:  8,
		},
		Debug: DebugConfig{
			ShowFPS:       true,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
