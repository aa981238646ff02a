package options

import "github.com/Faultbox/meadow/internal/config"

// Option names.
const (
	GroundColor  = "ground.color"
	GroundSize   = "ground.size"
	GroundMargin = "ground.margin"

	BladeBaseColor  = "blades.base_color"
	BladeTipColor   = "blades.tip_color"
	BladeShineColor = "blades.shine_color"
	BladeDensity    = "blades.density"
	BladeWidth      = "blades.width"
	BladeHeight     = "blades.height"
	BladeMinHeight  = "blades.min_height_multiplier"
	BladeMaxHeight  = "blades.max_height_multiplier"

	WindStrength  = "wind.strength"
	WindSpeed     = "wind.speed"
	WindDirection = "wind.direction"
	WindDensity   = "wind.density"

	SpatialStrength    = "spatial.strength"
	SpatialMaxDistance = "spatial.max_distance"

	ShowFPS = "debug.show_fps"
)

// binding ties an option definition to its field in config.Config.
type binding struct {
	def   Option
	num   func(*config.Config) *float32
	color func(*config.Config) *config.Color
	flag  func(*config.Config) *bool
}

func number(name, label string, lo, hi, step float32, field func(*config.Config) *float32) binding {
	return binding{
		def: Option{Name: name, Label: label, Kind: Number, Min: lo, Max: hi, Step: step},
		num: field,
	}
}

func color(name, label string, field func(*config.Config) *config.Color) binding {
	return binding{
		def:   Option{Name: name, Label: label, Kind: Color},
		color: field,
	}
}

func flag(name, label string, field func(*config.Config) *bool) binding {
	return binding{
		def:  Option{Name: name, Label: label, Kind: Bool},
		flag: field,
	}
}

var bindings = []binding{
	color(GroundColor, "Color", func(c *config.Config) *config.Color { return &c.Ground.Color }),
	number(GroundSize, "Size", 0, 100, 1, func(c *config.Config) *float32 { return &c.Ground.Size }),
	number(GroundMargin, "Margin", 0, 10, 0.1, func(c *config.Config) *float32 { return &c.Ground.Margin }),

	color(BladeTipColor, "Tip color", func(c *config.Config) *config.Color { return &c.Blades.TipColor }),
	color(BladeBaseColor, "Base color", func(c *config.Config) *config.Color { return &c.Blades.BaseColor }),
	color(BladeShineColor, "Shine color", func(c *config.Config) *config.Color { return &c.Blades.ShineColor }),
	number(BladeWidth, "Width", 0, 2, 0.02, func(c *config.Config) *float32 { return &c.Blades.Width }),
	number(BladeHeight, "Height", 0, 5, 0.05, func(c *config.Config) *float32 { return &c.Blades.Height }),
	number(BladeDensity, "Density (blades per m²)", 0, 2000, 10, func(c *config.Config) *float32 { return &c.Blades.Density }),
	number(BladeMinHeight, "Min height multiplier", -1, 2, 0.05, func(c *config.Config) *float32 { return &c.Blades.MinHeightMultiplier }),
	number(BladeMaxHeight, "Max height multiplier", -1, 2, 0.05, func(c *config.Config) *float32 { return &c.Blades.MaxHeightMultiplier }),

	number(WindStrength, "Wind strength", 0, 5, 0.1, func(c *config.Config) *float32 { return &c.Wind.Strength }),
	number(WindSpeed, "Wind speed", 0, 5, 0.1, func(c *config.Config) *float32 { return &c.Wind.Speed }),
	number(WindDirection, "Wind direction", -6.2832, 6.2832, 0.1, func(c *config.Config) *float32 { return &c.Wind.Direction }),
	number(WindDensity, "Wind density", 0, 5, 0.05, func(c *config.Config) *float32 { return &c.Wind.Density }),

	number(SpatialStrength, "Spatial strength", 0, 5, 0.1, func(c *config.Config) *float32 { return &c.Spatial.Strength }),
	number(SpatialMaxDistance, "Spatial max distance", 0, 20, 0.1, func(c *config.Config) *float32 { return &c.Spatial.MaxDistance }),

	flag(ShowFPS, "Show FPS", func(c *config.Config) *bool { return &c.Debug.ShowFPS }),
}
