// Package lighting computes the directional light used by the meadow shaders.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// minElevation keeps the sun above the horizon so lit faces never go fully dark.
const minElevation = 5

// SunDirection converts azimuth/elevation angles in degrees to the direction
// light travels, from the sun towards the ground. Azimuth turns around +Y
// starting at +Z. Elevation is clamped to [minElevation, 90].
func SunDirection(azimuth, elevation float32) mgl32.Vec3 {
	if math.IsNaN(float64(azimuth)) {
		azimuth = 0
	}
	if math.IsNaN(float64(elevation)) {
		elevation = 90
	}
	elevation = mgl32.Clamp(elevation, minElevation, 90)

	az := float64(mgl32.DegToRad(azimuth))
	el := float64(mgl32.DegToRad(elevation))

	// Spherical to Cartesian, pointing at the sun
	toSun := mgl32.Vec3{
		float32(math.Cos(el) * math.Sin(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Cos(az)),
	}
	return toSun.Mul(-1).Normalize()
}
