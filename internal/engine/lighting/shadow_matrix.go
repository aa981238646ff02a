package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// minRadius keeps the light frustum from collapsing for an empty scene.
const minRadius = 1

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Center returns the center point of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Radius returns the distance from center to corner (half-diagonal).
func (b Bounds) Radius() float32 {
	return b.Max.Sub(b.Min).Len() / 2
}

// ExtendSphere grows the box to contain a sphere. Non-finite or negative
// spheres are ignored.
func (b Bounds) ExtendSphere(center mgl32.Vec3, radius float32) Bounds {
	if !(radius >= 0) || math.IsInf(float64(radius), 0) || !finite(center) {
		return b
	}
	for a := 0; a < 3; a++ {
		b.Min[a] = min(b.Min[a], center[a]-radius)
		b.Max[a] = max(b.Max[a], center[a]+radius)
	}
	return b
}

// Corners returns the eight corners of the box.
func (b Bounds) Corners() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := range out {
		out[i] = mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			out[i][0] = b.Max[0]
		}
		if i&2 != 0 {
			out[i][1] = b.Max[1]
		}
		if i&4 != 0 {
			out[i][2] = b.Max[2]
		}
	}
	return out
}

// ShadowMatrix computes the view-projection of a directional light covering
// bounds. lightDir is the direction light travels, as returned by
// SunDirection.
func ShadowMatrix(lightDir mgl32.Vec3, bounds Bounds) mgl32.Mat4 {
	if lightDir.Len() == 0 || !finite(lightDir) {
		lightDir = mgl32.Vec3{0, -1, 0}
	}
	lightDir = lightDir.Normalize()

	center := bounds.Center()
	radius := max(bounds.Radius(), minRadius)

	// Back off far enough that the whole box is in front of the light
	distance := radius * 2
	eye := center.Sub(lightDir.Mul(distance))

	up := mgl32.Vec3{0, 1, 0}
	if abs32(lightDir[1]) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(eye, center, up)

	padding := radius * 0.1
	half := radius + padding
	near := float32(0.1)
	far := distance + radius + padding
	proj := mgl32.Ortho(-half, half, -half, half, near, far)

	return proj.Mul4(view)
}

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
