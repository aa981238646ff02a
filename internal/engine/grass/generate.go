package grass

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// MinHeightScale is the smallest height multiplier a blade can get, so that a
// wide deviation range never produces flat or inverted blades.
const MinHeightScale = 0.05

// Fixed per-vertex UVs: base right, tip, base left.
var bladeUVs = [3]mgl32.Vec2{{0, 0}, {0.5, 1}, {1, 0}}

// BladeCount returns ceil(groundSize^2 * density), or 0 for degenerate input.
func BladeCount(groundSize, density float32) int {
	if !(groundSize > 0) || !(density > 0) {
		return 0
	}
	n := math.Ceil(float64(groundSize) * float64(groundSize) * float64(density))
	if math.IsInf(n, 0) || n > math.MaxInt32 {
		return 0
	}
	return int(n)
}

// bladeCount applies the blade size constraint on top of BladeCount.
func (p Params) bladeCount() int {
	if !(p.BladeSize[0] > 0) || !(p.BladeSize[1] > 0) {
		return 0
	}
	return BladeCount(p.GroundSize, p.Density)
}

// Generate builds a new mesh for p using rng.
func Generate(p Params, rng *rand.Rand) *Mesh {
	m := &Mesh{}
	GenerateInto(m, p, rng)
	return m
}

// GenerateInto replaces dst's contents with a freshly generated field,
// reusing its vertex storage when large enough, and bumps dst.Generation.
// Degenerate parameters produce an empty mesh.
func GenerateInto(dst *Mesh, p Params, rng *rand.Rand) {
	n := p.bladeCount()
	need := 3 * n
	if cap(dst.Vertices) < need {
		dst.Vertices = make([]Vertex, need)
	} else {
		dst.Vertices = dst.Vertices[:need]
	}

	for i := 0; i < n; i++ {
		b := SampleBlade(p, rng)
		buildBlade(dst.Vertices[3*i:3*i+3], b, p.BladeSize)
	}

	dst.Blades = n
	dst.Generation++
}

// SampleBlade draws one blade descriptor.
func SampleBlade(p Params, rng *rand.Rand) Blade {
	half := p.GroundSize / 2
	lo, hi := p.HeightRange.Min, p.HeightRange.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	return Blade{
		Position: mgl32.Vec2{
			uniform(rng, -half, half),
			uniform(rng, -half, half),
		},
		HeightScale: max(1+uniform(rng, lo, hi), MinHeightScale),
		Rotation: mgl32.Vec3{
			uniform(rng, p.Rotation.Min[0], p.Rotation.Max[0]),
			uniform(rng, p.Rotation.Min[1], p.Rotation.Max[1]),
			uniform(rng, p.Rotation.Min[2], p.Rotation.Max[2]),
		},
	}
}

// buildBlade writes one triangle into out (len 3).
func buildBlade(out []Vertex, b Blade, size mgl32.Vec2) {
	w := size[0] / 2
	h := size[1] * b.HeightScale

	local := [3]mgl32.Vec3{
		{w, 0, 0},
		{0, h, 0},
		{-w, 0, 0},
	}

	// Pitch, then roll, then yaw last so the spread around Y stays uniform.
	rot := mgl32.Rotate3DY(b.Rotation[1]).
		Mul3(mgl32.Rotate3DZ(b.Rotation[2])).
		Mul3(mgl32.Rotate3DX(b.Rotation[0]))

	origin := mgl32.Vec3{b.Position[0], 0, b.Position[1]}

	var world [3]mgl32.Vec3
	for i, p := range local {
		world[i] = rot.Mul3x1(p).Add(origin)
	}

	normal := faceNormal(world[0], world[1], world[2])
	for i := range out {
		out[i] = Vertex{
			Position:    world[i],
			Normal:      normal,
			UV:          bladeUVs[i],
			BladeOrigin: origin,
		}
	}
}

func faceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Len()
	if l < 1e-12 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Mul(1 / l)
}

func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + (hi-lo)*rng.Float32()
}
