// Package grass generates the merged triangle mesh for a field of grass blades.
package grass

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one grass mesh vertex.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
	// BladeOrigin is the un-rotated base of the blade, identical for all three
	// vertices of a triangle. The shader sways blades around it.
	BladeOrigin mgl32.Vec3
}

// Interleaved vertex layout: position, normal, uv, blade_origin.
const (
	FloatsPerVertex   = 11
	Stride            = FloatsPerVertex * 4
	OffsetPosition    = 0
	OffsetNormal      = 3 * 4
	OffsetUV          = 6 * 4
	OffsetBladeOrigin = 8 * 4
)

// Mesh is the merged blade geometry. Every three consecutive vertices form one
// blade triangle with the same winding and attribute layout.
type Mesh struct {
	Vertices []Vertex
	Blades   int

	// Generation increases each time the contents are replaced so GPU uploads
	// can tell a rebuilt mesh from an unchanged one.
	Generation uint64
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Interleaved appends the vertex data to dst in the GPU layout and returns it.
func (m *Mesh) Interleaved(dst []float32) []float32 {
	dst = dst[:0]
	for i := range m.Vertices {
		v := &m.Vertices[i]
		dst = append(dst,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
			v.BladeOrigin[0], v.BladeOrigin[1], v.BladeOrigin[2],
		)
	}
	return dst
}

// Bounds returns the axis-aligned bounding box of the mesh.
// An empty mesh has zero bounds.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return lo, hi
	}
	lo, hi = m.Vertices[0].Position, m.Vertices[0].Position
	for i := 1; i < len(m.Vertices); i++ {
		p := m.Vertices[i].Position
		for a := 0; a < 3; a++ {
			lo[a] = min(lo[a], p[a])
			hi[a] = max(hi[a], p[a])
		}
	}
	return lo, hi
}

// Range is a closed interval [Min, Max].
type Range struct {
	Min, Max float32
}

// RotationRange bounds the random rotation about each local axis, in radians.
// X tilts the blade forward and back, Y spins it around its base, Z leans it
// sideways.
type RotationRange struct {
	Min, Max mgl32.Vec3
}

// Params describes a grass field.
type Params struct {
	Density     float32    // Blades per square unit
	BladeSize   mgl32.Vec2 // Width, height
	HeightRange Range      // Added to 1 to get the height multiplier
	GroundSize  float32    // Side of the square blades are scattered over
	Rotation    RotationRange
}

// Blade is the per-blade sample drawn during generation. It is consumed to
// build one triangle and discarded.
type Blade struct {
	Position    mgl32.Vec2 // Offset on the ground plane (X, Z)
	HeightScale float32
	Rotation    mgl32.Vec3 // Pitch, yaw, roll
}
