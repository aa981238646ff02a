// Package geometry builds the indexed meshes for the ground plane and the
// influencer spheres.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a lit, textured vertex.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// FloatsPerVertex is the interleaved size of Vertex: position, normal, uv.
const FloatsPerVertex = 8

// Mesh is indexed triangle geometry ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32

	// Generation increases whenever the mesh is rebuilt in place.
	Generation uint64
}

// IsEmpty returns true if the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// Interleaved appends the vertex data to dst in GPU layout and returns it.
func (m *Mesh) Interleaved(dst []float32) []float32 {
	dst = dst[:0]
	for _, v := range m.Vertices {
		dst = append(dst,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
		)
	}
	return dst
}

// Plane creates a square on the XZ plane centered at the origin, facing +Y.
// A non-positive or non-finite size gives an empty mesh.
func Plane(size float32) *Mesh {
	m := &Mesh{}
	PlaneInto(m, size)
	return m
}

// PlaneInto rebuilds m as a plane of the given size and bumps its generation.
func PlaneInto(m *Mesh, size float32) {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
	m.Generation++
	if !(size > 0) || math.IsInf(float64(size), 0) {
		return
	}

	h := size / 2
	up := mgl32.Vec3{0, 1, 0}
	// Order: BL, BR, TR, TL
	m.Vertices = append(m.Vertices,
		Vertex{Position: mgl32.Vec3{-h, 0, h}, Normal: up, UV: mgl32.Vec2{0, 0}},
		Vertex{Position: mgl32.Vec3{h, 0, h}, Normal: up, UV: mgl32.Vec2{1, 0}},
		Vertex{Position: mgl32.Vec3{h, 0, -h}, Normal: up, UV: mgl32.Vec2{1, 1}},
		Vertex{Position: mgl32.Vec3{-h, 0, -h}, Normal: up, UV: mgl32.Vec2{0, 1}},
	)
	m.Indices = append(m.Indices, 0, 1, 2, 0, 2, 3)
}

// Size returns the side length of a plane built by Plane, or 0 when empty.
func (m *Mesh) Size() float32 {
	if len(m.Vertices) < 2 {
		return 0
	}
	return m.Vertices[1].Position[0] - m.Vertices[0].Position[0]
}

// UVSphere creates a sphere centered at the origin.
// rings is the number of latitude bands, segments the number of longitude bands.
func UVSphere(radius float32, rings, segments int) *Mesh {
	m := &Mesh{Generation: 1}
	if !(radius > 0) || rings < 2 || segments < 3 {
		return m
	}

	for r := 0; r <= rings; r++ {
		v := float32(r) / float32(rings)
		theta := float64(v) * math.Pi
		sinT, cosT := math.Sincos(theta)

		for s := 0; s <= segments; s++ {
			u := float32(s) / float32(segments)
			phi := float64(u) * 2 * math.Pi
			sinP, cosP := math.Sincos(phi)

			n := mgl32.Vec3{
				float32(sinT * cosP),
				float32(cosT),
				float32(sinT * sinP),
			}
			m.Vertices = append(m.Vertices, Vertex{
				Position: n.Mul(radius),
				Normal:   n,
				UV:       mgl32.Vec2{u, 1 - v},
			})
		}
	}

	stride := uint32(segments + 1)
	for r := uint32(0); r < uint32(rings); r++ {
		for s := uint32(0); s < uint32(segments); s++ {
			a := r*stride + s
			b := a + stride
			// Counter-clockwise seen from outside
			m.Indices = append(m.Indices, a, a+1, b, b, a+1, b+1)
		}
	}
	return m
}
