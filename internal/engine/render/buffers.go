package render

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meadow/internal/engine/geometry"
	"github.com/Faultbox/meadow/internal/engine/grass"
)

// Vertex attribute locations shared with the GLSL sources.
const (
	attribPosition    = 0
	attribNormal      = 1
	attribUV          = 2
	attribBladeOrigin = 3
)

// bladeBuffer holds the GPU copy of a grass mesh. It is refilled in place
// whenever the mesh generation changes.
type bladeBuffer struct {
	vao, vbo    uint32
	count       int32
	generation  uint64
	initialized bool
	scratch     []float32
}

func (b *bladeBuffer) init() {
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, grass.Stride, grass.OffsetPosition)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, grass.Stride, grass.OffsetNormal)
	gl.EnableVertexAttribArray(attribNormal)
	gl.VertexAttribPointerWithOffset(attribUV, 2, gl.FLOAT, false, grass.Stride, grass.OffsetUV)
	gl.EnableVertexAttribArray(attribUV)
	gl.VertexAttribPointerWithOffset(attribBladeOrigin, 3, gl.FLOAT, false, grass.Stride, grass.OffsetBladeOrigin)
	gl.EnableVertexAttribArray(attribBladeOrigin)

	gl.BindVertexArray(0)
	b.initialized = true
}

// sync uploads m if it changed since the last upload. Returns true on upload.
func (b *bladeBuffer) sync(m *grass.Mesh) bool {
	if !b.initialized {
		b.init()
	} else if m.Generation == b.generation {
		return false
	}

	b.scratch = m.Interleaved(b.scratch)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.scratch)*4, dataPtr(b.scratch), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	b.count = int32(len(m.Vertices))
	b.generation = m.Generation
	return true
}

func (b *bladeBuffer) draw() {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, b.count)
	gl.BindVertexArray(0)
}

func (b *bladeBuffer) delete() {
	if !b.initialized {
		return
	}
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	b.initialized = false
}

// meshBuffer holds an indexed geometry mesh.
type meshBuffer struct {
	vao, vbo, ebo uint32
	indexCount    int32
	generation    uint64
	initialized   bool
	scratch       []float32
}

func (b *meshBuffer) init() {
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)

	stride := int32(geometry.FloatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(attribNormal)
	gl.VertexAttribPointerWithOffset(attribUV, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(attribUV)

	gl.BindVertexArray(0)
	b.initialized = true
}

func (b *meshBuffer) sync(m *geometry.Mesh) bool {
	if !b.initialized {
		b.init()
	} else if m.Generation == b.generation {
		return false
	}

	b.scratch = m.Interleaved(b.scratch)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.scratch)*4, dataPtr(b.scratch), gl.STATIC_DRAW)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, dataPtr(m.Indices), gl.STATIC_DRAW)
	gl.BindVertexArray(0)

	b.indexCount = int32(len(m.Indices))
	b.generation = m.Generation
	return true
}

func (b *meshBuffer) draw() {
	if b.indexCount == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func (b *meshBuffer) delete() {
	if !b.initialized {
		return
	}
	gl.DeleteBuffers(1, &b.ebo)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	b.initialized = false
}

// dataPtr returns a pointer to the first element, or nil for an empty slice.
func dataPtr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}
