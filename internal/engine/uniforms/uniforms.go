// Package uniforms holds the CPU copy of the grass shader's uniform block.
package uniforms

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meadow/internal/engine/spatial"
)

// Std140 layout of the GLSL GrassUniforms block.
//
//	layout(std140) uniform GrassUniforms {
//	    vec3  color_base;           // offset  0
//	    float time;                 // offset 12
//	    vec3  color_tip;            // offset 16
//	    float wind_strength;        // offset 28
//	    vec3  color_shine;          // offset 32
//	    float wind_speed;           // offset 44
//	    float wind_direction;       // offset 48
//	    float wind_density;         // offset 52
//	    float spatial_strength;     // offset 56
//	    float spatial_max_distance; // offset 60
//	    int   spatials_len;         // offset 64, padded to 80
//	    Spatial spatials[MAX_SPATIALS]; // offset 80, 16 bytes each
//	};
const (
	headerSize  = 80
	spatialSize = 16

	// Std140Size is the byte size of the marshaled block.
	Std140Size = headerSize + spatialSize*spatial.MaxSpatials
)

// BlockName is the GLSL name of the uniform block.
const BlockName = "GrassUniforms"

// Grass is the set of values shared by every grass vertex and fragment.
type Grass struct {
	// Time is the accumulated animation time in seconds. It only grows.
	Time float64

	ColorBase  mgl32.Vec3
	ColorTip   mgl32.Vec3
	ColorShine mgl32.Vec3

	WindStrength  float32
	WindSpeed     float32
	WindDirection float32
	WindDensity   float32

	SpatialStrength    float32
	SpatialMaxDistance float32

	Spatials    [spatial.MaxSpatials]spatial.Record
	SpatialsLen int32
}

// Advance adds dt to Time. Negative and NaN deltas are ignored.
func (g *Grass) Advance(dt float32) {
	if !(dt > 0) || math.IsInf(float64(dt), 1) {
		return
	}
	g.Time += float64(dt)
}

// SetSpatials copies an influencer snapshot into the block.
func (g *Grass) SetSpatials(s *spatial.Snapshot) {
	g.Spatials = s.Records
	g.SpatialsLen = int32(s.Count)
}

// MarshalStd140 writes the block into dst (grown to Std140Size if needed)
// and returns the Std140Size-byte slice.
func (g *Grass) MarshalStd140(dst []byte) []byte {
	if cap(dst) < Std140Size {
		dst = make([]byte, Std140Size)
	}
	buf := dst[:Std140Size]

	putVec3(buf[0:], g.ColorBase)
	putFloat(buf[12:], float32(g.Time))
	putVec3(buf[16:], g.ColorTip)
	putFloat(buf[28:], g.WindStrength)
	putVec3(buf[32:], g.ColorShine)
	putFloat(buf[44:], g.WindSpeed)
	putFloat(buf[48:], g.WindDirection)
	putFloat(buf[52:], g.WindDensity)
	putFloat(buf[56:], g.SpatialStrength)
	putFloat(buf[60:], g.SpatialMaxDistance)
	binary.LittleEndian.PutUint32(buf[64:], uint32(g.SpatialsLen))
	clear(buf[68:headerSize])

	for i, rec := range g.Spatials {
		off := headerSize + i*spatialSize
		putVec3(buf[off:], rec.Center)
		putFloat(buf[off+12:], rec.Radius)
	}
	return buf
}

func putFloat(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

func putVec3(b []byte, v mgl32.Vec3) {
	putFloat(b[0:], v[0])
	putFloat(b[4:], v[1])
	putFloat(b[8:], v[2])
}
