package shaders

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Faultbox/meadow/internal/engine/spatial"
)

// Version is the GLSL version every program is compiled with.
const Version = "410 core"

// Separator is placed between joined source files.
const Separator = "\n// APPENDED FILE\n"

// Join concatenates GLSL sources in order.
func Join(parts ...string) string {
	return strings.Join(parts, Separator)
}

// Header returns the #version line followed by one #define per entry,
// sorted by name.
func Header(defines map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#version %s\n", Version)
	for _, name := range slices.Sorted(maps.Keys(defines)) {
		fmt.Fprintf(&b, "#define %s %s\n", name, defines[name])
	}
	return b.String()
}

// Defines are the host constants shared with every program.
func Defines() map[string]string {
	return map[string]string{
		"MAX_SPATIALS": fmt.Sprint(spatial.MaxSpatials),
	}
}

// Program is a vertex and fragment source pair.
type Program struct {
	Vertex   string
	Fragment string
}

// Grass assembles the grass program.
func Grass() Program {
	h := Header(Defines())
	return Program{
		Vertex:   h + Join(GrassUniformsBlock, MapRangeLib, RandomLib, GrassVertexShader),
		Fragment: h + Join(GrassUniformsBlock, ShadowLib, GrassFragmentShader),
	}
}

// Ground assembles the ground plane program.
func Ground() Program {
	h := Header(nil)
	return Program{Vertex: h + GroundVertexShader, Fragment: h + Join(ShadowLib, GroundFragmentShader)}
}

// Sphere assembles the sphere program.
func Sphere() Program {
	h := Header(nil)
	return Program{Vertex: h + SphereVertexShader, Fragment: h + SphereFragmentShader}
}

// Shadow assembles the depth-only program for shadow casters.
func Shadow() Program {
	h := Header(nil)
	return Program{Vertex: h + ShadowVertexShader, Fragment: h + ShadowFragmentShader}
}
