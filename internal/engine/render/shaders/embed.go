// Package shaders provides embedded GLSL shader sources and assembles them
// into complete programs.
package shaders

import _ "embed"

// MapRangeLib remaps a value between ranges.
//
//go:embed lib/map_range.glsl
var MapRangeLib string

// RandomLib provides a hash and value noise.
//
//go:embed lib/random.glsl
var RandomLib string

// ShadowLib samples the sun shadow map with PCF.
//
//go:embed lib/shadow.glsl
var ShadowLib string

// GrassUniformsBlock declares the GrassUniforms block.
//
//go:embed grass_uniforms.glsl
var GrassUniformsBlock string

// GrassVertexShader is the vertex shader for the grass blades.
//
//go:embed grass.vert
var GrassVertexShader string

// GrassFragmentShader is the fragment shader for the grass blades.
//
//go:embed grass.frag
var GrassFragmentShader string

// GroundVertexShader is the vertex shader for the ground plane.
//
//go:embed ground.vert
var GroundVertexShader string

// GroundFragmentShader is the fragment shader for the ground plane.
//
//go:embed ground.frag
var GroundFragmentShader string

// SphereVertexShader is the vertex shader for the influencer spheres.
//
//go:embed sphere.vert
var SphereVertexShader string

// SphereFragmentShader is the fragment shader for the influencer spheres.
//
//go:embed sphere.frag
var SphereFragmentShader string

// ShadowVertexShader transforms shadow casters into light space.
//
//go:embed shadow.vert
var ShadowVertexShader string

// ShadowFragmentShader is the empty depth-only fragment shader.
//
//go:embed shadow.frag
var ShadowFragmentShader string
