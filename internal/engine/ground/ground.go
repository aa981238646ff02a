// Package ground is the grass field entity: the ground plane, the merged blade
// mesh and the grass uniform block, kept in sync with the option set.
package ground

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/geometry"
	"github.com/Faultbox/meadow/internal/engine/grass"
	"github.com/Faultbox/meadow/internal/engine/options"
	"github.com/Faultbox/meadow/internal/engine/spatial"
	"github.com/Faultbox/meadow/internal/engine/uniforms"
)

// Params holds the collaborators of a Ground.
type Params struct {
	Options  *options.Set
	Spatials *spatial.Registry
	Rand     *rand.Rand
	Rotation grass.RotationRange
	Log      *zap.Logger
}

// Ground owns the field geometry and the grass uniforms.
type Ground struct {
	opts     *options.Set
	spatials *spatial.Registry
	rng      *rand.Rand
	rotation grass.RotationRange
	log      *zap.Logger

	plane       *geometry.Mesh
	groundColor mgl32.Vec3

	blades  *grass.Mesh
	scratch grass.Mesh

	uniforms uniforms.Grass
	snapshot spatial.Snapshot

	warnedTruncated bool
}

// New builds the plane and the initial blades from the current options and
// subscribes to option changes.
func New(p Params) (*Ground, error) {
	if p.Options == nil {
		return nil, fmt.Errorf("ground: nil option set")
	}
	if p.Spatials == nil {
		p.Spatials = spatial.NewRegistry()
	}
	if p.Rand == nil {
		p.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if p.Log == nil {
		p.Log = zap.NewNop()
	}

	g := &Ground{
		opts:     p.Options,
		spatials: p.Spatials,
		rng:      p.Rand,
		rotation: p.Rotation,
		log:      p.Log,
		plane:    &geometry.Mesh{},
		blades:   &grass.Mesh{},
	}

	g.onGroundColorChange()
	g.onGroundGeometryChange()
	g.onBladeGeometryChange()
	g.onUniformChange(options.BladeBaseColor)
	g.onUniformChange(options.BladeTipColor)
	g.onUniformChange(options.BladeShineColor)
	for _, name := range uniformNumbers {
		g.onUniformChange(name)
	}

	if err := g.subscribe(); err != nil {
		return nil, err
	}
	return g, nil
}

// uniformNumbers are the number options that map onto a single uniform field.
var uniformNumbers = []string{
	options.WindStrength,
	options.WindSpeed,
	options.WindDirection,
	options.WindDensity,
	options.SpatialStrength,
	options.SpatialMaxDistance,
}

func (g *Ground) subscribe() error {
	o := g.opts
	subs := []struct {
		fn    options.Handler
		names []string
	}{
		{func(string) { g.onGroundColorChange() }, []string{options.GroundColor}},
		{func(string) {
			g.onGroundGeometryChange()
			g.onBladeGeometryChange()
		}, []string{options.GroundSize}},
		{func(string) { g.onGroundGeometryChange() }, []string{options.GroundMargin}},
		{func(string) { g.onBladeGeometryChange() }, []string{
			options.BladeWidth,
			options.BladeHeight,
			options.BladeDensity,
			options.BladeMinHeight,
			options.BladeMaxHeight,
		}},
		{g.onUniformChange, []string{options.BladeBaseColor, options.BladeTipColor, options.BladeShineColor}},
		{g.onUniformChange, uniformNumbers},
	}
	for _, s := range subs {
		if err := o.OnChange(s.fn, s.names...); err != nil {
			return fmt.Errorf("ground: subscribe: %w", err)
		}
	}
	return nil
}

func (g *Ground) onGroundColorChange() {
	g.groundColor = mgl32.Vec3(g.opts.MustColor(options.GroundColor).RGB())
}

// The plane covers the grass square plus the margin.
func (g *Ground) onGroundGeometryChange() {
	size := g.opts.MustFloat(options.GroundSize) + g.opts.MustFloat(options.GroundMargin)
	geometry.PlaneInto(g.plane, size)
}

// Blades are generated into a scratch mesh and then swapped into the live one,
// so the live mesh keeps its identity and is never seen half built.
func (g *Ground) onBladeGeometryChange() {
	p := g.bladeParams()
	grass.GenerateInto(&g.scratch, p, g.rng)

	g.blades.Vertices, g.scratch.Vertices = g.scratch.Vertices, g.blades.Vertices
	g.blades.Blades = g.scratch.Blades
	g.blades.Generation++

	g.log.Debug("blades rebuilt",
		zap.Int("blades", g.blades.Blades),
		zap.Float32("density", p.Density),
		zap.Float32("ground_size", p.GroundSize),
		zap.Uint64("generation", g.blades.Generation),
	)
}

func (g *Ground) bladeParams() grass.Params {
	o := g.opts
	return grass.Params{
		Density:   o.MustFloat(options.BladeDensity),
		BladeSize: mgl32.Vec2{o.MustFloat(options.BladeWidth), o.MustFloat(options.BladeHeight)},
		HeightRange: grass.Range{
			Min: o.MustFloat(options.BladeMinHeight),
			Max: o.MustFloat(options.BladeMaxHeight),
		},
		GroundSize: o.MustFloat(options.GroundSize),
		Rotation:   g.rotation,
	}
}

func (g *Ground) onUniformChange(name string) {
	u := &g.uniforms
	o := g.opts
	switch name {
	case options.BladeBaseColor:
		u.ColorBase = rgb(o.MustColor(name))
	case options.BladeTipColor:
		u.ColorTip = rgb(o.MustColor(name))
	case options.BladeShineColor:
		u.ColorShine = rgb(o.MustColor(name))
	case options.WindStrength:
		u.WindStrength = o.MustFloat(name)
	case options.WindSpeed:
		u.WindSpeed = o.MustFloat(name)
	case options.WindDirection:
		u.WindDirection = o.MustFloat(name)
	case options.WindDensity:
		u.WindDensity = o.MustFloat(name)
	case options.SpatialStrength:
		u.SpatialStrength = o.MustFloat(name)
	case options.SpatialMaxDistance:
		u.SpatialMaxDistance = o.MustFloat(name)
	}
}

func rgb(c config.Color) mgl32.Vec3 {
	return mgl32.Vec3(c.RGB())
}

// Update advances the animation clock and refreshes the influencer array.
func (g *Ground) Update(dt float32) error {
	g.uniforms.Advance(dt)
	g.spatials.SnapshotInto(&g.snapshot)
	g.uniforms.SetSpatials(&g.snapshot)

	if g.snapshot.Truncated() && !g.warnedTruncated {
		g.warnedTruncated = true
		g.log.Warn("too many influencers, extra ones are ignored",
			zap.Int("registered", g.snapshot.Total),
			zap.Int("capacity", spatial.MaxSpatials),
		)
	}
	return nil
}

// Name identifies the entity in logs.
func (g *Ground) Name() string { return "ground" }

// Plane returns the ground plane mesh. The pointer is stable for the
// lifetime of the Ground.
func (g *Ground) Plane() *geometry.Mesh { return g.plane }

// Blades returns the blade mesh. The pointer is stable; contents change on
// rebuild and Generation is bumped.
func (g *Ground) Blades() *grass.Mesh { return g.blades }

// Uniforms returns the grass uniform block.
func (g *Ground) Uniforms() *uniforms.Grass { return &g.uniforms }

// GroundColor returns the plane color.
func (g *Ground) GroundColor() mgl32.Vec3 { return g.groundColor }

// BladeCount returns the number of blades currently generated.
func (g *Ground) BladeCount() int { return g.blades.Blades }

// PlaneSize returns the side of the ground plane.
func (g *Ground) PlaneSize() float32 { return g.plane.Size() }

// Snapshot returns the influencer array written by the last Update.
func (g *Ground) Snapshot() *spatial.Snapshot { return &g.snapshot }
