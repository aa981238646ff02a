package ground

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/options"
	"github.com/Faultbox/meadow/internal/engine/spatial"
)

type ball struct {
	pos mgl32.Vec3
	r   float32
}

func (b *ball) Center() mgl32.Vec3       { return b.pos }
func (b *ball) InfluenceRadius() float32 { return b.r }

func newTestGround(t *testing.T, mutate func(*config.Config)) (*Ground, *options.Set, *spatial.Registry) {
	t.Helper()
	cfg := config.Default()
	cfg.Ground.Size = 10
	cfg.Ground.Margin = 0.5
	cfg.Blades.Density = 10
	if mutate != nil {
		mutate(cfg)
	}

	opts, err := options.FromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	reg := spatial.NewRegistry()
	g, err := New(Params{
		Options:  opts,
		Spatials: reg,
		Rand:     rand.New(rand.NewPCG(1, 2)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, opts, reg
}

func TestNew(t *testing.T) {
	g, _, _ := newTestGround(t, nil)

	if g.BladeCount() != 1000 {
		t.Errorf("BladeCount() = %d, want 1000", g.BladeCount())
	}
	if g.PlaneSize() != 10.5 {
		t.Errorf("PlaneSize() = %v, want 10.5", g.PlaneSize())
	}
	if g.GroundColor() != mgl32.Vec3(config.Color(0x5f5033).RGB()) {
		t.Errorf("GroundColor() = %v", g.GroundColor())
	}
	u := g.Uniforms()
	if u.WindSpeed != 0.6 || u.SpatialMaxDistance != 1.5 {
		t.Errorf("uniforms not initialized from options: %+v", u)
	}
	if u.ColorTip != mgl32.Vec3(config.Color(0x83c71e).RGB()) {
		t.Errorf("ColorTip = %v", u.ColorTip)
	}
	if g.Name() != "ground" {
		t.Errorf("Name() = %q", g.Name())
	}
}

func TestNewRequiresOptions(t *testing.T) {
	if _, err := New(Params{}); err == nil {
		t.Error("expected error for missing option set")
	}
}

// Density change: blade count follows the formula, the mesh keeps its
// identity and the plane is untouched.
func TestDensityChangeRebuildsBladesInPlace(t *testing.T) {
	g, opts, _ := newTestGround(t, nil)

	mesh := g.Blades()
	gen := mesh.Generation
	planeGen := g.Plane().Generation

	if err := opts.SetFloat(options.BladeDensity, 5); err != nil {
		t.Fatalf("SetFloat: %v", err)
	}

	if g.Blades() != mesh {
		t.Error("blade mesh was replaced instead of rebuilt in place")
	}
	if g.BladeCount() != 500 || len(mesh.Vertices) != 1500 {
		t.Errorf("after density 5: %d blades, %d vertices, want 500/1500", g.BladeCount(), len(mesh.Vertices))
	}
	if mesh.Generation != gen+1 {
		t.Errorf("Generation = %d, want %d", mesh.Generation, gen+1)
	}
	if g.Plane().Generation != planeGen || g.PlaneSize() != 10.5 {
		t.Errorf("plane changed on density change: gen %d -> %d, size %v",
			planeGen, g.Plane().Generation, g.PlaneSize())
	}
}

func TestGroundSizeRebuildsPlaneAndBlades(t *testing.T) {
	g, opts, _ := newTestGround(t, nil)
	gen := g.Blades().Generation

	if err := opts.SetFloat(options.GroundSize, 4); err != nil {
		t.Fatalf("SetFloat: %v", err)
	}
	if g.PlaneSize() != 4.5 {
		t.Errorf("PlaneSize() = %v, want 4.5", g.PlaneSize())
	}
	if g.BladeCount() != 160 {
		t.Errorf("BladeCount() = %d, want 160", g.BladeCount())
	}
	if g.Blades().Generation != gen+1 {
		t.Error("blades were not rebuilt on ground size change")
	}

	// Origins lie in [-2, 2]; tilted tips reach at most one blade height further.
	lo, hi := g.Blades().Bounds()
	if lo[0] < -3 || hi[0] > 3 || lo[2] < -3 || hi[2] > 3 {
		t.Errorf("blades outside the resized field: %v %v", lo, hi)
	}
}

func TestMarginRebuildsPlaneOnly(t *testing.T) {
	g, opts, _ := newTestGround(t, nil)
	gen := g.Blades().Generation

	if err := opts.SetFloat(options.GroundMargin, 2); err != nil {
		t.Fatalf("SetFloat: %v", err)
	}
	if g.PlaneSize() != 12 {
		t.Errorf("PlaneSize() = %v, want 12", g.PlaneSize())
	}
	if g.Blades().Generation != gen {
		t.Error("margin change rebuilt the blades")
	}
}

func TestUniformHandlers(t *testing.T) {
	g, opts, _ := newTestGround(t, nil)
	gen := g.Blades().Generation
	planeGen := g.Plane().Generation

	_ = opts.SetFloat(options.WindStrength, 2.5)
	_ = opts.SetFloat(options.SpatialStrength, 0.5)
	_ = opts.SetColor(options.BladeBaseColor, 0xff0000)
	_ = opts.SetColor(options.GroundColor, 0x0000ff)

	u := g.Uniforms()
	if u.WindStrength != 2.5 {
		t.Errorf("WindStrength = %v, want 2.5", u.WindStrength)
	}
	if u.SpatialStrength != 0.5 {
		t.Errorf("SpatialStrength = %v, want 0.5", u.SpatialStrength)
	}
	if u.ColorBase != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("ColorBase = %v, want red", u.ColorBase)
	}
	if g.GroundColor() != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("GroundColor() = %v, want blue", g.GroundColor())
	}
	if g.Blades().Generation != gen || g.Plane().Generation != planeGen {
		t.Error("uniform-only changes rebuilt geometry")
	}
}

func TestUpdateTimeAndSpatials(t *testing.T) {
	g, _, reg := newTestGround(t, nil)
	b := &ball{pos: mgl32.Vec3{1, 0.5, 2}, r: 0.6}
	reg.Add(b)

	prev := g.Uniforms().Time
	for _, dt := range []float32{0.016, 0, -0.5, 0.1, float32(math.NaN())} {
		if err := g.Update(dt); err != nil {
			t.Fatalf("Update(%v): %v", dt, err)
		}
		if g.Uniforms().Time < prev {
			t.Fatalf("time decreased: %v -> %v", prev, g.Uniforms().Time)
		}
		prev = g.Uniforms().Time
	}
	if math.Abs(prev-0.116) > 1e-6 {
		t.Errorf("Time = %v, want 0.116", prev)
	}

	u := g.Uniforms()
	if u.SpatialsLen != 1 || u.Spatials[0].Center != b.pos || u.Spatials[0].Radius != 0.6 {
		t.Errorf("spatials not synced: len %d, first %+v", u.SpatialsLen, u.Spatials[0])
	}

	b.pos = mgl32.Vec3{-3, 0.5, 0}
	_ = g.Update(0.016)
	if u.Spatials[0].Center != b.pos {
		t.Errorf("spatial center not refreshed: %v", u.Spatials[0].Center)
	}
}

func TestUpdateTruncatesInfluencers(t *testing.T) {
	g, _, reg := newTestGround(t, nil)
	for i := 0; i < spatial.MaxSpatials+5; i++ {
		reg.Add(&ball{pos: mgl32.Vec3{float32(i), 0, 0}, r: 1})
	}
	_ = g.Update(0.016)

	if g.Uniforms().SpatialsLen != spatial.MaxSpatials {
		t.Errorf("SpatialsLen = %d, want %d", g.Uniforms().SpatialsLen, spatial.MaxSpatials)
	}
	if !g.Snapshot().Truncated() || g.Snapshot().Total != spatial.MaxSpatials+5 {
		t.Errorf("snapshot should report truncation: %+v", g.Snapshot())
	}
}

func TestSeededGroundsMatch(t *testing.T) {
	a, _, _ := newTestGround(t, nil)
	b, _, _ := newTestGround(t, nil)

	va, vb := a.Blades().Vertices, b.Blades().Vertices
	if len(va) != len(vb) {
		t.Fatalf("vertex counts differ: %d vs %d", len(va), len(vb))
	}
	for i := range va {
		if va[i] != vb[i] {
			t.Fatalf("vertex %d differs", i)
		}
	}
}
