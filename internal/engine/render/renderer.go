// Package render draws the meadow with OpenGL.
package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/geometry"
	"github.com/Faultbox/meadow/internal/engine/ground"
	"github.com/Faultbox/meadow/internal/engine/lighting"
	"github.com/Faultbox/meadow/internal/engine/render/shaders"
	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/engine/shadow"
	"github.com/Faultbox/meadow/internal/engine/sphere"
	"github.com/Faultbox/meadow/internal/engine/uniforms"
)

// grassBlockBinding is the uniform buffer binding point of GrassUniforms.
const grassBlockBinding = 0

// shadowTextureUnit is the texture unit the shadow map is sampled from.
const shadowTextureUnit = 0

// Config holds renderer configuration.
type Config struct {
	Width    int
	Height   int
	SkyColor mgl32.Vec3
	LightDir mgl32.Vec3 // Direction light travels; zero means straight down

	Shadows       bool
	ShadowMapSize int // Zero uses shadow.DefaultResolution
}

// Frame is everything needed to draw one frame.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	CameraPos  mgl32.Vec3
	Ground     *ground.Ground
	Spheres    []*sphere.Sphere
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	grassProgram  *shader.Program
	groundProgram *shader.Program
	sphereProgram *shader.Program
	shadowProgram *shader.Program

	blades     bladeBuffer
	plane      meshBuffer
	sphereMesh meshBuffer
	unitSphere *geometry.Mesh

	ubo     uint32
	uboData []byte

	lightDir mgl32.Vec3

	shadowMap     *shadow.Map // Nil when shadows are off
	lightViewProj mgl32.Mat4
	shadowsActive bool
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config:     cfg,
		log:        log,
		unitSphere: geometry.UVSphere(1, 16, 24),
		lightDir:   mgl32.Vec3{0, -1, 0},
	}
	if cfg.LightDir.Len() > 0 {
		r.lightDir = cfg.LightDir.Normalize()
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(cfg.SkyColor[0], cfg.SkyColor[1], cfg.SkyColor[2], 1.0)

	if err := r.createPrograms(); err != nil {
		r.Close()
		return nil, err
	}

	gl.GenBuffers(1, &r.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, uniforms.Std140Size, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, grassBlockBinding, r.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	if cfg.Shadows {
		sm, err := shadow.NewMap(int32(cfg.ShadowMapSize))
		if err != nil {
			log.Warn("shadows disabled", zap.Error(err))
		} else {
			r.shadowMap = sm
			log.Info("shadow map created", zap.Int32("resolution", sm.Resolution))
		}
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

func (r *Renderer) createPrograms() error {
	var err error

	grassSrc := shaders.Grass()
	if r.grassProgram, err = shader.New("grass", grassSrc.Vertex, grassSrc.Fragment); err != nil {
		return err
	}
	if err := r.grassProgram.BindBlock(uniforms.BlockName, grassBlockBinding); err != nil {
		return err
	}

	groundSrc := shaders.Ground()
	if r.groundProgram, err = shader.New("ground", groundSrc.Vertex, groundSrc.Fragment); err != nil {
		return err
	}

	sphereSrc := shaders.Sphere()
	if r.sphereProgram, err = shader.New("sphere", sphereSrc.Vertex, sphereSrc.Fragment); err != nil {
		return err
	}

	shadowSrc := shaders.Shadow()
	if r.shadowProgram, err = shader.New("shadow", shadowSrc.Vertex, shadowSrc.Fragment); err != nil {
		return err
	}
	return nil
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// ReadPixels reads the back buffer as tightly packed RGBA rows, bottom row
// first. Call it after Render and before swapping buffers.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Render draws one frame.
func (r *Renderer) Render(f Frame) {
	r.shadowsActive = r.shadowMap != nil && f.Ground != nil
	if r.shadowsActive {
		r.lightViewProj = lighting.ShadowMatrix(r.lightDir, sceneBounds(f))
		r.drawShadowCasters(f.Spheres)
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	viewProj := f.Projection.Mul4(f.View)

	if f.Ground != nil {
		r.drawGround(f.Ground, viewProj)
		r.drawGrass(f.Ground, viewProj, f.CameraPos)
	}
	r.drawSpheres(f.Spheres, viewProj)
}

func (r *Renderer) drawGround(g *ground.Ground, viewProj mgl32.Mat4) {
	r.plane.sync(g.Plane())

	p := r.groundProgram
	p.Use()
	p.SetMat4("u_view_proj", viewProj)
	p.SetMat4("u_model", mgl32.Ident4())
	p.SetVec3("u_color", g.GroundColor())
	p.SetVec3("u_light_dir", r.lightDir)
	r.setShadowUniforms(p)
	r.plane.draw()
}

func (r *Renderer) drawGrass(g *ground.Ground, viewProj mgl32.Mat4, cameraPos mgl32.Vec3) {
	if r.blades.sync(g.Blades()) {
		r.log.Debug("blade mesh uploaded",
			zap.Int("blades", g.BladeCount()),
			zap.Uint64("generation", g.Blades().Generation),
		)
	}

	r.uboData = g.Uniforms().MarshalStd140(r.uboData)
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.ubo)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(r.uboData), gl.Ptr(r.uboData))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	p := r.grassProgram
	p.Use()
	p.SetMat4("u_view_proj", viewProj)
	p.SetVec3("u_light_dir", r.lightDir)
	p.SetVec3("u_camera_pos", cameraPos)
	r.setShadowUniforms(p)

	// Blades are single triangles seen from both sides
	gl.Disable(gl.CULL_FACE)
	r.blades.draw()
}

func (r *Renderer) drawSpheres(spheres []*sphere.Sphere, viewProj mgl32.Mat4) {
	if len(spheres) == 0 {
		return
	}
	r.sphereMesh.sync(r.unitSphere)

	p := r.sphereProgram
	p.Use()
	p.SetMat4("u_view_proj", viewProj)
	p.SetVec3("u_light_dir", r.lightDir)
	for _, s := range spheres {
		p.SetMat4("u_model", sphereModel(s))
		p.SetVec3("u_color", s.Color)
		r.sphereMesh.draw()
	}
}

// sceneBounds covers the ground plane, the blades and every sphere.
func sceneBounds(f Frame) lighting.Bounds {
	half := f.Ground.PlaneSize() / 2
	b := lighting.Bounds{
		Min: mgl32.Vec3{-half, 0, -half},
		Max: mgl32.Vec3{half, 0, half},
	}
	if blades := f.Ground.Blades(); blades != nil {
		_, hi := blades.Bounds()
		b.Max[1] = max(hi[1], 0)
	}
	for _, s := range f.Spheres {
		b = b.ExtendSphere(s.Center(), s.Radius)
	}
	return b
}

// drawShadowCasters renders sphere depth from the sun into the shadow map.
func (r *Renderer) drawShadowCasters(spheres []*sphere.Sphere) {
	r.sphereMesh.sync(r.unitSphere)

	r.shadowMap.Bind()
	p := r.shadowProgram
	p.Use()
	p.SetMat4("u_light_view_proj", r.lightViewProj)
	for _, s := range spheres {
		p.SetMat4("u_model", sphereModel(s))
		r.sphereMesh.draw()
	}
	r.shadowMap.Unbind()
}

// setShadowUniforms binds the shadow map for a receiving program, or turns
// shadow sampling off.
func (r *Renderer) setShadowUniforms(p *shader.Program) {
	if !r.shadowsActive {
		p.SetInt("u_shadows", 0)
		return
	}
	r.shadowMap.BindTexture(gl.TEXTURE0 + shadowTextureUnit)
	p.SetInt("u_shadows", 1)
	p.SetInt("u_shadow_map", shadowTextureUnit)
	p.SetMat4("u_light_view_proj", r.lightViewProj)
}

func sphereModel(s *sphere.Sphere) mgl32.Mat4 {
	return s.Model().Mul4(mgl32.Scale3D(s.Radius, s.Radius, s.Radius))
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.blades.delete()
	r.plane.delete()
	r.sphereMesh.delete()
	if r.ubo != 0 {
		gl.DeleteBuffers(1, &r.ubo)
		r.ubo = 0
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
		r.shadowMap = nil
	}
	for _, p := range []*shader.Program{r.grassProgram, r.groundProgram, r.sphereProgram, r.shadowProgram} {
		if p != nil {
			p.Delete()
		}
	}
}
