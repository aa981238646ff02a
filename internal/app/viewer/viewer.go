// Package viewer runs a scene in an SDL window with OpenGL rendering.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/app"
	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/input"
	"github.com/Faultbox/meadow/internal/engine/lighting"
	"github.com/Faultbox/meadow/internal/engine/options"
	"github.com/Faultbox/meadow/internal/engine/render"
	"github.com/Faultbox/meadow/internal/engine/screenshot"
	"github.com/Faultbox/meadow/internal/engine/window"
)

// maxFrameDelta caps dt after stalls (window drag, breakpoints) so
// trajectories do not jump.
const maxFrameDelta = 0.25

// keyBindings maps keys to actions.
var keyBindings = map[sdl.Scancode]app.Action{
	sdl.SCANCODE_LEFTBRACKET:  app.ActionDensityDown,
	sdl.SCANCODE_RIGHTBRACKET: app.ActionDensityUp,
	sdl.SCANCODE_MINUS:        app.ActionHeightDown,
	sdl.SCANCODE_EQUALS:       app.ActionHeightUp,
	sdl.SCANCODE_COMMA:        app.ActionWindDown,
	sdl.SCANCODE_PERIOD:       app.ActionWindUp,
	sdl.SCANCODE_F:            app.ActionToggleFPS,
	sdl.SCANCODE_S:            app.ActionSave,
	sdl.SCANCODE_P:            app.ActionScreenshot,
	sdl.SCANCODE_ESCAPE:       app.ActionQuit,
}

// Viewer is the windowed demo.
type Viewer struct {
	scene      *app.Scene
	configPath string
	log        *zap.Logger

	window   *window.Window
	renderer *render.Renderer
	input    *input.Input
	shots    *screenshot.Capture

	frameBudget    time.Duration // Zero when unlimited
	wantScreenshot bool
	running        bool
}

// New creates the window and renderer for a scene.
func New(s *app.Scene, cfg *config.Config, configPath string, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Viewer{
		scene:      s,
		configPath: configPath,
		log:        log,
		shots:      screenshot.New(cfg.Debug.ScreenshotDir, "meadow"),
	}
	if cfg.Graphics.FPSLimit > 0 && !cfg.Graphics.VSync {
		v.frameBudget = time.Second / time.Duration(cfg.Graphics.FPSLimit)
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "Meadow",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window, since the GL context must exist
	width, height := v.window.DrawableSize()
	v.renderer, err = render.New(render.Config{
		Width:    width,
		Height:   height,
		SkyColor: mgl32.Vec3(cfg.Graphics.SkyColor.RGB()),
		LightDir: lighting.SunDirection(cfg.Graphics.SunAzimuth, cfg.Graphics.SunElevation),

		Shadows:       cfg.Graphics.Shadows,
		ShadowMapSize: cfg.Graphics.ShadowMapSize,
	}, log.Named("render"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	return v, nil
}

// Run drives the frame loop until quit or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	var frameTime time.Duration

	v.log.Info("starting frame loop")

	for v.running {
		if ctx.Err() != nil {
			break
		}

		now := time.Now()
		dt := min(now.Sub(lastTime).Seconds(), maxFrameDelta)
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			break
		}
		v.handleEvents()
		v.handleHeldKeys()

		// 2. Update
		if err := v.scene.Step(float32(dt)); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		cam := v.scene.Camera
		v.renderer.Render(render.Frame{
			View:       cam.ViewMatrix(),
			Projection: cam.ProjectionMatrix(v.renderer.Aspect()),
			CameraPos:  cam.Position(),
			Ground:     v.scene.Ground,
			Spheres:    v.scene.Spheres,
		})

		if v.wantScreenshot {
			v.wantScreenshot = false
			v.saveScreenshot()
		}

		// 4. Present
		v.window.SwapBuffers()

		if v.frameBudget > 0 {
			if rest := v.frameBudget - time.Since(now); rest > 0 {
				time.Sleep(rest)
			}
		}

		frameCount++
		frameTime += time.Since(now)
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			if v.scene.Options.MustBool(options.ShowFPS) {
				v.log.Info("fps",
					zap.Int("count", frameCount),
					zap.Duration("avg_frame", frameTime/time.Duration(frameCount)),
					zap.Int("blades", v.scene.Ground.BladeCount()),
				)
			}
			frameCount = 0
			frameTime = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.DrawableSize())

		case input.EventMouseMove:
			if v.input.IsButtonDown(sdl.BUTTON_LEFT) {
				v.scene.Camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}

		case input.EventMouseWheel:
			v.scene.Camera.HandleZoom(event.Wheel)

		case input.EventKeyDown:
			action, ok := keyBindings[event.Key]
			if !ok || (event.Repeat && oneShot(action)) {
				continue
			}
			v.dispatch(action)
		}
	}
}

func (v *Viewer) dispatch(action app.Action) {
	switch action {
	case app.ActionQuit:
		v.running = false
	case app.ActionSave:
		if err := v.scene.SaveConfig(v.configPath); err != nil {
			v.log.Error("failed to save config", zap.String("path", v.configPath), zap.Error(err))
			return
		}
		v.log.Info("config saved", zap.String("path", v.configPath))
	case app.ActionScreenshot:
		v.wantScreenshot = true
	default:
		if err := v.scene.Apply(action); err != nil {
			v.log.Warn("action failed", zap.Stringer("action", action), zap.Error(err))
		}
	}
}

// oneShot reports whether an action should fire once per key press
// rather than repeat while the key is held.
func oneShot(a app.Action) bool {
	switch a {
	case app.ActionSave, app.ActionScreenshot, app.ActionToggleFPS:
		return true
	}
	return false
}

func (v *Viewer) saveScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.SaveRGBA(pixels, w, h)
	if err != nil {
		v.log.Error("failed to save screenshot", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Arrow keys pan the orbit center.
func (v *Viewer) handleHeldKeys() {
	var forward, right float32
	if input.IsKeyDown(sdl.SCANCODE_UP) {
		forward++
	}
	if input.IsKeyDown(sdl.SCANCODE_DOWN) {
		forward--
	}
	if input.IsKeyDown(sdl.SCANCODE_RIGHT) {
		right++
	}
	if input.IsKeyDown(sdl.SCANCODE_LEFT) {
		right--
	}
	if forward != 0 || right != 0 {
		v.scene.Camera.HandleMovement(forward, right, 0)
	}
}

// Close cleans up app resources.
func (v *Viewer) Close() {
	v.log.Info("closing")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
