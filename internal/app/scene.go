// Package app wires the meadow together: a Scene built from config, the
// actions that drive it and a headless runner. The windowed loop lives in
// package viewer.
package app

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/camera"
	"github.com/Faultbox/meadow/internal/engine/grass"
	"github.com/Faultbox/meadow/internal/engine/ground"
	"github.com/Faultbox/meadow/internal/engine/options"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/internal/engine/sphere"
)

// Scene is one running meadow: options, entities and the update schedule.
type Scene struct {
	cfg *config.Config
	log *zap.Logger

	Options  *options.Set
	Registry *scene.Registry
	Ground   *ground.Ground
	Spheres  []*sphere.Sphere
	Camera   *camera.OrbitCamera

	seed    uint64
	reloads <-chan *config.Config
	frame   uint64
}

// NewScene builds a scene from cfg. A zero blade seed picks a random one,
// which is logged so the field can be reproduced.
func NewScene(cfg *config.Config, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}

	seed := cfg.Blades.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	opts, err := options.FromConfig(cfg, log.Named("options"))
	if err != nil {
		return nil, fmt.Errorf("load options: %w", err)
	}

	s := &Scene{
		cfg:      cfg,
		log:      log,
		Options:  opts,
		Registry: scene.NewRegistry(log.Named("scene")),
		seed:     seed,
	}

	// Spheres move before the ground samples them, so the grass sees
	// this frame's positions.
	for _, sc := range cfg.Spheres {
		sph, err := sphere.FromConfig(sc)
		if err != nil {
			return nil, err
		}
		s.Registry.Instantiate(sph)
		s.Spheres = append(s.Spheres, sph)
	}

	g, err := ground.New(ground.Params{
		Options:  s.Options,
		Spatials: s.Registry.Spatials(),
		Rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Rotation: grass.RotationRange{
			Min: mgl32.Vec3(cfg.Blades.RotationMin),
			Max: mgl32.Vec3(cfg.Blades.RotationMax),
		},
		Log: log.Named("ground"),
	})
	if err != nil {
		return nil, fmt.Errorf("create ground: %w", err)
	}
	s.Ground = g
	s.Registry.Instantiate(g)

	s.Camera = camera.FromConfig(cfg.Camera)
	s.Registry.Instantiate(s.Camera)

	log.Info("scene created",
		zap.Uint64("seed", seed),
		zap.Int("blades", g.BladeCount()),
		zap.Int("spheres", len(s.Spheres)),
		zap.Int("updatables", s.Registry.Updatables()),
	)
	return s, nil
}

// Seed returns the blade placement seed in use.
func (s *Scene) Seed() uint64 {
	return s.seed
}

// Frame returns the number of completed steps.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// WatchConfig makes Step apply configs received on ch.
func (s *Scene) WatchConfig(ch <-chan *config.Config) {
	s.reloads = ch
}

// Step applies pending config reloads, then updates every entity once.
func (s *Scene) Step(dt float32) error {
	s.applyReloads()
	if err := s.Registry.Tick(dt); err != nil {
		return fmt.Errorf("frame %d: %w", s.frame, err)
	}
	s.frame++
	return nil
}

func (s *Scene) applyReloads() {
	if s.reloads == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-s.reloads:
			if !ok {
				s.reloads = nil
				return
			}
			changed, err := s.Options.ApplyConfig(cfg)
			if err != nil {
				s.log.Warn("config reload rejected", zap.Error(err))
				continue
			}
			if len(changed) > 0 {
				s.log.Info("config reloaded", zap.Strings("changed", changed))
			}
		default:
			return
		}
	}
}

// SaveConfig writes the current option values, merged into the startup
// config, to path.
func (s *Scene) SaveConfig(path string) error {
	out := *s.cfg
	s.Options.WriteConfig(&out)
	if path == "" {
		return out.Save()
	}
	return out.SaveTo(path)
}
