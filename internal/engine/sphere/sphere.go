// Package sphere provides the moving spheres that push grass aside.
package sphere

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/internal/engine/trajectory"
)

// Sphere follows a trajectory and influences the grass around it.
type Sphere struct {
	name       string
	Radius     float32
	Color      mgl32.Vec3
	position   mgl32.Vec3
	trajectory trajectory.Trajectory
}

// New creates a sphere placed at the trajectory's starting point.
func New(name string, radius float32, color mgl32.Vec3, t trajectory.Trajectory) *Sphere {
	return &Sphere{
		name:       name,
		Radius:     radius,
		Color:      color,
		position:   t.Position(),
		trajectory: t,
	}
}

// FromConfig creates a sphere from its config entry.
func FromConfig(cfg config.SphereConfig) (*Sphere, error) {
	t, err := trajectory.FromConfig(cfg.Trajectory)
	if err != nil {
		return nil, fmt.Errorf("sphere %q: %w", cfg.Name, err)
	}
	if !(cfg.Radius > 0) {
		return nil, fmt.Errorf("sphere %q: radius must be positive, got %v", cfg.Name, cfg.Radius)
	}
	return New(cfg.Name, cfg.Radius, mgl32.Vec3(cfg.Color.RGB()), t), nil
}

// Update steps the trajectory and moves the sphere to its new position.
func (s *Sphere) Update(dt float32) error {
	s.trajectory.Step(dt)
	p := s.trajectory.Position()
	for _, c := range p {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return fmt.Errorf("sphere %q at %v: %w", s.name, p, scene.ErrNonFinite)
		}
	}
	s.position = p
	return nil
}

// Position returns the sphere center in world space.
func (s *Sphere) Position() mgl32.Vec3 {
	return s.position
}

// Center is the sphere's own position, not its lowest point, so grass bends
// away from the middle of the ball.
func (s *Sphere) Center() mgl32.Vec3 {
	return s.position
}

// InfluenceRadius equals the sphere radius.
func (s *Sphere) InfluenceRadius() float32 {
	return s.Radius
}

// Name returns the configured sphere name.
func (s *Sphere) Name() string {
	if s.name == "" {
		return "sphere"
	}
	return s.name
}

// Model returns the model matrix for drawing.
func (s *Sphere) Model() mgl32.Mat4 {
	return mgl32.Translate3D(s.position[0], s.position[1], s.position[2])
}
