// Package trajectory provides position-over-time policies for moving objects.
package trajectory

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meadow/internal/config"
)

// Trajectory advances with time and reports where its object is.
type Trajectory interface {
	Step(dt float32)
	Position() mgl32.Vec3
}

// Plane selects the plane a circular trajectory orbits in.
type Plane int

const (
	// PlaneXY orbits in the vertical XY plane: (cos, sin, 0).
	PlaneXY Plane = iota
	// PlaneXZ orbits in the horizontal ground plane: (cos, 0, sin).
	PlaneXZ
)

// ParsePlane converts "xy" or "xz" to a Plane. Empty means PlaneXY.
func ParsePlane(s string) (Plane, error) {
	switch s {
	case "", "xy":
		return PlaneXY, nil
	case "xz":
		return PlaneXZ, nil
	default:
		return PlaneXY, fmt.Errorf("unknown orbital plane %q", s)
	}
}

// Circular orbits a center point at constant angular speed.
type Circular struct {
	Center mgl32.Vec3
	Radius float32
	Speed  float32 // Radians per second
	Plane  Plane

	angle float64
}

// NewCircular creates a circular trajectory starting at angle 0.
func NewCircular(center mgl32.Vec3, radius, speed float32, plane Plane) *Circular {
	return &Circular{Center: center, Radius: radius, Speed: speed, Plane: plane}
}

// Step advances the angle by speed*dt. The angle is never wrapped.
func (c *Circular) Step(dt float32) {
	c.angle += float64(c.Speed) * float64(dt)
}

// Angle returns the accumulated angle in radians.
func (c *Circular) Angle() float64 {
	return c.angle
}

// Position returns the current point on the orbit.
func (c *Circular) Position() mgl32.Vec3 {
	cos := c.Radius * float32(math.Cos(c.angle))
	sin := c.Radius * float32(math.Sin(c.angle))
	if c.Plane == PlaneXZ {
		return c.Center.Add(mgl32.Vec3{cos, 0, sin})
	}
	return c.Center.Add(mgl32.Vec3{cos, sin, 0})
}

// Linear moves back and forth between two points.
//
// Progress t is clamped to [0, 1]. A step that lands exactly on a bound flips
// the direction for the following step. A step large enough to overshoot is
// clamped rather than reflected, so the extra distance is lost. Zero-length
// steps leave both progress and direction untouched.
type Linear struct {
	Start mgl32.Vec3
	End   mgl32.Vec3
	Speed float32 // Fraction of the path per second

	t         float32
	direction float32
}

// NewLinear creates a linear trajectory at the start point moving toward the end.
func NewLinear(start, end mgl32.Vec3, speed float32) *Linear {
	return &Linear{Start: start, End: end, Speed: speed, direction: 1}
}

// Step advances progress by direction*speed*dt.
func (l *Linear) Step(dt float32) {
	if l.direction == 0 {
		l.direction = 1
	}
	step := l.direction * l.Speed * dt
	if step == 0 {
		return
	}
	l.t = mgl32.Clamp(l.t+step, 0, 1)
	if l.t == 0 || l.t == 1 {
		l.direction = -l.direction
	}
}

// T returns the normalized progress along the path.
func (l *Linear) T() float32 {
	return l.t
}

// Direction returns +1 when heading to End and -1 when heading to Start.
func (l *Linear) Direction() float32 {
	if l.direction == 0 {
		return 1
	}
	return l.direction
}

// Position interpolates between Start and End.
func (l *Linear) Position() mgl32.Vec3 {
	return l.Start.Add(l.End.Sub(l.Start).Mul(l.t))
}

// FromConfig builds a trajectory from its config description.
func FromConfig(cfg config.TrajectoryConfig) (Trajectory, error) {
	switch cfg.Type {
	case "circular":
		plane, err := ParsePlane(cfg.Plane)
		if err != nil {
			return nil, err
		}
		return NewCircular(mgl32.Vec3(cfg.Center), cfg.Radius, cfg.Speed, plane), nil
	case "linear":
		return NewLinear(mgl32.Vec3(cfg.Start), mgl32.Vec3(cfg.End), cfg.Speed), nil
	default:
		return nil, fmt.Errorf("unknown trajectory type %q", cfg.Type)
	}
}
