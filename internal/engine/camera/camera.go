// Package camera provides the orbit camera used to look at the meadow.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meadow/internal/config"
)

// OrbitCamera orbits around a center point. Input moves the goal angles and
// distance; Update eases the current values toward them.
type OrbitCamera struct {
	// Center point to orbit around
	Center mgl32.Vec3

	// Current spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Goal values set by input
	goalDistance  float32
	goalRotationX float32
	goalRotationY float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Damping is the easing rate per second. Zero snaps immediately.
	Damping float32

	// Projection
	FOV  float32 // Vertical, degrees
	Near float32
	Far  float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		Distance:        12.0,
		RotationX:       0.6,
		RotationY:       0.0,
		MinDistance:     2.0,
		MaxDistance:     60.0,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		Damping:         8,
		FOV:             75,
		Near:            0.1,
		Far:             1000,
	}
	c.syncGoals()
	return c
}

// FromConfig creates an orbit camera from the camera config section.
func FromConfig(cfg config.CameraConfig) *OrbitCamera {
	c := NewOrbitCamera()
	if cfg.Distance > 0 {
		c.Distance = mgl32.Clamp(cfg.Distance, c.MinDistance, c.MaxDistance)
	}
	c.RotationX = mgl32.Clamp(cfg.Pitch, c.MinPitch, c.MaxPitch)
	c.RotationY = cfg.Yaw
	if cfg.FOV > 0 {
		c.FOV = cfg.FOV
	}
	if cfg.Damping >= 0 {
		c.Damping = cfg.Damping
	}
	c.syncGoals()
	return c
}

func (c *OrbitCamera) syncGoals() {
	c.goalDistance = c.Distance
	c.goalRotationX = c.RotationX
	c.goalRotationY = c.RotationY
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Center.Add(mgl32.Vec3{x, y, z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if !(aspect > 0) {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// HandleDrag updates the goal rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.goalRotationY -= deltaX * c.DragSensitivity
	c.goalRotationX = mgl32.Clamp(c.goalRotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates the goal distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	d := c.goalDistance - delta*c.goalDistance*c.ZoomSensitivity
	c.goalDistance = mgl32.Clamp(d, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the camera center point based on keyboard input.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	sinY, cosY := gomath.Sincos(float64(c.RotationY))
	dirX, dirZ := float32(sinY), float32(cosY)
	rightX, rightZ := float32(cosY), float32(-sinY)

	// Negate forward so W moves "into" the scene
	c.Center[0] += (-dirX*forward + rightX*right) * speed
	c.Center[2] += (-dirZ*forward + rightZ*right) * speed
	c.Center[1] += up * speed
}

// Update eases the current rotation and distance toward their goals.
func (c *OrbitCamera) Update(dt float32) error {
	if !(dt > 0) {
		return nil
	}
	k := float32(1)
	if c.Damping > 0 {
		k = 1 - float32(gomath.Exp(-float64(c.Damping)*float64(dt)))
	}
	c.Distance += (c.goalDistance - c.Distance) * k
	c.RotationX += (c.goalRotationX - c.RotationX) * k
	c.RotationY += (c.goalRotationY - c.RotationY) * k
	return nil
}

// Name identifies the camera in logs.
func (c *OrbitCamera) Name() string { return "camera" }
