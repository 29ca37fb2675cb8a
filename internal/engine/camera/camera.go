// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/orbits/pkg/math"
)

// PerspectiveCamera is a fixed camera looking down -Z from its position.
type PerspectiveCamera struct {
	// Vertical field of view, radians
	FovY float32
	Near float32
	Far  float32

	Position math.Vec3
	Target   math.Vec3

	aspect     float32
	projection math.Mat4
}

// NewPerspectiveCamera creates a camera with the given vertical field of
// view in degrees, sized for a width x height viewport.
func NewPerspectiveCamera(fovDegrees, near, far float32, width, height int) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FovY:   fovDegrees * gomath.Pi / 180,
		Near:   near,
		Far:    far,
		aspect: 1,
	}
	c.Resize(width, height)
	return c
}

// Resize recomputes the projection for a new viewport size. The result
// depends only on the arguments, so repeated calls do not drift. A zero or
// negative size keeps the previous projection (minimized windows report 0).
func (c *PerspectiveCamera) Resize(width, height int) {
	if width > 0 && height > 0 {
		c.aspect = float32(width) / float32(height)
	}
	c.projection = math.Perspective(c.FovY, c.aspect, c.Near, c.Far)
}

// Aspect returns the current width/height ratio.
func (c *PerspectiveCamera) Aspect() float32 {
	return c.aspect
}

// ProjectionMatrix returns the projection for the current viewport.
func (c *PerspectiveCamera) ProjectionMatrix() math.Mat4 {
	return c.projection
}

// ViewMatrix returns the view matrix for this camera.
func (c *PerspectiveCamera) ViewMatrix() math.Mat4 {
	target := c.Target
	if target == c.Position {
		target = c.Position.Sub(math.Vec3{Z: 1})
	}
	return math.LookAt(c.Position, target, math.Vec3{Y: 1})
}

// ViewProjection returns projection * view.
func (c *PerspectiveCamera) ViewProjection() math.Mat4 {
	return c.projection.Mul(c.ViewMatrix())
}
