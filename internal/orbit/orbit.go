// Package orbit holds the scene-graph state of the demo: a camera, a
// slowly tilted group of bodies on a circular orbit, and the idle spin of
// each body. It does no drawing; the scene renderer reads matrices from it.
package orbit

import (
	gomath "math"
	"time"

	"github.com/Faultbox/orbits/internal/engine/camera"
	"github.com/Faultbox/orbits/internal/engine/tween"
	"github.com/Faultbox/orbits/pkg/math"
)

// Scene layout.
const (
	BodyCount   = 4
	BodyRadius  = 1.3
	OrbitRadius = 4.5
	Segments    = 64

	StarRadius  = 50
	StarOpacity = 0.8

	// SpinRate is the idle self-rotation of each body, radians per second.
	SpinRate = 0.1

	GroupTilt    = 0.1
	GroupOffsetY = -0.8
)

// Camera parameters.
const (
	CameraFov  = 30
	CameraNear = 0.1
	CameraFar  = 100
	CameraZ    = 9
)

// MaxPixelRatio caps the drawable-to-window scale on dense displays.
const MaxPixelRatio = 2

// RenderSize returns the size to render at for a window of winW x winH
// points whose drawable is drawW x drawH pixels, with the pixel ratio
// capped at MaxPixelRatio. An unknown window size leaves the drawable
// size unchanged.
func RenderSize(winW, winH, drawW, drawH int) (int, int) {
	if winW <= 0 || winH <= 0 {
		return drawW, drawH
	}
	return min(drawW, winW*MaxPixelRatio), min(drawH, winH*MaxPixelRatio)
}

// Body is one orbiting sphere.
type Body struct {
	// Position in group space, on the orbit circle.
	Position math.Vec3
	// Spin is the self-rotation about Y, radians. Only ever grows.
	Spin float32
}

// Group is the transform shared by all bodies.
type Group struct {
	Rotation math.Vec3
	Position math.Vec3
}

// System is the orbit scene state.
type System struct {
	Camera *camera.PerspectiveCamera
	Group  Group
	Bodies [BodyCount]Body

	tweens *tween.Engine
}

// NewSystem lays out the bodies for a width x height viewport. Group
// rotation tweens run on the given engine.
func NewSystem(tweens *tween.Engine, width, height int) *System {
	cam := camera.NewPerspectiveCamera(CameraFov, CameraNear, CameraFar, width, height)
	cam.Position = math.Vec3{Z: CameraZ}

	s := &System{
		Camera: cam,
		Group: Group{
			Rotation: math.Vec3{X: GroupTilt},
			Position: math.Vec3{Y: GroupOffsetY},
		},
		tweens: tweens,
	}
	for i := range s.Bodies {
		angle := float32(i) / BodyCount * 2 * gomath.Pi
		s.Bodies[i].Position = math.OnCircleXZ(OrbitRadius, angle)
	}
	return s
}

// Advance applies idle spin for elapsed time. Negative elapsed is ignored
// so the spin never decreases.
func (s *System) Advance(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	delta := float32(elapsed.Seconds()) * SpinRate
	for i := range s.Bodies {
		s.Bodies[i].Spin += delta
	}
}

// RotateGroupBy starts an eased rotation of the group about Y by delta
// radians, relative to where any running rotation would end.
func (s *System) RotateGroupBy(delta float32, d time.Duration, easing tween.Easing) {
	s.tweens.By(&s.Group.Rotation.Y, delta, d, easing)
}

// RotationGoal returns the group Y rotation once running tweens settle.
func (s *System) RotationGoal() float32 {
	return s.tweens.Goal(&s.Group.Rotation.Y)
}

// Resize updates the camera projection.
func (s *System) Resize(width, height int) {
	s.Camera.Resize(width, height)
}

// GroupMatrix returns the group's model matrix.
func (s *System) GroupMatrix() math.Mat4 {
	return math.TranslateVec(s.Group.Position).Mul(math.RotateEuler(s.Group.Rotation))
}

// BodyMatrix returns the world matrix of body i.
func (s *System) BodyMatrix(i int) math.Mat4 {
	b := s.Bodies[i]
	local := math.TranslateVec(b.Position).Mul(math.RotateY(b.Spin))
	return s.GroupMatrix().Mul(local)
}

// StarMatrix returns the starfield model matrix. The starfield sits at the
// origin, outside the group.
func (s *System) StarMatrix() math.Mat4 {
	return math.Identity()
}
