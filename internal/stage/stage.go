// Package stage binds sequencer transitions to tweens on the visual state
// they move: the heading offset and the orbit group rotation.
package stage

import (
	"time"

	"github.com/Faultbox/orbits/internal/engine/tween"
	"github.com/Faultbox/orbits/internal/headings"
	"github.com/Faultbox/orbits/internal/orbit"
	"github.com/Faultbox/orbits/internal/sequencer"
)

// Easings for the two animated properties.
var (
	HeadingEasing  = tween.QuadInOut
	RotationEasing = tween.ExpoInOut
)

// GroupRotator turns the body group. Both orbit.System and the scene
// renderer implement it.
type GroupRotator interface {
	RotateGroupBy(delta float32, d time.Duration, easing tween.Easing)
}

// Stage owns the animated state shared by the sequencer and the renderer.
type Stage struct {
	Tweens   *tween.Engine
	Headings *headings.Set
	Orbit    *orbit.System
	// Rotator receives group rotations; the orbit system by default.
	Rotator GroupRotator
}

var _ sequencer.Animator = (*Stage)(nil)

// New creates a stage for a width x height viewport.
func New(titles [headings.Count]string, width, height int) *Stage {
	engine := tween.NewEngine()
	sys := orbit.NewSystem(engine, width, height)
	return &Stage{
		Tweens:   engine,
		Headings: headings.NewSet(titles),
		Orbit:    sys,
		Rotator:  sys,
	}
}

// ShiftHeadings moves the heading stack by viewport heights.
func (s *Stage) ShiftHeadings(by float32, d time.Duration) {
	s.Tweens.By(&s.Headings.Offset, by, d, HeadingEasing)
}

// RecenterHeadings moves the heading stack back to offset 0, replacing any
// shift in flight.
func (s *Stage) RecenterHeadings(d time.Duration) {
	s.Tweens.To(&s.Headings.Offset, 0, d, HeadingEasing)
}

// RotateGroupBy turns the orbit group about its vertical axis.
func (s *Stage) RotateGroupBy(radians float32, d time.Duration) {
	s.Rotator.RotateGroupBy(radians, d, RotationEasing)
}

// Update advances running tweens by one frame. Idle spin is applied by
// the renderer as it draws.
func (s *Stage) Update(elapsed time.Duration) {
	s.Tweens.Update(elapsed)
}

// Resize updates the camera for a new viewport.
func (s *Stage) Resize(width, height int) {
	s.Orbit.Resize(width, height)
}

// Animating reports whether any transition animation is still running.
func (s *Stage) Animating() bool {
	return s.Tweens.Active() > 0
}
