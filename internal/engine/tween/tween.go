// Package tween animates float32 properties over time with easing.
//
// It keeps at most one tween per property. Starting a tween on a property
// that is already animating replaces the in-flight tween; the new tween
// starts from the property's current value, so the motion stays continuous.
package tween

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easing maps elapsed time to a value; see the gween ease package.
type Easing = ease.TweenFunc

// Easings used by the demo.
var (
	QuadInOut Easing = ease.InOutQuad
	ExpoInOut Easing = ease.InOutExpo
	Linear    Easing = ease.Linear
)

type track struct {
	tween *gween.Tween
	end   float32
}

// Engine owns the running tweens. It is driven from the render thread.
type Engine struct {
	tracks map[*float32]*track
}

// NewEngine creates an engine with no running tweens.
func NewEngine() *Engine {
	return &Engine{tracks: make(map[*float32]*track)}
}

// To animates *target to end over d.
func (e *Engine) To(target *float32, end float32, d time.Duration, easing Easing) {
	if d <= 0 {
		delete(e.tracks, target)
		*target = end
		return
	}
	e.tracks[target] = &track{
		tween: gween.New(*target, end, float32(d.Seconds()), easing),
		end:   end,
	}
}

// By animates *target by delta over d. The delta is applied on top of the
// end value of a tween already running on target, so relative moves
// compose instead of cutting each other short.
func (e *Engine) By(target *float32, delta float32, d time.Duration, easing Easing) {
	e.To(target, e.Goal(target)+delta, d, easing)
}

// Goal returns the value target is heading to: the end of its running
// tween, or its current value when idle.
func (e *Engine) Goal(target *float32) float32 {
	if t, ok := e.tracks[target]; ok {
		return t.end
	}
	return *target
}

// Animating reports whether a tween is running on target.
func (e *Engine) Animating(target *float32) bool {
	_, ok := e.tracks[target]
	return ok
}

// Active returns the number of running tweens.
func (e *Engine) Active() int {
	return len(e.tracks)
}

// Update advances every tween by dt and writes the new values.
func (e *Engine) Update(dt time.Duration) {
	if dt < 0 {
		return
	}
	step := float32(dt.Seconds())
	for target, t := range e.tracks {
		value, done := t.tween.Update(step)
		if done {
			*target = t.end
			delete(e.tracks, target)
			continue
		}
		*target = value
	}
}

// Finish jumps every tween to its end value.
func (e *Engine) Finish() {
	for target, t := range e.tracks {
		*target = t.end
		delete(e.tracks, target)
	}
}
