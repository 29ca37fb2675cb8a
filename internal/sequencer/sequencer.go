// Package sequencer turns a stream of wheel-scroll events into a throttled,
// cyclic sequence of presentation steps.
//
// Each accepted event advances the step counter by one (mod StepCount) and
// produces the animations for that step: a relative heading shift in the
// scroll direction, a quarter-turn of the sphere group, and on wraparound an
// absolute re-centering of the headings. Events arriving less than
// ThrottleDelay after the last accepted one are dropped.
package sequencer

import (
	"math"
	"time"

	"go.uber.org/zap"
)

const (
	// ThrottleDelay is the minimum spacing between accepted events.
	ThrottleDelay = 2000 * time.Millisecond

	// StepCount is the number of steps in one cycle.
	StepCount = 4

	// RotationStep is the sphere-group rotation per accepted event, radians.
	RotationStep = math.Pi / 2

	// TweenDuration is the duration of every animation a step triggers.
	TweenDuration = time.Second
)

// Direction is the scroll direction derived from the sign of the delta.
type Direction int

const (
	Up Direction = iota
	Down
)

// DirectionOf maps a wheel delta to a direction. Positive deltas scroll
// down; zero and negative deltas count as up.
func DirectionOf(delta float64) Direction {
	if delta > 0 {
		return Down
	}
	return Up
}

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// HeadingShift is the relative heading offset, in viewport heights, for a
// step in this direction. Scrolling down moves the headings up.
func (d Direction) HeadingShift() float32 {
	if d == Down {
		return -1
	}
	return 1
}

// Kind identifies the visual property an animation drives.
type Kind int

const (
	// HeadingShift moves the heading set relative to its current offset.
	HeadingShift Kind = iota
	// HeadingRecenter moves the heading set to the absolute zero offset.
	HeadingRecenter
	// GroupRotation turns the sphere group about its vertical axis.
	GroupRotation
)

func (k Kind) String() string {
	switch k {
	case HeadingShift:
		return "heading-shift"
	case HeadingRecenter:
		return "heading-recenter"
	case GroupRotation:
		return "group-rotation"
	default:
		return "unknown"
	}
}

// Animation describes one tween a transition asks for.
type Animation struct {
	Kind     Kind
	Value    float32 // delta for relative kinds, target for HeadingRecenter
	Relative bool
	Duration time.Duration
}

// Transition is the outcome of one scroll event.
type Transition struct {
	Accepted   bool
	Step       int
	Direction  Direction
	Animations []Animation
}

// Wrapped reports whether the transition completed a full cycle.
func (t Transition) Wrapped() bool {
	return t.Accepted && t.Step == 0
}

// Clock returns the current time.
type Clock func() time.Time

// Animator starts the animations a transition asks for. Calls must not
// block; each one starts a tween and returns.
type Animator interface {
	ShiftHeadings(by float32, d time.Duration)
	RecenterHeadings(d time.Duration)
	RotateGroupBy(radians float32, d time.Duration)
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the logger for accepted and dropped events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sequencer) {
		s.log = l
	}
}

// Sequencer is the scroll state machine. It is not safe for concurrent use;
// it is owned by the render thread.
type Sequencer struct {
	step         int
	lastAccepted time.Time
	accepted     bool

	clock    Clock
	animator Animator
	log      *zap.Logger
}

// New creates a sequencer at step 0 with the gate open.
func New(clock Clock, animator Animator, opts ...Option) *Sequencer {
	s := &Sequencer{
		clock:    clock,
		animator: animator,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Step returns the current step in [0, StepCount).
func (s *Sequencer) Step() int {
	return s.step
}

// CoolingDown reports whether an event at now would be dropped.
func (s *Sequencer) CoolingDown(now time.Time) bool {
	return s.accepted && now.Sub(s.lastAccepted) < ThrottleDelay
}

// Handle decides the outcome of a scroll event with the given delta at now
// and updates the step and gate. It has no other side effects.
func (s *Sequencer) Handle(delta float64, now time.Time) Transition {
	if s.CoolingDown(now) {
		s.log.Debug("scroll dropped",
			zap.Float64("delta", delta),
			zap.Duration("since_accepted", now.Sub(s.lastAccepted)),
		)
		return Transition{Step: s.step, Direction: DirectionOf(delta)}
	}

	s.lastAccepted = now
	s.accepted = true

	dir := DirectionOf(delta)
	s.step = (s.step + 1) % StepCount

	t := Transition{
		Accepted:  true,
		Step:      s.step,
		Direction: dir,
		Animations: []Animation{
			{Kind: HeadingShift, Value: dir.HeadingShift(), Relative: true, Duration: TweenDuration},
			{Kind: GroupRotation, Value: RotationStep, Relative: true, Duration: TweenDuration},
		},
	}
	if s.step == 0 {
		t.Animations = append(t.Animations, Animation{
			Kind:     HeadingRecenter,
			Value:    0,
			Duration: TweenDuration,
		})
	}

	s.log.Debug("scroll accepted",
		zap.Int("step", s.step),
		zap.Stringer("direction", dir),
		zap.Bool("wrapped", t.Wrapped()),
	)
	return t
}

// OnWheel handles a wheel event at the current clock time and starts the
// resulting animations.
func (s *Sequencer) OnWheel(delta float64) Transition {
	t := s.Handle(delta, s.clock())
	if !t.Accepted {
		return t
	}

	for _, a := range t.Animations {
		switch a.Kind {
		case HeadingShift:
			s.animator.ShiftHeadings(a.Value, a.Duration)
		case HeadingRecenter:
			s.animator.RecenterHeadings(a.Duration)
		case GroupRotation:
			s.animator.RotateGroupBy(a.Value, a.Duration)
		}
	}
	return t
}
