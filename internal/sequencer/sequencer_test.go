package sequencer

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	method string
	value  float32
	d      time.Duration
}

type recordingAnimator struct {
	calls []call
}

func (r *recordingAnimator) ShiftHeadings(by float32, d time.Duration) {
	r.calls = append(r.calls, call{"shift", by, d})
}

func (r *recordingAnimator) RecenterHeadings(d time.Duration) {
	r.calls = append(r.calls, call{"recenter", 0, d})
}

func (r *recordingAnimator) RotateGroupBy(radians float32, d time.Duration) {
	r.calls = append(r.calls, call{"rotate", radians, d})
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Set(ms int) { c.now = epoch.Add(time.Duration(ms) * time.Millisecond) }

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func newTestSequencer() (*Sequencer, *fakeClock, *recordingAnimator) {
	clock := &fakeClock{now: epoch}
	anim := &recordingAnimator{}
	return New(clock.Now, anim), clock, anim
}

func TestInitialState(t *testing.T) {
	s, _, _ := newTestSequencer()

	assert.Equal(t, 0, s.Step())
	assert.False(t, s.CoolingDown(epoch), "gate starts open")
}

func TestScenario(t *testing.T) {
	s, clock, anim := newTestSequencer()

	steps := []struct {
		ms       int
		delta    float64
		accepted bool
		step     int
		calls    []call
	}{
		{0, 5, true, 1, []call{{"shift", -1, time.Second}, {"rotate", RotationStep, time.Second}}},
		{500, -3, false, 1, nil},
		{2100, 2, true, 2, []call{{"shift", -1, time.Second}, {"rotate", RotationStep, time.Second}}},
		{4200, -1, true, 3, []call{{"shift", 1, time.Second}, {"rotate", RotationStep, time.Second}}},
		{6300, 1, true, 0, []call{
			{"shift", -1, time.Second},
			{"rotate", RotationStep, time.Second},
			{"recenter", 0, time.Second},
		}},
	}

	var rotation float32
	for _, st := range steps {
		anim.calls = nil
		clock.Set(st.ms)

		tr := s.OnWheel(st.delta)

		assert.Equal(t, st.accepted, tr.Accepted, "t=%dms", st.ms)
		assert.Equal(t, st.step, s.Step(), "t=%dms", st.ms)
		assert.Equal(t, st.calls, anim.calls, "t=%dms", st.ms)

		for _, c := range anim.calls {
			if c.method == "rotate" {
				rotation += c.value
			}
		}
	}

	assert.InDelta(t, 2*3.14159265, rotation, 1e-5, "four accepted steps make a full turn")
}

func TestCyclicInvariant(t *testing.T) {
	s, _, _ := newTestSequencer()

	for n := 1; n <= 4*StepCount+3; n++ {
		tr := s.Handle(1, at(n*int(ThrottleDelay/time.Millisecond)))
		require.True(t, tr.Accepted, "event %d", n)
		require.Equal(t, n%StepCount, s.Step(), "event %d", n)
		require.Equal(t, n%StepCount, tr.Step, "event %d", n)
	}
}

func TestThrottleInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s, _, _ := newTestSequencer()

	var lastAccepted time.Time
	var haveAccepted bool
	now := epoch
	for i := 0; i < 500; i++ {
		now = now.Add(time.Duration(rng.Intn(900)) * time.Millisecond)
		before := s.Step()

		tr := s.Handle(rng.Float64()*2-1, now)

		if haveAccepted && now.Sub(lastAccepted) < ThrottleDelay {
			require.False(t, tr.Accepted, "event %d inside the window must be dropped", i)
			require.Equal(t, before, s.Step())
			require.Empty(t, tr.Animations)
			continue
		}
		require.True(t, tr.Accepted, "event %d outside the window must be accepted", i)
		lastAccepted = now
		haveAccepted = true
	}
}

func TestThrottleBoundary(t *testing.T) {
	s, _, _ := newTestSequencer()

	require.True(t, s.Handle(1, at(0)).Accepted)
	assert.False(t, s.Handle(1, at(1999)).Accepted, "1ms short of the window")
	assert.True(t, s.CoolingDown(at(1999)))
	assert.False(t, s.CoolingDown(at(2000)))
	assert.True(t, s.Handle(1, at(2000)).Accepted, "exactly at the window edge")
}

func TestDroppedEventsAreNotReplayed(t *testing.T) {
	s, clock, anim := newTestSequencer()

	s.OnWheel(1)
	for ms := 10; ms < 2000; ms += 10 {
		clock.Set(ms)
		s.OnWheel(1)
	}
	assert.Len(t, anim.calls, 2, "only the first event of the window animates")

	// Nothing fires later on its own; only a new event past the window does.
	clock.Set(5000)
	assert.Len(t, anim.calls, 2)
	s.OnWheel(1)
	assert.Len(t, anim.calls, 4)
	assert.Equal(t, 2, s.Step())
}

func TestWraparoundRecentering(t *testing.T) {
	s, _, _ := newTestSequencer()

	for n := 1; n <= 12; n++ {
		tr := s.Handle(-1, at(n*2500))

		var recenters, shifts int
		for _, a := range tr.Animations {
			switch a.Kind {
			case HeadingRecenter:
				recenters++
				assert.False(t, a.Relative)
				assert.Zero(t, a.Value)
			case HeadingShift:
				shifts++
				assert.True(t, a.Relative)
			}
		}

		assert.Equal(t, 1, shifts, "event %d", n)
		if tr.Step == 0 {
			assert.True(t, tr.Wrapped())
			assert.Equal(t, 1, recenters, "event %d wraps", n)
			assert.Len(t, tr.Animations, 3)
		} else {
			assert.False(t, tr.Wrapped())
			assert.Zero(t, recenters, "event %d", n)
			assert.Len(t, tr.Animations, 2)
		}
	}
}

func TestDirectionMapping(t *testing.T) {
	tests := []struct {
		delta float64
		want  Direction
		shift float32
	}{
		{120, Down, -1},
		{0.001, Down, -1},
		{0, Up, 1},
		{-0.001, Up, 1},
		{-120, Up, 1},
	}

	for _, tt := range tests {
		s, _, _ := newTestSequencer()
		tr := s.Handle(tt.delta, epoch)

		require.True(t, tr.Accepted)
		assert.Equal(t, tt.want, tr.Direction, "delta %v", tt.delta)
		for _, a := range tr.Animations {
			switch a.Kind {
			case HeadingShift:
				assert.Equal(t, tt.shift, a.Value, "delta %v", tt.delta)
			case GroupRotation:
				assert.Equal(t, float32(RotationStep), a.Value, "rotation ignores direction")
			}
		}
	}
}

func TestRejectedTransitionCarriesState(t *testing.T) {
	s, _, _ := newTestSequencer()
	s.Handle(1, at(0))

	tr := s.Handle(-4, at(100))
	assert.False(t, tr.Accepted)
	assert.False(t, tr.Wrapped())
	assert.Equal(t, 1, tr.Step)
	assert.Equal(t, Up, tr.Direction)
	assert.Nil(t, tr.Animations)
}

func TestKindAndDirectionStrings(t *testing.T) {
	assert.Equal(t, "down", Down.String())
	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "heading-shift", HeadingShift.String())
	assert.Equal(t, "heading-recenter", HeadingRecenter.String())
	assert.Equal(t, "group-rotation", GroupRotation.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
