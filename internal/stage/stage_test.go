package stage

import (
	gomath "math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orbits/internal/engine/tween"
	"github.com/Faultbox/orbits/internal/headings"
	"github.com/Faultbox/orbits/internal/sequencer"
)

const eps = 1e-4

var titles = [headings.Count]string{"Csilla", "Earth", "Venus", "Volcanic"}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

// run advances the clock and the stage in 16ms frames.
func run(st *Stage, c *clock, d time.Duration) {
	const frame = 16 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		c.now = c.now.Add(frame)
		st.Update(frame)
	}
}

func TestScenarioEndToEnd(t *testing.T) {
	st := New(titles, 1280, 720)
	c := &clock{now: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	seq := sequencer.New(c.Now, st)

	// t=0: down
	require.True(t, seq.OnWheel(5).Accepted)
	run(st, c, 500*time.Millisecond)
	// t=500: up, throttled
	require.False(t, seq.OnWheel(-3).Accepted)
	run(st, c, 1600*time.Millisecond)
	assert.InDelta(t, -1, st.Headings.Offset, eps)
	assert.InDelta(t, gomath.Pi/2, st.Orbit.Group.Rotation.Y, eps)
	assert.Equal(t, 1, st.Headings.Current())

	// t=2100: down
	require.True(t, seq.OnWheel(2).Accepted)
	run(st, c, 2100*time.Millisecond)
	assert.InDelta(t, -2, st.Headings.Offset, eps)

	// t=4200: up
	require.True(t, seq.OnWheel(-1).Accepted)
	run(st, c, 2100*time.Millisecond)
	assert.InDelta(t, -1, st.Headings.Offset, eps)
	assert.Equal(t, 3, seq.Step())

	// t=6300: down, wraps to step 0 and recenters
	tr := seq.OnWheel(1)
	require.True(t, tr.Accepted)
	assert.True(t, tr.Wrapped())
	run(st, c, 1500*time.Millisecond)

	assert.False(t, st.Animating())
	assert.Equal(t, 0, seq.Step())
	assert.InDelta(t, 0, st.Headings.Offset, eps)
	assert.InDelta(t, 2*gomath.Pi, st.Orbit.Group.Rotation.Y, eps)
}

func TestRecenterOverridesShiftInFlight(t *testing.T) {
	st := New(titles, 800, 600)

	st.ShiftHeadings(-1, time.Second)
	st.Update(400 * time.Millisecond)
	st.RecenterHeadings(time.Second)
	st.Update(time.Second)

	assert.InDelta(t, 0, st.Headings.Offset, eps)
}

func TestRotationIsNeverCutShort(t *testing.T) {
	st := New(titles, 800, 600)

	st.RotateGroupBy(gomath.Pi/2, time.Second)
	st.Update(100 * time.Millisecond)
	st.RotateGroupBy(gomath.Pi/2, time.Second)
	st.Update(2 * time.Second)

	assert.InDelta(t, gomath.Pi, st.Orbit.Group.Rotation.Y, eps)
}

func TestUpdateLeavesSpinToRenderer(t *testing.T) {
	st := New(titles, 800, 600)
	st.Update(time.Second)
	for _, b := range st.Orbit.Bodies {
		assert.Zero(t, b.Spin)
	}
}

type recordingRotator struct {
	deltas []float32
}

func (r *recordingRotator) RotateGroupBy(delta float32, d time.Duration, easing tween.Easing) {
	r.deltas = append(r.deltas, delta)
}

func TestRotationGoesThroughRotator(t *testing.T) {
	st := New(titles, 800, 600)
	rec := &recordingRotator{}
	st.Rotator = rec

	st.RotateGroupBy(gomath.Pi/2, time.Second)

	assert.Equal(t, []float32{gomath.Pi / 2}, rec.deltas)
	assert.Zero(t, st.Orbit.RotationGoal())
}
