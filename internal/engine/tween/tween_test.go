package tween

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = time.Second / 60

func run(e *Engine, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		e.Update(frame)
	}
}

func TestToReachesEnd(t *testing.T) {
	e := NewEngine()
	var v float32 = 2

	e.To(&v, 10, time.Second, QuadInOut)
	require.True(t, e.Animating(&v))

	e.Update(500 * time.Millisecond)
	assert.InDelta(t, 6, v, 1e-4, "quad in-out is at the midpoint at half time")

	run(e, time.Second)
	assert.Equal(t, float32(10), v)
	assert.False(t, e.Animating(&v))
	assert.Zero(t, e.Active())
}

func TestEasedValuesStayBetweenEnds(t *testing.T) {
	for name, easing := range map[string]Easing{"quad": QuadInOut, "expo": ExpoInOut, "linear": Linear} {
		e := NewEngine()
		var v float32
		e.To(&v, 1, time.Second, easing)

		// Penner's expo curve overshoots its ends by a hair.
		const slack = 1e-3
		prev := v
		for i := 0; i < 70; i++ {
			e.Update(frame)
			assert.GreaterOrEqual(t, v, prev-slack, "%s must not move backwards", name)
			assert.LessOrEqual(t, v, float32(1+slack), name)
			prev = v
		}
		assert.Equal(t, float32(1), v, name)
	}
}

func TestByComposesWithRunningTween(t *testing.T) {
	e := NewEngine()
	var v float32

	e.By(&v, 1.5, time.Second, ExpoInOut)
	e.Update(300 * time.Millisecond)
	e.By(&v, 1.5, time.Second, ExpoInOut)

	assert.Equal(t, float32(3), e.Goal(&v))
	run(e, 2*time.Second)
	assert.Equal(t, float32(3), v)
}

func TestByFromIdleUsesCurrentValue(t *testing.T) {
	e := NewEngine()
	var v float32 = -2

	e.By(&v, -1, time.Second, QuadInOut)
	run(e, time.Second+frame)

	assert.Equal(t, float32(-3), v)
}

func TestLastWriteWins(t *testing.T) {
	e := NewEngine()
	var v float32 = -3

	// A relative move immediately followed by an absolute one: the
	// absolute tween replaces the relative one.
	e.By(&v, -1, time.Second, QuadInOut)
	e.To(&v, 0, time.Second, QuadInOut)

	assert.Equal(t, 1, e.Active())
	assert.Equal(t, float32(0), e.Goal(&v))
	run(e, time.Second+frame)
	assert.Equal(t, float32(0), v)
}

func TestReplacementStartsFromCurrentValue(t *testing.T) {
	e := NewEngine()
	var v float32

	e.To(&v, 10, time.Second, Linear)
	e.Update(500 * time.Millisecond)
	mid := v
	require.InDelta(t, 5, mid, 1e-4)

	e.To(&v, 0, time.Second, Linear)
	e.Update(0)
	assert.InDelta(t, mid, v, 1e-4, "no jump when a tween is replaced")
}

func TestZeroDurationAppliesImmediately(t *testing.T) {
	e := NewEngine()
	var v float32 = 1

	e.To(&v, 4, time.Second, Linear)
	e.To(&v, 7, 0, Linear)

	assert.Equal(t, float32(7), v)
	assert.Zero(t, e.Active())
}

func TestIndependentProperties(t *testing.T) {
	e := NewEngine()
	var a, b float32

	e.To(&a, 1, time.Second, Linear)
	e.To(&b, 2, 2*time.Second, Linear)
	run(e, time.Second+frame)

	assert.Equal(t, float32(1), a)
	assert.True(t, e.Animating(&b))
	assert.Less(t, b, float32(2))

	e.Finish()
	assert.Equal(t, float32(2), b)
	assert.Zero(t, e.Active())
}

func TestNegativeUpdateIgnored(t *testing.T) {
	e := NewEngine()
	var v float32
	e.To(&v, 1, time.Second, Linear)

	e.Update(-time.Second)
	assert.Zero(t, v)
	assert.True(t, e.Animating(&v))
}
