// Package headings models the stack of full-viewport headings drawn over
// the scene. The whole stack moves through one offset, measured in
// viewport heights: at offset 0 heading 0 fills the viewport, at -1
// heading 1 does.
package headings

import "math"

// Count is the number of headings, one per sequencer step.
const Count = 4

// Set is the heading stack.
type Set struct {
	Titles [Count]string
	// Offset of the stack in viewport heights. Animated by the stage.
	Offset float32
}

// NewSet creates a heading stack at offset 0.
func NewSet(titles [Count]string) *Set {
	return &Set{Titles: titles}
}

// Placement is where one heading lands in a viewport, in pixels from the
// top-left corner.
type Placement struct {
	Index int
	// CenterX, CenterY of the heading's slot.
	CenterX float32
	CenterY float32
	// Visible reports whether any part of the slot overlaps the viewport.
	Visible bool
}

// Layout places each heading for a width x height viewport. Heading i
// occupies the slot starting at (i + Offset) * height.
func (s *Set) Layout(width, height int) [Count]Placement {
	var out [Count]Placement
	h := float32(height)
	for i := range out {
		top := (float32(i) + s.Offset) * h
		out[i] = Placement{
			Index:   i,
			CenterX: float32(width) / 2,
			CenterY: top + h/2,
			Visible: height > 0 && top < h && top+h > 0,
		}
	}
	return out
}

// Current returns the heading nearest to filling the viewport.
func (s *Set) Current() int {
	i := int(math.Round(float64(-s.Offset)))
	return max(0, min(i, Count-1))
}
