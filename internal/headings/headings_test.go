package headings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var titles = [Count]string{"Csilla", "Earth", "Venus", "Volcanic"}

func TestLayoutAtRest(t *testing.T) {
	s := NewSet(titles)
	places := s.Layout(800, 600)

	assert.Equal(t, float32(300), places[0].CenterY)
	assert.Equal(t, float32(400), places[0].CenterX)
	assert.True(t, places[0].Visible)
	for i := 1; i < Count; i++ {
		assert.Equal(t, float32(300+600*i), places[i].CenterY)
		assert.False(t, places[i].Visible, "heading %d", i)
	}
}

func TestLayoutFollowsOffset(t *testing.T) {
	s := NewSet(titles)
	s.Offset = -2
	places := s.Layout(800, 600)

	assert.Equal(t, float32(300), places[2].CenterY)
	assert.True(t, places[2].Visible)
	assert.False(t, places[1].Visible)
	assert.False(t, places[3].Visible)
	assert.Equal(t, 2, s.Current())
}

func TestLayoutMidTransitionShowsTwo(t *testing.T) {
	s := NewSet(titles)
	s.Offset = -0.5
	places := s.Layout(800, 600)

	assert.True(t, places[0].Visible)
	assert.True(t, places[1].Visible)
	assert.False(t, places[2].Visible)
}

func TestLayoutZeroHeight(t *testing.T) {
	s := NewSet(titles)
	for _, p := range s.Layout(800, 0) {
		assert.False(t, p.Visible)
	}
}

func TestCurrentClamps(t *testing.T) {
	tests := []struct {
		offset float32
		want   int
	}{
		{0, 0},
		{-0.4, 0},
		{-0.6, 1},
		{-3, 3},
		{-4, 3},
		{1, 0},
	}
	for _, tt := range tests {
		s := &Set{Offset: tt.offset}
		assert.Equal(t, tt.want, s.Current(), "offset %v", tt.offset)
	}
}

func TestRasterizerRendersUpperCase(t *testing.T) {
	r, err := NewRasterizer(32)
	require.NoError(t, err)
	defer r.Close()

	lower := r.Render("earth")
	upper := r.Render("EARTH")
	assert.Equal(t, upper.Bounds(), lower.Bounds())
	assert.Equal(t, upper.Pix, lower.Pix)

	// Some pixels are inked.
	var inked bool
	for i := 3; i < len(upper.Pix); i += 4 {
		if upper.Pix[i] > 0 {
			inked = true
			break
		}
	}
	assert.True(t, inked)
}

func TestRasterizerEmptyTitle(t *testing.T) {
	r, err := NewRasterizer(16)
	require.NoError(t, err)
	defer r.Close()

	img := r.Render("")
	assert.Positive(t, img.Bounds().Dy())
	assert.Positive(t, img.Bounds().Dx())
	assert.NotEmpty(t, img.Pix)
}

func TestRasterizerSmallFontEmptyTitle(t *testing.T) {
	r, err := NewRasterizer(4)
	require.NoError(t, err)
	defer r.Close()

	img := r.Render("")
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.NotEmpty(t, img.Pix)
}

func TestRasterizerRenderSet(t *testing.T) {
	r, err := NewRasterizer(24)
	require.NoError(t, err)
	defer r.Close()

	imgs := r.RenderSet(NewSet(titles))
	for i, img := range imgs {
		require.NotNil(t, img, "heading %d", i)
		assert.Greater(t, img.Bounds().Dx(), img.Bounds().Dy()/2)
	}
}

func TestNewRasterizerRejectsBadSize(t *testing.T) {
	_, err := NewRasterizer(0)
	assert.Error(t, err)
}
