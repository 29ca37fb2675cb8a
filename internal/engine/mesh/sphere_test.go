package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	omath "github.com/Faultbox/orbits/pkg/math"
)

func TestSphereCounts(t *testing.T) {
	tests := []struct {
		w, h         int
		wantVertices int
		wantIndices  int
	}{
		{64, 64, 65 * 65, 6 * 64 * 63},
		{8, 4, 9 * 5, 6 * 8 * 3},
		{3, 2, 4 * 3, 6 * 3 * 1},
	}

	for _, tt := range tests {
		m := Sphere(1.3, tt.w, tt.h)
		assert.Len(t, m.Vertices, tt.wantVertices, "%dx%d", tt.w, tt.h)
		assert.Len(t, m.Indices, tt.wantIndices, "%dx%d", tt.w, tt.h)
		assert.Len(t, m.Floats(), tt.wantVertices*8)
	}
}

func TestSphereClampsSegments(t *testing.T) {
	m := Sphere(1, 1, 1)
	assert.Len(t, m.Vertices, 4*3)
}

func TestSphereGeometry(t *testing.T) {
	const radius = 1.3
	m := Sphere(radius, 16, 12)

	for i, v := range m.Vertices {
		p := omath.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
		n := omath.Vec3{X: v.Normal[0], Y: v.Normal[1], Z: v.Normal[2]}

		require.InDelta(t, radius, p.Length(), 1e-5, "vertex %d off the surface", i)
		require.InDelta(t, 1, n.Length(), 1e-5, "vertex %d normal not unit", i)
		require.InDelta(t, 0, n.Scale(radius).Sub(p).Length(), 1e-5, "vertex %d normal not radial", i)
		require.GreaterOrEqual(t, v.TexCoord[0], float32(0))
		require.LessOrEqual(t, v.TexCoord[1], float32(1))
	}

	// First row is the north pole, last row the south pole.
	assert.InDelta(t, radius, m.Vertices[0].Position[1], 1e-5)
	assert.InDelta(t, -radius, m.Vertices[len(m.Vertices)-1].Position[1], 1e-5)
	assert.Equal(t, float32(1), m.Vertices[0].TexCoord[1])
}

func TestSphereIndicesInRange(t *testing.T) {
	m := Sphere(50, 64, 64)
	for i, idx := range m.Indices {
		require.Less(t, int(idx), len(m.Vertices), "index %d", i)
	}
}

func TestSphereWindsOutward(t *testing.T) {
	m := Sphere(2, 12, 8)

	for i := 0; i < len(m.Indices); i += 3 {
		a := vec(m.Vertices[m.Indices[i]].Position)
		b := vec(m.Vertices[m.Indices[i+1]].Position)
		c := vec(m.Vertices[m.Indices[i+2]].Position)

		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		require.Greater(t, normal.Dot(centroid), float32(0), "triangle %d faces inward", i/3)
	}
}

func TestSphereSeamDuplicated(t *testing.T) {
	m := Sphere(1, 8, 4)
	// Row 2 (equator): first and last column share a position but not U.
	row := 2 * 9
	first, last := m.Vertices[row], m.Vertices[row+8]
	for k := 0; k < 3; k++ {
		assert.InDelta(t, first.Position[k], last.Position[k], 1e-5)
	}
	assert.Equal(t, float32(0), first.TexCoord[0])
	assert.Equal(t, float32(1), last.TexCoord[0])
	assert.InDelta(t, 0.5, first.TexCoord[1], 1e-6)
	assert.InDelta(t, 1, math.Abs(float64(first.Position[0])), 1e-5)
}

func vec(p [3]float32) omath.Vec3 {
	return omath.Vec3{X: p[0], Y: p[1], Z: p[2]}
}
