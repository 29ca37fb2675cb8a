package mesh

import "math"

// Sphere builds a UV sphere centered on the origin.
//
// Vertices form a (widthSegments+1) x (heightSegments+1) grid running from
// the north pole (+Y) to the south pole; the seam column is duplicated so
// texture U can run 0..1. TexCoord V is 1 at the north pole, so images are
// expected bottom-row first. Triangles wind counter-clockwise seen from
// outside. The degenerate triangles at the poles are skipped.
func Sphere(radius float32, widthSegments, heightSegments int) *Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	m := &Mesh{
		Vertices: make([]Vertex, 0, (widthSegments+1)*(heightSegments+1)),
		Indices:  make([]uint32, 0, 6*widthSegments*(heightSegments-1)),
	}

	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		grid[iy] = make([]uint32, widthSegments+1)

		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)

			theta := v * math.Pi
			phi := u * 2 * math.Pi
			nx := -math.Cos(phi) * math.Sin(theta)
			ny := math.Cos(theta)
			nz := math.Sin(phi) * math.Sin(theta)

			grid[iy][ix] = uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{radius * float32(nx), radius * float32(ny), radius * float32(nz)},
				Normal:   [3]float32{float32(nx), float32(ny), float32(nz)},
				TexCoord: [2]float32{float32(u), float32(1 - v)},
			})
		}
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}

	return m
}
