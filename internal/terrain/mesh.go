package terrain

import "github.com/Faultbox/midgard-assets/pkg/math"

// buildGrid lays out resolution x resolution vertices over a square of the
// given world size on the XZ plane. Heights are filled in by applyHeights.
func buildGrid(resolution int, size float32) Mesh {
	if resolution < 2 {
		return Mesh{}
	}

	step := size / float32(resolution-1)
	uvStep := 1 / float32(resolution-1)

	vertices := make([]Vertex, 0, resolution*resolution)
	for row := 0; row < resolution; row++ {
		for col := 0; col < resolution; col++ {
			vertices = append(vertices, Vertex{
				Position: math.Vec3{X: float32(col) * step, Z: float32(row) * step},
				Normal:   math.Vec3{Y: 1},
				TexCoord: [2]float32{float32(col) * uvStep, float32(row) * uvStep},
			})
		}
	}

	cells := resolution - 1
	indices := make([]uint32, 0, cells*cells*6)
	for row := 0; row < cells; row++ {
		for col := 0; col < cells; col++ {
			tl := uint32(row*resolution + col)
			tr := tl + 1
			bl := tl + uint32(resolution)
			br := bl + 1
			// counter-clockwise seen from +Y
			indices = append(indices,
				tl, bl, tr,
				tr, bl, br,
			)
		}
	}

	return Mesh{Vertices: vertices, Indices: indices}
}

func applyHeights(m *Mesh, heights []float32, resolution int) {
	n := min(len(m.Vertices), resolution*resolution, len(heights))
	for i := 0; i < n; i++ {
		m.Vertices[i].Position.Y = heights[i]
	}
}

// computeNormals accumulates face normals on shared vertices and normalizes
// the result, giving smooth shading across cells.
func computeNormals(m *Mesh) {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math.Vec3{}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		pa := m.Vertices[a].Position
		edge1 := m.Vertices[b].Position.Sub(pa)
		edge2 := m.Vertices[c].Position.Sub(pa)
		n := edge1.Cross(edge2)

		m.Vertices[a].Normal = m.Vertices[a].Normal.Add(n)
		m.Vertices[b].Normal = m.Vertices[b].Normal.Add(n)
		m.Vertices[c].Normal = m.Vertices[c].Normal.Add(n)
	}

	for i := range m.Vertices {
		n := m.Vertices[i].Normal.Normalize()
		if n == (math.Vec3{}) {
			n = math.Vec3{Y: 1}
		}
		m.Vertices[i].Normal = n
	}
}

func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		b.Min = b.Min.Min(v.Position)
		b.Max = b.Max.Max(v.Position)
	}
	return b
}
