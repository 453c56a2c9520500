package terrain

import (
	stdmath "math"

	"github.com/Faultbox/midgard-assets/pkg/math"
)

// Terrain is a square heightfield terrain.
//
// Size is the world-space edge length. The vertex resolution is derived
// from the sample count: floor(sqrt(len(heights))) vertices per side.
// Samples beyond resolution*resolution are ignored.
type Terrain struct {
	Size       int
	Resolution int

	heights []float32
	mesh    Mesh
	texture TerrainTexture

	initialized bool
	version     int
}

// New creates a terrain over heights. The slice is used as is, not copied.
func New(size int, heights []float32) *Terrain {
	return &Terrain{
		Size:       size,
		Resolution: int(stdmath.Sqrt(float64(len(heights)))),
		heights:    heights,
	}
}

// Init builds the vertex grid and index buffer. Calling it again is a no-op.
func (t *Terrain) Init() {
	if t.initialized {
		return
	}
	t.mesh = buildGrid(t.Resolution, float32(t.Size))
	t.initialized = true
}

// Update copies heights into the grid and recomputes normals and bounds.
func (t *Terrain) Update() {
	if !t.initialized {
		t.Init()
	}
	applyHeights(&t.mesh, t.heights, t.Resolution)
	computeNormals(&t.mesh)
	t.mesh.Bounds = computeBounds(t.mesh.Vertices)
	t.version++
}

// Version counts Update calls.
func (t *Terrain) Version() int {
	return t.version
}

// Mesh returns the terrain mesh. Empty before Init.
func (t *Terrain) Mesh() *Mesh {
	return &t.mesh
}

// TerrainTexture returns the splat texture state.
func (t *Terrain) TerrainTexture() *TerrainTexture {
	return &t.texture
}

// HeightAt returns the bilinearly interpolated height at world position
// (x, z). Positions outside the terrain are clamped to its edge.
func (t *Terrain) HeightAt(x, z float32) float32 {
	if t.Resolution < 2 {
		if t.Resolution == 1 {
			return t.heights[0]
		}
		return 0
	}

	cell := float32(t.Size) / float32(t.Resolution-1)
	fx := math.Clamp(x/cell, 0, float32(t.Resolution-1))
	fz := math.Clamp(z/cell, 0, float32(t.Resolution-1))

	col := min(int(fx), t.Resolution-2)
	row := min(int(fz), t.Resolution-2)
	tx := fx - float32(col)
	tz := fz - float32(row)

	h00 := t.sample(col, row)
	h10 := t.sample(col+1, row)
	h01 := t.sample(col, row+1)
	h11 := t.sample(col+1, row+1)

	near := math.Lerp(h00, h10, tx)
	far := math.Lerp(h01, h11, tx)
	return math.Lerp(near, far, tz)
}

func (t *Terrain) sample(col, row int) float32 {
	return t.heights[row*t.Resolution+col]
}
