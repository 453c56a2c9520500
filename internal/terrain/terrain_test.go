package terrain

import (
	"testing"

	"github.com/Faultbox/midgard-assets/pkg/math"
)

type fakeTexture string

func (f fakeTexture) UUID() string { return string(f) }

// createTestHeights returns resolution^2 samples where height = col + 10*row.
func createTestHeights(resolution int) []float32 {
	heights := make([]float32, resolution*resolution)
	for row := 0; row < resolution; row++ {
		for col := 0; col < resolution; col++ {
			heights[row*resolution+col] = float32(col + 10*row)
		}
	}
	return heights
}

func TestNew_Resolution(t *testing.T) {
	tests := []struct {
		samples  int
		expected int
	}{
		{0, 0},
		{1, 1},
		{16, 4},
		{17, 4}, // extra samples ignored
		{180 * 180, 180},
	}

	for _, tc := range tests {
		tr := New(1200, make([]float32, tc.samples))
		if tr.Resolution != tc.expected {
			t.Errorf("%d samples: expected resolution %d, got %d", tc.samples, tc.expected, tr.Resolution)
		}
	}
}

func TestInitUpdate(t *testing.T) {
	tr := New(30, createTestHeights(4))
	tr.Init()

	mesh := tr.Mesh()
	if len(mesh.Vertices) != 16 {
		t.Fatalf("expected 16 vertices, got %d", len(mesh.Vertices))
	}
	if len(mesh.Indices) != 3*3*6 {
		t.Errorf("expected %d indices, got %d", 3*3*6, len(mesh.Indices))
	}

	tr.Update()
	if tr.Version() != 1 {
		t.Errorf("expected version 1 after one update, got %d", tr.Version())
	}

	last := mesh.Vertices[15].Position
	if last != (math.Vec3{X: 30, Y: 33, Z: 30}) {
		t.Errorf("unexpected far corner %v", last)
	}

	b := mesh.Bounds
	if b.Min != (math.Vec3{}) || b.Max != (math.Vec3{X: 30, Y: 33, Z: 30}) {
		t.Errorf("unexpected bounds %+v", b)
	}
}

func TestUpdate_FlatNormalsPointUp(t *testing.T) {
	tr := New(100, make([]float32, 9))
	tr.Init()
	tr.Update()

	for i, v := range tr.Mesh().Vertices {
		if v.Normal != (math.Vec3{Y: 1}) {
			t.Errorf("vertex %d: expected up normal, got %v", i, v.Normal)
		}
	}
}

func TestUpdate_WithoutInit(t *testing.T) {
	tr := New(10, make([]float32, 4))
	tr.Update()
	if len(tr.Mesh().Vertices) != 4 {
		t.Errorf("Update should initialize the grid, got %d vertices", len(tr.Mesh().Vertices))
	}
}

func TestHeightAt(t *testing.T) {
	// 3x3 grid over 20 units: cell size 10
	tr := New(20, createTestHeights(3))

	tests := []struct {
		x, z     float32
		expected float32
	}{
		{0, 0, 0},
		{10, 0, 1},
		{0, 10, 10},
		{5, 0, 0.5},
		{5, 5, 5.5},
		{20, 20, 22},
		{-5, -5, 0},   // clamped
		{100, 100, 22}, // clamped
	}

	for _, tc := range tests {
		if got := tr.HeightAt(tc.x, tc.z); got != tc.expected {
			t.Errorf("HeightAt(%v, %v) = %v, expected %v", tc.x, tc.z, got, tc.expected)
		}
	}

	if New(10, nil).HeightAt(1, 1) != 0 {
		t.Error("empty terrain should report height 0")
	}
	if New(10, []float32{7}).HeightAt(1, 1) != 7 {
		t.Error("single-sample terrain should report its only sample")
	}
}

func TestTerrainTexture(t *testing.T) {
	var tt TerrainTexture

	tt.SetSplatmap(NewSplatMap(fakeTexture("sm")))
	if tt.Splatmap() == nil || tt.Splatmap().Texture.UUID() != "sm" {
		t.Error("splatmap not set")
	}
	tt.SetSplatmap(nil)
	if tt.Splatmap() != nil {
		t.Error("splatmap not removed")
	}

	tt.SetSplatTexture(NewSplatTexture(ChannelR, fakeTexture("rock")))
	tt.SetSplatTexture(NewSplatTexture(ChannelR, fakeTexture("sand")))
	if got := tt.Texture(ChannelR); got == nil || got.Texture.UUID() != "sand" {
		t.Errorf("expected channel r = sand, got %v", got)
	}
	if tt.Count() != 1 {
		t.Errorf("expected 1 bound channel, got %d", tt.Count())
	}

	tt.RemoveTexture(ChannelR)
	tt.RemoveTexture(ChannelG) // already empty
	if tt.Texture(ChannelR) != nil || tt.Count() != 0 {
		t.Error("channel r not removed")
	}

	tt.SetSplatTexture(NewSplatTexture(Channel(42), fakeTexture("x")))
	if tt.Count() != 0 || tt.Texture(Channel(42)) != nil {
		t.Error("out-of-range channel should be ignored")
	}
}

func TestChannel_String(t *testing.T) {
	want := map[Channel]string{
		ChannelBase: "base", ChannelR: "r", ChannelG: "g", ChannelB: "b", ChannelA: "a", Channel(9): "unknown",
	}
	for c, name := range want {
		if c.String() != name {
			t.Errorf("%d.String() = %q, expected %q", c, c.String(), name)
		}
	}
}
