package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/Faultbox/midgard-assets/pkg/meta"
	"github.com/Faultbox/midgard-assets/pkg/terra"
)

// writeTerrain writes a heightfield and its record to dir.
func writeTerrain(t *testing.T, dir, name string, m meta.TerrainMeta, heights []float32) (string, meta.Record) {
	t.Helper()
	file := filepath.Join(dir, name+".terra")
	if err := terra.EncodeFile(file, heights); err != nil {
		t.Fatalf("EncodeFile failed: %v", err)
	}
	rec := meta.NewRecord(m, time.Now())
	if err := meta.Save(meta.MetaPath(file), rec); err != nil {
		t.Fatalf("meta.Save failed: %v", err)
	}
	return file, rec
}

// writePNG writes a w*h PNG and its TEXTURE record to dir.
func writePNG(t *testing.T, dir, name string, w, h int) (string, meta.Record) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	file := filepath.Join(dir, name+".png")
	if err := os.WriteFile(file, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	rec := meta.NewRecord(meta.TextureMeta{}, time.Now())
	if err := meta.Save(meta.MetaPath(file), rec); err != nil {
		t.Fatalf("meta.Save failed: %v", err)
	}
	return file, rec
}

// newTexture creates an in-memory texture asset without a file.
func newTexture(t *testing.T, name string) *TextureAsset {
	t.Helper()
	tex, err := NewTextureAsset(meta.NewRecord(meta.TextureMeta{}, time.Now()), name+".png")
	if err != nil {
		t.Fatalf("NewTextureAsset failed: %v", err)
	}
	return tex
}

// loadedTerrain returns a terrain asset loaded from a 4x4 heightfield.
func loadedTerrain(t *testing.T) *TerrainAsset {
	t.Helper()
	file, rec := writeTerrain(t, t.TempDir(), "hills", meta.TerrainMeta{Size: 30}, terra.Flat(4, 1))
	a, err := NewTerrainAsset(rec, file)
	if err != nil {
		t.Fatalf("NewTerrainAsset failed: %v", err)
	}
	if err := a.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return a
}

// gzipRaw compresses raw bytes as a terra stream body.
func gzipRaw(raw []byte) []byte {
	var out bytes.Buffer
	zw := gzip.NewWriter(&out)
	zw.Write(raw)
	zw.Close()
	return out.Bytes()
}
