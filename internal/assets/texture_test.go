package assets

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/midgard-assets/pkg/meta"
)

// createTestTGA builds a TGA file with the given pixels (BGRA order on disk).
func createTestTGA(width, height int, bpp int, imageType byte, body []byte) []byte {
	header := make([]byte, tgaHeaderSize)
	header[2] = imageType
	header[12] = byte(width)
	header[13] = byte(width >> 8)
	header[14] = byte(height)
	header[15] = byte(height >> 8)
	header[16] = byte(bpp)
	header[17] = 0x20 // top to bottom
	return append(header, body...)
}

func TestTextureAsset_LoadPNG(t *testing.T) {
	file, rec := writePNG(t, t.TempDir(), "grass", 64, 32)

	tex, err := NewTextureAsset(rec, file)
	if err != nil {
		t.Fatalf("NewTextureAsset failed: %v", err)
	}
	if err := tex.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if w, h := tex.Size(); w != 64 || h != 32 {
		t.Errorf("expected 64x32, got %dx%d", w, h)
	}
	if tex.Format() != "png" || !tex.Loaded() {
		t.Errorf("unexpected format %q loaded %v", tex.Format(), tex.Loaded())
	}

	img, err := tex.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	r, _, _, _ := img.At(0, 0).RGBA()
	if r != 0xffff {
		t.Errorf("expected red pixel, got r=%x", r)
	}
}

func TestTextureAsset_TGA(t *testing.T) {
	// 2x1, 32bpp: blue then red
	uncompressed := createTestTGA(2, 1, 32, tgaTypeUncompressed, []byte{
		255, 0, 0, 255,
		0, 0, 255, 128,
	})
	// 3x1, 24bpp RLE: one run of 3 green pixels
	rle := createTestTGA(3, 1, 24, tgaTypeRLE, []byte{0x82, 0, 255, 0})

	tests := []struct {
		name   string
		data   []byte
		width  int
		pixels []color.RGBA
	}{
		{"uncompressed", uncompressed, 2, []color.RGBA{{B: 255, A: 255}, {R: 255, A: 128}}},
		{"rle", rle, 3, []color.RGBA{{G: 255, A: 255}, {G: 255, A: 255}, {G: 255, A: 255}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "tex.TGA")
			if err := os.WriteFile(file, tt.data, 0o644); err != nil {
				t.Fatal(err)
			}
			tex, _ := NewTextureAsset(meta.NewRecord(meta.TextureMeta{}, time.Now()), file)

			if err := tex.Load(); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if w, h := tex.Size(); w != tt.width || h != 1 {
				t.Errorf("expected %dx1, got %dx%d", tt.width, w, h)
			}
			if tex.Format() != "tga" {
				t.Errorf("expected tga, got %q", tex.Format())
			}

			img, err := tex.Decode()
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			for x, want := range tt.pixels {
				if got := color.RGBAModel.Convert(img.At(x, 0)).(color.RGBA); got != want {
					t.Errorf("pixel %d: got %v, want %v", x, got, want)
				}
			}
		})
	}
}

func TestParseTGAHeader_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{0, 0, 2}},
		{"color mapped", func() []byte {
			d := createTestTGA(1, 1, 24, tgaTypeUncompressed, []byte{0, 0, 0})
			d[1] = 1
			return d
		}()},
		{"grayscale", createTestTGA(1, 1, 24, 3, []byte{0, 0, 0})},
		{"16 bit", createTestTGA(1, 1, 16, tgaTypeUncompressed, []byte{0, 0})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseTGAHeader(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}

	truncated := createTestTGA(4, 4, 24, tgaTypeUncompressed, []byte{1, 2, 3})
	if _, err := decodeTGA(truncated); err == nil {
		t.Error("expected error for truncated pixel data")
	}
}

func TestTextureAsset_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "noise.png")
	os.WriteFile(garbage, bytes.Repeat([]byte{0x13}, 64), 0o644)

	for _, file := range []string{filepath.Join(dir, "missing.png"), garbage} {
		tex, _ := NewTextureAsset(meta.NewRecord(meta.TextureMeta{}, time.Now()), file)
		if err := tex.Load(); !errors.Is(err, ErrTextureDecode) {
			t.Errorf("%s: expected ErrTextureDecode, got %v", filepath.Base(file), err)
		}
		if tex.Loaded() {
			t.Errorf("%s: should not be loaded", filepath.Base(file))
		}
	}
}

func TestNewTextureAsset_Types(t *testing.T) {
	if _, err := NewTextureAsset(meta.NewTerrainRecord(1, time.Now()), "x.png"); !errors.Is(err, ErrWrongType) {
		t.Errorf("expected ErrWrongType, got %v", err)
	}

	pix, err := NewTextureAsset(meta.NewRecord(meta.TextureMeta{Pixmap: true}, time.Now()), "p.png")
	if err != nil {
		t.Fatal(err)
	}
	if !pix.Pixmap() {
		t.Error("expected pixmap texture")
	}
}
