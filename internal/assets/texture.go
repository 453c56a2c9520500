package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"os"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/webp" // register WebP

	"github.com/Faultbox/midgard-assets/pkg/fileformat"
	"github.com/Faultbox/midgard-assets/pkg/meta"
)

// TextureAsset is an image file with a TEXTURE or PIXMAP_TEXTURE record.
// Load only probes the header; pixels are decoded on demand.
type TextureAsset struct {
	record meta.Record
	file   string

	loaded bool
	width  int
	height int
	format string
}

// NewTextureAsset creates a texture asset for file.
func NewTextureAsset(rec meta.Record, file string) (*TextureAsset, error) {
	if _, ok := rec.Payload.(meta.TextureMeta); !ok {
		return nil, fmt.Errorf("%w: %s is %v, want texture", ErrWrongType, file, rec.Type())
	}
	return &TextureAsset{record: rec, file: file}, nil
}

// UUID returns the asset UUID.
func (t *TextureAsset) UUID() string { return t.record.UUID }

// Meta returns the metadata record.
func (t *TextureAsset) Meta() meta.Record { return t.record }

// File returns the image path.
func (t *TextureAsset) File() string { return t.file }

// Pixmap reports whether the texture is kept as CPU-side pixel data.
func (t *TextureAsset) Pixmap() bool { return t.record.Type() == meta.TypePixmapTexture }

// Loaded reports whether Load succeeded.
func (t *TextureAsset) Loaded() bool { return t.loaded }

// Size returns the image dimensions. Zero before Load.
func (t *TextureAsset) Size() (width, height int) { return t.width, t.height }

// Format returns the detected image format name, e.g. "png".
func (t *TextureAsset) Format() string { return t.format }

// Load reads the image header and records its dimensions.
func (t *TextureAsset) Load() error {
	data, err := os.ReadFile(t.file)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTextureDecode, err)
	}

	var cfg image.Config
	format := fileformat.Ext(t.file)
	if fileformat.IsTGA(t.file) {
		cfg, err = decodeTGAConfig(data)
	} else {
		cfg, format, err = image.DecodeConfig(bytes.NewReader(data))
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTextureDecode, t.file, err)
	}

	t.width, t.height, t.format = cfg.Width, cfg.Height, format
	t.loaded = true
	return nil
}

// Decode reads and decodes the full image.
func (t *TextureAsset) Decode() (image.Image, error) {
	data, err := os.ReadFile(t.file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTextureDecode, err)
	}

	var img image.Image
	if fileformat.IsTGA(t.file) {
		img, err = decodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTextureDecode, t.file, err)
	}
	return img, nil
}
