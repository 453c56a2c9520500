package assets

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTypeUncompressed = 2
	tgaTypeRLE          = 10

	tgaHeaderSize = 18
)

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

// parseTGAHeader reads the 18-byte TGA header.
// Only uncompressed and RLE true-color images at 24 or 32 bpp are accepted.
func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("tga: header too short")
	}

	h := tgaHeader{
		idLength:    int(data[0]),
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]),
		topToBottom: data[17]&0x20 != 0,
	}

	if data[1] != 0 {
		return h, fmt.Errorf("tga: color-mapped images not supported")
	}
	if h.imageType != tgaTypeUncompressed && h.imageType != tgaTypeRLE {
		return h, fmt.Errorf("tga: unsupported image type %d", h.imageType)
	}
	if h.bpp != 24 && h.bpp != 32 {
		return h, fmt.Errorf("tga: unsupported bit depth %d", h.bpp)
	}
	return h, nil
}

// decodeTGAConfig returns the dimensions of a TGA image without decoding pixels.
func decodeTGAConfig(data []byte) (image.Config, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: h.width, Height: h.height}, nil
}

// decodeTGA decodes a TGA image into RGBA.
func decodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, fmt.Errorf("tga: data truncated")
	}
	px := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	bytesPerPixel := h.bpp / 8
	pixelCount := h.width * h.height

	put := func(idx int, p []byte) {
		x := idx % h.width
		y := idx / h.width
		if !h.topToBottom {
			y = h.height - 1 - y
		}
		a := uint8(255)
		if bytesPerPixel == 4 {
			a = p[3]
		}
		// stored as BGR(A)
		img.SetRGBA(x, y, color.RGBA{R: p[2], G: p[1], B: p[0], A: a})
	}

	if h.imageType == tgaTypeUncompressed {
		if len(px) < pixelCount*bytesPerPixel {
			return nil, fmt.Errorf("tga: pixel data truncated")
		}
		for i := 0; i < pixelCount; i++ {
			put(i, px[i*bytesPerPixel:])
		}
		return img, nil
	}

	pixel, pos := 0, 0
	for pixel < pixelCount && pos < len(px) {
		packet := px[pos]
		pos++
		count := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			if pos+bytesPerPixel > len(px) {
				break
			}
			p := px[pos : pos+bytesPerPixel]
			pos += bytesPerPixel
			for i := 0; i < count && pixel < pixelCount; i++ {
				put(pixel, p)
				pixel++
			}
			continue
		}

		for i := 0; i < count && pixel < pixelCount; i++ {
			if pos+bytesPerPixel > len(px) {
				break
			}
			put(pixel, px[pos:pos+bytesPerPixel])
			pos += bytesPerPixel
			pixel++
		}
	}
	return img, nil
}
