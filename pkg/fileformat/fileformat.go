// Package fileformat classifies asset files by extension.
package fileformat

import (
	"path/filepath"
	"strings"
)

// Known asset extensions, without the dot.
const (
	G3DB      = "g3db"
	G3DJ      = "g3dj"
	Collada   = "dae"
	Wavefront = "obj"
	FBX       = "fbx"

	PNG  = "png"
	JPG  = "jpg"
	JPEG = "jpeg"
	TGA  = "tga"
	BMP  = "bmp"
	WebP = "webp"

	Terra = "terra"
	Meta  = "meta"
)

// Ext returns the lowercase extension of name without the dot.
func Ext(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

func hasExt(name string, exts ...string) bool {
	ext := Ext(name)
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func IsG3DB(name string) bool      { return hasExt(name, G3DB) }
func IsG3DJ(name string) bool      { return hasExt(name, G3DJ) }
func IsCollada(name string) bool   { return hasExt(name, Collada) }
func IsWavefront(name string) bool { return hasExt(name, Wavefront) }
func IsFBX(name string) bool       { return hasExt(name, FBX) }

func IsPNG(name string) bool { return hasExt(name, PNG) }
func IsJPG(name string) bool { return hasExt(name, JPG, JPEG) }
func IsTGA(name string) bool { return hasExt(name, TGA) }

// IsTerra reports whether name is a heightfield file.
func IsTerra(name string) bool { return hasExt(name, Terra) }

// IsMeta reports whether name is a metadata sidecar.
func IsMeta(name string) bool { return hasExt(name, Meta) }

// Is3DFormat reports whether name is an importable model file.
func Is3DFormat(name string) bool {
	return hasExt(name, Wavefront, Collada, G3DB, G3DJ, FBX)
}

// IsImage reports whether name is an importable texture.
func IsImage(name string) bool {
	return hasExt(name, PNG, JPG, JPEG, TGA, BMP, WebP)
}
