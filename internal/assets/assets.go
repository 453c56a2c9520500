// Package assets binds metadata records to their runtime objects: textures,
// terrains and models, plus the registry that loads a project directory.
package assets

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-assets/internal/logger"
	"github.com/Faultbox/midgard-assets/pkg/meta"
)

var (
	// ErrNotLoaded is returned by operations that need loaded terrain data.
	ErrNotLoaded = errors.New("asset not loaded")

	// ErrWrongType is returned when a record's type does not match the asset kind.
	ErrWrongType = errors.New("wrong asset type")

	// ErrTerrainDecode is returned when a heightfield cannot be decoded.
	ErrTerrainDecode = errors.New("terrain decode failed")

	// ErrTextureDecode is returned when a texture header cannot be read.
	ErrTextureDecode = errors.New("texture decode failed")

	// ErrDuplicate is returned when a UUID is already registered to another asset.
	ErrDuplicate = errors.New("duplicate asset uuid")

	// ErrExists is returned when an import would overwrite an existing file.
	ErrExists = errors.New("asset file exists")
)

// Asset is implemented by every asset kind.
type Asset interface {
	UUID() string
	Meta() meta.Record
	File() string
}

func assetLog() *zap.Logger {
	return logger.Named("assets")
}
