// Package meta reads and writes asset metadata sidecar files.
//
// Every imported asset has a ".meta" file next to it holding a small set of
// key=value properties: schema version, asset type, a stable UUID, a last
// modified timestamp and fields specific to the asset type.
package meta

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CurrentVersion is the metadata schema version written by this package.
const CurrentVersion = 1

// DefaultTerrainSize is used when a terrain record carries no terrain.size key.
const DefaultTerrainSize = 1200

// AssetType discriminates which payload a record carries.
type AssetType int

// Asset types. The string forms are the on-disk type tags.
const (
	TypeTexture AssetType = iota
	TypePixmapTexture
	TypeTerrain
	TypeModel
)

var assetTypeNames = map[AssetType]string{
	TypeTexture:       "TEXTURE",
	TypePixmapTexture: "PIXMAP_TEXTURE",
	TypeTerrain:       "TERRAIN",
	TypeModel:         "MODEL",
}

// String returns the on-disk tag of the asset type.
func (t AssetType) String() string {
	if name, ok := assetTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(t))
}

// ParseAssetType parses an on-disk type tag. Tags are case-sensitive.
func ParseAssetType(s string) (AssetType, error) {
	for t, name := range assetTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown asset type %q", s)
}

// Slot identifies one of the six texture dependencies of a terrain.
type Slot int

// Terrain texture slots.
const (
	SlotSplatmap Slot = iota
	SlotBase
	SlotR
	SlotG
	SlotB
	SlotA

	SlotCount = 6
)

// Slots lists every slot in application order.
var Slots = [SlotCount]Slot{SlotSplatmap, SlotBase, SlotR, SlotG, SlotB, SlotA}

var slotNames = [SlotCount]string{"splatmap", "base", "r", "g", "b", "a"}

// String returns a short slot name.
func (s Slot) String() string {
	if s < 0 || int(s) >= SlotCount {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

// Payload holds the type-specific part of a record.
// Implemented by ModelMeta, TerrainMeta and TextureMeta.
type Payload interface {
	Type() AssetType
}

// ModelMeta is the payload of MODEL records.
type ModelMeta struct {
	DiffuseColor   *Color
	DiffuseTexture string // UUID, empty if none
}

// Type implements Payload.
func (ModelMeta) Type() AssetType { return TypeModel }

// TerrainMeta is the payload of TERRAIN records.
type TerrainMeta struct {
	Size   int
	Splats [SlotCount]string // UUID per slot, empty if none
}

// Type implements Payload.
func (TerrainMeta) Type() AssetType { return TypeTerrain }

// WithSplat returns a copy of m with slot set to id. An empty id clears the
// slot. An unknown slot returns m unchanged.
func (m TerrainMeta) WithSplat(slot Slot, id string) TerrainMeta {
	if slot < 0 || int(slot) >= SlotCount {
		return m
	}
	m.Splats[slot] = id
	return m
}

// References reports whether any slot names id.
func (m TerrainMeta) References(id string) bool {
	if id == "" {
		return false
	}
	for _, s := range m.Splats {
		if s == id {
			return true
		}
	}
	return false
}

// TextureMeta is the payload of TEXTURE and PIXMAP_TEXTURE records.
type TextureMeta struct {
	Pixmap bool
}

// Type implements Payload.
func (m TextureMeta) Type() AssetType {
	if m.Pixmap {
		return TypePixmapTexture
	}
	return TypeTexture
}

// Record is the full content of one metadata file.
type Record struct {
	Version      int
	UUID         string
	LastModified time.Time
	Payload      Payload
}

// NewRecord creates a record for a freshly imported asset with a random UUID.
func NewRecord(payload Payload, now time.Time) Record {
	return Record{
		Version:      CurrentVersion,
		UUID:         uuid.NewString(),
		LastModified: now.Truncate(time.Millisecond),
		Payload:      payload,
	}
}

// NewTerrainRecord creates a terrain record with the given size and no textures.
func NewTerrainRecord(size int, now time.Time) Record {
	return NewRecord(TerrainMeta{Size: size}, now)
}

// Type returns the asset type of the payload.
func (r Record) Type() AssetType {
	if r.Payload == nil {
		return AssetType(-1)
	}
	return r.Payload.Type()
}

// Model returns the model payload, if the record is a model.
func (r Record) Model() (ModelMeta, bool) {
	m, ok := r.Payload.(ModelMeta)
	return m, ok
}

// Terrain returns the terrain payload, if the record is a terrain.
func (r Record) Terrain() (TerrainMeta, bool) {
	m, ok := r.Payload.(TerrainMeta)
	return m, ok
}

// WithPayload returns a copy of r carrying p.
func (r Record) WithPayload(p Payload) Record {
	r.Payload = p
	return r
}

// Touch returns a copy of r with LastModified set to now.
func (r Record) Touch(now time.Time) Record {
	r.LastModified = now.Truncate(time.Millisecond)
	return r
}
