package assets

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-assets/internal/terrain"
	"github.com/Faultbox/midgard-assets/pkg/meta"
	"github.com/Faultbox/midgard-assets/pkg/terra"
)

// State is the lifecycle stage of a terrain asset.
type State int

// Terrain asset states.
const (
	StateUnloaded State = iota
	StateLoaded
	StateApplied
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateApplied:
		return "applied"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// slotChannels maps paint slots to terrain channels. The splatmap slot has none.
var slotChannels = [meta.SlotCount]terrain.Channel{
	meta.SlotBase: terrain.ChannelBase,
	meta.SlotR:    terrain.ChannelR,
	meta.SlotG:    terrain.ChannelG,
	meta.SlotB:    terrain.ChannelB,
	meta.SlotA:    terrain.ChannelA,
}

// TerrainAsset is a heightfield file with a TERRAIN record and up to six
// texture dependencies.
//
// Setters change the record and the in-memory references immediately; the
// terrain object only picks them up on ApplyDependencies.
type TerrainAsset struct {
	record meta.Record
	file   string

	state   State
	heights []float32
	terrain *terrain.Terrain

	splats [meta.SlotCount]*TextureAsset
}

// NewTerrainAsset creates an unloaded terrain asset for file.
func NewTerrainAsset(rec meta.Record, file string) (*TerrainAsset, error) {
	if _, ok := rec.Terrain(); !ok {
		return nil, fmt.Errorf("%w: %s is %v, want %v", ErrWrongType, file, rec.Type(), meta.TypeTerrain)
	}
	return &TerrainAsset{record: rec, file: file}, nil
}

// UUID returns the asset UUID.
func (a *TerrainAsset) UUID() string { return a.record.UUID }

// Meta returns the metadata record.
func (a *TerrainAsset) Meta() meta.Record { return a.record }

// File returns the heightfield path.
func (a *TerrainAsset) File() string { return a.file }

// State returns the lifecycle state.
func (a *TerrainAsset) State() State { return a.state }

// Heights returns the decoded height samples, nil unless loaded.
func (a *TerrainAsset) Heights() []float32 { return a.heights }

// Terrain returns the terrain object, nil unless loaded.
func (a *TerrainAsset) Terrain() *terrain.Terrain { return a.terrain }

// Size returns the world-space terrain size from the record.
func (a *TerrainAsset) Size() int {
	m, _ := a.record.Terrain()
	return m.Size
}

// Splat returns the texture bound to slot, or nil.
func (a *TerrainAsset) Splat(slot meta.Slot) *TextureAsset {
	if slot < 0 || int(slot) >= meta.SlotCount {
		return nil
	}
	return a.splats[slot]
}

// Load decodes the heightfield and builds the terrain. On failure the asset
// is left unloaded with no terrain and no height data.
func (a *TerrainAsset) Load() error {
	heights, err := terra.DecodeFile(a.file)
	if err != nil {
		a.Dispose()
		return fmt.Errorf("%w: %s: %w", ErrTerrainDecode, a.file, err)
	}

	t := terrain.New(a.Size(), heights)
	if n := t.Resolution * t.Resolution; n != len(heights) {
		assetLog().Debug("heightfield is not square, extra samples ignored",
			zap.String("file", a.file),
			zap.Int("samples", len(heights)),
			zap.Int("resolution", t.Resolution))
	}
	t.Init()
	t.Update()

	a.heights = heights
	a.terrain = t
	a.state = StateLoaded

	assetLog().Debug("terrain loaded",
		zap.String("uuid", a.UUID()),
		zap.String("file", a.file),
		zap.Int("resolution", t.Resolution))
	return nil
}

// ApplyDependencies pushes the six texture references into the terrain:
// bound slots are (re)wrapped, empty slots are cleared. It ends with one
// terrain update and may be called any number of times.
func (a *TerrainAsset) ApplyDependencies() error {
	if a.terrain == nil {
		return ErrNotLoaded
	}

	tt := a.terrain.TerrainTexture()
	for _, slot := range meta.Slots {
		tex := a.splats[slot]

		if slot == meta.SlotSplatmap {
			if tex == nil {
				tt.SetSplatmap(nil)
			} else {
				tt.SetSplatmap(terrain.NewSplatMap(tex))
			}
			continue
		}

		ch := slotChannels[slot]
		if tex == nil {
			tt.RemoveTexture(ch)
		} else {
			tt.SetSplatTexture(terrain.NewSplatTexture(ch, tex))
		}
	}

	a.terrain.Update()
	a.state = StateApplied
	return nil
}

// SetSplatTexture binds tex to slot and records its UUID. nil clears the slot.
func (a *TerrainAsset) SetSplatTexture(slot meta.Slot, tex *TextureAsset) {
	if slot < 0 || int(slot) >= meta.SlotCount {
		return
	}
	a.splats[slot] = tex

	id := ""
	if tex != nil {
		id = tex.UUID()
	}
	m, _ := a.record.Terrain()
	a.record = a.record.WithPayload(m.WithSplat(slot, id))
}

// SetSplatmap sets the weight map texture.
func (a *TerrainAsset) SetSplatmap(tex *TextureAsset) { a.SetSplatTexture(meta.SlotSplatmap, tex) }

// SetSplatBase sets the base channel texture.
func (a *TerrainAsset) SetSplatBase(tex *TextureAsset) { a.SetSplatTexture(meta.SlotBase, tex) }

// SetSplatR sets the red channel texture.
func (a *TerrainAsset) SetSplatR(tex *TextureAsset) { a.SetSplatTexture(meta.SlotR, tex) }

// SetSplatG sets the green channel texture.
func (a *TerrainAsset) SetSplatG(tex *TextureAsset) { a.SetSplatTexture(meta.SlotG, tex) }

// SetSplatB sets the blue channel texture.
func (a *TerrainAsset) SetSplatB(tex *TextureAsset) { a.SetSplatTexture(meta.SlotB, tex) }

// SetSplatA sets the alpha channel texture.
func (a *TerrainAsset) SetSplatA(tex *TextureAsset) { a.SetSplatTexture(meta.SlotA, tex) }

// Dispose drops the terrain and its height data.
func (a *TerrainAsset) Dispose() {
	a.terrain = nil
	a.heights = nil
	a.state = StateUnloaded
}

// Save writes the record next to the heightfield with a fresh timestamp.
func (a *TerrainAsset) Save() error {
	rec := a.record.Touch(time.Now())
	if err := meta.Save(meta.MetaPath(a.file), rec); err != nil {
		return err
	}
	a.record = rec
	return nil
}

// bindSplat sets a reference without touching the record.
func (a *TerrainAsset) bindSplat(slot meta.Slot, tex *TextureAsset) {
	a.splats[slot] = tex
}

// setRecord replaces the record, keeping the asset's identity.
func (a *TerrainAsset) setRecord(rec meta.Record) error {
	if _, ok := rec.Terrain(); !ok {
		return fmt.Errorf("%w: %s is %v, want %v", ErrWrongType, a.file, rec.Type(), meta.TypeTerrain)
	}
	a.record = rec
	return nil
}
