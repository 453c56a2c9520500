package assets

import (
	"fmt"
	"time"

	"github.com/Faultbox/midgard-assets/internal/scene"
	"github.com/Faultbox/midgard-assets/pkg/meta"
)

// ModelAsset is a model file with a MODEL record. The scene model is
// optional; without one the asset carries metadata only.
type ModelAsset struct {
	record meta.Record
	file   string
	model  *scene.Model

	diffuse *TextureAsset
}

// NewModelAsset creates a model asset. model may be nil.
func NewModelAsset(rec meta.Record, file string, model *scene.Model) (*ModelAsset, error) {
	if _, ok := rec.Model(); !ok {
		return nil, fmt.Errorf("%w: %s is %v, want %v", ErrWrongType, file, rec.Type(), meta.TypeModel)
	}
	return &ModelAsset{record: rec, file: file, model: model}, nil
}

// UUID returns the asset UUID.
func (m *ModelAsset) UUID() string { return m.record.UUID }

// Meta returns the metadata record.
func (m *ModelAsset) Meta() meta.Record { return m.record }

// File returns the model path.
func (m *ModelAsset) File() string { return m.file }

// Model returns the scene model, or nil.
func (m *ModelAsset) Model() *scene.Model { return m.model }

// DiffuseTexture returns the diffuse texture, or nil.
func (m *ModelAsset) DiffuseTexture() *TextureAsset { return m.diffuse }

// SetModel attaches geometry and applies the record's material attributes
// to the first material.
func (m *ModelAsset) SetModel(model *scene.Model) {
	m.model = model
	mm, _ := m.record.Model()
	if mm.DiffuseColor != nil {
		m.setMaterial(scene.ColorAttribute(scene.DiffuseColor, *mm.DiffuseColor))
	}
	if m.diffuse != nil {
		m.setMaterial(scene.TextureAttribute(m.diffuse.UUID()))
	}
}

// SetDiffuseColor sets the diffuse color of the first material and the record.
// nil removes it.
func (m *ModelAsset) SetDiffuseColor(c *meta.Color) {
	mm, _ := m.record.Model()
	if c == nil {
		mm.DiffuseColor = nil
		m.removeMaterial(scene.DiffuseColor)
	} else {
		cc := *c
		mm.DiffuseColor = &cc
		m.setMaterial(scene.ColorAttribute(scene.DiffuseColor, cc))
	}
	m.record = m.record.WithPayload(mm)
}

// SetDiffuseTexture sets the diffuse texture of the first material and the record.
// nil removes it.
func (m *ModelAsset) SetDiffuseTexture(tex *TextureAsset) {
	m.diffuse = tex
	mm, _ := m.record.Model()
	if tex == nil {
		mm.DiffuseTexture = ""
		m.removeMaterial(scene.DiffuseTexture)
	} else {
		mm.DiffuseTexture = tex.UUID()
		m.setMaterial(scene.TextureAttribute(tex.UUID()))
	}
	m.record = m.record.WithPayload(mm)
}

// Save writes the record next to the model file with a fresh timestamp.
func (m *ModelAsset) Save() error {
	rec := m.record.Touch(time.Now())
	if err := meta.Save(meta.MetaPath(m.file), rec); err != nil {
		return err
	}
	m.record = rec
	return nil
}

// applyDiffuse pushes the bound diffuse texture into the first material.
func (m *ModelAsset) applyDiffuse() {
	if m.diffuse == nil {
		m.removeMaterial(scene.DiffuseTexture)
		return
	}
	m.setMaterial(scene.TextureAttribute(m.diffuse.UUID()))
}

func (m *ModelAsset) setMaterial(a scene.Attribute) {
	if m.model == nil || len(m.model.Materials) == 0 {
		return
	}
	m.model.Materials[0].Set(a)
}

func (m *ModelAsset) removeMaterial(kind scene.AttributeKind) {
	if m.model == nil || len(m.model.Materials) == 0 {
		return
	}
	m.model.Materials[0].Remove(kind)
}

func (m *ModelAsset) setRecord(rec meta.Record) error {
	if _, ok := rec.Model(); !ok {
		return fmt.Errorf("%w: %s is %v, want %v", ErrWrongType, m.file, rec.Type(), meta.TypeModel)
	}
	m.record = rec
	return nil
}
