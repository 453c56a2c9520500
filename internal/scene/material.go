// Package scene provides the renderer-side model, material and instance
// objects that assets bind to.
package scene

import "github.com/Faultbox/midgard-assets/pkg/meta"

// AttributeKind identifies a material attribute.
type AttributeKind int

// Attribute kinds.
const (
	DiffuseTexture AttributeKind = iota
	DiffuseColor
	SpecularColor
	Shininess
	Opacity
)

// String returns the attribute kind name.
func (k AttributeKind) String() string {
	switch k {
	case DiffuseTexture:
		return "diffuseTexture"
	case DiffuseColor:
		return "diffuseColor"
	case SpecularColor:
		return "specularColor"
	case Shininess:
		return "shininess"
	case Opacity:
		return "opacity"
	default:
		return "unknown"
	}
}

// Attribute is a single material attribute value.
// Texture holds a texture UUID, Color and Value the numeric payloads.
type Attribute struct {
	Kind    AttributeKind
	Texture string
	Color   meta.Color
	Value   float32
}

// TextureAttribute creates a diffuse texture attribute.
func TextureAttribute(uuid string) Attribute {
	return Attribute{Kind: DiffuseTexture, Texture: uuid}
}

// ColorAttribute creates a color attribute of the given kind.
func ColorAttribute(kind AttributeKind, c meta.Color) Attribute {
	return Attribute{Kind: kind, Color: c}
}

// Material is a named set of attributes, at most one per kind.
type Material struct {
	ID    string
	attrs map[AttributeKind]Attribute
}

// NewMaterial creates a material with the given attributes.
func NewMaterial(id string, attrs ...Attribute) *Material {
	m := &Material{ID: id, attrs: make(map[AttributeKind]Attribute, len(attrs))}
	for _, a := range attrs {
		m.Set(a)
	}
	return m
}

// Get returns the attribute of the given kind.
func (m *Material) Get(kind AttributeKind) (Attribute, bool) {
	a, ok := m.attrs[kind]
	return a, ok
}

// Has reports whether the attribute kind is present.
func (m *Material) Has(kind AttributeKind) bool {
	_, ok := m.attrs[kind]
	return ok
}

// Set stores a, replacing any attribute of the same kind.
func (m *Material) Set(a Attribute) {
	if m.attrs == nil {
		m.attrs = make(map[AttributeKind]Attribute)
	}
	m.attrs[a.Kind] = a
}

// Remove deletes the attribute of the given kind.
func (m *Material) Remove(kind AttributeKind) {
	delete(m.attrs, kind)
}

// Len returns the number of attributes.
func (m *Material) Len() int {
	return len(m.attrs)
}

// Copy returns an independent copy of m.
func (m *Material) Copy() *Material {
	c := &Material{ID: m.ID, attrs: make(map[AttributeKind]Attribute, len(m.attrs))}
	for k, a := range m.attrs {
		c.attrs[k] = a
	}
	return c
}
