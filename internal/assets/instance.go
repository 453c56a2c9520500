package assets

import (
	"github.com/Faultbox/midgard-assets/internal/scene"
	"github.com/Faultbox/midgard-assets/pkg/math"
)

// ModelInstance is a placed instance of a model asset. An instance of a
// model without geometry is unbound: it has no scene instance and every
// operation on it is a no-op.
type ModelInstance struct {
	model    *ModelAsset
	instance *scene.ModelInstance
}

// NewModelInstance instantiates model and applies its material attributes.
func NewModelInstance(model *ModelAsset) *ModelInstance {
	mi := &ModelInstance{model: model}
	if model != nil && model.Model() != nil {
		mi.instance = scene.NewModelInstance(model.Model())
		mi.ApplyModelMaterial()
	}
	return mi
}

// Bound reports whether the instance has a scene instance.
func (mi *ModelInstance) Bound() bool { return mi.instance != nil }

// Instance returns the scene instance, or nil when unbound.
func (mi *ModelInstance) Instance() *scene.ModelInstance { return mi.instance }

// Model returns the model asset.
func (mi *ModelInstance) Model() *ModelAsset { return mi.model }

// Transform returns the instance transform, identity when unbound.
func (mi *ModelInstance) Transform() math.Mat4 {
	if mi.instance == nil {
		return math.Identity()
	}
	return mi.instance.Transform
}

// SetTransform sets the instance transform. No-op when unbound.
func (mi *ModelInstance) SetTransform(m math.Mat4) {
	if mi.instance != nil {
		mi.instance.Transform = m
	}
}

// ReplaceModel swaps in a new model, keeping the current transform.
func (mi *ModelInstance) ReplaceModel(model *ModelAsset) {
	transform := mi.Transform()

	mi.model = model
	mi.instance = nil
	if model == nil || model.Model() == nil {
		return
	}

	mi.instance = scene.NewModelInstance(model.Model())
	mi.instance.Transform = transform
	mi.ApplyModelMaterial()
}

// ApplyModelMaterial copies model-level material attributes onto the
// instance, matching materials by index. The diffuse texture is copied or
// cleared; the diffuse color is copied only when the model has one.
func (mi *ModelInstance) ApplyModelMaterial() {
	if mi.instance == nil || mi.model == nil || mi.model.Model() == nil {
		return
	}

	src := mi.model.Model().Materials
	dst := mi.instance.Materials
	for i := 0; i < min(len(src), len(dst)); i++ {
		if a, ok := src[i].Get(scene.DiffuseTexture); ok {
			dst[i].Set(a)
		} else {
			dst[i].Remove(scene.DiffuseTexture)
		}
		if a, ok := src[i].Get(scene.DiffuseColor); ok {
			dst[i].Set(a)
		}
	}
}
