package scene

import "github.com/Faultbox/midgard-assets/pkg/math"

// Model is shared, immutable-per-import geometry plus its materials.
type Model struct {
	Name      string
	Meshes    int
	Materials []*Material
}

// ModelInstance is a placed copy of a model. Materials are copied on
// creation so per-instance edits never leak into the shared model.
type ModelInstance struct {
	Model     *Model
	Materials []*Material
	Transform math.Mat4
}

// NewModelInstance creates an instance of model at the origin.
func NewModelInstance(model *Model) *ModelInstance {
	inst := &ModelInstance{
		Model:     model,
		Materials: make([]*Material, len(model.Materials)),
		Transform: math.Identity(),
	}
	for i, m := range model.Materials {
		inst.Materials[i] = m.Copy()
	}
	return inst
}

// Position returns the translation of the instance transform.
func (mi *ModelInstance) Position() math.Vec3 {
	return mi.Transform.Translation()
}
