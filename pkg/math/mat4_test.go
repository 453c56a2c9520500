package math

import (
	"math"
	"testing"
)

func approxVec3(a, b Vec3) bool {
	const eps = 1e-5
	return absf(a.X-b.X) < eps && absf(a.Y-b.Y) < eps && absf(a.Z-b.Z) < eps
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
	if !m.IsIdentity() {
		t.Error("IsIdentity should be true for Identity()")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	result := m.Mul(Identity())
	if result != m {
		t.Errorf("M * I should equal M, got %v", result)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(Vec3{5, 10, 15})
	if m.Translation() != (Vec3{5, 10, 15}) {
		t.Errorf("Translate: got %v, want (5, 10, 15)", m.Translation())
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestCompose(t *testing.T) {
	rot := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)
	m := Compose(Vec3{1, 0, 0}, rot, Vec3{2, 2, 2})

	// scale, rotate +X by 90° around Y (-> -Z), then translate
	got := m.TransformPoint(Vec3{1, 0, 0})
	want := Vec3{1, 0, -2}
	if !approxVec3(got, want) {
		t.Errorf("Compose: got %v, want %v", got, want)
	}
	if m.IsIdentity() {
		t.Error("composed transform should not be identity")
	}
}

func TestQuatIdentityToMat4(t *testing.T) {
	if QuatIdentity().ToMat4() != Identity() {
		t.Error("identity quaternion should produce identity matrix")
	}
}
