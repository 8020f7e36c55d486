package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the placement of an inspected object in world space.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// ObjectToWorld composes the model matrix.
func (t Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.rotation().Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// A zero quaternion (unset component) is treated as identity.
func (t Transform) rotation() mgl32.Quat {
	if t.Rotation.W == 0 && t.Rotation.V.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return t.Rotation.Normalize()
}

// WithAxisOffset returns a copy moved by delta along one world axis (0, 1 or 2).
func (t Transform) WithAxisOffset(axis int, delta float32) Transform {
	if axis < 0 || axis > 2 {
		return t
	}
	t.Position[axis] += delta
	return t
}
