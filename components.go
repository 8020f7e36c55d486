package gekko

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-editor/viewport/rt/core"
)

// TransformComponent places an entity in world space.
type TransformComponent struct {
	Position mgl32.Vec3 `json:"position"`
	Rotation mgl32.Quat `json:"rotation"`
	Scale    mgl32.Vec3 `json:"scale"`
}

func NewTransformComponent(position mgl32.Vec3) TransformComponent {
	return TransformComponent{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t TransformComponent) Transform() core.Transform {
	return core.Transform{Position: t.Position, Rotation: t.Rotation, Scale: t.Scale}
}

type CameraComponent struct {
	Position     mgl32.Vec3 `json:"position"`
	Yaw          float32    `json:"yaw"`
	Pitch        float32    `json:"pitch"`
	FovY         float32    `json:"fov_y"`
	Near         float32    `json:"near"`
	Far          float32    `json:"far"`
	Orthographic bool       `json:"orthographic"`
	OrthoHeight  float32    `json:"ortho_height"`
}

func (c CameraComponent) Camera() core.Camera {
	return core.Camera{
		Position:     c.Position,
		Yaw:          c.Yaw,
		Pitch:        c.Pitch,
		FovY:         c.FovY,
		Near:         c.Near,
		Far:          c.Far,
		Orthographic: c.Orthographic,
		OrthoHeight:  c.OrthoHeight,
	}
}

// NameComponent is the label shown in the entity list.
type NameComponent struct {
	Name string `json:"name"`
}
