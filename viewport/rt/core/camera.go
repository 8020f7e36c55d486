package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a Y-up editor camera. Yaw and pitch are in radians; zero yaw and
// pitch look down -Z.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32

	FovY         float32 // radians
	Near, Far    float32
	Orthographic bool
	OrthoHeight  float32 // visible world height when Orthographic
}

func NewCamera() Camera {
	return Camera{
		Position:    mgl32.Vec3{3, 3, 8},
		Yaw:         -0.35,
		Pitch:       -0.3,
		FovY:        mgl32.DegToRad(60),
		Near:        0.1,
		Far:         1000,
		OrthoHeight: 10,
	}
}

func (c Camera) Forward() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Pitch)) * math.Sin(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		float32(-math.Cos(float64(c.Pitch)) * math.Cos(float64(c.Yaw))),
	}
}

func (c Camera) Right() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Yaw))),
		0,
		float32(math.Sin(float64(c.Yaw))),
	}
}

func (c Camera) ViewMatrix() mgl32.Mat4 {
	eye := c.Position
	target := eye.Add(c.Forward())
	up := mgl32.Vec3{0, 1, 0}
	return mgl32.LookAtV(eye, target, up)
}

// ProjectionMatrix builds the projection for the given viewport aspect ratio
// (width / height). A non-positive aspect falls back to 1.
func (c Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	near, far := c.Near, c.Far
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = near + 1000
	}

	if c.Orthographic {
		halfH := c.OrthoHeight / 2
		if halfH <= 0 {
			halfH = 5
		}
		halfW := halfH * aspect
		return mgl32.Ortho(-halfW, halfW, -halfH, halfH, near, far)
	}

	fov := c.FovY
	if fov <= 0 {
		fov = mgl32.DegToRad(60)
	}
	return mgl32.Perspective(fov, aspect, near, far)
}
