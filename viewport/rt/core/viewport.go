package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NDCToViewport maps normalized device coordinates to viewport pixels with
// the origin at the top-left corner: x in [0,width], y in [0,height] growing
// downwards, depth in [0,1].
func NDCToViewport(width, height float32) mgl32.Mat4 {
	return mgl32.Translate3D(width/2, height/2, 0.5).
		Mul4(mgl32.Scale3D(width/2, -height/2, 0.5))
}

// ProjectPoint transforms p by m including the perspective divide. A w of
// zero is treated as one so the result stays finite.
func ProjectPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	w := v.W()
	if w == 0 || math.IsNaN(float64(w)) {
		w = 1
	}
	return mgl32.Vec3{v.X() / w, v.Y() / w, v.Z() / w}
}

// NormalMatrix is the inverse transpose of the upper 3x3 of mv. A singular
// mv yields the zero matrix.
func NormalMatrix(mv mgl32.Mat4) mgl32.Mat3 {
	return mv.Mat3().Inv().Transpose()
}
