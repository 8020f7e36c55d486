package shaders

import (
	_ "embed"

	"github.com/gekko3d/gekko-editor/viewport/rt/gpu"
)

//go:embed point.es100.vert
var pointES100Vert string

//go:embed point.es100.frag
var pointES100Frag string

//go:embed line.es100.vert
var lineES100Vert string

//go:embed line.es100.frag
var lineES100Frag string

//go:embed point.core410.vert
var pointCore410Vert string

//go:embed point.core410.frag
var pointCore410Frag string

//go:embed line.core410.vert
var lineCore410Vert string

//go:embed line.core410.frag
var lineCore410Frag string

var gizmoUniforms = []string{"uMV", "uP", "uMVn", "uMVP"}

// PointMaterial draws round sized points with a per-vertex color.
func PointMaterial(d gpu.Dialect) gpu.MaterialDescriptor {
	vert, frag := pointES100Vert, pointES100Frag
	if d == gpu.DialectCore410 {
		vert, frag = pointCore410Vert, pointCore410Frag
	}
	return gpu.MaterialDescriptor{
		VertexSource:   vert,
		FragmentSource: frag,
		Attributes:     []string{"vPosition", "vSize", "vColor"},
		Uniforms:       append([]string(nil), gizmoUniforms...),
	}
}

// LineMaterial draws unlit colored line segments.
func LineMaterial(d gpu.Dialect) gpu.MaterialDescriptor {
	vert, frag := lineES100Vert, lineES100Frag
	if d == gpu.DialectCore410 {
		vert, frag = lineCore410Vert, lineCore410Frag
	}
	return gpu.MaterialDescriptor{
		VertexSource:   vert,
		FragmentSource: frag,
		Attributes:     []string{"vPosition", "vColor"},
		Uniforms:       append([]string(nil), gizmoUniforms...),
	}
}
