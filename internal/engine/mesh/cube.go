package mesh

import "github.com/fuel3d/fuel/internal/engine/gfx"

// CubeLayout describes CubeVertices: position at location 0, uv at location 1.
var CubeLayout = gfx.Layout{
	Stride: 5,
	Attributes: []gfx.Attribute{
		{Location: LocPosition, Size: 3, Offset: 0},
		{Location: LocUV0, Size: 2, Offset: 3},
	},
}

// CubeVertices returns a unit cube centred on the origin as 36 non-indexed
// vertices of x, y, z, u, v. The slice is fresh on every call.
func CubeVertices() []float32 {
	return []float32{
		-0.5, -0.5, -0.5, 0, 0,
		0.5, -0.5, -0.5, 1, 0,
		0.5, 0.5, -0.5, 1, 1,
		0.5, 0.5, -0.5, 1, 1,
		-0.5, 0.5, -0.5, 0, 1,
		-0.5, -0.5, -0.5, 0, 0,

		-0.5, -0.5, 0.5, 0, 0,
		0.5, -0.5, 0.5, 1, 0,
		0.5, 0.5, 0.5, 1, 1,
		0.5, 0.5, 0.5, 1, 1,
		-0.5, 0.5, 0.5, 0, 1,
		-0.5, -0.5, 0.5, 0, 0,

		-0.5, 0.5, 0.5, 1, 0,
		-0.5, 0.5, -0.5, 1, 1,
		-0.5, -0.5, -0.5, 0, 1,
		-0.5, -0.5, -0.5, 0, 1,
		-0.5, -0.5, 0.5, 0, 0,
		-0.5, 0.5, 0.5, 1, 0,

		0.5, 0.5, 0.5, 1, 0,
		0.5, 0.5, -0.5, 1, 1,
		0.5, -0.5, -0.5, 0, 1,
		0.5, -0.5, -0.5, 0, 1,
		0.5, -0.5, 0.5, 0, 0,
		0.5, 0.5, 0.5, 1, 0,

		-0.5, -0.5, -0.5, 0, 1,
		0.5, -0.5, -0.5, 1, 1,
		0.5, -0.5, 0.5, 1, 0,
		0.5, -0.5, 0.5, 1, 0,
		-0.5, -0.5, 0.5, 0, 0,
		-0.5, -0.5, -0.5, 0, 1,

		-0.5, 0.5, -0.5, 0, 1,
		0.5, 0.5, -0.5, 1, 1,
		0.5, 0.5, 0.5, 1, 0,
		0.5, 0.5, 0.5, 1, 0,
		-0.5, 0.5, 0.5, 0, 0,
		-0.5, 0.5, -0.5, 0, 1,
	}
}
