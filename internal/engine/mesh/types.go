// Package mesh uploads vertex streams and issues their draw calls.
package mesh

import "github.com/go-gl/mathgl/mgl32"

// PlaceholderNormal is given to vertices whose source has no normals.
var PlaceholderNormal = mgl32.Vec3{1, 1, 1}

// Vertex is one interleaved vertex as stored on the GPU.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV0      mgl32.Vec2
	UV1      mgl32.Vec2
}

// NewVertex returns a vertex at p with the placeholder normal and zero UVs.
func NewVertex(p mgl32.Vec3) Vertex {
	return Vertex{Position: p, Normal: PlaceholderNormal}
}

// Attribute locations shared with the shaders.
const (
	LocPosition = 0
	LocUV0      = 1
	LocNormal   = 2
	LocUV1      = 3
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// emptyBounds is inverted so the first Extend sets both corners.
func emptyBounds() Bounds {
	return Bounds{
		Min: mgl32.Vec3{1e30, 1e30, 1e30},
		Max: mgl32.Vec3{-1e30, -1e30, -1e30},
	}
}

// Empty reports whether no point was ever added.
func (b Bounds) Empty() bool {
	return b.Min.X() > b.Max.X()
}

// Extend grows b to include p.
func (b Bounds) Extend(p mgl32.Vec3) Bounds {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

// Union grows b to include o.
func (b Bounds) Union(o Bounds) Bounds {
	if o.Empty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Center returns the middle of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}
