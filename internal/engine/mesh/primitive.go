package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fuel3d/fuel/internal/engine/gfx"
	"github.com/fuel3d/fuel/internal/engine/texture"
)

const vertexFloats = 10

// VertexLayout is the interleaved layout of Vertex: position, normal, uv0, uv1.
var VertexLayout = gfx.Layout{
	Stride: vertexFloats,
	Attributes: []gfx.Attribute{
		{Location: LocPosition, Size: 3, Offset: 0},
		{Location: LocNormal, Size: 3, Offset: 3},
		{Location: LocUV0, Size: 2, Offset: 6},
		{Location: LocUV1, Size: 2, Offset: 8},
	},
}

// Primitive is one uploaded triangle list, optionally indexed.
// It owns its buffers and, when set, its Texture.
type Primitive struct {
	dev     gfx.Device
	buffers gfx.Buffers
	indexed bool
	count   int32
	bounds  Bounds

	VertexCount int
	Texture     *texture.Texture
}

// NewPrimitive uploads vertices once. An index buffer is created iff indices is non-nil.
func NewPrimitive(dev gfx.Device, vertices []Vertex, indices []uint32) *Primitive {
	data := make([]float32, 0, len(vertices)*vertexFloats)
	bounds := emptyBounds()
	for _, v := range vertices {
		data = append(data,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV0[0], v.UV0[1],
			v.UV1[0], v.UV1[1],
		)
		bounds = bounds.Extend(v.Position)
	}

	p := &Primitive{
		dev:         dev,
		buffers:     dev.CreateBuffers(data, VertexLayout, indices),
		indexed:     indices != nil,
		count:       int32(len(vertices)),
		bounds:      bounds,
		VertexCount: len(vertices),
	}
	if p.indexed {
		p.count = int32(len(indices))
	}
	return p
}

// NewRawPrimitive uploads pre-interleaved floats described by layout as a
// non-indexed list. Positions are read from the attribute at location 0.
func NewRawPrimitive(dev gfx.Device, data []float32, layout gfx.Layout) *Primitive {
	n := 0
	if layout.Stride > 0 {
		n = len(data) / layout.Stride
	}

	bounds := emptyBounds()
	for _, a := range layout.Attributes {
		if a.Location != LocPosition || a.Size < 3 {
			continue
		}
		for i := 0; i < n; i++ {
			o := i*layout.Stride + a.Offset
			bounds = bounds.Extend(mgl32.Vec3{data[o], data[o+1], data[o+2]})
		}
	}

	return &Primitive{
		dev:         dev,
		buffers:     dev.CreateBuffers(data, layout, nil),
		count:       int32(n),
		bounds:      bounds,
		VertexCount: n,
	}
}

// Indexed reports whether the primitive draws through an index buffer.
func (p *Primitive) Indexed() bool { return p.indexed }

// Bounds returns the local-space box of the vertex positions.
func (p *Primitive) Bounds() Bounds { return p.bounds }

// Draw binds the texture (if any) to unit 0 and the vertex array, then draws.
// The active program must already be bound.
func (p *Primitive) Draw() {
	if p.Texture != nil {
		p.Texture.Bind(0)
	}
	p.dev.BindVertexArray(p.buffers.VAO)
	if p.indexed {
		p.dev.DrawElements(p.count)
	} else {
		p.dev.DrawArrays(0, p.count)
	}
}

// Release deletes the GPU buffers and the owned texture. Safe to call twice.
func (p *Primitive) Release() {
	if p.buffers.VAO != 0 {
		p.dev.DeleteBuffers(p.buffers)
		p.buffers = gfx.Buffers{}
	}
	if p.Texture != nil {
		p.Texture.Release()
	}
}

// Mesh is an ordered list of primitives drawn together.
type Mesh struct {
	Name       string
	Primitives []*Primitive
}

// Draw draws every primitive in order. before, when non-nil, runs ahead of
// each primitive's draw so callers can set per-primitive state.
func (m *Mesh) Draw(before func(*Primitive)) {
	for _, p := range m.Primitives {
		if before != nil {
			before(p)
		}
		p.Draw()
	}
}

// Bounds unions the bounds of all primitives.
func (m *Mesh) Bounds() Bounds {
	b := emptyBounds()
	for _, p := range m.Primitives {
		b = b.Union(p.Bounds())
	}
	return b
}

// Release frees every primitive.
func (m *Mesh) Release() {
	for _, p := range m.Primitives {
		p.Release()
	}
}
