package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuel3d/fuel/internal/engine/gfx/gfxtest"
)

func triangle() []Vertex {
	v := []Vertex{
		NewVertex(mgl32.Vec3{0, 0, 0}),
		NewVertex(mgl32.Vec3{1, 0, 0}),
		NewVertex(mgl32.Vec3{0, 2, -1}),
	}
	v[1].UV0 = mgl32.Vec2{1, 0}
	return v
}

func TestNewVertexDefaults(t *testing.T) {
	v := NewVertex(mgl32.Vec3{1, 2, 3})
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, v.Normal)
	assert.Equal(t, mgl32.Vec2{}, v.UV0)
	assert.Equal(t, mgl32.Vec2{}, v.UV1)
}

func TestPrimitiveNonIndexed(t *testing.T) {
	dev := gfxtest.New()
	p := NewPrimitive(dev, triangle(), nil)

	require.Len(t, dev.Arrays, 1)
	for _, rec := range dev.Arrays {
		assert.Zero(t, rec.Buffers.EBO, "no index buffer without indices")
		assert.Len(t, rec.Vertices, 3*vertexFloats)
		// Second vertex: position, normal, uv0.
		assert.Equal(t, []float32{1, 0, 0, 1, 1, 1, 1, 0, 0, 0}, rec.Vertices[vertexFloats:2*vertexFloats])
	}

	p.Draw()
	require.Len(t, dev.Draws, 1)
	assert.False(t, dev.Draws[0].Indexed)
	assert.Equal(t, int32(3), dev.Draws[0].Count)
	assert.False(t, p.Indexed())
}

func TestPrimitiveIndexed(t *testing.T) {
	dev := gfxtest.New()
	p := NewPrimitive(dev, triangle(), []uint32{0, 1, 2, 2, 1, 0})

	p.Draw()
	require.Len(t, dev.Draws, 1)
	assert.True(t, dev.Draws[0].Indexed)
	assert.Equal(t, int32(6), dev.Draws[0].Count)
	assert.Equal(t, 3, p.VertexCount)
}

func TestPrimitiveBounds(t *testing.T) {
	dev := gfxtest.New()
	p := NewPrimitive(dev, triangle(), nil)

	b := p.Bounds()
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, b.Min)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, b.Max)
	assert.Equal(t, mgl32.Vec3{0.5, 1, -0.5}, b.Center())
}

func TestEmptyPrimitive(t *testing.T) {
	dev := gfxtest.New()
	p := NewPrimitive(dev, nil, nil)

	assert.True(t, p.Bounds().Empty())
	p.Draw()
	assert.Equal(t, int32(0), dev.Draws[0].Count)
}

func TestRawCube(t *testing.T) {
	dev := gfxtest.New()
	p := NewRawPrimitive(dev, CubeVertices(), CubeLayout)

	assert.Equal(t, 36, p.VertexCount)
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, p.Bounds().Min)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, p.Bounds().Max)

	p.Draw()
	assert.Equal(t, int32(36), dev.Draws[0].Count)
	assert.False(t, dev.Draws[0].Indexed)
}

func TestMeshDrawAndRelease(t *testing.T) {
	dev := gfxtest.New()
	m := &Mesh{Primitives: []*Primitive{
		NewPrimitive(dev, triangle(), nil),
		NewRawPrimitive(dev, CubeVertices(), CubeLayout),
	}}

	var seen []*Primitive
	m.Draw(func(p *Primitive) { seen = append(seen, p) })
	assert.Len(t, dev.Draws, 2)
	assert.Equal(t, m.Primitives, seen)

	m.Draw(nil)
	assert.Len(t, dev.Draws, 4)
	assert.Equal(t, mgl32.Vec3{1, 2, 0.5}, m.Bounds().Max)

	require.Equal(t, 2, dev.Live())
	m.Release()
	m.Release()
	assert.Zero(t, dev.Live())
}
