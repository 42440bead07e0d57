// Package gfx is the thin graphics context every drawable renders through.
//
// The underlying API keeps global bound state (current program, vertex array,
// texture units). Nothing here hides that: callers bind what they need before
// each draw and must not assume bindings survive another drawable's Render.
package gfx

import "github.com/go-gl/mathgl/mgl32"

// Object handles. Zero is never a live object.
type (
	Shader      uint32
	Program     uint32
	VertexArray uint32
	Buffer      uint32
	Texture     uint32
)

// ShaderStage selects the pipeline stage a shader is compiled for.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

func (s ShaderStage) String() string {
	if s == StageVertex {
		return "vertex"
	}
	return "fragment"
}

// PolygonMode controls rasterization of triangles.
type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
	PolygonPoint
)

// ParsePolygonMode maps a config name to a mode. Unknown names fill.
func ParsePolygonMode(name string) PolygonMode {
	switch name {
	case "line":
		return PolygonLine
	case "point":
		return PolygonPoint
	default:
		return PolygonFill
	}
}

// Filter is a texture sampling filter.
type Filter int

const (
	FilterLinearMipmapLinear Filter = iota
	FilterLinear
	FilterNearest
)

// ParseFilter maps a config name to a filter. Unknown names use trilinear.
func ParseFilter(name string) Filter {
	switch name {
	case "linear":
		return FilterLinear
	case "nearest":
		return FilterNearest
	default:
		return FilterLinearMipmapLinear
	}
}

// Wrap is a texture coordinate wrap mode.
type Wrap int

const (
	WrapMirroredRepeat Wrap = iota
	WrapRepeat
	WrapClampToEdge
)

// TextureParams configures sampling of an uploaded texture.
type TextureParams struct {
	Wrap      Wrap
	MinFilter Filter
	MagFilter Filter // FilterLinear or FilterNearest
	Mipmaps   bool
}

// DefaultTextureParams mirrors on both axes, samples trilinearly and builds mipmaps.
func DefaultTextureParams() TextureParams {
	return TextureParams{
		Wrap:      WrapMirroredRepeat,
		MinFilter: FilterLinearMipmapLinear,
		MagFilter: FilterLinear,
		Mipmaps:   true,
	}
}

// Attribute describes one float vertex attribute inside an interleaved buffer.
type Attribute struct {
	Location uint32
	Size     int32 // components
	Offset   int   // in floats from the start of the vertex
}

// Layout describes an interleaved float vertex buffer.
type Layout struct {
	Stride     int // floats per vertex
	Attributes []Attribute
}

// Buffers groups the objects created for one uploaded vertex stream.
// EBO is zero when no index buffer was requested.
type Buffers struct {
	VAO VertexArray
	VBO Buffer
	EBO Buffer
}

// Device is the graphics context. Implementations are not safe for
// concurrent use; all calls happen on the thread owning the context.
type Device interface {
	CompileShader(stage ShaderStage, source string) (Shader, error)
	LinkProgram(vertex, fragment Shader) (Program, error)
	DeleteShader(s Shader)
	DeleteProgram(p Program)
	UseProgram(p Program)

	// UniformLocation returns -1 when the program has no active uniform called name.
	UniformLocation(p Program, name string) int32
	Uniform1i(loc int32, v int32)
	Uniform1f(loc int32, v float32)
	Uniform3f(loc int32, v mgl32.Vec3)
	Uniform4f(loc int32, v mgl32.Vec4)
	UniformMatrix4(loc int32, m mgl32.Mat4)

	// CreateBuffers uploads vertices once. An index buffer is created iff indices is non-nil.
	CreateBuffers(vertices []float32, layout Layout, indices []uint32) Buffers
	DeleteBuffers(b Buffers)
	BindVertexArray(vao VertexArray)
	DrawArrays(first, count int32)
	DrawElements(count int32)

	// CreateTexture uploads tightly packed RGB8 pixels.
	CreateTexture(pixels []byte, width, height int, params TextureParams) Texture
	BindTexture(unit uint32, tex Texture)
	DeleteTexture(tex Texture)

	Clear(color mgl32.Vec4)
	SetPolygonMode(mode PolygonMode)
	Viewport(width, height int)
	// ReadPixels returns the bottom-up RGBA8 contents of the current framebuffer.
	ReadPixels(width, height int) []byte

	// Err reports and clears the oldest pending API error.
	Err() error
}
