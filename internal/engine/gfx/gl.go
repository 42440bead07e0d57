package gfx

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/fuel3d/fuel/internal/logger"
)

// GL implements Device on OpenGL 4.1 core.
type GL struct{}

var _ Device = (*GL)(nil)

// NewGL loads the OpenGL entry points through procAddr and sets the default
// pipeline state. A nil procAddr uses the platform loader.
// IMPORTANT: Must be called AFTER the OpenGL context is current!
func NewGL(procAddr func(name string) unsafe.Pointer) (*GL, error) {
	var err error
	if procAddr != nil {
		err = gl.InitWithProcAddrFunc(procAddr)
	} else {
		err = gl.Init()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// RGB8 rows are not 4-byte aligned in general.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	return &GL{}, nil
}

func (*GL) CompileShader(stage ShaderStage, source string) (Shader, error) {
	shaderType := uint32(gl.VERTEX_SHADER)
	if stage == StageFragment {
		shaderType = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		msg := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(shader, logLen, nil, buf) })
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", stage, msg)
	}

	return Shader(shader), nil
}

func (*GL) LinkProgram(vertex, fragment Shader) (Program, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, uint32(vertex))
	gl.AttachShader(program, uint32(fragment))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		msg := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", msg)
	}

	return Program(program), nil
}

func infoLog(length int32, read func(*uint8)) string {
	if length <= 0 {
		return "(no info log)"
	}
	buf := make([]byte, length)
	read(&buf[0])
	return gl.GoStr(&buf[0])
}

func (*GL) DeleteShader(s Shader) { gl.DeleteShader(uint32(s)) }
func (*GL) DeleteProgram(p Program) { gl.DeleteProgram(uint32(p)) }
func (*GL) UseProgram(p Program) { gl.UseProgram(uint32(p)) }

func (*GL) UniformLocation(p Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

func (*GL) Uniform1i(loc int32, v int32) { gl.Uniform1i(loc, v) }
func (*GL) Uniform1f(loc int32, v float32) { gl.Uniform1f(loc, v) }
func (*GL) Uniform3f(loc int32, v mgl32.Vec3) { gl.Uniform3f(loc, v[0], v[1], v[2]) }
func (*GL) Uniform4f(loc int32, v mgl32.Vec4) { gl.Uniform4f(loc, v[0], v[1], v[2], v[3]) }

func (*GL) UniformMatrix4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (*GL) CreateBuffers(vertices []float32, layout Layout, indices []uint32) Buffers {
	var b Buffers
	var vao, vbo uint32

	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	}

	if indices != nil {
		var ebo uint32
		gl.GenBuffers(1, &ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
		if len(indices) > 0 {
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
		}
		b.EBO = Buffer(ebo)
	}

	stride := int32(layout.Stride * 4)
	for _, attr := range layout.Attributes {
		gl.VertexAttribPointerWithOffset(attr.Location, attr.Size, gl.FLOAT, false, stride, uintptr(attr.Offset*4))
		gl.EnableVertexAttribArray(attr.Location)
	}

	// The element buffer binding is VAO state, so only the array buffer is unbound.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	b.VAO = VertexArray(vao)
	b.VBO = Buffer(vbo)
	return b
}

func (*GL) DeleteBuffers(b Buffers) {
	if b.EBO != 0 {
		ebo := uint32(b.EBO)
		gl.DeleteBuffers(1, &ebo)
	}
	if b.VBO != 0 {
		vbo := uint32(b.VBO)
		gl.DeleteBuffers(1, &vbo)
	}
	if b.VAO != 0 {
		vao := uint32(b.VAO)
		gl.DeleteVertexArrays(1, &vao)
	}
}

func (*GL) BindVertexArray(vao VertexArray) { gl.BindVertexArray(uint32(vao)) }

func (*GL) DrawArrays(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func (*GL) DrawElements(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
}

func (*GL) CreateTexture(pixels []byte, width, height int, params TextureParams) Texture {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	wrap := glWrap(params.Wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(params.MinFilter, params.Mipmaps))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(params.MagFilter, false))

	var data unsafe.Pointer
	if len(pixels) > 0 {
		data = gl.Ptr(pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB8, int32(width), int32(height), 0, gl.RGB, gl.UNSIGNED_BYTE, data)

	if params.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return Texture(tex)
}

func glWrap(w Wrap) int32 {
	switch w {
	case WrapRepeat:
		return gl.REPEAT
	case WrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	default:
		return gl.MIRRORED_REPEAT
	}
}

func glFilter(f Filter, mipmaps bool) int32 {
	switch f {
	case FilterNearest:
		return gl.NEAREST
	case FilterLinearMipmapLinear:
		if mipmaps {
			return gl.LINEAR_MIPMAP_LINEAR
		}
		return gl.LINEAR
	default:
		return gl.LINEAR
	}
}

func (*GL) BindTexture(unit uint32, tex Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
}

func (*GL) DeleteTexture(tex Texture) {
	t := uint32(tex)
	gl.DeleteTextures(1, &t)
}

func (*GL) Clear(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (*GL) SetPolygonMode(mode PolygonMode) {
	switch mode {
	case PolygonLine:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	case PolygonPoint:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.POINT)
	default:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (*GL) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (*GL) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

func (*GL) Err() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%04x", code)
	}
	return nil
}
