package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/spaghettifunk/hellotriangle/engine/math"
	"github.com/spaghettifunk/hellotriangle/engine/renderer"
)

const float32Size = 4

// OpenGLRenderer drives an OpenGL 3.3 core profile context. The context must
// be current on the calling thread for every method, Initialize included.
type OpenGLRenderer struct{}

var _ renderer.RendererBackend = (*OpenGLRenderer)(nil)

func New() *OpenGLRenderer {
	return &OpenGLRenderer{}
}

// Initialize loads the OpenGL entry points. It must succeed before any other
// call is issued.
func (r *OpenGLRenderer) Initialize() error {
	if err := gl.Init(); err != nil {
		core.LogError("failed to initialize OpenGL: %s", err)
		return fmt.Errorf("%w: %s", core.ErrExtensionLoader, err)
	}
	core.LogInfo("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))
	core.LogDebug("GLSL version %s", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))
	return nil
}

func shaderType(stage renderer.ShaderStage) uint32 {
	switch stage {
	case renderer.ShaderStageVertex:
		return gl.VERTEX_SHADER
	case renderer.ShaderStageFragment:
		return gl.FRAGMENT_SHADER
	}
	return 0
}

func (r *OpenGLRenderer) ShaderCreate(stage renderer.ShaderStage) uint32 {
	return gl.CreateShader(shaderType(stage))
}

func (r *OpenGLRenderer) ShaderCompile(shader uint32, source string) bool {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (r *OpenGLRenderer) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return log
}

func (r *OpenGLRenderer) ShaderDestroy(shader uint32) {
	gl.DeleteShader(shader)
}

func (r *OpenGLRenderer) ProgramCreate() uint32 {
	return gl.CreateProgram()
}

func (r *OpenGLRenderer) ProgramAttach(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (r *OpenGLRenderer) ProgramLink(program uint32) bool {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (r *OpenGLRenderer) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return log
}

func (r *OpenGLRenderer) ProgramDestroy(program uint32) {
	gl.DeleteProgram(program)
}

func (r *OpenGLRenderer) ProgramUse(program uint32) {
	gl.UseProgram(program)
}

func (r *OpenGLRenderer) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (r *OpenGLRenderer) UniformMat4(location int32, value *math.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &value.Data[0])
}

func (r *OpenGLRenderer) VertexArrayCreate() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (r *OpenGLRenderer) VertexArrayBind(vertexArray uint32) {
	gl.BindVertexArray(vertexArray)
}

func (r *OpenGLRenderer) VertexArrayDestroy(vertexArray uint32) {
	gl.DeleteVertexArrays(1, &vertexArray)
}

func (r *OpenGLRenderer) VertexBufferCreate() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return vbo
}

func (r *OpenGLRenderer) VertexBufferBind(buffer uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
}

func (r *OpenGLRenderer) VertexBufferLoadStatic(data []float32) {
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*float32Size, gl.Ptr(data), gl.STATIC_DRAW)
}

func (r *OpenGLRenderer) VertexBufferDestroy(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (r *OpenGLRenderer) VertexAttributeVec3(index uint32) {
	gl.VertexAttribPointerWithOffset(index, 3, gl.FLOAT, false, 3*float32Size, 0)
	gl.EnableVertexAttribArray(index)
}

func (r *OpenGLRenderer) Viewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (r *OpenGLRenderer) Clear(color renderer.Color) {
	gl.ClearColor(color.R, color.G, color.B, color.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (r *OpenGLRenderer) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}
