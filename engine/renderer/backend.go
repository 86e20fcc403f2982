package renderer

import "github.com/spaghettifunk/hellotriangle/engine/math"

// ShaderStage identifies one pipeline phase of a shader program.
type ShaderStage int

const (
	ShaderStageVertex   ShaderStage = 0x00000001
	ShaderStageFragment ShaderStage = 0x00000004
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	}
	return "unknown"
}

// ShaderBackend is the part of the device used to build and activate shader
// programs. Handles are device-assigned and zero is never a valid handle.
type ShaderBackend interface {
	ShaderCreate(stage ShaderStage) uint32
	// ShaderCompile sets the source of shader, compiles it and reports the
	// compile status.
	ShaderCompile(shader uint32, source string) bool
	ShaderInfoLog(shader uint32) string
	ShaderDestroy(shader uint32)

	ProgramCreate() uint32
	ProgramAttach(program, shader uint32)
	ProgramLink(program uint32) bool
	ProgramInfoLog(program uint32) string
	ProgramDestroy(program uint32)
	ProgramUse(program uint32)

	// UniformLocation returns -1 when the program has no active uniform name.
	UniformLocation(program uint32, name string) int32
	// UniformMat4 uploads a single column-major matrix to the current program.
	UniformMat4(location int32, value *math.Mat4)
}

// BufferBackend allocates vertex storage on the device. Binding handle 0
// unbinds the current object.
type BufferBackend interface {
	VertexArrayCreate() uint32
	VertexArrayBind(vertexArray uint32)
	VertexArrayDestroy(vertexArray uint32)

	VertexBufferCreate() uint32
	VertexBufferBind(buffer uint32)
	// VertexBufferLoadStatic uploads data to the bound buffer with a usage
	// hint saying the contents will rarely change.
	VertexBufferLoadStatic(data []float32)
	VertexBufferDestroy(buffer uint32)

	// VertexAttributeVec3 describes the bound buffer as tightly packed
	// 3-float vertices starting at offset 0 and enables attribute index.
	VertexAttributeVec3(index uint32)
}

// DrawBackend issues frame-level commands.
type DrawBackend interface {
	Viewport(width, height int32)
	Clear(color Color)
	DrawTriangles(first, count int32)
}

// RendererBackend is everything the renderer needs from the graphics device.
// All calls must be made from the thread that owns the current context.
type RendererBackend interface {
	ShaderBackend
	BufferBackend
	DrawBackend
}

// Color is an RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float32
}
