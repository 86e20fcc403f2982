package renderer

import (
	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/spaghettifunk/hellotriangle/engine/math"
)

// Names of the matrix uniforms every program drawn by the renderer declares.
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
)

// Uniforms are the per-draw matrices uploaded before a draw call.
type Uniforms struct {
	Model      math.Mat4
	View       math.Mat4
	Projection math.Mat4
}

type Renderer struct {
	backend RendererBackend
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Backend() RendererBackend {
	return r.backend
}

// Resized maps the viewport to the whole framebuffer.
func (r *Renderer) Resized(width, height int) {
	core.LogDebug("viewport set to %dx%d", width, height)
	r.backend.Viewport(int32(width), int32(height))
}

func (r *Renderer) BeginFrame(clear Color) {
	r.backend.Clear(clear)
}

// Draw activates program, uploads the three matrices and draws every vertex
// of vertexArray as a triangle list.
func (r *Renderer) Draw(program *ShaderProgram, vertexArray *VertexArray, uniforms Uniforms) error {
	if err := program.Use(); err != nil {
		return err
	}

	r.backend.UniformMat4(program.UniformLocation(UniformModel), &uniforms.Model)
	r.backend.UniformMat4(program.UniformLocation(UniformView), &uniforms.View)
	r.backend.UniformMat4(program.UniformLocation(UniformProjection), &uniforms.Projection)

	vertexArray.Bind()
	r.backend.DrawTriangles(0, int32(vertexArray.VertexCount()))
	vertexArray.Unbind()
	return nil
}
