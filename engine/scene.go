package engine

import (
	"fmt"
	stdmath "math"

	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/spaghettifunk/hellotriangle/engine/math"
	"github.com/spaghettifunk/hellotriangle/engine/renderer"
)

// The vertex shader reads positions from attribute 0 and transforms them by
// the model, view and projection uniforms.
const vertexShaderSource = `#version 330 core
layout (location = 0) in vec3 position;
uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
gl_Position = projection * view * model * vec4(position, 1.0f);
}
`

// The fragment shader paints every pixel a flat orange.
const fragmentShaderSource = `#version 330 core
out vec4 color;
void main() {
color = vec4(1.0f, 0.5f, 0.2f, 1.0f);
}
`

// Scene is the single rotating triangle. It owns its shader program and
// vertex array and releases both in Release.
type Scene struct {
	renderer    *renderer.Renderer
	program     *renderer.ShaderProgram
	vertexArray *renderer.VertexArray
	projection  math.Mat4
	view        math.Mat4
	background  renderer.Color
}

// NewScene builds the shader program and uploads the triangle. On failure
// everything acquired so far has been released.
func NewScene(r *renderer.Renderer, config *SceneConfig) (*Scene, error) {
	program := renderer.NewShaderProgram(r.Backend())
	if err := program.LoadVertexShaderFromString(vertexShaderSource); err != nil {
		return nil, err
	}
	if err := program.LoadFragmentShaderFromString(fragmentShaderSource); err != nil {
		return nil, err
	}
	if err := program.Create(); err != nil {
		core.LogError("shader program: %s", renderer.ErrorLog(err))
		program.Release()
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidProgram, err)
	}
	if program.ID() == 0 {
		program.Release()
		return nil, core.ErrInvalidProgram
	}

	vertexArray, err := renderer.NewVertexArray(r.Backend(), config.VertexData())
	if err != nil {
		program.Release()
		return nil, err
	}

	s := &Scene{
		renderer:    r,
		program:     program,
		vertexArray: vertexArray,
		projection:  config.ProjectionMatrix(),
		view:        math.NewMat4Identity(),
		background:  config.Background(),
	}
	core.LogDebug("projection matrix: %v", s.projection.Data)
	return s, nil
}

// ModelMatrix moves the triangle back and forth along z while spinning it
// about z. The rotation is applied first.
func ModelMatrix(angle float32) math.Mat4 {
	offset := float32(stdmath.Sin(0.5*float64(angle))) - 1.0
	translation := math.ComputeTranslation(math.NewVec3(0, 0, offset))
	rotation := math.ComputeRotation(math.NewVec3UnitZ(), angle)
	return translation.Mul(rotation)
}

// Render clears the frame and draws the triangle at the given angle.
func (s *Scene) Render(angle float32) error {
	s.renderer.BeginFrame(s.background)

	model := ModelMatrix(angle)
	core.LogDebug("model: %v", model.Data)

	return s.renderer.Draw(s.program, s.vertexArray, renderer.Uniforms{
		Model:      model,
		View:       s.view,
		Projection: s.projection,
	})
}

func (s *Scene) Program() *renderer.ShaderProgram {
	return s.program
}

func (s *Scene) Release() {
	if s.vertexArray != nil {
		s.vertexArray.Release()
		s.vertexArray = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
}
