package engine

import (
	"errors"
	stdmath "math"
	"testing"

	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/spaghettifunk/hellotriangle/engine/math"
	"github.com/spaghettifunk/hellotriangle/engine/renderer"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/renderertest"
)

func defaultSceneConfig(t *testing.T) *SceneConfig {
	t.Helper()
	config, err := DefaultApplicationConfig()
	if err != nil {
		t.Fatal(err)
	}
	return &config.Scene
}

func TestModelMatrix(t *testing.T) {
	const tolerance = 1e-5

	if got, want := ModelMatrix(0), math.ComputeTranslation(math.NewVec3(0, 0, -1)); !got.Compare(want, tolerance) {
		t.Errorf("ModelMatrix(0) = %v, want %v", got.Data, want.Data)
	}

	// At angle pi the triangle is upside down and sin(pi/2) - 1 = 0 puts it
	// back on the z = 0 plane.
	m := ModelMatrix(float32(stdmath.Pi))
	if got := m.MulVec4(math.Vec4{X: 1, W: 1}); !got.Compare(math.Vec4{X: -1, W: 1}, tolerance) {
		t.Errorf("ModelMatrix(pi) * (1,0,0,1) = %v, want (-1,0,0,1)", got)
	}
}

func TestScene_Render(t *testing.T) {
	d := renderertest.NewDevice()
	config := defaultSceneConfig(t)

	s, err := NewScene(renderer.New(d), config)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	if s.Program().ID() == 0 {
		t.Fatal("scene program has id 0")
	}

	angles := []float32{0, 0.5, 10}
	for _, angle := range angles {
		if err := s.Render(angle); err != nil {
			t.Fatalf("Render(%v): %v", angle, err)
		}
	}

	if len(d.Draws) != len(angles) {
		t.Fatalf("got %d draws, want %d", len(d.Draws), len(angles))
	}
	for i, draw := range d.Draws {
		if draw.Count != 3 || draw.First != 0 {
			t.Errorf("draw %d range = [%d, %d)", i, draw.First, draw.Count)
		}
		if got, want := draw.Uniforms[renderer.UniformModel], ModelMatrix(angles[i]); got != want {
			t.Errorf("draw %d model = %v, want %v", i, got.Data, want.Data)
		}
		if got := draw.Uniforms[renderer.UniformView]; got != math.NewMat4Identity() {
			t.Errorf("draw %d view = %v, want identity", i, got.Data)
		}
		if got, want := draw.Uniforms[renderer.UniformProjection], config.ProjectionMatrix(); got != want {
			t.Errorf("draw %d projection = %v, want %v", i, got.Data, want.Data)
		}
	}
	if d.ClearColor != (renderer.Color{A: 1}) {
		t.Errorf("clear colour = %v", d.ClearColor)
	}

	s.Release()
	s.Release()
	if d.Live() != 0 {
		t.Errorf("Live() = %d after Release", d.Live())
	}
	if len(d.Errors) != 0 {
		t.Errorf("device errors: %v", d.Errors)
	}
}

func TestNewScene_ShaderFailure(t *testing.T) {
	d := renderertest.NewDevice()
	d.CompileFunc = func(stage renderer.ShaderStage, source string) (bool, string) {
		if stage == renderer.ShaderStageVertex {
			return false, "0:7(1): error: syntax error"
		}
		return renderertest.Validate(stage, source)
	}

	s, err := NewScene(renderer.New(d), defaultSceneConfig(t))
	if s != nil {
		t.Fatal("NewScene returned a scene")
	}
	if !errors.Is(err, core.ErrInvalidProgram) {
		t.Errorf("NewScene() = %v, want ErrInvalidProgram", err)
	}
	var compileErr *renderer.CompileError
	if !errors.As(err, &compileErr) || compileErr.Stage != renderer.ShaderStageVertex {
		t.Errorf("NewScene() = %v, want a vertex *CompileError", err)
	}
	if d.ProgramActivation != 0 || d.Called("ProgramUse") || d.Called("DrawTriangles") {
		t.Error("a failed program reached activation")
	}
	if d.Live() != 0 {
		t.Errorf("Live() = %d, failed startup leaked device objects", d.Live())
	}
}

func TestNewScene_LinkFailure(t *testing.T) {
	d := renderertest.NewDevice()
	d.LinkLog = "error: linking failed"

	_, err := NewScene(renderer.New(d), defaultSceneConfig(t))
	if !errors.Is(err, core.ErrInvalidProgram) {
		t.Fatalf("NewScene() = %v, want ErrInvalidProgram", err)
	}
	if got := renderer.ErrorLog(err); got != d.LinkLog {
		t.Errorf("ErrorLog = %q, want %q", got, d.LinkLog)
	}
	if d.Live() != 0 {
		t.Errorf("Live() = %d, failed startup leaked device objects", d.Live())
	}
}

func TestNewScene_InvalidVertices(t *testing.T) {
	d := renderertest.NewDevice()
	config := defaultSceneConfig(t)
	config.Vertices = config.Vertices[:2]

	_, err := NewScene(renderer.New(d), config)
	if !errors.Is(err, renderer.ErrInvalidVertexData) {
		t.Fatalf("NewScene() = %v, want ErrInvalidVertexData", err)
	}
	if d.Live() != 0 {
		t.Errorf("Live() = %d, program leaked after vertex upload failed", d.Live())
	}
}
