package renderer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/spaghettifunk/hellotriangle/engine/renderer"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/renderertest"
)

const (
	vertexSource = `#version 330 core
layout (location = 0) in vec3 position;
uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
gl_Position = projection * view * model * vec4(position, 1.0f);
}
`
	fragmentSource = `#version 330 core
out vec4 color;
void main() {
color = vec4(1.0f, 0.5f, 0.2f, 1.0f);
}
`
	brokenVertexSource = `#version 330 core
layout (location = 0) in vec3 position;
void main() {
gl_Position = vec4(position, 1.0f);;
`
)

func newLoadedProgram(t *testing.T, d *renderertest.Device, vertex, fragment string) *renderer.ShaderProgram {
	t.Helper()
	p := renderer.NewShaderProgram(d)
	if err := p.LoadVertexShaderFromString(vertex); err != nil {
		t.Fatalf("LoadVertexShaderFromString: %v", err)
	}
	if err := p.LoadFragmentShaderFromString(fragment); err != nil {
		t.Fatalf("LoadFragmentShaderFromString: %v", err)
	}
	return p
}

func TestShaderProgram_Create(t *testing.T) {
	d := renderertest.NewDevice()
	p := newLoadedProgram(t, d, vertexSource, fragmentSource)

	if p.ID() != 0 {
		t.Fatalf("ID() before Create = %d, want 0", p.ID())
	}
	err := p.Create()
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if log := renderer.ErrorLog(err); log != "" {
		t.Errorf("ErrorLog = %q, want empty", log)
	}
	if p.ID() == 0 {
		t.Fatal("ID() = 0 after successful Create")
	}
	if n := d.LiveShaders(); n != 0 {
		t.Errorf("%d stage objects outlived Create", n)
	}
	if d.Live() != 1 {
		t.Errorf("Live() = %d, want only the program", d.Live())
	}

	if err := p.Use(); err != nil {
		t.Fatalf("Use() = %v", err)
	}
	if d.CurrentProgram != p.ID() {
		t.Errorf("current program = %d, want %d", d.CurrentProgram, p.ID())
	}

	for _, name := range []string{renderer.UniformModel, renderer.UniformView, renderer.UniformProjection} {
		if loc := p.UniformLocation(name); loc < 0 {
			t.Errorf("UniformLocation(%q) = %d", name, loc)
		}
	}
	if loc := p.UniformLocation("missing"); loc != -1 {
		t.Errorf("UniformLocation(missing) = %d, want -1", loc)
	}

	p.Release()
	p.Release()
	if p.ID() != 0 {
		t.Errorf("ID() after Release = %d, want 0", p.ID())
	}
	if d.Live() != 0 {
		t.Errorf("Live() after Release = %d, want 0", d.Live())
	}
	if len(d.Errors) != 0 {
		t.Errorf("device errors: %v", d.Errors)
	}
}

func TestShaderProgram_CompileFailure(t *testing.T) {
	tests := []struct {
		name      string
		vertex    string
		fragment  string
		wantStage renderer.ShaderStage
	}{
		{"vertex", brokenVertexSource, fragmentSource, renderer.ShaderStageVertex},
		{"fragment", vertexSource, "void main() {}", renderer.ShaderStageFragment},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			d := renderertest.NewDevice()
			p := newLoadedProgram(t, d, c.vertex, c.fragment)

			err := p.Create()
			var compileErr *renderer.CompileError
			if !errors.As(err, &compileErr) {
				t.Fatalf("Create() = %v, want *CompileError", err)
			}
			if compileErr.Stage != c.wantStage {
				t.Errorf("failed stage = %s, want %s", compileErr.Stage, c.wantStage)
			}
			if renderer.ErrorLog(err) == "" {
				t.Error("empty error log")
			}
			if p.ID() != 0 {
				t.Errorf("ID() = %d after failed Create", p.ID())
			}
			if d.Live() != 0 {
				t.Errorf("Live() = %d, failed Create leaked device objects", d.Live())
			}
			if d.Called("ProgramCreate") {
				t.Error("program created although a stage failed")
			}

			if err := p.Use(); !errors.Is(err, renderer.ErrProgramNotCreated) {
				t.Errorf("Use() = %v, want ErrProgramNotCreated", err)
			}
			if d.Called("ProgramUse") || d.ProgramActivation != 0 {
				t.Error("failed program reached the device")
			}
			if len(d.Errors) != 0 {
				t.Errorf("device errors: %v", d.Errors)
			}
		})
	}
}

func TestShaderProgram_LinkFailure(t *testing.T) {
	d := renderertest.NewDevice()
	d.LinkLog = "error: vertex output 'uv' not read by fragment shader"
	p := newLoadedProgram(t, d, vertexSource, fragmentSource)

	err := p.Create()
	var linkErr *renderer.LinkError
	if !errors.As(err, &linkErr) {
		t.Fatalf("Create() = %v, want *LinkError", err)
	}
	if got := renderer.ErrorLog(err); got != d.LinkLog {
		t.Errorf("ErrorLog = %q, want %q", got, d.LinkLog)
	}
	if p.ID() != 0 {
		t.Errorf("ID() = %d after failed link", p.ID())
	}
	if d.Live() != 0 {
		t.Errorf("Live() = %d, failed link leaked device objects", d.Live())
	}
	if err := p.Use(); !errors.Is(err, renderer.ErrProgramNotCreated) {
		t.Errorf("Use() = %v, want ErrProgramNotCreated", err)
	}
	if d.ProgramActivation != 0 {
		t.Error("failed program reached the device")
	}

	p.Release()
	if len(d.Errors) != 0 {
		t.Errorf("device errors: %v", d.Errors)
	}
}

func TestShaderProgram_EmptyDiagnostic(t *testing.T) {
	d := renderertest.NewDevice()
	d.CompileFunc = func(renderer.ShaderStage, string) (bool, string) { return false, "\x00" }
	p := newLoadedProgram(t, d, vertexSource, fragmentSource)

	err := p.Create()
	if err == nil {
		t.Fatal("Create() succeeded")
	}
	if renderer.ErrorLog(err) == "" {
		t.Error("error log is empty when the driver reports nothing")
	}
}

func TestShaderProgram_MissingSource(t *testing.T) {
	d := renderertest.NewDevice()
	p := renderer.NewShaderProgram(d)
	if err := p.LoadVertexShaderFromString(vertexSource); err != nil {
		t.Fatal(err)
	}

	err := p.Create()
	if !errors.Is(err, renderer.ErrMissingShaderSource) {
		t.Fatalf("Create() = %v, want ErrMissingShaderSource", err)
	}
	if !strings.Contains(err.Error(), "fragment") {
		t.Errorf("error %q does not name the missing stage", err)
	}
	if len(d.Calls) != 0 {
		t.Errorf("device was called: %v", d.Calls)
	}

	// The precondition failure is recoverable.
	if err := p.LoadFragmentShaderFromString(fragmentSource); err != nil {
		t.Fatal(err)
	}
	if err := p.Create(); err != nil {
		t.Fatalf("Create() after loading both stages = %v", err)
	}
}

func TestShaderProgram_LastLoadWins(t *testing.T) {
	d := renderertest.NewDevice()
	p := newLoadedProgram(t, d, brokenVertexSource, fragmentSource)
	if err := p.LoadVertexShaderFromString(vertexSource); err != nil {
		t.Fatal(err)
	}
	if err := p.Create(); err != nil {
		t.Fatalf("Create() = %v", err)
	}
}

func TestShaderProgram_CreateOnce(t *testing.T) {
	d := renderertest.NewDevice()
	p := newLoadedProgram(t, d, vertexSource, fragmentSource)
	if err := p.Create(); err != nil {
		t.Fatal(err)
	}
	id := p.ID()

	if err := p.Create(); !errors.Is(err, renderer.ErrProgramAlreadyCreated) {
		t.Errorf("second Create() = %v, want ErrProgramAlreadyCreated", err)
	}
	if err := p.LoadVertexShaderFromString(vertexSource); !errors.Is(err, renderer.ErrProgramAlreadyCreated) {
		t.Errorf("load after Create = %v, want ErrProgramAlreadyCreated", err)
	}
	if p.ID() != id {
		t.Errorf("ID() changed from %d to %d", id, p.ID())
	}
}

func TestShaderProgram_UseBeforeCreate(t *testing.T) {
	d := renderertest.NewDevice()
	p := newLoadedProgram(t, d, vertexSource, fragmentSource)

	if err := p.Use(); !errors.Is(err, renderer.ErrProgramNotCreated) {
		t.Errorf("Use() = %v, want ErrProgramNotCreated", err)
	}
	if loc := p.UniformLocation(renderer.UniformModel); loc != -1 {
		t.Errorf("UniformLocation before Create = %d, want -1", loc)
	}
	if len(d.Calls) != 0 {
		t.Errorf("device was called: %v", d.Calls)
	}
}
