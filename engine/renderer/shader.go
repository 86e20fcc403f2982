package renderer

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/hellotriangle/engine/core"
)

type programState uint8

const (
	programStateEmpty programState = iota
	programStateSourcesLoaded
	programStateCreated
	programStateFailed
	programStateReleased
)

// programStages is the compile order of a program.
var programStages = []ShaderStage{ShaderStageVertex, ShaderStageFragment}

// ShaderProgram owns a linked vertex+fragment program on the device.
//
// Sources are loaded first, then Create compiles and links them once. A
// program whose Create failed can never be activated. The device handle is
// released by Release, exactly once.
type ShaderProgram struct {
	backend  ShaderBackend
	sources  map[ShaderStage]string
	uniforms map[string]int32
	id       uint32
	state    programState
}

func NewShaderProgram(backend ShaderBackend) *ShaderProgram {
	return &ShaderProgram{
		backend:  backend,
		sources:  make(map[ShaderStage]string, len(programStages)),
		uniforms: make(map[string]int32),
		state:    programStateEmpty,
	}
}

func (p *ShaderProgram) LoadVertexShaderFromString(source string) error {
	return p.loadSource(ShaderStageVertex, source)
}

func (p *ShaderProgram) LoadFragmentShaderFromString(source string) error {
	return p.loadSource(ShaderStageFragment, source)
}

func (p *ShaderProgram) loadSource(stage ShaderStage, source string) error {
	if p.state > programStateSourcesLoaded {
		return fmt.Errorf("cannot load %s shader: %w", stage, ErrProgramAlreadyCreated)
	}
	p.sources[stage] = source
	p.state = programStateSourcesLoaded
	return nil
}

// Create compiles every stage and links them into a program. The returned
// error is a *CompileError or *LinkError when the device rejected the
// sources; ErrorLog extracts the diagnostic text. Intermediate stage objects
// never outlive this call.
func (p *ShaderProgram) Create() error {
	if p.state > programStateSourcesLoaded {
		return ErrProgramAlreadyCreated
	}
	for _, stage := range programStages {
		if _, ok := p.sources[stage]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingShaderSource, stage)
		}
	}

	compiled := make([]uint32, 0, len(programStages))
	defer func() {
		for _, shader := range compiled {
			p.backend.ShaderDestroy(shader)
		}
	}()

	for _, stage := range programStages {
		shader := p.backend.ShaderCreate(stage)
		compiled = append(compiled, shader)
		if !p.backend.ShaderCompile(shader, p.sources[stage]) {
			p.state = programStateFailed
			return &CompileError{Stage: stage, Log: diagnostic(p.backend.ShaderInfoLog(shader))}
		}
	}

	program := p.backend.ProgramCreate()
	for _, shader := range compiled {
		p.backend.ProgramAttach(program, shader)
	}
	if !p.backend.ProgramLink(program) {
		log := diagnostic(p.backend.ProgramInfoLog(program))
		p.backend.ProgramDestroy(program)
		p.state = programStateFailed
		return &LinkError{Log: log}
	}

	p.id = program
	p.state = programStateCreated
	core.LogDebug("shader program %d linked", p.id)
	return nil
}

// Use makes the program current on the device. Nothing reaches the device
// unless Create succeeded.
func (p *ShaderProgram) Use() error {
	if p.state != programStateCreated {
		return ErrProgramNotCreated
	}
	p.backend.ProgramUse(p.id)
	return nil
}

// ID returns the device handle, or 0 when the program was not successfully
// created.
func (p *ShaderProgram) ID() uint32 {
	return p.id
}

// UniformLocation looks up and caches the location of a named uniform.
// It returns -1 for unknown names and for programs that are not created.
func (p *ShaderProgram) UniformLocation(name string) int32 {
	if p.state != programStateCreated {
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := p.backend.UniformLocation(p.id, name)
	p.uniforms[name] = loc
	return loc
}

func (p *ShaderProgram) Release() {
	if p.state == programStateCreated {
		p.backend.ProgramDestroy(p.id)
	}
	p.id = 0
	p.uniforms = make(map[string]int32)
	p.state = programStateReleased
}

func diagnostic(log string) string {
	log = strings.TrimRight(log, "\x00 \t\r\n")
	if log == "" {
		return noDiagnostic
	}
	return log
}
