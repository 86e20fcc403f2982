package renderer

import (
	"errors"
	"fmt"
)

var (
	ErrMissingShaderSource   = errors.New("shader source not loaded")
	ErrProgramAlreadyCreated = errors.New("shader program already created")
	ErrProgramNotCreated     = errors.New("shader program not created")
	ErrInvalidVertexData     = errors.New("invalid vertex data")
)

const noDiagnostic = "no diagnostic reported by the driver"

// CompileError is returned when a shader stage fails to compile.
type CompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// LinkError is returned when the compiled stages fail to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader program link failed: %s", e.Log)
}

// ErrorLog returns the device diagnostic carried by err, or its message when
// it carries none.
func ErrorLog(err error) string {
	if err == nil {
		return ""
	}
	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		return compileErr.Log
	}
	var linkErr *LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Log
	}
	return err.Error()
}
