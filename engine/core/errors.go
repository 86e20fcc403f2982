package core

import (
	"errors"
)

// Startup failures. Every one of them is fatal to the process.
var (
	ErrContextInit     = errors.New("failed to initialize the windowing context")
	ErrWindowCreation  = errors.New("failed to create the window")
	ErrExtensionLoader = errors.New("failed to initialize the OpenGL function loader")
	ErrInvalidProgram  = errors.New("could not create a shader program")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
