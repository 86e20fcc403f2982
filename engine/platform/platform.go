package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/hellotriangle/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// WindowConfig describes the window and the OpenGL context created with it.
type WindowConfig struct {
	Title        string
	Width        int
	Height       int
	Resizable    bool
	SwapInterval int
	GLMajor      int
	GLMinor      int
}

type Platform struct {
	Window      *glfw.Window
	initialized bool
}

func New() *Platform {
	return &Platform{
		Window: nil,
	}
}

// Startup initializes GLFW, creates the window and makes its context current
// on the calling thread.
func (p *Platform) Startup(config WindowConfig) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return fmt.Errorf("%w: %s", core.ErrContextInit, err)
	}
	p.initialized = true

	glfw.WindowHint(glfw.ContextVersionMajor, config.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, config.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolHint(config.Resizable))

	window, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		return fmt.Errorf("%w: %s", core.ErrWindowCreation, err)
	}
	p.Window = window

	p.Window.MakeContextCurrent()
	glfw.SwapInterval(config.SwapInterval)
	p.Window.SetKeyCallback(keyCallback)

	core.LogInfo("window %q created (%dx%d)", config.Title, config.Width, config.Height)
	return nil
}

// Shutdown destroys the window and terminates GLFW. It is safe to call after
// a partial Startup and more than once.
func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	if p.initialized {
		glfw.Terminate()
		p.initialized = false
	}
	return nil
}

func (p *Platform) FramebufferSize() (int, int) {
	return p.Window.GetFramebufferSize()
}

func (p *Platform) ShouldClose() bool {
	return p.Window.ShouldClose()
}

func (p *Platform) SwapBuffers() {
	p.Window.SwapBuffers()
}

func (p *Platform) PumpMessages() {
	glfw.PollEvents()
}

// Time returns the seconds elapsed since GLFW was initialized.
func (p *Platform) Time() float64 {
	return glfw.GetTime()
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		core.LogDebug("escape pressed, closing window")
		w.SetShouldClose(true)
	}
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
