package engine

import (
	"fmt"

	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/spaghettifunk/hellotriangle/engine/platform"
	"github.com/spaghettifunk/hellotriangle/engine/renderer"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/opengl"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released every resource
	EngineStageShutdown
)

type Engine struct {
	currentStage Stage
	config       *ApplicationConfig
	platform     *platform.Platform
	backend      *opengl.OpenGLRenderer
	renderer     *renderer.Renderer
	scene        *Scene
	clock        *core.Clock
	metrics      *core.FrameMetrics
	lastTime     float64
}

func New(config *ApplicationConfig) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	core.SetLogLevel(config.Level())

	backend := opengl.New()
	return &Engine{
		currentStage: EngineStageUninitialized,
		config:       config,
		platform:     platform.New(),
		backend:      backend,
		renderer:     renderer.New(backend),
		clock:        core.NewClock(),
		metrics:      core.NewFrameMetrics(),
	}, nil
}

// Initialize opens the window, loads OpenGL and builds the scene. On error
// the caller must still call Shutdown.
func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine already initialized")
	}
	e.currentStage = EngineStageInitializing

	if err := e.platform.Startup(e.config.PlatformConfig()); err != nil {
		return err
	}

	if err := e.backend.Initialize(); err != nil {
		return err
	}

	e.renderer.Resized(e.platform.FramebufferSize())

	scene, err := NewScene(e.renderer, &e.config.Scene)
	if err != nil {
		return err
	}
	e.scene = scene

	e.currentStage = EngineStageInitialized
	core.LogInfo("engine initialized")
	return nil
}

// Run renders frames until the window is asked to close.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine not initialized")
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for !e.platform.ShouldClose() {
		angle := float32(e.platform.Time()) * e.config.Scene.AngularSpeed
		if err := e.scene.Render(angle); err != nil {
			return err
		}

		e.platform.SwapBuffers()
		e.platform.PumpMessages()

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		if e.metrics.Update(currentTime - e.lastTime) {
			core.LogDebug("%.0f fps, %.2f ms/frame", e.metrics.FPS(), e.metrics.FrameTime())
		}
		e.lastTime = currentTime
	}

	e.clock.Stop()
	core.LogInfo("window closed")
	return nil
}

// Shutdown releases the scene, then the window and GLFW. Only the first
// call does any work.
func (e *Engine) Shutdown() error {
	if e.currentStage >= EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	if e.scene != nil {
		e.scene.Release()
		e.scene = nil
	}
	if err := e.platform.Shutdown(); err != nil {
		core.LogError("failed to shut down the platform: %s", err)
		return err
	}

	e.currentStage = EngineStageShutdown
	return nil
}
