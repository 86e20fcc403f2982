package engine

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/spaghettifunk/hellotriangle/engine/math"
	"github.com/spaghettifunk/hellotriangle/engine/platform"
	"github.com/spaghettifunk/hellotriangle/engine/renderer"
)

// ConfigFileName is looked up in the working directory at startup.
const ConfigFileName = "hellotriangle.toml"

//go:embed config.toml
var defaultConfig []byte

type WindowConfig struct {
	Title        string `toml:"title"`
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	Resizable    bool   `toml:"resizable"`
	SwapInterval int    `toml:"swap_interval"`
}

// ContextConfig is the minimum OpenGL version requested from the driver.
type ContextConfig struct {
	Major int `toml:"major"`
	Minor int `toml:"minor"`
}

type ProjectionConfig struct {
	Left   float32 `toml:"left"`
	Right  float32 `toml:"right"`
	Top    float32 `toml:"top"`
	Bottom float32 `toml:"bottom"`
	Near   float32 `toml:"near"`
	Far    float32 `toml:"far"`
}

type SceneConfig struct {
	// Radians per second of wall-clock time.
	AngularSpeed float32          `toml:"angular_speed"`
	ClearColor   [4]float32       `toml:"clear_color"`
	Vertices     [][3]float32     `toml:"vertices"`
	Projection   ProjectionConfig `toml:"projection"`
}

type ApplicationConfig struct {
	LogLevel string        `toml:"log_level"`
	Window   WindowConfig  `toml:"window"`
	Context  ContextConfig `toml:"context"`
	Scene    SceneConfig   `toml:"scene"`
}

// DefaultApplicationConfig returns the built-in configuration.
func DefaultApplicationConfig() (*ApplicationConfig, error) {
	config := &ApplicationConfig{}
	if err := toml.Unmarshal(defaultConfig, config); err != nil {
		return nil, fmt.Errorf("failed to decode default configuration: %w", err)
	}
	return config, nil
}

// LoadApplicationConfig decodes the defaults and overlays the file at path
// when it exists. A missing file is not an error.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config, err := DefaultApplicationConfig()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.validated()
	}
	if err != nil {
		return nil, err
	}

	// the overlay may shorten the vertex list, so start from an empty one
	overlay := struct {
		Scene struct {
			Vertices *[][3]float32 `toml:"vertices"`
		} `toml:"scene"`
	}{}
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrInvalidConfig, filepath.Base(path), err)
	}
	if overlay.Scene.Vertices != nil {
		config.Scene.Vertices = nil
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrInvalidConfig, filepath.Base(path), err)
	}
	core.LogInfo("configuration loaded from %s", path)

	return config.validated()
}

func (c *ApplicationConfig) validated() (*ApplicationConfig, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects settings that would only fail later on the device.
func (c *ApplicationConfig) Validate() error {
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", core.ErrInvalidConfig, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", core.ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Context.Major < 3 || (c.Context.Major == 3 && c.Context.Minor < 3) {
		return fmt.Errorf("%w: OpenGL %d.%d cannot run GLSL 330 shaders", core.ErrInvalidConfig, c.Context.Major, c.Context.Minor)
	}
	if n := len(c.Scene.Vertices); n == 0 || n%3 != 0 {
		return fmt.Errorf("%w: %d vertices do not form a triangle list", core.ErrInvalidConfig, n)
	}
	p := c.Scene.Projection
	if p.Right == p.Left || p.Top == p.Bottom || p.Far == p.Near {
		return fmt.Errorf("%w: degenerate frustum %+v", core.ErrInvalidConfig, p)
	}
	return nil
}

func (c *ApplicationConfig) Level() core.LogLevel {
	level, err := core.ParseLogLevel(c.LogLevel)
	if err != nil {
		return core.InfoLevel
	}
	return level
}

func (c *ApplicationConfig) PlatformConfig() platform.WindowConfig {
	return platform.WindowConfig{
		Title:        c.Window.Title,
		Width:        c.Window.Width,
		Height:       c.Window.Height,
		Resizable:    c.Window.Resizable,
		SwapInterval: c.Window.SwapInterval,
		GLMajor:      c.Context.Major,
		GLMinor:      c.Context.Minor,
	}
}

func (c *SceneConfig) VertexData() []math.Vec3 {
	vertices := make([]math.Vec3, len(c.Vertices))
	for i, v := range c.Vertices {
		vertices[i] = math.NewVec3(v[0], v[1], v[2])
	}
	return vertices
}

func (c *SceneConfig) Background() renderer.Color {
	return renderer.Color{R: c.ClearColor[0], G: c.ClearColor[1], B: c.ClearColor[2], A: c.ClearColor[3]}
}

func (c *SceneConfig) ProjectionMatrix() math.Mat4 {
	p := c.Projection
	return math.ComputeProjectionMatrix(p.Left, p.Right, p.Top, p.Bottom, p.Near, p.Far)
}
