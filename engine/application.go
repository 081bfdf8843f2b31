package engine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"rabbitview/engine/renderer"
)

// ApplicationConfig describes the viewer's window and assets. Every field
// has a default; a viewer.toml next to the binary can override them, and a
// missing file just means defaults.
type ApplicationConfig struct {
	// The application name used in windowing.
	Name string `toml:"name"`
	// Fixed window dimensions; the window is not resizable.
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
	// Mesh and texture to display.
	ModelPath   string `toml:"model"`
	TexturePath string `toml:"texture"`
	LogLevel    string `toml:"log_level"`
}

const DefaultConfigPath = "viewer.toml"

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:        "Rabbit",
		Width:       1920,
		Height:      1080,
		ModelPath:   "model/rabbit.obj",
		TexturePath: "model/rabbit.jpg",
		LogLevel:    "info",
	}
}

// LoadApplicationConfig reads a TOML config, applying it over the
// defaults. A missing file is not an error.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

func (c *ApplicationConfig) AspectRatio() float32 {
	return float32(c.Width) / float32(c.Height)
}

// Application hooks the concrete viewer into the engine loop, mirroring
// the split between the engine and the program using it.
type Application struct {
	Config *ApplicationConfig

	// FnInitialize runs after the subsystems are up; it loads assets and
	// registers input handling.
	FnInitialize func(e *Engine) error
	// FnUpdate runs once per frame and returns the packet to render.
	FnUpdate func(deltaTime float64) (*renderer.RenderPacket, error)
	// FnShutdown runs before the subsystems are torn down. Optional.
	FnShutdown func() error
}
