package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadApplicationConfigDefaults(t *testing.T) {
	config, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing config file must not error: %v", err)
	}
	if config.Width != 1920 || config.Height != 1080 {
		t.Errorf("default size = %dx%d, want 1920x1080", config.Width, config.Height)
	}
	if config.ModelPath != "model/rabbit.obj" {
		t.Errorf("default model = %q", config.ModelPath)
	}
	if config.Name != "Rabbit" {
		t.Errorf("default name = %q", config.Name)
	}
}

func TestLoadApplicationConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	content := `
name = "Teapot"
width = 800
model = "assets/teapot.obj"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadApplicationConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if config.Name != "Teapot" || config.Width != 800 || config.ModelPath != "assets/teapot.obj" {
		t.Errorf("overrides not applied: %+v", config)
	}
	// Unset fields keep their defaults.
	if config.Height != 1080 || config.TexturePath != "model/rabbit.jpg" {
		t.Errorf("defaults lost: %+v", config)
	}
}

func TestLoadApplicationConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	if err := os.WriteFile(path, []byte("width = {"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadApplicationConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestAspectRatio(t *testing.T) {
	config := &ApplicationConfig{Width: 1920, Height: 1080}
	if got := config.AspectRatio(); got < 1.777 || got > 1.778 {
		t.Errorf("aspect ratio = %v", got)
	}
}
