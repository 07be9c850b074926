package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// Config holds the engine settings. It is built once at startup and passed
// to the engine explicitly.
type Config struct {
	Title  string
	Width  int
	Height int

	// TargetFPS caps the frame rate; the loop sleeps away the remainder of
	// each frame.
	TargetFPS int

	MouseSensitivity float32

	// FontPath is optional; the built-in Go Regular face is used when empty.
	FontPath   string
	FontPixels int

	// SettingsPath points at the user settings file. It is read and
	// syntax-checked at startup but nothing in it is applied yet.
	SettingsPath string

	LightColor  mgl32.Vec3
	ObjectColor mgl32.Vec3

	// SlowFrameLogMillis is the frame duration above which the loop logs the
	// heaviest phases.
	SlowFrameLogMillis int

	Assets Manifest
}

// Manifest maps asset slots to files on disk. Empty entries fall back to the
// built-in procedural assets; non-empty entries are required.
type Manifest struct {
	Meshes   map[int]string
	Textures map[int]string
	Skyboxes [][6]string
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Title:              "Block Breaker 3D",
		Width:              1280,
		Height:             720,
		TargetFPS:          60,
		MouseSensitivity:   0.1,
		FontPixels:         48,
		SettingsPath:       "settings.json",
		LightColor:         mgl32.Vec3{1, 1, 1},
		ObjectColor:        mgl32.Vec3{1, 1, 1},
		SlowFrameLogMillis: 20,
		Assets: Manifest{
			Meshes:   map[int]string{},
			Textures: map[int]string{},
		},
	}
}

// Validate clamps out-of-range values to usable ones.
func (c *Config) Validate() {
	if c.Width < 320 {
		c.Width = 320
	}
	if c.Height < 240 {
		c.Height = 240
	}
	if c.TargetFPS < 15 {
		c.TargetFPS = 15
	}
	if c.TargetFPS > 240 {
		c.TargetFPS = 240
	}
	if c.MouseSensitivity <= 0 {
		c.MouseSensitivity = 0.1
	}
	if c.FontPixels < 8 {
		c.FontPixels = 8
	}
	if c.FontPixels > 64 {
		c.FontPixels = 64
	}
}

// LoadSettings reads the settings file and checks that it is well-formed
// JSON. Its contents are not applied. A missing file is not an error.
func LoadSettings(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse settings %q: %w", path, err)
	}
	log.Printf("settings: %s has %d keys; settings are not applied yet", path, len(raw))
	return nil
}
