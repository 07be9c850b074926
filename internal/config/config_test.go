package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateClamps(t *testing.T) {
	c := Default()
	c.TargetFPS = 1000
	c.Width = 10
	c.MouseSensitivity = -1
	c.FontPixels = 200
	c.Validate()

	if c.TargetFPS != 240 {
		t.Errorf("TargetFPS = %d, want 240", c.TargetFPS)
	}
	if c.Width != 320 {
		t.Errorf("Width = %d, want 320", c.Width)
	}
	if c.MouseSensitivity != 0.1 {
		t.Errorf("MouseSensitivity = %v, want 0.1", c.MouseSensitivity)
	}
	if c.FontPixels != 64 {
		t.Errorf("FontPixels = %d, want 64", c.FontPixels)
	}
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	before := c
	c.Validate()
	if c.TargetFPS != before.TargetFPS || c.Width != before.Width || c.Height != before.Height {
		t.Fatalf("Validate changed defaults: %+v -> %+v", before, c)
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()

	if err := LoadSettings(filepath.Join(dir, "missing.json")); err != nil {
		t.Errorf("missing file: got %v, want nil", err)
	}

	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, []byte(`{"volume": 3}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := LoadSettings(good); err != nil {
		t.Errorf("good file: got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"volume": `), 0644); err != nil {
		t.Fatal(err)
	}
	if err := LoadSettings(bad); err == nil {
		t.Errorf("bad file: expected error")
	}
}
