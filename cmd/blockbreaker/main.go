package main

import (
	"flag"
	"log"
	"runtime"

	"block-breaker-3d/internal/assets"
	"block-breaker-3d/internal/config"
	"block-breaker-3d/internal/engine"
	"block-breaker-3d/internal/graphics/opengl"
	"block-breaker-3d/internal/input"
	"block-breaker-3d/internal/platform"

	"github.com/xlab/closer"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

var (
	widthFlag    = flag.Int("width", 0, "window width (0 keeps the default)")
	heightFlag   = flag.Int("height", 0, "window height (0 keeps the default)")
	fpsFlag      = flag.Int("fps", 0, "frame rate cap (0 keeps the default)")
	fontFlag     = flag.String("font", "", "TTF/OTF font for the UI; the built-in face is used when empty")
	settingsFlag = flag.String("settings", "", "settings file to check at startup")
)

func main() {
	flag.Parse()
	defer closer.Close()

	cfg := config.Default()
	if *widthFlag > 0 {
		cfg.Width = *widthFlag
	}
	if *heightFlag > 0 {
		cfg.Height = *heightFlag
	}
	if *fpsFlag > 0 {
		cfg.TargetFPS = *fpsFlag
	}
	if *fontFlag != "" {
		cfg.FontPath = *fontFlag
	}
	if *settingsFlag != "" {
		cfg.SettingsPath = *settingsFlag
	}
	cfg.Validate()

	if err := config.LoadSettings(cfg.SettingsPath); err != nil {
		closer.Fatalln(err)
	}

	in := input.NewState()
	win, err := platform.NewWindow(cfg, in)
	if err != nil {
		closer.Fatalln(err)
	}
	closer.Bind(win.Destroy)

	dev, err := opengl.NewDevice(win)
	if err != nil {
		closer.Fatalln(err)
	}
	closer.Bind(dev.Destroy)

	lib, err := assets.Load(dev, cfg.Assets, cfg.FontPath, cfg.FontPixels)
	if err != nil {
		closer.Fatalln(err)
	}

	eng, err := engine.New(cfg, win, dev, lib, in, nil)
	if err != nil {
		closer.Fatalln(err)
	}
	if err := eng.Run(); err != nil {
		closer.Fatalln(err)
	}
	log.Printf("bye")
}
