package main

import (
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/andewx/vkboot"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	vkboot.SetLogger(logger)

	cfg, err := vkboot.LoadConfig("vkboot.toml")
	if err != nil {
		log.Fatalf("vkboot: %+v", err)
	}
	if cfg.Debug {
		level.Set(slog.LevelDebug)
	}

	app, err := vkboot.New(cfg)
	if err != nil {
		log.Fatalf("vkboot: %+v", err)
	}
	defer app.Destroy()

	logger.Info("vulkan ready", "device", app.DeviceName())
	app.Run()
}
