package vkboot

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

func (a *App) createWindow() error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "initialize glfw")
	}
	a.cleanups.push("glfw", glfw.Terminate)

	if !glfw.VulkanSupported() {
		return errors.WithStack(&InitError{Err: errors.New("glfw reports no vulkan loader")})
	}

	// The window owns no GL context and stays fixed size so the swapchain
	// never has to be rebuilt.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(a.cfg.Width, a.cfg.Height, a.cfg.Title, nil, nil)
	if err != nil {
		return errors.Wrap(err, "create window")
	}
	a.window = window
	a.cleanups.push("window", window.Destroy)

	Logger().Debug("window created", "width", a.cfg.Width, "height", a.cfg.Height, "title", a.cfg.Title)
	return nil
}

func (a *App) createSurface() error {
	surfPtr, err := a.window.CreateWindowSurface(a.instance, nil)
	if err != nil {
		return errors.Wrap(err, "create window surface")
	}
	surface := vk.SurfaceFromPointer(surfPtr)
	a.surface = surface
	a.cleanups.push("surface", func() {
		vk.DestroySurface(a.instance, surface, nil)
	})
	return nil
}
