// Package vkboot brings a Vulkan rendering context up from nothing: a
// native window, an instance, a logical device with graphics and present
// queues, a swapchain with image views, a render pass, a fixed graphics
// pipeline and one framebuffer per swapchain image. Every handle belongs
// to the App that created it and is released in reverse creation order,
// including after a failure partway through setup.
package vkboot

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// App owns the full Vulkan setup. Create one with New, drive the window
// with Run, release everything with Destroy.
type App struct {
	cfg Config

	window *glfw.Window

	instance      vk.Instance
	debugCallback vk.DebugReportCallback
	surface       vk.Surface

	gpu     vk.PhysicalDevice
	gpuInfo DeviceInfo
	indices QueueIndices

	device        vk.Device
	graphicsQueue vk.Queue
	presentQueue  vk.Queue

	swapchain vk.Swapchain
	images    []vk.Image
	views     []vk.ImageView
	format    vk.SurfaceFormat
	extent    vk.Extent2D

	renderPass     vk.RenderPass
	pipelineLayout vk.PipelineLayout
	pipeline       vk.Pipeline
	framebuffers   []vk.Framebuffer

	cleanups cleanups
}

// New runs every setup stage in order and returns the ready App. On any
// stage failure the stages that already succeeded are unwound in reverse
// order before the error is returned, so a failed New leaks nothing.
func New(cfg Config) (*App, error) {
	a := &App{cfg: cfg}
	if err := a.bootstrap(); err != nil {
		a.cleanups.run()
		return nil, err
	}
	return a, nil
}

func (a *App) bootstrap() error {
	stages := []struct {
		name string
		fn   func() error
	}{
		{"window", a.createWindow},
		{"loader", a.loadFunctionTable},
		{"instance", a.createInstance},
		{"debug messenger", a.createDebugMessenger},
		{"surface", a.createSurface},
		{"physical device", a.pickPhysicalDevice},
		{"logical device", a.createLogicalDevice},
		{"swapchain", a.createSwapchain},
		{"image views", a.createImageViews},
		{"render pass", a.createRenderPass},
		{"graphics pipeline", a.createGraphicsPipeline},
		{"framebuffers", a.createFramebuffers},
	}
	for _, stage := range stages {
		if err := stage.fn(); err != nil {
			return errors.WithMessage(err, stage.name)
		}
	}
	return nil
}

// loadFunctionTable points the Vulkan bindings at the loader GLFW found
// and resolves the global commands needed to create an instance.
func (a *App) loadFunctionTable() error {
	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		return errors.WithStack(&InitError{Err: err})
	}
	return nil
}

// Run polls window events until the window is closed. It must be called
// from the thread that created the window, see runtime.LockOSThread.
func (a *App) Run() {
	for !a.window.ShouldClose() {
		glfw.PollEvents()
	}
}

// Destroy waits for the device to go idle and releases every resource in
// reverse creation order. It is safe to call more than once.
func (a *App) Destroy() {
	if a.device != nil {
		vk.DeviceWaitIdle(a.device)
	}
	a.cleanups.run()
}

// Window returns the GLFW window backing the swapchain surface.
func (a *App) Window() *glfw.Window {
	return a.window
}

// Instance returns the Vulkan instance.
func (a *App) Instance() vk.Instance {
	return a.instance
}

// PhysicalDevice returns the selected GPU.
func (a *App) PhysicalDevice() vk.PhysicalDevice {
	return a.gpu
}

// Device returns the logical device.
func (a *App) Device() vk.Device {
	return a.device
}

// Surface returns the window surface.
func (a *App) Surface() vk.Surface {
	return a.surface
}

// GraphicsQueue returns the queue used for graphics submissions.
func (a *App) GraphicsQueue() vk.Queue {
	return a.graphicsQueue
}

// PresentQueue returns the queue used for presentation. It equals
// GraphicsQueue when one family supports both.
func (a *App) PresentQueue() vk.Queue {
	return a.presentQueue
}

// HasSeparatePresentQueue is true when presentation runs on a different
// queue family than graphics.
func (a *App) HasSeparatePresentQueue() bool {
	return a.indices.Graphics.Get() != a.indices.Present.Get()
}

// DeviceName returns the driver-reported name of the selected GPU.
func (a *App) DeviceName() string {
	return a.gpuInfo.Name
}

// SurfaceFormat returns the swapchain surface format.
func (a *App) SurfaceFormat() vk.SurfaceFormat {
	return a.format
}

// Extent returns the swapchain image size in pixels.
func (a *App) Extent() vk.Extent2D {
	return a.extent
}

// RenderPass returns the single color render pass.
func (a *App) RenderPass() vk.RenderPass {
	return a.renderPass
}

// Pipeline returns the fixed graphics pipeline.
func (a *App) Pipeline() vk.Pipeline {
	return a.pipeline
}

// Framebuffers returns one framebuffer per swapchain image.
func (a *App) Framebuffers() []vk.Framebuffer {
	return a.framebuffers
}
