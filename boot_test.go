package vkboot

import (
	"os"
	"runtime"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// TestBootstrapAgainstRealDriver runs the full setup sequence against the
// real loader and GPU when the environment has them, and skips otherwise.
// The pure selection logic is covered by the unit tests; this verifies the
// driver-facing plumbing end to end.
func TestBootstrapAgainstRealDriver(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping driver-backed bootstrap in short mode")
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// Probe the environment before handing the whole lifecycle to New.
	if err := glfw.Init(); err != nil {
		t.Skipf("glfw unavailable: %v", err)
	}
	supported := glfw.VulkanSupported()
	glfw.Terminate()
	if !supported {
		t.Skip("glfw reports no vulkan loader")
	}

	cfg := DefaultConfig()
	cfg.Title = "vkboot bootstrap test"
	cfg.Width = 320
	cfg.Height = 240

	if _, err := os.Stat(cfg.VertexShaderPath); err != nil {
		t.Skipf("compiled shaders missing, run go generate: %v", err)
	}

	app, err := New(cfg)
	if err != nil {
		if errors.Is(err, ErrNoGPU) || errors.Is(err, ErrNoSuitableGPU) {
			t.Skipf("no usable GPU: %v", err)
		}
		var initErr *InitError
		if errors.As(err, &initErr) {
			t.Skipf("vulkan loader not functional: %v", err)
		}
		t.Fatalf("bootstrap failed: %+v", err)
	}
	defer app.Destroy()

	if app.Device() == nil {
		t.Error("no logical device after successful bootstrap")
	}
	if app.GraphicsQueue() == nil || app.PresentQueue() == nil {
		t.Error("queue handles missing after successful bootstrap")
	}
	if !app.indices.IsComplete() {
		t.Error("queue indices incomplete after device selection")
	}
	if app.SurfaceFormat().Format == vk.FormatUndefined {
		t.Error("surface format left undefined")
	}
	if ext := app.Extent(); ext.Width == 0 || ext.Height == 0 {
		t.Errorf("degenerate swapchain extent %dx%d", ext.Width, ext.Height)
	}
	if len(app.Framebuffers()) == 0 {
		t.Error("no framebuffers created")
	}
	if got, want := len(app.Framebuffers()), len(app.views); got != want {
		t.Errorf("framebuffer count %d does not match image view count %d", got, want)
	}

	// A few event-loop iterations, then tear down twice to confirm the
	// second run is a no-op.
	for i := 0; i < 10; i++ {
		glfw.PollEvents()
	}
	app.Destroy()
	app.Destroy()
}
