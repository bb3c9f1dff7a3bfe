package vkboot

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// SurfaceCaps is a plain-Go snapshot of the surface capability fields the
// swapchain setup depends on.
type SurfaceCaps struct {
	MinImageCount    uint32
	MaxImageCount    uint32
	CurrentExtent    vk.Extent2D
	MinImageExtent   vk.Extent2D
	MaxImageExtent   vk.Extent2D
	CurrentTransform vk.SurfaceTransformFlagBits
}

// SurfaceSupport describes what a device can do with a surface. It is
// gathered once per candidate device and drives both suitability scoring
// and the swapchain parameter choices.
type SurfaceSupport struct {
	Capabilities SurfaceCaps
	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

func gatherSurfaceSupport(gpu vk.PhysicalDevice, surface vk.Surface) (SurfaceSupport, error) {
	var support SurfaceSupport

	var caps vk.SurfaceCapabilities
	ret := vk.GetPhysicalDeviceSurfaceCapabilities(gpu, surface, &caps)
	if err := setupError("query surface capabilities", ret); err != nil {
		return support, err
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	support.Capabilities = SurfaceCaps{
		MinImageCount:    caps.MinImageCount,
		MaxImageCount:    caps.MaxImageCount,
		CurrentExtent:    caps.CurrentExtent,
		MinImageExtent:   caps.MinImageExtent,
		MaxImageExtent:   caps.MaxImageExtent,
		CurrentTransform: caps.CurrentTransform,
	}

	var formatCount uint32
	ret = vk.GetPhysicalDeviceSurfaceFormats(gpu, surface, &formatCount, nil)
	if err := setupError("count surface formats", ret); err != nil {
		return support, err
	}
	if formatCount > 0 {
		formats := make([]vk.SurfaceFormat, formatCount)
		ret = vk.GetPhysicalDeviceSurfaceFormats(gpu, surface, &formatCount, formats)
		if err := setupError("query surface formats", ret); err != nil {
			return support, err
		}
		for i := range formats {
			formats[i].Deref()
		}
		support.Formats = formats
	}

	var modeCount uint32
	ret = vk.GetPhysicalDeviceSurfacePresentModes(gpu, surface, &modeCount, nil)
	if err := setupError("count present modes", ret); err != nil {
		return support, err
	}
	if modeCount > 0 {
		modes := make([]vk.PresentMode, modeCount)
		ret = vk.GetPhysicalDeviceSurfacePresentModes(gpu, surface, &modeCount, modes)
		if err := setupError("query present modes", ret); err != nil {
			return support, err
		}
		support.PresentModes = modes
	}

	return support, nil
}

// chooseSurfaceFormat prefers 8-bit sRGB BGRA and otherwise takes the
// first format the surface offers.
func chooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	for _, format := range formats {
		if format.Format == vk.FormatB8g8r8a8Srgb && format.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return format
		}
	}
	return formats[0]
}

// choosePresentMode prefers mailbox and falls back to FIFO, the one mode
// every implementation must support.
func choosePresentMode(modes []vk.PresentMode) vk.PresentMode {
	for _, mode := range modes {
		if mode == vk.PresentModeMailbox {
			return mode
		}
	}
	return vk.PresentModeFifo
}

// chooseExtent returns the surface's current extent unless the window
// system leaves it undefined, in which case the framebuffer size is
// clamped into the supported range.
func chooseExtent(caps SurfaceCaps, framebufferWidth, framebufferHeight uint32) vk.Extent2D {
	if caps.CurrentExtent.Width != vk.MaxUint32 {
		return caps.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clamp(framebufferWidth, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(framebufferHeight, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// chooseImageCount requests one image over the minimum so the driver is
// less likely to make us wait, respecting the maximum when one is set.
func chooseImageCount(caps SurfaceCaps) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

// sharingPolicy returns the image sharing mode and the queue families that
// need concurrent access. When one family handles both graphics and present
// the images stay exclusive and no family list is needed.
func sharingPolicy(graphicsFamily, presentFamily uint32) (vk.SharingMode, []uint32) {
	if graphicsFamily == presentFamily {
		return vk.SharingModeExclusive, nil
	}
	return vk.SharingModeConcurrent, []uint32{graphicsFamily, presentFamily}
}

func (a *App) createSwapchain() error {
	support, err := gatherSurfaceSupport(a.gpu, a.surface)
	if err != nil {
		return err
	}

	format := chooseSurfaceFormat(support.Formats)
	mode := choosePresentMode(support.PresentModes)
	fbWidth, fbHeight := a.window.GetFramebufferSize()
	extent := chooseExtent(support.Capabilities, uint32(fbWidth), uint32(fbHeight))
	imageCount := chooseImageCount(support.Capabilities)
	sharing, families := sharingPolicy(a.indices.Graphics.Get(), a.indices.Present.Get())

	createInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          a.surface,
		MinImageCount:    imageCount,
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode: sharing,
		PreTransform:     support.Capabilities.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      mode,
		Clipped:          vk.True,
		OldSwapchain:     vk.NullSwapchain,
	}
	if sharing == vk.SharingModeConcurrent {
		createInfo.QueueFamilyIndexCount = uint32(len(families))
		createInfo.PQueueFamilyIndices = families
	}

	var swapchain vk.Swapchain
	ret := vk.CreateSwapchain(a.device, &createInfo, nil, &swapchain)
	if err := setupError("create swapchain", ret); err != nil {
		return err
	}
	a.swapchain = swapchain
	a.format = format
	a.extent = extent
	a.cleanups.push("swapchain", func() {
		vk.DestroySwapchain(a.device, swapchain, nil)
	})

	var count uint32
	ret = vk.GetSwapchainImages(a.device, a.swapchain, &count, nil)
	if err := setupError("count swapchain images", ret); err != nil {
		return err
	}
	images := make([]vk.Image, count)
	ret = vk.GetSwapchainImages(a.device, a.swapchain, &count, images)
	if err := setupError("get swapchain images", ret); err != nil {
		return err
	}
	a.images = images

	Logger().Debug("swapchain created",
		"images", len(a.images),
		"format", format.Format,
		"present_mode", mode,
		"width", extent.Width,
		"height", extent.Height,
		"concurrent", sharing == vk.SharingModeConcurrent,
	)
	return nil
}

func (a *App) createImageViews() error {
	a.views = make([]vk.ImageView, 0, len(a.images))
	for i, image := range a.images {
		createInfo := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    image,
			ViewType: vk.ImageViewType2d,
			Format:   a.format.Format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		}
		var view vk.ImageView
		ret := vk.CreateImageView(a.device, &createInfo, nil, &view)
		if err := setupError(fmt.Sprintf("create image view %d", i), ret); err != nil {
			return err
		}
		a.views = append(a.views, view)
		a.cleanups.push("image view", func() {
			vk.DestroyImageView(a.device, view, nil)
		})
	}
	return nil
}
