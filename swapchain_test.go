package vkboot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestChooseSurfaceFormatPrefersSrgb(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}

	chosen := chooseSurfaceFormat(formats)
	assert.Equal(t, vk.FormatB8g8r8a8Srgb, chosen.Format)
	assert.Equal(t, vk.ColorSpaceSrgbNonlinear, chosen.ColorSpace)
}

func TestChooseSurfaceFormatFallsBackToFirst(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}

	chosen := chooseSurfaceFormat(formats)
	assert.Equal(t, vk.FormatR8g8b8a8Unorm, chosen.Format)
}

func TestChooseSurfaceFormatRequiresMatchingColorSpace(t *testing.T) {
	// The right pixel format in the wrong color space falls through to
	// the first-entry fallback rather than matching.
	otherSpace := vk.ColorSpace(vk.ColorSpaceSrgbNonlinear + 1)
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: otherSpace},
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: otherSpace},
	}

	chosen := chooseSurfaceFormat(formats)
	assert.Equal(t, vk.FormatB8g8r8a8Unorm, chosen.Format)
}

func TestChoosePresentModePrefersMailbox(t *testing.T) {
	modes := []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox, vk.PresentModeImmediate}
	assert.Equal(t, vk.PresentModeMailbox, choosePresentMode(modes))
}

func TestChoosePresentModeFallsBackToFifo(t *testing.T) {
	modes := []vk.PresentMode{vk.PresentModeImmediate}
	assert.Equal(t, vk.PresentModeFifo, choosePresentMode(modes),
		"FIFO is always supported even when not enumerated first")
}

func TestChooseExtentUsesCurrentWhenDefined(t *testing.T) {
	caps := SurfaceCaps{
		CurrentExtent:  vk.Extent2D{Width: 1024, Height: 768},
		MinImageExtent: vk.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: vk.Extent2D{Width: 4096, Height: 4096},
	}

	extent := chooseExtent(caps, 800, 600)
	assert.Equal(t, vk.Extent2D{Width: 1024, Height: 768}, extent)
}

func TestChooseExtentClampsWhenUndefined(t *testing.T) {
	caps := SurfaceCaps{
		CurrentExtent:  vk.Extent2D{Width: vk.MaxUint32, Height: 600},
		MinImageExtent: vk.Extent2D{Width: 320, Height: 240},
		MaxImageExtent: vk.Extent2D{Width: 1920, Height: 1080},
	}

	assert.Equal(t, vk.Extent2D{Width: 800, Height: 600}, chooseExtent(caps, 800, 600))
	assert.Equal(t, vk.Extent2D{Width: 320, Height: 240}, chooseExtent(caps, 100, 100),
		"requested size below minimum clamps up")
	assert.Equal(t, vk.Extent2D{Width: 1920, Height: 1080}, chooseExtent(caps, 3840, 2160),
		"requested size above maximum clamps down")
}

func TestChooseImageCount(t *testing.T) {
	assert.Equal(t, uint32(3), chooseImageCount(SurfaceCaps{MinImageCount: 2, MaxImageCount: 8}))
	assert.Equal(t, uint32(3), chooseImageCount(SurfaceCaps{MinImageCount: 2, MaxImageCount: 3}))
	assert.Equal(t, uint32(2), chooseImageCount(SurfaceCaps{MinImageCount: 2, MaxImageCount: 2}),
		"max caps the one-over-minimum request")
	assert.Equal(t, uint32(4), chooseImageCount(SurfaceCaps{MinImageCount: 3, MaxImageCount: 0}),
		"zero max means unbounded")
}

func TestSharingPolicy(t *testing.T) {
	sharing, families := sharingPolicy(0, 0)
	assert.Equal(t, vk.SharingModeExclusive, sharing)
	assert.Nil(t, families)

	sharing, families = sharingPolicy(0, 2)
	assert.Equal(t, vk.SharingModeConcurrent, sharing)
	assert.Equal(t, []uint32{0, 2}, families)
}
