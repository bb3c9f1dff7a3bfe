package vkboot

import (
	vk "github.com/vulkan-go/vulkan"
)

// createRenderPass builds a single-subpass render pass with one color
// attachment matching the swapchain format. The attachment is cleared on
// load and transitioned to the present layout at the end of the pass.
func (a *App) createRenderPass() error {
	colorAttachment := vk.AttachmentDescription{
		Format:         a.format.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}

	colorRef := vk.AttachmentReference{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    []vk.AttachmentReference{colorRef},
	}

	// Hold the implicit transition until the color output stage so the
	// image is not touched before it is ready.
	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
	}

	var renderPass vk.RenderPass
	ret := vk.CreateRenderPass(a.device, &vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.AttachmentDescription{colorAttachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}, nil, &renderPass)
	if err := setupError("create render pass", ret); err != nil {
		return err
	}
	a.renderPass = renderPass
	a.cleanups.push("render pass", func() {
		vk.DestroyRenderPass(a.device, renderPass, nil)
	})
	return nil
}

// createFramebuffers wraps each swapchain image view in a framebuffer
// bound to the render pass, sized to the swapchain extent.
func (a *App) createFramebuffers() error {
	a.framebuffers = make([]vk.Framebuffer, 0, len(a.views))
	for _, view := range a.views {
		createInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      a.renderPass,
			AttachmentCount: 1,
			PAttachments:    []vk.ImageView{view},
			Width:           a.extent.Width,
			Height:          a.extent.Height,
			Layers:          1,
		}
		var framebuffer vk.Framebuffer
		ret := vk.CreateFramebuffer(a.device, &createInfo, nil, &framebuffer)
		if err := setupError("create framebuffer", ret); err != nil {
			return err
		}
		a.framebuffers = append(a.framebuffers, framebuffer)
		a.cleanups.push("framebuffer", func() {
			vk.DestroyFramebuffer(a.device, framebuffer, nil)
		})
	}
	Logger().Debug("framebuffers created", "count", len(a.framebuffers))
	return nil
}
