package vkboot

//go:generate glslc shaders/shader.vert -o shaders/vert.spv
//go:generate glslc shaders/shader.frag -o shaders/frag.spv

import (
	"os"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// loadShaderCode reads a compiled SPIR-V binary from disk. SPIR-V words
// are 32 bits wide, so anything not a multiple of four bytes is rejected
// before the driver sees it.
func loadShaderCode(path string) ([]byte, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read shader %s", path)
	}
	if len(code) == 0 || len(code)%4 != 0 {
		return nil, errors.Errorf("shader %s is not valid SPIR-V: %d bytes", path, len(code))
	}
	return code, nil
}

func createShaderModule(device vk.Device, code []byte) (vk.ShaderModule, error) {
	var module vk.ShaderModule
	ret := vk.CreateShaderModule(device, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    sliceUint32(code),
	}, nil, &module)
	if err := setupError("create shader module", ret); err != nil {
		return vk.NullShaderModule, err
	}
	return module, nil
}

// createGraphicsPipeline builds the fixed triangle pipeline: no vertex
// input, a viewport matching the swapchain extent, fill rasterization and
// blending off. The shader modules only feed pipeline creation, so they
// are destroyed again before returning no matter the outcome.
func (a *App) createGraphicsPipeline() error {
	vertCode, err := loadShaderCode(a.cfg.VertexShaderPath)
	if err != nil {
		return err
	}
	fragCode, err := loadShaderCode(a.cfg.FragmentShaderPath)
	if err != nil {
		return err
	}

	vertModule, err := createShaderModule(a.device, vertCode)
	if err != nil {
		return err
	}
	defer vk.DestroyShaderModule(a.device, vertModule, nil)

	fragModule, err := createShaderModule(a.device, fragCode)
	if err != nil {
		return err
	}
	defer vk.DestroyShaderModule(a.device, fragModule, nil)

	stages := []vk.PipelineShaderStageCreateInfo{
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageVertexBit,
			Module: vertModule,
			PName:  safeString("main"),
		},
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFragmentBit,
			Module: fragModule,
			PName:  safeString("main"),
		},
	}

	// The triangle is generated in the vertex shader, no buffers bound.
	vertexInput := vk.PipelineVertexInputStateCreateInfo{
		SType: vk.StructureTypePipelineVertexInputStateCreateInfo,
	}

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               vk.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: vk.False,
	}

	viewport := vk.Viewport{
		X:        0,
		Y:        0,
		Width:    float32(a.extent.Width),
		Height:   float32(a.extent.Height),
		MinDepth: 0,
		MaxDepth: 1,
	}
	scissor := vk.Rect2D{
		Offset: vk.Offset2D{},
		Extent: a.extent,
	}
	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		PViewports:    []vk.Viewport{viewport},
		ScissorCount:  1,
		PScissors:     []vk.Rect2D{scissor},
	}

	rasterizer := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             vk.PolygonModeFill,
		CullMode:                vk.CullModeFlags(vk.CullModeBackBit),
		FrontFace:               vk.FrontFaceClockwise,
		DepthBiasEnable:         vk.False,
		LineWidth:               1.0,
	}

	multisampling := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		SampleShadingEnable:  vk.False,
		RasterizationSamples: vk.SampleCount1Bit,
		MinSampleShading:     1.0,
	}

	blendAttachment := vk.PipelineColorBlendAttachmentState{
		ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit |
			vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
		BlendEnable: vk.False,
	}
	blendState := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{blendAttachment},
	}

	var layout vk.PipelineLayout
	ret := vk.CreatePipelineLayout(a.device, &vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
	}, nil, &layout)
	if err := setupError("create pipeline layout", ret); err != nil {
		return err
	}
	a.pipelineLayout = layout
	a.cleanups.push("pipeline layout", func() {
		vk.DestroyPipelineLayout(a.device, layout, nil)
	})

	pipelineInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PStages:             stages,
		PVertexInputState:   &vertexInput,
		PInputAssemblyState: &inputAssembly,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterizer,
		PMultisampleState:   &multisampling,
		PColorBlendState:    &blendState,
		Layout:              layout,
		RenderPass:          a.renderPass,
		Subpass:             0,
	}

	pipelines := make([]vk.Pipeline, 1)
	ret = vk.CreateGraphicsPipelines(a.device, nil, 1, []vk.GraphicsPipelineCreateInfo{pipelineInfo}, nil, pipelines)
	if err := setupError("create graphics pipeline", ret); err != nil {
		return err
	}
	a.pipeline = pipelines[0]
	a.cleanups.push("graphics pipeline", func() {
		vk.DestroyPipeline(a.device, pipelines[0], nil)
	})

	Logger().Debug("graphics pipeline created",
		"vertex_shader", a.cfg.VertexShaderPath,
		"fragment_shader", a.cfg.FragmentShaderPath,
	)
	return nil
}
