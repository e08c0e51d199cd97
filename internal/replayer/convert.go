package replayer

import (
	"fmt"

	"github.com/gpucache/pipecache/internal/resource"
)

func parseHash(s string) (resource.Hash, error) {
	h, err := resource.ParseHash(s)
	if err != nil {
		return 0, fmt.Errorf("malformed hash %q: %w", s, err)
	}
	return h, nil
}

func extensionsFromWire(chain []wireExtension) ([]resource.ExtensionRecord, error) {
	if len(chain) == 0 {
		return nil, nil
	}
	out := make([]resource.ExtensionRecord, 0, len(chain))
	for _, w := range chain {
		switch resource.StructureType(w.Type) {
		case resource.StructureTypeSamplerYcbcrConversionInfo:
			if w.Ycbcr == nil {
				return nil, fmt.Errorf("extension type %d missing ycbcrConversion payload", w.Type)
			}
			out = append(out, resource.SamplerYcbcrConversion{
				Format:                      w.Ycbcr.Format,
				YcbcrModel:                  w.Ycbcr.YcbcrModel,
				YcbcrRange:                  w.Ycbcr.YcbcrRange,
				ChromaFilter:                w.Ycbcr.ChromaFilter,
				ForceExplicitReconstruction: w.Ycbcr.ForceExplicitReconstruction,
			})
		case resource.StructureTypeSamplerReductionModeInfo:
			if w.ReductionMode == nil {
				return nil, fmt.Errorf("extension type %d missing reductionMode payload", w.Type)
			}
			out = append(out, resource.SamplerReductionMode{ReductionMode: *w.ReductionMode})
		case resource.StructureTypeRenderPassMultiviewInfo:
			if w.Multiview == nil {
				return nil, fmt.Errorf("extension type %d missing multiview payload", w.Type)
			}
			out = append(out, resource.RenderPassMultiview{
				ViewMasks:        w.Multiview.ViewMasks,
				ViewOffsets:      w.Multiview.ViewOffsets,
				CorrelationMasks: w.Multiview.CorrelationMasks,
			})
		default:
			out = append(out, resource.UnknownExtension{Tag: resource.StructureType(w.Type)})
		}
	}
	return out, nil
}

func samplerFromWire(w wireSampler) (resource.Sampler, resource.Hash, error) {
	hash, err := parseHash(w.Hash)
	if err != nil {
		return resource.Sampler{}, 0, err
	}
	chain, err := extensionsFromWire(w.Chain)
	if err != nil {
		return resource.Sampler{}, 0, err
	}
	return resource.Sampler{
		MagFilter:               w.MagFilter,
		MinFilter:               w.MinFilter,
		MipmapMode:              w.MipmapMode,
		AddressModeU:            w.AddressModeU,
		AddressModeV:            w.AddressModeV,
		AddressModeW:            w.AddressModeW,
		MipLodBias:              w.MipLodBias,
		AnisotropyEnable:        w.AnisotropyEnable,
		MaxAnisotropy:           w.MaxAnisotropy,
		CompareEnable:           w.CompareEnable,
		CompareOp:               w.CompareOp,
		MinLod:                  w.MinLod,
		MaxLod:                  w.MaxLod,
		BorderColor:             w.BorderColor,
		UnnormalizedCoordinates: w.UnnormalizedCoordinates,
		Chain:                   chain,
	}, hash, nil
}

func dslFromWire(w wireDescriptorSetLayout) (resource.DescriptorSetLayout, resource.Hash, error) {
	hash, err := parseHash(w.Hash)
	if err != nil {
		return resource.DescriptorSetLayout{}, 0, err
	}
	bindings := make([]resource.DescriptorSetLayoutBinding, len(w.Bindings))
	for i, b := range w.Bindings {
		rb := resource.DescriptorSetLayoutBinding{
			Binding:         b.Binding,
			DescriptorType:  b.DescriptorType,
			DescriptorCount: b.DescriptorCount,
			StageFlags:      b.StageFlags,
		}
		for _, s := range b.ImmutableSamplers {
			h, err := parseHash(s)
			if err != nil {
				return resource.DescriptorSetLayout{}, 0, err
			}
			rb.ImmutableSamplers = append(rb.ImmutableSamplers, resource.Handle(h))
		}
		bindings[i] = rb
	}
	return resource.DescriptorSetLayout{Flags: w.Flags, Bindings: bindings}, hash, nil
}

func pipelineLayoutFromWire(w wirePipelineLayout) (resource.PipelineLayout, resource.Hash, error) {
	hash, err := parseHash(w.Hash)
	if err != nil {
		return resource.PipelineLayout{}, 0, err
	}
	p := resource.PipelineLayout{}
	for _, s := range w.SetLayouts {
		h, err := parseHash(s)
		if err != nil {
			return resource.PipelineLayout{}, 0, err
		}
		p.SetLayouts = append(p.SetLayouts, resource.Handle(h))
	}
	for _, pc := range w.PushConstantRanges {
		p.PushConstantRanges = append(p.PushConstantRanges, resource.PushConstantRange{
			StageFlags: pc.StageFlags, Offset: pc.Offset, Size: pc.Size,
		})
	}
	return p, hash, nil
}

func shaderModuleFromWire(w wireShaderModule) (resource.ShaderModule, resource.Hash, error) {
	hash, err := parseHash(w.Hash)
	if err != nil {
		return resource.ShaderModule{}, 0, err
	}
	return resource.ShaderModule{Code: w.Code}, hash, nil
}

func attachmentRefFromWire(r wireAttachmentReference) resource.AttachmentReference {
	return resource.AttachmentReference{Attachment: r.Attachment, Layout: r.Layout}
}

func renderPassFromWire(w wireRenderPass) (resource.RenderPass, resource.Hash, error) {
	hash, err := parseHash(w.Hash)
	if err != nil {
		return resource.RenderPass{}, 0, err
	}
	chain, err := extensionsFromWire(w.Chain)
	if err != nil {
		return resource.RenderPass{}, 0, err
	}
	rp := resource.RenderPass{Chain: chain}
	for _, a := range w.Attachments {
		rp.Attachments = append(rp.Attachments, resource.AttachmentDescription{
			Format: a.Format, Samples: a.Samples, LoadOp: a.LoadOp, StoreOp: a.StoreOp,
			StencilLoadOp: a.StencilLoadOp, StencilStoreOp: a.StencilStoreOp,
			InitialLayout: a.InitialLayout, FinalLayout: a.FinalLayout,
		})
	}
	for _, sp := range w.Subpasses {
		rsp := resource.SubpassDescription{PipelineBindPoint: sp.PipelineBindPoint}
		for _, ref := range sp.InputAttachments {
			rsp.InputAttachments = append(rsp.InputAttachments, attachmentRefFromWire(ref))
		}
		for _, ref := range sp.ColorAttachments {
			rsp.ColorAttachments = append(rsp.ColorAttachments, attachmentRefFromWire(ref))
		}
		for _, ref := range sp.ResolveAttachments {
			rsp.ResolveAttachments = append(rsp.ResolveAttachments, attachmentRefFromWire(ref))
		}
		if sp.DepthStencilAttachment != nil {
			ref := attachmentRefFromWire(*sp.DepthStencilAttachment)
			rsp.DepthStencilAttachment = &ref
		}
		rsp.PreserveAttachments = sp.PreserveAttachments
		rp.Subpasses = append(rp.Subpasses, rsp)
	}
	for _, dep := range w.Dependencies {
		rp.Dependencies = append(rp.Dependencies, resource.SubpassDependency{
			SrcSubpass: dep.SrcSubpass, DstSubpass: dep.DstSubpass,
			SrcStageMask: dep.SrcStageMask, DstStageMask: dep.DstStageMask,
			SrcAccessMask: dep.SrcAccessMask, DstAccessMask: dep.DstAccessMask,
			DependencyFlags: dep.DependencyFlags,
		})
	}
	return rp, hash, nil
}

func shaderStageFromWire(w wirePipelineShaderStage) (resource.PipelineShaderStage, error) {
	moduleHash, err := parseHash(w.Module)
	if err != nil {
		return resource.PipelineShaderStage{}, err
	}
	s := resource.PipelineShaderStage{
		Stage:              w.Stage,
		Module:             resource.Handle(moduleHash),
		EntryPoint:         w.EntryPoint,
		SpecializationData: w.SpecializationData,
	}
	for _, e := range w.SpecializationEntries {
		s.SpecializationEntries = append(s.SpecializationEntries, resource.SpecializationMapEntry{
			ConstantID: e.ConstantID, Offset: e.Offset, Size: e.Size,
		})
	}
	return s, nil
}

func computePipelineFromWire(w wireComputePipeline) (resource.ComputePipeline, resource.Hash, error) {
	hash, err := parseHash(w.Hash)
	if err != nil {
		return resource.ComputePipeline{}, 0, err
	}
	layoutHash, err := parseHash(w.Layout)
	if err != nil {
		return resource.ComputePipeline{}, 0, err
	}
	stage, err := shaderStageFromWire(w.Stage)
	if err != nil {
		return resource.ComputePipeline{}, 0, err
	}
	return resource.ComputePipeline{
		Flags:  w.Flags,
		Layout: resource.Handle(layoutHash),
		Stage:  stage,
	}, hash, nil
}

func graphicsStateFromWire(w wireGraphicsPipelineState) resource.GraphicsPipelineState {
	s := resource.GraphicsPipelineState{
		PrimitiveTopology:       w.PrimitiveTopology,
		PrimitiveRestartEnable:  w.PrimitiveRestartEnable,
		RasterizationDiscard:    w.RasterizationDiscard,
		PolygonMode:             w.PolygonMode,
		CullMode:                w.CullMode,
		FrontFace:               w.FrontFace,
		DepthBiasEnable:         w.DepthBiasEnable,
		DepthBiasConstantFactor: w.DepthBiasConstantFactor,
		DepthBiasClamp:          w.DepthBiasClamp,
		DepthBiasSlopeFactor:    w.DepthBiasSlopeFactor,
		LineWidth:               w.LineWidth,
		RasterizationSamples:    w.RasterizationSamples,
		SampleShadingEnable:     w.SampleShadingEnable,
		MinSampleShading:        w.MinSampleShading,
		AlphaToCoverageEnable:   w.AlphaToCoverageEnable,
		AlphaToOneEnable:        w.AlphaToOneEnable,
		DepthTestEnable:         w.DepthTestEnable,
		DepthWriteEnable:        w.DepthWriteEnable,
		DepthCompareOp:          w.DepthCompareOp,
		DepthBoundsTestEnable:   w.DepthBoundsTestEnable,
		MinDepthBounds:          w.MinDepthBounds,
		MaxDepthBounds:          w.MaxDepthBounds,
		StencilTestEnable:       w.StencilTestEnable,
		LogicOpEnable:           w.LogicOpEnable,
		LogicOp:                 w.LogicOp,
		BlendConstants:          w.BlendConstants,
		DynamicStates:           w.DynamicStates,
	}
	for _, vb := range w.VertexBindings {
		s.VertexBindings = append(s.VertexBindings, resource.VertexInputBinding{
			Binding: vb.Binding, Stride: vb.Stride, InputRate: vb.InputRate,
		})
	}
	for _, va := range w.VertexAttributes {
		s.VertexAttributes = append(s.VertexAttributes, resource.VertexInputAttribute{
			Location: va.Location, Binding: va.Binding, Format: va.Format, Offset: va.Offset,
		})
	}
	for _, a := range w.ColorBlendAttachments {
		s.ColorBlendAttachments = append(s.ColorBlendAttachments, resource.ColorBlendAttachment{
			BlendEnable: a.BlendEnable, SrcColorBlendFactor: a.SrcColorBlendFactor,
			DstColorBlendFactor: a.DstColorBlendFactor, ColorBlendOp: a.ColorBlendOp,
			SrcAlphaBlendFactor: a.SrcAlphaBlendFactor, DstAlphaBlendFactor: a.DstAlphaBlendFactor,
			AlphaBlendOp: a.AlphaBlendOp, ColorWriteMask: a.ColorWriteMask,
		})
	}
	return s
}

func graphicsPipelineFromWire(w wireGraphicsPipeline) (resource.GraphicsPipeline, resource.Hash, error) {
	hash, err := parseHash(w.Hash)
	if err != nil {
		return resource.GraphicsPipeline{}, 0, err
	}
	layoutHash, err := parseHash(w.Layout)
	if err != nil {
		return resource.GraphicsPipeline{}, 0, err
	}
	rpHash, err := parseHash(w.RenderPass)
	if err != nil {
		return resource.GraphicsPipeline{}, 0, err
	}
	p := resource.GraphicsPipeline{
		Flags:      w.Flags,
		Layout:     resource.Handle(layoutHash),
		RenderPass: resource.Handle(rpHash),
		Subpass:    w.Subpass,
		State:      graphicsStateFromWire(w.State),
	}
	for _, st := range w.Stages {
		stage, err := shaderStageFromWire(st)
		if err != nil {
			return resource.GraphicsPipeline{}, 0, err
		}
		p.Stages = append(p.Stages, stage)
	}
	if w.BasePipeline != "" {
		baseHash, err := parseHash(w.BasePipeline)
		if err != nil {
			return resource.GraphicsPipeline{}, 0, err
		}
		p.BasePipeline = resource.Handle(baseHash)
	}
	return p, hash, nil
}

func applicationInfoFromWire(w wireApplicationInfo) (resource.ApplicationInfo, resource.Hash, error) {
	hash, err := parseHash(w.Hash)
	if err != nil {
		return resource.ApplicationInfo{}, 0, err
	}
	return resource.ApplicationInfo{
		ApplicationName:    w.ApplicationName,
		ApplicationVersion: w.ApplicationVersion,
		EngineName:         w.EngineName,
		EngineVersion:      w.EngineVersion,
		APIVersion:         w.APIVersion,
	}, hash, nil
}

func physicalDeviceFeaturesFromWire(w wirePhysicalDeviceFeatures) (resource.PhysicalDeviceFeatures, resource.Hash, error) {
	hash, err := parseHash(w.Hash)
	if err != nil {
		return resource.PhysicalDeviceFeatures{}, 0, err
	}
	var d resource.PhysicalDeviceFeatures
	copy(d.Features[:], w.Features)
	return d, hash, nil
}
