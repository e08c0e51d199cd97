package recorder

import "github.com/gpucache/pipecache/internal/resource"

// schemaVersion is the top-level version tag of the serialized document
// (§6 "a top-level object keyed by a schema version tag").
const schemaVersion = 1

// Wire types mirror internal/resource's descriptors field-for-field, with
// Hash/Handle rendered as decimal strings (§6) and byte blobs left as
// []byte: encoding/json already base64-encodes []byte fields, giving the
// spec's "byte blobs are base64-encoded" for free without a hand-rolled
// encoder.
// json.Marshal emits struct fields in declaration order, which is what
// keeps Serialize byte-identical across runs for the same intern state
// without needing RFC 8785-style canonical-map machinery.

type wireDoc struct {
	Version                int                          `json:"version"`
	Samplers               []wireSampler                `json:"samplers,omitempty"`
	DescriptorSetLayouts   []wireDescriptorSetLayout     `json:"descriptorSetLayouts,omitempty"`
	PipelineLayouts        []wirePipelineLayout          `json:"pipelineLayouts,omitempty"`
	ShaderModules          []wireShaderModule            `json:"shaderModules,omitempty"`
	RenderPasses           []wireRenderPass              `json:"renderPasses,omitempty"`
	ComputePipelines       []wireComputePipeline         `json:"computePipelines,omitempty"`
	GraphicsPipelines      []wireGraphicsPipeline        `json:"graphicsPipelines,omitempty"`
	ApplicationInfo        *wireApplicationInfo          `json:"applicationInfo,omitempty"`
	PhysicalDeviceFeatures *wirePhysicalDeviceFeatures   `json:"physicalDeviceFeatures,omitempty"`
}

type wireExtension struct {
	Type          uint32            `json:"type"`
	Ycbcr         *wireYcbcr        `json:"ycbcrConversion,omitempty"`
	ReductionMode *uint32           `json:"reductionMode,omitempty"`
	Multiview     *wireMultiview    `json:"multiview,omitempty"`
}

type wireYcbcr struct {
	Format                      uint32 `json:"format"`
	YcbcrModel                  uint32 `json:"ycbcrModel"`
	YcbcrRange                  uint32 `json:"ycbcrRange"`
	ChromaFilter                uint32 `json:"chromaFilter"`
	ForceExplicitReconstruction bool   `json:"forceExplicitReconstruction"`
}

type wireMultiview struct {
	ViewMasks        []uint32 `json:"viewMasks,omitempty"`
	ViewOffsets      []int32  `json:"viewOffsets,omitempty"`
	CorrelationMasks []uint32 `json:"correlationMasks,omitempty"`
}

func extensionsToWire(chain []resource.ExtensionRecord) []wireExtension {
	ordered := resource.OrderExtensionChain(chain)
	out := make([]wireExtension, 0, len(ordered))
	for _, ext := range ordered {
		w := wireExtension{Type: uint32(ext.StructureType())}
		switch e := ext.(type) {
		case resource.SamplerYcbcrConversion:
			w.Ycbcr = &wireYcbcr{
				Format:                      e.Format,
				YcbcrModel:                  e.YcbcrModel,
				YcbcrRange:                  e.YcbcrRange,
				ChromaFilter:                e.ChromaFilter,
				ForceExplicitReconstruction: e.ForceExplicitReconstruction,
			}
		case resource.SamplerReductionMode:
			mode := e.ReductionMode
			w.ReductionMode = &mode
		case resource.RenderPassMultiview:
			w.Multiview = &wireMultiview{
				ViewMasks:        e.ViewMasks,
				ViewOffsets:      e.ViewOffsets,
				CorrelationMasks: e.CorrelationMasks,
			}
		}
		out = append(out, w)
	}
	return out
}

type wireSampler struct {
	Hash                    string          `json:"hash"`
	MagFilter               uint32          `json:"magFilter"`
	MinFilter               uint32          `json:"minFilter"`
	MipmapMode              uint32          `json:"mipmapMode"`
	AddressModeU            uint32          `json:"addressModeU"`
	AddressModeV            uint32          `json:"addressModeV"`
	AddressModeW            uint32          `json:"addressModeW"`
	MipLodBias              float32         `json:"mipLodBias"`
	AnisotropyEnable        bool            `json:"anisotropyEnable"`
	MaxAnisotropy           float32         `json:"maxAnisotropy"`
	CompareEnable           bool            `json:"compareEnable"`
	CompareOp               uint32          `json:"compareOp"`
	MinLod                  float32         `json:"minLod"`
	MaxLod                  float32         `json:"maxLod"`
	BorderColor             uint32          `json:"borderColor"`
	UnnormalizedCoordinates bool            `json:"unnormalizedCoordinates"`
	Chain                   []wireExtension `json:"chain,omitempty"`
}

func samplerToWire(hash resource.Hash, s resource.Sampler) wireSampler {
	return wireSampler{
		Hash:                    hash.String(),
		MagFilter:               s.MagFilter,
		MinFilter:               s.MinFilter,
		MipmapMode:              s.MipmapMode,
		AddressModeU:            s.AddressModeU,
		AddressModeV:            s.AddressModeV,
		AddressModeW:            s.AddressModeW,
		MipLodBias:              s.MipLodBias,
		AnisotropyEnable:        s.AnisotropyEnable,
		MaxAnisotropy:           s.MaxAnisotropy,
		CompareEnable:           s.CompareEnable,
		CompareOp:               s.CompareOp,
		MinLod:                  s.MinLod,
		MaxLod:                  s.MaxLod,
		BorderColor:             s.BorderColor,
		UnnormalizedCoordinates: s.UnnormalizedCoordinates,
		Chain:                   extensionsToWire(s.Chain),
	}
}

type wireDescriptorSetLayoutBinding struct {
	Binding           uint32   `json:"binding"`
	DescriptorType    uint32   `json:"descriptorType"`
	DescriptorCount   uint32   `json:"descriptorCount"`
	StageFlags        uint32   `json:"stageFlags"`
	ImmutableSamplers []string `json:"immutableSamplers,omitempty"`
}

type wireDescriptorSetLayout struct {
	Hash     string                           `json:"hash"`
	Flags    uint32                           `json:"flags"`
	Bindings []wireDescriptorSetLayoutBinding `json:"bindings"`
}

func dslToWire(hash resource.Hash, d resource.DescriptorSetLayout) wireDescriptorSetLayout {
	bindings := make([]wireDescriptorSetLayoutBinding, len(d.Bindings))
	for i, b := range d.Bindings {
		wb := wireDescriptorSetLayoutBinding{
			Binding:         b.Binding,
			DescriptorType:  b.DescriptorType,
			DescriptorCount: b.DescriptorCount,
			StageFlags:      b.StageFlags,
		}
		for _, h := range b.ImmutableSamplers {
			wb.ImmutableSamplers = append(wb.ImmutableSamplers, resource.Hash(h).String())
		}
		bindings[i] = wb
	}
	return wireDescriptorSetLayout{Hash: hash.String(), Flags: d.Flags, Bindings: bindings}
}

type wirePushConstantRange struct {
	StageFlags uint32 `json:"stageFlags"`
	Offset     uint32 `json:"offset"`
	Size       uint32 `json:"size"`
}

type wirePipelineLayout struct {
	Hash               string                  `json:"hash"`
	SetLayouts         []string                `json:"setLayouts,omitempty"`
	PushConstantRanges []wirePushConstantRange `json:"pushConstantRanges,omitempty"`
}

func pipelineLayoutToWire(hash resource.Hash, p resource.PipelineLayout) wirePipelineLayout {
	w := wirePipelineLayout{Hash: hash.String()}
	for _, h := range p.SetLayouts {
		w.SetLayouts = append(w.SetLayouts, resource.Hash(h).String())
	}
	for _, pc := range p.PushConstantRanges {
		w.PushConstantRanges = append(w.PushConstantRanges, wirePushConstantRange{
			StageFlags: pc.StageFlags, Offset: pc.Offset, Size: pc.Size,
		})
	}
	return w
}

type wireShaderModule struct {
	Hash string `json:"hash"`
	Code []byte `json:"code"`
}

func shaderModuleToWire(hash resource.Hash, s resource.ShaderModule) wireShaderModule {
	return wireShaderModule{Hash: hash.String(), Code: s.Code}
}

type wireAttachmentDescription struct {
	Format         uint32 `json:"format"`
	Samples        uint32 `json:"samples"`
	LoadOp         uint32 `json:"loadOp"`
	StoreOp        uint32 `json:"storeOp"`
	StencilLoadOp  uint32 `json:"stencilLoadOp"`
	StencilStoreOp uint32 `json:"stencilStoreOp"`
	InitialLayout  uint32 `json:"initialLayout"`
	FinalLayout    uint32 `json:"finalLayout"`
}

type wireAttachmentReference struct {
	Attachment uint32 `json:"attachment"`
	Layout     uint32 `json:"layout"`
}

type wireSubpassDescription struct {
	PipelineBindPoint      uint32                    `json:"pipelineBindPoint"`
	InputAttachments       []wireAttachmentReference `json:"inputAttachments,omitempty"`
	ColorAttachments       []wireAttachmentReference `json:"colorAttachments,omitempty"`
	ResolveAttachments     []wireAttachmentReference `json:"resolveAttachments,omitempty"`
	DepthStencilAttachment *wireAttachmentReference  `json:"depthStencilAttachment,omitempty"`
	PreserveAttachments    []uint32                  `json:"preserveAttachments,omitempty"`
}

type wireSubpassDependency struct {
	SrcSubpass      uint32 `json:"srcSubpass"`
	DstSubpass      uint32 `json:"dstSubpass"`
	SrcStageMask    uint32 `json:"srcStageMask"`
	DstStageMask    uint32 `json:"dstStageMask"`
	SrcAccessMask   uint32 `json:"srcAccessMask"`
	DstAccessMask   uint32 `json:"dstAccessMask"`
	DependencyFlags uint32 `json:"dependencyFlags"`
}

type wireRenderPass struct {
	Hash         string                      `json:"hash"`
	Attachments  []wireAttachmentDescription `json:"attachments,omitempty"`
	Subpasses    []wireSubpassDescription    `json:"subpasses,omitempty"`
	Dependencies []wireSubpassDependency     `json:"dependencies,omitempty"`
	Chain        []wireExtension             `json:"chain,omitempty"`
}

func attachmentRefToWire(r resource.AttachmentReference) wireAttachmentReference {
	return wireAttachmentReference{Attachment: r.Attachment, Layout: r.Layout}
}

func renderPassToWire(hash resource.Hash, rp resource.RenderPass) wireRenderPass {
	w := wireRenderPass{Hash: hash.String(), Chain: extensionsToWire(rp.Chain)}
	for _, a := range rp.Attachments {
		w.Attachments = append(w.Attachments, wireAttachmentDescription{
			Format: a.Format, Samples: a.Samples, LoadOp: a.LoadOp, StoreOp: a.StoreOp,
			StencilLoadOp: a.StencilLoadOp, StencilStoreOp: a.StencilStoreOp,
			InitialLayout: a.InitialLayout, FinalLayout: a.FinalLayout,
		})
	}
	for _, sp := range rp.Subpasses {
		wsp := wireSubpassDescription{PipelineBindPoint: sp.PipelineBindPoint}
		for _, ref := range sp.InputAttachments {
			wsp.InputAttachments = append(wsp.InputAttachments, attachmentRefToWire(ref))
		}
		for _, ref := range sp.ColorAttachments {
			wsp.ColorAttachments = append(wsp.ColorAttachments, attachmentRefToWire(ref))
		}
		for _, ref := range sp.ResolveAttachments {
			wsp.ResolveAttachments = append(wsp.ResolveAttachments, attachmentRefToWire(ref))
		}
		if sp.DepthStencilAttachment != nil {
			ref := attachmentRefToWire(*sp.DepthStencilAttachment)
			wsp.DepthStencilAttachment = &ref
		}
		wsp.PreserveAttachments = sp.PreserveAttachments
		w.Subpasses = append(w.Subpasses, wsp)
	}
	for _, dep := range rp.Dependencies {
		w.Dependencies = append(w.Dependencies, wireSubpassDependency{
			SrcSubpass: dep.SrcSubpass, DstSubpass: dep.DstSubpass,
			SrcStageMask: dep.SrcStageMask, DstStageMask: dep.DstStageMask,
			SrcAccessMask: dep.SrcAccessMask, DstAccessMask: dep.DstAccessMask,
			DependencyFlags: dep.DependencyFlags,
		})
	}
	return w
}

type wireSpecializationMapEntry struct {
	ConstantID uint32 `json:"constantId"`
	Offset     uint32 `json:"offset"`
	Size       uint32 `json:"size"`
}

type wirePipelineShaderStage struct {
	Stage                 uint32                       `json:"stage"`
	Module                string                       `json:"module"`
	EntryPoint            string                       `json:"entryPoint"`
	SpecializationEntries []wireSpecializationMapEntry `json:"specializationEntries,omitempty"`
	SpecializationData    []byte                       `json:"specializationData,omitempty"`
}

func shaderStageToWire(s resource.PipelineShaderStage) wirePipelineShaderStage {
	w := wirePipelineShaderStage{
		Stage:              s.Stage,
		Module:             resource.Hash(s.Module).String(),
		EntryPoint:         s.EntryPoint,
		SpecializationData: s.SpecializationData,
	}
	for _, e := range s.SpecializationEntries {
		w.SpecializationEntries = append(w.SpecializationEntries, wireSpecializationMapEntry{
			ConstantID: e.ConstantID, Offset: e.Offset, Size: e.Size,
		})
	}
	return w
}

type wireComputePipeline struct {
	Hash   string                  `json:"hash"`
	Flags  uint32                  `json:"flags"`
	Layout string                  `json:"layout"`
	Stage  wirePipelineShaderStage `json:"stage"`
}

func computePipelineToWire(hash resource.Hash, p resource.ComputePipeline) wireComputePipeline {
	return wireComputePipeline{
		Hash:   hash.String(),
		Flags:  p.Flags,
		Layout: resource.Hash(p.Layout).String(),
		Stage:  shaderStageToWire(p.Stage),
	}
}

type wireVertexInputBinding struct {
	Binding   uint32 `json:"binding"`
	Stride    uint32 `json:"stride"`
	InputRate uint32 `json:"inputRate"`
}

type wireVertexInputAttribute struct {
	Location uint32 `json:"location"`
	Binding  uint32 `json:"binding"`
	Format   uint32 `json:"format"`
	Offset   uint32 `json:"offset"`
}

type wireColorBlendAttachment struct {
	BlendEnable         bool   `json:"blendEnable"`
	SrcColorBlendFactor uint32 `json:"srcColorBlendFactor"`
	DstColorBlendFactor uint32 `json:"dstColorBlendFactor"`
	ColorBlendOp        uint32 `json:"colorBlendOp"`
	SrcAlphaBlendFactor uint32 `json:"srcAlphaBlendFactor"`
	DstAlphaBlendFactor uint32 `json:"dstAlphaBlendFactor"`
	AlphaBlendOp        uint32 `json:"alphaBlendOp"`
	ColorWriteMask      uint32 `json:"colorWriteMask"`
}

type wireGraphicsPipelineState struct {
	VertexBindings          []wireVertexInputBinding   `json:"vertexBindings,omitempty"`
	VertexAttributes        []wireVertexInputAttribute `json:"vertexAttributes,omitempty"`
	PrimitiveTopology       uint32                     `json:"primitiveTopology"`
	PrimitiveRestartEnable  bool                       `json:"primitiveRestartEnable"`
	RasterizationDiscard    bool                       `json:"rasterizationDiscard"`
	PolygonMode             uint32                     `json:"polygonMode"`
	CullMode                uint32                     `json:"cullMode"`
	FrontFace               uint32                     `json:"frontFace"`
	DepthBiasEnable         bool                       `json:"depthBiasEnable"`
	DepthBiasConstantFactor float32                    `json:"depthBiasConstantFactor"`
	DepthBiasClamp          float32                    `json:"depthBiasClamp"`
	DepthBiasSlopeFactor    float32                    `json:"depthBiasSlopeFactor"`
	LineWidth               float32                    `json:"lineWidth"`
	RasterizationSamples    uint32                     `json:"rasterizationSamples"`
	SampleShadingEnable     bool                       `json:"sampleShadingEnable"`
	MinSampleShading        float32                    `json:"minSampleShading"`
	AlphaToCoverageEnable   bool                       `json:"alphaToCoverageEnable"`
	AlphaToOneEnable        bool                       `json:"alphaToOneEnable"`
	DepthTestEnable         bool                       `json:"depthTestEnable"`
	DepthWriteEnable        bool                       `json:"depthWriteEnable"`
	DepthCompareOp          uint32                     `json:"depthCompareOp"`
	DepthBoundsTestEnable   bool                       `json:"depthBoundsTestEnable"`
	MinDepthBounds          float32                    `json:"minDepthBounds"`
	MaxDepthBounds          float32                    `json:"maxDepthBounds"`
	StencilTestEnable       bool                       `json:"stencilTestEnable"`
	LogicOpEnable           bool                       `json:"logicOpEnable"`
	LogicOp                 uint32                     `json:"logicOp"`
	ColorBlendAttachments   []wireColorBlendAttachment `json:"colorBlendAttachments,omitempty"`
	BlendConstants          [4]float32                 `json:"blendConstants"`
	DynamicStates           []uint32                   `json:"dynamicStates,omitempty"`
}

func graphicsStateToWire(s resource.GraphicsPipelineState) wireGraphicsPipelineState {
	w := wireGraphicsPipelineState{
		PrimitiveTopology:       s.PrimitiveTopology,
		PrimitiveRestartEnable:  s.PrimitiveRestartEnable,
		RasterizationDiscard:    s.RasterizationDiscard,
		PolygonMode:             s.PolygonMode,
		CullMode:                s.CullMode,
		FrontFace:               s.FrontFace,
		DepthBiasEnable:         s.DepthBiasEnable,
		DepthBiasConstantFactor: s.DepthBiasConstantFactor,
		DepthBiasClamp:          s.DepthBiasClamp,
		DepthBiasSlopeFactor:    s.DepthBiasSlopeFactor,
		LineWidth:               s.LineWidth,
		RasterizationSamples:    s.RasterizationSamples,
		SampleShadingEnable:     s.SampleShadingEnable,
		MinSampleShading:        s.MinSampleShading,
		AlphaToCoverageEnable:   s.AlphaToCoverageEnable,
		AlphaToOneEnable:        s.AlphaToOneEnable,
		DepthTestEnable:         s.DepthTestEnable,
		DepthWriteEnable:        s.DepthWriteEnable,
		DepthCompareOp:          s.DepthCompareOp,
		DepthBoundsTestEnable:   s.DepthBoundsTestEnable,
		MinDepthBounds:          s.MinDepthBounds,
		MaxDepthBounds:          s.MaxDepthBounds,
		StencilTestEnable:       s.StencilTestEnable,
		LogicOpEnable:           s.LogicOpEnable,
		LogicOp:                 s.LogicOp,
		BlendConstants:          s.BlendConstants,
		DynamicStates:           s.DynamicStates,
	}
	for _, vb := range s.VertexBindings {
		w.VertexBindings = append(w.VertexBindings, wireVertexInputBinding{
			Binding: vb.Binding, Stride: vb.Stride, InputRate: vb.InputRate,
		})
	}
	for _, va := range s.VertexAttributes {
		w.VertexAttributes = append(w.VertexAttributes, wireVertexInputAttribute{
			Location: va.Location, Binding: va.Binding, Format: va.Format, Offset: va.Offset,
		})
	}
	for _, a := range s.ColorBlendAttachments {
		w.ColorBlendAttachments = append(w.ColorBlendAttachments, wireColorBlendAttachment{
			BlendEnable: a.BlendEnable, SrcColorBlendFactor: a.SrcColorBlendFactor,
			DstColorBlendFactor: a.DstColorBlendFactor, ColorBlendOp: a.ColorBlendOp,
			SrcAlphaBlendFactor: a.SrcAlphaBlendFactor, DstAlphaBlendFactor: a.DstAlphaBlendFactor,
			AlphaBlendOp: a.AlphaBlendOp, ColorWriteMask: a.ColorWriteMask,
		})
	}
	return w
}

type wireGraphicsPipeline struct {
	Hash         string                    `json:"hash"`
	Flags        uint32                    `json:"flags"`
	Layout       string                    `json:"layout"`
	Stages       []wirePipelineShaderStage `json:"stages,omitempty"`
	RenderPass   string                    `json:"renderPass"`
	Subpass      uint32                    `json:"subpass"`
	State        wireGraphicsPipelineState `json:"state"`
	BasePipeline string                    `json:"basePipeline,omitempty"`
}

func graphicsPipelineToWire(hash resource.Hash, p resource.GraphicsPipeline) wireGraphicsPipeline {
	w := wireGraphicsPipeline{
		Hash:       hash.String(),
		Flags:      p.Flags,
		Layout:     resource.Hash(p.Layout).String(),
		RenderPass: resource.Hash(p.RenderPass).String(),
		Subpass:    p.Subpass,
		State:      graphicsStateToWire(p.State),
	}
	for _, s := range p.Stages {
		w.Stages = append(w.Stages, shaderStageToWire(s))
	}
	if p.BasePipeline != 0 {
		w.BasePipeline = resource.Hash(p.BasePipeline).String()
	}
	return w
}

type wireApplicationInfo struct {
	Hash               string `json:"hash"`
	ApplicationName    string `json:"applicationName"`
	ApplicationVersion uint32 `json:"applicationVersion"`
	EngineName         string `json:"engineName"`
	EngineVersion      uint32 `json:"engineVersion"`
	APIVersion         uint32 `json:"apiVersion"`
}

type wirePhysicalDeviceFeatures struct {
	Hash     string `json:"hash"`
	Features []bool `json:"features"`
}
