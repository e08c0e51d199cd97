package replayer

// These types mirror the JSON shape internal/recorder.Serialize produces
// (§6). Parsing lives on the replayer side of the boundary rather than
// sharing recorder's unexported wire types, since a replayer must be able to
// consume a payload written by any conforming producer, not only this
// process's own Recorder.

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
	Type          uint32         `json:"type"`
	Ycbcr         *wireYcbcr     `json:"ycbcrConversion,omitempty"`
	ReductionMode *uint32        `json:"reductionMode,omitempty"`
	Multiview     *wireMultiview `json:"multiview,omitempty"`
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

type wireShaderModule struct {
	Hash string `json:"hash"`
	Code []byte `json:"code"`
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

type wireComputePipeline struct {
	Hash   string                  `json:"hash"`
	Flags  uint32                  `json:"flags"`
	Layout string                  `json:"layout"`
	Stage  wirePipelineShaderStage `json:"stage"`
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
