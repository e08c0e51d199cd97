package resource

// Sampler mirrors the fixed-function sampler state of VkSamplerCreateInfo.
type Sampler struct {
	MagFilter               uint32
	MinFilter               uint32
	MipmapMode              uint32
	AddressModeU            uint32
	AddressModeV            uint32
	AddressModeW            uint32
	MipLodBias              float32
	AnisotropyEnable        bool
	MaxAnisotropy           float32
	CompareEnable           bool
	CompareOp               uint32
	MinLod                  float32
	MaxLod                  float32
	BorderColor             uint32
	UnnormalizedCoordinates bool
	Chain                   []ExtensionRecord
}

// DescriptorSetLayoutBinding is one binding slot within a DescriptorSetLayout.
type DescriptorSetLayoutBinding struct {
	Binding           uint32
	DescriptorType    uint32
	DescriptorCount   uint32
	StageFlags        uint32
	ImmutableSamplers []Handle // only populated when DescriptorType uses immutable samplers
}

// DescriptorSetLayout mirrors VkDescriptorSetLayoutCreateInfo.
type DescriptorSetLayout struct {
	Flags    uint32
	Bindings []DescriptorSetLayoutBinding
}

// PushConstantRange mirrors VkPushConstantRange.
type PushConstantRange struct {
	StageFlags uint32
	Offset     uint32
	Size       uint32
}

// PipelineLayout mirrors VkPipelineLayoutCreateInfo.
type PipelineLayout struct {
	SetLayouts         []Handle
	PushConstantRanges []PushConstantRange
}

// ShaderModule mirrors VkShaderModuleCreateInfo: raw SPIR-V words, stored as
// the byte-serialization of the code (base64 on the wire, see §6).
type ShaderModule struct {
	Code []byte
}

// AttachmentDescription mirrors VkAttachmentDescription.
type AttachmentDescription struct {
	Format         uint32
	Samples        uint32
	LoadOp         uint32
	StoreOp        uint32
	StencilLoadOp  uint32
	StencilStoreOp uint32
	InitialLayout  uint32
	FinalLayout    uint32
}

// AttachmentReference mirrors VkAttachmentReference.
type AttachmentReference struct {
	Attachment uint32
	Layout     uint32
}

// SubpassDescription mirrors VkSubpassDescription.
type SubpassDescription struct {
	PipelineBindPoint     uint32
	InputAttachments      []AttachmentReference
	ColorAttachments      []AttachmentReference
	ResolveAttachments    []AttachmentReference
	DepthStencilAttachment *AttachmentReference
	PreserveAttachments   []uint32
}

// SubpassDependency mirrors VkSubpassDependency.
type SubpassDependency struct {
	SrcSubpass      uint32
	DstSubpass      uint32
	SrcStageMask    uint32
	DstStageMask    uint32
	SrcAccessMask   uint32
	DstAccessMask   uint32
	DependencyFlags uint32
}

// RenderPass mirrors VkRenderPassCreateInfo. Per §9's open question,
// Dependencies is hashed strictly by its own length: a descriptor that sets
// a populated backing array but reports a shorter logical count (the
// original's dependencyCount/pDependencies split) must never be hashed
// past the count the caller reports here.
type RenderPass struct {
	Attachments  []AttachmentDescription
	Subpasses    []SubpassDescription
	Dependencies []SubpassDependency
	Chain        []ExtensionRecord
}

// SpecializationMapEntry mirrors VkSpecializationMapEntry.
type SpecializationMapEntry struct {
	ConstantID uint32
	Offset     uint32
	Size       uint32
}

// PipelineShaderStage mirrors VkPipelineShaderStageCreateInfo, including its
// optional specialization info.
type PipelineShaderStage struct {
	Stage                 uint32
	Module                Handle
	EntryPoint            string
	SpecializationEntries []SpecializationMapEntry
	SpecializationData    []byte
}

// VertexInputBinding mirrors VkVertexInputBindingDescription.
type VertexInputBinding struct {
	Binding   uint32
	Stride    uint32
	InputRate uint32
}

// VertexInputAttribute mirrors VkVertexInputAttributeDescription.
type VertexInputAttribute struct {
	Location uint32
	Binding  uint32
	Format   uint32
	Offset   uint32
}

// ColorBlendAttachment mirrors VkPipelineColorBlendAttachmentState.
type ColorBlendAttachment struct {
	BlendEnable         bool
	SrcColorBlendFactor uint32
	DstColorBlendFactor uint32
	ColorBlendOp        uint32
	SrcAlphaBlendFactor uint32
	DstAlphaBlendFactor uint32
	AlphaBlendOp        uint32
	ColorWriteMask      uint32
}

// GraphicsPipelineState groups the fixed-function state blocks of
// VkGraphicsPipelineCreateInfo that aren't themselves separately-hashed
// dependencies.
type GraphicsPipelineState struct {
	VertexBindings        []VertexInputBinding
	VertexAttributes       []VertexInputAttribute
	PrimitiveTopology      uint32
	PrimitiveRestartEnable bool
	RasterizationDiscard   bool
	PolygonMode            uint32
	CullMode               uint32
	FrontFace              uint32
	DepthBiasEnable        bool
	DepthBiasConstantFactor float32
	DepthBiasClamp          float32
	DepthBiasSlopeFactor    float32
	LineWidth               float32
	RasterizationSamples    uint32
	SampleShadingEnable     bool
	MinSampleShading        float32
	AlphaToCoverageEnable   bool
	AlphaToOneEnable        bool
	DepthTestEnable         bool
	DepthWriteEnable        bool
	DepthCompareOp          uint32
	DepthBoundsTestEnable   bool
	MinDepthBounds          float32
	MaxDepthBounds          float32
	StencilTestEnable       bool
	LogicOpEnable           bool
	LogicOp                 uint32
	ColorBlendAttachments   []ColorBlendAttachment
	BlendConstants          [4]float32
	DynamicStates           []uint32
}

// ComputePipeline mirrors VkComputePipelineCreateInfo.
type ComputePipeline struct {
	Flags  uint32
	Layout Handle
	Stage  PipelineShaderStage
}

// GraphicsPipeline mirrors VkGraphicsPipelineCreateInfo. BasePipeline is the
// optional base-pipeline dependency named in SPEC_FULL.md §3; its zero value
// (NilHash after resolution) means "no base pipeline".
type GraphicsPipeline struct {
	Flags        uint32
	Layout       Handle
	Stages       []PipelineShaderStage
	RenderPass   Handle
	Subpass      uint32
	State        GraphicsPipelineState
	BasePipeline Handle
}

// ApplicationInfo mirrors VkApplicationInfo. Supplemented from
// original_source per SPEC_FULL.md §3.
type ApplicationInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	APIVersion         uint32
}

// PhysicalDeviceFeatureCount is the number of boolean feature bits captured
// from VkPhysicalDeviceFeatures, in struct-declaration order.
const PhysicalDeviceFeatureCount = 55

// PhysicalDeviceFeatures mirrors VkPhysicalDeviceFeatures as a fixed-size
// bitset rather than 55 individual named booleans, keeping the canonical
// payload compact and stable (SPEC_FULL.md §3).
type PhysicalDeviceFeatures struct {
	Features [PhysicalDeviceFeatureCount]bool
}
