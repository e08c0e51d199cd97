package replayer

import "github.com/gpucache/pipecache/internal/resource"

// Sink consumes reconstructed descriptors in topological order, typically by
// issuing the matching driver creation call. Each Accept method returns the
// handle the sink wants future dependents substituted with, or an error to
// reject the object (§4.3 "Handle substitution").
type Sink interface {
	AcceptSampler(hash resource.Hash, s resource.Sampler) (resource.Handle, error)
	AcceptDescriptorSetLayout(hash resource.Hash, d resource.DescriptorSetLayout) (resource.Handle, error)
	AcceptPipelineLayout(hash resource.Hash, p resource.PipelineLayout) (resource.Handle, error)
	AcceptShaderModule(hash resource.Hash, s resource.ShaderModule) (resource.Handle, error)
	AcceptRenderPass(hash resource.Hash, rp resource.RenderPass) (resource.Handle, error)
	AcceptComputePipeline(hash resource.Hash, p resource.ComputePipeline) (resource.Handle, error)
	AcceptGraphicsPipeline(hash resource.Hash, p resource.GraphicsPipeline) (resource.Handle, error)
	AcceptApplicationInfo(hash resource.Hash, a resource.ApplicationInfo) (resource.Handle, error)
	AcceptPhysicalDeviceFeatures(hash resource.Hash, d resource.PhysicalDeviceFeatures) (resource.Handle, error)
}
