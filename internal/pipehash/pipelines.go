package pipehash

import "github.com/gpucache/pipecache/internal/resource"

func foldShaderStage(f *folder, r Resolver, stage resource.PipelineShaderStage) error {
	f.writeUint32(stage.Stage)
	hash, err := resolve(r, resource.KindShaderModule, stage.Module)
	if err != nil {
		return err
	}
	f.writeHash(hash)
	f.writeString(stage.EntryPoint)
	f.writeLen(len(stage.SpecializationEntries))
	for _, e := range stage.SpecializationEntries {
		f.writeUint32(e.ConstantID)
		f.writeUint32(e.Offset)
		f.writeUint32(e.Size)
	}
	f.writeBytes(stage.SpecializationData)
	return nil
}

// ComputePipeline computes the content hash of a ComputePipeline
// descriptor. Layout and the shader module are dependency references.
func ComputePipeline(p resource.ComputePipeline, r Resolver) (resource.Hash, error) {
	f := newFolder(domainComputePipeline)
	f.writeUint32(p.Flags)

	layoutHash, err := resolve(r, resource.KindPipelineLayout, p.Layout)
	if err != nil {
		return 0, err
	}
	f.writeHash(layoutHash)

	if err := foldShaderStage(f, r, p.Stage); err != nil {
		return 0, err
	}
	return f.sum(), nil
}

func foldGraphicsState(f *folder, s resource.GraphicsPipelineState) {
	f.writeLen(len(s.VertexBindings))
	for _, vb := range s.VertexBindings {
		f.writeUint32(vb.Binding)
		f.writeUint32(vb.Stride)
		f.writeUint32(vb.InputRate)
	}
	f.writeLen(len(s.VertexAttributes))
	for _, va := range s.VertexAttributes {
		f.writeUint32(va.Location)
		f.writeUint32(va.Binding)
		f.writeUint32(va.Format)
		f.writeUint32(va.Offset)
	}
	f.writeUint32(s.PrimitiveTopology)
	f.writeBool(s.PrimitiveRestartEnable)
	f.writeBool(s.RasterizationDiscard)
	f.writeUint32(s.PolygonMode)
	f.writeUint32(s.CullMode)
	f.writeUint32(s.FrontFace)
	f.writeBool(s.DepthBiasEnable)
	if s.DepthBiasEnable {
		f.writeFloat32(s.DepthBiasConstantFactor)
		f.writeFloat32(s.DepthBiasClamp)
		f.writeFloat32(s.DepthBiasSlopeFactor)
	}
	f.writeFloat32(s.LineWidth)
	f.writeUint32(s.RasterizationSamples)
	f.writeBool(s.SampleShadingEnable)
	if s.SampleShadingEnable {
		f.writeFloat32(s.MinSampleShading)
	}
	f.writeBool(s.AlphaToCoverageEnable)
	f.writeBool(s.AlphaToOneEnable)
	f.writeBool(s.DepthTestEnable)
	if s.DepthTestEnable {
		f.writeBool(s.DepthWriteEnable)
		f.writeUint32(s.DepthCompareOp)
	}
	f.writeBool(s.DepthBoundsTestEnable)
	if s.DepthBoundsTestEnable {
		f.writeFloat32(s.MinDepthBounds)
		f.writeFloat32(s.MaxDepthBounds)
	}
	f.writeBool(s.StencilTestEnable)
	f.writeBool(s.LogicOpEnable)
	if s.LogicOpEnable {
		f.writeUint32(s.LogicOp)
	}
	f.writeLen(len(s.ColorBlendAttachments))
	for _, a := range s.ColorBlendAttachments {
		f.writeBool(a.BlendEnable)
		if a.BlendEnable {
			f.writeUint32(a.SrcColorBlendFactor)
			f.writeUint32(a.DstColorBlendFactor)
			f.writeUint32(a.ColorBlendOp)
			f.writeUint32(a.SrcAlphaBlendFactor)
			f.writeUint32(a.DstAlphaBlendFactor)
			f.writeUint32(a.AlphaBlendOp)
		}
		f.writeUint32(a.ColorWriteMask)
	}
	for _, c := range s.BlendConstants {
		f.writeFloat32(c)
	}
	f.writeLen(len(s.DynamicStates))
	for _, ds := range s.DynamicStates {
		f.writeUint32(ds)
	}
}

// GraphicsPipeline computes the content hash of a GraphicsPipeline
// descriptor. Layout, shader modules, the render pass, and the optional
// base pipeline are all dependency references (§3 item 7).
func GraphicsPipeline(p resource.GraphicsPipeline, r Resolver) (resource.Hash, error) {
	f := newFolder(domainGraphicsPipeline)
	f.writeUint32(p.Flags)

	layoutHash, err := resolve(r, resource.KindPipelineLayout, p.Layout)
	if err != nil {
		return 0, err
	}
	f.writeHash(layoutHash)

	f.writeLen(len(p.Stages))
	for _, stage := range p.Stages {
		if err := foldShaderStage(f, r, stage); err != nil {
			return 0, err
		}
	}

	rpHash, err := resolve(r, resource.KindRenderPass, p.RenderPass)
	if err != nil {
		return 0, err
	}
	f.writeHash(rpHash)
	f.writeUint32(p.Subpass)

	foldGraphicsState(f, p.State)

	hasBase := p.BasePipeline != 0
	f.writeBool(hasBase)
	if hasBase {
		baseHash, err := resolve(r, resource.KindGraphicsPipeline, p.BasePipeline)
		if err != nil {
			return 0, err
		}
		f.writeHash(baseHash)
	}

	return f.sum(), nil
}
