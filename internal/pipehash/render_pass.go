package pipehash

import "github.com/gpucache/pipecache/internal/resource"

func foldAttachmentRef(f *folder, ref resource.AttachmentReference) {
	f.writeUint32(ref.Attachment)
	f.writeUint32(ref.Layout)
}

// RenderPass computes the content hash of a RenderPass descriptor.
//
// Per §9's open question, Dependencies is folded strictly by its slice
// length: a caller that builds a longer backing array but passes a shorter
// slice (the original's dependencyCount/pDependencies split) must see those
// trailing, uncounted entries excluded from the hash. Ranging over a Go
// slice already does exactly that, so no special-casing is needed here
// beyond never reaching past len(rp.Dependencies).
func RenderPass(rp resource.RenderPass) (resource.Hash, error) {
	f := newFolder(domainRenderPass)

	f.writeLen(len(rp.Attachments))
	for _, a := range rp.Attachments {
		f.writeUint32(a.Format)
		f.writeUint32(a.Samples)
		f.writeUint32(a.LoadOp)
		f.writeUint32(a.StoreOp)
		f.writeUint32(a.StencilLoadOp)
		f.writeUint32(a.StencilStoreOp)
		f.writeUint32(a.InitialLayout)
		f.writeUint32(a.FinalLayout)
	}

	f.writeLen(len(rp.Subpasses))
	for _, sp := range rp.Subpasses {
		f.writeUint32(sp.PipelineBindPoint)
		f.writeLen(len(sp.InputAttachments))
		for _, ref := range sp.InputAttachments {
			foldAttachmentRef(f, ref)
		}
		f.writeLen(len(sp.ColorAttachments))
		for _, ref := range sp.ColorAttachments {
			foldAttachmentRef(f, ref)
		}
		f.writeLen(len(sp.ResolveAttachments))
		for _, ref := range sp.ResolveAttachments {
			foldAttachmentRef(f, ref)
		}
		f.writeBool(sp.DepthStencilAttachment != nil)
		if sp.DepthStencilAttachment != nil {
			foldAttachmentRef(f, *sp.DepthStencilAttachment)
		}
		f.writeLen(len(sp.PreserveAttachments))
		for _, idx := range sp.PreserveAttachments {
			f.writeUint32(idx)
		}
	}

	f.writeLen(len(rp.Dependencies))
	for _, dep := range rp.Dependencies {
		f.writeUint32(dep.SrcSubpass)
		f.writeUint32(dep.DstSubpass)
		f.writeUint32(dep.SrcStageMask)
		f.writeUint32(dep.DstStageMask)
		f.writeUint32(dep.SrcAccessMask)
		f.writeUint32(dep.DstAccessMask)
		f.writeUint32(dep.DependencyFlags)
	}

	if err := foldExtensionChain(f, rp.Chain); err != nil {
		return 0, err
	}
	return f.sum(), nil
}
