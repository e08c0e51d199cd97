package pipehash

import "github.com/gpucache/pipecache/internal/resource"

// Resolver resolves a dependency's caller-supplied handle back to the
// content hash of the object it names, within a given resource kind. The
// recorder's intern tables implement this; hashing never recurses into the
// referenced object's own descriptor (§4.1 "Dependency-folding": hashes
// fold by hash, not by structural recursion).
type Resolver interface {
	Resolve(kind resource.Kind, h resource.Handle) (resource.Hash, bool)
}

func resolve(r Resolver, kind resource.Kind, h resource.Handle) (resource.Hash, error) {
	hash, ok := r.Resolve(kind, h)
	if !ok {
		return 0, ErrUnknownReference
	}
	return hash, nil
}

func foldExtensionChain(f *folder, chain []resource.ExtensionRecord) error {
	ordered := resource.OrderExtensionChain(chain)
	f.writeLen(len(ordered))
	for _, ext := range ordered {
		f.writeUint32(uint32(ext.StructureType()))
		switch e := ext.(type) {
		case resource.SamplerYcbcrConversion:
			f.writeUint32(e.Format)
			f.writeUint32(e.YcbcrModel)
			f.writeUint32(e.YcbcrRange)
			f.writeUint32(e.ChromaFilter)
			f.writeBool(e.ForceExplicitReconstruction)
		case resource.SamplerReductionMode:
			f.writeUint32(e.ReductionMode)
		case resource.RenderPassMultiview:
			f.writeLen(len(e.ViewMasks))
			for _, m := range e.ViewMasks {
				f.writeUint32(m)
			}
			f.writeLen(len(e.ViewOffsets))
			for _, o := range e.ViewOffsets {
				f.writeInt32(o)
			}
			f.writeLen(len(e.CorrelationMasks))
			for _, m := range e.CorrelationMasks {
				f.writeUint32(m)
			}
		default:
			return ErrUnsupportedExtension
		}
	}
	return nil
}
