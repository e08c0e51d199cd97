package pipehash

import "github.com/gpucache/pipecache/internal/resource"

// PipelineLayout computes the content hash of a PipelineLayout descriptor.
// Each referenced DescriptorSetLayout handle is resolved to its content
// hash before folding.
func PipelineLayout(p resource.PipelineLayout, r Resolver) (resource.Hash, error) {
	f := newFolder(domainPipelineLayout)
	f.writeLen(len(p.SetLayouts))
	for _, h := range p.SetLayouts {
		hash, err := resolve(r, resource.KindDescriptorSetLayout, h)
		if err != nil {
			return 0, err
		}
		f.writeHash(hash)
	}
	f.writeLen(len(p.PushConstantRanges))
	for _, pc := range p.PushConstantRanges {
		f.writeUint32(pc.StageFlags)
		f.writeUint32(pc.Offset)
		f.writeUint32(pc.Size)
	}
	return f.sum(), nil
}
