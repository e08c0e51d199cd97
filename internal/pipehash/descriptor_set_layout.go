package pipehash

import "github.com/gpucache/pipecache/internal/resource"

// DescriptorSetLayout computes the content hash of a DescriptorSetLayout
// descriptor. Immutable sampler bindings are dependency references: each
// handle is resolved to the referenced Sampler's content hash before
// folding (§4.1 "Dependency-folding").
func DescriptorSetLayout(d resource.DescriptorSetLayout, r Resolver) (resource.Hash, error) {
	f := newFolder(domainDescriptorSetLayout)
	f.writeUint32(d.Flags)
	f.writeLen(len(d.Bindings))
	for _, b := range d.Bindings {
		f.writeUint32(b.Binding)
		f.writeUint32(b.DescriptorType)
		f.writeUint32(b.DescriptorCount)
		f.writeUint32(b.StageFlags)
		f.writeLen(len(b.ImmutableSamplers))
		for _, h := range b.ImmutableSamplers {
			hash, err := resolve(r, resource.KindSampler, h)
			if err != nil {
				return 0, err
			}
			f.writeHash(hash)
		}
	}
	return f.sum(), nil
}
