package pipehash

import "github.com/gpucache/pipecache/internal/resource"

// Sampler computes the content hash of a Sampler descriptor.
func Sampler(s resource.Sampler) (resource.Hash, error) {
	f := newFolder(domainSampler)
	f.writeUint32(s.MagFilter)
	f.writeUint32(s.MinFilter)
	f.writeUint32(s.MipmapMode)
	f.writeUint32(s.AddressModeU)
	f.writeUint32(s.AddressModeV)
	f.writeUint32(s.AddressModeW)
	f.writeFloat32(s.MipLodBias)
	f.writeBool(s.AnisotropyEnable)
	if s.AnisotropyEnable {
		f.writeFloat32(s.MaxAnisotropy)
	}
	f.writeBool(s.CompareEnable)
	if s.CompareEnable {
		f.writeUint32(s.CompareOp)
	}
	f.writeFloat32(s.MinLod)
	f.writeFloat32(s.MaxLod)
	f.writeUint32(s.BorderColor)
	f.writeBool(s.UnnormalizedCoordinates)
	if err := foldExtensionChain(f, s.Chain); err != nil {
		return 0, err
	}
	return f.sum(), nil
}
