package pipehash

import "github.com/gpucache/pipecache/internal/resource"

// ShaderModule computes the content hash of a ShaderModule descriptor. It
// has no dependency references and no extension chain.
func ShaderModule(s resource.ShaderModule) (resource.Hash, error) {
	f := newFolder(domainShaderModule)
	f.writeBytes(s.Code)
	return f.sum(), nil
}
