package pipehash

import "github.com/gpucache/pipecache/internal/resource"

// ApplicationInfo computes the content hash of the singleton ApplicationInfo
// record.
func ApplicationInfo(a resource.ApplicationInfo) (resource.Hash, error) {
	f := newFolder(domainApplicationInfo)
	f.writeString(a.ApplicationName)
	f.writeUint32(a.ApplicationVersion)
	f.writeString(a.EngineName)
	f.writeUint32(a.EngineVersion)
	f.writeUint32(a.APIVersion)
	return f.sum(), nil
}

// PhysicalDeviceFeatures computes the content hash of the singleton
// PhysicalDeviceFeatures record.
func PhysicalDeviceFeatures(d resource.PhysicalDeviceFeatures) (resource.Hash, error) {
	f := newFolder(domainPhysicalDeviceFeatures)
	for _, bit := range d.Features {
		f.writeBool(bit)
	}
	return f.sum(), nil
}
