// Package pipehash computes the deterministic 64-bit content hashes that
// identify recorded resources. Every exported Hash function is pure: same
// descriptor bytes in, same hash out, regardless of host endianness or
// build mode (§4.1).
package pipehash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/gpucache/pipecache/internal/resource"
)

// folder incrementally feeds a descriptor's canonically-ordered fields into
// an xxhash digest. Every field is written as a fixed-width little-endian
// encoding, never as a raw struct memory dump, so the result is stable
// across platforms (SPEC_FULL.md §4.1 "Stable").
//
// This generalizes the teacher's ir.hashWithDomain: instead of hashing one
// canonical-JSON blob, the folder writes a domain tag once up front and then
// streams fields directly, avoiding an intermediate allocation per object.
type folder struct {
	d *xxhash.Digest
}

// domain prefixes, one per resource kind, written first so that two
// descriptors of different kinds with coincidentally identical field bytes
// never collide on the same hash space.
const (
	domainSampler                 = "pipecache/sampler/v1"
	domainDescriptorSetLayout     = "pipecache/descriptor-set-layout/v1"
	domainPipelineLayout          = "pipecache/pipeline-layout/v1"
	domainShaderModule            = "pipecache/shader-module/v1"
	domainRenderPass              = "pipecache/render-pass/v1"
	domainComputePipeline         = "pipecache/compute-pipeline/v1"
	domainGraphicsPipeline        = "pipecache/graphics-pipeline/v1"
	domainApplicationInfo         = "pipecache/application-info/v1"
	domainPhysicalDeviceFeatures  = "pipecache/physical-device-features/v1"
)

func newFolder(domain string) *folder {
	f := &folder{d: xxhash.New()}
	f.writeString(domain)
	f.d.Write([]byte{0x00}) // null separator: domain/data boundary is unambiguous
	return f
}

func (f *folder) sum() resource.Hash {
	return resource.Hash(f.d.Sum64())
}

func (f *folder) writeUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	f.d.Write(b[:])
}

func (f *folder) writeInt32(v int32) {
	f.writeUint32(uint32(v))
}

func (f *folder) writeUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	f.d.Write(b[:])
}

func (f *folder) writeHash(h resource.Hash) {
	f.writeUint64(uint64(h))
}

func (f *folder) writeFloat32(v float32) {
	f.writeUint32(math.Float32bits(v))
}

func (f *folder) writeBool(v bool) {
	if v {
		f.d.Write([]byte{1})
	} else {
		f.d.Write([]byte{0})
	}
}

// writeLen writes an element count as a fixed-width prefix so that two
// variable-length fields written back to back can never be reinterpreted
// as a different split of the same bytes.
func (f *folder) writeLen(n int) {
	f.writeUint32(uint32(n))
}

func (f *folder) writeBytes(b []byte) {
	f.writeLen(len(b))
	f.d.Write(b)
}

func (f *folder) writeString(s string) {
	f.writeBytes([]byte(s))
}
