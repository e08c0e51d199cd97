package resource

// StructureType tags an extension-chain record so the hasher can fold
// recognized extensions in a fixed, ascending order regardless of the order
// the application chained them in.
type StructureType uint32

const (
	StructureTypeSamplerYcbcrConversionInfo StructureType = iota + 1
	StructureTypeSamplerReductionModeInfo
	StructureTypeRenderPassMultiviewInfo
)

// ExtensionRecord is a sealed interface: only the types in this file
// implement it. A pNext-style record the hasher doesn't recognize arrives
// as UnknownExtension rather than a new type implementing this interface,
// which is how ErrUnsupportedExtension gets raised instead of the chain
// being silently ignored.
type ExtensionRecord interface {
	StructureType() StructureType
	isExtensionRecord()
}

// UnknownExtension represents a pNext-chain entry whose structure type this
// system does not recognize. It always causes the chain to be rejected.
type UnknownExtension struct {
	Tag StructureType
}

func (UnknownExtension) isExtensionRecord() {}

// StructureType returns Tag, though an UnknownExtension is never folded
// into a hash; it only ever triggers ErrUnsupportedExtension.
func (u UnknownExtension) StructureType() StructureType { return u.Tag }

// SamplerYcbcrConversion chains a YCbCr conversion onto a Sampler.
type SamplerYcbcrConversion struct {
	Format              uint32
	YcbcrModel           uint32
	YcbcrRange           uint32
	ChromaFilter         uint32
	ForceExplicitReconstruction bool
}

func (SamplerYcbcrConversion) isExtensionRecord() {}
func (SamplerYcbcrConversion) StructureType() StructureType {
	return StructureTypeSamplerYcbcrConversionInfo
}

// SamplerReductionMode chains a min/max reduction mode onto a Sampler.
type SamplerReductionMode struct {
	ReductionMode uint32
}

func (SamplerReductionMode) isExtensionRecord() {}
func (SamplerReductionMode) StructureType() StructureType {
	return StructureTypeSamplerReductionModeInfo
}

// RenderPassMultiview chains multiview view masks and self-dependencies onto
// a RenderPass. Supplemented from original_source (see SPEC_FULL.md §3):
// the distilled spec omits multiview but the original captures it via
// VkRenderPassMultiviewCreateInfo in the render pass's pNext chain.
type RenderPassMultiview struct {
	ViewMasks           []uint32
	ViewOffsets         []int32
	CorrelationMasks    []uint32
}

func (RenderPassMultiview) isExtensionRecord() {}
func (RenderPassMultiview) StructureType() StructureType {
	return StructureTypeRenderPassMultiviewInfo
}

// orderExtensionChain returns chain sorted by ascending StructureType, the
// fixed structure-type order the hasher folds extensions in (§4.1).
func orderExtensionChain(chain []ExtensionRecord) []ExtensionRecord {
	out := make([]ExtensionRecord, len(chain))
	copy(out, chain)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].StructureType() < out[j-1].StructureType(); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// OrderExtensionChain is the exported form, used by both the hasher and the
// serializer so chain order in the wire format matches hash-fold order.
func OrderExtensionChain(chain []ExtensionRecord) []ExtensionRecord {
	return orderExtensionChain(chain)
}
