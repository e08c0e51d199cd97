package pipehash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpucache/pipecache/internal/resource"
)

type fakeResolver map[resource.Kind]map[resource.Handle]resource.Hash

func (f fakeResolver) Resolve(kind resource.Kind, h resource.Handle) (resource.Hash, bool) {
	m, ok := f[kind]
	if !ok {
		return 0, false
	}
	hash, ok := m[h]
	return hash, ok
}

func newFakeResolver() fakeResolver {
	return fakeResolver{}
}

func (f fakeResolver) set(kind resource.Kind, h resource.Handle, hash resource.Hash) {
	if f[kind] == nil {
		f[kind] = map[resource.Handle]resource.Hash{}
	}
	f[kind][h] = hash
}

func TestSamplerHashDeterministic(t *testing.T) {
	s := resource.Sampler{MagFilter: 1, MinFilter: 1, MinLod: 10.0, MaxLod: 12.0}

	h1, err := Sampler(s)
	require.NoError(t, err)
	h2, err := Sampler(s)
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "Sampler hash must be deterministic")
}

// TestSamplerDedupByFieldChange implements scenario 1 of SPEC_FULL.md §8:
// minLod=10.0 vs minLod=11.0 must hash differently.
func TestSamplerDedupByFieldChange(t *testing.T) {
	s1 := resource.Sampler{MinLod: 10.0}
	s2 := resource.Sampler{MinLod: 11.0}

	h1, err := Sampler(s1)
	require.NoError(t, err)
	h2, err := Sampler(s2)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestSamplerDisabledFieldsDoNotContribute(t *testing.T) {
	// AnisotropyEnable=false: MaxAnisotropy must not affect the hash.
	s1 := resource.Sampler{AnisotropyEnable: false, MaxAnisotropy: 4.0}
	s2 := resource.Sampler{AnisotropyEnable: false, MaxAnisotropy: 16.0}

	h1, err := Sampler(s1)
	require.NoError(t, err)
	h2, err := Sampler(s2)
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "disabled anisotropy's MaxAnisotropy must not contribute")
}

func TestSamplerUnsupportedExtensionRejected(t *testing.T) {
	s := resource.Sampler{
		Chain: []resource.ExtensionRecord{resource.UnknownExtension{Tag: 999}},
	}

	_, err := Sampler(s)
	require.ErrorIs(t, err, ErrUnsupportedExtension)
}

func TestDescriptorSetLayoutUnknownReference(t *testing.T) {
	r := newFakeResolver()
	dsl := resource.DescriptorSetLayout{
		Bindings: []resource.DescriptorSetLayoutBinding{
			{Binding: 0, DescriptorType: 1, DescriptorCount: 1, ImmutableSamplers: []resource.Handle{42}},
		},
	}

	_, err := DescriptorSetLayout(dsl, r)
	require.ErrorIs(t, err, ErrUnknownReference)
}

func TestDescriptorSetLayoutFoldsSamplerHash(t *testing.T) {
	r := newFakeResolver()
	samplerHash, err := Sampler(resource.Sampler{MinLod: 1})
	require.NoError(t, err)
	r.set(resource.KindSampler, 7, samplerHash)

	dsl := resource.DescriptorSetLayout{
		Bindings: []resource.DescriptorSetLayoutBinding{
			{Binding: 0, DescriptorType: 1, DescriptorCount: 1, ImmutableSamplers: []resource.Handle{7}},
		},
	}

	h1, err := DescriptorSetLayout(dsl, r)
	require.NoError(t, err)

	// Changing which sampler the handle resolves to must change the hash,
	// even though the DSL descriptor's own bytes are unchanged.
	r.set(resource.KindSampler, 7, samplerHash+1)
	h2, err := DescriptorSetLayout(dsl, r)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestRenderPassIgnoresUncountedDependencies(t *testing.T) {
	backing := make([]resource.SubpassDependency, 4)
	backing[0] = resource.SubpassDependency{SrcSubpass: 1}
	backing[1] = resource.SubpassDependency{SrcSubpass: 2}

	// Two descriptors share the same backing array but report different
	// logical lengths via slicing; only the reported length may hash.
	rpShort := resource.RenderPass{Dependencies: backing[:0]}
	rpAlsoShort := resource.RenderPass{Dependencies: backing[:0]}

	h1, err := RenderPass(rpShort)
	require.NoError(t, err)
	h2, err := RenderPass(rpAlsoShort)
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "dependencyCount=0 must ignore populated backing array")
}

func TestGraphicsPipelineFoldsBasePipeline(t *testing.T) {
	r := newFakeResolver()
	r.set(resource.KindPipelineLayout, 1, 100)
	r.set(resource.KindShaderModule, 2, 200)
	r.set(resource.KindRenderPass, 3, 300)
	r.set(resource.KindGraphicsPipeline, 4, 400)

	base := resource.GraphicsPipeline{
		Layout:     1,
		Stages:     []resource.PipelineShaderStage{{Stage: 1, Module: 2, EntryPoint: "main"}},
		RenderPass: 3,
	}
	withBase := base
	withBase.BasePipeline = 4

	h1, err := GraphicsPipeline(base, r)
	require.NoError(t, err)
	h2, err := GraphicsPipeline(withBase, r)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "presence of a base pipeline must change the hash")
}
