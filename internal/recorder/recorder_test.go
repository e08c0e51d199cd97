package recorder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpucache/pipecache/internal/resource"
)

// TestRecordSamplerDedup implements scenario 1 of SPEC_FULL.md §8: recording
// the same sampler descriptor under two different handles interns it once.
func TestRecordSamplerDedup(t *testing.T) {
	r := New()

	s := resource.Sampler{MagFilter: 1, MinLod: 10.0, MaxLod: 12.0}
	require.NoError(t, r.RecordSampler(1, s))
	require.NoError(t, r.RecordSampler(2, s))

	assert.Equal(t, 1, r.Len(resource.KindSampler))
}

func TestRecordSamplerFieldChangeNoDedup(t *testing.T) {
	r := New()

	require.NoError(t, r.RecordSampler(1, resource.Sampler{MinLod: 10.0}))
	require.NoError(t, r.RecordSampler(2, resource.Sampler{MinLod: 11.0}))

	assert.Equal(t, 2, r.Len(resource.KindSampler))
}

// TestRecordSamplerUnsupportedExtensionRejected implements scenario 2 of
// SPEC_FULL.md §8: an unrecognized extension chain entry must be rejected
// and must not pollute the intern table.
func TestRecordSamplerUnsupportedExtensionRejected(t *testing.T) {
	r := New()

	err := r.RecordSampler(1, resource.Sampler{
		Chain: []resource.ExtensionRecord{resource.UnknownExtension{Tag: 999}},
	})

	require.Error(t, err)
	assert.Equal(t, 0, r.Len(resource.KindSampler))
}

// TestRecordDescriptorSetLayoutResolvesHandle verifies the
// "Handles-as-hashes" rewrite: a DSL's immutable sampler handle must be
// substituted with the sampler's resolved content hash in the canonical
// interned copy, not left as the caller's handle.
func TestRecordDescriptorSetLayoutResolvesHandle(t *testing.T) {
	r := New()

	sampler := resource.Sampler{MinLod: 1}
	require.NoError(t, r.RecordSampler(7, sampler))
	samplerHash, ok := r.Resolve(resource.KindSampler, 7)
	require.True(t, ok)

	dsl := resource.DescriptorSetLayout{
		Bindings: []resource.DescriptorSetLayoutBinding{
			{Binding: 0, DescriptorType: 1, DescriptorCount: 1, ImmutableSamplers: []resource.Handle{7}},
		},
	}
	require.NoError(t, r.RecordDescriptorSetLayout(10, dsl))

	dslHash, ok := r.Resolve(resource.KindDescriptorSetLayout, 10)
	require.True(t, ok)

	doc := mustParseDoc(t, r)
	require.Len(t, doc.DescriptorSetLayouts, 1)
	stored := doc.DescriptorSetLayouts[0]
	assert.Equal(t, dslHash.String(), stored.Hash)
	require.Len(t, stored.Bindings[0].ImmutableSamplers, 1)
	assert.Equal(t, samplerHash.String(), stored.Bindings[0].ImmutableSamplers[0])
}

// TestRecordDescriptorSetLayoutUnknownHandleRejected implements scenario 3
// of SPEC_FULL.md §8: referencing a handle never recorded in the relevant
// kind's intern table must fail the whole call.
func TestRecordDescriptorSetLayoutUnknownHandleRejected(t *testing.T) {
	r := New()

	dsl := resource.DescriptorSetLayout{
		Bindings: []resource.DescriptorSetLayoutBinding{
			{Binding: 0, DescriptorType: 1, DescriptorCount: 1, ImmutableSamplers: []resource.Handle{42}},
		},
	}

	err := r.RecordDescriptorSetLayout(1, dsl)
	require.Error(t, err)
	assert.Equal(t, 0, r.Len(resource.KindDescriptorSetLayout))
}

func TestSerializeDeterministic(t *testing.T) {
	build := func() *Recorder {
		r := New()
		require.NoError(t, r.RecordSampler(1, resource.Sampler{MinLod: 1}))
		require.NoError(t, r.RecordSampler(2, resource.Sampler{MinLod: 2}))
		require.NoError(t, r.RecordShaderModule(3, resource.ShaderModule{Code: []byte{1, 2, 3, 4}}))
		return r
	}

	a, err := build().Serialize()
	require.NoError(t, err)
	b, err := build().Serialize()
	require.NoError(t, err)

	assert.Equal(t, a, b, "Serialize must be byte-identical for equivalent intern state")
}

func TestSerializeShaderModuleBase64(t *testing.T) {
	r := New()
	require.NoError(t, r.RecordShaderModule(1, resource.ShaderModule{Code: []byte{0xDE, 0xAD, 0xBE, 0xEF}}))

	doc := mustParseDoc(t, r)
	require.Len(t, doc.ShaderModules, 1)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, []byte(doc.ShaderModules[0].Code))
}

// TestRecordApplicationInfoSingletonConflict ensures a second, differently
// hashed application-info record is rejected rather than leaving Serialize to
// pick between two singletons nondeterministically.
func TestRecordApplicationInfoSingletonConflict(t *testing.T) {
	r := New()

	require.NoError(t, r.RecordApplicationInfo(resource.ApplicationInfo{ApplicationName: "first"}))
	err := r.RecordApplicationInfo(resource.ApplicationInfo{ApplicationName: "second"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSingletonConflict)
	assert.Equal(t, 1, r.Len(resource.KindApplicationInfo))
}

// TestRecordApplicationInfoSameContentIsIdempotent confirms recording the
// same application info twice (same content, same hash) is still accepted,
// matching the dedup behavior of every other Record* method.
func TestRecordApplicationInfoSameContentIsIdempotent(t *testing.T) {
	r := New()

	info := resource.ApplicationInfo{ApplicationName: "demo"}
	require.NoError(t, r.RecordApplicationInfo(info))
	require.NoError(t, r.RecordApplicationInfo(info))

	assert.Equal(t, 1, r.Len(resource.KindApplicationInfo))
}

// TestRecordPhysicalDeviceFeaturesSingletonConflict mirrors
// TestRecordApplicationInfoSingletonConflict for the other singleton kind.
func TestRecordPhysicalDeviceFeaturesSingletonConflict(t *testing.T) {
	r := New()

	var first, second resource.PhysicalDeviceFeatures
	first.Features[0] = true
	second.Features[1] = true

	require.NoError(t, r.RecordPhysicalDeviceFeatures(first))
	err := r.RecordPhysicalDeviceFeatures(second)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSingletonConflict)
	assert.Equal(t, 1, r.Len(resource.KindPhysicalDeviceFeatures))
}

func mustParseDoc(t *testing.T, r *Recorder) wireDoc {
	t.Helper()
	data, err := r.Serialize()
	require.NoError(t, err)
	var doc wireDoc
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}
