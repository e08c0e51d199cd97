package replayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpucache/pipecache/internal/recorder"
	"github.com/gpucache/pipecache/internal/resource"
)

// recordingSink hands out sequential fake driver handles and records every
// descriptor it was asked to accept, so tests can assert on substitution.
type recordingSink struct {
	next              resource.Handle
	samplers          []resource.Sampler
	descriptorLayouts []resource.DescriptorSetLayout
	pipelineLayouts   []resource.PipelineLayout
	shaders           []resource.ShaderModule
	renderPasses      []resource.RenderPass
	computes          []resource.ComputePipeline
	graphics          []resource.GraphicsPipeline
	appInfo           []resource.ApplicationInfo
	deviceFeatures    []resource.PhysicalDeviceFeatures
	rejectSamplers    bool
}

func (s *recordingSink) handle() resource.Handle {
	s.next++
	return s.next
}

func (s *recordingSink) AcceptSampler(hash resource.Hash, v resource.Sampler) (resource.Handle, error) {
	if s.rejectSamplers {
		return 0, errRejected
	}
	s.samplers = append(s.samplers, v)
	return s.handle(), nil
}

func (s *recordingSink) AcceptDescriptorSetLayout(hash resource.Hash, v resource.DescriptorSetLayout) (resource.Handle, error) {
	s.descriptorLayouts = append(s.descriptorLayouts, v)
	return s.handle(), nil
}

func (s *recordingSink) AcceptPipelineLayout(hash resource.Hash, v resource.PipelineLayout) (resource.Handle, error) {
	s.pipelineLayouts = append(s.pipelineLayouts, v)
	return s.handle(), nil
}

func (s *recordingSink) AcceptShaderModule(hash resource.Hash, v resource.ShaderModule) (resource.Handle, error) {
	s.shaders = append(s.shaders, v)
	return s.handle(), nil
}

func (s *recordingSink) AcceptRenderPass(hash resource.Hash, v resource.RenderPass) (resource.Handle, error) {
	s.renderPasses = append(s.renderPasses, v)
	return s.handle(), nil
}

func (s *recordingSink) AcceptComputePipeline(hash resource.Hash, v resource.ComputePipeline) (resource.Handle, error) {
	s.computes = append(s.computes, v)
	return s.handle(), nil
}

func (s *recordingSink) AcceptGraphicsPipeline(hash resource.Hash, v resource.GraphicsPipeline) (resource.Handle, error) {
	s.graphics = append(s.graphics, v)
	return s.handle(), nil
}

func (s *recordingSink) AcceptApplicationInfo(hash resource.Hash, v resource.ApplicationInfo) (resource.Handle, error) {
	s.appInfo = append(s.appInfo, v)
	return s.handle(), nil
}

func (s *recordingSink) AcceptPhysicalDeviceFeatures(hash resource.Hash, v resource.PhysicalDeviceFeatures) (resource.Handle, error) {
	s.deviceFeatures = append(s.deviceFeatures, v)
	return s.handle(), nil
}

var errRejected = assert.AnError

func TestReplayRoundTripWithSubstitution(t *testing.T) {
	rec := recorder.New()
	require.NoError(t, rec.RecordSampler(1, resource.Sampler{MinLod: 1}))
	require.NoError(t, rec.RecordDescriptorSetLayout(10, resource.DescriptorSetLayout{
		Bindings: []resource.DescriptorSetLayoutBinding{
			{Binding: 0, DescriptorType: 1, DescriptorCount: 1, ImmutableSamplers: []resource.Handle{1}},
		},
	}))

	data, err := rec.Serialize()
	require.NoError(t, err)

	sink := &recordingSink{}
	res, err := Replay(data, sink)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Accepted())
	assert.Equal(t, 0, res.Rejected())

	require.Len(t, sink.descriptorLayouts, 1)
	delivered := sink.descriptorLayouts[0]
	require.Len(t, delivered.Bindings[0].ImmutableSamplers, 1)
	// The sampler's fake driver handle (1, the first handle() call) must
	// have been substituted in place of the hash the wire payload carried.
	assert.Equal(t, resource.Handle(1), delivered.Bindings[0].ImmutableSamplers[0])
}

func TestReplayHashMismatchSkipsButContinues(t *testing.T) {
	rec := recorder.New()
	require.NoError(t, rec.RecordSampler(1, resource.Sampler{MinLod: 1}))
	require.NoError(t, rec.RecordShaderModule(2, resource.ShaderModule{Code: []byte{1}}))

	data, err := rec.Serialize()
	require.NoError(t, err)

	// Corrupt the sampler's recorded hash so re-verification fails, while
	// leaving the shader module payload intact.
	corrupted := corruptFirstHash(t, data, `"samplers"`)

	sink := &recordingSink{}
	res, err := Replay(corrupted, sink)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Rejected())
	assert.Equal(t, 1, res.Accepted())
	require.Len(t, sink.shaders, 1, "shader module must still be delivered despite sampler mismatch")
}

func TestReplaySinkRejectionSkipsDependents(t *testing.T) {
	rec := recorder.New()
	require.NoError(t, rec.RecordSampler(1, resource.Sampler{MinLod: 1}))
	require.NoError(t, rec.RecordDescriptorSetLayout(10, resource.DescriptorSetLayout{
		Bindings: []resource.DescriptorSetLayoutBinding{
			{Binding: 0, DescriptorType: 1, DescriptorCount: 1, ImmutableSamplers: []resource.Handle{1}},
		},
	}))

	data, err := rec.Serialize()
	require.NoError(t, err)

	sink := &recordingSink{rejectSamplers: true}
	res, err := Replay(data, sink)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Rejected())
	assert.Empty(t, sink.descriptorLayouts, "DSL referencing a rejected sampler must not be delivered")
}

// corruptFirstHash finds the first `"hash":"N"` occurrence after marker and
// flips its trailing digit, invalidating that object's recorded hash while
// leaving the rest of the document well-formed JSON.
func corruptFirstHash(t *testing.T, data []byte, marker string) []byte {
	t.Helper()
	s := string(data)
	idx := indexOf(s, marker)
	require.GreaterOrEqual(t, idx, 0)
	hashIdx := indexOf(s[idx:], `"hash":"`)
	require.GreaterOrEqual(t, hashIdx, 0)
	start := idx + hashIdx + len(`"hash":"`)
	end := start
	for end < len(s) && s[end] != '"' {
		end++
	}
	digits := []byte(s[start:end])
	last := digits[len(digits)-1]
	if last == '9' {
		digits[len(digits)-1] = '0'
	} else {
		digits[len(digits)-1] = last + 1
	}
	return []byte(s[:start] + string(digits) + s[end:])
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
