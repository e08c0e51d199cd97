package recorder

import "encoding/json"

// Serialize emits the entire interned state as the textual wire format of
// SPEC_FULL.md §6. Per-kind arrays are built in ascending-hash order via
// sortedHashes, and json.Marshal preserves struct field declaration order,
// so two Recorders with identical intern state always produce byte-identical
// output (§8 "parse(serialize(R)) yields an equivalent recorder state").
func (r *Recorder) Serialize() ([]byte, error) {
	doc := wireDoc{Version: schemaVersion}

	for _, h := range r.samplers.sortedHashes() {
		v, _ := r.samplers.get(h)
		doc.Samplers = append(doc.Samplers, samplerToWire(h, v))
	}
	for _, h := range r.dsls.sortedHashes() {
		v, _ := r.dsls.get(h)
		doc.DescriptorSetLayouts = append(doc.DescriptorSetLayouts, dslToWire(h, v))
	}
	for _, h := range r.layouts.sortedHashes() {
		v, _ := r.layouts.get(h)
		doc.PipelineLayouts = append(doc.PipelineLayouts, pipelineLayoutToWire(h, v))
	}
	for _, h := range r.shaders.sortedHashes() {
		v, _ := r.shaders.get(h)
		doc.ShaderModules = append(doc.ShaderModules, shaderModuleToWire(h, v))
	}
	for _, h := range r.renderPasses.sortedHashes() {
		v, _ := r.renderPasses.get(h)
		doc.RenderPasses = append(doc.RenderPasses, renderPassToWire(h, v))
	}
	for _, h := range r.computes.sortedHashes() {
		v, _ := r.computes.get(h)
		doc.ComputePipelines = append(doc.ComputePipelines, computePipelineToWire(h, v))
	}
	for _, h := range r.graphics.sortedHashes() {
		v, _ := r.graphics.get(h)
		doc.GraphicsPipelines = append(doc.GraphicsPipelines, graphicsPipelineToWire(h, v))
	}

	// RecordApplicationInfo/RecordPhysicalDeviceFeatures enforce at most one
	// entry per Recorder (ErrSingletonConflict on a second, differently-hashed
	// call), so each map holds zero or one entry and iteration order never
	// matters here.
	for hash, a := range r.appInfo {
		doc.ApplicationInfo = &wireApplicationInfo{
			Hash:               hash.String(),
			ApplicationName:    a.ApplicationName,
			ApplicationVersion: a.ApplicationVersion,
			EngineName:         a.EngineName,
			EngineVersion:      a.EngineVersion,
			APIVersion:         a.APIVersion,
		}
	}
	for hash, d := range r.deviceFeatures {
		features := make([]bool, len(d.Features))
		copy(features, d.Features[:])
		doc.PhysicalDeviceFeatures = &wirePhysicalDeviceFeatures{
			Hash:     hash.String(),
			Features: features,
		}
	}

	return json.MarshalIndent(doc, "", "  ")
}
