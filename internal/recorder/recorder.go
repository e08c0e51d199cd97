// Package recorder interns GPU pipeline-state descriptors by content hash,
// deduplicating repeat calls and rejecting structurally invalid ones
// (§4.2).
package recorder

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gpucache/pipecache/internal/pipehash"
	"github.com/gpucache/pipecache/internal/resource"
)

// Recorder owns one intern table per resource kind. It is not internally
// synchronized (§5 "Scheduling model"); callers that need concurrent
// producers use one Recorder per producer and merge archives afterward.
type Recorder struct {
	logger *slog.Logger

	samplers      *internTable[resource.Sampler]
	dsls          *internTable[resource.DescriptorSetLayout]
	layouts       *internTable[resource.PipelineLayout]
	shaders       *internTable[resource.ShaderModule]
	renderPasses  *internTable[resource.RenderPass]
	computes      *internTable[resource.ComputePipeline]
	graphics      *internTable[resource.GraphicsPipeline]

	appInfo         map[resource.Hash]resource.ApplicationInfo
	deviceFeatures  map[resource.Hash]resource.PhysicalDeviceFeatures
}

// Option configures a Recorder at construction.
type Option func(*Recorder)

// WithLogger overrides the default discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

// New creates an empty Recorder.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		samplers:       newInternTable[resource.Sampler](),
		dsls:           newInternTable[resource.DescriptorSetLayout](),
		layouts:        newInternTable[resource.PipelineLayout](),
		shaders:        newInternTable[resource.ShaderModule](),
		renderPasses:   newInternTable[resource.RenderPass](),
		computes:       newInternTable[resource.ComputePipeline](),
		graphics:       newInternTable[resource.GraphicsPipeline](),
		appInfo:        make(map[resource.Hash]resource.ApplicationInfo),
		deviceFeatures: make(map[resource.Hash]resource.PhysicalDeviceFeatures),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve implements pipehash.Resolver by dispatching to the per-kind
// handle table.
func (r *Recorder) Resolve(kind resource.Kind, h resource.Handle) (resource.Hash, bool) {
	switch kind {
	case resource.KindSampler:
		return r.samplers.resolve(h)
	case resource.KindDescriptorSetLayout:
		return r.dsls.resolve(h)
	case resource.KindPipelineLayout:
		return r.layouts.resolve(h)
	case resource.KindShaderModule:
		return r.shaders.resolve(h)
	case resource.KindRenderPass:
		return r.renderPasses.resolve(h)
	case resource.KindGraphicsPipeline:
		return r.graphics.resolve(h)
	default:
		return 0, false
	}
}

func (r *Recorder) rejectNote(kind resource.Kind, handle resource.Handle, err error) error {
	if errors.Is(err, pipehash.ErrUnsupportedExtension) {
		r.logger.Warn("rejecting descriptor: unsupported extension chain",
			"kind", kind.String(), "handle", uint64(handle))
	}
	return fmt.Errorf("record %s: %w", kind.String(), err)
}

// RecordSampler interns s under its content hash. Sampler has neither
// dependency references nor resolved substitution, so the canonical copy is
// stored verbatim.
func (r *Recorder) RecordSampler(handle resource.Handle, s resource.Sampler) error {
	hash, err := pipehash.Sampler(s)
	if err != nil {
		return r.rejectNote(resource.KindSampler, handle, err)
	}
	r.samplers.intern(handle, hash, s)
	return nil
}

// RecordDescriptorSetLayout interns d under its content hash. Immutable
// sampler handles are resolved and rewritten to the referenced sampler's
// hash in the interned copy (§9 "Handles-as-hashes").
func (r *Recorder) RecordDescriptorSetLayout(handle resource.Handle, d resource.DescriptorSetLayout) error {
	hash, err := pipehash.DescriptorSetLayout(d, r)
	if err != nil {
		return r.rejectNote(resource.KindDescriptorSetLayout, handle, err)
	}
	canonical := d
	canonical.Bindings = make([]resource.DescriptorSetLayoutBinding, len(d.Bindings))
	for i, b := range d.Bindings {
		canonical.Bindings[i] = b
		if len(b.ImmutableSamplers) == 0 {
			continue
		}
		canonical.Bindings[i].ImmutableSamplers = make([]resource.Handle, len(b.ImmutableSamplers))
		for j, h := range b.ImmutableSamplers {
			samplerHash, _ := r.samplers.resolve(h)
			canonical.Bindings[i].ImmutableSamplers[j] = resource.Handle(samplerHash)
		}
	}
	r.dsls.intern(handle, hash, canonical)
	return nil
}

// RecordPipelineLayout interns p under its content hash, rewriting each
// referenced descriptor set layout handle to its content hash.
func (r *Recorder) RecordPipelineLayout(handle resource.Handle, p resource.PipelineLayout) error {
	hash, err := pipehash.PipelineLayout(p, r)
	if err != nil {
		return r.rejectNote(resource.KindPipelineLayout, handle, err)
	}
	canonical := p
	canonical.SetLayouts = make([]resource.Handle, len(p.SetLayouts))
	for i, h := range p.SetLayouts {
		dslHash, _ := r.dsls.resolve(h)
		canonical.SetLayouts[i] = resource.Handle(dslHash)
	}
	r.layouts.intern(handle, hash, canonical)
	return nil
}

// RecordShaderModule interns s under its content hash.
func (r *Recorder) RecordShaderModule(handle resource.Handle, s resource.ShaderModule) error {
	hash, err := pipehash.ShaderModule(s)
	if err != nil {
		return r.rejectNote(resource.KindShaderModule, handle, err)
	}
	r.shaders.intern(handle, hash, s)
	return nil
}

// RecordRenderPass interns rp under its content hash.
func (r *Recorder) RecordRenderPass(handle resource.Handle, rp resource.RenderPass) error {
	hash, err := pipehash.RenderPass(rp)
	if err != nil {
		return r.rejectNote(resource.KindRenderPass, handle, err)
	}
	r.renderPasses.intern(handle, hash, rp)
	return nil
}

func (r *Recorder) resolveShaderStage(stage resource.PipelineShaderStage) resource.PipelineShaderStage {
	moduleHash, _ := r.shaders.resolve(stage.Module)
	canonical := stage
	canonical.Module = resource.Handle(moduleHash)
	return canonical
}

// RecordComputePipeline interns p under its content hash, rewriting its
// pipeline layout and shader module handles to their content hashes.
func (r *Recorder) RecordComputePipeline(handle resource.Handle, p resource.ComputePipeline) error {
	hash, err := pipehash.ComputePipeline(p, r)
	if err != nil {
		return r.rejectNote(resource.KindComputePipeline, handle, err)
	}
	layoutHash, _ := r.layouts.resolve(p.Layout)
	canonical := p
	canonical.Layout = resource.Handle(layoutHash)
	canonical.Stage = r.resolveShaderStage(p.Stage)
	r.computes.intern(handle, hash, canonical)
	return nil
}

// RecordGraphicsPipeline interns p under its content hash, rewriting its
// pipeline layout, shader module, render pass, and (if present) base
// pipeline handles to their content hashes.
func (r *Recorder) RecordGraphicsPipeline(handle resource.Handle, p resource.GraphicsPipeline) error {
	hash, err := pipehash.GraphicsPipeline(p, r)
	if err != nil {
		return r.rejectNote(resource.KindGraphicsPipeline, handle, err)
	}
	canonical := p
	layoutHash, _ := r.layouts.resolve(p.Layout)
	canonical.Layout = resource.Handle(layoutHash)
	canonical.Stages = make([]resource.PipelineShaderStage, len(p.Stages))
	for i, stage := range p.Stages {
		canonical.Stages[i] = r.resolveShaderStage(stage)
	}
	rpHash, _ := r.renderPasses.resolve(p.RenderPass)
	canonical.RenderPass = resource.Handle(rpHash)
	if p.BasePipeline != 0 {
		baseHash, _ := r.graphics.resolve(p.BasePipeline)
		canonical.BasePipeline = resource.Handle(baseHash)
	}
	r.graphics.intern(handle, hash, canonical)
	return nil
}

// RecordApplicationInfo interns the singleton application-info record. A
// Recorder holds at most one: a second call with content that hashes
// differently from the one already held is rejected rather than silently
// overwriting it or leaving Serialize to pick between the two
// nondeterministically.
func (r *Recorder) RecordApplicationInfo(a resource.ApplicationInfo) error {
	hash, err := pipehash.ApplicationInfo(a)
	if err != nil {
		return r.rejectNote(resource.KindApplicationInfo, 0, err)
	}
	if _, exists := r.appInfo[hash]; exists {
		return nil
	}
	if len(r.appInfo) > 0 {
		return r.rejectNote(resource.KindApplicationInfo, 0, ErrSingletonConflict)
	}
	r.appInfo[hash] = a
	return nil
}

// RecordPhysicalDeviceFeatures interns the singleton device-features record,
// rejecting a second, differently-hashed call the same way
// RecordApplicationInfo does.
func (r *Recorder) RecordPhysicalDeviceFeatures(d resource.PhysicalDeviceFeatures) error {
	hash, err := pipehash.PhysicalDeviceFeatures(d)
	if err != nil {
		return r.rejectNote(resource.KindPhysicalDeviceFeatures, 0, err)
	}
	if _, exists := r.deviceFeatures[hash]; exists {
		return nil
	}
	if len(r.deviceFeatures) > 0 {
		return r.rejectNote(resource.KindPhysicalDeviceFeatures, 0, ErrSingletonConflict)
	}
	r.deviceFeatures[hash] = d
	return nil
}

// Len returns the number of interned entries for kind. Used by tests to
// assert dedup behavior (§8 "For any two successive record_X(h, d) calls").
func (r *Recorder) Len(kind resource.Kind) int {
	switch kind {
	case resource.KindSampler:
		return r.samplers.len()
	case resource.KindDescriptorSetLayout:
		return r.dsls.len()
	case resource.KindPipelineLayout:
		return r.layouts.len()
	case resource.KindShaderModule:
		return r.shaders.len()
	case resource.KindRenderPass:
		return r.renderPasses.len()
	case resource.KindComputePipeline:
		return r.computes.len()
	case resource.KindGraphicsPipeline:
		return r.graphics.len()
	case resource.KindApplicationInfo:
		return len(r.appInfo)
	case resource.KindPhysicalDeviceFeatures:
		return len(r.deviceFeatures)
	default:
		return 0
	}
}
