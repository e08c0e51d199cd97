// Package replayer parses a serialized recorder payload and delivers
// reconstructed descriptors to a caller-supplied Sink in topological order,
// re-verifying each content hash before delivery (§4.3).
package replayer

import (
	"encoding/json"
	"fmt"

	"github.com/gpucache/pipecache/internal/pipehash"
	"github.com/gpucache/pipecache/internal/resource"
)

// ObjectResult reports the outcome of replaying one object.
type ObjectResult struct {
	Kind     resource.Kind
	Hash     resource.Hash
	Accepted bool
	Err      error
}

// Result aggregates the outcome of one Replay call, in delivery order.
type Result struct {
	Objects []ObjectResult
}

// Accepted returns the number of objects the sink accepted.
func (r *Result) Accepted() int {
	n := 0
	for _, o := range r.Objects {
		if o.Accepted {
			n++
		}
	}
	return n
}

// Rejected returns the number of objects skipped, whether from a hash
// mismatch, an unresolved dependency, or the sink itself rejecting them.
func (r *Result) Rejected() int {
	return len(r.Objects) - r.Accepted()
}

type knownResolver struct {
	known map[resource.Kind]map[resource.Hash]struct{}
}

func (r *knownResolver) Resolve(kind resource.Kind, h resource.Handle) (resource.Hash, bool) {
	hash := resource.Hash(h)
	if _, ok := r.known[kind][hash]; !ok {
		return 0, false
	}
	return hash, true
}

// Replay parses data as a §6 wire document and drives sink over every
// object it contains, in dependency order. A malformed payload is a hard
// error; a single object failing re-verification, dependency resolution, or
// sink acceptance is recorded in the returned Result and replay continues
// with its siblings.
func Replay(data []byte, sink Sink) (*Result, error) {
	var doc wireDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("replayer: parse payload: %w", err)
	}

	res := &Result{}
	known := make(map[resource.Kind]map[resource.Hash]struct{})
	sinkHandles := make(map[resource.Kind]map[resource.Hash]resource.Handle)
	for _, k := range resource.Kinds() {
		known[k] = make(map[resource.Hash]struct{})
		sinkHandles[k] = make(map[resource.Hash]resource.Handle)
	}
	resolver := &knownResolver{known: known}

	record := func(kind resource.Kind, hash resource.Hash, err error) {
		res.Objects = append(res.Objects, ObjectResult{Kind: kind, Hash: hash, Accepted: err == nil, Err: err})
	}
	accept := func(kind resource.Kind, hash resource.Hash, handle resource.Handle) {
		known[kind][hash] = struct{}{}
		sinkHandles[kind][hash] = handle
	}
	substitute := func(kind resource.Kind, dep resource.Handle) resource.Handle {
		handle, ok := sinkHandles[kind][resource.Hash(dep)]
		if !ok {
			return dep
		}
		return handle
	}

	for _, w := range doc.Samplers {
		s, hash, err := samplerFromWire(w)
		if err == nil {
			if computed, herr := pipehash.Sampler(s); herr != nil {
				err = herr
			} else if computed != hash {
				err = ErrHashMismatch
			}
		}
		if err != nil {
			record(resource.KindSampler, hash, err)
			continue
		}
		handle, err := sink.AcceptSampler(hash, s)
		if err != nil {
			record(resource.KindSampler, hash, err)
			continue
		}
		accept(resource.KindSampler, hash, handle)
		record(resource.KindSampler, hash, nil)
	}

	for _, w := range doc.DescriptorSetLayouts {
		d, hash, err := dslFromWire(w)
		if err == nil {
			if computed, herr := pipehash.DescriptorSetLayout(d, resolver); herr != nil {
				err = herr
			} else if computed != hash {
				err = ErrHashMismatch
			}
		}
		if err != nil {
			record(resource.KindDescriptorSetLayout, hash, err)
			continue
		}
		delivered := d
		delivered.Bindings = make([]resource.DescriptorSetLayoutBinding, len(d.Bindings))
		for i, b := range d.Bindings {
			delivered.Bindings[i] = b
			if len(b.ImmutableSamplers) == 0 {
				continue
			}
			delivered.Bindings[i].ImmutableSamplers = make([]resource.Handle, len(b.ImmutableSamplers))
			for j, h := range b.ImmutableSamplers {
				delivered.Bindings[i].ImmutableSamplers[j] = substitute(resource.KindSampler, h)
			}
		}
		handle, err := sink.AcceptDescriptorSetLayout(hash, delivered)
		if err != nil {
			record(resource.KindDescriptorSetLayout, hash, err)
			continue
		}
		accept(resource.KindDescriptorSetLayout, hash, handle)
		record(resource.KindDescriptorSetLayout, hash, nil)
	}

	for _, w := range doc.PipelineLayouts {
		p, hash, err := pipelineLayoutFromWire(w)
		if err == nil {
			if computed, herr := pipehash.PipelineLayout(p, resolver); herr != nil {
				err = herr
			} else if computed != hash {
				err = ErrHashMismatch
			}
		}
		if err != nil {
			record(resource.KindPipelineLayout, hash, err)
			continue
		}
		delivered := p
		delivered.SetLayouts = make([]resource.Handle, len(p.SetLayouts))
		for i, h := range p.SetLayouts {
			delivered.SetLayouts[i] = substitute(resource.KindDescriptorSetLayout, h)
		}
		handle, err := sink.AcceptPipelineLayout(hash, delivered)
		if err != nil {
			record(resource.KindPipelineLayout, hash, err)
			continue
		}
		accept(resource.KindPipelineLayout, hash, handle)
		record(resource.KindPipelineLayout, hash, nil)
	}

	for _, w := range doc.ShaderModules {
		s, hash, err := shaderModuleFromWire(w)
		if err == nil {
			if computed, herr := pipehash.ShaderModule(s); herr != nil {
				err = herr
			} else if computed != hash {
				err = ErrHashMismatch
			}
		}
		if err != nil {
			record(resource.KindShaderModule, hash, err)
			continue
		}
		handle, err := sink.AcceptShaderModule(hash, s)
		if err != nil {
			record(resource.KindShaderModule, hash, err)
			continue
		}
		accept(resource.KindShaderModule, hash, handle)
		record(resource.KindShaderModule, hash, nil)
	}

	for _, w := range doc.RenderPasses {
		rp, hash, err := renderPassFromWire(w)
		if err == nil {
			if computed, herr := pipehash.RenderPass(rp); herr != nil {
				err = herr
			} else if computed != hash {
				err = ErrHashMismatch
			}
		}
		if err != nil {
			record(resource.KindRenderPass, hash, err)
			continue
		}
		handle, err := sink.AcceptRenderPass(hash, rp)
		if err != nil {
			record(resource.KindRenderPass, hash, err)
			continue
		}
		accept(resource.KindRenderPass, hash, handle)
		record(resource.KindRenderPass, hash, nil)
	}

	substituteStage := func(stage resource.PipelineShaderStage) resource.PipelineShaderStage {
		out := stage
		out.Module = substitute(resource.KindShaderModule, stage.Module)
		return out
	}

	for _, w := range doc.ComputePipelines {
		p, hash, err := computePipelineFromWire(w)
		if err == nil {
			if computed, herr := pipehash.ComputePipeline(p, resolver); herr != nil {
				err = herr
			} else if computed != hash {
				err = ErrHashMismatch
			}
		}
		if err != nil {
			record(resource.KindComputePipeline, hash, err)
			continue
		}
		delivered := p
		delivered.Layout = substitute(resource.KindPipelineLayout, p.Layout)
		delivered.Stage = substituteStage(p.Stage)
		handle, err := sink.AcceptComputePipeline(hash, delivered)
		if err != nil {
			record(resource.KindComputePipeline, hash, err)
			continue
		}
		accept(resource.KindComputePipeline, hash, handle)
		record(resource.KindComputePipeline, hash, nil)
	}

	for _, w := range doc.GraphicsPipelines {
		p, hash, err := graphicsPipelineFromWire(w)
		if err == nil {
			if computed, herr := pipehash.GraphicsPipeline(p, resolver); herr != nil {
				err = herr
			} else if computed != hash {
				err = ErrHashMismatch
			}
		}
		if err != nil {
			record(resource.KindGraphicsPipeline, hash, err)
			continue
		}
		delivered := p
		delivered.Layout = substitute(resource.KindPipelineLayout, p.Layout)
		delivered.Stages = make([]resource.PipelineShaderStage, len(p.Stages))
		for i, stage := range p.Stages {
			delivered.Stages[i] = substituteStage(stage)
		}
		delivered.RenderPass = substitute(resource.KindRenderPass, p.RenderPass)
		if p.BasePipeline != 0 {
			delivered.BasePipeline = substitute(resource.KindGraphicsPipeline, p.BasePipeline)
		}
		handle, err := sink.AcceptGraphicsPipeline(hash, delivered)
		if err != nil {
			record(resource.KindGraphicsPipeline, hash, err)
			continue
		}
		accept(resource.KindGraphicsPipeline, hash, handle)
		record(resource.KindGraphicsPipeline, hash, nil)
	}

	if doc.ApplicationInfo != nil {
		a, hash, err := applicationInfoFromWire(*doc.ApplicationInfo)
		if err == nil {
			if computed, herr := pipehash.ApplicationInfo(a); herr != nil {
				err = herr
			} else if computed != hash {
				err = ErrHashMismatch
			}
		}
		if err != nil {
			record(resource.KindApplicationInfo, hash, err)
		} else if handle, err := sink.AcceptApplicationInfo(hash, a); err != nil {
			record(resource.KindApplicationInfo, hash, err)
		} else {
			accept(resource.KindApplicationInfo, hash, handle)
			record(resource.KindApplicationInfo, hash, nil)
		}
	}

	if doc.PhysicalDeviceFeatures != nil {
		d, hash, err := physicalDeviceFeaturesFromWire(*doc.PhysicalDeviceFeatures)
		if err == nil {
			if computed, herr := pipehash.PhysicalDeviceFeatures(d); herr != nil {
				err = herr
			} else if computed != hash {
				err = ErrHashMismatch
			}
		}
		if err != nil {
			record(resource.KindPhysicalDeviceFeatures, hash, err)
		} else if handle, err := sink.AcceptPhysicalDeviceFeatures(hash, d); err != nil {
			record(resource.KindPhysicalDeviceFeatures, hash, err)
		} else {
			accept(resource.KindPhysicalDeviceFeatures, hash, handle)
			record(resource.KindPhysicalDeviceFeatures, hash, nil)
		}
	}

	return res, nil
}
