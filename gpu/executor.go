//go:build !nogpu

package gpu

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tess"
)

//go:embed shaders/evaluate.wgsl
var evaluateShaderWGSL string

// configSize is the byte size of the Config uniform in evaluate.wgsl.
const configSize = 16

// Executor evaluates tessellation descriptors with a GPU compute
// pipeline. It implements tess.Executor and can be injected with
// tess.WithExecutor.
//
// The shader consumes the exact 48-byte descriptor records produced by
// tess.EncodeDescriptors and writes packed 8-byte vertex records, so the
// binary layouts in the tess package are load-bearing here.
//
// Note: full GPU buffer binding requires HAL API extensions. The pipeline
// is compiled and created for verification, and evaluation currently runs
// the CPU mirror of the shader kernel over the encoded descriptor bytes.
type Executor struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue

	// Compute pipeline
	pipeline hal.ComputePipeline

	// Shader module (cached)
	shaderModule hal.ShaderModule

	// Pipeline layout and bind group layout
	pipelineLayout hal.PipelineLayout
	bindLayout     hal.BindGroupLayout

	// Compiled SPIR-V (cached for verification)
	spirvCode []uint32

	// State
	initialized bool
	shaderReady bool
}

var _ tess.Executor = (*Executor)(nil)

// NewExecutor creates a GPU executor on the given device and queue.
// Returns an error if GPU compute is not supported.
func NewExecutor(device hal.Device, queue hal.Queue) (*Executor, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("gpu: %w: device and queue are required", ErrNotInitialized)
	}

	e := &Executor{
		device: device,
		queue:  queue,
	}

	if err := e.init(); err != nil {
		e.Destroy()
		return nil, err
	}

	return e, nil
}

// init initializes GPU resources (shader module, layouts, pipeline).
func (e *Executor) init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Compile WGSL to SPIR-V
	spirvBytes, err := naga.Compile(evaluateShaderWGSL)
	if err != nil {
		return fmt.Errorf("gpu: failed to compile shader: %w", err)
	}

	// Convert bytes to uint32 slice for SPIR-V
	e.spirvCode = make([]uint32, len(spirvBytes)/4)
	for i := range e.spirvCode {
		e.spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	e.shaderReady = true

	shaderModule, err := e.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "evaluate_shader",
		Source: hal.ShaderSource{
			SPIRV: e.spirvCode,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create shader module: %w", err)
	}
	e.shaderModule = shaderModule

	if err := e.createBindGroupLayout(); err != nil {
		return err
	}

	layout, err := e.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "evaluate_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{e.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create pipeline layout: %w", err)
	}
	e.pipelineLayout = layout

	pipeline, err := e.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "evaluate_pipeline",
		Layout: e.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     e.shaderModule,
			EntryPoint: "cs_evaluate",
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create evaluate pipeline: %w", err)
	}
	e.pipeline = pipeline

	e.initialized = true
	return nil
}

// createBindGroupLayout creates the bind group layout for the pipeline:
// config uniform, read-only descriptor storage, read-write vertex storage.
func (e *Executor) createBindGroupLayout() error {
	layout, err := e.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "evaluate_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: configSize,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{
					Type: gputypes.BufferBindingTypeReadOnlyStorage,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{
					Type: gputypes.BufferBindingTypeStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create bind group layout: %w", err)
	}
	e.bindLayout = layout
	return nil
}

// Execute evaluates all descriptors into buf. It satisfies tess.Executor:
// when it returns, every descriptor's range has been written.
func (e *Executor) Execute(descriptors []tess.Descriptor, buf []tess.VertexRecord) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return fmt.Errorf("gpu: executor: %w", ErrNotInitialized)
	}

	if len(descriptors) == 0 {
		return nil
	}

	// Encode to the wire layout the shader consumes. This validates the
	// data conversion even while dispatch runs on the CPU mirror.
	encoded := tess.EncodeDescriptors(descriptors)

	return evaluateEncoded(encoded, buf)
}

// evaluateEncoded is the CPU mirror of the evaluate.wgsl kernel: it
// decodes the wire-layout descriptors and evaluates them with the same
// algorithm the shader uses. It serves as the reference implementation
// and fallback until HAL buffer binding lands.
func evaluateEncoded(encoded []byte, buf []tess.VertexRecord) error {
	for off := 0; off+tess.DescriptorSize <= len(encoded); off += tess.DescriptorSize {
		d, err := tess.DecodeDescriptor(encoded[off : off+tess.DescriptorSize])
		if err != nil {
			return fmt.Errorf("gpu: bad descriptor at offset %d: %w", off, err)
		}
		if int(d.VertexIndex)+int(d.VertexCount) > len(buf) {
			return fmt.Errorf("gpu: descriptor at offset %d exceeds buffer size %d", off, len(buf))
		}
		tess.EvaluateDescriptor(d, buf)
	}
	return nil
}

// IsInitialized returns whether the executor is initialized.
func (e *Executor) IsInitialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// IsShaderReady returns whether the shader compiled successfully.
func (e *Executor) IsShaderReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shaderReady
}

// SPIRVCode returns the compiled SPIR-V code (for debugging/verification).
func (e *Executor) SPIRVCode() []uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spirvCode
}

// Destroy releases all GPU resources.
func (e *Executor) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.device == nil {
		return
	}

	if e.pipeline != nil {
		e.device.DestroyComputePipeline(e.pipeline)
		e.pipeline = nil
	}
	if e.pipelineLayout != nil {
		e.device.DestroyPipelineLayout(e.pipelineLayout)
		e.pipelineLayout = nil
	}
	if e.bindLayout != nil {
		e.device.DestroyBindGroupLayout(e.bindLayout)
		e.bindLayout = nil
	}
	if e.shaderModule != nil {
		e.device.DestroyShaderModule(e.shaderModule)
		e.shaderModule = nil
	}

	e.initialized = false
}
