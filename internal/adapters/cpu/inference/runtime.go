// Package inference implements ports.Runtime for plans produced by the CPU compiler.
package inference

import (
	"runtime"

	"go.trai.ch/temper/internal/adapters/cpu/compiler"
	"go.trai.ch/temper/internal/adapters/cpu/kernels"
	"go.trai.ch/temper/internal/adapters/cpu/plan"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runtime deserializes plans into engines that execute on a device.
type Runtime struct {
	device      ports.Device
	deviceID    string
	parallelism int
}

// New creates a runtime bound to device.
func New(device ports.Device) *Runtime {
	return &Runtime{
		device:      device,
		deviceID:    compiler.HostDevice().ID(),
		parallelism: runtime.GOMAXPROCS(0),
	}
}

// Deserialize decodes an artifact and resolves every tactic it names.
func (r *Runtime) Deserialize(artifact domain.CompiledArtifact) (ports.Engine, error) {
	p, err := plan.Decode(artifact, r.deviceID)
	if err != nil {
		return nil, err
	}

	steps := make([]step, len(p.Steps))
	for i, s := range p.Steps {
		k, err := kernels.Lookup(s.Layer, s.Tactic)
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrPlanDecodeFailed.Error())
		}
		steps[i] = step{layer: s.Layer, kernel: k}
	}

	bindings := make([]domain.Binding, 0, len(p.Inputs)+len(p.Outputs))
	for _, t := range p.Inputs {
		bindings = append(bindings, domain.Binding{Name: t.Name, IsInput: true, Type: t.Type, Dims: t.Dims.Clone()})
	}
	for _, t := range p.Outputs {
		bindings = append(bindings, domain.Binding{Name: t.Name, Type: t.Type, Dims: t.Dims.Clone()})
	}

	return &Engine{
		plan:        p,
		steps:       steps,
		bindings:    bindings,
		device:      r.device,
		parallelism: r.parallelism,
	}, nil
}

type step struct {
	layer  *domain.Layer
	kernel kernels.Kernel
}

// Engine is a deserialized plan.
type Engine struct {
	plan        *plan.Plan
	steps       []step
	bindings    []domain.Binding
	device      ports.Device
	parallelism int
	closed      bool
}

// Bindings returns inputs followed by outputs.
func (e *Engine) Bindings() []domain.Binding {
	out := make([]domain.Binding, len(e.bindings))
	copy(out, e.bindings)
	return out
}

// NewExecutionContext creates an execution context with no input shapes set.
func (e *Engine) NewExecutionContext() (ports.ExecutionContext, error) {
	if e.closed {
		return nil, zerr.With(domain.ErrExecutionFailed, "reason", "engine closed")
	}
	return newContext(e), nil
}

// Close releases the engine. Execution contexts created from it become unusable.
func (e *Engine) Close() error {
	e.closed = true
	return nil
}

func (e *Engine) binding(name string) (int, domain.Binding, bool) {
	for i, b := range e.bindings {
		if b.Name == name {
			return i, b, true
		}
	}
	return 0, domain.Binding{}, false
}
