package inference

import (
	"context"

	"go.trai.ch/temper/internal/adapters/cpu/kernels"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ExecutionContext holds the input shapes chosen for one stream of executions.
type ExecutionContext struct {
	engine *Engine
	inputs map[string]domain.Dims
	shapes map[string]domain.Dims
}

func newContext(e *Engine) *ExecutionContext {
	c := &ExecutionContext{engine: e, inputs: make(map[string]domain.Dims)}
	for _, b := range e.bindings {
		if b.IsInput && !b.Dims.IsDynamic() {
			c.inputs[b.Name] = b.Dims.Clone()
		}
	}
	return c
}

// SetInputShape fixes the dimensions of an input. Dynamic inputs must stay within their profile.
func (c *ExecutionContext) SetInputShape(name string, dims domain.Dims) error {
	_, b, ok := c.engine.binding(name)
	if !ok || !b.IsInput {
		return zerr.With(domain.ErrBindingNotFound, "input", name)
	}
	if len(dims) != len(b.Dims) || dims.IsDynamic() {
		return zerr.With(zerr.With(domain.ErrInvalidShape, "input", name), "dims", dims.String())
	}
	for i, d := range b.Dims {
		if d != domain.DynamicDim && dims[i] != d {
			return zerr.With(zerr.With(domain.ErrInvalidShape, "input", name), "dims", dims.String())
		}
	}
	if p, ok := c.engine.plan.Profile(name); ok && !p.Contains(dims) {
		return zerr.With(zerr.With(domain.ErrShapeOutOfProfile, "input", name), "dims", dims.String())
	}

	c.inputs[name] = dims.Clone()
	c.shapes = nil
	return nil
}

// BindingShape returns the dimensions of a binding under the current input shapes.
func (c *ExecutionContext) BindingShape(name string) (domain.Dims, error) {
	if _, _, ok := c.engine.binding(name); !ok {
		return nil, zerr.With(domain.ErrBindingNotFound, "binding", name)
	}
	shapes, err := c.resolve()
	if err != nil {
		return nil, err
	}
	return shapes[name].Clone(), nil
}

func (c *ExecutionContext) resolve() (map[string]domain.Dims, error) {
	if c.shapes != nil {
		return c.shapes, nil
	}
	for _, b := range c.engine.bindings {
		if b.IsInput {
			if _, ok := c.inputs[b.Name]; !ok {
				return nil, zerr.With(domain.ErrShapeNotSet, "input", b.Name)
			}
		}
	}
	shapes, err := kernels.InferShapes(c.layers(), c.inputs)
	if err != nil {
		return nil, err
	}
	c.shapes = shapes
	return shapes, nil
}

func (c *ExecutionContext) layers() []*domain.Layer {
	out := make([]*domain.Layer, len(c.engine.steps))
	for i, s := range c.engine.steps {
		out[i] = s.layer
	}
	return out
}

// Execute runs the plan reading inputs from and writing outputs to the device buffers.
// Batched inputs are split into samples that run concurrently when the plan allows it.
func (c *ExecutionContext) Execute(ctx context.Context, buffers []domain.DevicePtr) error {
	e := c.engine
	if e.closed {
		return zerr.With(domain.ErrExecutionFailed, "reason", "engine closed")
	}
	if len(buffers) != len(e.bindings) {
		return zerr.With(zerr.With(domain.ErrBindingCount, "buffers", len(buffers)), "bindings", len(e.bindings))
	}
	shapes, err := c.resolve()
	if err != nil {
		return err
	}

	inputs := make(map[string]*kernels.Tensor)
	for i, b := range e.bindings {
		if !b.IsInput {
			continue
		}
		t, err := c.readInput(b, shapes[b.Name], buffers[i])
		if err != nil {
			return err
		}
		inputs[b.Name] = t
	}

	outputs, err := c.run(ctx, inputs, shapes)
	if err != nil {
		return zerr.Wrap(err, domain.ErrExecutionFailed.Error())
	}

	for i, b := range e.bindings {
		if b.IsInput {
			continue
		}
		if err := e.device.CopyHostToDevice(buffers[i], encode(b.Type, outputs[b.Name].Data)); err != nil {
			return zerr.With(err, "binding", b.Name)
		}
	}
	return nil
}

func (c *ExecutionContext) readInput(b domain.Binding, dims domain.Dims, ptr domain.DevicePtr) (*kernels.Tensor, error) {
	raw := make([]byte, dims.Volume()*b.Type.Size())
	if err := c.engine.device.CopyDeviceToHost(raw, ptr); err != nil {
		return nil, zerr.With(err, "binding", b.Name)
	}
	t := &kernels.Tensor{Dims: dims.Clone()}
	switch b.Type {
	case domain.Int32:
		host := domain.HostTensor{Data: raw}
		ints := host.Int32s()
		t.Data = make([]float32, len(ints))
		for i, v := range ints {
			t.Data[i] = float32(v)
		}
	default:
		t.Data = domain.DecodeFloat32s(raw)
	}
	return t, nil
}

func encode(dt domain.DataType, values []float32) []byte {
	if dt != domain.Int32 {
		return domain.EncodeFloat32s(values)
	}
	ints := make([]int32, len(values))
	for i, v := range values {
		ints[i] = int32(v)
	}
	return domain.EncodeInt32s(ints)
}

// run executes the plan, splitting along the batch axis when every input and output is batched.
func (c *ExecutionContext) run(
	ctx context.Context,
	inputs map[string]*kernels.Tensor,
	shapes map[string]domain.Dims,
) (map[string]*kernels.Tensor, error) {
	batch, sampleShapes, ok := c.sampleShapes(shapes)
	if !ok || batch == 1 {
		return c.forward(ctx, inputs, shapes)
	}

	results := make([]map[string]*kernels.Tensor, batch)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.engine.parallelism)
	for n := range batch {
		g.Go(func() error {
			sample := make(map[string]*kernels.Tensor, len(inputs))
			for name, t := range inputs {
				sample[name] = slice(t, n, sampleShapes[name])
			}
			out, err := c.forward(gctx, sample, sampleShapes)
			if err != nil {
				return zerr.With(err, "sample", n)
			}
			results[n] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]*kernels.Tensor)
	for _, b := range c.engine.bindings {
		if b.IsInput {
			continue
		}
		full := kernels.NewTensor(shapes[b.Name])
		stride := sampleShapes[b.Name].Volume()
		for n, r := range results {
			copy(full.Data[n*stride:(n+1)*stride], r[b.Name].Data)
		}
		merged[b.Name] = full
	}
	return merged, nil
}

// sampleShapes infers the plan at batch one and reports whether the batch axis separates cleanly.
func (c *ExecutionContext) sampleShapes(shapes map[string]domain.Dims) (int, map[string]domain.Dims, bool) {
	batch := -1
	per := make(map[string]domain.Dims, len(c.inputs))
	for name, d := range c.inputs {
		if len(d) == 0 || (batch >= 0 && d[0] != batch) {
			return 0, nil, false
		}
		batch = d[0]
		one := d.Clone()
		one[0] = 1
		per[name] = one
	}
	if batch <= 1 {
		return batch, nil, batch == 1
	}

	sample, err := kernels.InferShapes(c.layers(), per)
	if err != nil {
		return 0, nil, false
	}
	for _, b := range c.engine.bindings {
		if b.IsInput {
			continue
		}
		full, one := shapes[b.Name], sample[b.Name]
		if len(full) == 0 || len(one) != len(full) || full[0] != batch || one[0] != 1 || !full[1:].Equal(one[1:]) {
			return 0, nil, false
		}
	}
	return batch, sample, true
}

func slice(t *kernels.Tensor, n int, dims domain.Dims) *kernels.Tensor {
	stride := dims.Volume()
	return &kernels.Tensor{Dims: dims, Data: t.Data[n*stride : (n+1)*stride]}
}

// forward runs every step in plan order.
func (c *ExecutionContext) forward(
	ctx context.Context,
	inputs map[string]*kernels.Tensor,
	shapes map[string]domain.Dims,
) (map[string]*kernels.Tensor, error) {
	values := make(map[string]*kernels.Tensor, len(shapes))
	for name, t := range inputs {
		values[name] = t
	}

	for _, s := range c.engine.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		in := make([]*kernels.Tensor, len(s.layer.Inputs))
		for i, name := range s.layer.Inputs {
			in[i] = values[name]
		}
		out := make([]*kernels.Tensor, len(s.layer.Outputs))
		for i := range s.layer.Outputs {
			out[i] = kernels.NewTensor(shapes[s.layer.Outputs[i].Name])
			values[s.layer.Outputs[i].Name] = out[i]
		}
		if err := s.kernel.Run(in, out); err != nil {
			return nil, zerr.With(zerr.With(err, "layer", s.layer.Name), "tactic", s.kernel.Tactic())
		}
	}
	return values, nil
}
