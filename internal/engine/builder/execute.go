package builder

import (
	"context"
	"errors"

	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
	"go.trai.ch/zerr"
)

// execute loads the artifact and runs the sample input through it once.
// The engine and every device buffer are released on all paths.
func (b *Builder) execute(
	ctx context.Context,
	report *domain.BuildReport,
	artifact domain.CompiledArtifact,
	input domain.HostTensor,
) (err error) {
	var engine ports.Engine
	err = b.stage(ctx, report, domain.StageLoaded, func(_ context.Context, span ports.Span) error {
		e, err := b.runtime.Deserialize(artifact)
		if err != nil {
			return err
		}
		engine = e
		span.SetAttribute("plan.bytes", artifact.Len())
		return nil
	})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, engine.Close())
	}()

	return b.stage(ctx, report, domain.StageExecuted, func(ctx context.Context, _ ports.Span) error {
		outputs, err := b.infer(ctx, engine, input)
		if err != nil {
			return err
		}
		report.Outputs = outputs
		return nil
	})
}

func (b *Builder) infer(ctx context.Context, engine ports.Engine, input domain.HostTensor) (outputs []domain.HostTensor, err error) {
	ec, err := engine.NewExecutionContext()
	if err != nil {
		return nil, err
	}
	if err := ec.SetInputShape(input.Name, input.Dims); err != nil {
		return nil, err
	}

	bindings := engine.Bindings()
	buffers := make([]domain.DevicePtr, len(bindings))
	sizes := make([]int, len(bindings))
	shapes := make([]domain.Dims, len(bindings))
	defer func() {
		for _, ptr := range buffers {
			if ptr != 0 {
				err = errors.Join(err, b.device.Free(ptr))
			}
		}
	}()

	for i, binding := range bindings {
		dims, err := ec.BindingShape(binding.Name)
		if err != nil {
			return nil, err
		}
		shapes[i] = dims
		sizes[i] = dims.Volume() * binding.Type.Size()

		ptr, err := b.device.Malloc(sizes[i])
		if err != nil {
			return nil, err
		}
		buffers[i] = ptr

		if !binding.IsInput {
			continue
		}
		if binding.Name != input.Name {
			return nil, zerr.With(domain.ErrBindingNotFound, "binding", binding.Name)
		}
		if err := b.device.CopyHostToDevice(ptr, input.Data); err != nil {
			return nil, err
		}
	}

	if err := ec.Execute(ctx, buffers); err != nil {
		return nil, err
	}

	for i, binding := range bindings {
		if binding.IsInput {
			continue
		}
		data := make([]byte, sizes[i])
		if err := b.device.CopyDeviceToHost(data, buffers[i]); err != nil {
			return nil, err
		}
		outputs = append(outputs, domain.HostTensor{
			Name: binding.Name,
			Type: binding.Type,
			Dims: shapes[i],
			Data: data,
		})
	}
	return outputs, nil
}
