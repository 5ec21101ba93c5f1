package inference_test

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/temper/internal/adapters/cpu/compiler"
	"go.trai.ch/temper/internal/adapters/cpu/cputest"
	"go.trai.ch/temper/internal/adapters/cpu/inference"
	"go.trai.ch/temper/internal/adapters/cpu/plan"
	"go.trai.ch/temper/internal/adapters/device"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
)

func compileTiny(t *testing.T) domain.CompiledArtifact {
	t.Helper()
	net, cfg := cputest.TinyNetwork()
	res, err := compiler.New(clockwork.NewFakeClock()).Build(context.Background(), net, cfg)
	require.NoError(t, err)
	return res.Artifact
}

// infer runs one execution and returns the top-1 indices.
func infer(t *testing.T, dev *device.Host, engine ports.Engine, batch int, values []float32) []int32 {
	t.Helper()
	ec, err := engine.NewExecutionContext()
	require.NoError(t, err)
	require.NoError(t, ec.SetInputShape(cputest.InputName, domain.Dims{batch, 8}))

	bindings := engine.Bindings()
	buffers := make([]domain.DevicePtr, len(bindings))
	for i, b := range bindings {
		dims, err := ec.BindingShape(b.Name)
		require.NoError(t, err)
		buffers[i], err = dev.Malloc(dims.Volume() * b.Type.Size())
		require.NoError(t, err)
	}
	t.Cleanup(func() {
		for _, p := range buffers {
			_ = dev.Free(p)
		}
	})

	require.NoError(t, dev.CopyHostToDevice(buffers[0], domain.EncodeFloat32s(values)))
	require.NoError(t, ec.Execute(context.Background(), buffers))

	out := make([]byte, batch*4)
	require.NoError(t, dev.CopyDeviceToHost(out, buffers[1]))
	return domain.HostTensor{Data: out}.Int32s()
}

func TestExecute_BatchMatchesSamples(t *testing.T) {
	dev := device.NewHost(0)
	engine, err := inference.New(dev).Deserialize(compileTiny(t))
	require.NoError(t, err)
	defer func() { require.NoError(t, engine.Close()) }()

	bindings := engine.Bindings()
	require.Len(t, bindings, 2)
	assert.True(t, bindings[0].IsInput)
	assert.Equal(t, domain.Dims{-1, 8}, bindings[0].Dims)
	assert.Equal(t, domain.Int32, bindings[1].Type)

	sample := cputest.Sample().Float32s()
	other := []float32{-1, 1, -1, 1, -1, 1, -1, 1}
	batch := append(append([]float32{}, sample...), other...)

	single := infer(t, dev, engine, 1, sample)
	require.Len(t, single, 1)
	assert.GreaterOrEqual(t, single[0], int32(0))
	assert.Less(t, single[0], int32(4))

	both := infer(t, dev, engine, 2, batch)
	assert.Equal(t, single[0], both[0])
	assert.Equal(t, infer(t, dev, engine, 1, other)[0], both[1])
}

func TestExecutionContext_Errors(t *testing.T) {
	dev := device.NewHost(0)
	engine, err := inference.New(dev).Deserialize(compileTiny(t))
	require.NoError(t, err)

	ec, err := engine.NewExecutionContext()
	require.NoError(t, err)

	_, err = ec.BindingShape(engine.Bindings()[1].Name)
	assert.ErrorContains(t, err, domain.ErrShapeNotSet.Error())

	err = ec.SetInputShape(cputest.InputName, domain.Dims{5, 8})
	assert.ErrorContains(t, err, domain.ErrShapeOutOfProfile.Error())

	err = ec.SetInputShape(cputest.InputName, domain.Dims{2, 7})
	assert.ErrorContains(t, err, domain.ErrInvalidShape.Error())

	err = ec.SetInputShape("y", domain.Dims{1, 8})
	assert.ErrorContains(t, err, domain.ErrBindingNotFound.Error())

	err = ec.Execute(context.Background(), []domain.DevicePtr{1})
	assert.ErrorContains(t, err, domain.ErrBindingCount.Error())

	require.NoError(t, ec.SetInputShape(cputest.InputName, domain.Dims{1, 8}))
	in, err := dev.Malloc(4)
	require.NoError(t, err)
	out, err := dev.Malloc(4)
	require.NoError(t, err)
	err = ec.Execute(context.Background(), []domain.DevicePtr{in, out})
	assert.ErrorContains(t, err, domain.ErrCopySizeMismatch.Error())

	require.NoError(t, engine.Close())
	_, err = engine.NewExecutionContext()
	assert.ErrorContains(t, err, domain.ErrExecutionFailed.Error())
}

func TestDeserialize_Errors(t *testing.T) {
	rt := inference.New(device.NewHost(0))

	_, err := rt.Deserialize(domain.NewCompiledArtifact([]byte("junk")))
	assert.ErrorContains(t, err, domain.ErrPlanDecodeFailed.Error())

	foreign := plan.New("gpu/sm90")
	artifact, err := foreign.Encode()
	require.NoError(t, err)
	_, err = rt.Deserialize(artifact)
	assert.ErrorContains(t, err, domain.ErrPlanIncompatible.Error())

	bogus := plan.New(compiler.HostDevice().ID())
	bogus.Steps = []plan.Step{{
		Layer:  &domain.Layer{Name: "mm", Kind: domain.LayerMatrixMultiply, MatrixMultiply: &domain.MatrixMultiplyParams{}},
		Tactic: "gemm.quantum",
	}}
	artifact, err = bogus.Encode()
	require.NoError(t, err)
	_, err = rt.Deserialize(artifact)
	assert.ErrorContains(t, err, domain.ErrUnknownTactic.Error())
}
