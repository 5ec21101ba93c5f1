// Package cputest provides small networks for exercising the CPU backend in tests.
package cputest

import "go.trai.ch/temper/internal/core/domain"

// InputName is the input tensor of TinyNetwork.
const InputName = "x"

// TinyNetwork returns a classifier over 8 features with a dynamic batch in [1, 4].
// It holds one timed layer (the matrix multiply) and ends in a top-1 reduction.
func TinyNetwork() (*domain.Network, *domain.BuildConfig) {
	net := domain.NewNetwork()
	x, err := net.AddInput(InputName, domain.Float32, domain.Dims{domain.DynamicDim, 8})
	if err != nil {
		panic(err)
	}

	weights := make([]float32, 8*4)
	for i := range weights {
		weights[i] = float32((i*7)%11) / 11
	}
	w := net.AddConstant(domain.Dims{8, 4}, weights)
	mm := net.AddMatrixMultiply(x, false, w.Output(0), false)
	relu := net.AddActivation(mm.Output(0), domain.ActivationReLU)
	sm := net.AddSoftMax(relu.Output(0))
	top := net.AddTopK(sm.Output(0), domain.TopKMax, 1, 1<<1)
	net.MarkOutput(top.Output(1))

	cfg := domain.NewBuildConfig(1 << 20)
	cfg.AddOptimizationProfile(domain.OptimizationProfile{
		Input: InputName,
		Min:   domain.Dims{1, 8},
		Opt:   domain.Dims{2, 8},
		Max:   domain.Dims{4, 8},
	})
	return net, cfg
}

// Sample returns a deterministic batch-1 input for TinyNetwork.
func Sample() domain.HostTensor {
	values := []float32{0.5, -1, 0.25, 0.75, -0.5, 1, 0, -0.25}
	return domain.HostTensor{
		Name: InputName,
		Type: domain.Float32,
		Dims: domain.Dims{1, 8},
		Data: domain.EncodeFloat32s(values),
	}
}
