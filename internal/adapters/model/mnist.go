// Package model defines the fixed MNIST-style classifier whose builds temper times.
package model

import (
	"math/rand/v2"

	"go.trai.ch/temper/internal/core/domain"
)

const (
	// InputName is the network input tensor.
	InputName = "inputT0"

	imageSize = 28
	flattened = 64 * 7 * 7
	hidden    = 1024
	classes   = 10

	// sampleStream selects the PCG stream of the sample input, apart from the weights stream.
	sampleStream = 1
)

// MNIST implements ports.ModelDefinition.
// Weights are drawn uniformly from [0, 1) and the sample input from [-1, 1), both from the configured seed.
type MNIST struct {
	seed             uint64
	batch            domain.BatchRange
	workspaceLimit   int64
	timingIterations int
}

// NewMNIST creates the definition from resolved settings.
func NewMNIST(settings domain.Settings) *MNIST {
	return &MNIST{
		seed:             settings.Seed,
		batch:            settings.Batch,
		workspaceLimit:   settings.WorkspaceLimit,
		timingIterations: settings.TimingIterations,
	}
}

// Define builds the network and a build config with one optimization profile over the batch dimension.
func (m *MNIST) Define() (*domain.Network, *domain.BuildConfig, error) {
	cfg := domain.NewBuildConfig(m.workspaceLimit)
	cfg.TimingIterations = max(m.timingIterations, 1)
	cfg.AddOptimizationProfile(domain.OptimizationProfile{
		Input: InputName,
		Min:   domain.Dims{m.batch.Min, 1, imageSize, imageSize},
		Opt:   domain.Dims{m.batch.Opt, 1, imageSize, imageSize},
		Max:   domain.Dims{m.batch.Max, 1, imageSize, imageSize},
	})

	rng := rand.New(rand.NewPCG(m.seed, 0)) //nolint:gosec // reproducible weights
	weights := func(n int) []float32 {
		w := make([]float32, n)
		for i := range w {
			w[i] = rng.Float32()
		}
		return w
	}

	net := domain.NewNetwork()
	input, err := net.AddInput(InputName, domain.Float32, domain.Dims{domain.DynamicDim, 1, imageSize, imageSize})
	if err != nil {
		return nil, nil, err
	}

	conv1 := net.AddConvolution(input, 32, [2]int{5, 5}, weights(32*1*5*5), weights(32))
	conv1.Convolution.Padding = [2]int{2, 2}
	relu1 := net.AddActivation(conv1.Output(0), domain.ActivationReLU)
	pool1 := net.AddPooling(relu1.Output(0), domain.PoolingMax, [2]int{2, 2})

	conv2 := net.AddConvolution(pool1.Output(0), 64, [2]int{5, 5}, weights(64*32*5*5), weights(64))
	conv2.Convolution.Padding = [2]int{2, 2}
	relu2 := net.AddActivation(conv2.Output(0), domain.ActivationReLU)
	pool2 := net.AddPooling(relu2.Output(0), domain.PoolingMax, [2]int{2, 2})

	flatten := net.AddShuffle(pool2.Output(0))
	flatten.Shuffle.FirstTranspose = []int{0, 2, 3, 1}
	flatten.Shuffle.Reshape = domain.Dims{-1, flattened}

	fc1W := net.AddConstant(domain.Dims{flattened, hidden}, weights(flattened*hidden))
	fc1 := net.AddMatrixMultiply(flatten.Output(0), false, fc1W.Output(0), false)
	fc1B := net.AddConstant(domain.Dims{1, hidden}, weights(hidden))
	fc1Bias := net.AddElementWise(fc1.Output(0), fc1B.Output(0), domain.ElementWiseSum)
	relu3 := net.AddActivation(fc1Bias.Output(0), domain.ActivationReLU)

	fc2W := net.AddConstant(domain.Dims{hidden, classes}, weights(hidden*classes))
	fc2 := net.AddMatrixMultiply(relu3.Output(0), false, fc2W.Output(0), false)
	fc2B := net.AddConstant(domain.Dims{1, classes}, weights(classes))
	fc2Bias := net.AddElementWise(fc2.Output(0), fc2B.Output(0), domain.ElementWiseSum)

	softmax := net.AddSoftMax(fc2Bias.Output(0))
	top := net.AddTopK(softmax.Output(0), domain.TopKMax, 1, 1<<1)
	net.MarkOutput(top.Output(1))

	return net, cfg, nil
}

// SampleInput returns a single 1x1x28x28 image.
func (m *MNIST) SampleInput() domain.HostTensor {
	rng := rand.New(rand.NewPCG(m.seed, sampleStream)) //nolint:gosec // reproducible input
	values := make([]float32, imageSize*imageSize)
	for i := range values {
		values[i] = rng.Float32()*2 - 1
	}
	return domain.HostTensor{
		Name: InputName,
		Type: domain.Float32,
		Dims: domain.Dims{1, 1, imageSize, imageSize},
		Data: domain.EncodeFloat32s(values),
	}
}
