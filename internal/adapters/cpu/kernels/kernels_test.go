package kernels_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/temper/internal/adapters/cpu/kernels"
	"go.trai.ch/temper/internal/core/domain"
)

func randomTensor(rng *rand.Rand, dims domain.Dims) *kernels.Tensor {
	t := kernels.NewTensor(dims)
	for i := range t.Data {
		t.Data[i] = rng.Float32()*2 - 1
	}
	return t
}

func randomWeights(rng *rand.Rand, n int) []float32 {
	w := make([]float32, n)
	for i := range w {
		w[i] = rng.Float32()
	}
	return w
}

func TestConvolutionTacticsAgree(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	layer := &domain.Layer{
		Name: "conv",
		Kind: domain.LayerConvolution,
		Convolution: &domain.ConvolutionParams{
			OutChannels: 4,
			Kernel:      [2]int{3, 3},
			Stride:      [2]int{1, 1},
			Padding:     [2]int{1, 1},
			Weights:     randomWeights(rng, 4*2*3*3),
			Bias:        randomWeights(rng, 4),
		},
	}
	in := randomTensor(rng, domain.Dims{2, 2, 6, 6})

	dims, err := kernels.OutputDims(layer, []domain.Dims{in.Dims})
	require.NoError(t, err)
	assert.Equal(t, domain.Dims{2, 4, 6, 6}, dims[0])

	candidates, err := kernels.Candidates(layer)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	var reference []float32
	for _, k := range candidates {
		out := kernels.NewTensor(dims[0])
		require.NoError(t, k.Run([]*kernels.Tensor{in}, []*kernels.Tensor{out}), k.Tactic())
		if reference == nil {
			reference = out.Data
			continue
		}
		assert.InDeltaSlice(t, reference, out.Data, 1e-5, k.Tactic())
	}
}

func TestMatrixMultiplyTacticsAgree(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	tests := []struct {
		name   string
		params domain.MatrixMultiplyParams
		a, b   domain.Dims
		want   domain.Dims
	}{
		{name: "plain", a: domain.Dims{5, 70}, b: domain.Dims{70, 3}, want: domain.Dims{5, 3}},
		{name: "transpose a", params: domain.MatrixMultiplyParams{TransposeA: true}, a: domain.Dims{70, 5}, b: domain.Dims{70, 3}, want: domain.Dims{5, 3}},
		{name: "transpose b", params: domain.MatrixMultiplyParams{TransposeB: true}, a: domain.Dims{5, 70}, b: domain.Dims{3, 70}, want: domain.Dims{5, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			layer := &domain.Layer{Name: "mm", Kind: domain.LayerMatrixMultiply, MatrixMultiply: &params}
			a, b := randomTensor(rng, tt.a), randomTensor(rng, tt.b)

			dims, err := kernels.OutputDims(layer, []domain.Dims{tt.a, tt.b})
			require.NoError(t, err)
			require.Equal(t, tt.want, dims[0])

			candidates, err := kernels.Candidates(layer)
			require.NoError(t, err)
			require.Len(t, candidates, 3)

			var reference []float32
			for _, k := range candidates {
				out := kernels.NewTensor(dims[0])
				require.NoError(t, k.Run([]*kernels.Tensor{a, b}, []*kernels.Tensor{out}))
				if reference == nil {
					reference = out.Data
					continue
				}
				assert.Equal(t, reference, out.Data, k.Tactic())
			}
		})
	}
}

func TestShuffleTransposeReshape(t *testing.T) {
	layer := &domain.Layer{
		Kind: domain.LayerShuffle,
		Shuffle: &domain.ShuffleParams{
			FirstTranspose: []int{0, 2, 3, 1},
			Reshape:        domain.Dims{-1, 8},
		},
	}
	in := kernels.NewTensor(domain.Dims{1, 2, 2, 2})
	for i := range in.Data {
		in.Data[i] = float32(i)
	}

	dims, err := kernels.OutputDims(layer, []domain.Dims{in.Dims})
	require.NoError(t, err)
	assert.Equal(t, domain.Dims{1, 8}, dims[0])

	k, err := kernels.Lookup(layer, "shuffle.generic")
	require.NoError(t, err)
	out := kernels.NewTensor(dims[0])
	require.NoError(t, k.Run([]*kernels.Tensor{in}, []*kernels.Tensor{out}))

	// NCHW [c0: 0 1 2 3, c1: 4 5 6 7] becomes NHWC.
	assert.Equal(t, []float32{0, 4, 1, 5, 2, 6, 3, 7}, out.Data)
}

func TestPoolingAndActivation(t *testing.T) {
	in := &kernels.Tensor{Dims: domain.Dims{1, 1, 2, 4}, Data: []float32{1, -2, 3, 4, -5, 6, -7, 8}}

	relu := &domain.Layer{Kind: domain.LayerActivation, Activation: &domain.ActivationParams{Type: domain.ActivationReLU}}
	k, err := kernels.Lookup(relu, "activation.generic")
	require.NoError(t, err)
	act := kernels.NewTensor(in.Dims)
	require.NoError(t, k.Run([]*kernels.Tensor{in}, []*kernels.Tensor{act}))
	assert.Equal(t, []float32{1, 0, 3, 4, 0, 6, 0, 8}, act.Data)

	pool := &domain.Layer{Kind: domain.LayerPooling, Pooling: &domain.PoolingParams{
		Type: domain.PoolingMax, Window: [2]int{2, 2}, Stride: [2]int{2, 2},
	}}
	dims, err := kernels.OutputDims(pool, []domain.Dims{in.Dims})
	require.NoError(t, err)
	assert.Equal(t, domain.Dims{1, 1, 1, 2}, dims[0])

	k, err = kernels.Lookup(pool, "pooling.generic")
	require.NoError(t, err)
	out := kernels.NewTensor(dims[0])
	require.NoError(t, k.Run([]*kernels.Tensor{act}, []*kernels.Tensor{out}))
	assert.Equal(t, []float32{6, 8}, out.Data)
}

func TestSoftMaxTopK(t *testing.T) {
	in := &kernels.Tensor{Dims: domain.Dims{2, 3}, Data: []float32{1, 3, 2, 5, 5, 0}}

	sm := &domain.Layer{Kind: domain.LayerSoftMax, SoftMax: &domain.SoftMaxParams{Axes: 1 << 1}}
	k, err := kernels.Lookup(sm, "softmax.generic")
	require.NoError(t, err)
	probs := kernels.NewTensor(in.Dims)
	require.NoError(t, k.Run([]*kernels.Tensor{in}, []*kernels.Tensor{probs}))
	assert.InDelta(t, 1.0, probs.Data[0]+probs.Data[1]+probs.Data[2], 1e-6)
	assert.InDelta(t, probs.Data[3], probs.Data[4], 1e-7)

	top := &domain.Layer{Kind: domain.LayerTopK, TopK: &domain.TopKParams{Op: domain.TopKMax, K: 1, Axes: 1 << 1}}
	dims, err := kernels.OutputDims(top, []domain.Dims{in.Dims})
	require.NoError(t, err)
	assert.Equal(t, domain.Dims{2, 1}, dims[0])

	k, err = kernels.Lookup(top, "topk.generic")
	require.NoError(t, err)
	values, indices := kernels.NewTensor(dims[0]), kernels.NewTensor(dims[1])
	require.NoError(t, k.Run([]*kernels.Tensor{probs}, []*kernels.Tensor{values, indices}))
	// Ties resolve to the lower index.
	assert.Equal(t, []float32{1, 0}, indices.Data)
}

func TestElementWiseBroadcast(t *testing.T) {
	a := &kernels.Tensor{Dims: domain.Dims{2, 3}, Data: []float32{1, 2, 3, 4, 5, 6}}
	b := &kernels.Tensor{Dims: domain.Dims{1, 3}, Data: []float32{10, 20, 30}}
	layer := &domain.Layer{Kind: domain.LayerElementWise, ElementWise: &domain.ElementWiseParams{Op: domain.ElementWiseSum}}

	dims, err := kernels.OutputDims(layer, []domain.Dims{a.Dims, b.Dims})
	require.NoError(t, err)

	k, err := kernels.Lookup(layer, "elementwise.generic")
	require.NoError(t, err)
	out := kernels.NewTensor(dims[0])
	require.NoError(t, k.Run([]*kernels.Tensor{a, b}, []*kernels.Tensor{out}))
	assert.Equal(t, []float32{11, 22, 33, 14, 25, 36}, out.Data)
}

func TestInferShapes_Errors(t *testing.T) {
	tests := []struct {
		name   string
		layers []*domain.Layer
		inputs map[string]domain.Dims
		errMsg string
	}{
		{
			name:   "dynamic input",
			inputs: map[string]domain.Dims{"x": {-1, 4}},
			errMsg: domain.ErrInvalidShape.Error(),
		},
		{
			name: "unknown tensor",
			layers: []*domain.Layer{{
				Name: "act", Kind: domain.LayerActivation, Inputs: []string{"missing"},
				Outputs: []domain.Tensor{{Name: "y"}}, Activation: &domain.ActivationParams{},
			}},
			inputs: map[string]domain.Dims{"x": {1, 4}},
			errMsg: domain.ErrUnknownTensor.Error(),
		},
		{
			name: "matmul mismatch",
			layers: []*domain.Layer{{
				Name: "mm", Kind: domain.LayerMatrixMultiply, Inputs: []string{"x", "x"},
				Outputs: []domain.Tensor{{Name: "y"}}, MatrixMultiply: &domain.MatrixMultiplyParams{},
			}},
			inputs: map[string]domain.Dims{"x": {2, 3}},
			errMsg: domain.ErrInvalidShape.Error(),
		},
		{
			name: "bad weights",
			layers: []*domain.Layer{{
				Name: "c", Kind: domain.LayerConstant,
				Outputs: []domain.Tensor{{Name: "y"}}, Constant: &domain.ConstantParams{Dims: domain.Dims{2, 2}, Weights: []float32{1}},
			}},
			errMsg: domain.ErrInvalidWeights.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := kernels.InferShapes(tt.layers, tt.inputs)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestLookup_UnknownTactic(t *testing.T) {
	layer := &domain.Layer{Name: "mm", Kind: domain.LayerMatrixMultiply, MatrixMultiply: &domain.MatrixMultiplyParams{}}
	_, err := kernels.Lookup(layer, "gemm.strassen")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownTactic.Error())
}

func TestCandidates_MissingParams(t *testing.T) {
	_, err := kernels.Candidates(&domain.Layer{Name: "conv", Kind: domain.LayerConvolution})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnsupportedLayer.Error())
}
