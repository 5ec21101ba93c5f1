package kernels

import (
	"math/bits"

	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/zerr"
)

// InferShapes propagates concrete input dimensions through the layers.
// The returned map holds the dimensions of every input and layer output tensor.
func InferShapes(layers []*domain.Layer, inputs map[string]domain.Dims) (map[string]domain.Dims, error) {
	shapes := make(map[string]domain.Dims, len(inputs)+len(layers))
	for name, dims := range inputs {
		if dims.IsDynamic() {
			return nil, zerr.With(zerr.With(domain.ErrInvalidShape, "tensor", name), "dims", dims.String())
		}
		shapes[name] = dims.Clone()
	}

	for _, l := range layers {
		in := make([]domain.Dims, len(l.Inputs))
		for i, name := range l.Inputs {
			d, ok := shapes[name]
			if !ok {
				return nil, zerr.With(zerr.With(domain.ErrUnknownTensor, "tensor", name), "layer", l.Name)
			}
			in[i] = d
		}

		out, err := OutputDims(l, in)
		if err != nil {
			return nil, zerr.With(err, "layer", l.Name)
		}
		for i := range l.Outputs {
			shapes[l.Outputs[i].Name] = out[i]
		}
	}

	return shapes, nil
}

// OutputDims computes the output dimensions of a layer from its input dimensions.
//
//nolint:cyclop // one branch per layer kind
func OutputDims(l *domain.Layer, in []domain.Dims) ([]domain.Dims, error) {
	switch l.Kind {
	case domain.LayerConvolution:
		return convolutionDims(l.Convolution, in)
	case domain.LayerActivation:
		if err := arity(in, 1); err != nil {
			return nil, err
		}
		return []domain.Dims{in[0].Clone()}, nil
	case domain.LayerPooling:
		return poolingDims(l.Pooling, in)
	case domain.LayerShuffle:
		return shuffleDims(l.Shuffle, in)
	case domain.LayerConstant:
		p := l.Constant
		if p.Dims.Volume() != len(p.Weights) {
			return nil, zerr.With(domain.ErrInvalidWeights, "expected", p.Dims.Volume())
		}
		return []domain.Dims{p.Dims.Clone()}, nil
	case domain.LayerMatrixMultiply:
		return matrixMultiplyDims(l.MatrixMultiply, in)
	case domain.LayerElementWise:
		return elementWiseDims(in)
	case domain.LayerSoftMax:
		if err := arity(in, 1); err != nil {
			return nil, err
		}
		if _, err := axisOf(l.SoftMax.Axes, len(in[0])); err != nil {
			return nil, err
		}
		return []domain.Dims{in[0].Clone()}, nil
	case domain.LayerTopK:
		return topKDims(l.TopK, in)
	default:
		return nil, zerr.With(domain.ErrUnsupportedLayer, "kind", l.Kind.String())
	}
}

func arity(in []domain.Dims, n int) error {
	if len(in) != n {
		return zerr.With(zerr.With(domain.ErrInvalidShape, "inputs", len(in)), "expected_inputs", n)
	}
	return nil
}

func rank(d domain.Dims, r int) error {
	if len(d) != r {
		return zerr.With(zerr.With(domain.ErrInvalidShape, "dims", d.String()), "expected_rank", r)
	}
	return nil
}

func convolutionDims(p *domain.ConvolutionParams, in []domain.Dims) ([]domain.Dims, error) {
	if err := arity(in, 1); err != nil {
		return nil, err
	}
	x := in[0]
	if err := rank(x, 4); err != nil {
		return nil, err
	}
	if p.Stride[0] <= 0 || p.Stride[1] <= 0 {
		return nil, zerr.With(domain.ErrInvalidShape, "stride", p.Stride)
	}
	c := x[1]
	if len(p.Weights) != p.OutChannels*c*p.Kernel[0]*p.Kernel[1] {
		return nil, zerr.With(domain.ErrInvalidWeights, "expected", p.OutChannels*c*p.Kernel[0]*p.Kernel[1])
	}
	if len(p.Bias) != 0 && len(p.Bias) != p.OutChannels {
		return nil, zerr.With(domain.ErrInvalidWeights, "expected_bias", p.OutChannels)
	}
	oh := (x[2]+2*p.Padding[0]-p.Kernel[0])/p.Stride[0] + 1
	ow := (x[3]+2*p.Padding[1]-p.Kernel[1])/p.Stride[1] + 1
	if oh <= 0 || ow <= 0 {
		return nil, zerr.With(domain.ErrInvalidShape, "dims", x.String())
	}
	return []domain.Dims{{x[0], p.OutChannels, oh, ow}}, nil
}

func poolingDims(p *domain.PoolingParams, in []domain.Dims) ([]domain.Dims, error) {
	if err := arity(in, 1); err != nil {
		return nil, err
	}
	x := in[0]
	if err := rank(x, 4); err != nil {
		return nil, err
	}
	if p.Stride[0] <= 0 || p.Stride[1] <= 0 || p.Window[0] <= 0 || p.Window[1] <= 0 {
		return nil, zerr.With(domain.ErrInvalidShape, "window", p.Window)
	}
	oh := (x[2]-p.Window[0])/p.Stride[0] + 1
	ow := (x[3]-p.Window[1])/p.Stride[1] + 1
	if oh <= 0 || ow <= 0 {
		return nil, zerr.With(domain.ErrInvalidShape, "dims", x.String())
	}
	return []domain.Dims{{x[0], x[1], oh, ow}}, nil
}

func shuffleDims(p *domain.ShuffleParams, in []domain.Dims) ([]domain.Dims, error) {
	if err := arity(in, 1); err != nil {
		return nil, err
	}
	transposed, err := transposeDims(in[0], p.FirstTranspose)
	if err != nil {
		return nil, err
	}
	if len(p.Reshape) == 0 {
		return []domain.Dims{transposed}, nil
	}
	out, err := reshapeDims(transposed, p.Reshape)
	if err != nil {
		return nil, err
	}
	return []domain.Dims{out}, nil
}

func transposeDims(d domain.Dims, perm []int) (domain.Dims, error) {
	if len(perm) == 0 {
		return d.Clone(), nil
	}
	if len(perm) != len(d) {
		return nil, zerr.With(domain.ErrInvalidShape, "permutation", perm)
	}
	seen := make([]bool, len(d))
	out := make(domain.Dims, len(d))
	for i, p := range perm {
		if p < 0 || p >= len(d) || seen[p] {
			return nil, zerr.With(domain.ErrInvalidShape, "permutation", perm)
		}
		seen[p] = true
		out[i] = d[p]
	}
	return out, nil
}

func reshapeDims(d domain.Dims, shape domain.Dims) (domain.Dims, error) {
	out := make(domain.Dims, len(shape))
	inferred := -1
	known := 1
	for i, v := range shape {
		switch {
		case v == domain.DynamicDim:
			if inferred >= 0 {
				return nil, zerr.With(domain.ErrInvalidShape, "reshape", shape.String())
			}
			inferred = i
			continue
		case v == 0:
			if i >= len(d) {
				return nil, zerr.With(domain.ErrInvalidShape, "reshape", shape.String())
			}
			out[i] = d[i]
		case v > 0:
			out[i] = v
		default:
			return nil, zerr.With(domain.ErrInvalidShape, "reshape", shape.String())
		}
		known *= out[i]
	}
	volume := d.Volume()
	if inferred >= 0 {
		if known == 0 || volume%known != 0 {
			return nil, zerr.With(domain.ErrInvalidShape, "reshape", shape.String())
		}
		out[inferred] = volume / known
	}
	if out.Volume() != volume {
		return nil, zerr.With(zerr.With(domain.ErrInvalidShape, "reshape", shape.String()), "dims", d.String())
	}
	return out, nil
}

func matrixMultiplyDims(p *domain.MatrixMultiplyParams, in []domain.Dims) ([]domain.Dims, error) {
	if err := arity(in, 2); err != nil {
		return nil, err
	}
	a, b := in[0], in[1]
	if err := rank(a, 2); err != nil {
		return nil, err
	}
	if err := rank(b, 2); err != nil {
		return nil, err
	}
	m, ka := a[0], a[1]
	if p.TransposeA {
		m, ka = a[1], a[0]
	}
	kb, n := b[0], b[1]
	if p.TransposeB {
		kb, n = b[1], b[0]
	}
	if ka != kb {
		return nil, zerr.With(zerr.With(domain.ErrInvalidShape, "a", a.String()), "b", b.String())
	}
	return []domain.Dims{{m, n}}, nil
}

func elementWiseDims(in []domain.Dims) ([]domain.Dims, error) {
	if err := arity(in, 2); err != nil {
		return nil, err
	}
	a, b := in[0], in[1]
	if len(a) != len(b) {
		return nil, zerr.With(zerr.With(domain.ErrInvalidShape, "a", a.String()), "b", b.String())
	}
	out := make(domain.Dims, len(a))
	for i := range a {
		switch {
		case a[i] == b[i]:
			out[i] = a[i]
		case a[i] == 1:
			out[i] = b[i]
		case b[i] == 1:
			out[i] = a[i]
		default:
			return nil, zerr.With(zerr.With(domain.ErrInvalidShape, "a", a.String()), "b", b.String())
		}
	}
	return []domain.Dims{out}, nil
}

func topKDims(p *domain.TopKParams, in []domain.Dims) ([]domain.Dims, error) {
	if err := arity(in, 1); err != nil {
		return nil, err
	}
	axis, err := axisOf(p.Axes, len(in[0]))
	if err != nil {
		return nil, err
	}
	if p.K <= 0 || p.K > in[0][axis] {
		return nil, zerr.With(domain.ErrInvalidShape, "k", p.K)
	}
	out := in[0].Clone()
	out[axis] = p.K
	return []domain.Dims{out, out.Clone()}, nil
}

// axisOf converts a single-bit axis mask into an axis index.
func axisOf(mask uint32, rank int) (int, error) {
	if bits.OnesCount32(mask) != 1 {
		return 0, zerr.With(domain.ErrInvalidShape, "axes", mask)
	}
	axis := bits.TrailingZeros32(mask)
	if axis >= rank {
		return 0, zerr.With(domain.ErrInvalidShape, "axes", mask)
	}
	return axis, nil
}
