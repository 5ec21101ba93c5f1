// Package kernels implements the host kernels of the reference CPU backend.
//
// Each layer kind has one or more kernels. Kernels of the same kind are
// interchangeable tactics: they produce the same result with different memory
// access patterns and workspace needs, and the compiler picks among them by
// measuring them.
package kernels

import (
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/zerr"
)

// Tensor is a dense row-major float32 tensor.
// Integer tensors (top-k indices) are stored as exact float32 values.
type Tensor struct {
	Dims domain.Dims
	Data []float32
}

// NewTensor allocates a zeroed tensor.
func NewTensor(dims domain.Dims) *Tensor {
	return &Tensor{Dims: dims.Clone(), Data: make([]float32, dims.Volume())}
}

// Kernel executes one layer on host tensors.
type Kernel interface {
	// Tactic returns the stable tactic name recorded in plans and timing caches.
	Tactic() string
	// Workspace returns the scratch bytes needed for the given input dimensions.
	Workspace(in []domain.Dims) int64
	// Run computes outputs from inputs. Output tensors are preallocated with inferred dimensions.
	Run(in []*Tensor, out []*Tensor) error
}

type factory func(l *domain.Layer) Kernel

var registry = map[domain.LayerKind][]factory{
	domain.LayerConvolution: {
		func(l *domain.Layer) Kernel { return &convDirect{p: l.Convolution} },
		func(l *domain.Layer) Kernel { return &convIm2col{p: l.Convolution} },
	},
	domain.LayerActivation: {
		func(l *domain.Layer) Kernel { return &activation{p: l.Activation} },
	},
	domain.LayerPooling: {
		func(l *domain.Layer) Kernel { return &pooling{p: l.Pooling} },
	},
	domain.LayerShuffle: {
		func(l *domain.Layer) Kernel { return &shuffle{p: l.Shuffle} },
	},
	domain.LayerConstant: {
		func(l *domain.Layer) Kernel { return &constant{p: l.Constant} },
	},
	domain.LayerMatrixMultiply: {
		func(l *domain.Layer) Kernel { return &gemmNaive{p: l.MatrixMultiply} },
		func(l *domain.Layer) Kernel { return &gemmIKJ{p: l.MatrixMultiply} },
		func(l *domain.Layer) Kernel { return &gemmBlocked{p: l.MatrixMultiply, block: 64} },
	},
	domain.LayerElementWise: {
		func(l *domain.Layer) Kernel { return &elementWise{p: l.ElementWise} },
	},
	domain.LayerSoftMax: {
		func(l *domain.Layer) Kernel { return &softMax{p: l.SoftMax} },
	},
	domain.LayerTopK: {
		func(l *domain.Layer) Kernel { return &topK{p: l.TopK} },
	},
}

// Candidates returns every kernel able to run the layer.
func Candidates(l *domain.Layer) ([]Kernel, error) {
	if err := checkParams(l); err != nil {
		return nil, err
	}
	factories, ok := registry[l.Kind]
	if !ok {
		return nil, zerr.With(zerr.With(domain.ErrUnsupportedLayer, "kind", l.Kind.String()), "layer", l.Name)
	}
	out := make([]Kernel, 0, len(factories))
	for _, f := range factories {
		out = append(out, f(l))
	}
	return out, nil
}

// Lookup returns the kernel implementing tactic for the layer.
func Lookup(l *domain.Layer, tactic string) (Kernel, error) {
	candidates, err := Candidates(l)
	if err != nil {
		return nil, err
	}
	for _, k := range candidates {
		if k.Tactic() == tactic {
			return k, nil
		}
	}
	return nil, zerr.With(zerr.With(domain.ErrUnknownTactic, "tactic", tactic), "layer", l.Name)
}

//nolint:cyclop // one branch per layer kind
func checkParams(l *domain.Layer) error {
	var ok bool
	switch l.Kind {
	case domain.LayerConvolution:
		ok = l.Convolution != nil
	case domain.LayerActivation:
		ok = l.Activation != nil
	case domain.LayerPooling:
		ok = l.Pooling != nil
	case domain.LayerShuffle:
		ok = l.Shuffle != nil
	case domain.LayerConstant:
		ok = l.Constant != nil
	case domain.LayerMatrixMultiply:
		ok = l.MatrixMultiply != nil
	case domain.LayerElementWise:
		ok = l.ElementWise != nil
	case domain.LayerSoftMax:
		ok = l.SoftMax != nil
	case domain.LayerTopK:
		ok = l.TopK != nil
	default:
		return zerr.With(zerr.With(domain.ErrUnsupportedLayer, "kind", l.Kind.String()), "layer", l.Name)
	}
	if !ok {
		return zerr.With(zerr.With(domain.ErrUnsupportedLayer, "reason", "missing parameters"), "layer", l.Name)
	}
	return nil
}
