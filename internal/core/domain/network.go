package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// LayerKind identifies the operation a layer performs.
type LayerKind uint8

const (
	// LayerConvolution is a 2D convolution over NCHW tensors.
	LayerConvolution LayerKind = iota + 1
	// LayerActivation applies an element-wise activation function.
	LayerActivation
	// LayerPooling is a 2D pooling window over NCHW tensors.
	LayerPooling
	// LayerShuffle transposes and then reshapes a tensor.
	LayerShuffle
	// LayerConstant produces a tensor from embedded weights.
	LayerConstant
	// LayerMatrixMultiply multiplies two rank-2 tensors.
	LayerMatrixMultiply
	// LayerElementWise combines two tensors with broadcasting.
	LayerElementWise
	// LayerSoftMax normalizes along one axis.
	LayerSoftMax
	// LayerTopK selects the K largest or smallest values along one axis.
	LayerTopK
)

var layerKindNames = map[LayerKind]string{
	LayerConvolution:    "convolution",
	LayerActivation:     "activation",
	LayerPooling:        "pooling",
	LayerShuffle:        "shuffle",
	LayerConstant:       "constant",
	LayerMatrixMultiply: "matmul",
	LayerElementWise:    "elementwise",
	LayerSoftMax:        "softmax",
	LayerTopK:           "topk",
}

// String returns the kind name.
func (k LayerKind) String() string {
	if name, ok := layerKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ActivationType selects an activation function.
type ActivationType uint8

const (
	// ActivationReLU is max(x, 0).
	ActivationReLU ActivationType = iota
	// ActivationSigmoid is 1 / (1 + e^-x).
	ActivationSigmoid
	// ActivationTanh is the hyperbolic tangent.
	ActivationTanh
)

// PoolingType selects a pooling reduction.
type PoolingType uint8

const (
	// PoolingMax takes the window maximum.
	PoolingMax PoolingType = iota
	// PoolingAverage takes the window mean.
	PoolingAverage
)

// ElementWiseOp selects a binary element-wise operation.
type ElementWiseOp uint8

const (
	// ElementWiseSum adds both operands.
	ElementWiseSum ElementWiseOp = iota
	// ElementWiseProd multiplies both operands.
	ElementWiseProd
	// ElementWiseMax takes the larger operand.
	ElementWiseMax
)

// TopKOp selects whether TopK keeps the largest or smallest values.
type TopKOp uint8

const (
	// TopKMax keeps the largest values.
	TopKMax TopKOp = iota
	// TopKMin keeps the smallest values.
	TopKMin
)

// ConvolutionParams configures a convolution layer. Weights are KCRS ordered.
type ConvolutionParams struct {
	OutChannels int       `msgpack:"out_channels"`
	Kernel      [2]int    `msgpack:"kernel"`
	Stride      [2]int    `msgpack:"stride"`
	Padding     [2]int    `msgpack:"padding"`
	Weights     []float32 `msgpack:"weights"`
	Bias        []float32 `msgpack:"bias"`
}

// ActivationParams configures an activation layer.
type ActivationParams struct {
	Type ActivationType `msgpack:"type"`
}

// PoolingParams configures a pooling layer.
type PoolingParams struct {
	Type   PoolingType `msgpack:"type"`
	Window [2]int      `msgpack:"window"`
	Stride [2]int      `msgpack:"stride"`
}

// ShuffleParams configures a shuffle layer.
// FirstTranspose is applied before Reshape; Reshape may hold one -1 and zeros that copy the input extent.
type ShuffleParams struct {
	FirstTranspose []int `msgpack:"first_transpose"`
	Reshape        Dims  `msgpack:"reshape"`
}

// ConstantParams holds the embedded tensor of a constant layer.
type ConstantParams struct {
	Dims    Dims      `msgpack:"dims"`
	Weights []float32 `msgpack:"weights"`
}

// MatrixMultiplyParams configures a matrix multiply layer.
type MatrixMultiplyParams struct {
	TransposeA bool `msgpack:"transpose_a"`
	TransposeB bool `msgpack:"transpose_b"`
}

// ElementWiseParams configures an element-wise layer.
type ElementWiseParams struct {
	Op ElementWiseOp `msgpack:"op"`
}

// SoftMaxParams configures a softmax layer. Axes is a bit mask with exactly one bit set.
type SoftMaxParams struct {
	Axes uint32 `msgpack:"axes"`
}

// TopKParams configures a top-k layer. Axes is a bit mask with exactly one bit set.
type TopKParams struct {
	Op   TopKOp `msgpack:"op"`
	K    int    `msgpack:"k"`
	Axes uint32 `msgpack:"axes"`
}

// Layer is one operation in a Network.
type Layer struct {
	Name    string    `msgpack:"name"`
	Kind    LayerKind `msgpack:"kind"`
	Inputs  []string  `msgpack:"inputs"`
	Outputs []Tensor  `msgpack:"outputs"`

	Convolution    *ConvolutionParams    `msgpack:"convolution,omitempty"`
	Activation     *ActivationParams     `msgpack:"activation,omitempty"`
	Pooling        *PoolingParams        `msgpack:"pooling,omitempty"`
	Shuffle        *ShuffleParams        `msgpack:"shuffle,omitempty"`
	Constant       *ConstantParams       `msgpack:"constant,omitempty"`
	MatrixMultiply *MatrixMultiplyParams `msgpack:"matrix_multiply,omitempty"`
	ElementWise    *ElementWiseParams    `msgpack:"element_wise,omitempty"`
	SoftMax        *SoftMaxParams        `msgpack:"softmax,omitempty"`
	TopK           *TopKParams           `msgpack:"topk,omitempty"`
}

// Output returns the i-th output tensor of the layer.
func (l *Layer) Output(i int) *Tensor {
	return &l.Outputs[i]
}

// Network is a declarative computation graph.
// Layers are stored in definition order, which is also a valid execution order.
type Network struct {
	Inputs  []Tensor `msgpack:"inputs"`
	Layers  []*Layer `msgpack:"layers"`
	Outputs []string `msgpack:"outputs"`

	names map[string]struct{}
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return &Network{names: make(map[string]struct{})}
}

// AddInput declares a network input.
func (n *Network) AddInput(name string, dt DataType, dims Dims) (*Tensor, error) {
	if err := n.claim(name); err != nil {
		return nil, err
	}
	n.Inputs = append(n.Inputs, Tensor{Name: name, Type: dt, Dims: dims.Clone()})
	return &n.Inputs[len(n.Inputs)-1], nil
}

// AddConvolution adds a 2D convolution with unit stride and no padding.
func (n *Network) AddConvolution(in *Tensor, outChannels int, kernel [2]int, weights, bias []float32) *Layer {
	return n.addLayer(LayerConvolution, 1, func(l *Layer) {
		l.Convolution = &ConvolutionParams{
			OutChannels: outChannels,
			Kernel:      kernel,
			Stride:      [2]int{1, 1},
			Weights:     weights,
			Bias:        bias,
		}
	}, in)
}

// AddActivation adds an element-wise activation.
func (n *Network) AddActivation(in *Tensor, t ActivationType) *Layer {
	return n.addLayer(LayerActivation, 1, func(l *Layer) {
		l.Activation = &ActivationParams{Type: t}
	}, in)
}

// AddPooling adds a pooling layer whose stride defaults to the window size.
func (n *Network) AddPooling(in *Tensor, t PoolingType, window [2]int) *Layer {
	return n.addLayer(LayerPooling, 1, func(l *Layer) {
		l.Pooling = &PoolingParams{Type: t, Window: window, Stride: window}
	}, in)
}

// AddShuffle adds an identity shuffle; set FirstTranspose and Reshape on the returned layer.
func (n *Network) AddShuffle(in *Tensor) *Layer {
	return n.addLayer(LayerShuffle, 1, func(l *Layer) {
		l.Shuffle = &ShuffleParams{}
	}, in)
}

// AddConstant adds a constant tensor.
func (n *Network) AddConstant(dims Dims, weights []float32) *Layer {
	return n.addLayer(LayerConstant, 1, func(l *Layer) {
		l.Constant = &ConstantParams{Dims: dims.Clone(), Weights: weights}
	})
}

// AddMatrixMultiply multiplies a by b.
func (n *Network) AddMatrixMultiply(a *Tensor, transposeA bool, b *Tensor, transposeB bool) *Layer {
	return n.addLayer(LayerMatrixMultiply, 1, func(l *Layer) {
		l.MatrixMultiply = &MatrixMultiplyParams{TransposeA: transposeA, TransposeB: transposeB}
	}, a, b)
}

// AddElementWise combines a and b.
func (n *Network) AddElementWise(a, b *Tensor, op ElementWiseOp) *Layer {
	return n.addLayer(LayerElementWise, 1, func(l *Layer) {
		l.ElementWise = &ElementWiseParams{Op: op}
	}, a, b)
}

// AddSoftMax adds a softmax over axis 1.
func (n *Network) AddSoftMax(in *Tensor) *Layer {
	return n.addLayer(LayerSoftMax, 1, func(l *Layer) {
		l.SoftMax = &SoftMaxParams{Axes: 1 << 1}
	}, in)
}

// AddTopK adds a top-k reduction. Output 0 holds values, output 1 holds indices.
func (n *Network) AddTopK(in *Tensor, op TopKOp, k int, axes uint32) *Layer {
	l := n.addLayer(LayerTopK, 2, func(l *Layer) {
		l.TopK = &TopKParams{Op: op, K: k, Axes: axes}
	}, in)
	l.Outputs[1].Type = Int32
	return l
}

// MarkOutput marks a tensor as a network output.
func (n *Network) MarkOutput(t *Tensor) {
	n.Outputs = append(n.Outputs, t.Name)
}

// Input returns the named input tensor.
func (n *Network) Input(name string) (*Tensor, bool) {
	for i := range n.Inputs {
		if n.Inputs[i].Name == name {
			return &n.Inputs[i], true
		}
	}
	return nil, false
}

func (n *Network) addLayer(kind LayerKind, nOut int, configure func(*Layer), inputs ...*Tensor) *Layer {
	if n.names == nil {
		n.names = make(map[string]struct{})
	}
	idx := len(n.Layers)
	l := &Layer{
		Name: fmt.Sprintf("(Unnamed Layer* %d) [%s]", idx, kind),
		Kind: kind,
	}
	for _, in := range inputs {
		l.Inputs = append(l.Inputs, in.Name)
	}
	l.Outputs = make([]Tensor, nOut)
	for i := range l.Outputs {
		name := fmt.Sprintf("(Unnamed Layer* %d) [%s]_output", idx, kind)
		if nOut > 1 {
			name = fmt.Sprintf("%s_%d", name, i)
		}
		l.Outputs[i] = Tensor{Name: name, Type: Float32}
		n.names[name] = struct{}{}
	}
	configure(l)
	n.Layers = append(n.Layers, l)
	return l
}

func (n *Network) claim(name string) error {
	if n.names == nil {
		n.names = make(map[string]struct{})
	}
	if _, ok := n.names[name]; ok {
		return zerr.With(ErrDuplicateTensor, "tensor", name)
	}
	n.names[name] = struct{}{}
	return nil
}
