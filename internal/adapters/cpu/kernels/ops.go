package kernels

import (
	"math"

	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/zerr"
)

type activation struct {
	p *domain.ActivationParams
}

func (k *activation) Tactic() string { return "activation.generic" }

func (k *activation) Workspace(_ []domain.Dims) int64 { return 0 }

func (k *activation) Run(in []*Tensor, out []*Tensor) error {
	x, y := in[0].Data, out[0].Data
	switch k.p.Type {
	case domain.ActivationReLU:
		for i, v := range x {
			y[i] = max(v, 0)
		}
	case domain.ActivationSigmoid:
		for i, v := range x {
			y[i] = float32(1 / (1 + math.Exp(-float64(v))))
		}
	case domain.ActivationTanh:
		for i, v := range x {
			y[i] = float32(math.Tanh(float64(v)))
		}
	default:
		return zerr.With(domain.ErrUnsupportedLayer, "activation", k.p.Type)
	}
	return nil
}

type pooling struct {
	p *domain.PoolingParams
}

func (k *pooling) Tactic() string { return "pooling.generic" }

func (k *pooling) Workspace(_ []domain.Dims) int64 { return 0 }

func (k *pooling) Run(in []*Tensor, out []*Tensor) error {
	x, y := in[0], out[0]
	n, c, h, w := x.Dims[0], x.Dims[1], x.Dims[2], x.Dims[3]
	oh, ow := y.Dims[2], y.Dims[3]
	wh, ww := k.p.Window[0], k.p.Window[1]
	sh, sw := k.p.Stride[0], k.p.Stride[1]
	area := float32(wh * ww)

	for plane := range n * c {
		src := x.Data[plane*h*w : (plane+1)*h*w]
		dst := y.Data[plane*oh*ow : (plane+1)*oh*ow]
		for i := range oh {
			for j := range ow {
				var acc float32
				if k.p.Type == domain.PoolingMax {
					acc = float32(math.Inf(-1))
				}
				for r := range wh {
					for s := range ww {
						v := src[(i*sh+r)*w+j*sw+s]
						if k.p.Type == domain.PoolingMax {
							acc = max(acc, v)
						} else {
							acc += v
						}
					}
				}
				if k.p.Type == domain.PoolingAverage {
					acc /= area
				}
				dst[i*ow+j] = acc
			}
		}
	}
	return nil
}

type shuffle struct {
	p *domain.ShuffleParams
}

func (k *shuffle) Tactic() string { return "shuffle.generic" }

func (k *shuffle) Workspace(_ []domain.Dims) int64 { return 0 }

// Run transposes into the output buffer; a reshape keeps the row-major order, so it needs no copy.
func (k *shuffle) Run(in []*Tensor, out []*Tensor) error {
	x, y := in[0], out[0]
	perm := k.p.FirstTranspose
	if len(perm) == 0 {
		copy(y.Data, x.Data)
		return nil
	}

	src := x.Dims
	nd := len(src)
	srcStrides := strides(src)
	dst := make(domain.Dims, nd)
	for i, p := range perm {
		dst[i] = src[p]
	}

	idx := make([]int, nd)
	for o := range y.Data {
		offset := 0
		for d := range nd {
			offset += idx[d] * srcStrides[perm[d]]
		}
		y.Data[o] = x.Data[offset]

		for d := nd - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < dst[d] {
				break
			}
			idx[d] = 0
		}
	}
	return nil
}

func strides(d domain.Dims) []int {
	s := make([]int, len(d))
	acc := 1
	for i := len(d) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= d[i]
	}
	return s
}

type constant struct {
	p *domain.ConstantParams
}

func (k *constant) Tactic() string { return "constant.generic" }

func (k *constant) Workspace(_ []domain.Dims) int64 { return 0 }

func (k *constant) Run(_ []*Tensor, out []*Tensor) error {
	copy(out[0].Data, k.p.Weights)
	return nil
}

type elementWise struct {
	p *domain.ElementWiseParams
}

func (k *elementWise) Tactic() string { return "elementwise.generic" }

func (k *elementWise) Workspace(_ []domain.Dims) int64 { return 0 }

func (k *elementWise) Run(in []*Tensor, out []*Tensor) error {
	a, b, y := in[0], in[1], out[0]
	nd := len(y.Dims)
	as, bs := broadcastStrides(a.Dims), broadcastStrides(b.Dims)

	idx := make([]int, nd)
	for o := range y.Data {
		ao, bo := 0, 0
		for d := range nd {
			ao += idx[d] * as[d]
			bo += idx[d] * bs[d]
		}
		av, bv := a.Data[ao], b.Data[bo]
		switch k.p.Op {
		case domain.ElementWiseSum:
			y.Data[o] = av + bv
		case domain.ElementWiseProd:
			y.Data[o] = av * bv
		case domain.ElementWiseMax:
			y.Data[o] = max(av, bv)
		default:
			return zerr.With(domain.ErrUnsupportedLayer, "elementwise", k.p.Op)
		}

		for d := nd - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < y.Dims[d] {
				break
			}
			idx[d] = 0
		}
	}
	return nil
}

// broadcastStrides returns row-major strides with zero stride on broadcast (extent 1) axes.
func broadcastStrides(d domain.Dims) []int {
	s := strides(d)
	for i, v := range d {
		if v == 1 {
			s[i] = 0
		}
	}
	return s
}

type softMax struct {
	p *domain.SoftMaxParams
}

func (k *softMax) Tactic() string { return "softmax.generic" }

func (k *softMax) Workspace(_ []domain.Dims) int64 { return 0 }

func (k *softMax) Run(in []*Tensor, out []*Tensor) error {
	x, y := in[0], out[0]
	axis, err := axisOf(k.p.Axes, len(x.Dims))
	if err != nil {
		return err
	}
	outer, extent, inner := split(x.Dims, axis)

	for o := range outer {
		for i := range inner {
			base := o*extent*inner + i
			peak := float32(math.Inf(-1))
			for e := range extent {
				peak = max(peak, x.Data[base+e*inner])
			}
			var sum float64
			for e := range extent {
				v := math.Exp(float64(x.Data[base+e*inner] - peak))
				y.Data[base+e*inner] = float32(v)
				sum += v
			}
			for e := range extent {
				y.Data[base+e*inner] = float32(float64(y.Data[base+e*inner]) / sum)
			}
		}
	}
	return nil
}

type topK struct {
	p *domain.TopKParams
}

func (k *topK) Tactic() string { return "topk.generic" }

func (k *topK) Workspace(_ []domain.Dims) int64 { return 0 }

// Run selects K entries per slice. Ties resolve to the lower index.
func (k *topK) Run(in []*Tensor, out []*Tensor) error {
	x, values, indices := in[0], out[0], out[1]
	axis, err := axisOf(k.p.Axes, len(x.Dims))
	if err != nil {
		return err
	}
	outer, extent, inner := split(x.Dims, axis)
	taken := make([]bool, extent)

	better := func(a, b float32) bool { return a > b }
	if k.p.Op == domain.TopKMin {
		better = func(a, b float32) bool { return a < b }
	}

	for o := range outer {
		for i := range inner {
			base := o*extent*inner + i
			clear(taken)
			for r := range k.p.K {
				best := -1
				for e := range extent {
					if taken[e] {
						continue
					}
					if best < 0 || better(x.Data[base+e*inner], x.Data[base+best*inner]) {
						best = e
					}
				}
				taken[best] = true
				dst := o*k.p.K*inner + r*inner + i
				values.Data[dst] = x.Data[base+best*inner]
				indices.Data[dst] = float32(best)
			}
		}
	}
	return nil
}

// split returns the element counts before, along and after axis.
func split(d domain.Dims, axis int) (outer, extent, inner int) {
	outer, inner = 1, 1
	for i := range axis {
		outer *= d[i]
	}
	for i := axis + 1; i < len(d); i++ {
		inner *= d[i]
	}
	return outer, d[axis], inner
}
