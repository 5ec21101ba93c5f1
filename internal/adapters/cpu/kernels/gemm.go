package kernels

import "go.trai.ch/temper/internal/core/domain"

// operands resolves the logical M, K, N extents and element accessors of a matrix multiply.
type operands struct {
	m, k, n int
	a, b    []float32
	ta, tb  bool
}

func newOperands(p *domain.MatrixMultiplyParams, a, b *Tensor) operands {
	op := operands{a: a.Data, b: b.Data, ta: p.TransposeA, tb: p.TransposeB}
	op.m, op.k = a.Dims[0], a.Dims[1]
	if p.TransposeA {
		op.m, op.k = a.Dims[1], a.Dims[0]
	}
	op.n = b.Dims[1]
	if p.TransposeB {
		op.n = b.Dims[0]
	}
	return op
}

func (o *operands) at(i, k int) float32 {
	if o.ta {
		return o.a[k*o.m+i]
	}
	return o.a[i*o.k+k]
}

func (o *operands) bt(k, j int) float32 {
	if o.tb {
		return o.b[j*o.k+k]
	}
	return o.b[k*o.n+j]
}

// gemmNaive computes each output element as a dot product.
type gemmNaive struct {
	p *domain.MatrixMultiplyParams
}

func (g *gemmNaive) Tactic() string { return "gemm.naive" }

func (g *gemmNaive) Workspace(_ []domain.Dims) int64 { return 0 }

func (g *gemmNaive) Run(in []*Tensor, out []*Tensor) error {
	op := newOperands(g.p, in[0], in[1])
	c := out[0].Data
	for i := range op.m {
		for j := range op.n {
			var acc float32
			for k := range op.k {
				acc += float32(op.at(i, k) * op.bt(k, j))
			}
			c[i*op.n+j] = acc
		}
	}
	return nil
}

// gemmIKJ streams rows of B, accumulating into each output row.
type gemmIKJ struct {
	p *domain.MatrixMultiplyParams
}

func (g *gemmIKJ) Tactic() string { return "gemm.ikj" }

func (g *gemmIKJ) Workspace(_ []domain.Dims) int64 { return 0 }

func (g *gemmIKJ) Run(in []*Tensor, out []*Tensor) error {
	op := newOperands(g.p, in[0], in[1])
	c := out[0].Data
	clear(c)
	for i := range op.m {
		row := c[i*op.n : (i+1)*op.n]
		for k := range op.k {
			aik := op.at(i, k)
			for j := range op.n {
				row[j] += float32(aik * op.bt(k, j))
			}
		}
	}
	return nil
}

// gemmBlocked packs square tiles of B into a contiguous workspace before accumulating.
type gemmBlocked struct {
	p     *domain.MatrixMultiplyParams
	block int
}

func (g *gemmBlocked) Tactic() string { return "gemm.blocked" }

func (g *gemmBlocked) Workspace(_ []domain.Dims) int64 {
	return int64(g.block*g.block) * 4
}

func (g *gemmBlocked) Run(in []*Tensor, out []*Tensor) error {
	op := newOperands(g.p, in[0], in[1])
	c := out[0].Data
	clear(c)
	bs := g.block
	tile := make([]float32, bs*bs)

	for kk := 0; kk < op.k; kk += bs {
		kEnd := min(kk+bs, op.k)
		for jj := 0; jj < op.n; jj += bs {
			jEnd := min(jj+bs, op.n)
			width := jEnd - jj
			for k := kk; k < kEnd; k++ {
				for j := jj; j < jEnd; j++ {
					tile[(k-kk)*bs+(j-jj)] = op.bt(k, j)
				}
			}
			for i := range op.m {
				row := c[i*op.n+jj : i*op.n+jEnd]
				for k := kk; k < kEnd; k++ {
					aik := op.at(i, k)
					packed := tile[(k-kk)*bs : (k-kk)*bs+width]
					for j := range row {
						row[j] += float32(aik * packed[j])
					}
				}
			}
		}
	}
	return nil
}
