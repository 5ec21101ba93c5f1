package kernels

import "go.trai.ch/temper/internal/core/domain"

// convDirect evaluates the convolution sum in place, one output element at a time.
type convDirect struct {
	p *domain.ConvolutionParams
}

func (k *convDirect) Tactic() string { return "conv.direct" }

func (k *convDirect) Workspace(_ []domain.Dims) int64 { return 0 }

func (k *convDirect) Run(in []*Tensor, out []*Tensor) error {
	x, y := in[0], out[0]
	n, c, h, w := x.Dims[0], x.Dims[1], x.Dims[2], x.Dims[3]
	oc, oh, ow := y.Dims[1], y.Dims[2], y.Dims[3]
	kh, kw := k.p.Kernel[0], k.p.Kernel[1]
	sh, sw := k.p.Stride[0], k.p.Stride[1]
	ph, pw := k.p.Padding[0], k.p.Padding[1]

	for b := range n {
		for o := range oc {
			for i := range oh {
				for j := range ow {
					var acc float32
					for ci := range c {
						for r := range kh {
							iy := i*sh - ph + r
							if iy < 0 || iy >= h {
								continue
							}
							for s := range kw {
								ix := j*sw - pw + s
								if ix < 0 || ix >= w {
									continue
								}
								acc += float32(x.Data[((b*c+ci)*h+iy)*w+ix] * k.p.Weights[((o*c+ci)*kh+r)*kw+s])
							}
						}
					}
					if len(k.p.Bias) > 0 {
						acc += k.p.Bias[o]
					}
					y.Data[((b*oc+o)*oh+i)*ow+j] = acc
				}
			}
		}
	}
	return nil
}

// convIm2col unrolls input patches into a column matrix and multiplies it by the filter matrix.
type convIm2col struct {
	p *domain.ConvolutionParams
}

func (k *convIm2col) Tactic() string { return "conv.im2col" }

func (k *convIm2col) Workspace(in []domain.Dims) int64 {
	x := in[0]
	oh := (x[2]+2*k.p.Padding[0]-k.p.Kernel[0])/k.p.Stride[0] + 1
	ow := (x[3]+2*k.p.Padding[1]-k.p.Kernel[1])/k.p.Stride[1] + 1
	return int64(x[1]*k.p.Kernel[0]*k.p.Kernel[1]*oh*ow) * 4
}

func (k *convIm2col) Run(in []*Tensor, out []*Tensor) error {
	x, y := in[0], out[0]
	n, c, h, w := x.Dims[0], x.Dims[1], x.Dims[2], x.Dims[3]
	oc, oh, ow := y.Dims[1], y.Dims[2], y.Dims[3]
	kh, kw := k.p.Kernel[0], k.p.Kernel[1]
	sh, sw := k.p.Stride[0], k.p.Stride[1]
	ph, pw := k.p.Padding[0], k.p.Padding[1]

	rows := c * kh * kw
	cols := oh * ow
	col := make([]float32, rows*cols)

	for b := range n {
		clear(col)
		for ci := range c {
			for r := range kh {
				for s := range kw {
					row := (ci*kh+r)*kw + s
					for i := range oh {
						iy := i*sh - ph + r
						if iy < 0 || iy >= h {
							continue
						}
						for j := range ow {
							ix := j*sw - pw + s
							if ix < 0 || ix >= w {
								continue
							}
							col[row*cols+i*ow+j] = x.Data[((b*c+ci)*h+iy)*w+ix]
						}
					}
				}
			}
		}

		for o := range oc {
			filter := k.p.Weights[o*rows : (o+1)*rows]
			dst := y.Data[(b*oc+o)*cols : (b*oc+o+1)*cols]
			for p := range cols {
				var acc float32
				for q := range rows {
					acc += float32(filter[q] * col[q*cols+p])
				}
				if len(k.p.Bias) > 0 {
					acc += k.p.Bias[o]
				}
				dst[p] = acc
			}
		}
	}
	return nil
}
