// Package fingerprint derives stable identities for network builds.
package fingerprint

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
)

var _ ports.Fingerprinter = (*Hasher)(nil)

// Hasher computes xxhash fingerprints of a network, its build config and the target device.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint returns a 16 hex digit identity. Two builds share a fingerprint only when
// their graph, weights, profiles, compiler settings and device are equal.
func (h *Hasher) Fingerprint(net *domain.Network, cfg *domain.BuildConfig, device domain.DeviceInfo) string {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(device.ID())
	_, _ = hasher.Write([]byte{0})

	for _, t := range net.Inputs {
		hashTensor(hasher, t)
	}
	_, _ = hasher.Write([]byte{0})

	for _, l := range net.Layers {
		hashLayer(hasher, l)
	}
	_, _ = hasher.Write([]byte{0})

	for _, name := range net.Outputs {
		_, _ = hasher.WriteString(name)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	hashConfig(hasher, cfg)

	return fmt.Sprintf("%016x", hasher.Sum64())
}

func hashTensor(hasher *xxhash.Digest, t domain.Tensor) {
	_, _ = hasher.WriteString(t.Name)
	_, _ = hasher.Write([]byte{0, byte(t.Type)})
	hashDims(hasher, t.Dims)
}

func hashDims(hasher *xxhash.Digest, d domain.Dims) {
	_, _ = hasher.WriteString(d.String())
	_, _ = hasher.Write([]byte{0})
}

func hashInts(hasher *xxhash.Digest, values ...int) {
	for _, v := range values {
		_, _ = hasher.WriteString(strconv.Itoa(v))
		_, _ = hasher.Write([]byte{','})
	}
	_, _ = hasher.Write([]byte{0})
}

func hashFloats(hasher *xxhash.Digest, values []float32) {
	var buf [4]byte
	hashInts(hasher, len(values))
	for _, v := range values {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
		_, _ = hasher.Write(buf[:])
	}
}

//nolint:cyclop // one branch per parameter block
func hashLayer(hasher *xxhash.Digest, l *domain.Layer) {
	_, _ = hasher.WriteString(l.Name)
	_, _ = hasher.Write([]byte{0, byte(l.Kind)})
	for _, in := range l.Inputs {
		_, _ = hasher.WriteString(in)
		_, _ = hasher.Write([]byte{0})
	}
	for _, out := range l.Outputs {
		hashTensor(hasher, out)
	}

	switch {
	case l.Convolution != nil:
		p := l.Convolution
		hashInts(hasher, p.OutChannels, p.Kernel[0], p.Kernel[1], p.Stride[0], p.Stride[1], p.Padding[0], p.Padding[1])
		hashFloats(hasher, p.Weights)
		hashFloats(hasher, p.Bias)
	case l.Activation != nil:
		hashInts(hasher, int(l.Activation.Type))
	case l.Pooling != nil:
		p := l.Pooling
		hashInts(hasher, int(p.Type), p.Window[0], p.Window[1], p.Stride[0], p.Stride[1])
	case l.Shuffle != nil:
		hashInts(hasher, l.Shuffle.FirstTranspose...)
		hashDims(hasher, l.Shuffle.Reshape)
	case l.Constant != nil:
		hashDims(hasher, l.Constant.Dims)
		hashFloats(hasher, l.Constant.Weights)
	case l.MatrixMultiply != nil:
		hashInts(hasher, boolInt(l.MatrixMultiply.TransposeA), boolInt(l.MatrixMultiply.TransposeB))
	case l.ElementWise != nil:
		hashInts(hasher, int(l.ElementWise.Op))
	case l.SoftMax != nil:
		hashInts(hasher, int(l.SoftMax.Axes))
	case l.TopK != nil:
		hashInts(hasher, int(l.TopK.Op), l.TopK.K, int(l.TopK.Axes))
	}
	_, _ = hasher.Write([]byte{0})
}

func hashConfig(hasher *xxhash.Digest, cfg *domain.BuildConfig) {
	hashInts(hasher, cfg.TimingIterations)
	_, _ = hasher.WriteString(strconv.FormatInt(cfg.WorkspaceLimit, 10))
	_, _ = hasher.Write([]byte{0})
	for _, p := range cfg.Profiles {
		_, _ = hasher.WriteString(p.Input)
		_, _ = hasher.Write([]byte{0})
		hashDims(hasher, p.Min)
		hashDims(hasher, p.Opt)
		hashDims(hasher, p.Max)
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
