package timingcache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/temper/internal/adapters/cpu/timingcache"
	"go.trai.ch/temper/internal/core/domain"
)

func TestDecode_EmptyBlob(t *testing.T) {
	c, err := timingcache.Decode(domain.TimingCacheBlob{})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestEncodeDecode_PreservesEntries(t *testing.T) {
	c := timingcache.New()
	c.Record("matmul:b", "gemm.ikj", 3*time.Millisecond)
	c.Record("convolution:a", "conv.im2col", 7*time.Millisecond)
	c.Record("matmul:b", "gemm.blocked", 2*time.Millisecond)

	blob, err := c.Encode()
	require.NoError(t, err)
	assert.False(t, blob.IsEmpty())

	decoded, err := timingcache.Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, 2, decoded.Len())

	e, ok := decoded.Lookup("matmul:b")
	require.True(t, ok)
	assert.Equal(t, "gemm.blocked", e.Tactic)
	assert.Equal(t, int64(2*time.Millisecond), e.Nanos)

	_, ok = decoded.Lookup("pooling:c")
	assert.False(t, ok)
}

func TestEncode_IsDeterministic(t *testing.T) {
	a, b := timingcache.New(), timingcache.New()
	for _, k := range []string{"x", "y", "z"} {
		a.Record(k, "t", time.Second)
	}
	for _, k := range []string{"z", "x", "y"} {
		b.Record(k, "t", time.Second)
	}

	ba, err := a.Encode()
	require.NoError(t, err)
	bb, err := b.Encode()
	require.NoError(t, err)
	assert.Equal(t, ba.Bytes(), bb.Bytes())
}

func TestDecode_Rejects(t *testing.T) {
	wrongVersion, err := msgpack.Marshal(map[string]any{"magic": "TMPRTC", "version": 99, "entries": []any{}})
	require.NoError(t, err)
	wrongMagic, err := msgpack.Marshal(map[string]any{"magic": "PLAN", "version": 1})
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "garbage", data: []byte("not a timing cache")},
		{name: "wrong version", data: wrongVersion},
		{name: "wrong magic", data: wrongMagic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := timingcache.Decode(domain.NewTimingCacheBlob(tt.data))
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrInvalidTimingCache.Error())
		})
	}
}

func TestKey(t *testing.T) {
	conv := func(weights []float32, out int) *domain.Layer {
		return &domain.Layer{
			Kind: domain.LayerConvolution,
			Convolution: &domain.ConvolutionParams{
				OutChannels: out, Kernel: [2]int{5, 5}, Stride: [2]int{1, 1}, Padding: [2]int{2, 2}, Weights: weights,
			},
		}
	}
	in := []domain.Dims{{4, 1, 28, 28}}

	base := timingcache.Key("cpu/amd64", conv([]float32{1}, 32), in)
	assert.Contains(t, base, "convolution:")

	assert.Equal(t, base, timingcache.Key("cpu/amd64", conv([]float32{2}, 32), in), "weights do not affect the key")
	assert.NotEqual(t, base, timingcache.Key("cpu/arm64", conv([]float32{1}, 32), in))
	assert.NotEqual(t, base, timingcache.Key("cpu/amd64", conv([]float32{1}, 64), in))
	assert.NotEqual(t, base, timingcache.Key("cpu/amd64", conv([]float32{1}, 32), []domain.Dims{{8, 1, 28, 28}}))
}
