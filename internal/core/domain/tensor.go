package domain

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"
)

// DataType is the element type of a tensor.
type DataType uint8

const (
	// Float32 is a 32-bit IEEE 754 float.
	Float32 DataType = iota
	// Int32 is a 32-bit signed integer.
	Int32
)

// Size returns the element size in bytes.
func (t DataType) Size() int {
	return 4
}

// String returns the type name.
func (t DataType) String() string {
	switch t {
	case Float32:
		return "float32"
	case Int32:
		return "int32"
	default:
		return "unknown"
	}
}

// DynamicDim marks a dimension resolved at execution time.
const DynamicDim = -1

// Dims holds tensor dimensions. A DynamicDim entry is resolved through an optimization profile.
type Dims []int

// IsDynamic reports whether any dimension is DynamicDim.
func (d Dims) IsDynamic() bool {
	for _, v := range d {
		if v == DynamicDim {
			return true
		}
	}
	return false
}

// Volume returns the number of elements. Dynamic dimensions yield zero.
func (d Dims) Volume() int {
	if len(d) == 0 {
		return 0
	}
	v := 1
	for _, x := range d {
		if x < 0 {
			return 0
		}
		v *= x
	}
	return v
}

// Equal reports whether both dims have the same rank and extents.
func (d Dims) Equal(o Dims) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if d[i] != o[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of d.
func (d Dims) Clone() Dims {
	if d == nil {
		return nil
	}
	out := make(Dims, len(d))
	copy(out, d)
	return out
}

// String formats dims as "1x1x28x28".
func (d Dims) String() string {
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, "x")
}

// Tensor describes a named value in a network.
type Tensor struct {
	Name string   `msgpack:"name"`
	Type DataType `msgpack:"type"`
	Dims Dims     `msgpack:"dims"`
}

// HostTensor is a tensor resident in host memory, stored little-endian.
type HostTensor struct {
	Name string
	Type DataType
	Dims Dims
	Data []byte
}

// Float32s decodes the tensor data as float32 values.
func (t HostTensor) Float32s() []float32 {
	return DecodeFloat32s(t.Data)
}

// Int32s decodes the tensor data as int32 values.
func (t HostTensor) Int32s() []int32 {
	out := make([]int32, len(t.Data)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(t.Data[i*4:])) //nolint:gosec // two's complement reinterpretation
	}
	return out
}

// EncodeFloat32s encodes values as little-endian bytes.
func EncodeFloat32s(values []float32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// DecodeFloat32s decodes little-endian bytes into float32 values.
func DecodeFloat32s(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

// EncodeInt32s encodes values as little-endian bytes.
func EncodeInt32s(values []int32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(v)) //nolint:gosec // two's complement reinterpretation
	}
	return out
}
