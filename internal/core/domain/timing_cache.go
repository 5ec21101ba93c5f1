package domain

// TimingCacheBlob is an opaque, immutable timing cache produced by a compiler.
// Its content is owned by the compiler; the build workflow only loads, attaches and persists it.
type TimingCacheBlob struct {
	data []byte
}

// NewTimingCacheBlob copies b into a new blob.
func NewTimingCacheBlob(b []byte) TimingCacheBlob {
	if len(b) == 0 {
		return TimingCacheBlob{}
	}
	data := make([]byte, len(b))
	copy(data, b)
	return TimingCacheBlob{data: data}
}

// Bytes returns a copy of the blob content.
func (b TimingCacheBlob) Bytes() []byte {
	if len(b.data) == 0 {
		return nil
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Len returns the blob size in bytes.
func (b TimingCacheBlob) Len() int {
	return len(b.data)
}

// IsEmpty reports whether the blob holds no data.
// An empty blob attached to a build means "start an empty cache".
func (b TimingCacheBlob) IsEmpty() bool {
	return len(b.data) == 0
}

// TimingCacheMode controls how a compiler treats an attached timing cache.
type TimingCacheMode uint8

const (
	// TimingCacheShared lets the compiler consult the cache and append new measurements.
	TimingCacheShared TimingCacheMode = iota
	// TimingCacheExclusive makes the compiler fail on any layer the cache has not seen.
	TimingCacheExclusive
)

// String returns the mode name.
func (m TimingCacheMode) String() string {
	switch m {
	case TimingCacheShared:
		return "shared"
	case TimingCacheExclusive:
		return "exclusive"
	default:
		return "unknown"
	}
}
