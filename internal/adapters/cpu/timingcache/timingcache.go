// Package timingcache implements the serialized timing cache of the reference CPU backend.
package timingcache

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	magic = "TMPRTC"
	// Version is the on-disk format version. Blobs of another version are rejected.
	Version = 1
)

// Entry is one recorded tactic measurement.
type Entry struct {
	Key    string `msgpack:"key"`
	Tactic string `msgpack:"tactic"`
	Nanos  int64  `msgpack:"nanos"`
}

type file struct {
	Magic   string  `msgpack:"magic"`
	Version int     `msgpack:"version"`
	Entries []Entry `msgpack:"entries"`
}

// Cache maps layer timing keys to the fastest measured tactic.
type Cache struct {
	entries map[string]Entry
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

// Decode parses a serialized cache. An empty blob yields an empty cache.
func Decode(blob domain.TimingCacheBlob) (*Cache, error) {
	c := New()
	if blob.IsEmpty() {
		return c, nil
	}

	var f file
	if err := msgpack.Unmarshal(blob.Bytes(), &f); err != nil {
		return nil, zerr.Wrap(err, domain.ErrInvalidTimingCache.Error())
	}
	if f.Magic != magic {
		return nil, zerr.With(domain.ErrInvalidTimingCache, "magic", f.Magic)
	}
	if f.Version != Version {
		return nil, zerr.With(zerr.With(domain.ErrInvalidTimingCache, "version", f.Version), "expected_version", Version)
	}
	for _, e := range f.Entries {
		c.entries[e.Key] = e
	}
	return c, nil
}

// Encode serializes the cache with entries sorted by key, so equal caches encode identically.
func (c *Cache) Encode() (domain.TimingCacheBlob, error) {
	f := file{Magic: magic, Version: Version, Entries: make([]Entry, 0, len(c.entries))}
	for _, e := range c.entries {
		f.Entries = append(f.Entries, e)
	}
	slices.SortFunc(f.Entries, func(a, b Entry) int { return strings.Compare(a.Key, b.Key) })

	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&f); err != nil {
		return domain.TimingCacheBlob{}, zerr.Wrap(err, "failed to encode timing cache")
	}
	return domain.NewTimingCacheBlob(buf.Bytes()), nil
}

// Lookup returns the entry recorded for key.
func (c *Cache) Lookup(key string) (Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Record stores the winning tactic for key, replacing any previous entry.
func (c *Cache) Record(key, tactic string, elapsed time.Duration) {
	c.entries[key] = Entry{Key: key, Tactic: tactic, Nanos: elapsed.Nanoseconds()}
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// signature is the part of a layer that determines tactic performance.
// Weight values are excluded: layers with equal geometry share timings.
type signature struct {
	Device         string                       `msgpack:"device"`
	Kind           domain.LayerKind             `msgpack:"kind"`
	Inputs         []domain.Dims                `msgpack:"inputs"`
	OutChannels    int                          `msgpack:"out_channels,omitempty"`
	Kernel         [2]int                       `msgpack:"kernel,omitempty"`
	Stride         [2]int                       `msgpack:"stride,omitempty"`
	Padding        [2]int                       `msgpack:"padding,omitempty"`
	HasBias        bool                         `msgpack:"has_bias,omitempty"`
	MatrixMultiply *domain.MatrixMultiplyParams `msgpack:"matrix_multiply,omitempty"`
}

// Key derives the timing key of a layer on a device for the given input dimensions.
func Key(device string, l *domain.Layer, in []domain.Dims) string {
	sig := signature{Device: device, Kind: l.Kind, Inputs: in}
	if p := l.Convolution; p != nil {
		sig.OutChannels = p.OutChannels
		sig.Kernel, sig.Stride, sig.Padding = p.Kernel, p.Stride, p.Padding
		sig.HasBias = len(p.Bias) > 0
	}
	sig.MatrixMultiply = l.MatrixMultiply

	b, err := msgpack.Marshal(&sig)
	if err != nil {
		// Fall back to the printed form; every signature field is printable.
		b = fmt.Appendf(nil, "%+v", sig)
	}
	return fmt.Sprintf("%s:%016x", l.Kind, xxhash.Sum64(b))
}
