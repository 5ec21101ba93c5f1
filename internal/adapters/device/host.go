// Package device implements ports.Device on host memory.
package device

import (
	"sync"

	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/zerr"
)

// Host is a device whose memory is ordinary Go byte slices.
type Host struct {
	mu     sync.Mutex
	next   domain.DevicePtr
	allocs map[domain.DevicePtr][]byte
	limit  int
	inUse  int
}

// NewHost creates a host device. A positive limit caps the total bytes allocated at once.
func NewHost(limit int) *Host {
	return &Host{allocs: make(map[domain.DevicePtr][]byte), limit: limit}
}

// Malloc allocates a zeroed buffer.
func (h *Host) Malloc(size int) (domain.DevicePtr, error) {
	if size <= 0 {
		return 0, zerr.With(domain.ErrDeviceAllocFailed, "size", size)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.limit > 0 && h.inUse+size > h.limit {
		return 0, zerr.With(zerr.With(domain.ErrDeviceAllocFailed, "size", size), "in_use", h.inUse)
	}
	h.next++
	h.allocs[h.next] = make([]byte, size)
	h.inUse += size
	return h.next, nil
}

// Free releases a buffer.
func (h *Host) Free(ptr domain.DevicePtr) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	buf, ok := h.allocs[ptr]
	if !ok {
		return zerr.With(domain.ErrInvalidDevicePtr, "ptr", uint64(ptr))
	}
	h.inUse -= len(buf)
	delete(h.allocs, ptr)
	return nil
}

// CopyHostToDevice copies src into dst. Sizes must match exactly.
func (h *Host) CopyHostToDevice(dst domain.DevicePtr, src []byte) error {
	buf, err := h.View(dst)
	if err != nil {
		return err
	}
	if len(buf) != len(src) {
		return zerr.With(zerr.With(domain.ErrCopySizeMismatch, "device_bytes", len(buf)), "host_bytes", len(src))
	}
	copy(buf, src)
	return nil
}

// CopyDeviceToHost copies src into dst. Sizes must match exactly.
func (h *Host) CopyDeviceToHost(dst []byte, src domain.DevicePtr) error {
	buf, err := h.View(src)
	if err != nil {
		return err
	}
	if len(buf) != len(dst) {
		return zerr.With(zerr.With(domain.ErrCopySizeMismatch, "device_bytes", len(buf)), "host_bytes", len(dst))
	}
	copy(dst, buf)
	return nil
}

// View returns the buffer backing ptr.
func (h *Host) View(ptr domain.DevicePtr) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	buf, ok := h.allocs[ptr]
	if !ok {
		return nil, zerr.With(domain.ErrInvalidDevicePtr, "ptr", uint64(ptr))
	}
	return buf, nil
}

// Allocations returns the number of live buffers.
func (h *Host) Allocations() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.allocs)
}
