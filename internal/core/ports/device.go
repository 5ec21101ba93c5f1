package ports

import "go.trai.ch/temper/internal/core/domain"

// Device provides memory primitives for the execution device.
//
//go:generate go run go.uber.org/mock/mockgen -source=device.go -destination=mocks/mock_device.go -package=mocks
type Device interface {
	// Malloc allocates size bytes of device memory.
	Malloc(size int) (domain.DevicePtr, error)

	// Free releases device memory.
	Free(ptr domain.DevicePtr) error

	// CopyHostToDevice copies src into the device buffer at dst.
	CopyHostToDevice(dst domain.DevicePtr, src []byte) error

	// CopyDeviceToHost copies the device buffer at src into dst.
	CopyDeviceToHost(dst []byte, src domain.DevicePtr) error

	// View returns the memory backing ptr. It is only valid until ptr is freed.
	View(ptr domain.DevicePtr) ([]byte, error)
}
