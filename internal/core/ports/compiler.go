// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/temper/internal/core/domain"
)

// Compiler translates a network into a serialized, executable plan.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Device returns the identity of the device the compiler targets.
	Device() domain.DeviceInfo

	// Build compiles the network with the given configuration.
	//
	// When a timing cache is attached to the config, the result carries the
	// cache as it stands after the build. The network and config are not modified.
	Build(ctx context.Context, network *domain.Network, config *domain.BuildConfig) (*domain.CompileResult, error)
}
