package ports

import (
	"context"

	"go.trai.ch/temper/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=runtime.go -destination=mocks/mock_runtime.go -package=mocks

// Runtime loads compiled artifacts into executable engines.
type Runtime interface {
	// Deserialize loads a compiled artifact.
	Deserialize(artifact domain.CompiledArtifact) (Engine, error)
}

// Engine is a loaded plan.
type Engine interface {
	// Bindings returns the input and output slots in binding order.
	Bindings() []domain.Binding

	// NewExecutionContext creates an independent execution state.
	NewExecutionContext() (ExecutionContext, error)

	// Close releases the engine.
	Close() error
}

// ExecutionContext runs inference on a loaded engine.
type ExecutionContext interface {
	// SetInputShape fixes the dimensions of a dynamic input for subsequent executions.
	SetInputShape(name string, dims domain.Dims) error

	// BindingShape returns the resolved dimensions of a binding.
	BindingShape(name string) (domain.Dims, error)

	// Execute runs one inference pass. buffers holds one device pointer per binding, in binding order.
	Execute(ctx context.Context, buffers []domain.DevicePtr) error
}
