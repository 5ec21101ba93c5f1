package ports

import (
	"context"

	"go.trai.ch/temper/internal/core/domain"
)

// CacheAwareBuilder compiles the model, optionally reusing a persisted timing cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type CacheAwareBuilder interface {
	// Build runs one invocation. The report is non-nil even when an error is returned.
	Build(ctx context.Context, useCache bool) (*domain.BuildReport, error)
}
