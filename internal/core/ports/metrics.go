package ports

import (
	"time"

	"go.trai.ch/temper/internal/core/domain"
)

// BuildMetrics records build latency and cache outcomes.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type BuildMetrics interface {
	// ObserveLookup counts a cache lookup outcome.
	ObserveLookup(outcome domain.LookupOutcome)
	// ObserveBuild records the compile time of one build.
	ObserveBuild(useCache bool, elapsed time.Duration)
	// ObserveCapture counts a cache capture outcome.
	ObserveCapture(outcome domain.CaptureOutcome)
	// Flush exports the collected metrics, if an export target is configured.
	Flush() error
}
