package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/temper/internal/core/ports"
)

// CachedAttribute is set on spans whose work was served from the timing cache.
const CachedAttribute = "temper.cached"

// Bridge implements sdktrace.SpanProcessor to report finished stages to a Logger.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{
		logger: logger,
	}
}

// OnStart does nothing; stages are reported when they finish.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the stage name and duration at debug level.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Microsecond)

	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "stage failed"
		}
		b.logger.Debug(fmt.Sprintf("stage %s failed after %s: %s", s.Name(), elapsed, desc))
		return
	}

	suffix := ""
	for _, kv := range s.Attributes() {
		if kv.Key == attribute.Key(CachedAttribute) && kv.Value.AsBool() {
			suffix = " (cached)"
		}
	}
	b.logger.Debug(fmt.Sprintf("stage %s finished in %s%s", s.Name(), elapsed, suffix))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
