package telemetry_test

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/temper/internal/adapters/telemetry"
	"go.trai.ch/temper/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func endedSpan(name string, status sdktrace.Status, attrs ...attribute.KeyValue) sdktrace.ReadOnlySpan {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return tracetest.SpanStub{
		Name: name,
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: trace.TraceID{1},
			SpanID:  trace.SpanID{2},
		}),
		StartTime:  start,
		EndTime:    start.Add(1500 * time.Microsecond),
		Status:     status,
		Attributes: attrs,
	}.Snapshot()
}

func TestBridge_OnEnd(t *testing.T) {
	tests := []struct {
		name string
		span sdktrace.ReadOnlySpan
		want string
	}{
		{
			name: "finished",
			span: endedSpan("compiling", sdktrace.Status{Code: codes.Ok}),
			want: "stage compiling finished in 1.5ms",
		},
		{
			name: "cached",
			span: endedSpan("cache-lookup", sdktrace.Status{}, attribute.Bool(telemetry.CachedAttribute, true)),
			want: "stage cache-lookup finished in 1.5ms (cached)",
		},
		{
			name: "failed",
			span: endedSpan("compiling", sdktrace.Status{Code: codes.Error, Description: "boom"}),
			want: "stage compiling failed after 1.5ms: boom",
		},
		{
			name: "failed without description",
			span: endedSpan("loaded", sdktrace.Status{Code: codes.Error}),
			want: "stage loaded failed after 1.5ms: stage failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockLogger := mocks.NewMockLogger(ctrl)
			mockLogger.EXPECT().Debug(tt.want).Times(1)

			telemetry.NewBridge(mockLogger).OnEnd(tt.span)
		})
	}
}

func TestBridge_OnEndInvalidSpanContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	span := tracetest.SpanStub{Name: "compiling"}.Snapshot()
	telemetry.NewBridge(mockLogger).OnEnd(span)
}

func TestBridge_NilLogger(_ *testing.T) {
	bridge := telemetry.NewBridge(nil)
	bridge.OnEnd(endedSpan("compiling", sdktrace.Status{}))
	_ = bridge.ForceFlush(context.Background())
	_ = bridge.Shutdown(context.Background())
}

func TestBridge_ThroughTracer(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).Times(1)

	tracer := telemetry.NewOTelTracer("test-tracer", telemetry.NewBridge(mockLogger))
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	_, span := tracer.Start(context.Background(), "compiling")
	span.End()
}
