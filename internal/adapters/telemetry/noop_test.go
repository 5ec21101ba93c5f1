package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/temper/internal/adapters/telemetry"
	"go.trai.ch/temper/internal/adapters/telemetry/progrock"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestNoOpTracer(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	newCtx, span := tracer.Start(ctx, "test-span")
	assert.Equal(t, ctx, newCtx)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.Cached()
	n, err := span.Write([]byte("data"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	span.End()

	require.NoError(t, tracer.Shutdown(ctx))
}

func TestNewTracer(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	otelTracer := telemetry.NewTracer(domain.TracerOTel, mockLogger)
	assert.IsType(t, &telemetry.OTelTracer{}, otelTracer)
	require.NoError(t, otelTracer.Shutdown(context.Background()))

	assert.IsType(t, &progrock.Recorder{}, telemetry.NewTracer(domain.TracerProgrock, mockLogger))
	assert.IsType(t, &telemetry.NoOpTracer{}, telemetry.NewTracer(domain.TracerNone, mockLogger))
}
