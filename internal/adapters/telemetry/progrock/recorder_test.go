package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	rec "go.trai.ch/temper/internal/adapters/telemetry/progrock"
)

func TestNew(t *testing.T) {
	recorder := rec.New()
	assert.NotNil(t, recorder)
}

func TestRecorder_Stages(t *testing.T) {
	recorder := rec.NewRecorder(progrock.NewTape())
	ctx := context.Background()

	_, lookup := recorder.Start(ctx, "cache-lookup")
	lookup.SetAttribute("cache.outcome", "hit")
	lookup.Cached()
	lookup.End()

	_, compile := recorder.Start(ctx, "compiling")
	n, err := compile.Write([]byte("layer 1 timed\n"))
	require.NoError(t, err)
	assert.Equal(t, 14, n)
	compile.RecordError(errors.New("failed to build serialized network"))
	compile.End()

	// Same stage name on the next invocation gets its own vertex.
	_, again := recorder.Start(ctx, "compiling")
	again.End()

	require.NoError(t, recorder.Shutdown(ctx))
}
