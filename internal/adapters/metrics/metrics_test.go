package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/temper/internal/adapters/metrics"
	"go.trai.ch/temper/internal/core/domain"
)

func TestRecorder_Observe(t *testing.T) {
	r := metrics.NewRecorder("")

	r.ObserveLookup(domain.LookupCold)
	r.ObserveLookup(domain.LookupHit)
	r.ObserveLookup(domain.LookupHit)
	r.ObserveCapture(domain.CaptureWritten)
	r.ObserveCapture(domain.CaptureSkipped)
	r.ObserveBuild(true, 120*time.Millisecond)
	r.ObserveBuild(false, 800*time.Millisecond)

	count, err := testutil.GatherAndCount(r.Registry(), "temper_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(r.Registry(), "temper_build_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(r.Registry(), "temper_cache_captures_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, r.Flush())
}

func TestRecorder_FlushTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "temper.prom")
	r := metrics.NewRecorder(path)
	r.ObserveLookup(domain.LookupHit)
	r.ObserveBuild(true, 250*time.Millisecond)

	require.NoError(t, r.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `temper_cache_lookups_total{outcome="hit"} 1`)
	assert.Contains(t, string(data), `temper_build_duration_seconds_count{cache="with"} 1`)
}

func TestRecorder_FlushFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, domain.FilePerm))

	r := metrics.NewRecorder(filepath.Join(blocker, "temper.prom"))
	err := r.Flush()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMetricsWriteFailed)
}
