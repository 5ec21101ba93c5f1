package builder_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/temper/internal/adapters/cas"
	"go.trai.ch/temper/internal/adapters/cpu/compiler"
	"go.trai.ch/temper/internal/adapters/cpu/cputest"
	"go.trai.ch/temper/internal/adapters/cpu/inference"
	"go.trai.ch/temper/internal/adapters/cpu/timingcache"
	"go.trai.ch/temper/internal/adapters/device"
	"go.trai.ch/temper/internal/adapters/fingerprint"
	"go.trai.ch/temper/internal/adapters/metrics"
	"go.trai.ch/temper/internal/adapters/telemetry"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports/mocks"
	"go.trai.ch/temper/internal/engine/builder"
	"go.uber.org/mock/gomock"
)

// tinyModel serves TinyNetwork with a configurable number of timing iterations.
type tinyModel struct {
	iterations int
}

func (m tinyModel) Define() (*domain.Network, *domain.BuildConfig, error) {
	net, cfg := cputest.TinyNetwork()
	cfg.TimingIterations = m.iterations
	return net, cfg, nil
}

func (m tinyModel) SampleInput() domain.HostTensor {
	return cputest.Sample()
}

type env struct {
	dir     string
	path    string
	dev     *device.Host
	builder *builder.Builder
}

func newEnv(t *testing.T, iterations int) *env {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	store := cas.NewStore(dir, domain.DefaultCacheFile)
	dev := device.NewHost(0)

	b := builder.NewBuilder(
		tinyModel{iterations: iterations},
		compiler.New(clockwork.NewRealClock()),
		inference.New(dev),
		dev,
		store,
		fingerprint.NewHasher(),
		telemetry.NewNoOpTracer(),
		metrics.NewRecorder(""),
		log,
	)
	return &env{dir: dir, path: store.Path(""), dev: dev, builder: b}
}

func (e *env) build(t *testing.T, useCache bool) *domain.BuildReport {
	t.Helper()
	report, err := e.builder.Build(context.Background(), useCache)
	require.NoError(t, err)
	assert.Equal(t, 0, e.dev.Allocations())
	return report
}

func TestProperty_IdempotentSkip(t *testing.T) {
	e := newEnv(t, 1)

	first := e.build(t, true)
	assert.Equal(t, domain.CaptureWritten, first.Capture)
	before, err := os.ReadFile(e.path)
	require.NoError(t, err)
	infoBefore, err := os.Stat(e.path)
	require.NoError(t, err)

	second := e.build(t, true)
	assert.Equal(t, domain.LookupHit, second.Lookup)
	assert.Equal(t, domain.CaptureSkipped, second.Capture)

	after, err := os.ReadFile(e.path)
	require.NoError(t, err)
	infoAfter, err := os.Stat(e.path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, infoBefore.ModTime(), infoAfter.ModTime())
}

func TestProperty_WarmBuildNotSlowerThanUncached(t *testing.T) {
	const trials = 5
	var uncached, warm []time.Duration

	for range trials {
		e := newEnv(t, 2000)
		u := e.build(t, false)
		e.build(t, true)
		w := e.build(t, true)
		require.Equal(t, 0, w.Stats.Benchmarked)
		require.Equal(t, domain.LookupHit, w.Lookup)
		uncached = append(uncached, u.Elapsed)
		warm = append(warm, w.Elapsed)
	}

	assert.LessOrEqual(t, median(warm), median(uncached))
}

func median(d []time.Duration) time.Duration {
	s := slices.Clone(d)
	slices.Sort(s)
	return s[len(s)/2]
}

func TestProperty_EmptyCacheBootstrap(t *testing.T) {
	e := newEnv(t, 1)
	_, err := os.Stat(e.path)
	require.ErrorIs(t, err, os.ErrNotExist)

	report := e.build(t, true)
	assert.Equal(t, domain.LookupCold, report.Lookup)

	data, err := os.ReadFile(e.path)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	cache, err := timingcache.Decode(domain.NewTimingCacheBlob(data))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
}

func TestProperty_ZeroByteCacheAbortsLookup(t *testing.T) {
	e := newEnv(t, 1)
	require.NoError(t, os.WriteFile(e.path, nil, domain.FilePerm))

	report, err := e.builder.Build(context.Background(), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCacheEmpty)
	assert.Equal(t, domain.LookupFailed, report.Lookup)
	assert.Nil(t, report.Outputs)

	info, err := os.Stat(e.path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	// The next invocation without the cache is unaffected.
	e.build(t, false)
}

func TestProperty_DeterministicOutputs(t *testing.T) {
	e := newEnv(t, 2)

	without := e.build(t, false)
	cold := e.build(t, true)
	warm := e.build(t, true)

	require.Len(t, without.Outputs, 1)
	assert.Equal(t, without.Outputs, cold.Outputs)
	assert.Equal(t, without.Outputs, warm.Outputs)
	assert.Equal(t, cold.Artifact.Bytes(), warm.Artifact.Bytes())
}

func TestProperty_NoCacheNeverTouchesFile(t *testing.T) {
	e := newEnv(t, 1)

	e.build(t, false)
	_, err := os.Stat(e.path)
	require.ErrorIs(t, err, os.ErrNotExist)
	entries, err := os.ReadDir(e.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	e.build(t, true)
	before, err := os.ReadFile(e.path)
	require.NoError(t, err)

	e.build(t, false)
	after, err := os.ReadFile(e.path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.FileExists(t, filepath.Join(e.dir, domain.DefaultCacheFile))
}
