package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/temper/internal/adapters/config"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), domain.FilePerm)
	require.NoError(t, err)
}

func TestLoader_Load_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	dir := t.TempDir()
	settings, err := config.NewLoader(mockLogger).Load(dir)
	require.NoError(t, err)

	want := domain.DefaultSettings()
	want.Root = dir
	assert.Equal(t, want, settings)
}

func TestLoader_Load_WalksUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).Times(1)

	rootDir := t.TempDir()
	createFile(t, rootDir, domain.ConfigFileName, `
version: "1"
cache:
  dir: .temper
  file: mnist.cache
  keyed: true
plan:
  file: out/mnist.plan
model:
  seed: 7
  batch:
    min: 2
    opt: 2
    max: 16
  workspace: 1048576
builder:
  timingIterations: 3
log:
  level: debug
telemetry:
  tracer: none
metrics:
  file: metrics.prom
`)
	nested := filepath.Join(rootDir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	settings, err := config.NewLoader(mockLogger).Load(nested)
	require.NoError(t, err)

	assert.Equal(t, rootDir, settings.Root)
	assert.Equal(t, ".temper", settings.CacheDir)
	assert.Equal(t, "mnist.cache", settings.CacheFile)
	assert.True(t, settings.KeyedCache)
	assert.Equal(t, "out/mnist.plan", settings.PlanFile)
	assert.Equal(t, uint64(7), settings.Seed)
	assert.Equal(t, domain.BatchRange{Min: 2, Opt: 2, Max: 16}, settings.Batch)
	assert.Equal(t, int64(1<<20), settings.WorkspaceLimit)
	assert.Equal(t, 3, settings.TimingIterations)
	assert.Equal(t, "debug", settings.LogLevel)
	assert.Equal(t, domain.TracerNone, settings.Tracer)
	assert.Equal(t, "metrics.prom", settings.MetricsFile)
	assert.Equal(t, filepath.Join(rootDir, ".temper"), settings.Resolve(settings.CacheDir))
}

func TestLoader_Load_PartialKeepsDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	rootDir := t.TempDir()
	createFile(t, rootDir, domain.ConfigFileName, "model:\n  batch:\n    max: 4\n")

	settings, err := config.NewLoader(mockLogger).Load(rootDir)
	require.NoError(t, err)

	assert.Equal(t, domain.BatchRange{Min: 1, Opt: 4, Max: 4}, settings.Batch)
	assert.Equal(t, domain.DefaultCacheFile, settings.CacheFile)
	assert.Equal(t, uint64(97), settings.Seed)
}

func TestLoader_Load_Root(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	rootDir := t.TempDir()
	createFile(t, rootDir, domain.ConfigFileName, "root: build\n")

	settings, err := config.NewLoader(mockLogger).Load(rootDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(rootDir, "build"), settings.Root)
}

func TestLoader_Load_WarnsOnJSONWithProgrock(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	rootDir := t.TempDir()
	createFile(t, rootDir, domain.ConfigFileName, "log:\n  json: true\ntelemetry:\n  tracer: progrock\n")

	settings, err := config.NewLoader(mockLogger).Load(rootDir)
	require.NoError(t, err)
	assert.True(t, settings.LogJSON)
}

func TestLoader_Load_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "batch order", content: "model:\n  batch:\n    min: 4\n    opt: 2\n", errMsg: domain.ErrInvalidConfig.Error()},
		{name: "zero batch", content: "model:\n  batch:\n    min: 0\n", errMsg: domain.ErrInvalidConfig.Error()},
		{name: "negative workspace", content: "model:\n  workspace: -1\n", errMsg: domain.ErrInvalidConfig.Error()},
		{name: "no iterations", content: "builder:\n  timingIterations: 0\n", errMsg: domain.ErrInvalidConfig.Error()},
		{name: "cache file with dir", content: "cache:\n  file: sub/model.cache\n", errMsg: domain.ErrInvalidConfig.Error()},
		{name: "cache file extension", content: "cache:\n  file: model.bin\n", errMsg: domain.ErrInvalidConfig.Error()},
		{name: "log level", content: "log:\n  level: loud\n", errMsg: domain.ErrInvalidConfig.Error()},
		{name: "tracer", content: "telemetry:\n  tracer: jaeger\n", errMsg: domain.ErrInvalidConfig.Error()},
		{name: "malformed", content: "model: [\n", errMsg: domain.ErrConfigParseFailed.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockLogger := mocks.NewMockLogger(ctrl)
			mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

			rootDir := t.TempDir()
			createFile(t, rootDir, domain.ConfigFileName, tt.content)

			_, err := config.NewLoader(mockLogger).Load(rootDir)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
