package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/temper/cmd/temper/commands"
	"go.trai.ch/temper/internal/app"
	"go.trai.ch/temper/internal/build"
	"go.trai.ch/temper/internal/core/domain"
)

type mockApp struct {
	buildFunc func(ctx context.Context, opts app.BuildOptions) (*domain.BuildReport, error)
	demoFunc  func(ctx context.Context, opts app.DemoOptions) (*app.DemoSummary, error)
	cleanFunc func(ctx context.Context) error
}

func (m *mockApp) Build(ctx context.Context, opts app.BuildOptions) (*domain.BuildReport, error) {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, opts)
	}
	return &domain.BuildReport{}, nil
}

func (m *mockApp) Demo(ctx context.Context, opts app.DemoOptions) (*app.DemoSummary, error) {
	if m.demoFunc != nil {
		return m.demoFunc(ctx, opts)
	}
	return &app.DemoSummary{}, nil
}

func (m *mockApp) Clean(ctx context.Context) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx)
	}
	return nil
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	cli := commands.New(a)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.BuildOptions
		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.BuildOptions) (*domain.BuildReport, error) {
				captured = opts
				return &domain.BuildReport{
					UseCache: true,
					Lookup:   domain.LookupHit,
					Capture:  domain.CaptureSkipped,
					Elapsed:  12300 * time.Microsecond,
					Outputs: []domain.HostTensor{{
						Name: "prob",
						Type: domain.Int32,
						Dims: domain.Dims{1, 1},
						Data: domain.EncodeInt32s([]int32{7}),
					}},
				}, nil
			},
		}

		out, err := execute(t, mock, "build", "--cache", "--save-plan")
		require.NoError(t, err)
		assert.True(t, captured.UseCache)
		assert.True(t, captured.SavePlan)
		assert.Contains(t, out, "compiled with timing cache in 12.30 ms (lookup hit, capture skipped)")
		assert.Contains(t, out, "output prob = [7]")
	})

	t.Run("defaults to no cache", func(t *testing.T) {
		var captured app.BuildOptions
		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.BuildOptions) (*domain.BuildReport, error) {
				captured = opts
				return &domain.BuildReport{Elapsed: time.Millisecond}, nil
			},
		}

		out, err := execute(t, mock, "build")
		require.NoError(t, err)
		assert.False(t, captured.UseCache)
		assert.False(t, captured.SavePlan)
		assert.Contains(t, out, "compiled without timing cache in 1.00 ms")
		assert.NotContains(t, out, "lookup")
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ app.BuildOptions) (*domain.BuildReport, error) {
				return &domain.BuildReport{}, errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "build")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func demoSummary() *app.DemoSummary {
	run := func(useCache bool, lookup domain.LookupOutcome, capture domain.CaptureOutcome, ms int) app.DemoRun {
		stats := domain.TacticStats{Timed: 3}
		if lookup == domain.LookupHit {
			stats.CacheHits = 3
		}
		return app.DemoRun{
			UseCache: useCache,
			Report: &domain.BuildReport{
				UseCache: useCache,
				Lookup:   lookup,
				Capture:  capture,
				Elapsed:  time.Duration(ms) * time.Millisecond,
				Stats:    stats,
			},
		}
	}
	return &app.DemoSummary{Runs: []app.DemoRun{
		run(false, domain.LookupDisabled, domain.CaptureDisabled, 90),
		run(false, domain.LookupDisabled, domain.CaptureDisabled, 80),
		run(true, domain.LookupCold, domain.CaptureWritten, 85),
		run(true, domain.LookupHit, domain.CaptureSkipped, 20),
	}}
}

func TestCommands_Demo(t *testing.T) {
	t.Run("renders summary", func(t *testing.T) {
		var captured app.DemoOptions
		mock := &mockApp{
			demoFunc: func(_ context.Context, opts app.DemoOptions) (*app.DemoSummary, error) {
				captured = opts
				return demoSummary(), nil
			},
		}

		out, err := execute(t, mock, "demo", "--no-reset")
		require.NoError(t, err)
		assert.True(t, captured.NoReset)

		assert.Contains(t, out, "RUN")
		assert.Contains(t, out, "COMPILE")
		assert.Contains(t, out, "90.00 ms")
		assert.Contains(t, out, "written")
		assert.Contains(t, out, "3/3")
		assert.Contains(t, out, "4.0x speedup")
	})

	t.Run("renders partial summary on failure", func(t *testing.T) {
		mock := &mockApp{
			demoFunc: func(_ context.Context, _ app.DemoOptions) (*app.DemoSummary, error) {
				s := demoSummary()
				s.Runs = s.Runs[:3]
				s.Runs[2].Err = domain.ErrCacheWriteFailed
				return s, domain.ErrCacheWriteFailed
			},
		}

		out, err := execute(t, mock, "demo")
		require.ErrorIs(t, err, domain.ErrCacheWriteFailed)
		assert.Contains(t, out, "failed")
		assert.Contains(t, out, "no build reused a persisted timing cache")
	})

	t.Run("prints nothing without runs", func(t *testing.T) {
		mock := &mockApp{
			demoFunc: func(_ context.Context, _ app.DemoOptions) (*app.DemoSummary, error) {
				return &app.DemoSummary{}, domain.ErrCachePurgeFailed
			},
		}

		out, err := execute(t, mock, "demo")
		require.ErrorIs(t, err, domain.ErrCachePurgeFailed)
		assert.Empty(t, out)
	})
}

func TestCommands_Clean(t *testing.T) {
	called := false
	mock := &mockApp{
		cleanFunc: func(_ context.Context) error {
			called = true
			return nil
		},
	}

	_, err := execute(t, mock, "clean")
	require.NoError(t, err)
	assert.True(t, called)

	_, err = execute(t, mock, "clean", "extra")
	require.Error(t, err)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "temper version "+build.Version)
}
