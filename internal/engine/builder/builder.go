// Package builder implements the cache-aware build workflow.
//
// One Build call constructs the fixed network, optionally loads and attaches a
// persisted timing cache, compiles, persists a newly captured cache, and
// validates the artifact with one inference pass.
package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder runs cache-aware builds. Builds on one Builder must not run concurrently.
type Builder struct {
	model         ports.ModelDefinition
	compiler      ports.Compiler
	runtime       ports.Runtime
	device        ports.Device
	store         ports.TimingCacheStore
	fingerprinter ports.Fingerprinter
	tracer        ports.Tracer
	metrics       ports.BuildMetrics
	logger        ports.Logger

	clock clockwork.Clock
	keyed bool
}

// NewBuilder creates a new Builder with the given dependencies.
func NewBuilder(
	model ports.ModelDefinition,
	compiler ports.Compiler,
	runtime ports.Runtime,
	device ports.Device,
	store ports.TimingCacheStore,
	fingerprinter ports.Fingerprinter,
	tracer ports.Tracer,
	metrics ports.BuildMetrics,
	logger ports.Logger,
) *Builder {
	return &Builder{
		model:         model,
		compiler:      compiler,
		runtime:       runtime,
		device:        device,
		store:         store,
		fingerprinter: fingerprinter,
		tracer:        tracer,
		metrics:       metrics,
		logger:        logger,
		clock:         clockwork.NewRealClock(),
	}
}

// WithClock replaces the clock used to time compilation.
func (b *Builder) WithClock(clock clockwork.Clock) *Builder {
	b.clock = clock
	return b
}

// WithKeyedCache selects a cache file per network, config and device fingerprint.
func (b *Builder) WithKeyedCache(keyed bool) *Builder {
	b.keyed = keyed
	return b
}

// Build runs one invocation. With useCache false the timing cache file is never read or written.
//
// The returned report is non-nil even on error and records the last stage reached.
func (b *Builder) Build(ctx context.Context, useCache bool) (*domain.BuildReport, error) {
	report := &domain.BuildReport{UseCache: useCache, Stage: domain.StageIdle}

	ctx, span := b.tracer.Start(ctx, "build")
	defer span.End()
	span.SetAttribute("cache.enabled", useCache)

	if err := b.build(ctx, useCache, report); err != nil {
		span.RecordError(err)
		return report, err
	}
	report.Stage = domain.StageDone
	return report, nil
}

//nolint:cyclop // linear workflow with one branch per stage
func (b *Builder) build(ctx context.Context, useCache bool, report *domain.BuildReport) error {
	var (
		network *domain.Network
		cfg     *domain.BuildConfig
	)
	define := func() error {
		var err error
		network, cfg, err = b.model.Define()
		if err != nil {
			return errors.Join(domain.ErrBuildFailed, err)
		}
		return nil
	}

	// A keyed cache name depends on the graph, so only keyed mode defines it first.
	if useCache && b.keyed {
		if err := define(); err != nil {
			return err
		}
		report.CacheKey = b.fingerprinter.Fingerprint(network, cfg, b.compiler.Device())
	}

	var blob domain.TimingCacheBlob
	existed := false
	if useCache {
		err := b.stage(ctx, report, domain.StageCacheLookup, func(_ context.Context, span ports.Span) error {
			loaded, found, err := b.lookup(report)
			if err != nil {
				return err
			}
			blob, existed = loaded, found
			if found {
				span.Cached()
			}
			span.SetAttribute("cache.outcome", report.Lookup)
			return nil
		})
		if err != nil {
			return err
		}
	}

	if network == nil {
		if err := define(); err != nil {
			return err
		}
	}
	if useCache {
		cfg.SetTimingCache(blob, domain.TimingCacheShared)
	}
	input := b.model.SampleInput()

	var result *domain.CompileResult
	err := b.stage(ctx, report, domain.StageCompiling, func(ctx context.Context, span ports.Span) error {
		start := b.clock.Now()
		res, err := b.compiler.Build(ctx, network, cfg)
		report.Elapsed = b.clock.Since(start)
		if err != nil {
			return errors.Join(domain.ErrCompileFailed, err)
		}
		result = res
		if res.Stats.Timed > 0 && res.Stats.CacheHits == res.Stats.Timed {
			span.Cached()
		}
		span.SetAttribute("tactics.timed", res.Stats.Timed)
		span.SetAttribute("tactics.cache_hits", res.Stats.CacheHits)
		return nil
	})
	if err != nil {
		return err
	}

	report.Stats = result.Stats
	report.Artifact = result.Artifact
	b.metrics.ObserveBuild(useCache, report.Elapsed)
	b.logger.Info(fmt.Sprintf("%s timing cache, %.2f ms", cacheLabel(useCache), report.ElapsedMillis()))

	if useCache {
		if err := b.stage(ctx, report, domain.StageCacheCapture, func(_ context.Context, span ports.Span) error {
			err := b.capture(report, result, existed)
			span.SetAttribute("cache.outcome", report.Capture)
			return err
		}); err != nil {
			return err
		}
	}

	return b.execute(ctx, report, result.Artifact, input)
}

// stage runs fn in its own span and advances report.Stage when fn succeeds.
func (b *Builder) stage(
	ctx context.Context,
	report *domain.BuildReport,
	stage domain.Stage,
	fn func(context.Context, ports.Span) error,
) error {
	ctx, span := b.tracer.Start(ctx, stage.String())
	defer span.End()

	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		return err
	}
	report.Stage = stage
	return nil
}

func (b *Builder) lookup(report *domain.BuildReport) (domain.TimingCacheBlob, bool, error) {
	path := b.store.Path(report.CacheKey)
	blob, found, err := b.store.Lookup(report.CacheKey)
	if err != nil {
		report.Lookup = domain.LookupFailed
		b.metrics.ObserveLookup(report.Lookup)
		return domain.TimingCacheBlob{}, found, err
	}

	if found {
		report.Lookup = domain.LookupHit
		report.CacheSize = blob.Len()
		b.logger.Debug(fmt.Sprintf("loaded timing cache %s (%d bytes)", path, blob.Len()))
	} else {
		report.Lookup = domain.LookupCold
		b.logger.Debug(fmt.Sprintf("no timing cache at %s, starting empty", path))
	}
	b.metrics.ObserveLookup(report.Lookup)
	return blob, found, nil
}

// capture persists the compiler's cache when no file existed at lookup time.
// A file created by someone else in between is left untouched.
func (b *Builder) capture(report *domain.BuildReport, result *domain.CompileResult, existed bool) error {
	path := b.store.Path(report.CacheKey)

	switch {
	case existed:
		report.Capture = domain.CaptureSkipped
		b.logger.Debug("timing cache exists, capture skipped")
	case !result.HasTimingCache:
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, "compiler returned no timing cache"), "path", path)
	default:
		err := b.store.Save(report.CacheKey, result.TimingCache)
		switch {
		case errors.Is(err, domain.ErrCacheExists):
			report.Capture = domain.CaptureSkipped
			b.logger.Warn(fmt.Sprintf("timing cache %s appeared during the build, capture skipped", path))
		case err != nil:
			return err
		default:
			report.Capture = domain.CaptureWritten
			report.CacheSize = result.TimingCache.Len()
			b.logger.Debug(fmt.Sprintf("saved timing cache %s (%d bytes)", path, result.TimingCache.Len()))
		}
	}
	b.metrics.ObserveCapture(report.Capture)
	return nil
}

func cacheLabel(useCache bool) string {
	if useCache {
		return "With"
	}
	return "Without"
}
