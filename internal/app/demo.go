package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/zerr"
)

// demoSchedule is the cache mode of each demo run: two baselines, one capture, one reuse.
var demoSchedule = [...]bool{false, false, true, true}

// DemoOptions configuration for the Demo method.
type DemoOptions struct {
	// NoReset keeps existing timing caches instead of purging them first.
	NoReset bool
}

// DemoRun is the outcome of one build in the demo sequence.
type DemoRun struct {
	UseCache bool
	Report   *domain.BuildReport
	Err      error
}

// OK reports whether the run completed.
func (r DemoRun) OK() bool {
	return r.Err == nil && r.Report != nil
}

// DemoSummary collects the runs of one demo.
type DemoSummary struct {
	Purged int
	Runs   []DemoRun
}

// Speedup compares the fastest uncached run with the last run that reused a persisted cache.
// ok is false when either side is missing.
func (s *DemoSummary) Speedup() (ratio float64, ok bool) {
	var baseline, warm time.Duration
	for _, r := range s.Runs {
		if !r.OK() {
			continue
		}
		switch {
		case !r.UseCache:
			if baseline == 0 || r.Report.Elapsed < baseline {
				baseline = r.Report.Elapsed
			}
		case r.Report.Lookup == domain.LookupHit:
			warm = r.Report.Elapsed
		}
	}
	if baseline == 0 || warm == 0 {
		return 0, false
	}
	return float64(baseline) / float64(warm), true
}

// Demo resets the cache and runs the four-build sequence.
// Unreadable, empty or undecodable caches are logged and the sequence continues.
// Any other failure stops it.
func (a *App) Demo(ctx context.Context, opts DemoOptions) (summary *DemoSummary, err error) {
	defer a.finish(ctx, &err)

	summary = &DemoSummary{}
	if !opts.NoReset {
		removed, err := a.store.Purge()
		if err != nil {
			return summary, zerr.Wrap(err, "failed to reset timing cache")
		}
		summary.Purged = removed
		if removed > 0 {
			a.logger.Debug(fmt.Sprintf("removed %d stale timing cache file(s)", removed))
		}
	}

	for i, useCache := range demoSchedule {
		report, err := a.builder.Build(ctx, useCache)
		summary.Runs = append(summary.Runs, DemoRun{UseCache: useCache, Report: report, Err: err})
		if err == nil {
			continue
		}
		if recoverable(err) {
			a.logger.Error(err)
			continue
		}
		return summary, zerr.With(zerr.Wrap(err, "demo stopped"), "run", i+1)
	}
	return summary, nil
}

func recoverable(err error) bool {
	return errors.Is(err, domain.ErrCacheReadFailed) ||
		errors.Is(err, domain.ErrCacheEmpty) ||
		errors.Is(err, domain.ErrInvalidTimingCache)
}
