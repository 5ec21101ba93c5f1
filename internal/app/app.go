// Package app implements the application layer for temper.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	builder   ports.CacheAwareBuilder
	store     ports.TimingCacheStore
	artifacts ports.ArtifactStore
	tracer    ports.Tracer
	metrics   ports.BuildMetrics
	logger    ports.Logger
	planFile  string
}

// New creates a new App instance.
func New(
	builder ports.CacheAwareBuilder,
	store ports.TimingCacheStore,
	artifacts ports.ArtifactStore,
	tracer ports.Tracer,
	metrics ports.BuildMetrics,
	log ports.Logger,
) *App {
	return &App{
		builder:   builder,
		store:     store,
		artifacts: artifacts,
		tracer:    tracer,
		metrics:   metrics,
		logger:    log,
		planFile:  domain.DefaultPlanFile,
	}
}

// WithPlanFile sets where `build --save-plan` writes the compiled plan.
func (a *App) WithPlanFile(name string) *App {
	a.planFile = name
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	UseCache bool
	SavePlan bool
}

// Build runs a single cache-aware build.
func (a *App) Build(ctx context.Context, opts BuildOptions) (report *domain.BuildReport, err error) {
	defer a.finish(ctx, &err)

	report, err = a.builder.Build(ctx, opts.UseCache)
	if err != nil {
		return report, err
	}

	if opts.SavePlan {
		if err := a.artifacts.Write(a.planFile, report.Artifact); err != nil {
			return report, err
		}
		a.logger.Info(fmt.Sprintf("wrote plan %s (%d bytes)", a.planFile, report.Artifact.Len()))
	}
	return report, nil
}

// Clean removes every persisted timing cache.
func (a *App) Clean(_ context.Context) error {
	removed, err := a.store.Purge()
	if err != nil {
		return zerr.Wrap(err, "failed to clean timing caches")
	}
	a.logger.Info(fmt.Sprintf("removed %d timing cache file(s)", removed))
	return nil
}

// finish flushes traces and exports metrics, joining any failure into *errp.
func (a *App) finish(ctx context.Context, errp *error) {
	ctx = context.WithoutCancel(ctx)
	if err := a.tracer.Shutdown(ctx); err != nil {
		*errp = errors.Join(*errp, zerr.Wrap(err, "failed to flush traces"))
	}
	if err := a.metrics.Flush(); err != nil {
		*errp = errors.Join(*errp, err)
	}
}
