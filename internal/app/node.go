package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/temper/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/temper/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/temper/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/temper/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/temper/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
	"go.trai.ch/temper/internal/engine/builder"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			builder.NodeID,
			cas.NodeID,
			cas.ArtifactNodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	b, err := graft.Dep[*builder.Builder](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.TimingCacheStore](ctx)
	if err != nil {
		return nil, err
	}

	artifacts, err := graft.Dep[ports.ArtifactStore](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.BuildMetrics](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	return New(b, store, artifacts, tracer, recorder, log).WithPlanFile(settings.PlanFile), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	if err := configureLogger(log, settings); err != nil {
		return nil, err
	}

	return &Components{
		App:      a,
		Logger:   log,
		Settings: settings,
	}, nil
}
