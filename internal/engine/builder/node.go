package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/temper/internal/adapters/cas"
	"go.trai.ch/temper/internal/adapters/config"
	"go.trai.ch/temper/internal/adapters/cpu/compiler"
	"go.trai.ch/temper/internal/adapters/cpu/inference"
	"go.trai.ch/temper/internal/adapters/device"
	"go.trai.ch/temper/internal/adapters/fingerprint"
	"go.trai.ch/temper/internal/adapters/logger"
	"go.trai.ch/temper/internal/adapters/metrics"
	"go.trai.ch/temper/internal/adapters/model"
	"go.trai.ch/temper/internal/adapters/telemetry"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
)

// NodeID is the unique identifier for the builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			model.NodeID,
			compiler.NodeID,
			inference.NodeID,
			device.NodeID,
			cas.NodeID,
			fingerprint.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			definition, err := graft.Dep[ports.ModelDefinition](ctx)
			if err != nil {
				return nil, err
			}
			comp, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}
			rt, err := graft.Dep[ports.Runtime](ctx)
			if err != nil {
				return nil, err
			}
			dev, err := graft.Dep[ports.Device](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.TimingCacheStore](ctx)
			if err != nil {
				return nil, err
			}
			fp, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			buildMetrics, err := graft.Dep[ports.BuildMetrics](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(definition, comp, rt, dev, store, fp, tracer, buildMetrics, log).
				WithKeyedCache(settings.KeyedCache), nil
		},
	})
}
