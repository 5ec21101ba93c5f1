package metrics

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/temper/internal/adapters/config"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
)

// NodeID is the unique identifier for the build metrics Graft node.
const NodeID graft.ID = "adapter.metrics"

func init() {
	graft.Register(graft.Node[ports.BuildMetrics]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.BuildMetrics, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			file := ""
			if settings.MetricsFile != "" {
				file = settings.Resolve(settings.MetricsFile)
			}
			return NewRecorder(file), nil
		},
	})
}
