package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/temper/internal/adapters/config"
	"go.trai.ch/temper/internal/adapters/logger"
	"go.trai.ch/temper/internal/adapters/telemetry/progrock"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
)

// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewTracer(settings.Tracer, log), nil
		},
	})
}

// NewTracer selects the tracing backend by name. Unknown names disable tracing.
func NewTracer(backend string, log ports.Logger) ports.Tracer {
	switch backend {
	case domain.TracerOTel:
		return NewOTelTracer("temper", NewBridge(log))
	case domain.TracerProgrock:
		return progrock.New()
	default:
		return NewNoOpTracer()
	}
}
