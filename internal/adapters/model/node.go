package model

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/temper/internal/adapters/config"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
)

// NodeID is the unique identifier for the model definition Graft node.
const NodeID graft.ID = "adapter.model"

func init() {
	graft.Register(graft.Node[ports.ModelDefinition]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.ModelDefinition, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewMNIST(settings), nil
		},
	})
}
