package inference

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/temper/internal/adapters/device"
	"go.trai.ch/temper/internal/core/ports"
)

// NodeID is the unique identifier for the runtime Graft node.
const NodeID graft.ID = "adapter.runtime"

func init() {
	graft.Register(graft.Node[ports.Runtime]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{device.NodeID},
		Run: func(ctx context.Context) (ports.Runtime, error) {
			dev, err := graft.Dep[ports.Device](ctx)
			if err != nil {
				return nil, err
			}
			return New(dev), nil
		},
	})
}
