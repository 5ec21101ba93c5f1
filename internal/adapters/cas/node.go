package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/temper/internal/adapters/config"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the timing cache store Graft node.
	NodeID graft.ID = "adapter.timing_cache_store"
	// ArtifactNodeID is the unique identifier for the artifact store Graft node.
	ArtifactNodeID graft.ID = "adapter.artifact_store"
)

func init() {
	graft.Register(graft.Node[ports.TimingCacheStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.TimingCacheStore, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(settings.Resolve(settings.CacheDir), settings.CacheFile), nil
		},
	})

	graft.Register(graft.Node[ports.ArtifactStore]{
		ID:        ArtifactNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.ArtifactStore, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewArtifactStore(settings.Root), nil
		},
	})
}
