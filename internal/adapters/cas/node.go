package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/adapters/settings"
	"go.trai.ch/strata/internal/core/ports"
)

// NodeID is the unique identifier for the blob store Graft node.
const NodeID graft.ID = "adapter.cas"

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID, fs.HasherNodeID},
		Run: func(ctx context.Context) (*Store, error) {
			s, err := graft.Dep[*settings.Settings](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(s.CASDir, hasher)
		},
	})
}
