package source

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/adapters/logger"
	"go.trai.ch/strata/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the source opener Graft node.
	NodeID graft.ID = "adapter.source"
	// FileLocatorNodeID is the unique identifier for the file locator Graft node.
	FileLocatorNodeID graft.ID = "adapter.source.file"
)

func init() {
	graft.Register(graft.Node[ports.SourceOpener]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.SourceOpener, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewOpener(walker, log), nil
		},
	})

	graft.Register(graft.Node[*FileLocator]{
		ID:        FileLocatorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*FileLocator, error) {
			return NewFileLocator(), nil
		},
	})
}
