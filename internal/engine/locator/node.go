package locator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/cas"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/source" //nolint:depguard // Wired in engine wiring
)

// NodeID is the unique identifier for the locator mux Graft node.
const NodeID graft.ID = "engine.locator"

func init() {
	graft.Register(graft.Node[*Mux]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cas.NodeID,
			source.FileLocatorNodeID,
		},
		Run: func(ctx context.Context) (*Mux, error) {
			store, err := graft.Dep[*cas.Store](ctx)
			if err != nil {
				return nil, err
			}

			files, err := graft.Dep[*source.FileLocator](ctx)
			if err != nil {
				return nil, err
			}

			m := NewMux(Default)
			m.Handle(cas.Scheme, store)
			m.Handle(source.FileScheme, files)
			return m, nil
		},
	})
}
