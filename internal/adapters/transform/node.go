package transform

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the transformer selector Graft node.
const NodeID graft.ID = "adapter.transform"

func init() {
	graft.Register(graft.Node[Selector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Selector, error) {
			return ForLayout(Noop{}), nil
		},
	})
}
