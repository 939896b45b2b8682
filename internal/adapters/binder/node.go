package binder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/logger"
	"go.trai.ch/strata/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the ancestor binder Graft node.
	NodeID graft.ID = "adapter.binder"
	// LedgerNodeID is the unique identifier for the edge ledger Graft node.
	LedgerNodeID graft.ID = "adapter.binder.ledger"
)

func init() {
	graft.Register(graft.Node[ports.Binder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Binder, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLogging(log), nil
		},
	})

	graft.Register(graft.Node[*Ledger]{
		ID:        LedgerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Ledger, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLedger(log), nil
		},
	})
}
