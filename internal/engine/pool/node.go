package pool

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/binder"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/source"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/transform" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/locator"
)

// NodeID is the unique identifier for the pool factory Graft node.
const NodeID graft.ID = "engine.pool"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			source.NodeID,
			locator.NodeID,
			binder.NodeID,
			binder.LedgerNodeID,
			logger.NodeID,
			telemetry.NodeID,
			metrics.NodeID,
			transform.NodeID,
		},
		Run: runFactoryNode,
	})
}

func runFactoryNode(ctx context.Context) (*Factory, error) {
	sources, err := graft.Dep[ports.SourceOpener](ctx)
	if err != nil {
		return nil, err
	}

	mux, err := graft.Dep[*locator.Mux](ctx)
	if err != nil {
		return nil, err
	}

	bind, err := graft.Dep[ports.Binder](ctx)
	if err != nil {
		return nil, err
	}

	ledger, err := graft.Dep[*binder.Ledger](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	prom, err := graft.Dep[*metrics.Prometheus](ctx)
	if err != nil {
		return nil, err
	}

	selector, err := graft.Dep[transform.Selector](ctx)
	if err != nil {
		return nil, err
	}

	f := NewFactory(Config{
		Sources:   sources,
		Locators:  mux,
		Binder:    bind,
		Committer: ledger,
		Logger:    log,
		Tracer:    tracer,
		Metrics:   prom,
		Registry:  locator.Default,
	})
	f.TransformerFor = selector
	return f, nil
}
