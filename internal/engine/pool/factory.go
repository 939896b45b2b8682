package pool

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory builds pools from manifest layouts. Parent layouts are built first
// and become the ancestors of their children; a layout shared by several
// children is built once.
type Factory struct {
	// Base holds the collaborators every pool is built with. Name, Graph,
	// Ancestors and Cluster are taken from the layout.
	Base Config

	// TransformerFor returns the transformer of a layout. When nil,
	// Base.Transformer is used for every pool.
	TransformerFor func(l *domain.Layout) ports.Transformer

	mu    sync.Mutex
	built map[*domain.Layout]*Pool
	order []*Pool
}

// NewFactory creates a Factory.
func NewFactory(base Config) *Factory {
	return &Factory{Base: base}
}

// Build returns the pool of layout, building its parents as needed.
func (f *Factory) Build(ctx context.Context, layout *domain.Layout) (*Pool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.built == nil {
		f.built = make(map[*domain.Layout]*Pool)
	}
	return f.build(ctx, layout, nil)
}

func (f *Factory) build(ctx context.Context, l *domain.Layout, stack []*domain.Layout) (*Pool, error) {
	if p, ok := f.built[l]; ok {
		return p, nil
	}
	for _, seen := range stack {
		if seen == l {
			return nil, zerr.With(domain.Classify(domain.ErrConstruction, domain.ErrCycleDetected), "layout", l.Path)
		}
	}
	stack = append(stack, l)

	ancestors := make([]ports.Ancestor, 0, len(l.Parents))
	for _, parent := range l.Parents {
		p, err := f.build(ctx, parent, stack)
		if err != nil {
			return nil, err
		}
		ancestors = append(ancestors, p)
	}

	cluster, err := Strategy(l.Strategy)
	if err != nil {
		return nil, zerr.With(err, "layout", l.Path)
	}

	cfg := f.Base
	cfg.Name = l.Graph.Name()
	cfg.Graph = l.Graph
	cfg.Ancestors = ancestors
	cfg.Cluster = cluster
	if f.TransformerFor != nil {
		cfg.Transformer = f.TransformerFor(l)
	}

	p, err := New(ctx, cfg)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "build pool"), "layout", l.Path)
	}
	f.built[l] = p
	f.order = append(f.order, p)
	return p, nil
}

// Pools returns every pool built so far, parents before children.
func (f *Factory) Pools() []*Pool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Pool, len(f.order))
	copy(out, f.order)
	return out
}

// Close closes every pool the factory built.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var errs []error
	for i := len(f.order) - 1; i >= 0; i-- {
		if err := f.order[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
