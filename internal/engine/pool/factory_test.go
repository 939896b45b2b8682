package pool_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/locator"
	"go.trai.ch/strata/internal/engine/pool"
)

func TestFactory_BuildsSharedParentsOnce(t *testing.T) {
	rootGraph := graph(t, "root", nil, unit("r", []string{"r"}))
	leftGraph := graph(t, "left", []*domain.Graph{rootGraph}, unit("l", []string{"l"}))
	rightGraph := graph(t, "right", []*domain.Graph{rootGraph}, unit("m", []string{"m"}))
	appGraph := graph(t, "app", []*domain.Graph{leftGraph, rightGraph},
		unit("a", []string{"a"}, "r"),
		unit("b", []string{"b"}),
	)

	root := &domain.Layout{Graph: rootGraph, Path: "root/strata.yaml"}
	left := &domain.Layout{Graph: leftGraph, Parents: []*domain.Layout{root}, Path: "left/strata.yaml"}
	right := &domain.Layout{Graph: rightGraph, Parents: []*domain.Layout{root}, Path: "right/strata.yaml"}
	app := &domain.Layout{
		Graph:    appGraph,
		Parents:  []*domain.Layout{left, right},
		Strategy: domain.ClusterPerUnit,
		Deny:     []string{"a.Secret"},
		Path:     "app/strata.yaml",
	}

	opener := newOpener().with("r", map[string]string{"r/Base.art": "base"})
	var denied []string
	f := pool.NewFactory(pool.Config{Sources: opener, Registry: locator.NewRegistry()})
	f.TransformerFor = func(l *domain.Layout) ports.Transformer {
		denied = append(denied, l.Deny...)
		return nil
	}
	t.Cleanup(func() { _ = f.Close() })

	p, err := f.Build(context.Background(), app)
	require.NoError(t, err)

	pools := f.Pools()
	require.Len(t, pools, 4)
	assert.Equal(t, "root", pools[0].Name())
	assert.Same(t, p, pools[3])
	assert.Len(t, p.Domains(), 2)
	assert.Equal(t, []string{"a.Secret"}, denied)

	again, err := f.Build(context.Background(), app)
	require.NoError(t, err)
	assert.Same(t, p, again)
	assert.Len(t, f.Pools(), 4)

	data, err := p.Resolve(context.Background(), "a", "r.Base")
	require.NoError(t, err)
	assert.Equal(t, []byte("base"), data)
}

func TestFactory_InvalidStrategy(t *testing.T) {
	layout := &domain.Layout{
		Graph:    graph(t, "app", nil, unit("a", []string{"a"})),
		Strategy: "sideways",
		Path:     "strata.yaml",
	}
	f := pool.NewFactory(pool.Config{Sources: newOpener(), Registry: locator.NewRegistry()})

	_, err := f.Build(context.Background(), layout)
	assert.True(t, errors.Is(err, domain.ErrInvalidClusterStrategy))
	assert.Empty(t, f.Pools())
}

func TestFactory_LayoutCycle(t *testing.T) {
	a := &domain.Layout{Graph: graph(t, "a", nil), Path: "a"}
	b := &domain.Layout{Graph: graph(t, "b", nil), Path: "b", Parents: []*domain.Layout{a}}
	a.Parents = []*domain.Layout{b}

	f := pool.NewFactory(pool.Config{Sources: newOpener(), Registry: locator.NewRegistry()})
	_, err := f.Build(context.Background(), a)
	assert.True(t, errors.Is(err, domain.ErrCycleDetected))
}
