package pool_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.trai.ch/strata/internal/engine/locator"
	"go.trai.ch/strata/internal/engine/pool"
	"go.uber.org/mock/gomock"
)

func TestPool_ResolveFromAncestorIsUntransformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	childTransformer := mocks.NewMockTransformer(ctrl)

	base := graph(t, "base", nil, unit("core", []string{"c"}))
	basePool := build(t, pool.Config{
		Graph:       base,
		Sources:     newOpener().with("core", map[string]string{"c/Util.art": "util"}),
		Transformer: &upper{},
	})

	child := graph(t, "app", []*domain.Graph{base}, unit("app", []string{"x"}, "core"))
	p := build(t, pool.Config{
		Graph:       child,
		Ancestors:   []ports.Ancestor{basePool},
		Sources:     newOpener(),
		Transformer: childTransformer,
	})

	data, err := p.Resolve(context.Background(), "app", "c.Util")
	require.NoError(t, err)
	assert.Equal(t, []byte("UTIL"), data)

	d, _ := p.Domain("app")
	assert.Equal(t, "core", d.StaticOwners()["c"])
}

func TestPool_AncestorNamespaceFallback(t *testing.T) {
	base := graph(t, "base", nil, unit("core", []string{"c"}))
	basePool := build(t, pool.Config{
		Graph:   base,
		Sources: newOpener().with("core", map[string]string{"c/Util.art": "util", "c/conf.txt": "conf"}),
	})
	u, _ := base.Unit("core")
	require.False(t, u.IsOpen("c"))

	child := graph(t, "app", []*domain.Graph{base}, unit("app", []string{"x"}))
	p := build(t, pool.Config{Graph: child, Ancestors: []ports.Ancestor{basePool}, Sources: newOpener()})

	data, err := p.Resolve(context.Background(), "app", "c.Util")
	require.NoError(t, err)
	assert.Equal(t, []byte("util"), data)

	_, err = p.Resource(context.Background(), "app", "c/conf.txt")
	assert.True(t, errors.Is(err, domain.ErrEncapsulated))
}

func TestPool_AncestorsSearchedInParentOrder(t *testing.T) {
	first := graph(t, "first", nil, unit("one", []string{"shared"}))
	second := graph(t, "second", nil, unit("two", []string{"shared"}))
	firstPool := build(t, pool.Config{Graph: first, Sources: newOpener().with("one", map[string]string{"shared/X.art": "one"})})
	secondPool := build(t, pool.Config{Graph: second, Sources: newOpener().with("two", map[string]string{"shared/X.art": "two"})})

	child := graph(t, "app", []*domain.Graph{first, second}, unit("app", []string{"x"}))
	p := build(t, pool.Config{
		Graph:     child,
		Ancestors: []ports.Ancestor{firstPool, secondPool},
		Sources:   newOpener(),
	})

	data, err := p.Resolve(context.Background(), "app", "shared.X")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)
}

func TestPool_GrandparentUnitsRouteThroughParent(t *testing.T) {
	root := graph(t, "root", nil, unit("rt", []string{"rt"}))
	rootPool := build(t, pool.Config{Graph: root, Sources: newOpener().with("rt", map[string]string{"rt/Base.art": "base"})})

	mid := graph(t, "mid", []*domain.Graph{root}, unit("mid", []string{"m"}, "rt"))
	midPool := build(t, pool.Config{Graph: mid, Ancestors: []ports.Ancestor{rootPool}, Sources: newOpener()})

	leaf := graph(t, "leaf", []*domain.Graph{mid}, unit("app", []string{"x"}, "rt"))
	p := build(t, pool.Config{Graph: leaf, Ancestors: []ports.Ancestor{midPool}, Sources: newOpener()})

	data, err := p.Resolve(context.Background(), "app", "rt.Base")
	require.NoError(t, err)
	assert.Equal(t, []byte("base"), data)

	data, err = midPool.Load(context.Background(), "rt", "rt.Base")
	require.NoError(t, err)
	assert.Equal(t, []byte("base"), data)
}

func TestPool_AncestorMismatch(t *testing.T) {
	base := graph(t, "base", nil, unit("core", []string{"c"}))
	other := graph(t, "other", nil, unit("core", []string{"c"}))
	basePool := build(t, pool.Config{Graph: base, Sources: newOpener()})
	otherPool := build(t, pool.Config{Graph: other, Sources: newOpener()})

	child := graph(t, "app", []*domain.Graph{base}, unit("app", []string{"x"}))

	tests := []struct {
		name      string
		ancestors []ports.Ancestor
	}{
		{"missing", nil},
		{"extra", []ports.Ancestor{basePool, otherPool}},
		{"wrong graph", []ports.Ancestor{otherPool}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pool.New(context.Background(), pool.Config{
				Graph:     child,
				Ancestors: tt.ancestors,
				Sources:   newOpener(),
				Registry:  locator.NewRegistry(),
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConstruction))
			assert.True(t, errors.Is(err, domain.ErrAncestorMismatch))
		})
	}
}

func TestPool_BindsEachReachableAncestorOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	binder := mocks.NewMockBinder(ctrl)

	// root is shared by left and right.
	root := graph(t, "root", nil, unit("r", []string{"r"}))
	left := graph(t, "left", []*domain.Graph{root}, unit("l", []string{"l"}))
	right := graph(t, "right", []*domain.Graph{root}, unit("m", []string{"m"}))
	empty := graph(t, "empty", nil)

	rootPool := build(t, pool.Config{Graph: root, Sources: newOpener()})
	leftPool := build(t, pool.Config{Graph: left, Ancestors: []ports.Ancestor{rootPool}, Sources: newOpener()})
	rightPool := build(t, pool.Config{Graph: right, Ancestors: []ports.Ancestor{rootPool}, Sources: newOpener()})
	emptyPool := build(t, pool.Config{Graph: empty, Sources: newOpener()})

	child := graph(t, "app", []*domain.Graph{left, right, empty},
		unit("a", []string{"a"}),
		unit("b", []string{"b"}),
	)

	for _, d := range []string{"app/a", "app/b"} {
		binder.EXPECT().Bind(gomock.Any(), leftPool, d).Return(nil).Times(1)
		binder.EXPECT().Bind(gomock.Any(), rightPool, d).Return(nil).Times(1)
		binder.EXPECT().Bind(gomock.Any(), rootPool, d).Return(nil).Times(1)
	}

	build(t, pool.Config{
		Name:      "app",
		Graph:     child,
		Ancestors: []ports.Ancestor{leftPool, rightPool, emptyPool},
		Sources:   newOpener(),
		Cluster:   pool.DomainPerUnit,
		Binder:    binder,
	})
}

func TestPool_BindFailureAbortsConstruction(t *testing.T) {
	ctrl := gomock.NewController(t)
	binder := mocks.NewMockBinder(ctrl)

	base := graph(t, "base", nil, unit("core", []string{"c"}))
	basePool := build(t, pool.Config{Graph: base, Sources: newOpener()})
	child := graph(t, "app", []*domain.Graph{base}, unit("app", []string{"x"}))
	opener := newOpener()

	binder.EXPECT().Bind(gomock.Any(), basePool, gomock.Any()).Return(errors.New("denied"))

	_, err := pool.New(context.Background(), pool.Config{
		Graph:     child,
		Ancestors: []ports.Ancestor{basePool},
		Sources:   opener,
		Binder:    binder,
		Registry:  locator.NewRegistry(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConstruction))
	assert.True(t, errors.Is(err, domain.ErrBindFailed))
	assert.True(t, opener.source("app").closed.Load())
}

func TestReachable(t *testing.T) {
	ctrl := gomock.NewController(t)

	ancestor := func(g *domain.Graph, parents ...ports.Ancestor) *mocks.MockAncestor {
		a := mocks.NewMockAncestor(ctrl)
		a.EXPECT().Graph().Return(g).AnyTimes()
		a.EXPECT().Ancestors().Return(parents).AnyTimes()
		return a
	}

	root := ancestor(graph(t, "root", nil, unit("r", []string{"r"})))
	hollow := ancestor(graph(t, "hollow", nil))
	left := ancestor(graph(t, "left", nil, unit("l", []string{"l"})), root)
	right := ancestor(graph(t, "right", nil, unit("m", []string{"m"})), root, hollow)
	// Unitless but with parents: kept.
	bridge := ancestor(graph(t, "bridge", nil), root)

	got := pool.Reachable([]ports.Ancestor{left, right, bridge})
	assert.Equal(t, []ports.Ancestor{left, right, bridge, root}, got)
}

func TestPool_ImplementsAncestor(t *testing.T) {
	base := graph(t, "base", nil, unit("core", []string{"c"}))
	basePool := build(t, pool.Config{
		Graph:   base,
		Sources: newOpener().with("core", map[string]string{"c/Util.art": "util"}),
	})

	var anc ports.Ancestor = basePool
	assert.Same(t, base, anc.Graph())
	assert.Empty(t, anc.Ancestors())

	data, err := anc.Load(context.Background(), "core", "c.Util")
	require.NoError(t, err)
	assert.Equal(t, []byte("util"), data)
}
