package pool_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.trai.ch/strata/internal/engine/pool"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestAddVisibilityEdge_ConcurrentConflictingEdges(t *testing.T) {
	for range 20 {
		g := graph(t, "boot", nil,
			unit("a", []string{"p1"}),
			unit("b", []string{"p2"}),
			unit("c", []string{"p2", "p3"}),
		)
		p := build(t, pool.Config{Graph: g, Sources: newOpener(), Cluster: pool.DomainPerUnit})

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, target := range []string{"b", "c"} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = p.AddVisibilityEdge(context.Background(), "a", target)
			}()
		}
		wg.Wait()

		var ok, conflicts int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			}
		}
		require.Equal(t, 1, ok)
		require.Equal(t, 1, conflicts)

		d, _ := p.Domain("a")
		edges := d.Visibility().Edges()["a"]
		require.Len(t, edges, 1)

		mappings := d.Visibility().Mappings()
		for ns, owner := range mappings {
			assert.Equal(t, edges[0], owner, ns)
		}
		if edges[0] == "b" {
			assert.Equal(t, map[string]string{"p2": "b"}, mappings)
		} else {
			assert.Equal(t, map[string]string{"p2": "c", "p3": "c"}, mappings)
		}
	}
}

func TestAddVisibilityEdge_RejectsChangingStaticOwner(t *testing.T) {
	g := graph(t, "boot", nil,
		unit("a", []string{"p1"}, "b"),
		unit("b", []string{"p2"}),
		unit("c", []string{"p2"}),
	)
	p := build(t, pool.Config{Graph: g, Sources: newOpener(), Cluster: pool.DomainPerUnit})

	err := p.AddVisibilityEdge(context.Background(), "a", "c")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "p2", zErr.Metadata()["namespace"])
	assert.Equal(t, "b", zErr.Metadata()["owner"])

	d, _ := p.Domain("a")
	assert.Empty(t, d.Visibility().Edges())
	assert.Empty(t, d.Visibility().Mappings())
}

func TestAddVisibilityEdge_FailedCommitInstallsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	committer := mocks.NewMockEdgeCommitter(ctrl)
	metrics := mocks.NewMockMetrics(ctrl)

	g := graph(t, "boot", nil,
		unit("a", []string{"p1"}),
		unit("b", []string{"p2"}),
	)
	p := build(t, pool.Config{
		Graph:     g,
		Sources:   newOpener(),
		Cluster:   pool.DomainPerUnit,
		Committer: committer,
		Metrics:   metrics,
	})

	refused := errors.New("module graph sealed")
	committer.EXPECT().CommitEdge(gomock.Any(), "a", "b").Return(refused)
	metrics.EXPECT().ObserveEdge(false)

	err := p.AddVisibilityEdge(context.Background(), "a", "b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEdgeCommitFailed))
	assert.True(t, errors.Is(err, refused))

	d, _ := p.Domain("a")
	assert.Empty(t, d.Visibility().Edges())
	assert.Empty(t, d.Visibility().Mappings())

	committer.EXPECT().CommitEdge(gomock.Any(), "a", "b").Return(nil)
	metrics.EXPECT().ObserveEdge(true)
	require.NoError(t, p.AddVisibilityEdge(context.Background(), "a", "b"))
	assert.Equal(t, map[string]string{"p2": "b"}, d.Visibility().Mappings())
}

func TestAddVisibilityEdge_Idempotent(t *testing.T) {
	g := graph(t, "boot", nil,
		unit("a", []string{"p1"}),
		unit("b", []string{"p2"}),
	)
	p := build(t, pool.Config{Graph: g, Sources: newOpener(), Cluster: pool.DomainPerUnit})

	require.NoError(t, p.AddVisibilityEdge(context.Background(), "a", "b"))
	require.NoError(t, p.AddVisibilityEdge(context.Background(), "a", "b"))

	d, _ := p.Domain("a")
	assert.Equal(t, map[string][]string{"a": {"b"}}, d.Visibility().Edges())
}

func TestAddVisibilityEdge_ToAncestorUnit(t *testing.T) {
	base := graph(t, "base", nil, unit("core", []string{"c"}))
	basePool := build(t, pool.Config{
		Graph:   base,
		Sources: newOpener().with("core", map[string]string{"c/Util.art": "util"}),
	})

	child := graph(t, "app", []*domain.Graph{base}, unit("app", []string{"x"}))
	p := build(t, pool.Config{Graph: child, Ancestors: []ports.Ancestor{basePool}, Sources: newOpener()})

	require.NoError(t, p.AddVisibilityEdge(context.Background(), "app", "core"))
	d, _ := p.Domain("app")
	assert.Equal(t, map[string]string{"c": "core"}, d.Visibility().Mappings())

	data, err := p.Resolve(context.Background(), "app", "c.Util")
	require.NoError(t, err)
	assert.Equal(t, []byte("util"), data)
}
