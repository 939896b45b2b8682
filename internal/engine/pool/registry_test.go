package pool_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/engine/pool"
	"pgregory.net/rapid"
)

func TestRuntimeRegistry_FirstWriterWins(t *testing.T) {
	r := pool.NewRuntimeRegistry()

	loc, inserted := r.Add("app", "x.Foo", "file:///a")
	assert.True(t, inserted)
	assert.Equal(t, "file:///a", loc)

	loc, inserted = r.Add("app", "x.Foo", "file:///b")
	assert.False(t, inserted)
	assert.Equal(t, "file:///a", loc)

	// Same artifact name in another unit is a separate entry.
	loc, inserted = r.Add("lib", "x.Foo", "file:///c")
	assert.True(t, inserted)
	assert.Equal(t, "file:///c", loc)
	assert.Equal(t, 2, r.Len())
}

func TestRuntimeRegistry_ConcurrentAdd(t *testing.T) {
	r := pool.NewRuntimeRegistry()

	const writers = 16
	results := make([]string, writers)
	inserted := make([]bool, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], inserted[i] = r.Add("app", "x.Foo", "file:///"+string(rune('a'+i)))
		}()
	}
	wg.Wait()

	var wins int
	for i := range writers {
		assert.Equal(t, results[0], results[i])
		if inserted[i] {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}

func TestRuntimeRegistry_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := pool.NewRuntimeRegistry()
		first := make(map[[2]string]string)

		ops := rapid.SliceOf(rapid.SampledFrom([]string{"a", "b", "c"})).Draw(t, "units")
		for i, u := range ops {
			artifact := rapid.SampledFrom([]string{"p.X", "p.Y"}).Draw(t, "artifact")
			loc := rapid.StringMatching(`file:///[a-z]{1,4}`).Draw(t, "locator")

			got, inserted := r.Add(u, artifact, loc)
			key := [2]string{u, artifact}
			want, seen := first[key]
			if !seen {
				first[key] = loc
				want = loc
			}
			if inserted == seen {
				t.Fatalf("op %d: inserted=%v for key seen=%v", i, inserted, seen)
			}
			if got != want {
				t.Fatalf("op %d: got %q, want first locator %q", i, got, want)
			}
		}
		if r.Len() != len(first) {
			t.Fatalf("len %d, want %d", r.Len(), len(first))
		}
	})
}

func TestVisibilityGraph_Extend(t *testing.T) {
	static := func(ns string) (string, bool) {
		owner, ok := map[string]string{"own": "a", "peer": "b"}[ns]
		return owner, ok
	}
	noCommit := func() error { return nil }

	t.Run("maps new namespaces", func(t *testing.T) {
		v := pool.NewVisibilityGraph()
		added, err := v.Extend("a", "c", []string{"c1", "c2"}, static, noCommit)
		require.NoError(t, err)
		assert.Equal(t, []string{"c1", "c2"}, added)
		assert.True(t, v.Sees("a", "c"))
		assert.False(t, v.Sees("b", "c"))

		owner, ok := v.OwnerFor("a", "c1")
		require.True(t, ok)
		assert.Equal(t, "c", owner)
		_, ok = v.OwnerFor("b", "c1")
		assert.False(t, ok)
	})

	t.Run("skips namespaces already owned by the target", func(t *testing.T) {
		v := pool.NewVisibilityGraph()
		added, err := v.Extend("a", "b", []string{"peer", "extra"}, static, noCommit)
		require.NoError(t, err)
		assert.Equal(t, []string{"extra"}, added)
	})

	t.Run("conflict with static owner", func(t *testing.T) {
		v := pool.NewVisibilityGraph()
		_, err := v.Extend("a", "c", []string{"c1", "own"}, static, noCommit)
		assert.True(t, errors.Is(err, domain.ErrConflict))
		assert.Empty(t, v.Mappings())
		assert.Empty(t, v.Edges())
	})

	t.Run("conflict with dynamic owner", func(t *testing.T) {
		v := pool.NewVisibilityGraph()
		_, err := v.Extend("a", "c", []string{"shared"}, static, noCommit)
		require.NoError(t, err)

		_, err = v.Extend("a", "d", []string{"d1", "shared"}, static, noCommit)
		assert.True(t, errors.Is(err, domain.ErrConflict))
		assert.Equal(t, map[string]string{"shared": "c"}, v.Mappings())
		assert.Equal(t, map[string][]string{"a": {"c"}}, v.Edges())
	})

	t.Run("commit failure", func(t *testing.T) {
		v := pool.NewVisibilityGraph()
		boom := errors.New("boom")
		_, err := v.Extend("a", "c", []string{"c1"}, static, func() error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, v.Mappings())
		assert.False(t, v.Sees("a", "c"))
	})
}

func TestStrategy(t *testing.T) {
	u := unit("app", []string{"x"})
	u.Attributes = map[string]string{"Layer": "boot"}

	tests := []struct {
		strategy domain.ClusterStrategy
		want     string
	}{
		{"", pool.DefaultDomainKey},
		{domain.ClusterSingle, pool.DefaultDomainKey},
		{domain.ClusterPerUnit, "app"},
		{"attribute:Layer", "boot"},
		{"attribute:Missing", pool.DefaultDomainKey},
	}
	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			fn, err := pool.Strategy(tt.strategy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fn(u))
		})
	}

	for _, bad := range []domain.ClusterStrategy{"attribute:", "random"} {
		_, err := pool.Strategy(bad)
		assert.True(t, errors.Is(err, domain.ErrConstruction), string(bad))
		assert.True(t, errors.Is(err, domain.ErrInvalidClusterStrategy), string(bad))
	}
}
