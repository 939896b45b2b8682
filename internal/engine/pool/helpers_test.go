package pool_test

import (
	"context"
	"iter"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/locator"
	"go.trai.ch/strata/internal/engine/pool"
)

type memSource struct {
	files  map[string][]byte
	desc   []byte
	closed atomic.Bool
}

func (s *memSource) Entries() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(s.files)))
}

func (s *memSource) Open(path string) ([]byte, error) {
	return s.files[path], nil
}

func (s *memSource) Descriptor() ([]byte, bool) {
	return s.desc, s.desc != nil
}

func (s *memSource) Close() error {
	s.closed.Store(true)
	return nil
}

// memOpener serves memSources by unit name. Units without files get an empty source.
type memOpener struct {
	mu      sync.Mutex
	sources map[string]*memSource
	fail    map[string]error
}

func newOpener() *memOpener {
	return &memOpener{sources: make(map[string]*memSource), fail: make(map[string]error)}
}

func (o *memOpener) with(unit string, files map[string]string) *memOpener {
	src := &memSource{files: make(map[string][]byte, len(files))}
	for path, content := range files {
		src.files[path] = []byte(content)
	}
	o.sources[unit] = src
	return o
}

func (o *memOpener) source(unit string) *memSource {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sources[unit]
}

func (o *memOpener) Open(_ context.Context, u *domain.Unit) (ports.ArtifactSource, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	name := u.Name.String()
	if err := o.fail[name]; err != nil {
		return nil, err
	}
	src, ok := o.sources[name]
	if !ok {
		src = &memSource{files: map[string][]byte{}}
		o.sources[name] = src
	}
	return src, nil
}

func unit(name string, namespaces []string, reads ...string) *domain.Unit {
	return &domain.Unit{
		Name:       domain.NewInternedString(name),
		Namespaces: domain.NewInternedStrings(namespaces),
		Reads:      domain.NewInternedStrings(reads),
	}
}

func graph(t *testing.T, name string, parents []*domain.Graph, units ...*domain.Unit) *domain.Graph {
	t.Helper()
	g := domain.NewGraph(name, parents...)
	for _, u := range units {
		require.NoError(t, g.AddUnit(u))
	}
	return g
}

// build constructs a pool against a private locator registry.
func build(t *testing.T, cfg pool.Config) *pool.Pool {
	t.Helper()
	if cfg.Registry == nil {
		cfg.Registry = locator.NewRegistry()
	}
	p, err := pool.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

// upper is a transformer that upper-cases ASCII letters.
type upper struct {
	calls atomic.Int32
}

func (u *upper) Transform(_ context.Context, _ ports.TransformingContext, _, _ string, data []byte, _ domain.Reason) ([]byte, error) {
	u.calls.Add(1)
	out := make([]byte, len(data))
	for i, b := range data {
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		out[i] = b
	}
	return out, nil
}
