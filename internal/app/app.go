// Package app implements the application layer for strata.
package app

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/strata/internal/adapters/binder"  //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/metrics" //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/locator"
	"go.trai.ch/strata/internal/engine/pool"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Sample is one counter value reported by Stats.
type Sample = metrics.Sample

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	factory      *pool.Factory
	blobs        ports.BlobStore
	locators     ports.LocatorOpener
	hasher       ports.Hasher
	logger       ports.Logger
	metrics      *metrics.Prometheus
	ledger       *binder.Ledger

	manifest string
	workers  int

	mu    sync.Mutex
	pools map[string]*pool.Pool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	factory *pool.Factory,
	blobs ports.BlobStore,
	locators ports.LocatorOpener,
	hasher ports.Hasher,
	log ports.Logger,
	prom *metrics.Prometheus,
	ledger *binder.Ledger,
) *App {
	return &App{
		configLoader: loader,
		factory:      factory,
		blobs:        blobs,
		locators:     locators,
		hasher:       hasher,
		logger:       log,
		metrics:      prom,
		ledger:       ledger,
		manifest:     ".",
		workers:      1,
		pools:        make(map[string]*pool.Pool),
	}
}

// WithManifest sets the manifest path used when a call passes none.
func (a *App) WithManifest(path string) *App {
	if path != "" {
		a.manifest = path
	}
	return a
}

// WithWorkers sets how many artifacts Warm resolves concurrently.
func (a *App) WithWorkers(n int) *App {
	if n > 0 {
		a.workers = n
	}
	return a
}

// Manifest returns the default manifest path.
func (a *App) Manifest() string {
	return a.manifest
}

// ConfigureLogging switches the logger level and format when the logger supports it.
// An empty level leaves the current level unchanged.
func (a *App) ConfigureLogging(level string, json bool) error {
	if level != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return zerr.With(zerr.Wrap(err, "invalid log level"), "level", level)
		}
		if s, ok := a.logger.(interface{ SetLevel(slog.Level) }); ok {
			s.SetLevel(l)
		}
	}
	if s, ok := a.logger.(interface{ SetJSON(bool) }); ok && json {
		s.SetJSON(true)
	}
	return nil
}

// Load reads manifest and builds its pool together with the pools of its parents.
// A manifest is built once; later calls return the same pool.
func (a *App) Load(ctx context.Context, manifest string) (*pool.Pool, error) {
	if manifest == "" {
		manifest = a.manifest
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.pools[manifest]; ok {
		return p, nil
	}

	layout, err := a.configLoader.Load(manifest)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	p, err := a.factory.Build(ctx, layout)
	if err != nil {
		return nil, zerr.Wrap(err, "pool construction failed")
	}
	a.pools[manifest] = p
	return p, nil
}

// RuntimeArtifact asks for a file to be registered as the runtime source of an artifact.
type RuntimeArtifact struct {
	Unit     string
	Artifact string
	Path     string
}

// ParseRuntimeArtifact parses "unit:artifact=path".
func ParseRuntimeArtifact(s string) (RuntimeArtifact, error) {
	key, path, ok := strings.Cut(s, "=")
	if ok {
		unit, artifact, found := strings.Cut(key, ":")
		if found && unit != "" && artifact != "" && path != "" {
			return RuntimeArtifact{Unit: unit, Artifact: artifact, Path: path}, nil
		}
	}
	return RuntimeArtifact{}, zerr.With(
		domain.Classify(domain.ErrIllegalUse, domain.ErrInvalidAssignment), "value", s)
}

// ParseEdge parses "source=target".
func ParseEdge(s string) (binder.Edge, error) {
	source, target, ok := strings.Cut(s, "=")
	if !ok || source == "" || target == "" {
		return binder.Edge{}, zerr.With(
			domain.Classify(domain.ErrIllegalUse, domain.ErrInvalidAssignment), "value", s)
	}
	return binder.Edge{Source: source, Target: target}, nil
}

// ResolveOptions configuration for the Resolve method.
type ResolveOptions struct {
	Manifest string
	Runtime  []RuntimeArtifact
	Edges    []binder.Edge
}

// ResolveResult is a resolved artifact.
type ResolveResult struct {
	Pool     string
	Unit     string
	Artifact string
	Locator  string
	Digest   string
	Data     []byte
}

// Resolve registers the requested runtime artifacts and edges, then resolves
// artifact as seen from unit.
func (a *App) Resolve(ctx context.Context, unit, artifact string, opts ResolveOptions) (*ResolveResult, error) {
	p, err := a.Load(ctx, opts.Manifest)
	if err != nil {
		return nil, err
	}

	for _, rt := range opts.Runtime {
		if err := a.addRuntime(p, rt); err != nil {
			return nil, err
		}
	}

	for _, e := range opts.Edges {
		if err := p.AddVisibilityEdge(ctx, e.Source, e.Target); err != nil {
			return nil, err
		}
	}

	data, err := p.Resolve(ctx, unit, artifact)
	if err != nil {
		return nil, err
	}

	return &ResolveResult{
		Pool:     p.ID(),
		Unit:     unit,
		Artifact: artifact,
		Locator:  p.Locator(unit, artifact),
		Digest:   a.hasher.Digest(data),
		Data:     data,
	}, nil
}

func (a *App) addRuntime(p *pool.Pool, rt RuntimeArtifact) error {
	data, err := os.ReadFile(rt.Path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read runtime artifact"), "path", rt.Path)
	}

	loc, err := a.blobs.Put(data)
	if err != nil {
		return err
	}

	effective, err := p.AddRuntimeArtifact(rt.Unit, rt.Artifact, loc)
	if err != nil {
		return err
	}
	if effective != loc {
		a.logger.Warn("runtime artifact already registered",
			"unit", rt.Unit, "artifact", rt.Artifact, "locator", effective)
	}
	return nil
}

// Open returns the bytes behind a locator. For strata:// locators the manifest
// pool is built first so that the locator registry knows it.
func (a *App) Open(ctx context.Context, manifest, loc string) ([]byte, error) {
	if strings.HasPrefix(loc, locator.Scheme+"://") {
		if _, err := a.Load(ctx, manifest); err != nil {
			return nil, err
		}
	}
	return a.locators.Open(ctx, loc)
}

// Report describes the pools built for a manifest, ancestors first.
type Report struct {
	Pools []PoolReport
	Edges []binder.Edge
}

// PoolReport describes one pool.
type PoolReport struct {
	ID        string
	Name      string
	Ancestors []string
	Domains   []DomainReport
}

// DomainReport describes one isolation domain.
type DomainReport struct {
	Name  string
	Units []UnitReport
	// Owners maps every statically visible namespace to its owning unit.
	Owners map[string]string
}

// UnitReport describes one unit of a domain.
type UnitReport struct {
	Name       string
	Namespaces []string
	Reads      []string
	Artifacts  []string
}

// Inspect builds the manifest pool and describes every pool built so far.
func (a *App) Inspect(ctx context.Context, manifest string) (*Report, error) {
	if _, err := a.Load(ctx, manifest); err != nil {
		return nil, err
	}

	report := &Report{}
	for _, p := range a.factory.Pools() {
		report.Pools = append(report.Pools, describePool(p))
	}
	if a.ledger != nil {
		report.Edges = a.ledger.Edges()
	}
	return report, nil
}

func describePool(p *pool.Pool) PoolReport {
	pr := PoolReport{ID: p.ID(), Name: p.Name()}
	for _, anc := range p.Ancestors() {
		pr.Ancestors = append(pr.Ancestors, anc.Graph().Name())
	}

	for _, d := range p.Domains() {
		artifacts := make(map[string][]string)
		for unit, artifact := range d.Artifacts() {
			artifacts[unit] = append(artifacts[unit], artifact)
		}

		dr := DomainReport{Name: d.Name(), Owners: d.StaticOwners()}
		for _, name := range d.Units() {
			u, _ := p.Graph().Unit(name)
			arts := artifacts[name]
			slices.Sort(arts)
			dr.Units = append(dr.Units, UnitReport{
				Name:       name,
				Namespaces: domain.Strings(u.Namespaces),
				Reads:      domain.Strings(u.Reads),
				Artifacts:  arts,
			})
		}
		pr.Domains = append(pr.Domains, dr)
	}
	return pr
}

// WarmResult is the outcome of resolving one artifact during Warm.
type WarmResult struct {
	Unit     string
	Artifact string
	Digest   string
	Size     int
	Err      error
}

// Warm resolves every artifact of every unit of the manifest pool, using the
// configured number of workers. Failures are reported per artifact.
func (a *App) Warm(ctx context.Context, manifest string) ([]WarmResult, error) {
	p, err := a.Load(ctx, manifest)
	if err != nil {
		return nil, err
	}

	var results []WarmResult
	for _, d := range p.Domains() {
		for unit, artifact := range d.Artifacts() {
			results = append(results, WarmResult{Unit: unit, Artifact: artifact})
		}
	}
	slices.SortFunc(results, func(x, y WarmResult) int {
		if c := strings.Compare(x.Unit, y.Unit); c != 0 {
			return c
		}
		return strings.Compare(x.Artifact, y.Artifact)
	})

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := range results {
		r := &results[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := p.Resolve(ctx, r.Unit, r.Artifact)
			if err != nil {
				r.Err = err
				a.logger.Warn("artifact did not resolve", "unit", r.Unit, "artifact", r.Artifact)
				return nil
			}
			r.Digest = a.hasher.Digest(data)
			r.Size = len(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "warm interrupted")
	}

	a.logger.Info("warmed pool", "pool", p.ID(), "artifacts", len(results))
	return results, nil
}

// Stats warms the manifest pool and returns the resulting counters.
func (a *App) Stats(ctx context.Context, manifest string) ([]Sample, error) {
	if _, err := a.Warm(ctx, manifest); err != nil {
		return nil, err
	}
	return a.metrics.Snapshot()
}

// Close releases every pool built by the app.
func (a *App) Close() error {
	return a.factory.Close()
}
