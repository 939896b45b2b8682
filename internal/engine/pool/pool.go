// Package pool partitions a dependency graph into isolation domains and
// resolves artifacts across them.
package pool

import (
	"context"
	"errors"
	"maps"
	"slices"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/locator"
	"go.trai.ch/zerr"
)

// DefaultName is used when neither the pool nor its graph is named.
const DefaultName = "pool"

var (
	_ ports.Ancestor = (*Pool)(nil)
	_ locator.Target = (*Pool)(nil)
)

// Config describes a pool to build.
type Config struct {
	Name      string
	Graph     *domain.Graph
	Ancestors []ports.Ancestor
	Cluster   ClusterFunc

	Transformer ports.Transformer
	Sources     ports.SourceOpener
	Locators    ports.LocatorOpener
	Binder      ports.Binder
	Committer   ports.EdgeCommitter

	Logger   ports.Logger
	Tracer   ports.Tracer
	Metrics  ports.Metrics
	Registry *locator.Registry
}

type ancestorOwner struct {
	ancestor ports.Ancestor
	unit     string
}

// Pool owns the domains built from one graph.
type Pool struct {
	id        string
	name      string
	graph     *domain.Graph
	ancestors []ports.Ancestor

	domains []*Domain
	byUnit  map[string]*Domain

	// ancestorUnits maps a unit of an ancestor graph to the immediate ancestor
	// that holds it. ancestorNamespaces maps a namespace to the first ancestor
	// unit declaring it, in declared parent order.
	ancestorUnits      map[string]ports.Ancestor
	ancestorNamespaces map[string]ancestorOwner

	transformer ports.Transformer
	sources     ports.SourceOpener
	locators    ports.LocatorOpener
	binder      ports.Binder
	committer   ports.EdgeCommitter
	logger      ports.Logger
	tracer      ports.Tracer
	metrics     ports.Metrics
}

// New builds a pool. Construction is all or nothing: on any error every
// source opened so far is closed and no pool is returned.
func New(ctx context.Context, cfg Config) (*Pool, error) {
	p := newPool(cfg)

	ctx, span := p.tracer.Start(ctx, "pool.new", ports.WithAttribute("pool", p.name))
	defer span.End()

	if err := p.build(ctx, cfg); err != nil {
		span.RecordError(err)
		return nil, err
	}

	registry := cfg.Registry
	if registry == nil {
		registry = locator.Default
	}
	p.id = registry.Register(p.name, p)

	span.SetAttribute("domains", len(p.domains))
	p.logger.Info("pool constructed", "pool", p.id, "units", len(p.byUnit), "domains", len(p.domains))
	return p, nil
}

func newPool(cfg Config) *Pool {
	p := &Pool{
		name:               cfg.Name,
		graph:              cfg.Graph,
		ancestors:          slices.Clone(cfg.Ancestors),
		byUnit:             make(map[string]*Domain),
		ancestorUnits:      make(map[string]ports.Ancestor),
		ancestorNamespaces: make(map[string]ancestorOwner),
		transformer:        cfg.Transformer,
		sources:            cfg.Sources,
		locators:           cfg.Locators,
		binder:             cfg.Binder,
		committer:          cfg.Committer,
		logger:             cfg.Logger,
		tracer:             cfg.Tracer,
		metrics:            cfg.Metrics,
	}
	if p.name == "" && p.graph != nil {
		p.name = p.graph.Name()
	}
	if p.name == "" {
		p.name = DefaultName
	}
	if p.transformer == nil {
		p.transformer = passthrough{}
	}
	if p.locators == nil {
		p.locators = noLocators{}
	}
	if p.logger == nil {
		p.logger = quietLogger{}
	}
	if p.tracer == nil {
		p.tracer = quietTracer{}
	}
	if p.metrics == nil {
		p.metrics = quietMetrics{}
	}
	return p
}

func (p *Pool) build(ctx context.Context, cfg Config) error {
	if p.graph == nil {
		return zerr.Wrap(domain.ErrConstruction, "pool needs a graph")
	}
	if p.sources == nil {
		return zerr.Wrap(domain.ErrConstruction, "pool needs a source opener")
	}
	if err := p.graph.Validate(); err != nil {
		return domain.Classify(domain.ErrConstruction, err)
	}
	if err := checkAncestors(p.graph, p.ancestors); err != nil {
		return err
	}
	p.indexAncestors()

	cluster := cfg.Cluster
	if cluster == nil {
		cluster = SingleDomain
	}
	groups := make(map[string][]*domain.Unit)
	for u := range p.graph.Units() {
		key := cluster(u)
		groups[key] = append(groups[key], u)
	}

	for _, key := range slices.Sorted(maps.Keys(groups)) {
		d, err := newDomain(ctx, p, key, groups[key])
		if err != nil {
			_ = p.Close()
			return err
		}
		p.domains = append(p.domains, d)
		for _, name := range d.Units() {
			p.byUnit[name] = d
		}
		p.logger.Debug("domain constructed", "domain", d.name, "units", len(d.order))
	}

	if err := p.bind(ctx); err != nil {
		_ = p.Close()
		return err
	}
	return nil
}

// checkAncestors requires ancestors to be exactly the graph's parents, in order.
func checkAncestors(g *domain.Graph, ancestors []ports.Ancestor) error {
	parents := g.Parents()
	if len(parents) != len(ancestors) {
		return zerr.With(zerr.With(
			domain.Classify(domain.ErrConstruction, domain.ErrAncestorMismatch),
			"parents", len(parents)),
			"ancestors", len(ancestors))
	}
	for i, parent := range parents {
		if ancestors[i] == nil || ancestors[i].Graph() != parent {
			return zerr.With(zerr.With(
				domain.Classify(domain.ErrConstruction, domain.ErrAncestorMismatch),
				"index", i),
				"parent", parent.Name())
		}
	}
	return nil
}

// indexAncestors walks each immediate ancestor's graph chain and records, first
// match wins, which ancestor holds every unit and namespace.
func (p *Pool) indexAncestors() {
	for _, anc := range p.ancestors {
		seen := make(map[uint64]bool)
		arena := []*domain.Graph{anc.Graph()}
		for i := 0; i < len(arena); i++ {
			g := arena[i]
			if seen[g.ID()] {
				continue
			}
			seen[g.ID()] = true
			for u := range g.Units() {
				name := u.Name.String()
				if _, ok := p.ancestorUnits[name]; !ok {
					p.ancestorUnits[name] = anc
				}
				for _, ns := range u.Namespaces {
					if _, ok := p.ancestorNamespaces[ns.String()]; !ok {
						p.ancestorNamespaces[ns.String()] = ancestorOwner{ancestor: anc, unit: name}
					}
				}
			}
			arena = append(arena, g.Parents()...)
		}
	}
}

// bind hands every domain to the binder once per reachable ancestor.
func (p *Pool) bind(ctx context.Context) error {
	if p.binder == nil {
		return nil
	}
	reachable := Reachable(p.ancestors)
	for _, d := range p.domains {
		for _, anc := range reachable {
			if err := p.binder.Bind(ctx, anc, d.name); err != nil {
				return zerr.With(zerr.With(
					domain.Classify(domain.ErrConstruction, domain.ErrBindFailed, err),
					"domain", d.name),
					"ancestor", anc.Graph().Name())
			}
		}
	}
	return nil
}

// Reachable lists every ancestor reachable from parents, nearest first.
// Shared ancestors of diamond-shaped hierarchies appear once. Ancestors whose
// graph has no units and no parents of its own are skipped.
func Reachable(parents []ports.Ancestor) []ports.Ancestor {
	arena := slices.Clone(parents)
	seen := make(map[uint64]bool, len(arena))
	var out []ports.Ancestor
	for i := 0; i < len(arena); i++ {
		anc := arena[i]
		g := anc.Graph()
		if seen[g.ID()] {
			continue
		}
		seen[g.ID()] = true

		next := anc.Ancestors()
		if g.Len() == 0 && len(next) == 0 {
			continue
		}
		out = append(out, anc)
		arena = append(arena, next...)
	}
	return out
}

// ID returns the identifier the pool got from the locator registry.
func (p *Pool) ID() string {
	return p.id
}

// Name returns the requested pool name.
func (p *Pool) Name() string {
	return p.name
}

// Graph implements ports.Ancestor.
func (p *Pool) Graph() *domain.Graph {
	return p.graph
}

// Ancestors implements ports.Ancestor.
func (p *Pool) Ancestors() []ports.Ancestor {
	return slices.Clone(p.ancestors)
}

// Domains returns the pool's domains ordered by cluster key.
func (p *Pool) Domains() []*Domain {
	return slices.Clone(p.domains)
}

// Domain returns the domain owning unit.
func (p *Pool) Domain(unit string) (*Domain, bool) {
	d, ok := p.byUnit[unit]
	return d, ok
}

// Units returns the names of the managed units in graph order.
func (p *Pool) Units() []string {
	names := make([]string, 0, len(p.byUnit))
	for u := range p.graph.Units() {
		names = append(names, u.Name.String())
	}
	return names
}

func (p *Pool) domainFor(unit string) (*Domain, error) {
	d, ok := p.byUnit[unit]
	if !ok {
		return nil, zerr.With(zerr.With(
			domain.Classify(domain.ErrIllegalUse, domain.ErrUnknownUnit),
			"pool", p.name),
			"unit", unit)
	}
	return d, nil
}

// Resolve resolves artifact in the domain owning unit.
func (p *Pool) Resolve(ctx context.Context, unit, artifact string) ([]byte, error) {
	d, err := p.domainFor(unit)
	if err != nil {
		return nil, err
	}
	ctx, span := p.tracer.Start(ctx, "pool.resolve",
		ports.WithAttribute("unit", unit),
		ports.WithAttribute("artifact", artifact),
	)
	defer span.End()

	data, err := d.Resolve(ctx, artifact)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return data, nil
}

// Load implements ports.Ancestor. Units of the pool's own ancestors are
// loaded through the ancestor holding them.
func (p *Pool) Load(ctx context.Context, unit, artifact string) ([]byte, error) {
	if anc, ok := p.foreign(unit); ok {
		return anc.Load(ctx, unit, artifact)
	}
	return p.Resolve(ctx, unit, artifact)
}

func (p *Pool) foreign(unit string) (ports.Ancestor, bool) {
	if _, ok := p.byUnit[unit]; ok {
		return nil, false
	}
	anc, ok := p.ancestorUnits[unit]
	return anc, ok
}

// Resource resolves a named resource as seen by unit.
// The descriptor path always answers with the unit's own descriptor.
func (p *Pool) Resource(ctx context.Context, unit, path string) ([]byte, error) {
	if anc, ok := p.foreign(unit); ok {
		return anc.Resource(ctx, unit, path)
	}
	d, err := p.domainFor(unit)
	if err != nil {
		return nil, err
	}
	if cleanResource(path) == domain.DescriptorPath {
		return d.members[unit].blob, nil
	}
	return d.Resource(ctx, path)
}

// Descriptor returns the descriptor blob of unit.
func (p *Pool) Descriptor(unit string) ([]byte, error) {
	d, err := p.domainFor(unit)
	if err != nil {
		return nil, err
	}
	return d.members[unit].blob, nil
}

// Context returns the transforming context of unit.
func (p *Pool) Context(unit string) (ports.TransformingContext, error) {
	d, err := p.domainFor(unit)
	if err != nil {
		return nil, err
	}
	return d.members[unit].tc, nil
}

// Locator returns the locator under which unit's artifact is served.
func (p *Pool) Locator(unit, artifact string) string {
	return locator.Format(p.id, unit, artifact)
}

// AddRuntimeArtifact registers locator as the source of artifact in unit when
// the unit's own source lacks it. The artifact's namespace must be declared by
// the unit. The first registered locator wins and is returned.
func (p *Pool) AddRuntimeArtifact(unit, artifact, loc string) (string, error) {
	d, err := p.domainFor(unit)
	if err != nil {
		return "", err
	}
	if !domain.ValidArtifactName(artifact) {
		return "", zerr.With(domain.Classify(domain.ErrIllegalUse, domain.ErrInvalidName), "artifact", artifact)
	}
	ns := domain.NamespaceOf(artifact)
	if !d.members[unit].unit.Declares(ns) {
		return "", zerr.With(zerr.With(zerr.With(
			domain.Classify(domain.ErrIllegalUse, domain.ErrUndeclaredNamespace),
			"unit", unit),
			"artifact", artifact),
			"namespace", ns)
	}

	effective, inserted := d.runtime.Add(unit, artifact, loc)
	p.metrics.ObserveRuntimeArtifact(inserted)
	if inserted {
		p.logger.Debug("runtime artifact registered", "unit", unit, "artifact", artifact, "locator", loc)
	}
	return effective, nil
}

// RuntimeArtifact returns the locator registered for artifact in unit.
func (p *Pool) RuntimeArtifact(unit, artifact string) (string, bool) {
	d, ok := p.byUnit[unit]
	if !ok {
		return "", false
	}
	return d.runtime.Get(unit, artifact)
}

// AddVisibilityEdge lets source see target. Target may be a unit of this pool
// or of an ancestor. The namespaces of target that are new to source's domain
// are mapped to target; if any of them already has another owner nothing changes.
func (p *Pool) AddVisibilityEdge(ctx context.Context, source, target string) error {
	ctx, span := p.tracer.Start(ctx, "pool.edge",
		ports.WithAttribute("source", source),
		ports.WithAttribute("target", target),
	)
	defer span.End()

	err := p.addEdge(ctx, source, target)
	p.metrics.ObserveEdge(err == nil)
	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (p *Pool) addEdge(ctx context.Context, source, target string) error {
	d, err := p.domainFor(source)
	if err != nil {
		return err
	}

	tu, ok := p.graph.Unit(target)
	if !ok {
		anc, managed := p.ancestorUnits[target]
		if managed {
			tu, _, managed = anc.Graph().FindUnit(target)
		}
		if !managed {
			return zerr.With(zerr.With(
				domain.Classify(domain.ErrIllegalUse, domain.ErrUnknownUnit),
				"pool", p.name),
				"unit", target)
		}
	}

	static := func(ns string) (string, bool) {
		owner, ok := d.static[ns]
		return owner, ok
	}
	commit := func() error {
		if p.committer == nil {
			return nil
		}
		if err := p.committer.CommitEdge(ctx, source, target); err != nil {
			return zerr.With(zerr.With(
				domain.Classify(domain.ErrConflict, domain.ErrEdgeCommitFailed, err),
				"source", source),
				"target", target)
		}
		return nil
	}

	added, err := d.visibility.Extend(source, target, domain.Strings(tu.Namespaces), static, commit)
	if err != nil {
		return err
	}
	p.logger.Info("visibility edge added", "source", source, "target", target, "namespaces", len(added))
	return nil
}

// Close releases every artifact source of the pool.
// The pool stays registered with its locator registry.
func (p *Pool) Close() error {
	var errs []error
	for _, d := range p.domains {
		if err := d.close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
