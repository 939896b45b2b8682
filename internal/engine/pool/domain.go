package pool

import (
	"context"
	"errors"
	"iter"
	"maps"
	"strings"
	"sync"

	gocache "github.com/patrickmn/go-cache"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Domain is an isolation boundary owning a cluster of units.
// It resolves artifacts for its units and constructs each artifact at most once.
type Domain struct {
	pool *Pool
	name string
	key  string

	members map[string]*member
	order   []*member

	// static maps a namespace to the unit owning it, as seen through the
	// members and their static reads. Immutable after construction.
	static map[string]string

	visibility *VisibilityGraph
	runtime    *RuntimeRegistry

	cache      *gocache.Cache
	flights    singleflight.Group
	namespaces sync.Map // namespace -> *domain.NamespaceInfo
}

type member struct {
	unit       *domain.Unit
	source     ports.ArtifactSource
	descriptor *domain.Descriptor
	blob       []byte
	reads      map[string]struct{}
	tc         *transformingContext
}

func (m *member) name() string {
	return m.unit.Name.String()
}

func newDomain(ctx context.Context, p *Pool, key string, units []*domain.Unit) (*Domain, error) {
	d := &Domain{
		pool:       p,
		name:       p.name + "/" + key,
		key:        key,
		members:    make(map[string]*member, len(units)),
		static:     make(map[string]string),
		visibility: NewVisibilityGraph(),
		runtime:    NewRuntimeRegistry(),
		cache:      gocache.New(gocache.NoExpiration, 0),
	}

	for _, u := range units {
		m, err := d.openMember(ctx, u)
		if err != nil {
			_ = d.close()
			return nil, err
		}
		d.members[m.name()] = m
		d.order = append(d.order, m)
	}

	if err := d.buildOwnership(); err != nil {
		_ = d.close()
		return nil, err
	}
	return d, nil
}

func (d *Domain) openMember(ctx context.Context, u *domain.Unit) (*member, error) {
	name := u.Name.String()
	src, err := d.pool.sources.Open(ctx, u)
	if err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrConstruction, domain.ErrSourceOpenFailed, err), "unit", name)
	}

	m := &member{
		unit:   u,
		source: src,
		reads:  make(map[string]struct{}, len(u.Reads)),
	}
	for _, r := range u.Reads {
		m.reads[r.String()] = struct{}{}
	}

	if blob, ok := src.Descriptor(); ok {
		desc, err := domain.ParseDescriptor(blob)
		if err != nil {
			_ = src.Close()
			return nil, zerr.With(domain.Classify(domain.ErrConstruction, err), "unit", name)
		}
		m.descriptor, m.blob = desc, blob
	} else {
		m.descriptor = u.Descriptor()
		m.blob = m.descriptor.Bytes()
	}

	m.tc = &transformingContext{domain: d, member: m}
	return m, nil
}

// buildOwnership fills the static map: members claim their own namespaces
// first, then the namespaces of the units they read.
func (d *Domain) buildOwnership() error {
	for _, m := range d.order {
		for _, ns := range m.unit.Namespaces {
			if err := d.claim(ns.String(), m.name()); err != nil {
				return err
			}
		}
	}
	for _, m := range d.order {
		for _, r := range m.unit.Reads {
			peer, _, ok := d.pool.graph.FindUnit(r.String())
			if !ok {
				continue
			}
			for _, ns := range peer.Namespaces {
				if err := d.claim(ns.String(), peer.Name.String()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (d *Domain) claim(ns, unit string) error {
	if owner, ok := d.static[ns]; ok && owner != unit {
		return zerr.With(zerr.With(zerr.With(zerr.With(
			domain.Classify(domain.ErrConstruction, domain.ErrNamespaceOwnedTwice),
			"domain", d.name),
			"namespace", ns),
			"owner", owner),
			"claimant", unit)
	}
	d.static[ns] = unit
	return nil
}

// Name returns the domain name, made of the pool name and the cluster key.
func (d *Domain) Name() string {
	return d.name
}

// Key returns the cluster key shared by the domain's units.
func (d *Domain) Key() string {
	return d.key
}

// Units returns the names of the units the domain owns, in graph order.
func (d *Domain) Units() []string {
	names := make([]string, len(d.order))
	for i, m := range d.order {
		names[i] = m.name()
	}
	return names
}

// StaticOwners returns a copy of the construction-time namespace ownership map.
func (d *Domain) StaticOwners() map[string]string {
	return maps.Clone(d.static)
}

// Visibility returns the domain's runtime visibility graph.
func (d *Domain) Visibility() *VisibilityGraph {
	return d.visibility
}

// Runtime returns the domain's runtime artifact registry.
func (d *Domain) Runtime() *RuntimeRegistry {
	return d.runtime
}

// Namespace returns the namespace info materialized by the first resolution in ns.
func (d *Domain) Namespace(ns string) (*domain.NamespaceInfo, bool) {
	v, ok := d.namespaces.Load(ns)
	if !ok {
		return nil, false
	}
	return v.(*domain.NamespaceInfo), true
}

// Artifacts yields (unit, artifact) for every artifact entry in the members' sources.
func (d *Domain) Artifacts() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, m := range d.order {
			for entry := range m.source.Entries() {
				name, ok := domain.ArtifactName(entry)
				if !ok {
					continue
				}
				if !yield(m.name(), name) {
					return
				}
			}
		}
	}
}

// Resolve returns the bytes of artifact as seen from this domain.
// Successful results are cached and never constructed again; failures are not cached.
// Runtime locators are opened outside the construction flight, and a resolution
// that comes back to an artifact already being resolved on the same call chain
// fails with domain.ErrNotFound.
func (d *Domain) Resolve(ctx context.Context, artifact string) ([]byte, error) {
	if !domain.ValidArtifactName(artifact) {
		return nil, notFound(domain.ErrInvalidName, artifact)
	}
	if data, ok := d.cached(artifact); ok {
		d.pool.metrics.ObserveResolve(d.name, ports.OutcomeCached)
		return data, nil
	}
	if resolving(ctx, d, artifact) {
		d.pool.metrics.ObserveResolve(d.name, ports.OutcomeNotFound)
		return nil, zerr.With(notFound(errResolutionCycle, artifact), "domain", d.name)
	}
	ctx = withResolving(ctx, d, artifact)

	v, err, _ := d.flights.Do(artifact, func() (any, error) {
		if data, ok := d.cached(artifact); ok {
			return loaded{data: data, outcome: ports.OutcomeCached}, nil
		}
		res, err := d.load(ctx, artifact)
		if err != nil {
			return nil, err
		}
		if res.runtime == "" {
			d.cache.Set(artifact, res.data, gocache.NoExpiration)
		}
		return res, nil
	})
	if err != nil {
		d.pool.metrics.ObserveResolve(d.name, ports.OutcomeNotFound)
		return nil, err
	}

	res := v.(loaded)
	if res.runtime != "" {
		data, err := d.openRuntime(ctx, res.runtime, artifact)
		if err != nil {
			d.pool.metrics.ObserveResolve(d.name, ports.OutcomeNotFound)
			return nil, err
		}
		d.materialize(res.member, domain.NamespaceOf(artifact))
		d.cache.Set(artifact, data, gocache.NoExpiration)
		res.data = data
	}
	d.pool.metrics.ObserveResolve(d.name, res.outcome)
	return res.data, nil
}

// loaded is the outcome of a construction flight. A non-empty runtime
// locator means the bytes still have to be opened from the runtime registry.
type loaded struct {
	data    []byte
	outcome ports.Outcome
	runtime string
	member  *member
}

type resolvingKey struct{}

// chain is the list of (domain, artifact) pairs being resolved by one call chain.
type chain struct {
	domain   *Domain
	artifact string
	next     *chain
}

func resolving(ctx context.Context, d *Domain, artifact string) bool {
	c, _ := ctx.Value(resolvingKey{}).(*chain)
	for ; c != nil; c = c.next {
		if c.domain == d && c.artifact == artifact {
			return true
		}
	}
	return false
}

func withResolving(ctx context.Context, d *Domain, artifact string) context.Context {
	next, _ := ctx.Value(resolvingKey{}).(*chain)
	return context.WithValue(ctx, resolvingKey{}, &chain{domain: d, artifact: artifact, next: next})
}

func (d *Domain) cached(artifact string) ([]byte, bool) {
	v, ok := d.cache.Get(artifact)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

func (d *Domain) load(ctx context.Context, artifact string) (loaded, error) {
	ns := domain.NamespaceOf(artifact)
	r := d.route(ns)
	switch r.kind {
	case routeLocal:
		res, err := d.fetch(ctx, r.member, artifact, domain.ReasonResolve)
		if err != nil {
			return loaded{}, err
		}
		if res.runtime == "" {
			d.materialize(r.member, ns)
		}
		return res, nil
	case routeSibling:
		data, err := r.sibling.Resolve(ctx, artifact)
		return loaded{data: data, outcome: ports.OutcomeDelegated}, err
	case routeAncestor:
		data, err := fromAncestor(ctx, r, artifact)
		return loaded{data: data, outcome: ports.OutcomeAncestor}, err
	default:
		return loaded{}, notFound(errNoOwner, artifact)
	}
}

// fetch reads artifact from the member's source and transforms it. An entry
// absent from the source falls back to the runtime registry: the locator is
// returned unopened and its bytes are served untransformed.
func (d *Domain) fetch(ctx context.Context, m *member, artifact string, reason domain.Reason) (loaded, error) {
	unit := m.name()
	raw, err := m.source.Open(domain.ArtifactPath(artifact))
	if err != nil {
		return loaded{}, zerr.With(notFound(domain.ErrSourceReadFailed, artifact, err), "unit", unit)
	}

	if raw != nil {
		if len(raw) == 0 {
			return loaded{}, zerr.With(notFound(errEmptyEntry, artifact), "unit", unit)
		}
		out, err := d.pool.transformer.Transform(ctx, m.tc, unit, artifact, raw, reason)
		accepted := err == nil && len(out) > 0
		d.pool.metrics.ObserveTransform(d.name, string(reason), accepted)
		if !accepted {
			d.pool.logger.Debug("transformer rejected artifact", "domain", d.name, "unit", unit, "artifact", artifact)
			if err != nil {
				return loaded{}, zerr.With(notFound(domain.ErrTransformRejected, artifact, err), "unit", unit)
			}
			return loaded{}, zerr.With(notFound(domain.ErrTransformRejected, artifact), "unit", unit)
		}
		return loaded{data: out, outcome: ports.OutcomeLocal, member: m}, nil
	}

	if loc, ok := d.runtime.Get(unit, artifact); ok {
		return loaded{outcome: ports.OutcomeRuntime, runtime: loc, member: m}, nil
	}

	return loaded{}, zerr.With(notFound(errAbsent, artifact), "unit", unit)
}

func (d *Domain) openRuntime(ctx context.Context, loc, artifact string) ([]byte, error) {
	data, err := d.pool.locators.Open(ctx, loc)
	if err != nil {
		return nil, zerr.With(notFound(errRuntimeUnavailable, artifact, err), "locator", loc)
	}
	if len(data) == 0 {
		return nil, zerr.With(notFound(errRuntimeUnavailable, artifact), "locator", loc)
	}
	return data, nil
}

func (d *Domain) materialize(m *member, ns string) {
	if _, ok := d.namespaces.Load(ns); ok {
		return
	}
	d.namespaces.LoadOrStore(ns, &domain.NamespaceInfo{
		Name:       ns,
		Unit:       m.name(),
		Attributes: m.descriptor.Merged(ns),
	})
}

// lookup resolves artifact on behalf of m, restricted to namespaces m can see.
// A cached result is returned as is; otherwise the artifact is transformed for
// the lookup and the result is not cached.
func (d *Domain) lookup(ctx context.Context, m *member, artifact string) ([]byte, error) {
	if !domain.ValidArtifactName(artifact) {
		return nil, notFound(domain.ErrInvalidName, artifact)
	}
	owner, ok := d.visibleOwner(m, domain.NamespaceOf(artifact))
	if !ok {
		return nil, zerr.With(notFound(errNotVisible, artifact), "unit", m.name())
	}
	return d.peek(ctx, d.routeUnit(owner), artifact)
}

func (d *Domain) visibleOwner(m *member, ns string) (string, bool) {
	self := m.name()
	if owner, ok := d.static[ns]; ok {
		if _, reads := m.reads[owner]; owner == self || reads || d.visibility.Sees(self, owner) {
			return owner, true
		}
		return "", false
	}
	return d.visibility.OwnerFor(self, ns)
}

func (d *Domain) peek(ctx context.Context, r route, artifact string) ([]byte, error) {
	if data, ok := d.cached(artifact); ok {
		return data, nil
	}
	switch r.kind {
	case routeLocal:
		res, err := d.fetch(ctx, r.member, artifact, domain.ReasonLookup)
		if err != nil {
			return nil, err
		}
		if res.runtime != "" {
			if resolving(ctx, d, artifact) {
				return nil, zerr.With(notFound(errResolutionCycle, artifact), "domain", d.name)
			}
			return d.openRuntime(withResolving(ctx, d, artifact), res.runtime, artifact)
		}
		return res.data, nil
	case routeSibling:
		return r.sibling.peek(ctx, r.sibling.route(domain.NamespaceOf(artifact)), artifact)
	case routeAncestor:
		return fromAncestor(ctx, r, artifact)
	default:
		return nil, notFound(errNoOwner, artifact)
	}
}

// Resource returns a named resource. Artifact entries are served like lookups
// and are never encapsulated. Other resources are routed by the namespace of
// their directory; unowned resources resolve only when exactly one member has them.
func (d *Domain) Resource(ctx context.Context, path string) ([]byte, error) {
	path = cleanResource(path)
	if path == "" {
		return nil, notFound(domain.ErrInvalidName, path)
	}

	if domain.IsArtifactPath(path) {
		name, ok := domain.ArtifactName(path)
		if !ok {
			return nil, notFound(domain.ErrInvalidName, path)
		}
		return d.peek(ctx, d.route(domain.NamespaceOf(name)), name)
	}

	ns := domain.ResourceNamespace(path)
	if owner, ok := d.owner(ns); ok {
		r := d.routeUnit(owner)
		switch r.kind {
		case routeLocal:
			return d.memberResource(r.member, ns, path)
		case routeSibling:
			return r.sibling.Resource(ctx, path)
		case routeAncestor:
			return r.ancestor.Resource(ctx, r.unit, path)
		default:
			return nil, notFound(errNoOwner, path)
		}
	}

	data, err := d.uniqueResource(path)
	if err == nil || !errors.Is(err, errAbsent) {
		return data, err
	}
	if anc, ok := d.pool.ancestorNamespaces[ns]; ok {
		return anc.ancestor.Resource(ctx, anc.unit, path)
	}
	return nil, err
}

// Resources returns every visible copy of a named resource.
// An owned resource has at most one copy; unowned resources may have one per member.
func (d *Domain) Resources(ctx context.Context, path string) ([][]byte, error) {
	path = cleanResource(path)
	ns := domain.ResourceNamespace(path)
	if _, ok := d.owner(ns); ok || domain.IsArtifactPath(path) {
		data, err := d.Resource(ctx, path)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return [][]byte{data}, nil
	}

	var out [][]byte
	for _, m := range d.order {
		data, err := m.source.Open(path)
		if err != nil {
			return nil, zerr.With(notFound(domain.ErrSourceReadFailed, path, err), "unit", m.name())
		}
		if data != nil {
			out = append(out, data)
		}
	}
	return out, nil
}

func (d *Domain) owner(ns string) (string, bool) {
	if owner, ok := d.static[ns]; ok {
		return owner, true
	}
	return d.visibility.Owner(ns)
}

func (d *Domain) memberResource(m *member, ns, path string) ([]byte, error) {
	if ns != "" && m.unit.Declares(ns) && !m.unit.IsOpen(ns) {
		return nil, zerr.With(notFound(domain.ErrEncapsulated, path), "unit", m.name())
	}
	data, err := m.source.Open(path)
	if err != nil {
		return nil, zerr.With(notFound(domain.ErrSourceReadFailed, path, err), "unit", m.name())
	}
	if data == nil {
		return nil, zerr.With(notFound(errAbsent, path), "unit", m.name())
	}
	return data, nil
}

func (d *Domain) uniqueResource(path string) ([]byte, error) {
	var (
		found    []byte
		provider string
	)
	for _, m := range d.order {
		data, err := m.source.Open(path)
		if err != nil {
			return nil, zerr.With(notFound(domain.ErrSourceReadFailed, path, err), "unit", m.name())
		}
		if data == nil {
			continue
		}
		if provider != "" {
			return nil, zerr.With(zerr.With(notFound(domain.ErrAmbiguousResource, path), "unit", provider), "other", m.name())
		}
		found, provider = data, m.name()
	}
	if provider == "" {
		return nil, notFound(errAbsent, path)
	}
	return found, nil
}

func (d *Domain) close() error {
	var errs []error
	for _, m := range d.order {
		if err := m.source.Close(); err != nil {
			errs = append(errs, zerr.With(zerr.Wrap(err, "close artifact source"), "unit", m.name()))
		}
	}
	return errors.Join(errs...)
}

type routeKind int

const (
	routeNone routeKind = iota
	routeLocal
	routeSibling
	routeAncestor
)

type route struct {
	kind     routeKind
	unit     string
	member   *member
	sibling  *Domain
	ancestor ports.Ancestor
}

func (d *Domain) route(ns string) route {
	if owner, ok := d.owner(ns); ok {
		return d.routeUnit(owner)
	}
	if anc, ok := d.pool.ancestorNamespaces[ns]; ok {
		return route{kind: routeAncestor, unit: anc.unit, ancestor: anc.ancestor}
	}
	return route{}
}

func (d *Domain) routeUnit(unit string) route {
	if m, ok := d.members[unit]; ok {
		return route{kind: routeLocal, unit: unit, member: m}
	}
	if other, ok := d.pool.byUnit[unit]; ok && other != d {
		return route{kind: routeSibling, unit: unit, sibling: other}
	}
	if anc, ok := d.pool.ancestorUnits[unit]; ok {
		return route{kind: routeAncestor, unit: unit, ancestor: anc}
	}
	return route{unit: unit}
}

func fromAncestor(ctx context.Context, r route, artifact string) ([]byte, error) {
	data, err := r.ancestor.Load(ctx, r.unit, artifact)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, zerr.With(notFound(errAncestorFailed, artifact, err), "unit", r.unit)
	}
	return data, nil
}

var (
	errNoOwner            = zerr.New("no unit owns the namespace")
	errAbsent             = zerr.New("entry absent from unit")
	errEmptyEntry         = zerr.New("artifact entry is empty")
	errResolutionCycle    = zerr.New("artifact resolution came back to itself")
	errNotVisible         = zerr.New("namespace not visible from unit")
	errRuntimeUnavailable = zerr.New("runtime artifact could not be opened")
	errAncestorFailed     = zerr.New("ancestor failed to load artifact")
)

func notFound(cause error, name string, more ...error) error {
	return zerr.With(domain.Classify(domain.ErrNotFound, append([]error{cause}, more...)...), "name", name)
}

// cleanResource strips leading and trailing slashes and collapses repeated ones.
func cleanResource(path string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	return strings.Join(parts, "/")
}
