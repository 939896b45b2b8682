// Package metrics implements ports.Metrics with Prometheus counters.
package metrics

import (
	"slices"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "strata"

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus records loading runtime counters on its own registry.
type Prometheus struct {
	registry   *prometheus.Registry
	resolves   *prometheus.CounterVec
	transforms *prometheus.CounterVec
	edges      *prometheus.CounterVec
	runtime    *prometheus.CounterVec
}

// New creates the counters and registers them on a fresh registry.
func New() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Artifact resolutions by domain and outcome.",
		}, []string{"domain", "outcome"}),
		transforms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transforms_total",
			Help:      "Transformer invocations by domain, reason and result.",
		}, []string{"domain", "reason", "result"}),
		edges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visibility_edges_total",
			Help:      "Visibility edge requests by result.",
		}, []string{"result"}),
		runtime: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runtime_artifacts_total",
			Help:      "Runtime artifact registrations by result.",
		}, []string{"result"}),
	}
	p.registry.MustRegister(p.resolves, p.transforms, p.edges, p.runtime)
	return p
}

// Registry returns the registry holding the counters.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// ObserveResolve implements ports.Metrics.
func (p *Prometheus) ObserveResolve(domain string, outcome ports.Outcome) {
	p.resolves.WithLabelValues(domain, string(outcome)).Inc()
}

// ObserveTransform implements ports.Metrics.
func (p *Prometheus) ObserveTransform(domain, reason string, accepted bool) {
	p.transforms.WithLabelValues(domain, reason, result(accepted, "accepted", "rejected")).Inc()
}

// ObserveEdge implements ports.Metrics.
func (p *Prometheus) ObserveEdge(accepted bool) {
	p.edges.WithLabelValues(result(accepted, "accepted", "rejected")).Inc()
}

// ObserveRuntimeArtifact implements ports.Metrics.
func (p *Prometheus) ObserveRuntimeArtifact(inserted bool) {
	p.runtime.WithLabelValues(result(inserted, "inserted", "existing")).Inc()
}

// Sample is one counter value.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// String formats the sample in the Prometheus text style.
func (s Sample) String() string {
	return s.Name + "{" + s.Labels + "} " + strconv.FormatFloat(s.Value, 'f', -1, 64)
}

// Snapshot gathers every counter, sorted by name and labels.
func (p *Prometheus) Snapshot() ([]Sample, error) {
	families, err := p.registry.Gather()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to gather metrics")
	}

	var samples []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+strconv.Quote(lp.GetValue()))
			}
			samples = append(samples, Sample{
				Name:   mf.GetName(),
				Labels: strings.Join(labels, ","),
				Value:  m.GetCounter().GetValue(),
			})
		}
	}

	slices.SortFunc(samples, func(a, b Sample) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Labels, b.Labels)
	})
	return samples, nil
}

func result(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
