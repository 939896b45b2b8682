package ports

//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks

// Outcome classifies how a resolution ended.
type Outcome string

const (
	OutcomeCached    Outcome = "cached"
	OutcomeLocal     Outcome = "local"
	OutcomeRuntime   Outcome = "runtime"
	OutcomeDelegated Outcome = "delegated"
	OutcomeAncestor  Outcome = "ancestor"
	OutcomeNotFound  Outcome = "not_found"
)

// Metrics records counters about the loading runtime.
type Metrics interface {
	ObserveResolve(domain string, outcome Outcome)
	ObserveTransform(domain, reason string, accepted bool)
	ObserveEdge(accepted bool)
	ObserveRuntimeArtifact(inserted bool)
}
