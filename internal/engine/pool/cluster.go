package pool

import (
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultDomainKey is the key SingleDomain assigns to every unit.
const DefaultDomainKey = "default"

// ClusterFunc returns the key of the domain a unit is placed in.
// Units with equal keys share a domain.
type ClusterFunc func(u *domain.Unit) string

// SingleDomain places every unit in one domain.
func SingleDomain(*domain.Unit) string {
	return DefaultDomainKey
}

// DomainPerUnit gives every unit its own domain.
func DomainPerUnit(u *domain.Unit) string {
	return u.Name.String()
}

// ByAttribute groups units by the value of a descriptor attribute.
// Units without the attribute share the default domain.
func ByAttribute(key string) ClusterFunc {
	return func(u *domain.Unit) string {
		if v := u.Attributes[key]; v != "" {
			return v
		}
		return DefaultDomainKey
	}
}

// Strategy returns the ClusterFunc for a manifest cluster strategy.
// An empty strategy selects SingleDomain.
func Strategy(s domain.ClusterStrategy) (ClusterFunc, error) {
	switch s {
	case "", domain.ClusterSingle:
		return SingleDomain, nil
	case domain.ClusterPerUnit:
		return DomainPerUnit, nil
	}
	if key, ok := s.AttributeKey(); ok {
		return ByAttribute(key), nil
	}
	return nil, zerr.With(domain.Classify(domain.ErrConstruction, domain.ErrInvalidClusterStrategy), "strategy", string(s))
}
