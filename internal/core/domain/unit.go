package domain

import "slices"

// Unit is a named component of a dependency graph.
// It declares the namespaces it owns and the units it statically reads.
// Units are immutable once added to a graph.
type Unit struct {
	Name InternedString
	// Namespaces lists the namespaces holding the unit's artifacts.
	Namespaces []InternedString
	// Opens lists namespaces whose resources are readable from outside the unit.
	Opens []InternedString
	// Open makes every namespace of the unit readable from outside.
	Open bool
	// Reads lists the units this unit statically sees.
	Reads []InternedString
	// Location tells the source opener where the unit's bytes live.
	Location string
	// Attributes holds descriptor attributes that are not tied to a namespace.
	Attributes map[string]string
	// NamespaceAttributes holds per-namespace descriptor sections.
	NamespaceAttributes map[string]map[string]string
}

// Declares reports whether the unit declares namespace ns.
func (u *Unit) Declares(ns string) bool {
	return slices.ContainsFunc(u.Namespaces, func(n InternedString) bool {
		return n.String() == ns
	})
}

// IsOpen reports whether resources in namespace ns are readable from outside the unit.
func (u *Unit) IsOpen(ns string) bool {
	if u.Open {
		return true
	}
	return slices.ContainsFunc(u.Opens, func(n InternedString) bool {
		return n.String() == ns
	})
}

// Descriptor returns the unit's descriptor assembled from its attributes.
func (u *Unit) Descriptor() *Descriptor {
	d := NewDescriptor()
	for k, v := range u.Attributes {
		d.Main[k] = v
	}
	for ns, attrs := range u.NamespaceAttributes {
		section := make(map[string]string, len(attrs))
		for k, v := range attrs {
			section[k] = v
		}
		d.Sections[ns] = section
	}
	return d
}

// NamespaceInfo describes a namespace materialized by a domain after its first resolution.
type NamespaceInfo struct {
	Name       string
	Unit       string
	Attributes map[string]string
}
