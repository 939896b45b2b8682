// Package domain contains the core domain models of the artifact loading runtime.
package domain

import (
	"iter"
	"sync/atomic"

	"go.trai.ch/zerr"
)

var graphIDs atomic.Uint64

// Graph is a resolved dependency graph of units plus the ordered list of
// ancestor graphs it was resolved against.
type Graph struct {
	id      uint64
	name    string
	units   map[InternedString]*Unit
	order   []InternedString
	parents []*Graph
}

// NewGraph creates an empty Graph resolved against the given parents, in order.
func NewGraph(name string, parents ...*Graph) *Graph {
	return &Graph{
		id:      graphIDs.Add(1),
		name:    name,
		units:   make(map[InternedString]*Unit),
		parents: parents,
	}
}

// ID returns the process-unique identifier of the graph.
func (g *Graph) ID() uint64 {
	return g.id
}

// Name returns the graph name.
func (g *Graph) Name() string {
	return g.name
}

// Parents returns the ancestor graphs in declared order.
func (g *Graph) Parents() []*Graph {
	return g.parents
}

// AddUnit adds a unit to the graph.
// It returns an error if a unit with the same name already exists or a name is malformed.
func (g *Graph) AddUnit(u *Unit) error {
	if !ValidQualifiedName(u.Name.String()) {
		return zerr.With(zerr.Wrap(ErrInvalidName, "unit name"), "unit", u.Name.String())
	}
	for _, ns := range u.Namespaces {
		if !ValidQualifiedName(ns.String()) {
			return zerr.With(zerr.With(zerr.Wrap(ErrInvalidName, "namespace"), "unit", u.Name.String()), "namespace", ns.String())
		}
	}
	if _, exists := g.units[u.Name]; exists {
		return zerr.With(zerr.Wrap(ErrUnitAlreadyExists, "add unit"), "unit", u.Name.String())
	}
	g.units[u.Name] = u
	g.order = append(g.order, u.Name)
	return nil
}

// Unit returns the unit with the given name if it belongs to this graph.
func (g *Graph) Unit(name string) (*Unit, bool) {
	u, ok := g.units[NewInternedString(name)]
	return u, ok
}

// FindUnit looks the unit up in this graph, then in the ancestors in declared order.
// It returns the graph that holds the unit.
func (g *Graph) FindUnit(name string) (*Unit, *Graph, bool) {
	if u, ok := g.Unit(name); ok {
		return u, g, true
	}
	for _, p := range g.parents {
		if u, owner, ok := p.FindUnit(name); ok {
			return u, owner, true
		}
	}
	return nil, nil, false
}

// Units yields the units in insertion order.
func (g *Graph) Units() iter.Seq[*Unit] {
	return func(yield func(*Unit) bool) {
		for _, name := range g.order {
			if !yield(g.units[name]) {
				return
			}
		}
	}
}

// Len returns the number of units in the graph.
func (g *Graph) Len() int {
	return len(g.units)
}

// Validate checks that every read resolves and that reads inside this graph are acyclic.
func (g *Graph) Validate() error {
	state := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(name InternedString) error
	visit = func(name InternedString) error {
		state[name] = 1
		path = append(path, name)

		u := g.units[name]
		for _, r := range u.Reads {
			if _, local := g.units[r]; !local {
				if _, _, found := g.FindUnit(r.String()); !found {
					return zerr.With(zerr.With(zerr.Wrap(ErrMissingUnit, "validate graph"), "unit", name.String()), "reads", r.String())
				}
				continue
			}
			switch state[r] {
			case 1:
				return g.cycleError(path, r)
			case 0:
				if err := visit(r); err != nil {
					return err
				}
			}
		}

		state[name] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, name := range g.order {
		if state[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Graph) cycleError(path []InternedString, back InternedString) error {
	cycle := ""
	start := 0
	for i, n := range path {
		if n == back {
			start = i
			break
		}
	}
	for _, n := range path[start:] {
		cycle += n.String() + " -> "
	}
	cycle += back.String()
	return zerr.With(zerr.Wrap(ErrCycleDetected, "validate graph"), "cycle", cycle)
}
