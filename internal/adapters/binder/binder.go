// Package binder provides the privileged binding collaborators of a pool:
// ancestor binding and the authoritative record of visibility edges.
package binder

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/strata/internal/core/ports"
)

var (
	_ ports.Binder        = (*Logging)(nil)
	_ ports.EdgeCommitter = (*Ledger)(nil)
)

// Logging grants every binding and records it at debug level.
type Logging struct {
	logger ports.Logger
}

// NewLogging creates a Logging binder.
func NewLogging(logger ports.Logger) *Logging {
	return &Logging{logger: logger}
}

// Bind implements ports.Binder.
func (b *Logging) Bind(_ context.Context, ancestor ports.Ancestor, domainName string) error {
	b.logger.Debug("bound ancestor", "domain", domainName, "ancestor", ancestor.Graph().Name())
	return nil
}

// Edge is a committed visibility edge.
type Edge struct {
	Source string
	Target string
}

// Ledger keeps committed visibility edges in commit order.
type Ledger struct {
	logger ports.Logger

	mu    sync.RWMutex
	edges []Edge
}

// NewLedger creates an empty Ledger.
func NewLedger(logger ports.Logger) *Ledger {
	return &Ledger{logger: logger}
}

// CommitEdge implements ports.EdgeCommitter. Committing an edge twice keeps one record.
func (l *Ledger) CommitEdge(_ context.Context, source, target string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Edge{Source: source, Target: target}
	if slices.Contains(l.edges, e) {
		return nil
	}
	l.edges = append(l.edges, e)
	l.logger.Debug("committed visibility edge", "source", source, "target", target)
	return nil
}

// Edges returns the committed edges.
func (l *Ledger) Edges() []Edge {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.edges)
}
