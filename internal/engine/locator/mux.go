package locator

import (
	"context"
	"net/url"
	"sync"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LocatorOpener = (*Mux)(nil)

// Mux dispatches locators to openers by scheme.
type Mux struct {
	mu      sync.RWMutex
	openers map[string]ports.LocatorOpener
}

// NewMux creates a Mux that serves strata locators from registry.
func NewMux(registry *Registry) *Mux {
	m := &Mux{openers: make(map[string]ports.LocatorOpener)}
	m.Handle(Scheme, registry)
	return m
}

// Handle routes locators of scheme to opener, replacing any previous opener.
func (m *Mux) Handle(scheme string, opener ports.LocatorOpener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openers[scheme] = opener
}

// Open implements ports.LocatorOpener.
func (m *Mux) Open(ctx context.Context, loc string) ([]byte, error) {
	u, err := url.Parse(loc)
	if err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrNotFound, domain.ErrInvalidLocator, err), "locator", loc)
	}

	m.mu.RLock()
	opener, ok := m.openers[u.Scheme]
	m.mu.RUnlock()
	if !ok {
		return nil, zerr.With(zerr.With(domain.Classify(domain.ErrNotFound, domain.ErrUnknownScheme), "locator", loc), "scheme", u.Scheme)
	}
	return opener.Open(ctx, loc)
}
