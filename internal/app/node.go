package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/binder"   //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/cas"      //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/metrics"  //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/settings" //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/locator"
	"go.trai.ch/strata/internal/engine/pool"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	Settings *settings.Settings
	Store    *cas.Store
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			pool.NodeID,
			cas.NodeID,
			locator.NodeID,
			fs.HasherNodeID,
			logger.NodeID,
			metrics.NodeID,
			binder.LedgerNodeID,
			settings.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			settings.NodeID,
			cas.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	factory, err := graft.Dep[*pool.Factory](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[*cas.Store](ctx)
	if err != nil {
		return nil, err
	}

	mux, err := graft.Dep[*locator.Mux](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	prom, err := graft.Dep[*metrics.Prometheus](ctx)
	if err != nil {
		return nil, err
	}

	ledger, err := graft.Dep[*binder.Ledger](ctx)
	if err != nil {
		return nil, err
	}

	s, err := graft.Dep[*settings.Settings](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, factory, store, mux, hasher, log, prom, ledger).
		WithManifest(s.Manifest).
		WithWorkers(s.Workers()), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	s, err := graft.Dep[*settings.Settings](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[*cas.Store](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:      app,
		Logger:   log,
		Settings: s,
		Store:    store,
	}, nil
}

// Close releases the pools and the blob store.
func (c *Components) Close() error {
	err := c.App.Close()
	if c.Store != nil {
		if serr := c.Store.Close(); err == nil {
			err = serr
		}
	}
	return err
}
