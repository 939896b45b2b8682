package ports

import "go.trai.ch/strata/internal/core/domain"

// ConfigLoader defines the interface for loading graph manifests.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest at path, together with its parents, and returns the layout.
	// A directory path is searched upwards for strata.yaml.
	Load(path string) (*domain.Layout, error)
}
