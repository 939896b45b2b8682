// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/strata/internal/adapters/binder"
	_ "go.trai.ch/strata/internal/adapters/cas"
	_ "go.trai.ch/strata/internal/adapters/config"
	_ "go.trai.ch/strata/internal/adapters/fs"
	_ "go.trai.ch/strata/internal/adapters/logger"
	_ "go.trai.ch/strata/internal/adapters/metrics"
	_ "go.trai.ch/strata/internal/adapters/settings"
	_ "go.trai.ch/strata/internal/adapters/source"
	_ "go.trai.ch/strata/internal/adapters/telemetry"
	_ "go.trai.ch/strata/internal/adapters/transform"
	// Register app and engine nodes.
	_ "go.trai.ch/strata/internal/app"
	_ "go.trai.ch/strata/internal/engine/locator"
	_ "go.trai.ch/strata/internal/engine/pool"
)
