package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/binder"
	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/adapters/metrics"
	"go.trai.ch/strata/internal/adapters/source"
	"go.trai.ch/strata/internal/adapters/transform"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.trai.ch/strata/internal/engine/locator"
	"go.trai.ch/strata/internal/engine/pool"
	"go.uber.org/mock/gomock"
)

func newApp(loader *mocks.MockConfigLoader, log *mocks.MockLogger, cfg pool.Config) *app.App {
	cfg.Registry = locator.NewRegistry()
	return app.New(loader, pool.NewFactory(cfg), nil, nil, fs.NewHasher(), log, metrics.New(), binder.NewLedger(log))
}

func provide(a *app.App, log *mocks.MockLogger) ComponentProvider {
	return func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: log}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, io.Discard, provide(newApp(loader, log, pool.Config{}), log))
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "strata version")
}

// TestRun_ProviderError verifies that initialization failures are printed without a logger.
func TestRun_ProviderError(t *testing.T) {
	stderr := new(bytes.Buffer)
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("settings unreadable")
	}

	exitCode := run(context.Background(), []string{"version"}, io.Discard, stderr, provider)
	assert.Equal(t, 1, exitCode)
	assert.Equal(t, "Error: settings unreadable\n", stderr.String())
}

// TestRun_CommandError verifies that command errors go through the logger.
func TestRun_CommandError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)

	loader.EXPECT().Load("missing").Return(nil, domain.ErrConfigNotFound)
	log.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.True(t, errors.Is(err, domain.ErrConfigNotFound))
	})

	exitCode := run(context.Background(), []string{"inspect", "-m", "missing"}, io.Discard, io.Discard,
		provide(newApp(loader, log, pool.Config{}), log))
	assert.Equal(t, 1, exitCode)
}

// TestRun_WarmIncomplete verifies that per-artifact warm failures exit 1 without logging the summary error.
func TestRun_WarmIncomplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	sources := mocks.NewMockSourceOpener(ctrl)

	g := domain.NewGraph("shop")
	require.NoError(t, g.AddUnit(&domain.Unit{
		Name:       domain.NewInternedString("app"),
		Namespaces: domain.NewInternedStrings([]string{"app"}),
	}))
	loader.EXPECT().Load(".").Return(&domain.Layout{Graph: g, Path: "strata.yaml"}, nil)
	sources.EXPECT().Open(gomock.Any(), gomock.Any()).Return(source.NewMemorySource(map[string][]byte{
		"app/Main.art":   []byte("main"),
		"app/Secret.art": []byte("secret"),
	}), nil)

	deny, err := transform.NewDeny("app.Secret")
	require.NoError(t, err)

	log.EXPECT().Warn("artifact did not resolve", gomock.Any()).Times(1)
	log.EXPECT().Info("warmed pool", gomock.Any()).Times(1)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"warm"}, stdout, io.Discard,
		provide(newApp(loader, log, pool.Config{Sources: sources, Transformer: deny}), log))
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stdout.String(), "1 resolved, 1 failed")
}
