package settings_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/settings"
	"go.trai.ch/strata/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := settings.Load("")
	require.NoError(t, err)

	assert.Equal(t, ".", s.Manifest)
	assert.Equal(t, domain.DefaultBlobPath(), s.CASDir)
	assert.Equal(t, slog.LevelInfo, s.LogLevel())
	assert.False(t, s.LogJSON())
	assert.True(t, s.Tracing)
	assert.Equal(t, runtime.GOMAXPROCS(0), s.Workers())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"manifest: ./graphs\ncas_dir: /tmp/cas\nparallelism: 3\nlog:\n  level: debug\n  format: json\n",
	), 0o600))

	s, err := settings.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./graphs", s.Manifest)
	assert.Equal(t, "/tmp/cas", s.CASDir)
	assert.Equal(t, 3, s.Workers())
	assert.Equal(t, slog.LevelDebug, s.LogLevel())
	assert.True(t, s.LogJSON())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	t.Setenv("STRATA_LOG_LEVEL", "warn")
	t.Setenv("STRATA_CAS_DIR", "/var/cas")
	t.Setenv("STRATA_PARALLELISM", "7")
	t.Setenv("STRATA_TRACING", "false")

	s, err := settings.Load(path)
	require.NoError(t, err)

	assert.False(t, s.Tracing)

	assert.Equal(t, slog.LevelWarn, s.LogLevel())
	assert.Equal(t, "/var/cas", s.CASDir)
	assert.Equal(t, 7, s.Parallelism)
}

func TestLoad_WorkspaceSettingsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, domain.StrataDirName), domain.DirPerm))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, domain.StrataDirName, "settings.yaml"),
		[]byte("log:\n  format: json\n"),
		domain.FilePerm,
	))
	t.Chdir(dir)

	s, err := settings.Load("")
	require.NoError(t, err)
	assert.True(t, s.LogJSON())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := settings.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, domain.ErrSettingsReadFailed))
}

func TestLogLevel_Fallback(t *testing.T) {
	s := &settings.Settings{Log: settings.LogConf{Level: "loud"}}
	assert.Equal(t, slog.LevelInfo, s.LogLevel())
}
