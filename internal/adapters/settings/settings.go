// Package settings loads runtime settings from defaults, an optional settings
// file and STRATA_* environment variables.
package settings

import (
	"errors"
	"log/slog"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "STRATA"

// EnvFile names the environment variable holding the settings file path.
const EnvFile = EnvPrefix + "_SETTINGS"

// Settings holds the runtime settings of the CLI.
type Settings struct {
	// Manifest is the path of strata.yaml, or a directory searched upwards for it.
	Manifest string `mapstructure:"manifest"`
	// CASDir is the directory of the blob store for runtime artifacts.
	CASDir string `mapstructure:"cas_dir"`
	// Parallelism bounds concurrent resolutions during warm-up. Zero means GOMAXPROCS.
	Parallelism int `mapstructure:"parallelism"`
	// Tracing turns span recording on. Finished spans are logged at debug level.
	Tracing bool    `mapstructure:"tracing"`
	Log     LogConf `mapstructure:"log"`
}

// LogConf holds logging settings.
type LogConf struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads settings. A non-empty file must exist and parse. An empty file
// falls back to .strata/settings.* in the working directory, if present.
func Load(file string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("manifest", ".")
	v.SetDefault("cas_dir", domain.DefaultBlobPath())
	v.SetDefault("parallelism", 0)
	v.SetDefault("tracing", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "pretty")

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, zerr.With(domain.Classify(domain.ErrSettingsReadFailed, err), "file", file)
		}
	} else {
		v.AddConfigPath(domain.StrataDirName)
		v.SetConfigName(domain.SettingsFileName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, domain.Classify(domain.ErrSettingsReadFailed, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, zerr.Wrap(domain.Classify(domain.ErrSettingsReadFailed, err), "failed to decode settings")
	}
	return &s, nil
}

// LogLevel returns the configured level, or info when it does not parse.
func (s *Settings) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// LogJSON reports whether logs are written as JSON.
func (s *Settings) LogJSON() bool {
	return strings.EqualFold(s.Log.Format, "json")
}

// Workers returns the effective warm-up parallelism.
func (s *Settings) Workers() int {
	if s.Parallelism > 0 {
		return s.Parallelism
	}
	return runtime.GOMAXPROCS(0)
}
