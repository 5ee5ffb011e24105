// Package config loads took configuration from its sources.
package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/took-sh/took/internal/xdg"
	"github.com/took-sh/took/pkg/config"
)

var (
	// ErrInvalidTOML is returned when the TOML file cannot be parsed.
	ErrInvalidTOML = errors.New("invalid TOML")

	// ErrInsecurePermissions is returned when the config file is
	// writable by group or others.
	ErrInsecurePermissions = errors.New("config file has insecure permissions")
)

// EnvPrefix is the prefix for configuration environment variables.
const EnvPrefix = "TOOK_"

// envKeys maps environment variable suffixes to config paths.
var envKeys = map[string]string{
	"FORMAT":      "format",
	"JSON":        "json",
	"OUTPUT_TO":   "output_to",
	"LOG_ENABLED": "log.enabled",
	"LOG_DEBUG":   "log.debug",
	"LOG_PATH":    "log.path",
}

// Loader loads configuration with the precedence
// defaults → config file → TOOK_* environment variables.
// CLI flags are applied on top by the caller.
type Loader struct {
	k    *koanf.Koanf
	path string
}

// NewLoader creates a Loader reading the default XDG config file.
func NewLoader() *Loader {
	return NewLoaderWithPath(xdg.ConfigFile())
}

// NewLoaderWithPath creates a Loader reading the given config file.
func NewLoaderWithPath(path string) *Loader {
	return &Loader{k: koanf.New("."), path: path}
}

// Load builds the effective configuration. A missing config file is
// not an error; a malformed or insecurely writable one is.
func (l *Loader) Load() (*config.Config, error) {
	l.k = koanf.New(".")

	if err := l.k.Load(confmap.Provider(defaultsToMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	if err := l.loadTOMLFile(l.path); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load config file")
	}

	envOpt := env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envTransform,
	}

	if err := l.k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	var cfg config.Config
	if err := l.k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}

// Path returns the config file path the loader reads.
func (l *Loader) Path() string {
	return l.path
}

func (l *Loader) loadTOMLFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.Mode().Perm()&0o022 != 0 {
		return errors.Wrapf(ErrInsecurePermissions, "%s", path)
	}

	if err := l.k.Load(file.Provider(path), tomlparser.Parser()); err != nil {
		return errors.Wrapf(ErrInvalidTOML, "%s: %v", path, err)
	}

	return nil
}

// envTransform maps TOOK_* variable names to config paths. Variables
// outside the known set are dropped rather than guessed at.
func envTransform(key, value string) (string, any) {
	path, ok := envKeys[strings.TrimPrefix(key, EnvPrefix)]
	if !ok {
		return "", nil
	}

	return path, value
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *config.Config {
	return &config.Config{
		Log: config.LogConfig{Path: xdg.LogFile()},
	}
}

// defaultsToMap flattens the defaults for the koanf confmap provider.
func defaultsToMap() map[string]any {
	return map[string]any{
		"format":      false,
		"json":        false,
		"output_to":   "",
		"log.enabled": false,
		"log.debug":   false,
		"log.path":    xdg.LogFile(),
	}
}
