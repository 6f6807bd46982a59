// Package config loads the DataInspect application configuration:
// built-in defaults, an optional YAML file in the app directory, and
// DATAINSPECT_* environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// AppDirName is the per-user application directory under $HOME.
const AppDirName = ".datainspect"

// ConfigFileName is the optional config file inside the app directory.
const ConfigFileName = "config.yaml"

// ImportConfig holds the CSV import defaults.
type ImportConfig struct {
	// Delimiter is the column delimiter; empty means detect per file.
	Delimiter   string `koanf:"delimiter"`
	Encoding    string `koanf:"encoding"`
	Header      bool   `koanf:"header"`
	Decimal     string `koanf:"decimal"`
	Thousands   string `koanf:"thousands"`
	PreviewRows int    `koanf:"preview_rows"`
}

// Config is the application configuration.
type Config struct {
	// AppDir is where workspace state and logs live.
	AppDir string `koanf:"app_dir"`
	// WorkspaceDB is the path of the workspace state database.
	WorkspaceDB string `koanf:"workspace_db"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	Import ImportConfig `koanf:"import"`
}

func defaults(appDir string) map[string]any {
	return map[string]any{
		"app_dir":             appDir,
		"workspace_db":        filepath.Join(appDir, "workspace.db"),
		"log_level":           "info",
		"import.delimiter":    "",
		"import.encoding":     "utf-8",
		"import.header":       true,
		"import.decimal":      ".",
		"import.thousands":    ",",
		"import.preview_rows": 5,
	}
}

// Load builds the configuration. An explicit path wins over the default
// config file location; a missing default file is not an error.
// Command-line flags, when given, are the highest-priority layer:
// kebab-case flag names map onto snake_case config keys, and only flags
// the user actually set override the lower layers.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	appDir := filepath.Join(home, AppDirName)

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(appDir), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		candidate := filepath.Join(appDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("DATAINSPECT_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "DATAINSPECT_")), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			switch f.Name {
			case "config", "verbose":
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
