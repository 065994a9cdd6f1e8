package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/powerlora/internal/catalog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name; it is also the config file base name.
	AppName = "powerlora"
	// EnvPrefix prefixes every environment override, e.g. POWERLORA_LOG_LEVEL.
	EnvPrefix = "POWERLORA"
)

// Settings holds the process-wide configuration.
type Settings struct {
	Log     LogSettings     `mapstructure:"log"`
	Catalog CatalogSettings `mapstructure:"catalog"`
}

// LogSettings configures the logger.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CatalogSettings configures the file catalog.
type CatalogSettings struct {
	// Roots lists directories per category, searched in order.
	Roots map[string][]string `mapstructure:"roots"`
	// Extensions limits enumeration to these file extensions.
	Extensions []string `mapstructure:"extensions"`
	// Exclude holds globs of relative paths to leave out.
	Exclude []string `mapstructure:"exclude"`
	// Manifest is an optional YAML file of name/path entries.
	Manifest string `mapstructure:"manifest"`
}

// LoadOptions controls where LoadSettings looks.
type LoadOptions struct {
	// ConfigFile, when set, is read exclusively and must exist.
	ConfigFile string
	// SearchDirs are searched for "powerlora.{yaml,toml,json}" otherwise.
	SearchDirs []string
	// Flags, when set, override file and environment values for the flags
	// named in FlagKeys that the user changed.
	Flags *pflag.FlagSet
}

// FlagKeys maps command-line flag names to settings keys.
var FlagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"lora-dir":   "catalog.roots.loras",
	"manifest":   "catalog.manifest",
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Log: LogSettings{Level: "info", Format: "text"},
		Catalog: CatalogSettings{
			Roots:      map[string][]string{"loras": {}},
			Extensions: slices.Clone(catalog.DefaultExtensions),
		},
	}
}

// LoadSettings merges defaults, an optional config file, POWERLORA_*
// environment variables and changed flags, in increasing precedence.
func LoadSettings(opts LoadOptions) (*Settings, error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("catalog.roots.loras", defaults.Catalog.Roots["loras"])
	v.SetDefault("catalog.extensions", defaults.Catalog.Extensions)
	v.SetDefault("catalog.exclude", []string{})
	v.SetDefault("catalog.manifest", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for flag, key := range FlagKeys {
			if f := opts.Flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", flag, err)
				}
			}
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	} else if len(opts.SearchDirs) > 0 {
		v.SetConfigName(AppName)
		for _, dir := range opts.SearchDirs {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks values and normalizes extensions to a leading dot.
func (s *Settings) Validate() error {
	s.Log.Level = strings.ToLower(s.Log.Level)
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", s.Log.Level)
	}

	s.Log.Format = strings.ToLower(s.Log.Format)
	if s.Log.Format != "text" && s.Log.Format != "json" {
		return fmt.Errorf("invalid log format %q: must be 'text' or 'json'", s.Log.Format)
	}

	if len(s.Catalog.Extensions) == 0 {
		return errors.New("catalog.extensions must not be empty")
	}
	for i, ext := range s.Catalog.Extensions {
		if ext == "" || ext == "." {
			return fmt.Errorf("catalog.extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			s.Catalog.Extensions[i] = "." + ext
		}
	}
	return nil
}
