// Package config provides configuration types and defaults for defreg.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/zjrosen/defreg/internal/log"
	"github.com/zjrosen/defreg/internal/source"
	"github.com/zjrosen/defreg/internal/tracing"
)

// Source kinds.
const (
	KindDir    = "dir"
	KindSQLite = "sqlite"
)

// DefaultConfigPath is where init writes and the loader looks first.
const DefaultConfigPath = ".defreg.yaml"

// EnvPrefix prefixes environment overrides, e.g. DEFREG_METRICS_ADDR.
const EnvPrefix = "DEFREG"

// SourceConfig defines one source loader.
type SourceConfig struct {
	Name   string `mapstructure:"name"`
	Kind   string `mapstructure:"kind"`   // "dir" or "sqlite"
	Path   string `mapstructure:"path"`   // directory root or database file
	Access string `mapstructure:"access"` // "internal" (default) or "custom"
	Watch  bool   `mapstructure:"watch"`  // dir sources only
}

// LoaderName is the configured name, or one derived from kind and path.
func (s SourceConfig) LoaderName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Kind + ":" + filepath.Base(s.Path)
}

// NamespacesConfig tunes access checks and cache sharing.
type NamespacesConfig struct {
	// Internal namespaces may reference INTERNAL definitions of any namespace.
	Internal []string `mapstructure:"internal"`
	// UnsecuredPrefixes skip access checks when they reference anything.
	UnsecuredPrefixes []string `mapstructure:"unsecured_prefixes"`
	// CacheExceptions are prefixes never written to the shared caches.
	CacheExceptions []string `mapstructure:"cache_exceptions"`
}

// CacheConfig sizes the shared cache tier. A zero DefaultExpiration keeps
// entries until a source change evicts them.
type CacheConfig struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Debug bool   `mapstructure:"debug"`
	Level string `mapstructure:"level"`
}

// MetricsConfig controls the Prometheus endpoint of the watch command.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config holds all configuration options for defreg.
type Config struct {
	Sources    []SourceConfig   `mapstructure:"sources"`
	Namespaces NamespacesConfig `mapstructure:"namespaces"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Tracing    tracing.Config   `mapstructure:"tracing"`
	Log        LogConfig        `mapstructure:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// DefaultTracesFilePath returns ~/.config/defreg/traces/traces.jsonl, or ""
// when the home directory is unknown.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "defreg", "traces", "traces.jsonl")
}

// UserConfigDir returns ~/.config/defreg, or "" when the home directory is unknown.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "defreg")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tr := tracing.DefaultConfig()
	tr.FilePath = DefaultTracesFilePath()
	return Config{
		Sources: []SourceConfig{
			{Name: "components", Kind: KindDir, Path: "components", Access: string(source.Custom), Watch: true},
		},
		Namespaces: NamespacesConfig{
			Internal:          []string{"aura"},
			UnsecuredPrefixes: []string{"aura"},
			CacheExceptions:   []string{"apex"},
		},
		Cache: CacheConfig{
			DefaultExpiration: 0,
			CleanupInterval:   30 * time.Minute,
		},
		Tracing: tr,
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
		},
	}
}

// SetDefaults registers every default on v so partial files and
// environment overrides merge over them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("sources", []map[string]any{{
		"name": d.Sources[0].Name, "kind": d.Sources[0].Kind, "path": d.Sources[0].Path,
		"access": d.Sources[0].Access, "watch": d.Sources[0].Watch,
	}})
	v.SetDefault("namespaces.internal", d.Namespaces.Internal)
	v.SetDefault("namespaces.unsecured_prefixes", d.Namespaces.UnsecuredPrefixes)
	v.SetDefault("namespaces.cache_exceptions", d.Namespaces.CacheExceptions)
	v.SetDefault("cache.default_expiration", d.Cache.DefaultExpiration)
	v.SetDefault("cache.cleanup_interval", d.Cache.CleanupInterval)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	v.SetDefault("tracing.always_sample_compiles", d.Tracing.AlwaysSampleCompiles)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("metrics.addr", d.Metrics.Addr)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateSources(c.Sources); err != nil {
		return err
	}
	if err := ValidateNamespaces(c.Namespaces); err != nil {
		return err
	}
	if err := ValidateCache(c.Cache); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateSources checks source definitions. Names must be unique.
func ValidateSources(sources []SourceConfig) error {
	seen := make(map[string]bool, len(sources))
	for i, s := range sources {
		switch s.Kind {
		case KindDir, KindSQLite:
		case "":
			return fmt.Errorf("source %d: kind is required", i)
		default:
			return fmt.Errorf("source %d: invalid kind %q (must be \"dir\" or \"sqlite\")", i, s.Kind)
		}
		if s.Path == "" {
			return fmt.Errorf("source %d (%s): path is required", i, s.LoaderName())
		}
		if _, err := source.ParseNamespaceAccess(s.Access); err != nil {
			return fmt.Errorf("source %d (%s): %w", i, s.LoaderName(), err)
		}
		if s.Watch && s.Kind != KindDir {
			return fmt.Errorf("source %d (%s): watch is only supported for dir sources", i, s.LoaderName())
		}
		name := s.LoaderName()
		if seen[name] {
			return fmt.Errorf("source %d: duplicate name %q", i, name)
		}
		seen[name] = true
	}
	return nil
}

// ValidateNamespaces rejects empty entries.
func ValidateNamespaces(ns NamespacesConfig) error {
	lists := []struct {
		key    string
		values []string
	}{
		{"namespaces.internal", ns.Internal},
		{"namespaces.unsecured_prefixes", ns.UnsecuredPrefixes},
		{"namespaces.cache_exceptions", ns.CacheExceptions},
	}
	for _, l := range lists {
		for i, v := range l.values {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("%s[%d] must not be empty", l.key, i)
			}
		}
	}
	return nil
}

// ValidateCache rejects negative durations.
func ValidateCache(c CacheConfig) error {
	if c.DefaultExpiration < 0 {
		return fmt.Errorf("cache.default_expiration must not be negative, got %s", c.DefaultExpiration)
	}
	if c.CleanupInterval < 0 {
		return fmt.Errorf("cache.cleanup_interval must not be negative, got %s", c.CleanupInterval)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	if tc.Exporter != "" {
		switch tc.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
		}
	}

	// Path requirements only matter once tracing is on.
	if tc.Enabled {
		if tc.Exporter == "file" && tc.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tc.Exporter == "otlp" && tc.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# defreg configuration

# Source loaders, consulted in order. The built-in aura namespace and the
# java:// attribute types are always available after these.
sources:
  - name: components
    kind: dir            # dir or sqlite
    path: components     # <root>/<namespace>/<name>/<name>.cmp
    access: custom       # internal (cacheable, linted) or custom
    watch: true          # reload on file changes (dir only)

  # Example: a sqlite store filled with 'defreg import'
  # - name: db
  #   kind: sqlite
  #   path: .defreg/sources.db
  #   access: internal

namespaces:
  # Namespaces allowed to use INTERNAL definitions anywhere
  internal:
    - aura
  # Prefixes whose definitions skip access checks
  unsecured_prefixes:
    - aura
  # Prefixes never written to the shared caches
  cache_exceptions:
    - apex

cache:
  default_expiration: 0   # 0 keeps entries until a source changes
  cleanup_interval: 30m

log:
  # path: defreg.log
  debug: false
  level: info             # debug, info, warn, error

metrics:
  addr: ":9090"           # served by 'defreg watch'

# Distributed tracing around compile, find and exists
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/defreg/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
