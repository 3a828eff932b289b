package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/defreg/internal/tracing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Len(t, cfg.Sources, 1)
	require.Equal(t, KindDir, cfg.Sources[0].Kind)
	require.Equal(t, "custom", cfg.Sources[0].Access)
	require.True(t, cfg.Sources[0].Watch)
	require.Equal(t, []string{"apex"}, cfg.Namespaces.CacheExceptions)
	require.Equal(t, []string{"aura"}, cfg.Namespaces.UnsecuredPrefixes)
	require.Zero(t, cfg.Cache.DefaultExpiration)
	require.Equal(t, 30*time.Minute, cfg.Cache.CleanupInterval)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.Equal(t, ":9090", cfg.Metrics.Addr)
	require.NoError(t, cfg.Validate())
}

func TestValidateSources(t *testing.T) {
	tests := []struct {
		name    string
		sources []SourceConfig
		wantErr string
	}{
		{name: "empty", sources: nil},
		{
			name:    "valid mix",
			sources: []SourceConfig{{Kind: KindDir, Path: "a", Watch: true}, {Kind: KindSQLite, Path: "b.db", Access: "custom"}},
		},
		{name: "missing kind", sources: []SourceConfig{{Path: "a"}}, wantErr: "source 0: kind is required"},
		{name: "bad kind", sources: []SourceConfig{{Kind: "s3", Path: "a"}}, wantErr: `invalid kind "s3"`},
		{name: "missing path", sources: []SourceConfig{{Kind: KindDir}}, wantErr: "path is required"},
		{name: "bad access", sources: []SourceConfig{{Kind: KindDir, Path: "a", Access: "secret"}}, wantErr: `unknown namespace access "secret"`},
		{name: "watch sqlite", sources: []SourceConfig{{Kind: KindSQLite, Path: "a.db", Watch: true}}, wantErr: "watch is only supported for dir sources"},
		{
			name:    "duplicate name",
			sources: []SourceConfig{{Name: "x", Kind: KindDir, Path: "a"}, {Name: "x", Kind: KindDir, Path: "b"}},
			wantErr: `source 1: duplicate name "x"`,
		},
		{
			name:    "derived names collide",
			sources: []SourceConfig{{Kind: KindDir, Path: "one/cmp"}, {Kind: KindDir, Path: "two/cmp"}},
			wantErr: `duplicate name "dir:cmp"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSources(tt.sources)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateNamespaces(t *testing.T) {
	require.NoError(t, ValidateNamespaces(NamespacesConfig{Internal: []string{"aura", "ui"}}))
	err := ValidateNamespaces(NamespacesConfig{CacheExceptions: []string{"apex", " "}})
	require.ErrorContains(t, err, "namespaces.cache_exceptions[1] must not be empty")
}

func TestValidateCache(t *testing.T) {
	require.NoError(t, ValidateCache(CacheConfig{DefaultExpiration: time.Minute}))
	require.ErrorContains(t, ValidateCache(CacheConfig{DefaultExpiration: -time.Second}), "cache.default_expiration")
	require.ErrorContains(t, ValidateCache(CacheConfig{CleanupInterval: -time.Second}), "cache.cleanup_interval")
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     tracing.Config
		wantErr string
	}{
		{name: "defaults", cfg: tracing.DefaultConfig()},
		{name: "sample rate too high", cfg: tracing.Config{SampleRate: 1.5}, wantErr: "tracing.sample_rate must be between 0.0 and 1.0"},
		{name: "negative sample rate", cfg: tracing.Config{SampleRate: -0.1}, wantErr: "tracing.sample_rate"},
		{name: "unknown exporter", cfg: tracing.Config{Exporter: "zipkin"}, wantErr: `got "zipkin"`},
		{name: "file without path", cfg: tracing.Config{Enabled: true, Exporter: "file"}, wantErr: "tracing.file_path is required"},
		{name: "otlp without endpoint", cfg: tracing.Config{Enabled: true, Exporter: "otlp"}, wantErr: "tracing.otlp_endpoint is required"},
		{name: "disabled file without path", cfg: tracing.Config{Exporter: "file"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".defreg.yaml")
	content := `sources:
  - name: db
    kind: sqlite
    path: sources.db
    access: internal
cache:
  default_expiration: 5m
metrics:
  addr: ":9191"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, []SourceConfig{{Name: "db", Kind: KindSQLite, Path: "sources.db", Access: "internal"}}, cfg.Sources)
	require.Equal(t, 5*time.Minute, cfg.Cache.DefaultExpiration)
	require.Equal(t, 30*time.Minute, cfg.Cache.CleanupInterval)
	require.Equal(t, ":9191", cfg.Metrics.Addr)
	require.Equal(t, []string{"apex"}, cfg.Namespaces.CacheExceptions)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DEFREG_METRICS_ADDR", "127.0.0.1:9999")
	t.Setenv("DEFREG_LOG_DEBUG", "true")

	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9999", cfg.Metrics.Addr)
	require.True(t, cfg.Log.Debug)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".defreg.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("sources:\n  - kind: ftp\n    path: x\n"), 0o600))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	_, err := Load(v)
	require.ErrorContains(t, err, `invalid kind "ftp"`)
}

func TestWriteDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())
	cfg, err := Load(v)
	require.NoError(t, err)

	defaults := Defaults()
	require.Equal(t, defaults.Sources, cfg.Sources)
	require.Equal(t, defaults.Namespaces, cfg.Namespaces)
	require.Equal(t, defaults.Cache, cfg.Cache)
	require.Equal(t, defaults.Metrics, cfg.Metrics)
}

func TestDefaultConfigTemplate_MentionsEverySection(t *testing.T) {
	tmpl := DefaultConfigTemplate()
	for _, section := range []string{"sources:", "namespaces:", "cache:", "log:", "metrics:", "tracing:"} {
		require.True(t, strings.Contains(tmpl, section), "template lacks %s", section)
	}
}

func TestSourceConfig_LoaderName(t *testing.T) {
	require.Equal(t, "mine", SourceConfig{Name: "mine", Kind: KindDir, Path: "x"}.LoaderName())
	require.Equal(t, "sqlite:sources.db", SourceConfig{Kind: KindSQLite, Path: "/var/lib/sources.db"}.LoaderName())
}
