package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "dev", cfg.LogMode)
	assert.Equal(t, 8, cfg.RadarSize)
	assert.Equal(t, 10, cfg.DefaultTopN)
	assert.Equal(t, "memory", cfg.StoreKind())
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
addr: ":9090"
log_mode: prod
sqlite_path: /tmp/pathway.db
radar_size: 6
framework_scales:
  SFIA 9: 7
  Custom: 4
  DigComp 2.2: 8
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "prod", cfg.LogMode)
	assert.Equal(t, 6, cfg.RadarSize)
	assert.Equal(t, "sqlite", cfg.StoreKind())
	assert.Equal(t, 4, cfg.FrameworkScales["Custom"])
	assert.Equal(t, 8, cfg.FrameworkScales["DigComp 2.2"])
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"addr": ":7070", "default_top_n": 25, "verbose": true}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, 25, cfg.DefaultTopN)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", "addr: \":9090\"\n")
	t.Setenv("PATHWAY_ADDR", ":6060")
	t.Setenv("PATHWAY_DATABASE_URL", "postgres://localhost/pathway")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":6060", cfg.Addr)
	assert.Equal(t, "postgres", cfg.StoreKind())
}

func TestLoadConfig_PathFromEnv(t *testing.T) {
	path := writeConfig(t, "config.yaml", "radar_size: 5\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.RadarSize)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", "addr: [unterminated\n")

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"mutually exclusive stores", func(c *Config) {
			c.DatabaseURL = "postgres://x"
			c.SQLitePath = "x.db"
		}, "mutually exclusive"},
		{"empty addr", func(c *Config) { c.Addr = "" }, "Addr"},
		{"bad log mode", func(c *Config) { c.LogMode = "loud" }, "LogMode"},
		{"radar too small", func(c *Config) { c.RadarSize = 0 }, "RadarSize"},
		{"non-positive scale", func(c *Config) { c.FrameworkScales = map[string]int{"SFIA 9": 0} }, "FrameworkScales"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_RateLimitFromEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("PATHWAY_RATE_LIMIT_ENABLED", "false")
	t.Setenv("PATHWAY_RATE_LIMIT_PER_MINUTE", "42")
	t.Setenv("PATHWAY_RATE_LIMIT_WHITELIST", "10.0.0.1,10.0.0.2")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, 42, cfg.RateLimitPerMinute)
	assert.Equal(t, "10.0.0.1,10.0.0.2", cfg.RateLimitWhitelist)
}
