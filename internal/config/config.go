// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. PATHWAY_ADDR.
const EnvPrefix = "PATHWAY_"

const keyDelim = "/"

// EnvConfigPath names the variable holding the optional config file path.
const EnvConfigPath = "PATHWAY_CONFIG"

// Config represents the process configuration.
// Values are layered: defaults, then the optional YAML (or JSON) file, then PATHWAY_* env vars.
type Config struct {
	Addr        string `koanf:"addr" validate:"required"`                // HTTP listen address
	LogMode     string `koanf:"log_mode" validate:"oneof=dev prod"`      // zap config preset
	DatabaseURL string `koanf:"database_url"`                            // PostgreSQL connection URL
	SQLitePath  string `koanf:"sqlite_path"`                             // SQLite database file
	APIKey      string `koanf:"api_key"`                                 // Gemini API key
	CatalogPath string `koanf:"catalog_path"`                            // YAML framework catalog
	RadarSize   int    `koanf:"radar_size" validate:"gte=1,lte=32"`      // Skills per radar chart
	DefaultTopN int    `koanf:"default_top_n" validate:"gte=1,lte=1000"` // Default ranking length
	Verbose     bool   `koanf:"verbose"`                                 // Print detailed debug information

	RateLimitEnabled   bool   `koanf:"rate_limit_enabled"`
	RateLimitPerMinute int    `koanf:"rate_limit_per_minute" validate:"gte=0"`
	RateLimitWhitelist string `koanf:"rate_limit_whitelist"` // comma-separated IPs
	RateLimitBlacklist string `koanf:"rate_limit_blacklist"`

	// FrameworkScales overrides or extends the built-in framework level scales.
	FrameworkScales map[string]int `koanf:"framework_scales" validate:"dive,keys,required,endkeys,gte=1"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Addr:            ":8080",
		LogMode:         "dev",
		RadarSize:       8,
		DefaultTopN:     10,
		FrameworkScales: map[string]int{},

		RateLimitEnabled:   true,
		RateLimitPerMinute: 600,
	}
}

// LoadConfig builds a Config from defaults, the file at path (falling back to PATHWAY_CONFIG
// when path is empty) and the environment. The result is validated.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	// Framework names such as "DigComp 2.2" contain dots, so keys are split on "/".
	k := koanf.New(keyDelim)

	if path != "" {
		// Resolve path relative to current directory if not absolute
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		// YAML is a superset of JSON, so one parser serves both file formats.
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, keyDelim, func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.DatabaseURL != "" && c.SQLitePath != "" {
		return fmt.Errorf("config error: 'database_url' and 'sqlite_path' are mutually exclusive")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// StoreKind reports which repository implementation the configuration selects.
func (c *Config) StoreKind() string {
	switch {
	case c.DatabaseURL != "":
		return "postgres"
	case c.SQLitePath != "":
		return "sqlite"
	default:
		return "memory"
	}
}
