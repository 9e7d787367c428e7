package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// configFile is the name of the user configuration file within the home directory.
	configFile = "config.yaml"
	// envPrefix prefixes environment overrides, e.g. MEALMIX_REMIX_MODEL.
	envPrefix = "MEALMIX_"

	// Default configuration values
	DefaultMealDBURL    = "https://www.themealdb.com/api/json/v1/1"
	DefaultBackend      = BackendFile
	DefaultRedisURL     = "redis://localhost:6379/0"
	DefaultRemixModel   = "gpt-4o"
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "console"
	DefaultServeAddr    = ":8787"
	DefaultHTTPTimeout  = time.Duration(0)
	defaultStoreDirName = "store"
	defaultSQLiteName   = "mealmix.db"
)

// DefaultThemes are the remix themes offered when none are configured.
var DefaultThemes = []string{
	"Make it vegan",
	"Give it a spicy twist",
	"Turn it into comfort food",
	"Make it kid-friendly",
	"Give it a fancy restaurant makeover",
}

// Backend names accepted by store.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config represents user configuration from config.yaml, with
// MEALMIX_* environment overrides applied on top.
type Config struct {
	MealDBURL   string        `yaml:"mealdb_url" koanf:"mealdb_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout" koanf:"http_timeout"`
	Store       StoreConfig   `yaml:"store" koanf:"store"`
	Remix       RemixConfig   `yaml:"remix" koanf:"remix"`
	Log         LogConfig     `yaml:"log" koanf:"log"`
	Serve       ServeConfig   `yaml:"serve" koanf:"serve"`
}

// StoreConfig selects where saved recipes are persisted.
type StoreConfig struct {
	// Backend is one of file, sqlite, redis, memory.
	Backend string `yaml:"backend" koanf:"backend"`
	// Path is the file store directory or sqlite file. Relative paths are
	// resolved against the home directory.
	Path     string `yaml:"path,omitempty" koanf:"path"`
	RedisURL string `yaml:"redis_url,omitempty" koanf:"redis_url"`
}

// RemixConfig controls how remixes are requested.
type RemixConfig struct {
	Model string `yaml:"model" koanf:"model"`
	// APIKey is used for direct requests. Falls back to OPENAI_API_KEY.
	APIKey string `yaml:"api_key,omitempty" koanf:"api_key"`
	// BaseURL overrides the OpenAI-compatible endpoint.
	BaseURL string `yaml:"base_url,omitempty" koanf:"base_url"`
	// ProxyURL, when set, sends remixes through a mealmix serve proxy
	// instead of calling the model directly.
	ProxyURL string   `yaml:"proxy_url,omitempty" koanf:"proxy_url"`
	Themes   []string `yaml:"themes" koanf:"themes"`
}

// LogConfig controls diagnostic logging to stderr.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// ServeConfig controls the remix proxy.
type ServeConfig struct {
	Addr           string   `yaml:"addr" koanf:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		MealDBURL:   DefaultMealDBURL,
		HTTPTimeout: DefaultHTTPTimeout,
		Store: StoreConfig{
			Backend:  DefaultBackend,
			RedisURL: DefaultRedisURL,
		},
		Remix: RemixConfig{
			Model:  DefaultRemixModel,
			Themes: append([]string(nil), DefaultThemes...),
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Serve: ServeConfig{
			Addr:           DefaultServeAddr,
			AllowedOrigins: []string{"*"},
		},
	}
}

// LoadConfig loads config.yaml if it exists, otherwise starts from defaults.
// Partial config files are merged with defaults, then MEALMIX_* environment
// variables are applied (MEALMIX_REMIX_MODEL sets remix.model).
func (h *Home) LoadConfig() (*Config, error) {
	k := koanf.New(".")
	path := h.ConfigPath()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configFile, err)
	}

	if cfg.Remix.APIKey == "" {
		cfg.Remix.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	cfg.Store.Path = h.resolveStorePath(cfg.Store)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", configFile, err)
	}
	return cfg, nil
}

// envKey maps MEALMIX_STORE_BACKEND to store.backend and MEALMIX_MEALDB_URL
// to mealdb_url.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range []string{"store", "remix", "log", "serve"} {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

func (h *Home) resolveStorePath(sc StoreConfig) string {
	path := sc.Path
	if path == "" {
		switch sc.Backend {
		case BackendFile:
			path = defaultStoreDirName
		case BackendSQLite:
			path = defaultSQLiteName
		default:
			return ""
		}
	}
	if path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(h.root, path)
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("store.backend %q must be one of file, sqlite, redis, memory", c.Store.Backend)
	}
	if c.Store.Backend == BackendRedis && c.Store.RedisURL == "" {
		return fmt.Errorf("store.redis_url is required for the redis backend")
	}
	if c.MealDBURL == "" {
		return fmt.Errorf("mealdb_url is required")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative")
	}
	if c.Remix.Model == "" {
		return fmt.Errorf("remix.model is required")
	}
	if len(c.Remix.Themes) == 0 {
		return fmt.Errorf("remix.themes must list at least one theme")
	}
	return nil
}

// ConfigPath returns the path to the user config file.
func (h *Home) ConfigPath() string {
	return filepath.Join(h.root, configFile)
}
