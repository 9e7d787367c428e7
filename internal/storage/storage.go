// Package storage provides the mealmix home directory, its configuration,
// and the key-value backends saved recipes are persisted in.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// homeEnv overrides the home directory when no --home flag is given.
	homeEnv = "MEALMIX_HOME"
	// appDir is the subdirectory of the user config directory used by default.
	appDir = "mealmix"
)

// Backend is a string key-value store. A missing key is reported as
// ok == false with a nil error.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Home provides access to the mealmix home directory.
type Home struct {
	root string
}

// ResolveHome picks the home directory: the flag value if set, then
// $MEALMIX_HOME, then <user config dir>/mealmix.
func ResolveHome(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if dir := os.Getenv(homeEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory (set %s or --home): %w", homeEnv, err)
	}
	return filepath.Join(base, appDir), nil
}

// OpenHome returns a Home for dir, creating the directory if needed.
func OpenHome(dir string) (*Home, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create home directory %s: %w", dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access home directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return &Home{root: dir}, nil
}

// Root returns the home directory.
func (h *Home) Root() string {
	return h.root
}

// InitConfig writes cfg to config.yaml, or the defaults when cfg is nil.
// Returns error if the file already exists.
func (h *Home) InitConfig(cfg *Config) error {
	path := h.ConfigPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists in %s", configFile, h.root)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check for %s: %w", configFile, err)
	}

	if cfg == nil {
		cfg = DefaultConfig()
	}
	return h.WriteConfig(cfg)
}

// WriteConfig replaces config.yaml with cfg. The file may hold an API key,
// so it is only readable by the owner.
func (h *Home) WriteConfig(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return h.WriteConfigBytes(data)
}

// WriteConfigBytes replaces config.yaml with raw YAML.
func (h *Home) WriteConfigBytes(data []byte) error {
	if err := os.WriteFile(h.ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configFile, err)
	}
	return nil
}

// OpenBackend opens the backend selected by sc. Paths in sc are expected
// to be resolved already, as LoadConfig does.
func (h *Home) OpenBackend(ctx context.Context, sc StoreConfig) (Backend, error) {
	switch sc.Backend {
	case BackendFile, "":
		dir := sc.Path
		if dir == "" {
			dir = filepath.Join(h.root, defaultStoreDirName)
		}
		return OpenFileStore(dir)
	case BackendSQLite:
		path := sc.Path
		if path == "" {
			path = filepath.Join(h.root, defaultSQLiteName)
		}
		return OpenSQLiteStore(path)
	case BackendRedis:
		return OpenRedisStore(ctx, sc.RedisURL)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", sc.Backend)
	}
}
