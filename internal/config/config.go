package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/agentx-labs/extensiond/internal/branding"
	"github.com/agentx-labs/extensiond/internal/cachecontrol"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys.
const (
	KeyListenAddr     = "listen_addr"
	KeyExtensionsPath = "extensions_path"
	KeyBundlePath     = "bundle_path"
	KeyCacheTTL       = "extensions_cache_ttl"
	KeyCacheSkip      = "cache_skip_allowed"
	KeyHostVersion    = "host_version"
	KeyWatch          = "watch"
	KeyWatchDebounce  = "watch_debounce"
)

// Settings is the resolved, read-only service configuration.
type Settings struct {
	ListenAddr     string
	ExtensionsPath string
	BundlePath     string
	CacheTTL       cachecontrol.TTL
	CacheSkip      bool
	HostVersion    string
	Watch          bool
	WatchDebounce  time.Duration
}

// Dir returns the path to the config directory (~/.extensiond/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.extensiond/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyListenAddr, ":8055")
	viper.SetDefault(KeyExtensionsPath, filepath.Join(Dir(), "extensions"))
	viper.SetDefault(KeyCacheTTL, "")
	viper.SetDefault(KeyCacheSkip, false)
	viper.SetDefault(KeyWatch, false)
	viper.SetDefault(KeyWatchDebounce, "500ms")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Resolve builds Settings from the loaded configuration. Load must be called first.
func Resolve() (*Settings, error) {
	ttl, err := cachecontrol.ParseTTL(viper.GetString(KeyCacheTTL))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyCacheTTL, err)
	}

	debounce, err := time.ParseDuration(viper.GetString(KeyWatchDebounce))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyWatchDebounce, err)
	}

	s := &Settings{
		ListenAddr:     viper.GetString(KeyListenAddr),
		ExtensionsPath: viper.GetString(KeyExtensionsPath),
		BundlePath:     viper.GetString(KeyBundlePath),
		CacheTTL:       ttl,
		CacheSkip:      viper.GetBool(KeyCacheSkip),
		HostVersion:    viper.GetString(KeyHostVersion),
		Watch:          viper.GetBool(KeyWatch),
		WatchDebounce:  debounce,
	}
	if s.BundlePath == "" {
		s.BundlePath = filepath.Join(s.ExtensionsPath, "dist")
	}
	return s, nil
}
