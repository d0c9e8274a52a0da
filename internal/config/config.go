// Package config loads thermomap configuration from file, environment, and
// defaults.
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/jackzampolin/thermomap/internal/home"
)

// Config holds thermomap configuration.
// Stored at: {home}/config.yaml
type Config struct {
	// DataFile is the temperature log to process.
	DataFile string `mapstructure:"data_file" yaml:"data_file"`
	// TemplateFile is the channel layout template workbook.
	TemplateFile string `mapstructure:"template_file" yaml:"template_file"`
	// OutputDir is the directory the result workbook is written to.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	// LogLevel is the slog level name: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfig returns configuration rooted in the given home layout.
func DefaultConfig(h *home.Dir) *Config {
	return &Config{
		DataFile:     h.DefaultDataFile(),
		TemplateFile: h.DefaultTemplateFile(),
		OutputDir:    h.ResultPath(),
		LogLevel:     "info",
	}
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
// cfgFile may be empty, in which case config.yaml is searched for in the
// working directory and the home layout.
func NewManager(cfgFile string, h *home.Dir) (*Manager, error) {
	cm := &Manager{
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile, h); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string, h *home.Dir) error {
	defaults := DefaultConfig(h)
	viper.SetDefault("data_file", defaults.DataFile)
	viper.SetDefault("template_file", defaults.TemplateFile)
	viper.SetDefault("output_dir", defaults.OutputDir)
	viper.SetDefault("log_level", defaults.LogLevel)

	// Environment variables with THERMOMAP_ prefix
	viper.SetEnvPrefix("THERMOMAP")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(h.Path())
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}
