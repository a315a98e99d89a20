// Package config loads persistui settings from YAML files and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/odvcencio/persistui/pkg/errors"
)

// Default configuration values exported for documentation and validation
const (
	DefaultTickRate      = 30.0
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultMetricsListen = "127.0.0.1:9464"
	DefaultBridgeURL     = "nats://127.0.0.1:4222"
	DefaultBridgePrefix  = "persistui"
	DefaultBridgeName    = "demo"
	DefaultBridgeRate    = 50.0
	DefaultBridgeBurst   = 10

	dirName  = ".persistui"
	fileName = "config.yaml"
	envFile  = "config.env"
)

// Config represents the complete persistui configuration
type Config struct {
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Bridge  BridgeConfig  `yaml:"bridge"`
}

// UIConfig controls the event loop and terminal features.
type UIConfig struct {
	// TickRate is ticks per second.
	TickRate float64 `yaml:"tick_rate" validate:"gt=0,lte=1000"`
	Mouse    bool    `yaml:"mouse"`
	Paste    bool    `yaml:"paste"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
	// File receives log output. Empty disables logging for interactive
	// commands since stdout belongs to the terminal UI.
	File string `yaml:"file"`
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen" validate:"required_if=Enabled true,omitempty,hostname_port"`
}

// BridgeConfig controls mirroring custom events onto NATS.
type BridgeConfig struct {
	Enabled bool    `yaml:"enabled"`
	URL     string  `yaml:"url" validate:"required_if=Enabled true,omitempty,nats_url"`
	Prefix  string  `yaml:"prefix" validate:"required,subject_token"`
	Name    string  `yaml:"name" validate:"required,subject_token"`
	Rate    float64 `yaml:"rate" validate:"gte=0"`
	Burst   int     `yaml:"burst" validate:"gte=0"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			TickRate: DefaultTickRate,
			Mouse:    true,
			Paste:    true,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   filepath.Join("~", dirName, "persistui.log"),
		},
		Metrics: MetricsConfig{
			Listen: DefaultMetricsListen,
		},
		Bridge: BridgeConfig{
			URL:    DefaultBridgeURL,
			Prefix: DefaultBridgePrefix,
			Name:   DefaultBridgeName,
			Rate:   DefaultBridgeRate,
			Burst:  DefaultBridgeBurst,
		},
	}
}

// Load loads configuration from default locations with proper precedence:
// defaults, ~/.persistui/config.yaml, ./.persistui/config.yaml, then the
// environment.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configEnv := loadConfigEnvVars()

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, dirName, fileName)
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "loading user config")
		}
	}

	projectConfigPath := filepath.Join(".", dirName, fileName)
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "loading project config")
	}

	if err := applyEnvOverrides(cfg, configEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	configEnv := loadConfigEnvVars()

	if err := loadAndMerge(cfg, path); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, fmt.Sprintf("loading config from %s", path))
	}

	if err := applyEnvOverrides(cfg, configEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Process
// environment wins over ~/.persistui/config.env.
func applyEnvOverrides(cfg *Config, configEnv map[string]string) error {
	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return configEnv[key]
	}

	if v := lookup("PERSISTUI_TICK_RATE"); v != "" {
		rate, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return errors.New(errors.ErrCodeConfigInvalid, "PERSISTUI_TICK_RATE must be a number").
				WithContext("value", v)
		}
		cfg.UI.TickRate = rate
	}
	if v := lookup("PERSISTUI_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v := lookup("PERSISTUI_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := lookup("PERSISTUI_NATS_URL"); v != "" {
		cfg.Bridge.URL = v
		cfg.Bridge.Enabled = true
	}
	if v := lookup("PERSISTUI_METRICS_LISTEN"); v != "" {
		cfg.Metrics.Listen = v
		cfg.Metrics.Enabled = true
	}
	if val, ok := envBool(lookup("PERSISTUI_MOUSE")); ok {
		cfg.UI.Mouse = val
	}
	return nil
}

// LogFilePath returns Logging.File with a leading ~ expanded.
func (c *Config) LogFilePath() string {
	return expandHomeDir(c.Logging.File)
}

func envBool(val string) (bool, bool) {
	if val == "" {
		return false, false
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

func loadConfigEnvVars() map[string]string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(home, dirName, envFile))
	if err != nil {
		return nil
	}

	vars := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		vars[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	return vars
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
