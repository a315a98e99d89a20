package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/persistui/pkg/errors"
)

// loadAndMerge loads a YAML file and merges it into the config. A missing
// file is returned unwrapped so callers can test os.IsNotExist.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML")
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML")
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Strings and numbers override when
// non-zero; booleans override only when the key is present in raw.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if override.UI.TickRate != 0 {
		base.UI.TickRate = override.UI.TickRate
	}
	if boolFieldSet(raw, "ui", "mouse") {
		base.UI.Mouse = override.UI.Mouse
	}
	if boolFieldSet(raw, "ui", "paste") {
		base.UI.Paste = override.UI.Paste
	}

	if strings.TrimSpace(override.Logging.Level) != "" {
		base.Logging.Level = strings.ToLower(override.Logging.Level)
	}
	if strings.TrimSpace(override.Logging.Format) != "" {
		base.Logging.Format = strings.ToLower(override.Logging.Format)
	}
	if boolFieldSet(raw, "logging", "file") {
		base.Logging.File = override.Logging.File
	}

	if boolFieldSet(raw, "metrics", "enabled") {
		base.Metrics.Enabled = override.Metrics.Enabled
	}
	if override.Metrics.Listen != "" {
		base.Metrics.Listen = override.Metrics.Listen
	}

	if boolFieldSet(raw, "bridge", "enabled") {
		base.Bridge.Enabled = override.Bridge.Enabled
	}
	if override.Bridge.URL != "" {
		base.Bridge.URL = override.Bridge.URL
	}
	if override.Bridge.Prefix != "" {
		base.Bridge.Prefix = override.Bridge.Prefix
	}
	if override.Bridge.Name != "" {
		base.Bridge.Name = override.Bridge.Name
	}
	if boolFieldSet(raw, "bridge", "rate") {
		base.Bridge.Rate = override.Bridge.Rate
	}
	if boolFieldSet(raw, "bridge", "burst") {
		base.Bridge.Burst = override.Bridge.Burst
	}
}

func boolFieldSet(raw map[string]any, path ...string) bool {
	if len(path) == 0 || raw == nil {
		return false
	}
	current := any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		val, ok := m[key]
		if !ok {
			return false
		}
		current = val
	}
	return true
}
