package config

import "testing"

func TestMergeConfigsPreservesBooleanDefaults(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		UI: UIConfig{TickRate: 15},
	}
	raw := map[string]any{
		"ui": map[string]any{
			"tick_rate": 15,
		},
	}

	mergeConfigs(base, override, raw)

	if !base.UI.Mouse || !base.UI.Paste {
		t.Fatalf("mouse and paste should remain true when not overridden")
	}
	if base.UI.TickRate != 15 {
		t.Fatalf("expected tick rate to be overridden")
	}
}

func TestMergeConfigsRespectsBooleanOverrides(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		UI:      UIConfig{Paste: false},
		Metrics: MetricsConfig{Enabled: true},
	}
	raw := map[string]any{
		"ui":      map[string]any{"paste": false},
		"metrics": map[string]any{"enabled": true},
	}

	mergeConfigs(base, override, raw)

	if base.UI.Paste {
		t.Fatalf("expected paste override to disable paste")
	}
	if !base.Metrics.Enabled {
		t.Fatalf("expected metrics override to enable metrics")
	}
	if !base.UI.Mouse {
		t.Fatalf("mouse should keep its default")
	}
}

func TestMergeConfigsAllowsClearingLogFile(t *testing.T) {
	base := DefaultConfig()
	raw := map[string]any{
		"logging": map[string]any{"file": ""},
	}

	mergeConfigs(base, &Config{}, raw)

	if base.Logging.File != "" {
		t.Fatalf("explicit empty log file should disable file logging, got %q", base.Logging.File)
	}
}

func TestMergeConfigsBridgeRateZero(t *testing.T) {
	base := DefaultConfig()
	raw := map[string]any{
		"bridge": map[string]any{"rate": 0, "burst": 0},
	}

	mergeConfigs(base, &Config{}, raw)

	if base.Bridge.Rate != 0 || base.Bridge.Burst != 0 {
		t.Fatalf("explicit zero rate should override defaults: %+v", base.Bridge)
	}
	if base.Bridge.Prefix != DefaultBridgePrefix {
		t.Fatalf("prefix should keep default, got %q", base.Bridge.Prefix)
	}
}

func TestBoolFieldSet(t *testing.T) {
	raw := map[string]any{
		"ui": map[string]any{"mouse": false},
	}
	if !boolFieldSet(raw, "ui", "mouse") {
		t.Fatalf("expected ui.mouse to be set")
	}
	if boolFieldSet(raw, "ui", "paste") {
		t.Fatalf("ui.paste is not set")
	}
	if boolFieldSet(raw, "ui", "mouse", "deeper") {
		t.Fatalf("scalar cannot contain keys")
	}
	if boolFieldSet(nil, "ui") || boolFieldSet(raw) {
		t.Fatalf("empty inputs are never set")
	}
}

func TestSnake(t *testing.T) {
	cases := map[string]string{
		"TickRate": "tick_rate",
		"UI":       "ui",
		"URL":      "url",
		"Listen":   "listen",
	}
	for in, want := range cases {
		if got := snake(in); got != want {
			t.Fatalf("snake(%q) = %q, want %q", in, got, want)
		}
	}
}
