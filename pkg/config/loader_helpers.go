package config

import (
	"os"

	"github.com/dcrosta/dtk-sub000/pkg/errors"
	"gopkg.in/yaml.v3"
)

// loadAndMerge loads a YAML file and merges it into the config.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Booleans only override when the
// key is present in raw, since false is also the zero value.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if override.UI.Backend != "" {
		base.UI.Backend = override.UI.Backend
	}
	if override.UI.Tick != 0 {
		base.UI.Tick = override.UI.Tick
	}
	if override.UI.EscapeTimeout != 0 {
		base.UI.EscapeTimeout = override.UI.EscapeTimeout
	}
	if fieldSet(raw, "ui", "max_fps") {
		base.UI.MaxFPS = override.UI.MaxFPS
	}
	if override.UI.Theme != "" {
		base.UI.Theme = override.UI.Theme
	}

	if len(override.Input.Sequences) > 0 {
		if base.Input.Sequences == nil {
			base.Input.Sequences = map[string]string{}
		}
		for seq, name := range override.Input.Sequences {
			base.Input.Sequences[seq] = name
		}
	}
	if fieldSet(raw, "input", "alt_keys") {
		base.Input.AltKeys = override.Input.AltKeys
	}

	if override.Keymap.Path != "" {
		base.Keymap.Path = override.Keymap.Path
	}
	if fieldSet(raw, "keymap", "watch") {
		base.Keymap.Watch = override.Keymap.Watch
	}

	if override.Logging.Dir != "" {
		base.Logging.Dir = override.Logging.Dir
	}
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Telemetry.TraceFile != "" {
		base.Telemetry.TraceFile = override.Telemetry.TraceFile
	}
	if fieldSet(raw, "telemetry", "metrics_on_exit") {
		base.Telemetry.MetricsOnExit = override.Telemetry.MetricsOnExit
	}
}

func fieldSet(raw map[string]any, path ...string) bool {
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
