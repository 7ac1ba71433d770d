package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads the gameplay configuration.
// Search order: customPath -> ~/.topplerun/configs/runner.yaml ->
// ./configs/runner.yaml -> embedded default.
func LoadRunner(customPath string) (RunnerConfig, error) {
	var cfg RunnerConfig
	if err := load(customPath, "runner.yaml", defaultRunnerYAML, &cfg); err != nil {
		return cfg, err
	}
	if cfg == (RunnerConfig{}) {
		return DefaultRunnerConfig(), nil
	}
	return cfg, nil
}

// LoadPerf loads the performance monitor configuration, with the same
// search order as LoadRunner.
func LoadPerf(customPath string) (PerfConfig, error) {
	var cfg PerfConfig
	if err := load(customPath, "perf.yaml", defaultPerfYAML, &cfg); err != nil {
		return cfg, err
	}
	if cfg.WindowSize == 0 {
		cfg.WindowSize = DefaultPerfConfig().WindowSize
	}
	return cfg, nil
}

// LoadTheme loads the HUD theme used by gameplay and the audit command.
func LoadTheme(customPath string) (ThemeConfig, error) {
	var cfg ThemeConfig
	if err := load(customPath, "theme.yaml", defaultThemeYAML, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Name == "" {
		return DefaultThemeConfig(), nil
	}
	return cfg, nil
}

// load implements the shared search order. A custom path is authoritative:
// read or parse failures there are errors, while the fallback locations
// fail silently through to the embedded default.
func load(customPath, filename string, embedded []byte, out any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	return yaml.Unmarshal(embedded, out)
}

// userConfigPath returns the path to a user config file, or empty if the
// home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".topplerun", "configs", filename)
}
