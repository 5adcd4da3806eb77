package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the application home directory.
const DefaultFileName = "config.yaml"

// Settings holds values read from the optional YAML settings file. Zero
// values mean "not set" so command-line defaults stay in effect.
type Settings struct {
	DataDir        string `yaml:"data_dir"`
	ReportDir      string `yaml:"report_dir"`
	Timezone       string `yaml:"timezone"`
	Icon           string `yaml:"icon"`
	DefaultProject string `yaml:"default_project"`
	TickSeconds    int    `yaml:"tick_seconds"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
}

// TickInterval converts TickSeconds, returning 0 when unset.
func (s Settings) TickInterval() time.Duration {
	if s.TickSeconds <= 0 {
		return 0
	}
	return time.Duration(s.TickSeconds) * time.Second
}

// Load reads settings from path. A missing file is not an error.
func Load(path string) (Settings, error) {
	var settings Settings

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse settings yaml %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to path, creating the directory if needed.
func Save(path string, settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	serialized, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
