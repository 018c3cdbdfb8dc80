package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/packt/internal/model"
)

const (
	configDirName  = ".packt"
	configFileName = "config.json"
)

// DefaultConfigDir is ~/.packt, or ./.packt when the home directory is
// unknown.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, configDirName)
}

// DefaultConfigPath is the config file inside DefaultConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), configFileName)
}

// SaveAppConfig validates config and writes it to path as indented JSON,
// creating parent directories as needed.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("refusing to save config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads the config at path over DefaultAppConfig, so a partial
// file only overrides what it names. A missing file yields the defaults.
// Recent problems that no longer exist on disk are dropped, and the result
// is validated before it is returned.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return model.AppConfig{}, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	recent := make([]string, 0, len(config.RecentProblems))
	for _, p := range config.RecentProblems {
		if _, err := os.Stat(p); err == nil {
			recent = append(recent, p)
		}
	}
	config.RecentProblems = recent

	if err := config.Validate(); err != nil {
		return model.AppConfig{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}
