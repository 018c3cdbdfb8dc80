package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/packt/internal/model"
)

// DefaultProfilesPath returns the default file path for solver profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveProfiles saves solver profiles to a JSON file.
func SaveProfiles(path string, profiles []model.SolverSpec) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProfiles loads solver profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadProfiles(path string) ([]model.SolverSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.SolverSpec{}, nil
		}
		return nil, err
	}

	var profiles []model.SolverSpec
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}
	for i, p := range profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("profile %d has no name", i+1)
		}
		if p.Deadline <= 0 {
			profiles[i].Deadline = model.DefaultDeadline
		}
	}
	return profiles, nil
}

// FindProfile returns the profile called name.
func FindProfile(profiles []model.SolverSpec, name string) (model.SolverSpec, bool) {
	for _, p := range profiles {
		if p.Name == name {
			return p, true
		}
	}
	return model.SolverSpec{}, false
}
