package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/packt/internal/model"
)

type yamlSweepPlan struct {
	Axes []model.Axis `yaml:"axes"`
}

// LoadSweepPlan reads a YAML sweep plan:
//
//	axes:
//	  - env: RETRY
//	    values: [5, 10]
//	  - env: N_HEIGHTS
//	    values: [25, 50]
func LoadSweepPlan(path string) (model.Grid, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep plan: %w", err)
	}

	var y yamlSweepPlan
	if err := yaml.Unmarshal(b, &y); err != nil {
		return nil, fmt.Errorf("failed to parse sweep plan %s: %w", path, err)
	}

	grid := model.Grid(y.Axes)
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sweep plan %s: %w", path, err)
	}
	return grid, nil
}
