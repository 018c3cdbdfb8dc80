package model

import (
	"fmt"
	"time"
)

// DefaultDeadline is the wall-clock budget of one solver invocation.
const DefaultDeadline = 300 * time.Second

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default solver invocation
	SolverRuntime  string        `json:"solver_runtime"`
	SolverArgs     []string      `json:"solver_args"`
	SolverDeadline time.Duration `json:"solver_deadline"`
	DefaultProfile string        `json:"default_profile"`

	// Sweep and batch defaults
	SweepGrid Grid   `json:"sweep_grid"`
	OutputDir string `json:"output_dir"`

	// Application preferences
	RecentProblems []string `json:"recent_problems"`
	MaxRecent      int      `json:"max_recent"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultSolverSpec and DefaultGrid.
func DefaultAppConfig() AppConfig {
	solver := DefaultSolverSpec("")
	return AppConfig{
		SolverRuntime:  solver.Runtime,
		SolverArgs:     solver.Args,
		SolverDeadline: solver.Deadline,
		SweepGrid:      DefaultGrid(),
		OutputDir:      "results",
		RecentProblems: []string{},
		MaxRecent:      10,
	}
}

// Validate checks the settings a solver invocation or sweep relies on.
func (c AppConfig) Validate() error {
	if c.SolverDeadline <= 0 {
		return fmt.Errorf("solver_deadline must be positive, got %s", c.SolverDeadline)
	}
	if c.MaxRecent < 0 {
		return fmt.Errorf("max_recent must not be negative, got %d", c.MaxRecent)
	}
	if err := c.SweepGrid.Validate(); err != nil {
		return fmt.Errorf("sweep_grid: %w", err)
	}
	return nil
}

// ApplyToSolver copies the default invocation settings into spec, leaving
// its path alone. This is used when a solver is given on the command line
// without a profile.
func (c AppConfig) ApplyToSolver(spec *SolverSpec) {
	spec.Runtime = c.SolverRuntime
	spec.Args = append([]string(nil), c.SolverArgs...)
	spec.Deadline = c.SolverDeadline
}

// AddRecent moves path to the front of the recent problem list.
func (c *AppConfig) AddRecent(path string) {
	recent := []string{path}
	for _, p := range c.RecentProblems {
		if p != path {
			recent = append(recent, p)
		}
	}
	limit := c.MaxRecent
	if limit <= 0 {
		limit = 10
	}
	if len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentProblems = recent
}
