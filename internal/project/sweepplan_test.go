package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/packt/internal/model"
)

func writePlan(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadSweepPlan(t *testing.T) {
	path := writePlan(t, `
axes:
  - env: RETRY
    values: [5, 10]
  - env: N_HEIGHTS
    values:
      - 25
      - 50
      - 100
`)

	grid, err := LoadSweepPlan(path)
	require.NoError(t, err)
	assert.Equal(t, model.Grid{
		{Env: "RETRY", Values: []int{5, 10}},
		{Env: "N_HEIGHTS", Values: []int{25, 50, 100}},
	}, grid)
	assert.Equal(t, 6, grid.Size())
}

func TestLoadSweepPlanEmpty(t *testing.T) {
	grid, err := LoadSweepPlan(writePlan(t, "axes: []\n"))
	require.NoError(t, err)
	assert.Zero(t, grid.Size())
}

func TestLoadSweepPlanErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"duplicate axis", "axes:\n  - env: RETRY\n    values: [1]\n  - env: RETRY\n    values: [2]\n", "appears twice"},
		{"unnamed axis", "axes:\n  - values: [1]\n", "no environment variable name"},
		{"axis without values", "axes:\n  - env: RETRY\n    values: []\n", "no values"},
		{"not yaml", "axes: [\n", "failed to parse"},
		{"non-integer value", "axes:\n  - env: RETRY\n    values: [fast]\n", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSweepPlan(writePlan(t, tt.body))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadSweepPlanMissingFile(t *testing.T) {
	_, err := LoadSweepPlan(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read sweep plan")
}
