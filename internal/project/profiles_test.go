package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/packt/internal/model"
)

func TestSaveAndLoadProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "profiles.json")

	profiles := []model.SolverSpec{
		{Name: "java", Runtime: "java", Args: []string{"-Xmx2g", "-jar"}, Path: "solver.jar", Deadline: time.Minute},
		{Name: "native", Path: "/opt/packer", Deadline: 10 * time.Second},
	}
	require.NoError(t, SaveProfiles(path, profiles))

	loaded, err := LoadProfiles(path)
	require.NoError(t, err)
	assert.Equal(t, profiles, loaded)

	p, ok := FindProfile(loaded, "native")
	require.True(t, ok)
	assert.Equal(t, "/opt/packer", p.String())

	_, ok = FindProfile(loaded, "missing")
	assert.False(t, ok)
}

func TestLoadProfilesMissingFile(t *testing.T) {
	profiles, err := LoadProfiles(filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, err)
	assert.NotNil(t, profiles)
	assert.Empty(t, profiles)
}

func TestLoadProfilesDefaultsDeadline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"x","path":"a.jar","runtime":"java","args":["-jar"]}]`), 0644))

	profiles, err := LoadProfiles(path)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, model.DefaultDeadline, profiles[0].Deadline)
}

func TestLoadProfilesRejectsUnnamed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"path":"a.jar"}]`), 0644))

	_, err := LoadProfiles(path)
	assert.ErrorContains(t, err, "no name")
}

func TestLoadProfilesInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))

	_, err := LoadProfiles(path)
	assert.Error(t, err)
}
