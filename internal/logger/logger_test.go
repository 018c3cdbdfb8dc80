package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "packt.log")
	cleanup, err := Setup(Config{Path: path, Debug: true})
	require.NoError(t, err)

	L().Info("solver.done", "kind", "timeout")
	assert.Equal(t, path, Path())
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"solver.done"`)
	assert.Contains(t, string(data), `"kind":"timeout"`)
	assert.Empty(t, Path())
}

func TestDefaultLoggerDiscards(t *testing.T) {
	assert.NotNil(t, L())
	L().Info("ignored")
}
