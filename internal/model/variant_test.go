package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("free")
	require.NoError(t, err)
	assert.Equal(t, Free(), v)

	v, err = ParseVariant("Fixed 22")
	require.NoError(t, err)
	assert.Equal(t, FixedHeight(22), v)
	assert.Equal(t, "fixed 22", v.String())

	v, err = ParseVariant("fixed")
	require.NoError(t, err)
	assert.True(t, v.Fixed)
	assert.Zero(t, v.Height)

	for _, bad := range []string{"", "fixed -3", "fixed x", "bounded 4"} {
		_, err := ParseVariant(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestVariantJSON(t *testing.T) {
	data, err := json.Marshal(FixedHeight(7))
	require.NoError(t, err)
	assert.JSONEq(t, `"fixed 7"`, string(data))

	var v Variant
	require.NoError(t, json.Unmarshal([]byte(`"free"`), &v))
	assert.Equal(t, Free(), v)
}
