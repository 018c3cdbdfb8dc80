package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlacementInclusiveTopRight(t *testing.T) {
	p := NewPlacement(NewRectangle(12, 8), Normal, NewPoint(0, 0))
	assert.Equal(t, NewPoint(11, 7), p.TopRight)

	unit := NewPlacement(NewRectangle(1, 1), Normal, NewPoint(4, 5))
	assert.Equal(t, unit.BottomLeft, unit.TopRight)
}

func TestNewPlacementRotated(t *testing.T) {
	p := NewPlacement(NewRectangle(12, 8), Rotated, NewPoint(2, 3))
	assert.Equal(t, 8, p.PlacedWidth())
	assert.Equal(t, 12, p.PlacedHeight())
	assert.Equal(t, NewPoint(9, 14), p.TopRight)
}

func TestOverlaps(t *testing.T) {
	r := NewRectangle(10, 9)
	tests := []struct {
		name string
		a, b Point
		want bool
	}{
		{"same origin", NewPoint(0, 0), NewPoint(0, 0), true},
		{"partial", NewPoint(0, 0), NewPoint(5, 5), true},
		{"shared column", NewPoint(0, 0), NewPoint(9, 0), true},
		{"adjacent right", NewPoint(0, 0), NewPoint(10, 0), false},
		{"adjacent above", NewPoint(0, 0), NewPoint(0, 9), false},
		{"far apart", NewPoint(0, 0), NewPoint(24, 3), false},
		{"diagonal corner", NewPoint(0, 0), NewPoint(9, 8), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewPlacement(r, Normal, tt.a)
			b := NewPlacement(r, Normal, tt.b)
			assert.Equal(t, tt.want, a.Overlaps(b))
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "overlap must be symmetric")
		})
	}
}

func TestParseRectangle(t *testing.T) {
	r, err := ParseRectangle("  12   8 ")
	require.NoError(t, err)
	assert.Equal(t, NewRectangle(12, 8), r)
	assert.Equal(t, int64(96), r.Area())

	for _, bad := range []string{"", "12", "12 8 1", "0 8", "12 -1", "a b", "3000000000 1"} {
		_, err := ParseRectangle(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestRectangleAreaFromLiteral(t *testing.T) {
	assert.Equal(t, int64(6), Rectangle{Width: 2, Height: 3}.Area())
}

func TestRectangleJSONKeepsArea(t *testing.T) {
	data, err := json.Marshal(NewRectangle(4, 5))
	require.NoError(t, err)

	var r Rectangle
	require.NoError(t, json.Unmarshal(data, &r))
	assert.Equal(t, NewRectangle(4, 5), r)
}

func TestParseRotation(t *testing.T) {
	rot, err := ParseRotation("yes")
	require.NoError(t, err)
	assert.Equal(t, Rotated, rot)
	assert.Equal(t, "no", Normal.String())

	_, err = ParseRotation("maybe")
	assert.Error(t, err)
}
