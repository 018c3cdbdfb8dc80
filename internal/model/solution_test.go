package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioSolution = "container height: fixed 22\nrotations allowed: no\nnumber of rectangles: 2\n12 8\n10 9" +
	"\nplacement of rectangles\n0 0\n24 3"

func TestParseSolutionScenario(t *testing.T) {
	sol, err := ParseSolution(scenarioSolution)
	require.NoError(t, err)
	require.Len(t, sol.Placements, 2)

	assert.Equal(t, NewPlacement(NewRectangle(12, 8), Normal, NewPoint(0, 0)), sol.Placements[0])
	assert.Equal(t, NewPlacement(NewRectangle(10, 9), Normal, NewPoint(24, 3)), sol.Placements[1])
	assert.False(t, sol.Placements[0].Overlaps(sol.Placements[1]))
	assert.Equal(t, FixedHeight(22), sol.Variant)
}

func TestParseSolutionWithRotation(t *testing.T) {
	text := "container height: free\nrotations allowed: yes\nnumber of rectangles: 2\n3 4\n5 6\n" +
		"Placement Of Rectangles\n\nyes 0 0\nno 4 0\n"
	sol, err := ParseSolution(text)
	require.NoError(t, err)
	assert.Equal(t, Rotated, sol.Placements[0].Rotation)
	assert.Equal(t, NewPoint(3, 2), sol.Placements[0].TopRight)
	assert.Equal(t, Normal, sol.Placements[1].Rotation)
}

func TestParseSolutionSeparatorNotAnchored(t *testing.T) {
	text := "container height: free\nrotations allowed: no\nnumber of rectangles: 1\n3 4\n" +
		"   placement of rectangles   \n0 0"
	_, err := ParseSolution(text)
	require.NoError(t, err)
}

func TestParseSolutionErrors(t *testing.T) {
	header := "container height: free\nrotations allowed: no\nnumber of rectangles: 2\n3 4\n5 6\n"
	rotHeader := "container height: free\nrotations allowed: yes\nnumber of rectangles: 2\n3 4\n5 6\n"
	tests := []struct {
		name string
		text string
	}{
		{"no separator", header + "0 0\n4 0"},
		{"too few placements", header + "placement of rectangles\n0 0"},
		{"too many placements", header + "placement of rectangles\n0 0\n4 0\n9 9"},
		{"rotation token without rotation", header + "placement of rectangles\nno 0 0\nno 4 0"},
		{"missing rotation token", rotHeader + "placement of rectangles\n0 0\n4 0"},
		{"bad rotation token", rotHeader + "placement of rectangles\nmaybe 0 0\nno 4 0"},
		{"negative coordinate", header + "placement of rectangles\n0 -1\n4 0"},
		{"non numeric", header + "placement of rectangles\n0 zero\n4 0"},
		{"junk after separator", header + "placement of rectangles 7\n0 0\n4 0"},
		{"bad echo", "garbage\nplacement of rectangles\n0 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSolution(tt.text)
			var fe *FormatError
			assert.True(t, errors.As(err, &fe), "expected FormatError, got %v", err)
		})
	}
}

func TestSolutionAttach(t *testing.T) {
	sol, err := ParseSolution(scenarioSolution)
	require.NoError(t, err)

	require.NoError(t, sol.Attach(scenarioProblem()))
	require.NotNil(t, sol.Source)

	other := scenarioProblem()
	other.Rectangles[1] = NewRectangle(10, 10)
	err = sol.Attach(other)
	var fe *FormatError
	assert.True(t, errors.As(err, &fe))
}

func TestSolutionStringRoundTrip(t *testing.T) {
	sol, err := ParseSolution(scenarioSolution)
	require.NoError(t, err)
	assert.Equal(t, scenarioSolution, sol.String())

	again, err := ParseSolution(sol.String())
	require.NoError(t, err)
	assert.Equal(t, sol, again)
}
