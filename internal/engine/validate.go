package engine

import (
	"github.com/piwi3910/packt/internal/logger"
	"github.com/piwi3910/packt/internal/model"
)

// FindOverlap returns the first pair i < j of intersecting placements.
func FindOverlap(placements []model.Placement) (int, int, bool) {
	for i := 0; i < len(placements); i++ {
		for j := i + 1; j < len(placements); j++ {
			if placements[i].Overlaps(placements[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// IsValid reports whether no two placements of sol overlap.
func IsValid(sol model.Solution) bool {
	_, _, found := FindOverlap(sol.Placements)
	return !found
}

// Validate is IsValid with a diagnostic *model.OverlapError.
func Validate(sol model.Solution) error {
	i, j, found := FindOverlap(sol.Placements)
	if !found {
		return nil
	}
	err := &model.OverlapError{First: i, Second: j, A: sol.Placements[i], B: sol.Placements[j]}
	logger.L().Debug("solution.overlap", "first", i, "second", j, "a", err.A.String(), "b", err.B.String())
	return err
}
