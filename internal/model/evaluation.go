package model

import (
	"fmt"
	"time"
)

// Evaluation holds the quality metrics of a valid solution.
type Evaluation struct {
	// Container is the tight bounding box, or width x H for a fixed variant.
	Container Rectangle `json:"container"`
	// MinArea is the sum of the input rectangle areas, a lower bound on the
	// container area.
	MinArea int64 `json:"min_area"`
	// EmptyArea is Container.Area() - MinArea. Negative means overlap.
	EmptyArea   int64         `json:"empty_area"`
	FillingRate float64       `json:"filling_rate"`
	Duration    time.Duration `json:"duration"`
	// Optimum is the generator's source rectangle, when known.
	Optimum *Rectangle `json:"optimum,omitempty"`
}

// Perfect reports whether the container is filled without gaps.
func (e Evaluation) Perfect() bool {
	return e.MinArea > 0 && e.EmptyArea == 0
}

func (e Evaluation) String() string {
	s := fmt.Sprintf("lower bound on area: %d\nbounding box: %s, area: %d\nunused area in bounding box: %d\nfilling_rate: %.2f\ntook %ss",
		e.MinArea, e.Container, e.Container.Area(), e.EmptyArea, e.FillingRate, FormatDuration(e.Duration))
	if e.Optimum != nil {
		s += fmt.Sprintf("\noptimum: %s, area: %d", e.Optimum, e.Optimum.Area())
	}
	return s
}

// FormatDuration renders d as seconds with millisecond precision ("S.mmm").
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("%d.%03d", ms/1000, ms%1000)
}
