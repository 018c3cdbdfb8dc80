package engine

import (
	"time"

	"github.com/piwi3910/packt/internal/model"
)

// BoundingBox returns the smallest width and height, anchored at the origin,
// that contain every placement.
func BoundingBox(placements []model.Placement) (int, int) {
	if len(placements) == 0 {
		return 0, 0
	}
	w, h := 0, 0
	for _, p := range placements {
		if p.TopRight.X+1 > w {
			w = p.TopRight.X + 1
		}
		if p.TopRight.Y+1 > h {
			h = p.TopRight.Y + 1
		}
	}
	return w, h
}

// Evaluate validates sol and measures how well it fills its container.
func Evaluate(sol model.Solution, duration time.Duration) (model.Evaluation, error) {
	if err := Validate(sol); err != nil {
		return model.Evaluation{}, err
	}

	width, height := BoundingBox(sol.Placements)
	if sol.Variant.Fixed {
		if height > sol.Variant.Height {
			return model.Evaluation{}, &model.BoundsExceededError{Top: height, Bound: sol.Variant.Height}
		}
		height = sol.Variant.Height
	}
	container := model.NewRectangle(width, height)

	var minArea int64
	for _, r := range sol.Rectangles {
		minArea += r.Area()
	}

	eval, err := measure(container, minArea)
	if err != nil {
		return model.Evaluation{}, err
	}
	eval.Duration = duration
	if sol.Source != nil && sol.Source.Source != nil {
		optimum := *sol.Source.Source
		eval.Optimum = &optimum
	}
	return eval, nil
}

// measure derives the area metrics. A filling rate above 1 can only come
// from overlap that Validate missed and is reported, never clamped.
func measure(container model.Rectangle, minArea int64) (model.Evaluation, error) {
	eval := model.Evaluation{
		Container: container,
		MinArea:   minArea,
		EmptyArea: container.Area() - minArea,
	}
	if container.Area() > 0 {
		eval.FillingRate = float64(minArea) / float64(container.Area())
	}
	if eval.FillingRate > 1 || eval.EmptyArea < 0 {
		return model.Evaluation{}, &model.InvariantViolation{
			FillingRate:   eval.FillingRate,
			MinArea:       minArea,
			ContainerArea: container.Area(),
		}
	}
	return eval, nil
}
