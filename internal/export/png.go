package export

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/piwi3910/packt/internal/engine"
	"github.com/piwi3910/packt/internal/model"
)

// RenderImage paints sol one pixel per grid cell, flipped so that y grows
// upward, then scales it so the longer side is at most maxSide pixels.
func RenderImage(sol model.Solution, container model.Rectangle, maxSide int) image.Image {
	w, h := container.Width, container.Height
	if w == 0 || h == 0 {
		w, h = engine.BoundingBox(sol.Placements)
	}
	if w == 0 || h == 0 {
		return imaging.New(1, 1, color.White)
	}

	canvas := imaging.New(w, h, color.White)
	for i, p := range sol.Placements {
		c := rectColors[i%len(rectColors)]
		fill := image.NewUniform(color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255})
		r := image.Rect(p.BottomLeft.X, p.BottomLeft.Y, p.TopRight.X+1, p.TopRight.Y+1)
		draw.Draw(canvas, r, fill, image.Point{}, draw.Src)
	}

	img := imaging.FlipV(canvas)
	if maxSide > 0 && (w > maxSide || h > maxSide) {
		if w >= h {
			img = imaging.Resize(img, maxSide, 0, imaging.NearestNeighbor)
		} else {
			img = imaging.Resize(img, 0, maxSide, imaging.NearestNeighbor)
		}
	}
	return img
}

// RenderPNG writes RenderImage to path. The format follows the extension.
func RenderPNG(path string, sol model.Solution, container model.Rectangle, maxSide int) error {
	return imaging.Save(RenderImage(sol, container, maxSide), path)
}
