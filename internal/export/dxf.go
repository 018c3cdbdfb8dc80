package export

import (
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/packt/internal/model"
)

// DXF layer names.
const (
	containerLayer  = "container"
	placementsLayer = "placements"
)

// ExportDXF writes the container outline and every placement as closed
// outlines of four lines, one unit per grid cell.
func ExportDXF(path string, sol model.Solution, container model.Rectangle) error {
	d := dxf.NewDrawing()

	if _, err := d.AddLayer(containerLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return err
	}
	if container.Width > 0 && container.Height > 0 {
		if err := drawBox(d, 0, 0, float64(container.Width), float64(container.Height)); err != nil {
			return err
		}
	}

	if _, err := d.AddLayer(placementsLayer, color.Magenta, dxf.DefaultLineType, true); err != nil {
		return err
	}
	for _, p := range sol.Placements {
		x0, y0 := float64(p.BottomLeft.X), float64(p.BottomLeft.Y)
		x1, y1 := float64(p.TopRight.X+1), float64(p.TopRight.Y+1)
		if err := drawBox(d, x0, y0, x1, y1); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}

func drawBox(d *drawing.Drawing, x0, y0, x1, y1 float64) error {
	corners := [][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	for i, c := range corners {
		n := corners[(i+1)%len(corners)]
		if _, err := d.Line(c[0], c[1], 0, n[0], n[1], 0); err != nil {
			return err
		}
	}
	return nil
}
