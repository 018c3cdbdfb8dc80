// Package export writes sweep results and solution layouts to various file
// formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/packt/internal/engine"
	"github.com/piwi3910/packt/internal/model"
)

// rectColor represents an RGB color for a placed rectangle.
type rectColor struct {
	R, G, B int
}

// rectColors is the palette shared by the PDF and PNG renderers.
var rectColors = []rectColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	// maxLegendItems keeps the legend of large instances on one page.
	maxLegendItems = 40
)

// Report is one evaluated solution to render.
type Report struct {
	Name       string
	Solution   model.Solution
	Evaluation model.Evaluation
}

// ExportPDF writes one layout page per report followed by a summary page
// listing every record.
func ExportPDF(path string, reports []Report, records []model.Record) error {
	if len(reports) == 0 && len(records) == 0 {
		return fmt.Errorf("nothing to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, r := range reports {
		pdf.AddPage()
		renderLayoutPage(pdf, r, i+1)
	}

	if len(records) > 0 {
		pdf.AddPage()
		renderSummaryPage(pdf, records)
	}

	return pdf.OutputFileAndClose(path)
}

// containerOf returns the rectangle drawn as the container of a report.
func containerOf(r Report) model.Rectangle {
	c := r.Evaluation.Container
	if c.Width > 0 && c.Height > 0 {
		return c
	}
	w, h := engine.BoundingBox(r.Solution.Placements)
	return model.NewRectangle(w, h)
}

// renderLayoutPage draws a single solution on the current PDF page. Solution
// coordinates grow upward, so y is flipped onto the page.
func renderLayoutPage(pdf *fpdf.Fpdf, r Report, pageNum int) {
	container := containerOf(r)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Solution %d: %s (%d x %d)", pageNum, r.Name, container.Width, container.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	e := r.Evaluation
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Rectangles: %d | Min area: %d | Container area: %d | Empty: %d | Filling rate: %.2f%% | Took %ss",
		len(r.Solution.Placements), e.MinArea, container.Area(), e.EmptyArea, e.FillingRate*100, model.FormatDuration(e.Duration))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	if container.Width == 0 || container.Height == 0 {
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/float64(container.Width), drawHeight/float64(container.Height))

	canvasW := float64(container.Width) * scale
	canvasH := float64(container.Height) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Container background
	pdf.SetFillColor(240, 240, 240)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	lineWidth := math.Min(0.3, scale/4)
	for i, p := range r.Solution.Placements {
		col := rectColors[i%len(rectColors)]
		pw := float64(p.PlacedWidth()) * scale
		ph := float64(p.PlacedHeight()) * scale
		px := offsetX + float64(p.BottomLeft.X)*scale
		py := offsetY + canvasH - float64(p.TopRight.Y+1)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(lineWidth)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			label := fmt.Sprintf("#%d", i+1)
			dims := fmt.Sprintf("%dx%d", p.Rectangle.Width, p.Rectangle.Height)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)
			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, container, offsetX, offsetY, canvasW, canvasH)
	drawLegend(pdf, r.Solution.Placements, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds width and height labels outside the container.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, container model.Rectangle, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d", container.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d", container.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend lists the first placements with their color and position.
func drawLegend(pdf *fpdf.Fpdf, placements []model.Placement, startY float64) {
	if len(placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Placements:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range placements {
		if i == maxLegendItems {
			pdf.SetXY(xPos, startY)
			pdf.CellFormat(30, 4, fmt.Sprintf("... %d more", len(placements)-i), "", 0, "L", false, 0, "")
			break
		}
		col := rectColors[i%len(rectColors)]
		label := fmt.Sprintf("#%d %s @ %s", i+1, p.Rectangle, p.BottomLeft)
		if p.Rotation == model.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the record table, continuing on new pages as needed.
func renderSummaryPage(pdf *fpdf.Fpdf, records []model.Record) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Solver Run Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	failed := 0
	best := -1.0
	for _, r := range records {
		if r.Failed() {
			failed++
		} else if r.Evaluation.FillingRate > best {
			best = r.Evaluation.FillingRate
		}
	}
	bestText := "-"
	if best >= 0 {
		bestText = fmt.Sprintf("%.2f%%", best*100)
	}

	summaryItems := []struct {
		label string
		value string
	}{
		{"Runs", fmt.Sprintf("%d", len(records))},
		{"Failed", fmt.Sprintf("%d", failed)},
		{"Best filling rate", bestText},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 5

	colWidths := []float64{60, 15, 25, 15, 30, 30, 25, 67}
	headers := []string{"Source", "N", "Variant", "Rot.", "Container", "Filling rate", "Duration", "Params / Error"}
	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += 6
		pdf.SetFont("Helvetica", "", 8)
	}
	drawHeader()

	for i, r := range records {
		if y+6 > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
			drawHeader()
		}

		row := []string{r.Source, fmt.Sprintf("%d", r.Count), r.Variant.String(), yesNo(r.AllowRotation)}
		if e := r.Evaluation; e != nil {
			row = append(row,
				fmt.Sprintf("%d x %d", e.Container.Width, e.Container.Height),
				fmt.Sprintf("%.2f%%", e.FillingRate*100),
				model.FormatDuration(e.Duration)+"s",
				r.Params.String(),
			)
		} else {
			row = append(row, "-", "-", "-", r.ErrorKind+": "+r.Error)
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos := marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, fitText(pdf, cell, colWidths[j]-2), "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by packt", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// fitText truncates s with an ellipsis until it fits in width.
func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
