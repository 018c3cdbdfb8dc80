package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/packt/internal/model"
)

// LabelInfo holds the data encoded into each result label's QR code.
type LabelInfo struct {
	Index       int     `json:"index"`
	Source      string  `json:"source"`
	Count       int     `json:"rectangles"`
	Variant     string  `json:"variant"`
	Rotation    bool    `json:"rotation"`
	Params      string  `json:"params,omitempty"`
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	FillingRate float64 `json:"filling_rate,omitempty"`
	Duration    string  `json:"duration,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos converts records into label data, numbered from 1.
func CollectLabelInfos(records []model.Record) []LabelInfo {
	labels := make([]LabelInfo, 0, len(records))
	for i, r := range records {
		info := LabelInfo{
			Index:    i + 1,
			Source:   r.Source,
			Count:    r.Count,
			Variant:  r.Variant.String(),
			Rotation: r.AllowRotation,
			Params:   r.Params.String(),
		}
		if e := r.Evaluation; e != nil {
			info.Width = e.Container.Width
			info.Height = e.Container.Height
			info.FillingRate = e.FillingRate
			info.Duration = model.FormatDuration(e.Duration)
		} else {
			info.Error = r.ErrorKind
		}
		labels = append(labels, info)
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded labels, one per record, laid out
// on a standard label sheet (Avery 5160, 3 columns x 10 rows on US Letter).
// Each QR code encodes the record as JSON.
func ExportLabels(path string, records []model.Record) error {
	labels := CollectLabelInfos(records)
	if len(labels) == 0 {
		return fmt.Errorf("no records to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Source, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", info.Index)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fitText(pdf, info.Source, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	problem := fmt.Sprintf("n=%d %s rot=%s", info.Count, info.Variant, yesNo(info.Rotation))
	pdf.CellFormat(textW, 3.5, fitText(pdf, problem, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetXY(textX, y+labelPadding+9)
	if info.Error != "" {
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(textW, 3, "failed: "+info.Error, "", 1, "L", false, 0, "")
	} else {
		pdf.SetTextColor(100, 100, 100)
		result := fmt.Sprintf("%d x %d, %.2f%% in %ss", info.Width, info.Height, info.FillingRate*100, info.Duration)
		pdf.CellFormat(textW, 3, fitText(pdf, result, textW), "", 1, "L", false, 0, "")
	}

	if info.Params != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, fitText(pdf, info.Params, textW), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
