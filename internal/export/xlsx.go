package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/packt/internal/model"
)

const resultsSheet = "Results"

// ExportXLSX writes records to a workbook with a single "Results" sheet.
// Numeric columns are stored as numbers so the sheet can be charted.
func ExportXLSX(path string, records []model.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return err
	}

	header := make([]interface{}, len(model.RecordHeader))
	for i, h := range model.RecordHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(model.RecordHeader))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(resultsSheet, "A1", lastCol+"1", bold); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := xlsxRow(r)
		if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	return f.SaveAs(path)
}

func xlsxRow(r model.Record) []interface{} {
	row := []interface{}{r.Source, r.Count, r.Variant.String(), yesNo(r.AllowRotation), r.Perfect}
	if e := r.Evaluation; e != nil {
		row = append(row,
			e.Container.Width, e.Container.Height, e.MinArea, e.EmptyArea,
			e.FillingRate, e.Duration.Seconds(), "")
	} else {
		row = append(row, nil, nil, nil, nil, nil, nil, r.Error)
	}
	return append(row, r.Params.String())
}
