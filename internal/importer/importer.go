// Package importer builds rectangle lists for new problems from part lists
// in CSV, Excel and DXF files. Tabular imports support automatic delimiter
// detection, flexible column mapping, and case-insensitive headers.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/packt/internal/model"
)

// MaxRectangles caps the rectangles one import may expand to.
const MaxRectangles = 1_000_000

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Rectangles []model.Rectangle
	Errors     []string
	Warnings   []string
}

// OK reports whether the import produced rectangles without errors.
func (r ImportResult) OK() bool {
	return len(r.Errors) == 0 && len(r.Rectangles) > 0
}

// ColumnMapping maps semantic column roles to their indices in the data.
// -1 marks an absent column.
type ColumnMapping struct {
	Label    int
	Width    int
	Height   int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "part", "part name", "description", "desc", "piece", "item"},
	"width":    {"width", "w", "length", "len", "x"},
	"height":   {"height", "h", "depth", "d", "y"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces", "n"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, pipe and space. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|', ' '}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only delimiters that split the first row count.
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a positional
// mapping guessed from the row and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Width: -1, Height: -1, Quantity: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "label":
					if mapping.Label == -1 {
						mapping.Label = i
					}
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
					}
				case "height":
					if mapping.Height == -1 {
						mapping.Height = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				}
			}
		}
	}

	if isHeader {
		return mapping, true
	}
	return positionalMapping(row), false
}

// positionalMapping reads "W H [Qty]" rows, or "Label W H [Qty]" when the
// first cell is not a number.
func positionalMapping(row []string) ColumnMapping {
	if _, err := strconv.ParseFloat(getCell(row, 0), 64); err != nil && len(row) >= 3 {
		return ColumnMapping{Label: 0, Width: 1, Height: 2, Quantity: 3}
	}
	return ColumnMapping{Label: -1, Width: 0, Height: 1, Quantity: 2}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseSide reads a positive whole number. Spreadsheets often store whole
// numbers as "600.0", so a float without fraction is accepted.
func parseSide(s string) (int, bool) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, v > 0 && v <= model.MaxDimension
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f <= 0 || f > model.MaxDimension {
		return 0, false
	}
	return int(f), true
}

// parseRow extracts a rectangle and its quantity from a row.
// Returns the rectangle, the quantity, and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.Rectangle, int, string) {
	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.Rectangle{}, 0, fmt.Sprintf("%s: Missing width value", rowLabel)
	}
	width, ok := parseSide(widthStr)
	if !ok {
		return model.Rectangle{}, 0, fmt.Sprintf("%s: Invalid width '%s' (positive integer expected)", rowLabel, widthStr)
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return model.Rectangle{}, 0, fmt.Sprintf("%s: Missing height value", rowLabel)
	}
	height, ok := parseSide(heightStr)
	if !ok {
		return model.Rectangle{}, 0, fmt.Sprintf("%s: Invalid height '%s' (positive integer expected)", rowLabel, heightStr)
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		v, err := strconv.Atoi(qtyStr)
		if err != nil || v <= 0 {
			return model.Rectangle{}, 0, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr)
		}
		qty = v
	}

	return model.NewRectangle(width, height), qty, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports rectangles from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe", ' ': "space"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	imported := ImportCSVFromReader(bytes.NewReader(data), delimiter)
	imported.Warnings = append(result.Warnings, imported.Warnings...)
	return imported
}

// ImportCSVFromReader imports rectangles from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = delimiter != ' '

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line")
}

// ImportExcel imports rectangles from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row")
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and expands each row by its quantity.
func importFromRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{}

	first := 0
	for first < len(rows) && isEmptyRow(rows[first]) {
		first++
	}
	if first == len(rows) {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[first])
	startRow := first
	if hasHeader {
		startRow++
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if _, ok := parseSide(getCell(rows[first], mapping.Width)); !ok {
		// An unrecognized header; keep the positional mapping.
		startRow++
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if len(rows) > startRow {
			mapping = positionalMapping(rows[startRow])
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		rect, qty, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if len(result.Rectangles)+qty > MaxRectangles {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: more than %d rectangles", rowLabel, MaxRectangles))
			return result
		}
		for j := 0; j < qty; j++ {
			result.Rectangles = append(result.Rectangles, rect)
		}
	}

	if len(result.Rectangles) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}

// Problem wraps the imported rectangles in a problem.
func (r ImportResult) Problem(variant model.Variant, allowRotation bool) model.Problem {
	return model.Problem{
		Variant:       variant,
		AllowRotation: allowRotation,
		Rectangles:    append([]model.Rectangle{}, r.Rectangles...),
	}
}
