package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// XLSXExporter renders datasets into a single-sheet workbook.
type XLSXExporter struct {
	sheet string
}

// NewXLSXExporter constructs an XLSX exporter writing to the named sheet.
func NewXLSXExporter(sheet string) *XLSXExporter {
	if sheet == "" {
		sheet = "Datos"
	}
	return &XLSXExporter{sheet: sheet}
}

// Render produces the workbook bytes. Numeric cells listed in numeric are
// written as numbers so spreadsheets can aggregate them.
func (e *XLSXExporter) Render(data Dataset, numeric map[string]bool) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, errNoHeaders
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", e.sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E6E6E6"}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, header := range data.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(e.sheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header %s: %w", header, err)
		}
		if err := f.SetCellStyle(e.sheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header %s: %w", header, err)
		}
	}

	for r, row := range data.Rows {
		for c, header := range data.Headers {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			value := row[header]
			if n, parseErr := strconv.ParseFloat(value, 64); numeric[header] && parseErr == nil {
				err = f.SetCellFloat(e.sheet, cell, n, -1, 64)
			} else {
				err = f.SetCellStr(e.sheet, cell, value)
			}
			if err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
