package views

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"hrconsole/internal/sheets"
	"hrconsole/internal/tabular"
)

// ExportRecords writes mapped records to a new workbook, one column per
// logical field.
func ExportRecords(sc sheets.Schema, records []tabular.Record) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := exportSheetName(sc.Name)
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		_ = f.Close()
		return nil, err
	}

	fields := sc.FieldNames()
	header := make([]interface{}, len(fields))
	for i, name := range fields {
		header[i] = string(name)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		_ = f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for i, r := range records {
		row := make([]interface{}, len(fields))
		for j, name := range fields {
			row[j] = r.Get(name)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if len(fields) > 0 {
		last, _ := excelize.ColumnNumberToName(len(fields))
		_ = f.SetColWidth(sheetName, "A", last, 18)
	}
	return f, nil
}

// ExportFileName returns a unique download name for a sheet export.
func ExportFileName(sheet string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(sheet), "-"))
	return fmt.Sprintf("%s-%s.xlsx", slug, uuid.NewString()[:8])
}

// exportSheetName trims a name to Excel's 31 character limit.
func exportSheetName(name string) string {
	if name == "" {
		return "Sheet1"
	}
	r := []rune(name)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}
