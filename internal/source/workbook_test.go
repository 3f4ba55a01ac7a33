package source

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	f.SetSheetName("Sheet1", "FMS")
	rows := [][]interface{}{
		{"HR FMS"},
		{"Timestamp", "Indent No", "Post"},
		{"01/02/2025", "IN-001", "Driver"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("FMS", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if _, err := f.NewSheet("Master"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	_ = f.SetCellValue("Master", "A1", "Department")

	path := filepath.Join(t.TempDir(), "hr.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestWorkbookSource_FetchSheet(t *testing.T) {
	t.Parallel()

	wb, err := OpenWorkbook(writeWorkbook(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = wb.Close() })

	names := wb.SheetNames()
	if len(names) != 2 || names[0] != "FMS" {
		t.Fatalf("unexpected sheets %v", names)
	}

	table, err := Fetch(context.Background(), wb, "FMS")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("want 3 rows got %d", len(table))
	}
	if table[2][1] != "IN-001" {
		t.Fatalf("unexpected cell %#v", table[2][1])
	}
}

func TestWorkbookSource_MissingSheet(t *testing.T) {
	t.Parallel()

	wb, err := OpenWorkbook(writeWorkbook(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = wb.Close() })

	_, err = Fetch(context.Background(), wb, "JOINING")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("want malformed error, got %v", err)
	}
}
