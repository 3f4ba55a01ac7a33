package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/xuri/excelize/v2"

	"hrconsole/internal/tabular"
)

// WorkbookSource serves logical sheets from a local .xlsx workbook, one
// worksheet per logical sheet.
type WorkbookSource struct {
	mu   sync.Mutex
	file *excelize.File
}

// OpenWorkbook opens an xlsx file.
func OpenWorkbook(path string) (*WorkbookSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &WorkbookSource{file: f}, nil
}

// ReadWorkbook reads an xlsx from r.
func ReadWorkbook(r io.Reader) (*WorkbookSource, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &WorkbookSource{file: f}, nil
}

// SheetNames lists the worksheets.
func (w *WorkbookSource) SheetNames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.GetSheetList()
}

// FetchSheet implements Source. excelize is not safe for concurrent reads of
// the same file, so calls are serialized.
func (w *WorkbookSource) FetchSheet(ctx context.Context, name string) (Envelope, error) {
	if err := ctx.Err(); err != nil {
		return Envelope{}, transportError(name, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if idx, _ := w.file.GetSheetIndex(name); idx < 0 {
		return Envelope{}, malformedError(name, errors.New("sheet not found"))
	}

	rows, err := w.file.GetRows(name)
	if err != nil {
		return Envelope{}, transportError(name, err)
	}

	table := make(tabular.RawTable, len(rows))
	for i, row := range rows {
		cells := make([]tabular.Cell, len(row))
		for j, v := range row {
			cells[j] = v
		}
		table[i] = cells
	}
	return Envelope{Success: true, Data: table}, nil
}

// Close releases the workbook.
func (w *WorkbookSource) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
