package views

import (
	"fmt"

	"hrconsole/internal/sheets"
	"hrconsole/internal/tabular"
)

// SheetReader is the read side of the cache.
type SheetReader interface {
	GetSheet(name string) tabular.RawTable
}

// Service derives page data from cached sheets. It never writes to the
// cache; every call maps the current snapshot again.
type Service struct {
	cache    SheetReader
	registry *sheets.Registry
}

// NewService creates a Service.
func NewService(cache SheetReader, registry *sheets.Registry) *Service {
	return &Service{cache: cache, registry: registry}
}

// Registry returns the sheet schemas.
func (s *Service) Registry() *sheets.Registry { return s.registry }

func (s *Service) schema(sheet string) (sheets.Schema, error) {
	sc, ok := s.registry.Sheet(sheet)
	if !ok {
		return sheets.Schema{}, fmt.Errorf("%w: %s", sheets.ErrUnknownSheet, sheet)
	}
	return sc, nil
}

// Raw returns the cached table of a registered sheet.
func (s *Service) Raw(sheet string) (tabular.RawTable, error) {
	if _, err := s.schema(sheet); err != nil {
		return nil, err
	}
	return s.cache.GetSheet(sheet), nil
}

// Records maps a sheet and keeps the rows where any search field contains q.
func (s *Service) Records(sheet, q string) ([]tabular.Record, error) {
	sc, err := s.schema(sheet)
	if err != nil {
		return nil, err
	}
	records := sc.Map(s.cache.GetSheet(sheet))
	if q == "" {
		return records, nil
	}
	fields := sc.Search
	if len(fields) == 0 {
		fields = sc.FieldNames()
	}
	return tabular.Filter(records, tabular.Contains(q, fields...)), nil
}

// StepPage is the pending/history split of one workflow step.
type StepPage struct {
	Sheet        string           `json:"sheet"`
	Step         sheets.Step      `json:"step"`
	Pending      []tabular.Record `json:"pending"`
	History      []tabular.Record `json:"history"`
	Unclassified []tabular.Record `json:"unclassified"`
}

// Step partitions a sheet on the markers of one workflow step.
func (s *Service) Step(sheet, step string) (StepPage, error) {
	sc, err := s.schema(sheet)
	if err != nil {
		return StepPage{}, err
	}
	p, err := sc.StepView(step, s.cache.GetSheet(sheet))
	if err != nil {
		return StepPage{}, err
	}
	st, _ := sc.Step(step)
	return StepPage{
		Sheet:        sheet,
		Step:         st,
		Pending:      p.Pending,
		History:      p.History,
		Unclassified: p.Unclassified,
	}, nil
}
