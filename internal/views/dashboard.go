package views

import (
	"github.com/montanaflynn/stats"

	"hrconsole/internal/sheets"
	"hrconsole/internal/tabular"
)

// StepCounts is the size of each bucket of one step.
type StepCounts struct {
	Key          string `json:"key"`
	Title        string `json:"title"`
	Pending      int    `json:"pending"`
	History      int    `json:"history"`
	Unclassified int    `json:"unclassified"`
}

// SheetSummary summarizes one sheet.
type SheetSummary struct {
	Name    string       `json:"name"`
	RawRows int          `json:"rawRows"`
	Records int          `json:"records"`
	Steps   []StepCounts `json:"steps,omitempty"`
}

// PositionStats describes the "Number Of Posts" column of the indent register.
type PositionStats struct {
	Indents int     `json:"indents"`
	Total   float64 `json:"total"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	Max     float64 `json:"max"`
}

// Dashboard is the landing page summary.
type Dashboard struct {
	Sheets    []SheetSummary `json:"sheets"`
	Positions PositionStats  `json:"positions"`
}

// Dashboard summarizes every registered sheet.
func (s *Service) Dashboard() Dashboard {
	var d Dashboard
	for _, name := range s.registry.Names() {
		sc := s.registry.MustSheet(name)
		table := s.cache.GetSheet(name)
		records := sc.Map(table)

		sum := SheetSummary{Name: name, RawRows: len(table), Records: len(records)}
		for _, st := range sc.Steps {
			p := tabular.PartitionBy(records, st.Planned, st.Actual)
			sum.Steps = append(sum.Steps, StepCounts{
				Key:          st.Key,
				Title:        st.Title,
				Pending:      len(p.Pending),
				History:      len(p.History),
				Unclassified: len(p.Unclassified),
			})
		}
		d.Sheets = append(d.Sheets, sum)

		if name == sheets.FMS {
			d.Positions = positionStats(records)
		}
	}
	return d
}

func positionStats(records []tabular.Record) PositionStats {
	data := make(stats.Float64Data, 0, len(records))
	for _, r := range records {
		data = append(data, float64(tabular.ParseCount(r.Get(sheets.NumberOfPosts))))
	}
	ps := PositionStats{Indents: len(data)}
	if len(data) == 0 {
		return ps
	}
	// errors only come from empty input
	ps.Total, _ = data.Sum()
	ps.Mean, _ = data.Mean()
	ps.Median, _ = data.Median()
	ps.Max, _ = data.Max()
	return ps
}
