package tabular

// Cell is one raw spreadsheet value: string, float64 (JSON numbers), bool or nil.
type Cell = any

// RawTable is a logical sheet as returned by the row source. Rows may be ragged.
type RawTable [][]Cell

// Field names a logical column, e.g. "Indent Number".
type Field string

const (
	// NoHeader marks a table with no usable header row.
	NoHeader = -1
	// Absent marks a field that resolved to no column.
	Absent = -1
)

// FieldSpec resolves one logical field against a header row.
type FieldSpec struct {
	Name     Field    `json:"name"`
	Aliases  []string `json:"aliases"`
	Fallback int      `json:"fallback"` // column used when no alias matches; < 0 means none
}

// Spec builds a FieldSpec with no fallback column.
func Spec(name Field, aliases ...string) FieldSpec {
	return FieldSpec{Name: name, Aliases: aliases, Fallback: Absent}
}

// At returns a copy of the spec with a fixed fallback column.
func (s FieldSpec) At(col int) FieldSpec {
	s.Fallback = col
	return s
}

// HeaderRule locates the header row of a sheet.
type HeaderRule struct {
	Sentinels   []string `json:"sentinels"`
	FallbackRow int      `json:"fallbackRow"`
}

// Record is one mapped data row.
type Record map[Field]string

// Get returns the field value, "" when the field is missing.
func (r Record) Get(f Field) string {
	if r == nil {
		return ""
	}
	return r[f]
}

// Partition splits records of a two-phase workflow step.
type Partition struct {
	Pending      []Record `json:"pending"`
	History      []Record `json:"history"`
	Unclassified []Record `json:"unclassified"`
}

// Len returns the number of rows in the table.
func (t RawTable) Len() int {
	return len(t)
}

// Row returns row i, nil when out of range.
func (t RawTable) Row(i int) []Cell {
	if i < 0 || i >= len(t) {
		return nil
	}
	return t[i]
}
