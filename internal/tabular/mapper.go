package tabular

import "strings"

// LocateHeaderRow returns the first row holding a cell equal (after trimming)
// to one of the sentinels. Without a match it falls back to fallbackRow,
// clamped to the last row; an empty table or negative fallback gives NoHeader.
func LocateHeaderRow(table RawTable, sentinels []string, fallbackRow int) int {
	if len(table) == 0 {
		return NoHeader
	}

	want := make(map[string]struct{}, len(sentinels))
	for _, s := range sentinels {
		if s = strings.TrimSpace(s); s != "" {
			want[s] = struct{}{}
		}
	}

	if len(want) > 0 {
		for i, row := range table {
			for _, cell := range row {
				if _, ok := want[strings.TrimSpace(CellString(cell))]; ok {
					return i
				}
			}
		}
	}

	if fallbackRow < 0 {
		return NoHeader
	}
	if fallbackRow >= len(table) {
		return len(table) - 1
	}
	return fallbackRow
}

// ResolveFieldIndex finds the column for a field. Aliases are tried in order
// and each alias is checked against every header cell before the next alias,
// so alias order beats column order. Matching is case-insensitive substring
// containment on normalized labels.
func ResolveFieldIndex(header []Cell, aliases []string, fallback int) int {
	labels := make([]string, len(header))
	for i, cell := range header {
		labels[i] = Normalize(CellString(cell))
	}

	for _, alias := range aliases {
		alias = Normalize(alias)
		if alias == "" {
			continue
		}
		for i, label := range labels {
			if label != "" && ContainsFold(label, alias) {
				return i
			}
		}
	}

	if fallback >= 0 {
		return fallback
	}
	return Absent
}

// ResolveFields resolves every spec against the header row.
func ResolveFields(header []Cell, specs []FieldSpec) map[Field]int {
	cols := make(map[Field]int, len(specs))
	for _, spec := range specs {
		cols[spec.Name] = ResolveFieldIndex(header, spec.Aliases, spec.Fallback)
	}
	return cols
}

// MapRows builds one Record per row after headerRow. Every spec field is
// present in every record; unresolved or missing cells read as "".
// Empty rows are kept: filtering belongs to the caller.
func MapRows(table RawTable, headerRow int, specs []FieldSpec) []Record {
	start := headerRow + 1
	if headerRow < 0 {
		start = 0
	}
	if start >= len(table) {
		return []Record{}
	}

	cols := ResolveFields(table.Row(headerRow), specs)

	records := make([]Record, 0, len(table)-start)
	for _, row := range table[start:] {
		rec := make(Record, len(specs))
		for _, spec := range specs {
			rec[spec.Name] = cellAt(row, cols[spec.Name])
		}
		records = append(records, rec)
	}
	return records
}

// Map locates the header with rule and maps the rows below it.
func Map(table RawTable, rule HeaderRule, specs []FieldSpec) []Record {
	return MapRows(table, LocateHeaderRow(table, rule.Sentinels, rule.FallbackRow), specs)
}

func cellAt(row []Cell, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(CellString(row[idx]))
}
