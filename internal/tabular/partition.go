package tabular

// PartitionBy splits records on a pair of marker fields:
//   - pending: first marker set, second empty
//   - history: both set
//   - unclassified: first marker empty
//
// Unclassified rows never show up on a pending or history page; they are
// returned separately so callers can see them.
func PartitionBy(records []Record, first, second Field) Partition {
	p := Partition{
		Pending:      []Record{},
		History:      []Record{},
		Unclassified: []Record{},
	}
	for _, r := range records {
		hasFirst := !IsEmpty(r.Get(first))
		hasSecond := !IsEmpty(r.Get(second))
		switch {
		case hasFirst && !hasSecond:
			p.Pending = append(p.Pending, r)
		case hasFirst && hasSecond:
			p.History = append(p.History, r)
		default:
			p.Unclassified = append(p.Unclassified, r)
		}
	}
	return p
}

// Classified returns pending followed by history.
func (p Partition) Classified() []Record {
	out := make([]Record, 0, len(p.Pending)+len(p.History))
	out = append(out, p.Pending...)
	return append(out, p.History...)
}

// Filter keeps the records for which keep returns true.
func Filter(records []Record, keep func(Record) bool) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// NonEmpty keeps records whose field has a value.
func NonEmpty(f Field) func(Record) bool {
	return func(r Record) bool {
		return !IsEmpty(r.Get(f))
	}
}

// Contains keeps records where any of the fields contains q, ignoring case.
// An empty query keeps everything.
func Contains(q string, fields ...Field) func(Record) bool {
	q = Normalize(q)
	return func(r Record) bool {
		if q == "" {
			return true
		}
		for _, f := range fields {
			if ContainsFold(r.Get(f), q) {
				return true
			}
		}
		return false
	}
}
