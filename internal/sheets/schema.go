package sheets

import (
	"errors"
	"fmt"

	"hrconsole/internal/tabular"
)

// ErrUnknownSheet is returned for a sheet name with no schema.
var ErrUnknownSheet = errors.New("unknown sheet")

// ErrUnknownStep is returned for a workflow step the sheet does not define.
var ErrUnknownStep = errors.New("unknown step")

// Step is one two-phase workflow step backed by a pair of marker columns.
type Step struct {
	Key     string        `json:"key"`
	Title   string        `json:"title"`
	Planned tabular.Field `json:"planned"`
	Actual  tabular.Field `json:"actual"`
}

// Schema describes how to read one logical sheet.
type Schema struct {
	Name     string              `json:"name"`
	Header   tabular.HeaderRule  `json:"header"`
	Fields   []tabular.FieldSpec `json:"fields"`
	KeyField tabular.Field       `json:"keyField,omitempty"` // rows without a key are dropped by Map
	Search   []tabular.Field     `json:"search,omitempty"`
	Steps    []Step              `json:"steps,omitempty"`
}

// Step looks up a workflow step by key.
func (s Schema) Step(key string) (Step, bool) {
	for _, st := range s.Steps {
		if st.Key == key {
			return st, true
		}
	}
	return Step{}, false
}

// FieldNames returns the logical field names in declaration order.
func (s Schema) FieldNames() []tabular.Field {
	out := make([]tabular.Field, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

// Map converts a raw table into records. Rows whose key field is empty are
// dropped when the schema declares a key field.
func (s Schema) Map(table tabular.RawTable) []tabular.Record {
	records := tabular.Map(table, s.Header, s.Fields)
	if s.KeyField == "" {
		return records
	}
	return tabular.Filter(records, tabular.NonEmpty(s.KeyField))
}

// StepView maps the table and partitions it on the step's markers.
func (s Schema) StepView(stepKey string, table tabular.RawTable) (tabular.Partition, error) {
	st, ok := s.Step(stepKey)
	if !ok {
		return tabular.Partition{}, fmt.Errorf("%w: %s/%s", ErrUnknownStep, s.Name, stepKey)
	}
	return tabular.PartitionBy(s.Map(table), st.Planned, st.Actual), nil
}

// Registry holds the schemas of every logical sheet, in registration order.
type Registry struct {
	order   []string
	schemas map[string]Schema
}

// NewRegistry builds a registry. A later schema with the same name replaces
// the earlier one.
func NewRegistry(schemas ...Schema) *Registry {
	r := &Registry{schemas: make(map[string]Schema, len(schemas))}
	for _, s := range schemas {
		r.Register(s)
	}
	return r
}

// Register adds or replaces a schema.
func (r *Registry) Register(s Schema) {
	if _, ok := r.schemas[s.Name]; !ok {
		r.order = append(r.order, s.Name)
	}
	r.schemas[s.Name] = s
}

// Sheet returns the schema for name.
func (r *Registry) Sheet(name string) (Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// MustSheet is Sheet for names known at compile time.
func (r *Registry) MustSheet(name string) Schema {
	s, ok := r.schemas[name]
	if !ok {
		panic(fmt.Sprintf("sheets: %s not registered", name))
	}
	return s
}

// Names returns the registered sheet names.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
