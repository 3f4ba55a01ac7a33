package sheets

import (
	"errors"
	"testing"

	"hrconsole/internal/tabular"
)

func fmsFixture() tabular.RawTable {
	header := []tabular.Cell{
		"Timestamp", "Indent No", "Post", "Gender", "Department", "Prefer", "Number Of Posts",
		"Competition Date", "Social Site", "Position Status", "Planned 1", "Actual 1", "Delay 1",
		"Planned 2", "Actual 2", "Delay 2", "Planned 3", "Actual 3",
	}
	return tabular.RawTable{
		{"FMS"},
		{},
		{},
		{"Indent tracker"},
		{},
		header,
		{"01/02/2025", "IN-001", "Driver", "Male", "Transport", "Any", 2.0, "", "", "Open", "02/02/2025", ""},
		{"01/02/2025", "IN-002", "Clerk", "Any", "Admin", "Any", "1", "", "Yes", "Open", "02/02/2025", "03/02/2025", "", "04/02/2025"},
		{"", "", "", ""},
		{"05/02/2025", "IN-003", "Accountant", "Female", "Finance", "", 3.0},
	}
}

func TestDefault_NamesInRegistrationOrder(t *testing.T) {
	t.Parallel()

	got := Default().Names()
	want := []string{FMS, Master, Enquiry, Joining, Leaving}
	if len(got) != len(want) {
		t.Fatalf("names mismatch: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names[%d] want=%s got=%s", i, want[i], got[i])
		}
	}
}

func TestSchemaMap_DropsRowsWithoutKey(t *testing.T) {
	t.Parallel()

	schema := Default().MustSheet(FMS)
	records := schema.Map(fmsFixture())
	if len(records) != 3 {
		t.Fatalf("want 3 records got %d", len(records))
	}
	if records[0].Get(Department) != "Transport" {
		t.Fatalf("unexpected department %q", records[0].Get(Department))
	}
	if records[1].Get(Status) != "Open" {
		t.Fatalf("Position Status should map to Status, got %q", records[1].Get(Status))
	}
	if tabular.ParseCount(records[2].Get(NumberOfPosts)) != 3 {
		t.Fatalf("unexpected posts %q", records[2].Get(NumberOfPosts))
	}
}

func TestSchemaStepView(t *testing.T) {
	t.Parallel()

	schema := Default().MustSheet(FMS)

	p, err := schema.StepView("indent-approval", fmsFixture())
	if err != nil {
		t.Fatalf("step view: %v", err)
	}
	if len(p.Pending) != 1 || p.Pending[0].Get(IndentNumber) != "IN-001" {
		t.Fatalf("unexpected pending: %#v", p.Pending)
	}
	if len(p.History) != 1 || p.History[0].Get(IndentNumber) != "IN-002" {
		t.Fatalf("unexpected history: %#v", p.History)
	}
	if len(p.Unclassified) != 1 || p.Unclassified[0].Get(IndentNumber) != "IN-003" {
		t.Fatalf("unexpected unclassified: %#v", p.Unclassified)
	}

	p, err = schema.StepView("social-site", fmsFixture())
	if err != nil {
		t.Fatalf("step view: %v", err)
	}
	if len(p.Pending) != 1 || p.Pending[0].Get(IndentNumber) != "IN-002" {
		t.Fatalf("unexpected social-site pending: %#v", p.Pending)
	}

	if _, err := schema.StepView("nope", fmsFixture()); !errors.Is(err, ErrUnknownStep) {
		t.Fatalf("want ErrUnknownStep got %v", err)
	}
}

func TestSchemaMap_HeaderRenamedUsesFallbackColumn(t *testing.T) {
	t.Parallel()

	table := tabular.RawTable{
		{"Timestamp", "Indent No", "Post", "Gender", "Dept."},
		{"x", "IN-9", "Driver", "Any", "Stores"},
	}
	records := Default().MustSheet(FMS).Map(table)
	if len(records) != 1 || records[0].Get(Department) != "Stores" {
		t.Fatalf("fallback column 4 should be used, got %#v", records)
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Schema{Name: "A"}, Schema{Name: "B"})
	r.Register(Schema{Name: "A", KeyField: "k"})
	if names := r.Names(); len(names) != 2 || names[0] != "A" {
		t.Fatalf("unexpected names %v", names)
	}
	s, ok := r.Sheet("A")
	if !ok || s.KeyField != "k" {
		t.Fatalf("schema not replaced: %#v", s)
	}
	if _, ok := r.Sheet("C"); ok {
		t.Fatalf("unexpected sheet C")
	}
}

func TestSchemaMap_StepPrefixedColumnsFirst(t *testing.T) {
	t.Parallel()

	reg := Default()
	cases := []struct {
		sheet   string
		table   tabular.RawTable
		planned tabular.Field
		actual  tabular.Field
	}{
		{
			sheet: Enquiry,
			table: tabular.RawTable{
				{"Candidate Name", "Interview Planned", "Interview Actual", "Call Planned", "Call Actual"},
				{"Asha", "i-plan", "i-done", "c-plan", "c-done"},
			},
			planned: CallPlanned,
			actual:  CallActual,
		},
		{
			sheet: Joining,
			table: tabular.RawTable{
				{"Employee ID", "Name", "Interview Planned", "Interview Actual", "Joining Planned", "Joining Actual"},
				{"E-1", "Asha", "i-plan", "i-done", "c-plan", "c-done"},
			},
			planned: JoiningPlanned,
			actual:  JoiningActual,
		},
		{
			sheet: Leaving,
			table: tabular.RawTable{
				{"Employee ID", "Name", "Date Of Leaving", "Interview Planned", "Interview Actual", "Exit Planned", "Exit Actual"},
				{"E-1", "Asha", "01/03/2025", "i-plan", "i-done", "c-plan", "c-done"},
			},
			planned: ExitPlanned,
			actual:  ExitActual,
		},
	}
	for _, tc := range cases {
		records := reg.MustSheet(tc.sheet).Map(tc.table)
		if len(records) != 1 {
			t.Fatalf("%s: want 1 record got %d", tc.sheet, len(records))
		}
		if got := records[0].Get(tc.planned); got != "c-plan" {
			t.Fatalf("%s: %s resolved to %q", tc.sheet, tc.planned, got)
		}
		if got := records[0].Get(tc.actual); got != "c-done" {
			t.Fatalf("%s: %s resolved to %q", tc.sheet, tc.actual, got)
		}
	}

	p, err := reg.MustSheet(Enquiry).StepView("interview", cases[0].table)
	if err != nil {
		t.Fatalf("step view: %v", err)
	}
	if len(p.History) != 1 || p.History[0].Get(InterviewPlan) != "i-plan" {
		t.Fatalf("interview markers misread: %#v", p)
	}
}
