package views

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrconsole/internal/sheets"
	"hrconsole/internal/tabular"
)

type fakeCache map[string]tabular.RawTable

func (f fakeCache) GetSheet(name string) tabular.RawTable {
	if t, ok := f[name]; ok {
		return t
	}
	return tabular.RawTable{}
}

func fmsTable() tabular.RawTable {
	return tabular.RawTable{
		{"FMS"},
		{},
		{},
		{"Indent tracker"},
		{},
		{"Timestamp", "Indent No", "Post", "Gender", "Department", "Prefer", "Number Of Posts",
			"Competition Date", "Social Site", "Position Status", "Planned 1", "Actual 1"},
		{"01/02/2025", "IN-001", "Driver", "Male", "Transport", "Any", 2.0, "", "", "Open", "02/02/2025", ""},
		{"01/02/2025", "IN-002", "Clerk", "Any", "Admin", "Any", "1", "", "", "Open", "02/02/2025", "03/02/2025"},
		{"05/02/2025", "IN-003", "Accountant", "Female", "Finance", "", 3.0},
	}
}

func enquiryTable() tabular.RawTable {
	return tabular.RawTable{
		{"Timestamp", "Indent Number", "Candidate Name", "Phone", "Email", "Applying For",
			"Candidate Status", "Planned", "Actual", "Delay", "Interview Planned", "Interview Actual"},
		{"", "IN-001", "Ravi Kumar Sharma", "9000000001", "", "Driver", "Shortlisted", "x", ""},
		{"", "IN-002", "Rahul Singh", "9123456789", "", "Clerk", "", "x", "y"},
		{"", "IN-003", "M. Iyer", "", "MEENA@X.COM", "Accountant"},
	}
}

func joiningTable() tabular.RawTable {
	return tabular.RawTable{
		{"Timestamp", "Employee ID", "Name As Per Aadhar", "Mobile", "Email", "Designation",
			"Department", "Date Of Joining", "Planned", "Actual", "Delay", "Status 1", "Status 2"},
		{"", "E-1", "Ravi Kumar", "9876543210", "", "Driver"},
		{"", "E-2", "R. Singh", "+91 91234 56789", "", "Clerk"},
		{"", "E-3", "Meena", "", "meena@x.com", "Accountant"},
		{"", "E-4", "Zed", "", "", "Guard"},
	}
}

func newTestService() *Service {
	return NewService(fakeCache{
		sheets.FMS:     fmsTable(),
		sheets.Enquiry: enquiryTable(),
		sheets.Joining: joiningTable(),
	}, sheets.Default())
}

func TestRecords_Search(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	all, err := svc.Records(sheets.FMS, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got, err := svc.Records(sheets.FMS, "  finance ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "IN-003", got[0].Get(sheets.IndentNumber))

	_, err = svc.Records("Payroll", "")
	assert.True(t, errors.Is(err, sheets.ErrUnknownSheet))
}

func TestRecords_EmptyCache(t *testing.T) {
	t.Parallel()

	svc := NewService(fakeCache{}, sheets.Default())
	got, err := svc.Records(sheets.Leaving, "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestStep_Buckets(t *testing.T) {
	t.Parallel()

	page, err := newTestService().Step(sheets.FMS, "indent-approval")
	require.NoError(t, err)

	assert.Equal(t, "Indent approval", page.Step.Title)
	require.Len(t, page.Pending, 1)
	assert.Equal(t, "IN-001", page.Pending[0].Get(sheets.IndentNumber))
	require.Len(t, page.History, 1)
	assert.Equal(t, "IN-002", page.History[0].Get(sheets.IndentNumber))
	require.Len(t, page.Unclassified, 1)
	assert.Equal(t, "IN-003", page.Unclassified[0].Get(sheets.IndentNumber))

	_, err = newTestService().Step(sheets.FMS, "payroll")
	assert.ErrorIs(t, err, sheets.ErrUnknownStep)
}

func TestStep_EnquiryCallTracker(t *testing.T) {
	t.Parallel()

	page, err := newTestService().Step(sheets.Enquiry, "call-tracker")
	require.NoError(t, err)
	assert.Len(t, page.Pending, 1)
	assert.Len(t, page.History, 1)
	assert.Len(t, page.Unclassified, 1)
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	d := newTestService().Dashboard()

	require.Len(t, d.Sheets, 5)
	fms := d.Sheets[0]
	assert.Equal(t, sheets.FMS, fms.Name)
	assert.Equal(t, 9, fms.RawRows)
	assert.Equal(t, 3, fms.Records)
	require.Len(t, fms.Steps, 3)
	assert.Equal(t, StepCounts{Key: "indent-approval", Title: "Indent approval", Pending: 1, History: 1, Unclassified: 1}, fms.Steps[0])

	assert.Equal(t, 3, d.Positions.Indents)
	assert.InDelta(t, 6, d.Positions.Total, 1e-9)
	assert.InDelta(t, 2, d.Positions.Mean, 1e-9)
	assert.InDelta(t, 2, d.Positions.Median, 1e-9)
	assert.InDelta(t, 3, d.Positions.Max, 1e-9)

	// Master is registered but not cached
	assert.Equal(t, 0, d.Sheets[1].RawRows)
}

func TestDashboard_NoIndents(t *testing.T) {
	t.Parallel()

	d := NewService(fakeCache{}, sheets.Default()).Dashboard()
	assert.Equal(t, PositionStats{}, d.Positions)
}

func TestCandidateJoinings(t *testing.T) {
	t.Parallel()

	got, err := newTestService().CandidateJoinings()
	require.NoError(t, err)
	require.Len(t, got, 4)

	cases := []struct {
		strategy  string
		candidate string
	}{
		{"name", "Ravi Kumar Sharma"},
		{"phone", "Rahul Singh"},
		{"email", "M. Iyer"},
	}
	for i, c := range cases {
		require.NotNil(t, got[i].Match, got[i].Joiner.Get(sheets.JoinerName))
		assert.Equal(t, c.strategy, got[i].Match.Strategy)
		assert.Equal(t, c.candidate, got[i].Candidate.Get(sheets.CandidateName))
	}
	assert.Nil(t, got[3].Match)
	assert.Nil(t, got[3].Candidate)
}

func TestExportRecords(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	sc := sheets.Default().MustSheet(sheets.FMS)
	records, err := svc.Records(sheets.FMS, "")
	require.NoError(t, err)

	f, err := ExportRecords(sc, records)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(sheets.FMS)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Timestamp", rows[0][0])
	assert.Equal(t, "Indent Number", rows[0][1])
	assert.Equal(t, "IN-002", rows[2][1])
}

func TestExportFileName(t *testing.T) {
	t.Parallel()

	name := ExportFileName("Data Resposnse")
	assert.True(t, strings.HasPrefix(name, "data-resposnse-"), name)
	assert.True(t, strings.HasSuffix(name, ".xlsx"), name)
	assert.NotEqual(t, name, ExportFileName("Data Resposnse"))
}
