package sheets

import t "hrconsole/internal/tabular"

// Logical sheet names as published by the spreadsheet service.
const (
	FMS     = "FMS"
	Master  = "Master"
	Enquiry = "Data Resposnse"
	Joining = "JOINING"
	Leaving = "LEAVING"
)

// FMS (indent register) fields.
const (
	Timestamp       t.Field = "Timestamp"
	IndentNumber    t.Field = "Indent Number"
	Post            t.Field = "Post"
	Gender          t.Field = "Gender"
	Department      t.Field = "Department"
	Prefer          t.Field = "Prefer"
	NumberOfPosts   t.Field = "Number Of Posts"
	CompetitionDate t.Field = "Competition Date"
	SocialSite      t.Field = "Social Site"
	Status          t.Field = "Status"
	Planned1        t.Field = "Planned 1"
	Actual1         t.Field = "Actual 1"
	Planned2        t.Field = "Planned 2"
	Actual2         t.Field = "Actual 2"
	Planned3        t.Field = "Planned 3"
	Actual3         t.Field = "Actual 3"
)

// Master list fields.
const (
	MasterDepartment  t.Field = "Department"
	MasterPost        t.Field = "Post"
	MasterDesignation t.Field = "Designation"
)

// Enquiry (candidate response) fields.
const (
	CandidateName   t.Field = "Candidate Name"
	CandidatePhone  t.Field = "Phone"
	CandidateEmail  t.Field = "Email"
	ApplyingFor     t.Field = "Applying For"
	EnquiryIndent   t.Field = "Indent Number"
	EnquiryStatus   t.Field = "Status"
	CallPlanned     t.Field = "Call Planned"
	CallActual      t.Field = "Call Actual"
	InterviewPlan   t.Field = "Interview Planned"
	InterviewActual t.Field = "Interview Actual"
)

// Joining register fields.
const (
	EmployeeID       t.Field = "Employee ID"
	JoinerName       t.Field = "Name"
	JoinerPhone      t.Field = "Phone"
	JoinerEmail      t.Field = "Email"
	Designation      t.Field = "Designation"
	JoinerDepartment t.Field = "Department"
	DateOfJoining    t.Field = "Date Of Joining"
	JoiningPlanned   t.Field = "Joining Planned"
	JoiningActual    t.Field = "Joining Actual"
	FirstCheck       t.Field = "Status 1"
	SecondCheck      t.Field = "Status 2"
)

// Leaving register fields.
const (
	LeaverID      t.Field = "Employee ID"
	LeaverName    t.Field = "Name"
	DateOfLeaving t.Field = "Date Of Leaving"
	Reason        t.Field = "Reason"
	ExitPlanned   t.Field = "Exit Planned"
	ExitActual    t.Field = "Exit Actual"
)

// Default returns the schemas of the HR console sheets. Fallback columns
// follow the published sheet layouts and are only used when a header label
// has been renamed. Bare "Planned"/"Actual" aliases come last because they
// also match step-prefixed labels such as "Interview Planned".
func Default() *Registry {
	return NewRegistry(
		Schema{
			Name: FMS,
			Header: t.HeaderRule{
				Sentinels:   []string{"Indent No", "Indent Number"},
				FallbackRow: 5,
			},
			Fields: []t.FieldSpec{
				t.Spec(Timestamp, "Timestamp").At(0),
				t.Spec(IndentNumber, "Indent No", "Indent Number").At(1),
				t.Spec(Post, "Post").At(2),
				t.Spec(Gender, "Gender").At(3),
				t.Spec(Department, "Department").At(4),
				t.Spec(Prefer, "Prefer").At(5),
				t.Spec(NumberOfPosts, "Number Of Posts", "No. of Post").At(6),
				t.Spec(CompetitionDate, "Competition Date", "Completion Date").At(7),
				t.Spec(SocialSite, "Social Site").At(8),
				t.Spec(Status, "Position Status", "Status").At(9),
				t.Spec(Planned1, "Planned 1", "Planned1").At(10),
				t.Spec(Actual1, "Actual 1", "Actual1").At(11),
				t.Spec(Planned2, "Planned 2", "Planned2").At(13),
				t.Spec(Actual2, "Actual 2", "Actual2").At(14),
				t.Spec(Planned3, "Planned 3", "Planned3").At(16),
				t.Spec(Actual3, "Actual 3", "Actual3").At(17),
			},
			KeyField: IndentNumber,
			Search:   []t.Field{IndentNumber, Post, Department},
			Steps: []Step{
				{Key: "indent-approval", Title: "Indent approval", Planned: Planned1, Actual: Actual1},
				{Key: "social-site", Title: "Post on social sites", Planned: Planned2, Actual: Actual2},
				{Key: "find-enquiry", Title: "Find enquiry", Planned: Planned3, Actual: Actual3},
			},
		},
		Schema{
			Name:   Master,
			Header: t.HeaderRule{Sentinels: []string{"Department", "Designation"}, FallbackRow: 0},
			Fields: []t.FieldSpec{
				t.Spec(MasterDepartment, "Department").At(0),
				t.Spec(MasterPost, "Post").At(1),
				t.Spec(MasterDesignation, "Designation").At(2),
			},
		},
		Schema{
			Name:   Enquiry,
			Header: t.HeaderRule{Sentinels: []string{"Candidate Name", "Indent Number", "Indent No"}, FallbackRow: 0},
			Fields: []t.FieldSpec{
				t.Spec(Timestamp, "Timestamp").At(0),
				t.Spec(EnquiryIndent, "Indent Number", "Indent No").At(1),
				t.Spec(CandidateName, "Candidate Name", "Name").At(2),
				t.Spec(CandidatePhone, "Phone", "Mobile", "Contact").At(3),
				t.Spec(CandidateEmail, "Email", "Mail").At(4),
				t.Spec(ApplyingFor, "Applying For", "Post").At(5),
				t.Spec(EnquiryStatus, "Candidate Status", "Status").At(6),
				t.Spec(CallPlanned, "Call Planned", "Planned").At(7),
				t.Spec(CallActual, "Call Actual", "Actual").At(8),
				t.Spec(InterviewPlan, "Interview Planned", "Planned 1").At(10),
				t.Spec(InterviewActual, "Interview Actual", "Actual 1").At(11),
			},
			KeyField: CandidateName,
			Search:   []t.Field{CandidateName, CandidatePhone, CandidateEmail, EnquiryIndent},
			Steps: []Step{
				{Key: "call-tracker", Title: "Call tracker", Planned: CallPlanned, Actual: CallActual},
				{Key: "interview", Title: "Interview", Planned: InterviewPlan, Actual: InterviewActual},
			},
		},
		Schema{
			Name:   Joining,
			Header: t.HeaderRule{Sentinels: []string{"Employee ID", "Date Of Joining"}, FallbackRow: 5},
			Fields: []t.FieldSpec{
				t.Spec(EmployeeID, "Employee ID", "Emp ID").At(1),
				t.Spec(JoinerName, "Name As Per Aadhar", "Candidate Name", "Name").At(2),
				t.Spec(JoinerPhone, "Mobile", "Phone").At(3),
				t.Spec(JoinerEmail, "Email").At(4),
				t.Spec(Designation, "Designation").At(5),
				t.Spec(JoinerDepartment, "Department").At(6),
				t.Spec(DateOfJoining, "Date Of Joining").At(7),
				t.Spec(JoiningPlanned, "Joining Planned", "Planned").At(8),
				t.Spec(JoiningActual, "Joining Actual", "Actual").At(9),
				t.Spec(FirstCheck, "Status 1", "Joining Status").At(11),
				t.Spec(SecondCheck, "Status 2", "After Joining Status").At(12),
			},
			KeyField: JoinerName,
			Search:   []t.Field{EmployeeID, JoinerName, Designation, JoinerDepartment},
			Steps: []Step{
				{Key: "joining", Title: "Joining formalities", Planned: JoiningPlanned, Actual: JoiningActual},
				{Key: "after-joining", Title: "After joining checks", Planned: FirstCheck, Actual: SecondCheck},
			},
		},
		Schema{
			Name:   Leaving,
			Header: t.HeaderRule{Sentinels: []string{"Date Of Leaving"}, FallbackRow: 5},
			Fields: []t.FieldSpec{
				t.Spec(LeaverID, "Employee ID", "Emp ID").At(1),
				t.Spec(LeaverName, "Name").At(2),
				t.Spec(DateOfLeaving, "Date Of Leaving").At(3),
				t.Spec(Reason, "Reason").At(4),
				t.Spec(ExitPlanned, "Exit Planned", "Planned").At(5),
				t.Spec(ExitActual, "Exit Actual", "Actual").At(6),
			},
			KeyField: LeaverName,
			Search:   []t.Field{LeaverID, LeaverName},
			Steps: []Step{
				{Key: "exit", Title: "Exit formalities", Planned: ExitPlanned, Actual: ExitActual},
			},
		},
	)
}
