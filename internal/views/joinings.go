package views

import (
	"hrconsole/internal/sheets"
	"hrconsole/internal/tabular"
)

// Joining is a joiner with the enquiry they came from, if any.
type Joining struct {
	Joiner    tabular.Record       `json:"joiner"`
	Candidate tabular.Record       `json:"candidate,omitempty"`
	Match     *tabular.MatchResult `json:"match,omitempty"`
}

// joiningStrategies link a joiner to an enquiry: name first, then phone,
// then email.
func joiningStrategies() []tabular.MatchStrategy {
	return []tabular.MatchStrategy{
		tabular.NameContains(sheets.JoinerName, sheets.CandidateName),
		tabular.PhoneDigits(sheets.JoinerPhone, sheets.CandidatePhone),
		tabular.EmailEqual(sheets.JoinerEmail, sheets.CandidateEmail),
	}
}

// CandidateJoinings joins every joiner to its enquiry record.
func (s *Service) CandidateJoinings() ([]Joining, error) {
	joiners, err := s.Records(sheets.Joining, "")
	if err != nil {
		return nil, err
	}
	candidates, err := s.Records(sheets.Enquiry, "")
	if err != nil {
		return nil, err
	}

	strategies := joiningStrategies()
	out := make([]Joining, 0, len(joiners))
	for _, j := range joiners {
		row := Joining{Joiner: j}
		if c, res, ok := tabular.FindMatch(j, candidates, strategies); ok {
			row.Candidate = c
			row.Match = &res
		}
		out = append(out, row)
	}
	return out, nil
}
