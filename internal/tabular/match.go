package tabular

import "strings"

// MatchStrategy decides whether two records from different sheets describe
// the same person.
type MatchStrategy struct {
	Name  string
	Match func(a, b Record) bool
}

// MatchResult tells which strategy joined two records.
type MatchResult struct {
	Strategy string `json:"strategy"`
	Index    int    `json:"index"`
}

// phoneSuffixLen drops country codes such as +91.
const phoneSuffixLen = 10

// NameContains matches when either name contains the other (case-insensitive).
func NameContains(fa, fb Field) MatchStrategy {
	return MatchStrategy{
		Name: "name",
		Match: func(a, b Record) bool {
			na := strings.ToLower(Normalize(a.Get(fa)))
			nb := strings.ToLower(Normalize(b.Get(fb)))
			if na == "" || nb == "" {
				return false
			}
			return strings.Contains(na, nb) || strings.Contains(nb, na)
		},
	}
}

// PhoneDigits matches on the trailing digits of two phone numbers.
func PhoneDigits(fa, fb Field) MatchStrategy {
	return MatchStrategy{
		Name: "phone",
		Match: func(a, b Record) bool {
			da := phoneSuffix(a.Get(fa))
			db := phoneSuffix(b.Get(fb))
			return da != "" && da == db
		},
	}
}

// EmailEqual matches identical email addresses, ignoring case.
func EmailEqual(fa, fb Field) MatchStrategy {
	return MatchStrategy{
		Name: "email",
		Match: func(a, b Record) bool {
			ea := strings.TrimSpace(a.Get(fa))
			eb := strings.TrimSpace(b.Get(fb))
			return ea != "" && strings.EqualFold(ea, eb)
		},
	}
}

// FindMatch returns the first candidate joined to target. Strategies run in
// priority order and each one scans all candidates before the next strategy
// is tried; within a strategy the first candidate wins.
func FindMatch(target Record, candidates []Record, strategies []MatchStrategy) (Record, MatchResult, bool) {
	for _, s := range strategies {
		for i, c := range candidates {
			if s.Match(target, c) {
				return c, MatchResult{Strategy: s.Name, Index: i}, true
			}
		}
	}
	return nil, MatchResult{Index: -1}, false
}

func phoneSuffix(s string) string {
	d := Digits(s)
	if len(d) > phoneSuffixLen {
		d = d[len(d)-phoneSuffixLen:]
	}
	return d
}
