package tabular

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize trims a header label and collapses inner whitespace.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return whitespaceRe.ReplaceAllString(s, " ")
}

// CellString renders a raw cell as an opaque string. nil becomes "".
func CellString(c Cell) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// IsEmpty reports whether a value is blank after trimming.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ParseCount converts a quantity cell to an int. Thousands separators are
// stripped and a whole-number float ("3.0") is accepted; anything else is 0.
func ParseCount(s string) int {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0
	}
	return int(f)
}

// ContainsFold reports whether text contains sub, ignoring case.
func ContainsFold(text, sub string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(sub))
}

// Digits keeps only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
