package cache

import (
	"fmt"
	"sort"
	"strings"
)

// RefreshError reports a fetch cycle in which every sheet failed. The
// previous snapshot is kept when this happens.
type RefreshError struct {
	Failures map[string]error
}

func (e *RefreshError) Error() string {
	names := make([]string, 0, len(e.Failures))
	for name := range e.Failures {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %v", name, e.Failures[name]))
	}
	return fmt.Sprintf("refresh failed for all %d sheets (%s)", len(names), strings.Join(parts, "; "))
}

// Unwrap exposes the per-sheet errors to errors.Is/As.
func (e *RefreshError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures))
	for _, err := range e.Failures {
		out = append(out, err)
	}
	return out
}
