package source

import (
	"context"
	"errors"
	"strings"

	"hrconsole/internal/tabular"
)

// Envelope is the row source's response for one sheet.
type Envelope struct {
	Success bool             `json:"success"`
	Data    tabular.RawTable `json:"data"`
	Error   string           `json:"error,omitempty"`
}

// Source returns the rows of a logical sheet by name.
type Source interface {
	FetchSheet(ctx context.Context, name string) (Envelope, error)
}

// knownErrors are messages the spreadsheet service puts in an envelope
// (or a bare body) instead of data.
var knownErrors = []string{
	"sheet not found",
	"exception:",
	"typeerror",
	"cannot read properties",
	"script function not found",
}

// Validate turns a decoded envelope into a table, or a malformed-response
// error when the envelope carries no usable data.
func Validate(sheet string, env Envelope) (tabular.RawTable, error) {
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "success=false"
		}
		return nil, malformedError(sheet, errors.New(msg))
	}
	if env.Error != "" && isKnownError(env.Error) {
		return nil, malformedError(sheet, errors.New(env.Error))
	}
	if env.Data == nil {
		return tabular.RawTable{}, nil
	}
	return env.Data, nil
}

func isKnownError(msg string) bool {
	msg = strings.ToLower(msg)
	for _, k := range knownErrors {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}

// Fetch fetches and validates one sheet.
func Fetch(ctx context.Context, src Source, name string) (tabular.RawTable, error) {
	env, err := src.FetchSheet(ctx, name)
	if err != nil {
		return nil, err
	}
	return Validate(name, env)
}
