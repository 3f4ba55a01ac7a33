package source

import (
	"errors"
	"fmt"
)

// ErrTransport indicates a network or HTTP-level failure for one sheet.
var ErrTransport = errors.New("sheet transport failed")

// ErrMalformedResponse indicates a response that is not a usable envelope:
// HTML, non-JSON, success=false or a known error message.
var ErrMalformedResponse = errors.New("malformed sheet response")

// SheetError is a fetch failure for one logical sheet.
type SheetError struct {
	Sheet string
	Kind  error // ErrTransport or ErrMalformedResponse
	Err   error
}

func (e *SheetError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Kind)
	}
	return fmt.Sprintf("sheet %q: %v: %v", e.Sheet, e.Kind, e.Err)
}

// Is lets errors.Is match the kind sentinel.
func (e *SheetError) Is(target error) bool {
	return target == e.Kind
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

func transportError(sheet string, err error) *SheetError {
	return &SheetError{Sheet: sheet, Kind: ErrTransport, Err: err}
}

func malformedError(sheet string, err error) *SheetError {
	return &SheetError{Sheet: sheet, Kind: ErrMalformedResponse, Err: err}
}
