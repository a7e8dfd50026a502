package loader

import (
	"fmt"

	"cuelang.org/go/cue/token"
)

// Error codes for graph document loading.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeParse        = "PARSE_ERROR"
	ErrCodeMissingField = "MISSING_FIELD"
	ErrCodeBadKind      = "BAD_KIND"
	ErrCodeBadReference = "BAD_REFERENCE"
)

// LoadError is a structured loading failure with CUE position info when
// available.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func errf(code string, pos token.Pos, format string, args ...any) *LoadError {
	return &LoadError{Code: code, Message: fmt.Sprintf(format, args...), Pos: pos}
}
