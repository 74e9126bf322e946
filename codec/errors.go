package codec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrParse = errors.New("malformed block encoding")

	// ErrInvalidUTF8 is returned by encoders for strings which can't be encoded losslessly.
	ErrInvalidUTF8 = errors.New("string is not valid UTF-8")
)

/*
ParseError is returned when encoded block (or chain) can't be decoded.
errors.Is(err, ErrParse) is true for every ParseError, the underlying cause
(ie *json.SyntaxError) is available via errors.As.
*/
type ParseError struct {
	Field  string // path of the offending field, empty when not known
	Offset int64  // byte offset in the input, zero when not known
	Err    error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrParse.Error())
	if e.Field != "" {
		fmt.Fprintf(&sb, ": field %q", e.Field)
	}
	if e.Offset > 0 {
		fmt.Fprintf(&sb, " at offset %d", e.Offset)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

var (
	errEmptyInput   = errors.New("empty input")
	errTrailingData = errors.New("unexpected data after the encoded value")
	errMissingField = errors.New("required field is missing")
	errNullElement  = errors.New("element must not be null")
)
