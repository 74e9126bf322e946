package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alphabill-org/hashchain/types"
)

/*
Encode returns JSON text representation of the block, indented with two
spaces. Field names are index, timestamp, data, previous_hash, hash and
transactions. Nil slices are encoded as empty arrays.
*/
func Encode(b *types.Block) (string, error) {
	w, err := toBlockWire(b)
	if err != nil {
		return "", fmt.Errorf("encoding block: %w", err)
	}
	return marshalIndent(w)
}

/*
Decode parses block from the JSON text produced by Encode. Stored hashes are
taken as is, use VerifyDecoded to also check them.

Unknown fields are ignored, all the known fields are required. On failure
*ParseError is returned and no block.
*/
func Decode(text string) (*types.Block, error) {
	var w *blockWire
	if err := decodeJSON(text, &w); err != nil {
		return nil, err
	}
	r := &fieldReader{}
	b := w.toBlock(r)
	if r.err != nil {
		return nil, r.err
	}
	return b, nil
}

/*
VerifyDecoded decodes the block and checks that the stored block hash and
transaction identifiers match the content.
*/
func VerifyDecoded(text string) (*types.Block, error) {
	b, err := Decode(text)
	if err != nil {
		return nil, err
	}
	if err := b.Verify(); err != nil {
		return nil, fmt.Errorf("verifying decoded block: %w", err)
	}
	return b, nil
}

func marshalIndent(v any) (string, error) {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

/*
decodeJSON decodes single JSON value from text into v. Errors are converted
to *ParseError, input must not contain anything but whitespace after the value.
*/
func decodeJSON(text string, v any) error {
	dec := json.NewDecoder(strings.NewReader(text))
	if err := dec.Decode(v); err != nil {
		return toParseError(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return &ParseError{Offset: dec.InputOffset(), Err: errTrailingData}
	}
	return nil
}

func toParseError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return &ParseError{Err: errEmptyInput}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &ParseError{Err: err}
	case errors.As(err, &syntaxErr):
		return &ParseError{Offset: syntaxErr.Offset, Err: err}
	case errors.As(err, &typeErr):
		return &ParseError{Field: typeErr.Field, Offset: typeErr.Offset, Err: err}
	default:
		return &ParseError{Err: err}
	}
}
