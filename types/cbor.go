package types

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Cbor is the CBOR handler used for binary encoding of the data structures.
// Encoding is deterministic (Core Deterministic Encoding, RFC 8949 section 4.2.1).
var Cbor = newCborHandler()

type cborHandler struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func newCborHandler() cborHandler {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
	return cborHandler{enc: enc, dec: dec}
}

func (c cborHandler) Marshal(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c cborHandler) Unmarshal(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}

func (c cborHandler) Encode(w io.Writer, v any) error {
	return c.enc.NewEncoder(w).Encode(v)
}

func (c cborHandler) Decode(r io.Reader, v any) error {
	return c.dec.NewDecoder(r).Decode(v)
}

func (c cborHandler) GetEncoder(w io.Writer) *cbor.Encoder {
	return c.enc.NewEncoder(w)
}

func (c cborHandler) GetDecoder(r io.Reader) *cbor.Decoder {
	return c.dec.NewDecoder(r)
}
