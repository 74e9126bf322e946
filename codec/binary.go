package codec

import (
	"bytes"
	"fmt"

	"github.com/alphabill-org/hashchain/types"
)

/*
MarshalBinary returns deterministic CBOR encoding of the block. Structs are
encoded as arrays so the encoding is compact and does not carry field names.
*/
func MarshalBinary(b *types.Block) ([]byte, error) {
	if err := checkEncodable(b); err != nil {
		return nil, err
	}
	return types.Cbor.Marshal(b)
}

// UnmarshalBinary decodes block encoded by MarshalBinary. On failure *ParseError is returned.
func UnmarshalBinary(data []byte) (*types.Block, error) {
	if len(data) == 0 {
		return nil, &ParseError{Err: errEmptyInput}
	}
	var b *types.Block
	dec := types.Cbor.GetDecoder(bytes.NewReader(data))
	if err := dec.Decode(&b); err != nil {
		return nil, &ParseError{Err: err}
	}
	if n := dec.NumBytesRead(); n != len(data) {
		return nil, &ParseError{Offset: int64(n), Err: errTrailingData}
	}
	if b == nil {
		return nil, &ParseError{Err: errNullElement}
	}
	if field := findNullRecord(b); field != "" {
		return nil, &ParseError{Field: field, Err: errNullElement}
	}
	return b, nil
}

// findNullRecord returns path of the first nil transaction, input or output of the block.
func findNullRecord(b *types.Block) string {
	for i, tx := range b.Transactions {
		if tx == nil {
			return fmt.Sprintf("transactions[%d]", i)
		}
		for k, in := range tx.Inputs {
			if in == nil {
				return fmt.Sprintf("transactions[%d].inputs[%d]", i, k)
			}
		}
		for k, out := range tx.Outputs {
			if out == nil {
				return fmt.Sprintf("transactions[%d].outputs[%d]", i, k)
			}
		}
	}
	return ""
}
