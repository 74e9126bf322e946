package codec

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/alphabill-org/hashchain/types"
)

/*
Wire form of the data structures. All fields are pointers so that decoder can
tell missing field apart from zero value.
*/
type (
	blockWire struct {
		Index        *uint32    `json:"index"`
		Timestamp    *uint64    `json:"timestamp"`
		Data         *string    `json:"data"`
		PreviousHash *string    `json:"previous_hash"`
		Hash         *string    `json:"hash"`
		Transactions *[]*txWire `json:"transactions"`
	}

	txWire struct {
		Inputs   *[]*txInWire  `json:"inputs"`
		Outputs  *[]*txOutWire `json:"outputs"`
		TxID     *string       `json:"txid"`
		Amount   *uint64       `json:"amount"`
		Sender   *string       `json:"sender"`
		Receiver *string       `json:"receiver"`
	}

	txInWire struct {
		PrevTxID  *string `json:"prev_txid"`
		Out       *uint64 `json:"out"`
		Signature *string `json:"signature"`
	}

	txOutWire struct {
		PublicAddress *string `json:"public_address"`
		Satoshis      *uint64 `json:"satoshis"`
	}
)

/*
checkEncodable returns error when the block can't be encoded so that decoding
the result gives back identical block. Records must not be nil and strings
must be valid UTF-8.
*/
func checkEncodable(b *types.Block) error {
	if b == nil {
		return types.ErrBlockIsNil
	}
	if err := errors.Join(
		checkString("data", b.Data),
		checkString("previous_hash", b.PreviousHash),
		checkString("hash", b.Hash),
	); err != nil {
		return err
	}
	for i, tx := range b.Transactions {
		if err := checkTransaction(tx); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return nil
}

func checkTransaction(tx *types.Transaction) error {
	if tx == nil {
		return types.ErrTransactionIsNil
	}
	for i, in := range tx.Inputs {
		if in == nil {
			return fmt.Errorf("input %d is nil", i)
		}
		if err := errors.Join(checkString("prev_txid", in.PrevTxID), checkString("signature", in.Signature)); err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
	}
	for i, out := range tx.Outputs {
		if out == nil {
			return fmt.Errorf("output %d is nil", i)
		}
		if err := checkString("public_address", out.PublicAddress); err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
	}
	return errors.Join(
		checkString("txid", tx.TxID),
		checkString("sender", tx.Sender),
		checkString("receiver", tx.Receiver),
	)
}

func checkString(field, s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%s: %w", field, ErrInvalidUTF8)
	}
	return nil
}

func toBlockWire(b *types.Block) (*blockWire, error) {
	if err := checkEncodable(b); err != nil {
		return nil, err
	}
	txs := make([]*txWire, len(b.Transactions))
	for i, tx := range b.Transactions {
		txs[i] = toTxWire(tx)
	}
	return &blockWire{
		Index:        &b.Index,
		Timestamp:    &b.Timestamp,
		Data:         &b.Data,
		PreviousHash: &b.PreviousHash,
		Hash:         &b.Hash,
		Transactions: &txs,
	}, nil
}

func toTxWire(tx *types.Transaction) *txWire {
	inputs := make([]*txInWire, len(tx.Inputs))
	for i, in := range tx.Inputs {
		inputs[i] = &txInWire{PrevTxID: &in.PrevTxID, Out: &in.Out, Signature: &in.Signature}
	}
	outputs := make([]*txOutWire, len(tx.Outputs))
	for i, out := range tx.Outputs {
		outputs[i] = &txOutWire{PublicAddress: &out.PublicAddress, Satoshis: &out.Satoshis}
	}
	return &txWire{
		Inputs:   &inputs,
		Outputs:  &outputs,
		TxID:     &tx.TxID,
		Amount:   &tx.Amount,
		Sender:   &tx.Sender,
		Receiver: &tx.Receiver,
	}
}

/*
fieldReader copies required fields out of wire structs recording the path of
the first missing one.
*/
type fieldReader struct {
	path string
	err  error
}

func (r *fieldReader) fail(field string, err error) {
	if r.err == nil {
		r.err = &ParseError{Field: r.path + field, Err: err}
	}
}

func req[T any](r *fieldReader, field string, v *T) T {
	if v == nil {
		r.fail(field, errMissingField)
		var zero T
		return zero
	}
	return *v
}

func (bw *blockWire) toBlock(r *fieldReader) *types.Block {
	if bw == nil {
		r.fail("", errNullElement)
		return nil
	}
	b := &types.Block{
		Index:        req(r, "index", bw.Index),
		Timestamp:    req(r, "timestamp", bw.Timestamp),
		Data:         req(r, "data", bw.Data),
		PreviousHash: req(r, "previous_hash", bw.PreviousHash),
		Hash:         req(r, "hash", bw.Hash),
	}
	txs := req(r, "transactions", bw.Transactions)
	b.Transactions = make([]*types.Transaction, len(txs))
	path := r.path
	for i, tw := range txs {
		r.path = fmt.Sprintf("%stransactions[%d]", path, i)
		if tw == nil {
			r.fail("", errNullElement)
			break
		}
		r.path += "."
		b.Transactions[i] = tw.toTransaction(r)
	}
	r.path = path
	return b
}

func (tw *txWire) toTransaction(r *fieldReader) *types.Transaction {
	tx := &types.Transaction{
		TxID:     req(r, "txid", tw.TxID),
		Amount:   req(r, "amount", tw.Amount),
		Sender:   req(r, "sender", tw.Sender),
		Receiver: req(r, "receiver", tw.Receiver),
	}
	path := r.path
	inputs := req(r, "inputs", tw.Inputs)
	tx.Inputs = make([]*types.TxIn, len(inputs))
	for i, in := range inputs {
		r.path = fmt.Sprintf("%sinputs[%d]", path, i)
		if in == nil {
			r.fail("", errNullElement)
			break
		}
		r.path += "."
		tx.Inputs[i] = &types.TxIn{
			PrevTxID:  req(r, "prev_txid", in.PrevTxID),
			Out:       req(r, "out", in.Out),
			Signature: req(r, "signature", in.Signature),
		}
	}
	r.path = path
	outputs := req(r, "outputs", tw.Outputs)
	tx.Outputs = make([]*types.TxOut, len(outputs))
	for i, out := range outputs {
		r.path = fmt.Sprintf("%soutputs[%d]", path, i)
		if out == nil {
			r.fail("", errNullElement)
			break
		}
		r.path += "."
		tx.Outputs[i] = &types.TxOut{
			PublicAddress: req(r, "public_address", out.PublicAddress),
			Satoshis:      req(r, "satoshis", out.Satoshis),
		}
	}
	r.path = path
	return tx
}
