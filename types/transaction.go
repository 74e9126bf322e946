package types

import (
	"fmt"
	"strconv"

	"github.com/alphabill-org/hashchain/util"
)

type (
	// Transaction is a content addressed payload record of a block.
	Transaction struct {
		_        struct{} `cbor:",toarray"`
		Inputs   []*TxIn  `json:"inputs"`
		Outputs  []*TxOut `json:"outputs"`
		TxID     string   `json:"txid"`
		Amount   uint64   `json:"amount"`
		Sender   string   `json:"sender"`
		Receiver string   `json:"receiver"`
	}

	// TxIn references an output of a previous transaction. The signature
	// authorizing the spend is opaque, it is never verified.
	TxIn struct {
		_         struct{} `cbor:",toarray"`
		PrevTxID  string   `json:"prev_txid"`
		Out       uint64   `json:"out"`
		Signature string   `json:"signature"`
	}

	TxOut struct {
		_             struct{} `cbor:",toarray"`
		PublicAddress string   `json:"public_address"`
		Satoshis      uint64   `json:"satoshis"`
	}
)

func NewTxIn(prevTxID string, out uint64, signature string) *TxIn {
	return &TxIn{PrevTxID: prevTxID, Out: out, Signature: signature}
}

func NewTxOut(publicAddress string, satoshis uint64) *TxOut {
	return &TxOut{PublicAddress: publicAddress, Satoshis: satoshis}
}

/*
NewTransaction creates transaction and assigns it's identifier. Arguments are
taken as given, there is no validation: amount may be zero, inputs and outputs
may be empty and so may be the sender and receiver labels.
*/
func NewTransaction(inputs []*TxIn, outputs []*TxOut, amount uint64, sender, receiver string) *Transaction {
	tx := &Transaction{
		Inputs:   inputs,
		Outputs:  outputs,
		Amount:   amount,
		Sender:   sender,
		Receiver: receiver,
	}
	tx.TxID = tx.CalculateTxID()
	return tx
}

/*
CalculateTxID returns the identifier of the transaction computed from it's
current field values. The stored TxID is not part of the hashed data.
*/
func (tx *Transaction) CalculateTxID() string {
	return util.Digest([]byte(tx.canonical()))
}

// canonical returns inputs and outputs in structural form followed by amount, sender and receiver.
func (tx *Transaction) canonical() string {
	w := &structWriter{}
	writeList(w, tx.Inputs, writeTxIn)
	writeList(w, tx.Outputs, writeTxOut)
	w.WriteString(strconv.FormatUint(tx.Amount, 10))
	w.WriteString(tx.Sender)
	w.WriteString(tx.Receiver)
	return w.String()
}

// VerifyTxID checks that the stored identifier matches the one computed from the fields.
func (tx *Transaction) VerifyTxID() error {
	if tx == nil {
		return ErrTransactionIsNil
	}
	if id := tx.CalculateTxID(); id != tx.TxID {
		return fmt.Errorf("%w: stored %q, computed %q", ErrTxIDMismatch, tx.TxID, id)
	}
	return nil
}

// OutputTotal returns sum of the output amounts.
func (tx *Transaction) OutputTotal() (uint64, error) {
	amounts := make([]uint64, 0, len(tx.Outputs))
	for _, out := range tx.Outputs {
		if out != nil {
			amounts = append(amounts, out.Satoshis)
		}
	}
	sum, _, err := util.AddUint64(amounts...)
	return sum, err
}

// Clone returns deep copy of the transaction.
func (tx *Transaction) Clone() *Transaction {
	if tx == nil {
		return nil
	}
	c := *tx
	if tx.Inputs != nil {
		c.Inputs = make([]*TxIn, len(tx.Inputs))
		for i, in := range tx.Inputs {
			if in != nil {
				cin := *in
				c.Inputs[i] = &cin
			}
		}
	}
	if tx.Outputs != nil {
		c.Outputs = make([]*TxOut, len(tx.Outputs))
		for i, out := range tx.Outputs {
			if out != nil {
				cout := *out
				c.Outputs[i] = &cout
			}
		}
	}
	return &c
}
