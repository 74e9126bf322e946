package chain

import (
	"fmt"

	"github.com/benbjohnson/clock"

	"github.com/alphabill-org/hashchain/types"
)

// SampleTransactions returns the three fixed transactions of the sample chain.
// Each call returns new values.
func SampleTransactions() [3]*types.Transaction {
	return [3]*types.Transaction{
		types.NewTransaction(
			[]*types.TxIn{types.NewTxIn("b1fea524fdd06e2ec2fdd4e4c1e14d4bdbfa1a0e7284c6e3b4d1dcb70758bd66", 0, "3045022100c6d470bb91d3f8008f8e27fa2b5c77b8022104d17b364f1021c82d7ea00ec8d7")},
			[]*types.TxOut{types.NewTxOut("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", 50)},
			1000,
			"Alice",
			"Bob",
		),
		types.NewTransaction(
			[]*types.TxIn{types.NewTxIn("b3c4b94d4a2f35e2a49b5b5baf6b303c47e1b2b02bfe06a28a41a014935b3d65", 1, "304402200d1966c7a60cf63f58a5ddfa6838a8725e6b0e7a8b320ae98e142c74b8b2447d")},
			[]*types.TxOut{types.NewTxOut("1BoatSLRHtKNngkdXEeobR76b53LETtpyT", 30)},
			2000,
			"Charlie",
			"Dave",
		),
		types.NewTransaction(
			[]*types.TxIn{types.NewTxIn("c1fea524fdd06e2ec2fdd4e4c1e14d4bdbfa1a0e7284c6e3b4d1dcb70758bd66", 0, "3045022100c6d470bb91d3f8008f8e27fa2b5c77b8022104d17b364f1021c82d7ea00ec8d7")},
			[]*types.TxOut{types.NewTxOut("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", 70)},
			1500,
			"Eve",
			"Frank",
		),
	}
}

/*
NewSampleChain builds the three block demonstration chain: "Genesis Block",
"Second Block" and "Third Block", each carrying one of the SampleTransactions.
Every block is constructed with the hash of the previously appended block and
appended right after construction. Timestamps are read from "clk".
*/
func NewSampleChain(clk clock.Clock, opts ...Option) (*Chain, error) {
	c, err := New(append(opts, WithClock(clk))...)
	if err != nil {
		return nil, err
	}
	txs := SampleTransactions()
	labels := [3]string{"Genesis Block", "Second Block", "Third Block"}

	prevHash := types.GenesisPreviousHash
	for i, label := range labels {
		b := types.NewBlockWithClock(clk, uint32(i), label, prevHash, []*types.Transaction{txs[i]})
		if err := c.Append(b); err != nil {
			return nil, fmt.Errorf("appending %q: %w", label, err)
		}
		prevHash = b.Hash
	}
	return c, nil
}
