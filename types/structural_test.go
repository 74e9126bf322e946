package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStructWriter_quote(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: `""`},
		{in: "Alice", want: `"Alice"`},
		{in: `a"b`, want: `"a\"b"`},
		{in: `a\b`, want: `"a\\b"`},
		{in: "a'b", want: `"a'b"`},
		{in: "line\nbreak\r\ttab", want: `"line\nbreak\r\ttab"`},
		{in: "nul\x00", want: `"nul\0"`},
		{in: "bell\x07", want: `"bell\u{7}"`},
		{in: "õun €", want: `"õun €"`},
		{in: "a\xffb", want: `"a\x{ff}b"`},
		{in: "\xe2\x82", want: `"\x{e2}\x{82}"`},
		{in: "\uFFFD", want: "\"\uFFFD\""},
	}
	for _, tc := range cases {
		w := &structWriter{}
		w.quote(tc.in)
		require.Equal(t, tc.want, w.String(), "input %q", tc.in)
	}
}

func TestStructuralForm(t *testing.T) {
	tx := NewTransaction(
		[]*TxIn{NewTxIn("p1", 0, "s1"), NewTxIn("p2", 7, "s2")},
		[]*TxOut{NewTxOut("addr", 50)},
		1000, "Alice", "Bob",
	)
	require.Equal(t,
		`[TxIn { prev_txid: "p1", out: 0, signature: "s1" }, TxIn { prev_txid: "p2", out: 7, signature: "s2" }][TxOut { public_address: "addr", satoshis: 50 }]1000AliceBob`,
		tx.canonical())

	w := &structWriter{}
	writeList(w, []*Transaction{tx, nil}, writeTransaction)
	require.Equal(t,
		`[Transaction { inputs: [TxIn { prev_txid: "p1", out: 0, signature: "s1" }, TxIn { prev_txid: "p2", out: 7, signature: "s2" }], outputs: [TxOut { public_address: "addr", satoshis: 50 }], txid: "`+tx.TxID+`", amount: 1000, sender: "Alice", receiver: "Bob" }, null]`,
		w.String())

	b := &Block{Index: 2, Timestamp: 7, Data: "data", PreviousHash: "prev"}
	require.Equal(t, "27dataprev[]", b.canonical())
}
