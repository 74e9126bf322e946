package codec

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/alphabill-org/hashchain/chain"
	test "github.com/alphabill-org/hashchain/testutils"
	"github.com/alphabill-org/hashchain/types"
)

func sampleChain(t *testing.T) *chain.Chain {
	t.Helper()
	clk := clock.NewMock()
	clk.Set(time.Unix(1700000000, 0))
	c, err := chain.NewSampleChain(clk)
	require.NoError(t, err)
	return c
}

func sampleBlock(t *testing.T, idx int) *types.Block {
	t.Helper()
	b, ok := sampleChain(t).Block(idx)
	require.True(t, ok)
	return b
}

/*
mutateJSON decodes "text" into generic map, calls "f" with it and returns
the re-encoded result.
*/
func mutateJSON(t *testing.T, text string, f func(m map[string]any)) string {
	t.Helper()
	m := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(text), &m))
	f(m)
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return string(b)
}

func decodeArray(t *testing.T, text string) []any {
	t.Helper()
	var a []any
	require.NoError(t, json.Unmarshal([]byte(text), &a))
	return a
}

func encodeArray(t *testing.T, a []any) string {
	t.Helper()
	b, err := json.Marshal(a)
	require.NoError(t, err)
	return string(b)
}

func firstTx(m map[string]any) map[string]any {
	return m["transactions"].([]any)[0].(map[string]any)
}

func TestEncode(t *testing.T) {
	t.Run("empty block", func(t *testing.T) {
		clk := clock.NewMock()
		clk.Set(time.Unix(1700000000, 0))
		b := types.NewBlockWithClock(clk, 0, "", types.GenesisPreviousHash, nil)
		text, err := Encode(b)
		require.NoError(t, err)
		require.Equal(t, `{
  "index": 0,
  "timestamp": 1700000000,
  "data": "",
  "previous_hash": "0",
  "hash": "c12e8223b2106f6a2c50502da296aeaf3eabb3bd5a70f9b04de953727e0ce3cc",
  "transactions": []
}`, text)
	})

	t.Run("sample block", func(t *testing.T) {
		text, err := Encode(sampleBlock(t, 0))
		require.NoError(t, err)
		require.Equal(t, `{
  "index": 0,
  "timestamp": 1700000000,
  "data": "Genesis Block",
  "previous_hash": "0",
  "hash": "6f9651ec2594e122131ea7628e1b7ea71597468db12eef11b528d4ef74becea8",
  "transactions": [
    {
      "inputs": [
        {
          "prev_txid": "b1fea524fdd06e2ec2fdd4e4c1e14d4bdbfa1a0e7284c6e3b4d1dcb70758bd66",
          "out": 0,
          "signature": "3045022100c6d470bb91d3f8008f8e27fa2b5c77b8022104d17b364f1021c82d7ea00ec8d7"
        }
      ],
      "outputs": [
        {
          "public_address": "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
          "satoshis": 50
        }
      ],
      "txid": "9031676abf4e3f4a8ea849eb35d6cebed890cf0f6b7bc11244a75d10beb3ccc8",
      "amount": 1000,
      "sender": "Alice",
      "receiver": "Bob"
    }
  ]
}`, text)
	})

	t.Run("nil block", func(t *testing.T) {
		text, err := Encode(nil)
		require.ErrorIs(t, err, types.ErrBlockIsNil)
		require.Empty(t, text)
	})

	t.Run("nil transaction", func(t *testing.T) {
		b := sampleBlock(t, 0)
		b.Transactions = append(b.Transactions, nil)
		_, err := Encode(b)
		require.ErrorIs(t, err, types.ErrTransactionIsNil)
		require.ErrorContains(t, err, "transaction 1")
	})

	t.Run("nil input", func(t *testing.T) {
		b := sampleBlock(t, 0)
		b.Transactions[0].Inputs[0] = nil
		_, err := Encode(b)
		require.EqualError(t, err, "encoding block: transaction 0: input 0 is nil")
	})

	t.Run("nil output", func(t *testing.T) {
		b := sampleBlock(t, 0)
		b.Transactions[0].Outputs[0] = nil
		_, err := Encode(b)
		require.EqualError(t, err, "encoding block: transaction 0: output 0 is nil")
	})
}

func TestEncode_invalidUTF8(t *testing.T) {
	// encoding/json would silently replace invalid bytes with U+FFFD
	var testCases = []struct {
		name   string
		mutate func(b *types.Block)
		errMsg string
	}{
		{name: "data", mutate: func(b *types.Block) { b.Data = "d\xff" }, errMsg: "encoding block: data: string is not valid UTF-8"},
		{name: "previous hash", mutate: func(b *types.Block) { b.PreviousHash = "\xfe" }, errMsg: "encoding block: previous_hash: string is not valid UTF-8"},
		{name: "sender", mutate: func(b *types.Block) { b.Transactions[0].Sender = "A\xc3" }, errMsg: "encoding block: transaction 0: sender: string is not valid UTF-8"},
		{name: "prev txid", mutate: func(b *types.Block) { b.Transactions[0].Inputs[0].PrevTxID = "\x80" }, errMsg: "encoding block: transaction 0: input 0: prev_txid: string is not valid UTF-8"},
		{name: "public address", mutate: func(b *types.Block) { b.Transactions[0].Outputs[0].PublicAddress = "1A\xff" }, errMsg: "encoding block: transaction 0: output 0: public_address: string is not valid UTF-8"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := sampleBlock(t, 0)
			tc.mutate(b)
			text, err := Encode(b)
			require.ErrorIs(t, err, ErrInvalidUTF8)
			require.EqualError(t, err, tc.errMsg)
			require.Empty(t, text)
		})
	}

	t.Run("valid multibyte strings round trip", func(t *testing.T) {
		clk := clock.NewMock()
		tx := types.NewTransaction([]*types.TxIn{types.NewTxIn("€", 0, "签名")}, nil, 1, "Ålice", "Böb")
		b := types.NewBlockWithClock(clk, 0, "d\u00ff", types.GenesisPreviousHash, []*types.Transaction{tx})
		text, err := Encode(b)
		require.NoError(t, err)
		d, err := VerifyDecoded(text)
		require.NoError(t, err)
		require.Equal(t, b, d)
	})
}

func TestDecode_roundTrip(t *testing.T) {
	for b := range sampleChain(t).Blocks() {
		text, err := Encode(b)
		require.NoError(t, err)
		d, err := Decode(text)
		require.NoError(t, err)
		require.Equal(t, b, d)

		// encoding is stable
		text2, err := Encode(d)
		require.NoError(t, err)
		require.Equal(t, text, text2)
	}

	t.Run("escaped strings", func(t *testing.T) {
		clk := clock.NewMock()
		tx := types.NewTransaction(nil, nil, 0, "a\"b\\c\nd", "x'y\x00")
		b := types.NewBlockWithClock(clk, 0, "ünïcode\t", types.GenesisPreviousHash, []*types.Transaction{tx})
		text, err := Encode(b)
		require.NoError(t, err)
		d, err := VerifyDecoded(text)
		require.NoError(t, err)
		require.Equal(t, b, d)
	})
}

func TestDecode_concreteScenario(t *testing.T) {
	text, err := Encode(sampleBlock(t, 0))
	require.NoError(t, err)

	b, err := Decode(text)
	require.NoError(t, err)
	require.EqualValues(t, 0, b.Index)
	require.Equal(t, "Genesis Block", b.Data)
	require.Equal(t, types.GenesisPreviousHash, b.PreviousHash)
	require.Len(t, b.Transactions, 1)
	require.Equal(t, "Alice", b.Transactions[0].Sender)
	require.Equal(t, b.Hash, b.CalculateHash())
	require.Equal(t, b.Transactions[0].TxID, b.Transactions[0].CalculateTxID())
}

func TestDecode_storedHashNotRecomputed(t *testing.T) {
	text, err := Encode(sampleBlock(t, 1))
	require.NoError(t, err)
	text = mutateJSON(t, text, func(m map[string]any) {
		m["data"] = "Tampered Block"
		firstTx(m)["amount"] = 1
	})

	b, err := Decode(text)
	require.NoError(t, err)
	require.Equal(t, "07807c44b392a0c25572af724feeba26c00129472f3ecef5fbe0325843e4b43f", b.Hash)
	require.Equal(t, "3cd53c9da30cc85ffce6fad04ec73d88e35bdbc2c389b016bd1c8d52452bfdf1", b.Transactions[0].TxID)

	d, err := VerifyDecoded(text)
	require.ErrorIs(t, err, types.ErrHashMismatch)
	require.ErrorIs(t, err, types.ErrTxIDMismatch)
	require.Nil(t, d)
}

func TestDecode_unknownFieldsIgnored(t *testing.T) {
	org := sampleBlock(t, 2)
	text, err := Encode(org)
	require.NoError(t, err)
	text = mutateJSON(t, text, func(m map[string]any) {
		m["nonce"] = 42
		firstTx(m)["fee"] = "free"
	})

	b, err := Decode(text)
	require.NoError(t, err)
	require.Equal(t, org, b)
}

func TestDecode_malformed(t *testing.T) {
	valid, err := Encode(sampleBlock(t, 0))
	require.NoError(t, err)

	without := func(key string) string {
		return mutateJSON(t, valid, func(m map[string]any) { delete(m, key) })
	}

	var testCases = []struct {
		name   string
		text   string
		field  string
		errMsg string
	}{
		{name: "empty input", text: "", errMsg: "empty input"},
		{name: "whitespace only", text: " \n\t ", errMsg: "empty input"},
		{name: "not JSON", text: "garbage", errMsg: "invalid character"},
		{name: "truncated", text: valid[:len(valid)/2], errMsg: "unexpected EOF"},
		{name: "null", text: "null", errMsg: "element must not be null"},
		{name: "array", text: "[]", errMsg: "cannot unmarshal array"},
		{name: "trailing data", text: valid + "{}", errMsg: "unexpected data after the encoded value"},
		{name: "trailing garbage", text: valid + " x", errMsg: "unexpected data after the encoded value"},
		{name: "missing index", text: without("index"), field: "index", errMsg: "required field is missing"},
		{name: "missing timestamp", text: without("timestamp"), field: "timestamp", errMsg: "required field is missing"},
		{name: "missing data", text: without("data"), field: "data", errMsg: "required field is missing"},
		{name: "missing previous hash", text: without("previous_hash"), field: "previous_hash", errMsg: "required field is missing"},
		{name: "missing hash", text: without("hash"), field: "hash", errMsg: "required field is missing"},
		{name: "missing transactions", text: without("transactions"), field: "transactions", errMsg: "required field is missing"},
		{
			name:   "null transactions",
			text:   mutateJSON(t, valid, func(m map[string]any) { m["transactions"] = nil }),
			field:  "transactions",
			errMsg: "required field is missing",
		},
		{
			name:   "null transaction",
			text:   mutateJSON(t, valid, func(m map[string]any) { m["transactions"] = []any{nil} }),
			field:  "transactions[0]",
			errMsg: "element must not be null",
		},
		{
			name:   "missing txid",
			text:   mutateJSON(t, valid, func(m map[string]any) { delete(firstTx(m), "txid") }),
			field:  "transactions[0].txid",
			errMsg: "required field is missing",
		},
		{
			name: "missing input out",
			text: mutateJSON(t, valid, func(m map[string]any) {
				delete(firstTx(m)["inputs"].([]any)[0].(map[string]any), "out")
			}),
			field:  "transactions[0].inputs[0].out",
			errMsg: "required field is missing",
		},
		{
			name:   "null output",
			text:   mutateJSON(t, valid, func(m map[string]any) { firstTx(m)["outputs"] = []any{nil} }),
			field:  "transactions[0].outputs[0]",
			errMsg: "element must not be null",
		},
		{
			name:   "index of wrong type",
			text:   mutateJSON(t, valid, func(m map[string]any) { m["index"] = "zero" }),
			field:  "index",
			errMsg: "cannot unmarshal string",
		},
		{
			name:   "negative index",
			text:   mutateJSON(t, valid, func(m map[string]any) { m["index"] = -1 }),
			field:  "index",
			errMsg: "cannot unmarshal number -1",
		},
		{
			name:   "index out of range",
			text:   mutateJSON(t, valid, func(m map[string]any) { m["index"] = 1 << 32 }),
			field:  "index",
			errMsg: "cannot unmarshal number 4294967296",
		},
		{
			name:   "fractional amount",
			text:   mutateJSON(t, valid, func(m map[string]any) { firstTx(m)["amount"] = 1.5 }),
			field:  "transactions.amount",
			errMsg: "cannot unmarshal number 1.5",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Decode(tc.text)
			require.ErrorIs(t, err, ErrParse)
			require.ErrorContains(t, err, tc.errMsg)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			require.Equal(t, tc.field, pe.Field)
			require.Nil(t, b)
		})
	}
}

func TestParseError(t *testing.T) {
	require.EqualError(t, &ParseError{Err: errEmptyInput}, "malformed block encoding: empty input")
	require.EqualError(t, &ParseError{Field: "hash", Err: errMissingField}, `malformed block encoding: field "hash": required field is missing`)
	require.EqualError(t, &ParseError{Offset: 10, Err: errTrailingData}, "malformed block encoding at offset 10: unexpected data after the encoded value")

	_, err := Decode("{")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.True(t, strings.HasPrefix(err.Error(), ErrParse.Error()))
}

func TestDecode_randomBlocks(t *testing.T) {
	clk := clock.NewMock()
	for range 10 {
		clk.Add(time.Duration(test.RandomUint64()%1000) * time.Second)
		tx := types.NewTransaction(
			[]*types.TxIn{types.NewTxIn(test.RandomString(64), test.RandomUint64(), test.RandomString(70))},
			[]*types.TxOut{types.NewTxOut(test.RandomString(34), test.RandomUint64())},
			test.RandomUint64(), test.RandomString(5), test.RandomString(5))
		b := types.NewBlockWithClock(clk, uint32(test.RandomUint64()), test.RandomString(20), test.RandomString(64), []*types.Transaction{tx})

		text, err := Encode(b)
		require.NoError(t, err)
		d, err := VerifyDecoded(text)
		require.NoError(t, err)
		require.Equal(t, b, d)

		data, err := MarshalBinary(b)
		require.NoError(t, err)
		d, err = UnmarshalBinary(data)
		require.NoError(t, err)
		require.Equal(t, b, d)
	}
}

func TestDecode_fieldNameCase(t *testing.T) {
	// keys are matched case-insensitively, exact case is what Encode produces
	org := sampleBlock(t, 0)
	text, err := Encode(org)
	require.NoError(t, err)
	text = strings.Replace(text, `"index"`, `"INDEX"`, 1)
	text = strings.Replace(text, `"prev_txid"`, `"Prev_TxID"`, 1)

	b, err := VerifyDecoded(text)
	require.NoError(t, err)
	require.Equal(t, org, b)
}
