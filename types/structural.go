package types

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

/*
structWriter renders records in the structural text form which is part of the
canonical encoding hashed into transaction and block identifiers:

	TxIn { prev_txid: "ab01", out: 0, signature: "sig" }
	[TxOut { public_address: "addr", satoshis: 50 }, TxOut { ... }]

Record and field names, separators and string escaping must not change as
that would change every identifier computed.
*/
type structWriter struct {
	strings.Builder
}

func (w *structWriter) uint(n uint64) {
	w.WriteString(strconv.FormatUint(n, 10))
}

/*
quote writes s as double quoted string literal. Bytes which are not part of
valid UTF-8 sequence are written as \x{hex} so that distinct byte strings
never render the same.
*/
func (w *structWriter) quote(s string) {
	w.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			w.WriteString(`\x{`)
			w.WriteString(strconv.FormatUint(uint64(s[i]), 16))
			w.WriteByte('}')
			i++
			continue
		}
		i += size
		switch r {
		case '"':
			w.WriteString(`\"`)
		case '\\':
			w.WriteString(`\\`)
		case '\n':
			w.WriteString(`\n`)
		case '\r':
			w.WriteString(`\r`)
		case '\t':
			w.WriteString(`\t`)
		case 0:
			w.WriteString(`\0`)
		default:
			if unicode.IsPrint(r) {
				w.WriteRune(r)
			} else {
				w.WriteString(`\u{`)
				w.WriteString(strconv.FormatUint(uint64(r), 16))
				w.WriteByte('}')
			}
		}
	}
	w.WriteByte('"')
}

func writeList[T any](w *structWriter, items []T, write func(*structWriter, T)) {
	w.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			w.WriteString(", ")
		}
		write(w, item)
	}
	w.WriteByte(']')
}

func writeTxIn(w *structWriter, in *TxIn) {
	if in == nil {
		w.WriteString("null")
		return
	}
	w.WriteString("TxIn { prev_txid: ")
	w.quote(in.PrevTxID)
	w.WriteString(", out: ")
	w.uint(in.Out)
	w.WriteString(", signature: ")
	w.quote(in.Signature)
	w.WriteString(" }")
}

func writeTxOut(w *structWriter, out *TxOut) {
	if out == nil {
		w.WriteString("null")
		return
	}
	w.WriteString("TxOut { public_address: ")
	w.quote(out.PublicAddress)
	w.WriteString(", satoshis: ")
	w.uint(out.Satoshis)
	w.WriteString(" }")
}

func writeTransaction(w *structWriter, tx *Transaction) {
	if tx == nil {
		w.WriteString("null")
		return
	}
	w.WriteString("Transaction { inputs: ")
	writeList(w, tx.Inputs, writeTxIn)
	w.WriteString(", outputs: ")
	writeList(w, tx.Outputs, writeTxOut)
	w.WriteString(", txid: ")
	w.quote(tx.TxID)
	w.WriteString(", amount: ")
	w.uint(tx.Amount)
	w.WriteString(", sender: ")
	w.quote(tx.Sender)
	w.WriteString(", receiver: ")
	w.quote(tx.Receiver)
	w.WriteString(" }")
}
