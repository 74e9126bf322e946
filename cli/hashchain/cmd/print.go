package cmd

import (
	"github.com/alphabill-org/hashchain/types"
	"github.com/alphabill-org/hashchain/util"
)

const blockSeparator = "----------------------------------"

// printBlocks prints details of the blocks with an arrow between the consecutive blocks.
func printBlocks(blocks []*types.Block) {
	for i, b := range blocks {
		if i > 0 {
			consoleWriter.Println("    |\n    V")
		}
		printBlock(b)
	}
}

func printBlock(b *types.Block) {
	consoleWriter.Println(blockSeparator)
	consoleWriter.Printf("Block Index: %d\nTimestamp: %d\nPrevious Hash: %s\nHash: %s\n", b.Index, b.Timestamp, b.PreviousHash, b.Hash)
	for _, tx := range b.Transactions {
		consoleWriter.Printf("\nTransaction ID: %s\nAmount: %d sats\nSender: %s\nReceiver: %s\n", shortID(tx.TxID), tx.Amount, tx.Sender, tx.Receiver)
		consoleWriter.Println("Inputs:")
		for _, in := range tx.Inputs {
			consoleWriter.Printf("Previous TxID: %s\nOut Index: %d\nSignature: %s\n", shortID(in.PrevTxID), in.Out, util.Shorten(in.Signature))
		}
		consoleWriter.Println("Outputs:")
		for _, out := range tx.Outputs {
			consoleWriter.Printf("Address: %s\nAmount: %d sats\n", out.PublicAddress, out.Satoshis)
		}
		if total, err := tx.OutputTotal(); err != nil {
			consoleWriter.Printf("Outputs Total: %v\n", err)
		} else {
			consoleWriter.Printf("Outputs Total: %d sats\n", total)
		}
	}
	consoleWriter.Println(blockSeparator)
}

// shortID returns preview of the identifiers computed by util.Digest, other values are returned as is.
func shortID(s string) string {
	if util.IsDigest(s) {
		return util.Shorten(s)
	}
	return s
}
