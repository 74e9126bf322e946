package types

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/alphabill-org/hashchain/util"
)

// GenesisPreviousHash is the previous hash of the first block of a chain.
const GenesisPreviousHash = "0"

// Block is an ordered container of transactions linked to the previous block by it's hash.
type Block struct {
	_            struct{}       `cbor:",toarray"`
	Index        uint32         `json:"index"`
	Timestamp    uint64         `json:"timestamp"`
	Data         string         `json:"data"`
	PreviousHash string         `json:"previous_hash"`
	Hash         string         `json:"hash"`
	Transactions []*Transaction `json:"transactions"`
}

var wallClock = clock.New()

/*
NewBlock creates block with timestamp taken from the wall clock and assigns
it's hash. Arguments are not validated, consistency with a chain is checked
by the chain when the block is appended.
*/
func NewBlock(index uint32, data, previousHash string, transactions []*Transaction) *Block {
	return NewBlockWithClock(wallClock, index, data, previousHash, transactions)
}

/*
NewBlockWithClock is like NewBlock but reads the timestamp from "clk".

Panics (with error wrapping ErrEnvironment) when the clock reads time before
the unix epoch as the host environment is then considered to be broken.
*/
func NewBlockWithClock(clk clock.Clock, index uint32, data, previousHash string, transactions []*Transaction) *Block {
	now := clk.Now()
	if now.Before(time.Unix(0, 0)) {
		panic(fmt.Errorf("%w: wall clock reads %s which is before unix epoch", ErrEnvironment, now))
	}
	b := &Block{
		Index:        index,
		Timestamp:    uint64(now.Unix()),
		Data:         data,
		PreviousHash: previousHash,
		Transactions: transactions,
	}
	b.Hash = b.CalculateHash()
	return b
}

/*
CalculateHash returns hash of the block computed from index, timestamp, data,
previous hash and transactions. Transactions are hashed with their full
content (not only their identifiers). The stored Hash is not part of the
hashed data.
*/
func (b *Block) CalculateHash() string {
	return util.Digest([]byte(b.canonical()))
}

func (b *Block) canonical() string {
	w := &structWriter{}
	w.WriteString(strconv.FormatUint(uint64(b.Index), 10))
	w.WriteString(strconv.FormatUint(b.Timestamp, 10))
	w.WriteString(b.Data)
	w.WriteString(b.PreviousHash)
	writeList(w, b.Transactions, writeTransaction)
	return w.String()
}

// VerifyHash checks that the stored hash matches the one computed from the fields.
func (b *Block) VerifyHash() error {
	if b == nil {
		return ErrBlockIsNil
	}
	if h := b.CalculateHash(); h != b.Hash {
		return fmt.Errorf("%w: block %d stored %q, computed %q", ErrHashMismatch, b.Index, b.Hash, h)
	}
	return nil
}

// VerifyTransactions checks the identifiers of all the transactions in the block.
func (b *Block) VerifyTransactions() error {
	if b == nil {
		return ErrBlockIsNil
	}
	var errs []error
	for i, tx := range b.Transactions {
		if err := tx.VerifyTxID(); err != nil {
			errs = append(errs, fmt.Errorf("transaction %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Verify checks both the block hash and the identifiers of it's transactions.
func (b *Block) Verify() error {
	if b == nil {
		return ErrBlockIsNil
	}
	return errors.Join(b.VerifyHash(), b.VerifyTransactions())
}

/*
ValidateSuccessor checks that "next" could follow "prev" in a chain: index is
one greater than the index of "prev" and previous hash of "next" equals the
hash of "prev". When "prev" is nil "next" must be the first block of a chain.
*/
func ValidateSuccessor(prev, next *Block) error {
	if next == nil {
		return ErrBlockIsNil
	}
	wantIndex, wantHash := uint32(0), GenesisPreviousHash
	if prev != nil {
		wantIndex, wantHash = prev.Index+1, prev.Hash
	}
	if next.Index != wantIndex {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidIndex, wantIndex, next.Index)
	}
	if next.PreviousHash != wantHash {
		return fmt.Errorf("%w: expected %q, got %q", ErrInvalidLink, wantHash, next.PreviousHash)
	}
	return nil
}

// Clone returns deep copy of the block.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	c := *b
	if b.Transactions != nil {
		c.Transactions = make([]*Transaction, len(b.Transactions))
		for i, tx := range b.Transactions {
			c.Transactions[i] = tx.Clone()
		}
	}
	return &c
}
