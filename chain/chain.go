package chain

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alphabill-org/hashchain/logger"
	"github.com/alphabill-org/hashchain/types"
)

type (
	/*
	Chain is an append only sequence of hash linked blocks.

	Chain owns it's blocks: Append stores a copy of the block so later changes
	to the value passed in do not affect the chain. Blocks returned by the
	iterators and getters must be treated as read only.

	Append and NewBlock require exclusive access and are serialized by the
	chain, reads may run concurrently with each other and with writers.
	*/
	Chain struct {
		mu     sync.RWMutex
		blocks []*types.Block
		clock  clock.Clock
		log    *slog.Logger
		m      *metrics
	}

	Option func(*Chain) error
)

func WithLogger(log *slog.Logger) Option {
	return func(c *Chain) error {
		c.log = log
		return nil
	}
}

// WithClock sets the clock used to timestamp blocks created by NewBlock.
func WithClock(clk clock.Clock) Option {
	return func(c *Chain) error {
		c.clock = clk
		return nil
	}
}

// WithMetrics registers chain metrics with "reg".
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Chain) error {
		return c.m.register(reg)
	}
}

// New returns empty chain.
func New(opts ...Option) (*Chain, error) {
	c := &Chain{
		clock: clock.New(),
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		m:     newMetrics(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("applying chain option: %w", err)
		}
	}
	return c, nil
}

/*
Append adds the block to the end of the chain. Block must have index equal to
the current length of the chain and it's previous hash must equal to the hash
of the current last block (or types.GenesisPreviousHash when the chain is
empty), otherwise InvariantViolation is returned and the chain is not changed.

The block's own hash is not recomputed, use Verify for that.
*/
func (c *Chain) Append(b *types.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.append(b)
}

// append must be called with write lock held.
func (c *Chain) append(b *types.Block) error {
	if err := types.ValidateSuccessor(c.last(), b); err != nil {
		iv := &InvariantViolation{Index: len(c.blocks), Err: err}
		c.m.rejected.Inc()
		c.log.Warn("block rejected", logger.Index(uint64(len(c.blocks))), logger.Error(iv))
		return iv
	}
	c.blocks = append(c.blocks, b.Clone())
	c.m.appended.Inc()
	c.m.height.Set(float64(len(c.blocks)))
	c.log.Debug("block appended", logger.Index(uint64(b.Index)), logger.Hash(b.Hash))
	return nil
}

/*
NewBlock creates the next block of the chain with given data and transactions
and appends it. Index and previous hash are taken from the current last block
so the block is always consistent with the chain.
*/
func (c *Chain) NewBlock(data string, transactions []*types.Transaction) (*types.Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	index, prevHash := uint32(0), types.GenesisPreviousHash
	if last := c.last(); last != nil {
		index, prevHash = last.Index+1, last.Hash
	}
	b := types.NewBlockWithClock(c.clock, index, data, prevHash, transactions)
	if err := c.append(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Len returns number of blocks in the chain.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// Last returns the last block of the chain or nil when the chain is empty.
func (c *Chain) Last() *types.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last()
}

func (c *Chain) last() *types.Block {
	if len(c.blocks) == 0 {
		return nil
	}
	return c.blocks[len(c.blocks)-1]
}

// Block returns block with given index, ok is false when there is no such block.
func (c *Chain) Block(index int) (b *types.Block, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 || index >= len(c.blocks) {
		return nil, false
	}
	return c.blocks[index], true
}

/*
All returns iterator over the blocks of the chain in index order, first to
last. Each call of the iterator starts from the first block. Blocks appended
while the iteration is in progress are not visited.
*/
func (c *Chain) All() iter.Seq2[int, *types.Block] {
	return func(yield func(int, *types.Block) bool) {
		for i, b := range c.prefix() {
			if !yield(i, b) {
				return
			}
		}
	}
}

// Blocks is like All but yields only blocks.
func (c *Chain) Blocks() iter.Seq[*types.Block] {
	return func(yield func(*types.Block) bool) {
		for _, b := range c.prefix() {
			if !yield(b) {
				return
			}
		}
	}
}

// prefix returns the current blocks. Appended blocks are never modified so
// the returned slice may be read without holding the lock.
func (c *Chain) prefix() []*types.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.blocks[:len(c.blocks):len(c.blocks)]
}

// Snapshot returns deep copies of all the blocks of the chain.
func (c *Chain) Snapshot() []*types.Block {
	blocks := c.prefix()
	res := make([]*types.Block, len(blocks))
	for i, b := range blocks {
		res[i] = b.Clone()
	}
	return res
}

/*
Verify recomputes hashes of all the blocks and transactions of the chain and
checks the links between blocks. Blocks are hashed concurrently.
*/
func (c *Chain) Verify(ctx context.Context) error {
	blocks := c.prefix()
	if err := verifyLinks(blocks); err != nil {
		return err
	}
	return verifyHashes(ctx, blocks)
}
