package chain

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/alphabill-org/hashchain/types"
)

func verifyLinks(blocks []*types.Block) error {
	var prev *types.Block
	for i, b := range blocks {
		if err := types.ValidateSuccessor(prev, b); err != nil {
			return &InvariantViolation{Index: i, Err: err}
		}
		prev = b
	}
	return nil
}

func verifyHashes(ctx context.Context, blocks []*types.Block) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, b := range blocks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := b.Verify(); err != nil {
				return fmt.Errorf("verifying block %d: %w", b.Index, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
