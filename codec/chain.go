package codec

import (
	"fmt"

	"github.com/alphabill-org/hashchain/chain"
)

// EncodeChain returns JSON array of all the blocks of the chain, first block first.
func EncodeChain(c *chain.Chain) (string, error) {
	blocks := make([]*blockWire, 0, c.Len())
	for i, b := range c.All() {
		w, err := toBlockWire(b)
		if err != nil {
			return "", fmt.Errorf("encoding block %d: %w", i, err)
		}
		blocks = append(blocks, w)
	}
	return marshalIndent(blocks)
}

/*
DecodeChain parses JSON array produced by EncodeChain and appends the blocks
to a new chain created with "opts". Malformed input is reported as
*ParseError, blocks which do not link up as *chain.InvariantViolation.
*/
func DecodeChain(text string, opts ...chain.Option) (*chain.Chain, error) {
	var ws *[]*blockWire
	if err := decodeJSON(text, &ws); err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, &ParseError{Err: errNullElement}
	}

	c, err := chain.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating chain: %w", err)
	}
	for i, w := range *ws {
		r := &fieldReader{path: fmt.Sprintf("[%d].", i)}
		if w == nil {
			r.path = r.path[:len(r.path)-1]
		}
		b := w.toBlock(r)
		if r.err != nil {
			return nil, r.err
		}
		if err := c.Append(b); err != nil {
			return nil, fmt.Errorf("appending block %d: %w", i, err)
		}
	}
	return c, nil
}
