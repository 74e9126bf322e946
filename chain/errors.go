package chain

import (
	"fmt"

	"github.com/alphabill-org/hashchain/types"
)

var (
	ErrBlockIsNil   = types.ErrBlockIsNil
	ErrInvalidIndex = types.ErrInvalidIndex
	ErrInvalidLink  = types.ErrInvalidLink
)

// InvariantViolation is returned when block can not be appended to the chain
// without breaking the linkage of the chain.
type InvariantViolation struct {
	Index int // position in the chain where the block was to be appended
	Err   error
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("chain invariant violation at position %d: %v", e.Index, e.Err)
}

func (e *InvariantViolation) Unwrap() error {
	return e.Err
}
