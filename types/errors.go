package types

import "errors"

var (
	// ErrEnvironment is raised (as panic) when the host environment is
	// broken, ie the wall clock can not be read.
	ErrEnvironment = errors.New("environment failure")

	ErrHashMismatch = errors.New("block hash mismatch")
	ErrTxIDMismatch = errors.New("transaction id mismatch")

	ErrBlockIsNil       = errors.New("block is nil")
	ErrTransactionIsNil = errors.New("transaction is nil")
	ErrInvalidIndex     = errors.New("invalid block index")
	ErrInvalidLink      = errors.New("previous hash does not match the hash of the previous block")
)
