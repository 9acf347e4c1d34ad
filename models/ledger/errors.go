package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrNotFound         = errors.New("not found")
	ErrChallengeExpired = errors.New("challenge expired")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrGenesisBlock     = errors.New("genesis block has no record")
)

// ValidationError describes one inconsistency found in the chain. It is
// returned as data by chain validation, never thrown.
type ValidationError struct {
	Height      uint64 `json:"height"`
	Description string `json:"description"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("block %d invalid: %s", v.Height, v.Description)
}
