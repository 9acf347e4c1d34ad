// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

// Package chain implements the in-memory ledger engine of the star registry.
// The chain owns the ordered block sequence; the only mutation it allows is
// appending one block at the tail, and that path is serialized by a mutex.
// Blocks are immutable once appended, so all read paths can run concurrently
// against a slice snapshot. The chain lives in process memory only; a restart
// loses everything but a freshly created genesis block.
package chain

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/edtadros/BND-Project1/models/ledger"
	"github.com/edtadros/BND-Project1/service/challenge"
)

// Chain is the ledger engine. It implements ledger.Chain.
type Chain struct {
	log    zerolog.Logger
	codec  ledger.Codec
	verify ledger.Verifier
	cfg    Config

	mu     sync.Mutex
	blocks []*ledger.Block
}

// New creates a registry chain and synchronously appends its genesis block, so
// a chain handed to callers always has at least height zero.
func New(log zerolog.Logger, codec ledger.Codec, verify ledger.Verifier, options ...func(*Config)) (*Chain, error) {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	c := Chain{
		log:    log.With().Str("component", "chain").Logger(),
		codec:  codec,
		verify: verify,
		cfg:    cfg,
	}

	payload, err := codec.Marshal(ledger.GenesisPayload())
	if err != nil {
		return nil, fmt.Errorf("could not encode genesis payload: %w", err)
	}
	_, err = c.Append(ledger.NewBlock(payload))
	if err != nil {
		return nil, fmt.Errorf("could not append genesis block: %w", err)
	}

	return &c, nil
}

// Height returns the height of the tail block.
func (c *Chain) Height() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return uint64(len(c.blocks) - 1)
}

// Append links the given block to the current tail, stamps and hashes it and
// pushes it onto the chain, taking ownership of it. The whole
// read-tail/link/push sequence holds the lock, so at most one append is in
// flight at a time and no two blocks can end up with the same height or
// previous hash.
//
// After the push, the whole chain is re-validated; a failure is reported to
// the caller even though the block is already part of the chain. This mirrors
// the original registry behavior: the chain is never rolled back, tampering is
// only ever detected.
func (c *Chain) Append(block *ledger.Block) (*ledger.Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.blocks) > 0 {
		block.PreviousHash = c.blocks[len(c.blocks)-1].Hash
	}
	block.Height = uint64(len(c.blocks))
	block.Timestamp = c.cfg.Now().Unix()
	block.Hash = block.ComputeHash()

	c.blocks = append(c.blocks, block)

	vErrs := validate(c.blocks)
	if len(vErrs) > 0 {
		var merr *multierror.Error
		for _, vErr := range vErrs {
			merr = multierror.Append(merr, vErr)
		}
		return block, fmt.Errorf("chain inconsistent after append: %w", merr)
	}

	c.log.Debug().
		Uint64("height", block.Height).
		Str("hash", block.Hash).
		Msg("block appended")

	return block, nil
}

// RequestChallenge issues an ownership challenge bound to the given identity.
func (c *Chain) RequestChallenge(identity string) string {
	token := challenge.Issue(identity, c.cfg.Now())
	c.log.Debug().Str("identity", identity).Msg("ownership challenge issued")
	return token
}

// SubmitRecord appends a record on behalf of the given identity, provided the
// presented challenge is still fresh and the signature over it proves control
// of the identity. Everything before the append is pure and touches no shared
// state.
func (c *Chain) SubmitRecord(identity string, token string, signature string, data []byte) (*ledger.Block, error) {

	if !challenge.IsFresh(token, c.cfg.Now()) {
		return nil, ledger.ErrChallengeExpired
	}

	ok, err := c.verify.Verify(token, identity, signature)
	if err != nil {
		return nil, fmt.Errorf("could not verify signature: %w", err)
	}
	if !ok {
		return nil, ledger.ErrInvalidSignature
	}

	payload, err := c.codec.Marshal(ledger.Payload{Owner: identity, Data: data})
	if err != nil {
		return nil, fmt.Errorf("could not encode record payload: %w", err)
	}

	appended, err := c.Append(ledger.NewBlock(payload))
	if err != nil {
		return nil, fmt.Errorf("could not append block: %w", err)
	}

	block := *appended
	return &block, nil
}

// ByHeight returns the block at the given height. The chain exclusively owns
// its stored blocks, so lookups hand out copies.
func (c *Chain) ByHeight(height uint64) (*ledger.Block, error) {
	blocks := c.snapshot()

	if height >= uint64(len(blocks)) {
		return nil, ledger.ErrNotFound
	}

	block := *blocks[height]
	return &block, nil
}

// ByHash returns the first block whose hash matches the given hash.
func (c *Chain) ByHash(hash string) (*ledger.Block, error) {
	blocks := c.snapshot()

	for _, candidate := range blocks {
		if candidate.Hash == hash {
			block := *candidate
			return &block, nil
		}
	}

	return nil, ledger.ErrNotFound
}

// RecordsByOwner returns the record data of every block owned by the given
// identity, in append order. An identity without records is indistinguishable
// from an unknown identity; both report not found, as in the original
// registry.
func (c *Chain) RecordsByOwner(identity string) ([][]byte, error) {
	blocks := c.snapshot()

	var records [][]byte
	for _, block := range blocks {
		if block.Height == 0 {
			continue
		}
		payload, err := block.Record(c.codec)
		if err != nil {
			return nil, fmt.Errorf("could not decode payload at height %d: %w", block.Height, err)
		}
		if payload.Owner != identity {
			continue
		}
		records = append(records, payload.Data)
	}

	if len(records) == 0 {
		return nil, ledger.ErrNotFound
	}

	return records, nil
}

// Validate checks every block of the chain and returns the inconsistencies it
// found, ordered by height. An empty slice means the chain is fully
// consistent.
func (c *Chain) Validate() []ledger.ValidationError {
	return validate(c.snapshot())
}

// snapshot returns the current block sequence. Blocks are immutable once
// appended and the slice only ever grows, so reading the slice header once
// under the lock is all the isolation the read paths need.
func (c *Chain) snapshot() []*ledger.Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.blocks
}

// validate runs the per-block checks. The blocks are immutable, so every check
// can run independently; results are collected and sorted by height.
func validate(blocks []*ledger.Block) []ledger.ValidationError {

	var mu sync.Mutex
	var vErrs []ledger.ValidationError
	report := func(height uint64, description string) {
		mu.Lock()
		defer mu.Unlock()
		vErrs = append(vErrs, ledger.ValidationError{Height: height, Description: description})
	}

	var g errgroup.Group
	for index := range blocks {
		index := index
		g.Go(func() error {
			block := blocks[index]
			if !block.Valid() {
				report(uint64(index), "block hash does not match contents")
			}
			if index > 0 && block.PreviousHash != blocks[index-1].Hash {
				report(uint64(index), "block does not link to predecessor")
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(vErrs, func(i int, j int) bool {
		return vErrs[i].Height < vErrs[j].Height
	})

	return vErrs
}
