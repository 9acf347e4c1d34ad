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

package ledger

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Block is one entry of the append-only chain. The payload is set at
// construction; height, timestamp, previous hash and hash are populated by the
// chain during append and are immutable afterwards. An empty hash string means
// the field is not set yet, and an empty previous hash is only ever valid on
// the genesis block.
type Block struct {
	Hash         string `json:"hash"`
	Height       uint64 `json:"height"`
	Payload      []byte `json:"payload"`
	Timestamp    int64  `json:"timestamp"`
	PreviousHash string `json:"previous_hash,omitempty"`
}

// NewBlock creates a block carrying the given encoded payload. All link-related
// fields remain zero until the block goes through the chain's append.
func NewBlock(payload []byte) *Block {

	b := Block{
		Payload: payload,
	}

	return &b
}

// ComputeHash returns the hex-encoded SHA-256 digest of the block contents.
// The stored hash itself is not part of the digest, so the result is the same
// whether or not the hash field has been populated. Variable-length fields are
// length-prefixed to keep the serialization unambiguous.
func (b *Block) ComputeHash() string {

	h := sha256.New()
	buf := make([]byte, 8)

	binary.BigEndian.PutUint64(buf, b.Height)
	h.Write(buf)

	binary.BigEndian.PutUint64(buf, uint64(b.Timestamp))
	h.Write(buf)

	binary.BigEndian.PutUint64(buf, uint64(len(b.PreviousHash)))
	h.Write(buf)
	h.Write([]byte(b.PreviousHash))

	binary.BigEndian.PutUint64(buf, uint64(len(b.Payload)))
	h.Write(buf)
	h.Write(b.Payload)

	return hex.EncodeToString(h.Sum(nil))
}

// Valid recomputes the block hash from the current field values and compares it
// to the stored hash. Any mutation of height, timestamp, previous hash or
// payload after the hash was set makes this return false.
func (b *Block) Valid() bool {
	return b.Hash == b.ComputeHash()
}

// Record decodes the payload envelope of the block. The genesis block carries a
// sentinel payload rather than a user record, so asking for its record fails
// with ErrGenesisBlock.
func (b *Block) Record(codec Codec) (*Payload, error) {

	if b.Height == 0 {
		return nil, ErrGenesisBlock
	}

	var payload Payload
	err := codec.Unmarshal(b.Payload, &payload)
	if err != nil {
		return nil, fmt.Errorf("could not decode payload: %w", err)
	}

	return &payload, nil
}
