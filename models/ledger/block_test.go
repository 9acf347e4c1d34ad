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

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edtadros/BND-Project1/codec/zbor"
	"github.com/edtadros/BND-Project1/models/ledger"
)

func TestNewBlock(t *testing.T) {
	payload := []byte(`payload`)

	block := ledger.NewBlock(payload)

	assert.Equal(t, payload, block.Payload)
	assert.Empty(t, block.Hash)
	assert.Zero(t, block.Height)
	assert.Zero(t, block.Timestamp)
	assert.Empty(t, block.PreviousHash)
}

func TestBlock_ComputeHash(t *testing.T) {
	block := ledger.Block{
		Height:       42,
		Payload:      []byte(`payload`),
		Timestamp:    1621842969,
		PreviousHash: "2b67b0d2a2e06e4fec823cdedebbc0345a1b7f7b8f1bd86a8a52427b9f20fc62",
	}

	hash := block.ComputeHash()

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, hash, block.ComputeHash())
	})

	t.Run("stored hash is excluded from the digest", func(t *testing.T) {
		stamped := block
		stamped.Hash = hash
		assert.Equal(t, hash, stamped.ComputeHash())
	})

	t.Run("digest covers every other field", func(t *testing.T) {
		changedHeight := block
		changedHeight.Height++
		assert.NotEqual(t, hash, changedHeight.ComputeHash())

		changedTime := block
		changedTime.Timestamp++
		assert.NotEqual(t, hash, changedTime.ComputeHash())

		changedLink := block
		changedLink.PreviousHash = ""
		assert.NotEqual(t, hash, changedLink.ComputeHash())

		changedPayload := block
		changedPayload.Payload = []byte(`other`)
		assert.NotEqual(t, hash, changedPayload.ComputeHash())
	})
}

func TestBlock_Valid(t *testing.T) {
	baseline := ledger.Block{
		Height:       42,
		Payload:      []byte(`payload`),
		Timestamp:    1621842969,
		PreviousHash: "2b67b0d2a2e06e4fec823cdedebbc0345a1b7f7b8f1bd86a8a52427b9f20fc62",
	}
	baseline.Hash = baseline.ComputeHash()

	require.True(t, baseline.Valid())

	tests := []struct {
		desc   string
		tamper func(block *ledger.Block)
	}{
		{
			desc:   "height changed",
			tamper: func(block *ledger.Block) { block.Height++ },
		},
		{
			desc:   "timestamp changed",
			tamper: func(block *ledger.Block) { block.Timestamp++ },
		},
		{
			desc:   "previous hash changed",
			tamper: func(block *ledger.Block) { block.PreviousHash = "" },
		},
		{
			desc:   "payload changed",
			tamper: func(block *ledger.Block) { block.Payload = []byte(`other`) },
		},
		{
			desc:   "hash changed",
			tamper: func(block *ledger.Block) { block.Hash = "deadbeef" },
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			block := baseline
			test.tamper(&block)
			assert.False(t, block.Valid())
		})
	}
}

func TestBlock_Record(t *testing.T) {
	codec, err := zbor.NewCodec()
	require.NoError(t, err)

	t.Run("nominal case", func(t *testing.T) {
		want := ledger.Payload{
			Owner: "02a1633cafcc01ebfb6d78e39f687a1f0995c62fc95f51ead10a02ee0be551b5dc",
			Data:  []byte(`{"dec":"68° 52' 56.9","ra":"16h 29m 1.0s"}`),
		}
		encoded, err := codec.Marshal(want)
		require.NoError(t, err)

		block := ledger.NewBlock(encoded)
		block.Height = 1

		got, err := block.Record(codec)
		require.NoError(t, err)
		assert.Equal(t, want, *got)
	})

	t.Run("genesis block has no record", func(t *testing.T) {
		encoded, err := codec.Marshal(ledger.GenesisPayload())
		require.NoError(t, err)

		block := ledger.NewBlock(encoded)

		_, err = block.Record(codec)
		assert.ErrorIs(t, err, ledger.ErrGenesisBlock)
	})

	t.Run("malformed payload", func(t *testing.T) {
		block := ledger.NewBlock([]byte(`not a compressed payload`))
		block.Height = 1

		_, err := block.Record(codec)
		assert.Error(t, err)
	})
}
