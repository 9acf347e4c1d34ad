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

package chain

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edtadros/BND-Project1/codec/zbor"
	"github.com/edtadros/BND-Project1/models/ledger"
	"github.com/edtadros/BND-Project1/testing/mocks"
)

func TestChain_Validate_TamperedPayload(t *testing.T) {
	c := tamperChain(t, 3)

	c.blocks[2].Payload = []byte(`tampered`)

	vErrs := c.Validate()
	require.Len(t, vErrs, 1)
	assert.Equal(t, uint64(2), vErrs[0].Height)
}

func TestChain_Validate_TamperedHash(t *testing.T) {
	c := tamperChain(t, 3)

	// Rewriting a stored hash breaks both the block itself and the link of its
	// successor.
	c.blocks[1].Hash = "deadbeef"

	vErrs := c.Validate()
	require.Len(t, vErrs, 2)
	assert.Equal(t, uint64(1), vErrs[0].Height)
	assert.Equal(t, uint64(2), vErrs[1].Height)
}

func TestChain_Validate_TamperedTimestamp(t *testing.T) {
	c := tamperChain(t, 2)

	c.blocks[1].Timestamp++

	vErrs := c.Validate()
	require.Len(t, vErrs, 1)
	assert.Equal(t, uint64(1), vErrs[0].Height)
}

// The chain is never rolled back: an append into a corrupted chain reports an
// error, but the block is already pushed.
func TestChain_Append_ReportsAfterPush(t *testing.T) {
	c := tamperChain(t, 2)

	c.blocks[1].Hash = "deadbeef"

	before := c.Height()
	_, err := c.Append(ledger.NewBlock([]byte(`payload`)))
	assert.Error(t, err)
	assert.Equal(t, before+1, c.Height())
}

func tamperChain(t *testing.T, appends int) *Chain {
	t.Helper()

	codec, err := zbor.NewCodec()
	require.NoError(t, err)

	c, err := New(zerolog.Nop(), codec, mocks.BaselineVerifier(t))
	require.NoError(t, err)

	for i := 0; i < appends; i++ {
		identity := fmt.Sprint("identity-", i)
		_, err := c.SubmitRecord(identity, c.RequestChallenge(identity), "signature", []byte(`{}`))
		require.NoError(t, err)
	}

	return c
}
