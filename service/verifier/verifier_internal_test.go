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

package verifier

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_Verify(t *testing.T) {
	key, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	message := "identity:1621842969:starRegistry"
	identity := hex.EncodeToString(key.PubKey().SerializeCompressed())

	compact, err := ecdsa.SignCompact(key, digest(message), true)
	require.NoError(t, err)
	signature := base64.StdEncoding.EncodeToString(compact)

	v := New()

	t.Run("nominal case", func(t *testing.T) {
		ok, err := v.Verify(message, identity, signature)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("signature by another key does not verify", func(t *testing.T) {
		other, err := btcec.NewPrivateKey()
		require.NoError(t, err)

		ok, err := v.Verify(message, hex.EncodeToString(other.PubKey().SerializeCompressed()), signature)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("signature over another message does not verify", func(t *testing.T) {
		// Recovery over the wrong digest yields a different key, so the proof
		// must not check out either way.
		ok, _ := v.Verify("identity:1621843000:starRegistry", identity, signature)
		assert.False(t, ok)
	})

	t.Run("malformed signature encoding", func(t *testing.T) {
		_, err := v.Verify(message, identity, "not base64!")
		assert.Error(t, err)
	})

	t.Run("malformed identity encoding", func(t *testing.T) {
		_, err := v.Verify(message, "not hex", signature)
		assert.Error(t, err)
	})

	t.Run("unrecoverable signature", func(t *testing.T) {
		garbage := base64.StdEncoding.EncodeToString(make([]byte, 65))
		_, err := v.Verify(message, identity, garbage)
		assert.Error(t, err)
	})
}
