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

package mocks

import (
	"fmt"

	"github.com/edtadros/BND-Project1/models/ledger"
)

// Generic fixtures shared across tests.
const (
	GenericHeight   = uint64(42)
	GenericIdentity = "02a1633cafcc01ebfb6d78e39f687a1f0995c62fc95f51ead10a02ee0be551b5dc"
)

// GenericBlock returns a block at the given height with a consistent hash, so
// it passes its own tamper check.
func GenericBlock(height uint64) *ledger.Block {

	block := ledger.Block{
		Height:       height,
		Payload:      []byte(`payload`),
		Timestamp:    1621842969,
		PreviousHash: fmt.Sprintf("%064d", height-1),
	}
	block.Hash = block.ComputeHash()

	return &block
}

// GenericChallenge returns a well-formed challenge token for the identity.
func GenericChallenge(identity string) string {
	return fmt.Sprintf("%s:%d:starRegistry", identity, int64(1621842969))
}
