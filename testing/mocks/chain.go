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
	"testing"

	"github.com/edtadros/BND-Project1/models/ledger"
)

type Chain struct {
	HeightFunc           func() uint64
	ByHeightFunc         func(height uint64) (*ledger.Block, error)
	ByHashFunc           func(hash string) (*ledger.Block, error)
	RequestChallengeFunc func(identity string) string
	SubmitRecordFunc     func(identity string, challenge string, signature string, data []byte) (*ledger.Block, error)
	RecordsByOwnerFunc   func(identity string) ([][]byte, error)
	ValidateFunc         func() []ledger.ValidationError
}

func BaselineChain(t *testing.T) *Chain {
	t.Helper()

	c := Chain{
		HeightFunc: func() uint64 {
			return GenericHeight
		},
		ByHeightFunc: func(uint64) (*ledger.Block, error) {
			return GenericBlock(GenericHeight), nil
		},
		ByHashFunc: func(string) (*ledger.Block, error) {
			return GenericBlock(GenericHeight), nil
		},
		RequestChallengeFunc: func(identity string) string {
			return GenericChallenge(identity)
		},
		SubmitRecordFunc: func(string, string, string, []byte) (*ledger.Block, error) {
			return GenericBlock(GenericHeight), nil
		},
		RecordsByOwnerFunc: func(string) ([][]byte, error) {
			return [][]byte{[]byte(`{"dec":"68° 52' 56.9","ra":"16h 29m 1.0s"}`)}, nil
		},
		ValidateFunc: func() []ledger.ValidationError {
			return nil
		},
	}

	return &c
}

func (c *Chain) Height() uint64 {
	return c.HeightFunc()
}

func (c *Chain) ByHeight(height uint64) (*ledger.Block, error) {
	return c.ByHeightFunc(height)
}

func (c *Chain) ByHash(hash string) (*ledger.Block, error) {
	return c.ByHashFunc(hash)
}

func (c *Chain) RequestChallenge(identity string) string {
	return c.RequestChallengeFunc(identity)
}

func (c *Chain) SubmitRecord(identity string, challenge string, signature string, data []byte) (*ledger.Block, error) {
	return c.SubmitRecordFunc(identity, challenge, signature, data)
}

func (c *Chain) RecordsByOwner(identity string) ([][]byte, error) {
	return c.RecordsByOwnerFunc(identity)
}

func (c *Chain) Validate() []ledger.ValidationError {
	return c.ValidateFunc()
}
