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

// Chain represents something that has access to the star registry ledger: the
// read paths, the ownership-challenge protocol and the submission of records.
type Chain interface {
	Height() uint64
	ByHeight(height uint64) (*Block, error)
	ByHash(hash string) (*Block, error)
	RequestChallenge(identity string) string
	SubmitRecord(identity string, challenge string, signature string, data []byte) (*Block, error)
	RecordsByOwner(identity string) ([][]byte, error)
	Validate() []ValidationError
}
