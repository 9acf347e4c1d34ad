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

// GenesisMarker tags the sentinel payload of the genesis block, so it can be
// recognized without being parsed as a user record.
const GenesisMarker = "genesis"

// Payload is the structured envelope stored encoded inside a block. Either the
// marker is set (genesis block) or owner and data are set (user record).
type Payload struct {
	Marker string `cbor:"marker,omitempty" json:"marker,omitempty"`
	Owner  string `cbor:"owner,omitempty" json:"owner,omitempty"`
	Data   []byte `cbor:"data,omitempty" json:"data,omitempty"`
}

// GenesisPayload returns the sentinel payload carried by the genesis block.
func GenesisPayload() Payload {
	return Payload{Marker: GenesisMarker}
}
