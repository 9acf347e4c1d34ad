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

// Package verifier checks secp256k1 compact signatures over challenge tokens.
// The identity of a signer is the hex encoding of its compressed public key;
// verification recovers the key from the compact signature and compares it to
// the identity, so controlling the key is the only way to produce a valid
// proof.
package verifier

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// messagePrefix matches the preamble standard wallet tooling prepends before
// signing a message, so signatures produced by such tooling verify unchanged.
const messagePrefix = "\x18Bitcoin Signed Message:\n"

// Verifier proves control of a secp256k1 key pair over an arbitrary message.
type Verifier struct{}

// New creates a new Verifier.
func New() *Verifier {
	v := Verifier{}
	return &v
}

// Verify reports whether the base64-encoded compact signature over the given
// message was produced by the key behind the given identity. Malformed inputs
// return an error; a well-formed signature by another key simply reports
// false.
func (v *Verifier) Verify(message string, identity string, signature string) (bool, error) {

	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false, fmt.Errorf("could not decode signature: %w", err)
	}

	want, err := hex.DecodeString(identity)
	if err != nil {
		return false, fmt.Errorf("could not decode identity: %w", err)
	}

	pub, _, err := ecdsa.RecoverCompact(sig, digest(message))
	if err != nil {
		return false, fmt.Errorf("could not recover public key: %w", err)
	}

	return bytes.Equal(pub.SerializeCompressed(), want), nil
}

// digest computes the double SHA-256 of the length-prefixed message, which is
// the digest wallet tooling signs in compact form.
func digest(message string) []byte {

	var buf bytes.Buffer
	buf.WriteString(messagePrefix)
	writeLength(&buf, uint64(len(message)))
	buf.WriteString(message)

	first := sha256.Sum256(buf.Bytes())
	second := sha256.Sum256(first[:])

	return second[:]
}

// writeLength writes the message length in the variable-width integer format
// of the signed message preamble.
func writeLength(buf *bytes.Buffer, length uint64) {
	switch {
	case length < 0xfd:
		buf.WriteByte(byte(length))
	case length <= 0xffff:
		buf.WriteByte(0xfd)
		scratch := make([]byte, 2)
		binary.LittleEndian.PutUint16(scratch, uint16(length))
		buf.Write(scratch)
	case length <= 0xffffffff:
		buf.WriteByte(0xfe)
		scratch := make([]byte, 4)
		binary.LittleEndian.PutUint32(scratch, uint32(length))
		buf.Write(scratch)
	default:
		buf.WriteByte(0xff)
		scratch := make([]byte, 8)
		binary.LittleEndian.PutUint64(scratch, length)
		buf.Write(scratch)
	}
}
