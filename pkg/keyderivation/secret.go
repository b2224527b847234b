/*
 * Copyright © 2025 Kaleido, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
 * an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package keyderivation

import "math/big"

const redacted = "[secret scalar]"

// SecretScalar wraps a private scalar (seed, raw derived key, or ground
// private key) so that it cannot leak through default printing or JSON
// serialization. Callers that genuinely need the value must opt in through
// BigInt or Bytes, and own calling Destroy when the value is no longer
// needed.
type SecretScalar struct {
	v *big.Int
}

// NewSecretScalar copies the given big-endian bytes into a new scalar.
func NewSecretScalar(b []byte) *SecretScalar {
	return &SecretScalar{v: new(big.Int).SetBytes(b)}
}

func newSecretScalarFromInt(v *big.Int) *SecretScalar {
	return &SecretScalar{v: v}
}

// BigInt exposes the underlying integer. The returned value is shared with
// the scalar, so Destroy invalidates it.
func (s *SecretScalar) BigInt() *big.Int {
	return s.v
}

// Bytes returns the minimal big-endian encoding of the scalar.
func (s *SecretScalar) Bytes() []byte {
	return s.v.Bytes()
}

// Destroy zeroes the underlying storage. Safe to call more than once.
func (s *SecretScalar) Destroy() {
	if s == nil || s.v == nil {
		return
	}
	words := s.v.Bits()
	for i := range words {
		words[i] = 0
	}
	s.v.SetInt64(0)
}

func (s *SecretScalar) String() string {
	return redacted
}

func (s *SecretScalar) GoString() string {
	return redacted
}

func (s *SecretScalar) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}
