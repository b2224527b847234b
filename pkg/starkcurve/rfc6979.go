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

package starkcurve

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"
)

// Deterministic nonce generation per RFC 6979 with HMAC-SHA256, specialized
// to the curve order (qlen = 252 bits, rolen = 32 bytes). The message hash is
// passed as its minimal big-endian encoding, and an optional extra-entropy
// counter is appended to the DRBG seed material - both quirks shared with the
// elliptic.js-derived implementations this must stay interoperable with.

const nonceByteLen = 32 // ceil(qlen/8) for the 252-bit order

// bits2int interprets data big-endian and keeps only the leftmost qlen bits.
func bits2int(data []byte) *big.Int {
	v := new(big.Int).SetBytes(data)
	excess := len(data)*8 - curveOrder.BitLen()
	if excess > 0 {
		v.Rsh(v, uint(excess))
	}
	return v
}

func int2octets(v *big.Int) []byte {
	out := make([]byte, nonceByteLen)
	v.FillBytes(out)
	return out
}

func bits2octets(data []byte) []byte {
	z1 := bits2int(data)
	if z1.Cmp(curveOrder) >= 0 {
		z1.Sub(z1, curveOrder)
	}
	return int2octets(z1)
}

// generateK derives the signing nonce for a message hash under a private key.
// The elliptic.js padding rule applies first: a hash one nibble short of a
// whole byte count is shifted left four bits before encoding.
func generateK(msgHash, privateKey *big.Int, extraEntropy []byte) *big.Int {
	h := new(big.Int).Set(msgHash)
	if bl := h.BitLen(); bl >= 248 && bl%8 >= 1 && bl%8 <= 4 {
		h.Lsh(h, 4)
	}
	hashBytes := h.Bytes()

	seedMaterial := make([]byte, 0, 2*nonceByteLen+len(extraEntropy))
	seedMaterial = append(seedMaterial, int2octets(privateKey)...)
	seedMaterial = append(seedMaterial, bits2octets(hashBytes)...)
	seedMaterial = append(seedMaterial, extraEntropy...)

	v := make([]byte, sha256.Size)
	k := make([]byte, sha256.Size)
	for i := range v {
		v[i] = 0x01
	}

	mac := func(key []byte, parts ...[]byte) []byte {
		m := hmac.New(sha256.New, key)
		for _, p := range parts {
			m.Write(p)
		}
		return m.Sum(nil)
	}

	k = mac(k, v, []byte{0x00}, seedMaterial)
	v = mac(k, v)
	k = mac(k, v, []byte{0x01}, seedMaterial)
	v = mac(k, v)

	for {
		t := make([]byte, 0, nonceByteLen)
		for len(t) < nonceByteLen {
			v = mac(k, v)
			t = append(t, v...)
		}
		secret := bits2int(t[:nonceByteLen])
		if secret.Cmp(one) >= 0 && secret.Cmp(curveOrder) < 0 {
			return secret
		}
		k = mac(k, v, []byte{0x00})
		v = mac(k, v)
	}
}
