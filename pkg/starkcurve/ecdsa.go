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
	"context"
	"math/big"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/starksigner/internal/msgs"
)

// In this ECDSA variant not every nonce is usable: r is the un-reduced
// x-coordinate and both r and the intermediate w must stay below 2^251. The
// retry loop re-derives the nonce with an incrementing extra-entropy counter,
// exactly as the deployed network does. Failure of 100 consecutive nonces
// indicates a defect, not bad luck.
const maxSignAttempts = 100

// Sign produces a signature over msgHash with the given private key. The
// message hash must be below the field prime; values at or above it cannot
// be represented as a field element and are rejected.
func Sign(ctx context.Context, msgHash, privateKey *big.Int) (r, s *big.Int, err error) {
	if msgHash.Sign() < 0 || msgHash.Cmp(fieldPrime) >= 0 {
		return nil, nil, i18n.NewError(ctx, msgs.MsgPayloadNotInField)
	}

	var extraEntropy []byte
	seed := int64(0)
	for attempt := 0; attempt < maxSignAttempts; attempt++ {
		k := generateK(msgHash, privateKey, extraEntropy)
		seed++
		extraEntropy = big.NewInt(seed).Bytes()

		r = scalarBaseMult(k).x
		if r.Cmp(one) < 0 || r.Cmp(elementUpperBound) >= 0 {
			continue
		}

		rk := new(big.Int).Mul(r, privateKey)
		rk.Add(rk, msgHash)
		rk.Mod(rk, curveOrder)
		if rk.Sign() == 0 {
			continue
		}

		w := rk.ModInverse(rk, curveOrder)
		w.Mul(w, k)
		w.Mod(w, curveOrder)
		if w.Cmp(one) < 0 || w.Cmp(elementUpperBound) >= 0 {
			continue
		}

		s = w.ModInverse(w, curveOrder)
		return r, s, nil
	}
	return nil, nil, i18n.NewError(ctx, msgs.MsgStarkSignRetriesExhausted, maxSignAttempts)
}

// Verify checks a signature against the Stark public key (the x-coordinate
// of the signer's point). Both candidate points for the x-coordinate are
// tried, as the y-parity is not part of the public key encoding.
func Verify(msgHash, r, s, publicKeyX *big.Int) bool {
	if r.Cmp(one) < 0 || r.Cmp(elementUpperBound) >= 0 {
		return false
	}
	if s.Cmp(one) < 0 || s.Cmp(curveOrder) >= 0 {
		return false
	}
	q := pointFromX(publicKeyX)
	if q == nil {
		return false
	}

	w := new(big.Int).ModInverse(s, curveOrder)
	u1 := new(big.Int).Mul(msgHash, w)
	u1.Mod(u1, curveOrder)
	u2 := new(big.Int).Mul(r, w)
	u2.Mod(u2, curveOrder)

	for _, candidate := range []*point{q, negate(q)} {
		p := add(scalarBaseMult(u1), scalarMult(u2, candidate))
		if p != nil && p.x.Cmp(r) == 0 {
			return true
		}
	}
	return false
}
