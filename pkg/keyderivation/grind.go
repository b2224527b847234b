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

import (
	"context"
	"crypto/sha256"
	"math/big"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/starksigner/internal/msgs"
)

// The rejection loop converges after zero or one retries under correct curve
// parameters (the biased region is ~3% of the 2^256 space for the Stark
// order). The cap exists to turn a misconfigured limit into an error rather
// than a spin.
const maxGrindAttempts = 100

var twoPow256 = new(big.Int).Lsh(big.NewInt(1), 256)

// GrindKey maps a 256-bit raw scalar into [1, keyValueLimit) with uniform
// distribution. Candidates are SHA-256(seed || index) for an incrementing
// one-byte index; any candidate at or above the largest multiple of the
// limit below 2^256 would bias a plain modulo reduction, so it is rejected
// and the next index tried. The hash framing (minimal big-endian seed bytes,
// index byte) is an interoperability contract with the deployed derivation
// scheme - do not change it without revalidating the golden vectors.
func GrindKey(ctx context.Context, rawScalar *SecretScalar, keyValueLimit *big.Int) (*SecretScalar, error) {
	if keyValueLimit.Sign() <= 0 || keyValueLimit.Cmp(twoPow256) >= 0 {
		return nil, i18n.NewError(ctx, msgs.MsgGrindBadLimit)
	}
	maxAllowed := new(big.Int).Mod(twoPow256, keyValueLimit)
	maxAllowed.Sub(twoPow256, maxAllowed)

	seedBytes := rawScalar.Bytes()
	defer zeroBytes(seedBytes)
	for attempt := 0; attempt < maxGrindAttempts; attempt++ {
		digest := sha256.Sum256(append(seedBytes, byte(attempt)))
		candidate := new(big.Int).SetBytes(digest[:])
		zeroBytes(digest[:])
		if candidate.Cmp(maxAllowed) >= 0 {
			// Biased region - reject and re-hash with the next index
			continue
		}
		candidate.Mod(candidate, keyValueLimit)
		if candidate.Sign() == 0 {
			// Zero is not a usable private key; vanishingly unlikely
			continue
		}
		return newSecretScalarFromInt(candidate), nil
	}
	return nil, i18n.NewError(ctx, msgs.MsgGrindRetriesExhausted, maxGrindAttempts)
}
