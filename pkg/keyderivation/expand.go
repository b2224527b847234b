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
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/kaleido-io/starksigner/internal/msgs"
)

// ExpandSeed walks a BIP-32 key tree from the seed along the hardened path,
// and returns the leaf private key material as a 256-bit raw scalar. The
// walk is an explicit loop so every intermediate extended key can be zeroed
// before the next one is derived; the caller owns destroying the result.
func ExpandSeed(ctx context.Context, seedHex string, path DerivationPath) (*SecretScalar, error) {
	if len(path) == 0 {
		return nil, i18n.NewError(ctx, msgs.MsgEmptyDerivationPath)
	}
	hexStr := strings.TrimPrefix(seedHex, "0x")
	if len(hexStr)%2 == 1 {
		hexStr = "0" + hexStr
	}
	seed, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, i18n.NewError(ctx, msgs.MsgInvalidSeedHex)
	}
	defer zeroBytes(seed)
	if len(seed) < hdkeychain.MinSeedBytes {
		return nil, i18n.NewError(ctx, msgs.MsgSeedTooShort, hdkeychain.MinSeedBytes, len(seed))
	}

	node, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgChildDerivationFailed, 0)
	}
	for depth, segment := range path {
		if segment >= HardenedOffset {
			node.Zero()
			return nil, i18n.NewError(ctx, msgs.MsgPathSegmentTooLarge, segment)
		}
		child, err := node.Derive(HardenedOffset + segment)
		node.Zero()
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgChildDerivationFailed, depth+1)
		}
		node = child
	}

	ecPrivKey, err := node.ECPrivKey()
	if err != nil {
		node.Zero()
		return nil, i18n.WrapError(ctx, err, msgs.MsgChildDerivationFailed, len(path))
	}
	keyBytes := ecPrivKey.Key.Bytes()
	raw := NewSecretScalar(keyBytes[:])
	zeroBytes(keyBytes[:])
	node.Zero()
	log.L(ctx).Debugf("expanded seed at path %s", path)
	return raw, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
