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
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/starksigner/internal/msgs"
)

const (
	// HardenedOffset is added to each path segment when the key tree is
	// walked - every segment of a Stark account path is hardened.
	HardenedOffset = uint32(0x80000000)

	// starkPurpose is the BIP-43 purpose field registered for StarkEx
	// account derivation (EIP-2645).
	starkPurpose = uint32(2645)

	segmentBits = 31
	segmentMask = (uint32(1) << segmentBits) - 1

	// minIdentifierNibbles guarantees the two 31-bit windows extracted from
	// the Ethereum identifier are fully populated.
	minIdentifierNibbles = 16
)

// DerivationPath is an ordered list of hardened path segments, each below
// 2^31, not including the hardened offset.
type DerivationPath []uint32

// String renders the canonical path form, e.g. "m/2645'/579218131'/.../1'".
func (p DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, seg := range p {
		fmt.Fprintf(&b, "/%d'", seg)
	}
	return b.String()
}

// low31 extracts the lowest 31 bits of a big-endian integer.
func low31(v *big.Int) uint32 {
	var window big.Int
	window.And(v, big.NewInt(int64(segmentMask)))
	return uint32(window.Uint64())
}

// low31 of a SHA-256 digest over the UTF-8 bytes of s.
func hash31(s string) uint32 {
	digest := sha256.Sum256([]byte(s))
	var v big.Int
	v.SetBytes(digest[:])
	return low31(&v)
}

// BuildAccountPath computes the hardened derivation path for an account,
// committing to the layer, the application, the Ethereum public identifier
// (its low 62 bits, split into two 31-bit windows) and the account index.
// The result is a pure function of its inputs.
func BuildAccountPath(ctx context.Context, ethPublicKey string, conf *Config) (DerivationPath, error) {
	if err := conf.validate(ctx); err != nil {
		return nil, err
	}
	hexStr := strings.TrimPrefix(strings.ToLower(ethPublicKey), "0x")
	ethInt, ok := new(big.Int).SetString(hexStr, 16)
	if !ok || hexStr == "" {
		return nil, i18n.NewError(ctx, msgs.MsgInvalidEthIdentifier, ethPublicKey)
	}
	if len(hexStr) < minIdentifierNibbles {
		return nil, i18n.NewError(ctx, msgs.MsgEthIdentifierTooShort, len(hexStr)*4)
	}
	accountIndex, err := strconv.ParseUint(conf.AccountIndex, 10, segmentBits)
	if err != nil {
		return nil, i18n.NewError(ctx, msgs.MsgInvalidAccountIndex, conf.AccountIndex)
	}

	ethWindow1 := low31(ethInt)
	ethWindow2 := low31(ethInt.Rsh(ethInt, segmentBits))

	return DerivationPath{
		starkPurpose,
		hash31(conf.Layer),
		hash31(conf.Application),
		ethWindow1,
		ethWindow2,
		uint32(accountIndex),
	}, nil
}
