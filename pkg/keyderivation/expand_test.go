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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The signature S-component seed for the test Ethereum account, and the
// derivation path for account index 1.
const testSeedHex = "266e2353ec5841f85a8523ff4ac31875faa71962b5e0fa6cfbb9389f3fbee4fb"

var testPath = DerivationPath{2645, 579218131, 211006541, 1675218271, 1693351342, 1}

func TestExpandSeedGolden(t *testing.T) {
	ctx := context.Background()
	raw, err := ExpandSeed(ctx, testSeedHex, testPath)
	require.NoError(t, err)
	defer raw.Destroy()
	assert.Equal(t, "9d575e82d87cd671b3332046dcdb3899d82aa3e5bc70fda8faa6d4ef549e3c08",
		fmt.Sprintf("%064x", raw.BigInt()))
}

func TestExpandSeedLeafSelectsKey(t *testing.T) {
	ctx := context.Background()
	path2 := append(append(DerivationPath{}, testPath[:5]...), 2)
	raw, err := ExpandSeed(ctx, testSeedHex, path2)
	require.NoError(t, err)
	defer raw.Destroy()
	assert.Equal(t, "d7a04b0cb90a02180a420278b9a004c42005c5c4e1244592e9c8a03d978e6575",
		fmt.Sprintf("%064x", raw.BigInt()))
}

func TestExpandSeedPrefixAccepted(t *testing.T) {
	ctx := context.Background()
	raw1, err := ExpandSeed(ctx, "0x"+testSeedHex, testPath)
	require.NoError(t, err)
	defer raw1.Destroy()
	raw2, err := ExpandSeed(ctx, testSeedHex, testPath)
	require.NoError(t, err)
	defer raw2.Destroy()
	assert.Equal(t, 0, raw1.BigInt().Cmp(raw2.BigInt()))
}

func TestExpandSeedOddLengthLeftPadded(t *testing.T) {
	ctx := context.Background()
	// dropping a leading zero nibble must not change the seed bytes
	raw1, err := ExpandSeed(ctx, "066e2353ec5841f85a8523ff4ac31875faa71962b5e0fa6cfbb9389f3fbee4fb", testPath)
	require.NoError(t, err)
	defer raw1.Destroy()
	raw2, err := ExpandSeed(ctx, "66e2353ec5841f85a8523ff4ac31875faa71962b5e0fa6cfbb9389f3fbee4fb", testPath)
	require.NoError(t, err)
	defer raw2.Destroy()
	assert.Equal(t, 0, raw1.BigInt().Cmp(raw2.BigInt()))
}

func TestExpandSeedBadInputs(t *testing.T) {
	ctx := context.Background()

	_, err := ExpandSeed(ctx, testSeedHex, DerivationPath{})
	assert.Regexp(t, "SK010103", err)

	_, err = ExpandSeed(ctx, "nothex!", testPath)
	assert.Regexp(t, "SK010100", err)

	_, err = ExpandSeed(ctx, "00112233445566778899aabbccddee", testPath) // 15 bytes
	assert.Regexp(t, "SK010101", err)

	_, err = ExpandSeed(ctx, testSeedHex, DerivationPath{2645, 0x80000000})
	assert.Regexp(t, "SK010102", err)
}
