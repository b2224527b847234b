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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEthAddress = "0x13978aee95f38490e9769c39b2773ed763d9cd5f"

func TestBuildAccountPathGolden(t *testing.T) {
	ctx := context.Background()
	path, err := BuildAccountPath(ctx, testEthAddress, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, DerivationPath{2645, 579218131, 211006541, 1675218271, 1693351342, 1}, path)
	assert.Equal(t, "m/2645'/579218131'/211006541'/1675218271'/1693351342'/1'", path.String())
}

func TestBuildAccountPathIndexSelectsLeaf(t *testing.T) {
	ctx := context.Background()
	conf := DefaultConfig()
	conf.AccountIndex = "2"
	path, err := BuildAccountPath(ctx, testEthAddress, conf)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), path[len(path)-1])
}

func TestBuildAccountPathCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	lower, err := BuildAccountPath(ctx, testEthAddress, DefaultConfig())
	require.NoError(t, err)
	upper, err := BuildAccountPath(ctx, "0x13978AEE95F38490E9769C39B2773ED763D9CD5F", DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, lower, upper)
}

func TestBuildAccountPathSecondAddress(t *testing.T) {
	ctx := context.Background()
	path, err := BuildAccountPath(ctx, "0x6331ccb948aaf903a69d6054fd718062bd0d535c", DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, DerivationPath{2645, 579218131, 211006541, 1024283484, 2061697221, 1}, path)
}

func TestBuildAccountPathBadInputs(t *testing.T) {
	ctx := context.Background()

	_, err := BuildAccountPath(ctx, "0xnothex", DefaultConfig())
	assert.Regexp(t, "SK010000", err)

	_, err = BuildAccountPath(ctx, "", DefaultConfig())
	assert.Regexp(t, "SK010000", err)

	_, err = BuildAccountPath(ctx, "0x1234", DefaultConfig())
	assert.Regexp(t, "SK010001", err)

	for _, index := range []string{"", "abc", "-1", "1.5", "2147483648"} {
		conf := DefaultConfig()
		conf.AccountIndex = index
		_, err = BuildAccountPath(ctx, testEthAddress, conf)
		assert.Regexp(t, "SK010002", err, "index %q", index)
	}
}

func TestBuildAccountPathConfigValidation(t *testing.T) {
	ctx := context.Background()

	conf := DefaultConfig()
	conf.Layer = ""
	_, err := BuildAccountPath(ctx, testEthAddress, conf)
	assert.Regexp(t, "SK010003", err)

	conf = DefaultConfig()
	conf.Application = ""
	_, err = BuildAccountPath(ctx, testEthAddress, conf)
	assert.Regexp(t, "SK010004", err)

	conf = DefaultConfig()
	conf.SignatureMessage = ""
	_, err = BuildAccountPath(ctx, testEthAddress, conf)
	assert.Regexp(t, "SK010005", err)
}
