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
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivateKey = "02b94ede782cfefbe9415a94f6eff14d3a7827ce21883cb5b07ae4e3c2a7ea9c"

func TestSignGoldenVectors(t *testing.T) {
	ctx := context.Background()
	privateKey := hexInt(t, testPrivateKey)
	for _, tc := range []struct {
		name    string
		msgHash string
		r       string
		s       string
	}{
		{
			name:    "smallest hash",
			msgHash: "1",
			r:       "0569e8cf3651619f3107619804f6a7b0a3ca2d926c2c05476387067ddab6bcf9",
			s:       "06e3a0b4a26206fa371f08c26b33acf15437f1f25b46f87a5cea87b56bc90770",
		},
		{
			name:    "largest scalar hash",
			msgHash: "800000000000010ffffffffffffffffb781126dcae7b2321e66a241adc64d2e",
			r:       "046d11dc3c3933b1e9641d319734953f83906a35df9a43abdb7caa67c27127be",
			s:       "06bf6a4020d8752053d8c4080d1076047ba24636b1c11f06232292052ac6cae8",
		},
		{
			name:    "typical payload hash",
			msgHash: "2ff6a459cedbd7543f5b95357e42f6f0cf52b5a3ac8d71d8fcc396de6671e0d",
			r:       "001b0a1333b81e7d3c43a5d376fc6cb499f0772713f38a71c19f32235ab2b59f",
			s:       "05f71c3109d8bc91f5b6c8f1aa48cd982e99555ee15d14cfec228dc1e1c56e29",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, s, err := Sign(ctx, hexInt(t, tc.msgHash), privateKey)
			require.NoError(t, err)
			assert.Equal(t, tc.r, fmt.Sprintf("%064x", r))
			assert.Equal(t, tc.s, fmt.Sprintf("%064x", s))
		})
	}
}

func TestSignDeterministic(t *testing.T) {
	ctx := context.Background()
	privateKey := hexInt(t, testPrivateKey)
	msgHash := hexInt(t, "2ff6a459cedbd7543f5b95357e42f6f0cf52b5a3ac8d71d8fcc396de6671e0d")
	r1, s1, err := Sign(ctx, msgHash, privateKey)
	require.NoError(t, err)
	r2, s2, err := Sign(ctx, msgHash, privateKey)
	require.NoError(t, err)
	assert.Equal(t, 0, r1.Cmp(r2))
	assert.Equal(t, 0, s1.Cmp(s2))
}

func TestSignDifferentHashesDiffer(t *testing.T) {
	ctx := context.Background()
	privateKey := hexInt(t, testPrivateKey)
	r1, s1, err := Sign(ctx, big.NewInt(1), privateKey)
	require.NoError(t, err)
	r2, s2, err := Sign(ctx, big.NewInt(2), privateKey)
	require.NoError(t, err)
	assert.NotEqual(t, 0, r1.Cmp(r2))
	assert.NotEqual(t, 0, s1.Cmp(s2))
}

func TestSignRejectsHashOutsideField(t *testing.T) {
	ctx := context.Background()
	privateKey := hexInt(t, testPrivateKey)

	_, _, err := Sign(ctx, FieldPrime(), privateKey)
	assert.Regexp(t, "SK010204", err)

	aboveField := new(big.Int).Add(fieldPrime, one)
	_, _, err = Sign(ctx, aboveField, privateKey)
	assert.Regexp(t, "SK010204", err)

	_, _, err = Sign(ctx, big.NewInt(-1), privateKey)
	assert.Regexp(t, "SK010204", err)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	ctx := context.Background()
	privateKey := hexInt(t, testPrivateKey)
	publicKey := PrivateToPublicKey(privateKey)

	for _, msgHash := range []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		new(big.Int).Sub(fieldPrime, one),
		hexInt(t, "2ff6a459cedbd7543f5b95357e42f6f0cf52b5a3ac8d71d8fcc396de6671e0d"),
	} {
		r, s, err := Sign(ctx, msgHash, privateKey)
		require.NoError(t, err)
		assert.True(t, Verify(msgHash, r, s, publicKey), "hash %s", msgHash.Text(16))
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	ctx := context.Background()
	privateKey := hexInt(t, testPrivateKey)
	publicKey := PrivateToPublicKey(privateKey)
	msgHash := big.NewInt(1)
	r, s, err := Sign(ctx, msgHash, privateKey)
	require.NoError(t, err)

	assert.False(t, Verify(big.NewInt(2), r, s, publicKey))
	assert.False(t, Verify(msgHash, new(big.Int).Add(r, one), s, publicKey))
	assert.False(t, Verify(msgHash, r, new(big.Int).Add(s, one), publicKey))

	// out of range components
	assert.False(t, Verify(msgHash, big.NewInt(0), s, publicKey))
	assert.False(t, Verify(msgHash, elementUpperBound, s, publicKey))
	assert.False(t, Verify(msgHash, r, big.NewInt(0), publicKey))
	assert.False(t, Verify(msgHash, r, curveOrder, publicKey))

	// x=5 is not on the curve
	assert.False(t, Verify(msgHash, r, s, big.NewInt(5)))
}
