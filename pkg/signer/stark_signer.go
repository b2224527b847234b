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

package signer

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/kaleido-io/starksigner/internal/msgs"
	"github.com/kaleido-io/starksigner/pkg/keyderivation"
	"github.com/kaleido-io/starksigner/pkg/starkcurve"
)

// StarkSigner holds a Stark-curve key pair and signs payload hashes with
// deterministic ECDSA over the Stark curve.
type StarkSigner struct {
	privateKey *keyderivation.SecretScalar
	publicKey  string
}

// NewStarkSigner wraps an existing key pair. The private key must be a
// valid scalar, but the public key is stored as given - use CheckKeyPair to
// assert the two actually match.
func NewStarkSigner(ctx context.Context, privateKeyHex, publicKeyHex string) (*StarkSigner, error) {
	priv, ok := new(big.Int).SetString(strings.TrimPrefix(privateKeyHex, "0x"), 16)
	if !ok || priv.Sign() <= 0 || priv.Cmp(starkcurve.Order()) >= 0 {
		return nil, i18n.NewError(ctx, msgs.MsgInvalidStarkPrivateKey)
	}
	pub, ok := new(big.Int).SetString(strings.TrimPrefix(publicKeyHex, "0x"), 16)
	if !ok || pub.Sign() <= 0 || pub.Cmp(starkcurve.FieldPrime()) >= 0 {
		return nil, i18n.NewError(ctx, msgs.MsgInvalidStarkPublicKey, publicKeyHex)
	}
	privateKey := keyderivation.NewSecretScalar(priv.Bytes())
	zeroScalar(priv)
	return &StarkSigner{
		privateKey: privateKey,
		publicKey:  fmt.Sprintf("0x%064x", pub),
	}, nil
}

// NewStarkSignerFromEth deterministically derives a Stark key pair from an
// Ethereum signer:
//
//  1. the signer signs the configured key-derivation message (EIP-191)
//  2. the signature's S component seeds a BIP-32 expansion along the
//     EIP-2645 account path bound to the signer's address
//  3. the expanded scalar is ground down to a uniform Stark curve scalar
//
// The same signer and configuration always yield the same key pair.
func NewStarkSignerFromEth(ctx context.Context, eth EthSigner, conf *keyderivation.Config) (*StarkSigner, error) {
	if conf == nil {
		conf = keyderivation.DefaultConfig()
	}
	path, err := keyderivation.BuildAccountPath(ctx, eth.Address(), conf)
	if err != nil {
		return nil, err
	}
	sig, err := eth.SignMessage(ctx, conf.SignatureMessage)
	if err != nil {
		return nil, err
	}
	seedHex := hex.EncodeToString(sig.S.Bytes())
	zeroScalar(sig.S)
	rawScalar, err := keyderivation.ExpandSeed(ctx, seedHex, path)
	if err != nil {
		return nil, err
	}
	defer rawScalar.Destroy()
	privateKey, err := keyderivation.GrindKey(ctx, rawScalar, starkcurve.Order())
	if err != nil {
		return nil, err
	}
	pub := starkcurve.PrivateToPublicKey(privateKey.BigInt())
	s := &StarkSigner{
		privateKey: privateKey,
		publicKey:  fmt.Sprintf("0x%064x", pub),
	}
	log.L(ctx).Debugf("Derived Stark key %s for %s at %s", s.publicKey, eth.Address(), path)
	return s, nil
}

// PublicKey returns the 0x-prefixed 64-hex-digit Stark public key (the
// x-coordinate of the public point).
func (s *StarkSigner) PublicKey() string {
	return s.publicKey
}

// Sign produces a deterministic Stark ECDSA signature over the given
// payload hash, returned as 0x + r (64 hex) + s (64 hex).
func (s *StarkSigner) Sign(ctx context.Context, payloadHashHex string) (string, error) {
	payloadHash, ok := new(big.Int).SetString(strings.TrimPrefix(payloadHashHex, "0x"), 16)
	if !ok {
		return "", i18n.NewError(ctx, msgs.MsgInvalidPayloadHash)
	}
	sigR, sigS, err := starkcurve.Sign(ctx, payloadHash, s.privateKey.BigInt())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("0x%064x%064x", sigR, sigS), nil
}

// CheckKeyPair re-derives the public key from the private key and fails if
// it does not match the stored public key.
func (s *StarkSigner) CheckKeyPair(ctx context.Context) error {
	derived := fmt.Sprintf("0x%064x", starkcurve.PrivateToPublicKey(s.privateKey.BigInt()))
	if derived != s.publicKey {
		return i18n.NewError(ctx, msgs.MsgStarkKeyPairMismatch, s.publicKey, derived)
	}
	return nil
}

// Destroy zeroes the private key material. The signer must not be used
// afterwards.
func (s *StarkSigner) Destroy() {
	s.privateKey.Destroy()
}

func zeroScalar(v *big.Int) {
	words := v.Bits()
	for i := range words {
		words[i] = 0
	}
}
