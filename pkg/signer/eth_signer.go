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
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
	"github.com/kaleido-io/starksigner/internal/msgs"
	"github.com/tyler-smith/go-bip39"
)

// EthSigner is the primary-curve signing capability everything else hangs
// off. It is satisfied in-memory below, but may equally be backed by a
// remote wallet - only EIP-191 message signing and the account address are
// required.
type EthSigner interface {
	// Address returns the 0x-prefixed Ethereum account address
	Address() string
	// SignMessage signs the EIP-191 "personal message" encoding of the text
	SignMessage(ctx context.Context, message string) (*secp256k1.SignatureData, error)
}

// BIP-44 Ethereum wallet path prefix, m/44'/60'/0'/0, for mnemonic-backed
// signers.
var ethWalletPathPrefix = []uint32{
	hdkeychain.HardenedKeyStart + 44,
	hdkeychain.HardenedKeyStart + 60,
	hdkeychain.HardenedKeyStart + 0,
	0,
}

type ethKeyPairSigner struct {
	keypair *secp256k1.KeyPair
}

// NewEthSignerFromPrivateKey builds an in-memory signer over a 32-byte hex
// private key (0x prefix optional).
func NewEthSignerFromPrivateKey(ctx context.Context, privateKeyHex string) (EthSigner, error) {
	keyBytes, err := hex.DecodeString(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil || len(keyBytes) != 32 {
		return nil, i18n.NewError(ctx, msgs.MsgInvalidEthPrivateKey)
	}
	keypair, err := secp256k1.NewSecp256k1KeyPair(keyBytes)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgInvalidEthPrivateKey)
	}
	return &ethKeyPairSigner{keypair: keypair}, nil
}

// NewEthSignerFromMnemonic builds an in-memory signer from a BIP-39 mnemonic
// at the standard Ethereum wallet path m/44'/60'/0'/0/<accountIndex>.
func NewEthSignerFromMnemonic(ctx context.Context, mnemonic string, accountIndex uint32) (EthSigner, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, i18n.NewError(ctx, msgs.MsgInvalidMnemonic)
	}
	node, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgWalletDerivationFailed, accountIndex)
	}
	for _, segment := range append(append([]uint32{}, ethWalletPathPrefix...), accountIndex) {
		child, err := node.Derive(segment)
		node.Zero()
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgWalletDerivationFailed, accountIndex)
		}
		node = child
	}
	ecPrivKey, err := node.ECPrivKey()
	if err != nil {
		node.Zero()
		return nil, i18n.WrapError(ctx, err, msgs.MsgWalletDerivationFailed, accountIndex)
	}
	keyBytes := ecPrivKey.Key.Bytes()
	keypair, err := secp256k1.NewSecp256k1KeyPair(keyBytes[:])
	for i := range keyBytes {
		keyBytes[i] = 0
	}
	node.Zero()
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgWalletDerivationFailed, accountIndex)
	}
	return &ethKeyPairSigner{keypair: keypair}, nil
}

func (s *ethKeyPairSigner) Address() string {
	return s.keypair.Address.String()
}

func (s *ethKeyPairSigner) SignMessage(ctx context.Context, message string) (*secp256k1.SignatureData, error) {
	sig, err := s.keypair.Sign(eip191Message(message))
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgEthSignFailed)
	}
	return sig, nil
}

// eip191Message frames text per EIP-191 ("personal message") ready for
// keccak hashing by the signing backend.
func eip191Message(text string) []byte {
	return []byte("\x19Ethereum Signed Message:\n" + strconv.Itoa(len(text)) + text)
}

// CompactEthSignature serializes a signature for submission alongside Stark
// signatures: 0x + r (64 hex) + s (64 hex) + recovery id (2 hex), with the
// legacy 27/28 recovery values normalized down to 0/1.
func CompactEthSignature(sig *secp256k1.SignatureData) string {
	v := sig.V.Int64()
	if v >= 27 {
		v -= 27
	}
	return fmt.Sprintf("0x%064x%064x%02x", sig.R, sig.S, v)
}
