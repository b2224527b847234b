// Copyright © 2025 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package msgs

import (
	"fmt"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/text/language"
)

const starkSignerPrefix = "SK01"

var registered = false
var ffe = func(key, translation string, statusHint ...int) i18n.ErrorMessageKey {
	if !registered {
		i18n.RegisterPrefix(starkSignerPrefix, "Stark Key Derivation and Signing")
		registered = true
	}
	if !strings.HasPrefix(key, starkSignerPrefix) {
		panic(fmt.Errorf("must have prefix '%s': %s", starkSignerPrefix, key))
	}
	return i18n.FFE(language.AmericanEnglish, key, translation, statusHint...)
}

var (

	// Derivation configuration SK0100XX
	MsgInvalidEthIdentifier    = ffe("SK010000", "Ethereum public identifier '%s' is not valid hex")
	MsgEthIdentifierTooShort   = ffe("SK010001", "Ethereum public identifier must carry at least 62 bits (got %d)")
	MsgInvalidAccountIndex     = ffe("SK010002", "Account index '%s' is not a base-10 unsigned integer")
	MsgMissingLayer            = ffe("SK010003", "Account layer must not be empty")
	MsgMissingApplication      = ffe("SK010004", "Account application must not be empty")
	MsgMissingSignatureMessage = ffe("SK010005", "Signature message must not be empty")

	// Key derivation SK0101XX
	MsgInvalidSeedHex        = ffe("SK010100", "Seed is not a valid hex string")
	MsgSeedTooShort          = ffe("SK010101", "Seed must be at least %d bytes (got %d)")
	MsgPathSegmentTooLarge   = ffe("SK010102", "Derivation path segment %d is above the hardened index ceiling")
	MsgEmptyDerivationPath   = ffe("SK010103", "Derivation path must contain at least one segment")
	MsgChildDerivationFailed = ffe("SK010104", "Child key derivation failed at path depth %d")
	MsgGrindRetriesExhausted = ffe("SK010105", "Key grinding did not converge after %d attempts")
	MsgGrindBadLimit         = ffe("SK010106", "Key grinding limit must be a positive integer below 2^256")

	// Stark signing SK0102XX
	MsgInvalidStarkPrivateKey    = ffe("SK010200", "Stark private key is not valid hex, or is outside the curve order")
	MsgInvalidStarkPublicKey     = ffe("SK010201", "Stark public key '%s' is not valid hex")
	MsgStarkKeyPairMismatch      = ffe("SK010202", "Stark public key %s does not match the key derived from the private key (%s)")
	MsgInvalidPayloadHash        = ffe("SK010203", "Payload hash is not a valid hex string")
	MsgPayloadNotInField         = ffe("SK010204", "Payload hash must be below the Stark field modulus")
	MsgStarkSignRetriesExhausted = ffe("SK010205", "Stark signing did not produce a valid nonce after %d attempts")

	// Ethereum signer SK0103XX
	MsgInvalidEthPrivateKey   = ffe("SK010300", "Ethereum private key must be 32 bytes of hex")
	MsgInvalidMnemonic        = ffe("SK010301", "BIP-39 mnemonic phrase is invalid")
	MsgEthSignFailed          = ffe("SK010302", "Ethereum message signing failed")
	MsgWalletDerivationFailed = ffe("SK010303", "Ethereum wallet key derivation failed for index %d")

	// Immutable X client SK0104XX
	MsgInvalidBaseURL     = ffe("SK010400", "Invalid Immutable X API base URL: %s")
	MsgAPIRequestFailed   = ffe("SK010401", "Immutable X %s request failed [%d]: %s")
	MsgAPIResponseMissing = ffe("SK010402", "Immutable X %s response missing required field '%s'")
	MsgRegistrationFailed = ffe("SK010403", "User registration was not acknowledged")
	MsgTransferNotCreated = ffe("SK010404", "Transfer ID not returned")
	MsgTradeNotCreated    = ffe("SK010405", "Trade ID not returned")
)
