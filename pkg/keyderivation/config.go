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

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/starksigner/internal/msgs"
)

// Config carries the identity parameters for Stark account key derivation.
// It is supplied once when a signer or client is constructed, and never
// mutated afterwards.
type Config struct {
	// SignatureMessage is the fixed text the Ethereum account signs to
	// produce the derivation seed
	SignatureMessage string `yaml:"signatureMessage"`
	// Layer identifies the StarkEx deployment layer
	Layer string `yaml:"layer"`
	// Application identifies the application on that layer
	Application string `yaml:"application"`
	// AccountIndex is a base-10 numeric string selecting the account leaf
	AccountIndex string `yaml:"accountIndex"`
}

// ConfigDefaults are the Immutable X production parameters. Note the message
// text contains a U+2019 right single quotation mark - it is part of the
// signed bytes and must not be "fixed".
var ConfigDefaults = &Config{
	SignatureMessage: "Only sign this request if you’ve initiated an action with Immutable X.",
	Layer:            "starkex",
	Application:      "immutablex",
	AccountIndex:     "1",
}

// DefaultConfig returns a copy of ConfigDefaults that the caller may adjust.
func DefaultConfig() *Config {
	conf := *ConfigDefaults
	return &conf
}

func (c *Config) validate(ctx context.Context) error {
	if c.Layer == "" {
		return i18n.NewError(ctx, msgs.MsgMissingLayer)
	}
	if c.Application == "" {
		return i18n.NewError(ctx, msgs.MsgMissingApplication)
	}
	if c.SignatureMessage == "" {
		return i18n.NewError(ctx, msgs.MsgMissingSignatureMessage)
	}
	return nil
}
