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

package client

import (
	"context"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/kaleido-io/starksigner/internal/msgs"
	"github.com/kaleido-io/starksigner/pkg/keyderivation"
	"github.com/kaleido-io/starksigner/pkg/signer"
)

// Config holds the client settings. All fields default to the public
// Immutable X production values.
type Config struct {
	BaseURL    string               `yaml:"baseURL"`
	Derivation keyderivation.Config `yaml:"derivation"`
}

var ConfigDefaults = Config{
	BaseURL:    "https://api.x.immutable.com",
	Derivation: *keyderivation.ConfigDefaults,
}

// Client binds an Ethereum signer, its derived Stark signer, and the
// Immutable X API together. Construction derives the Stark key pair and
// registers the user - after NewClient returns the account is ready to
// transact.
type Client struct {
	eth   signer.EthSigner
	stark *signer.StarkSigner
	api   *APIClient
}

func NewClient(ctx context.Context, eth signer.EthSigner, conf *Config) (*Client, error) {
	resolved := ConfigDefaults
	if conf != nil {
		resolved = *conf
		if resolved.BaseURL == "" {
			resolved.BaseURL = ConfigDefaults.BaseURL
		}
		if resolved.Derivation == (keyderivation.Config{}) {
			resolved.Derivation = ConfigDefaults.Derivation
		}
	}
	api, err := NewAPIClient(ctx, resolved.BaseURL)
	if err != nil {
		return nil, err
	}
	stark, err := signer.NewStarkSignerFromEth(ctx, eth, &resolved.Derivation)
	if err != nil {
		return nil, err
	}
	c := &Client{
		eth:   eth,
		stark: stark,
		api:   api,
	}
	if err := c.register(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// EthAddress returns the Ethereum account address the client signs with.
func (c *Client) EthAddress() string {
	return c.eth.Address()
}

// StarkPublicKey returns the derived Stark public key.
func (c *Client) StarkPublicKey() string {
	return c.stark.PublicKey()
}

// signPair signs the message with the Ethereum key (EIP-191 compact form)
// and the payload hash with the Stark key - the pair every submission
// endpoint requires.
func (c *Client) signPair(ctx context.Context, signable *SignableResponse) (ethSignature, starkSignature string, err error) {
	ethSig, err := c.eth.SignMessage(ctx, signable.SignableMessage)
	if err != nil {
		return "", "", err
	}
	ethSignature = signer.CompactEthSignature(ethSig)
	starkSignature, err = c.stark.Sign(ctx, signable.PayloadHash)
	if err != nil {
		return "", "", err
	}
	return ethSignature, starkSignature, nil
}

func (c *Client) register(ctx context.Context) error {
	signable, err := c.api.SignableRegistration(ctx, c.eth.Address(), c.stark.PublicKey())
	if err != nil {
		return err
	}
	ethSignature, starkSignature, err := c.signPair(ctx, signable)
	if err != nil {
		return err
	}
	txHash, err := c.api.RegisterUser(ctx, &RegisterUserRequest{
		EtherKey:       c.eth.Address(),
		StarkKey:       c.stark.PublicKey(),
		EthSignature:   ethSignature,
		StarkSignature: starkSignature,
	})
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgRegistrationFailed)
	}
	log.L(ctx).Infof("Registered %s with Stark key %s (tx %s)", c.eth.Address(), c.stark.PublicKey(), txHash)
	return nil
}

// Transfer moves an amount of a token to another Immutable X user,
// returning the transfer ID.
func (c *Client) Transfer(ctx context.Context, receiver string, token Token, amount string) (int64, error) {
	details, err := c.api.SignableTransfer(ctx, &SignableTransferRequest{
		Amount:   amount,
		Receiver: receiver,
		Sender:   c.eth.Address(),
		Token:    token,
	})
	if err != nil {
		return 0, err
	}
	ethSignature, starkSignature, err := c.signPair(ctx, &details.SignableResponse)
	if err != nil {
		return 0, err
	}
	return c.api.CreateTransfer(ctx, details, starkSignature, c.eth.Address(), ethSignature)
}

// Trade fills an existing order, returning the trade ID. Fees are optional
// additional maker/taker fee entries.
func (c *Client) Trade(ctx context.Context, orderID int64, fees []Fee) (int64, error) {
	details, err := c.api.SignableTrade(ctx, &SignableTradeRequest{
		OrderID: orderID,
		User:    c.eth.Address(),
		Fees:    fees,
	})
	if err != nil {
		return 0, err
	}
	ethSignature, starkSignature, err := c.signPair(ctx, &details.SignableResponse)
	if err != nil {
		return 0, err
	}
	return c.api.CreateTrade(ctx, orderID, details, starkSignature, c.eth.Address(), ethSignature, fees)
}
