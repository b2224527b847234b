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
	"encoding/json"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-common/pkg/ffresty"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/starksigner/internal/msgs"
)

const (
	signableRegistrationPath = "/v1/signable-registration-offchain"
	registrationPath         = "/v1/users"
	signableTransferPath     = "/v1/signable-transfer-details"
	transferPath             = "/v1/transfers"
	signableTradePath        = "/v3/signable-trade-details"
	tradePath                = "/v3/trades"

	ethAddressHeader   = "x-imx-eth-address"
	ethSignatureHeader = "x-imx-eth-signature"

	requestTimeout = 10 * time.Second
)

// APIClient is a thin typed wrapper over the Immutable X REST API,
// covering the registration, transfer and trade endpoints.
type APIClient struct {
	http *resty.Client
}

func NewAPIClient(ctx context.Context, baseURL string) (*APIClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, i18n.NewError(ctx, msgs.MsgInvalidBaseURL, baseURL)
	}
	http := ffresty.NewWithConfig(ctx, ffresty.Config{URL: baseURL})
	http.SetTimeout(requestTimeout)
	http.SetHeader("Accept", "application/json")
	return &APIClient{http: http}, nil
}

// Token identifies the asset being transferred.
type Token struct {
	Type string    `json:"type"`
	Data TokenData `json:"data"`
}

type TokenData struct {
	Decimals int `json:"decimals"`
}

// ETHToken is the token descriptor for native ETH transfers.
func ETHToken() Token {
	return Token{Type: "ETH", Data: TokenData{Decimals: 18}}
}

// Fee is an optional maker/taker fee entry attached to trades.
type Fee struct {
	Address       string `json:"address"`
	FeePercentage string `json:"fee_percentage"`
}

// SignableResponse carries the two values every signable endpoint returns:
// the Stark payload hash to sign with the Stark key, and the human-readable
// message to sign with the Ethereum key.
type SignableResponse struct {
	PayloadHash     string `json:"payload_hash"`
	SignableMessage string `json:"signable_message"`
}

type signableRegistrationRequest struct {
	EtherKey string `json:"ether_key"`
	StarkKey string `json:"stark_key"`
}

type RegisterUserRequest struct {
	EtherKey       string `json:"ether_key"`
	StarkKey       string `json:"stark_key"`
	EthSignature   string `json:"eth_signature"`
	StarkSignature string `json:"stark_signature"`
}

type registerUserResponse struct {
	TxHash string `json:"tx_hash"`
}

type SignableTransferRequest struct {
	Amount   string `json:"amount"`
	Receiver string `json:"receiver"`
	Sender   string `json:"sender"`
	Token    Token  `json:"token"`
}

type SignableTransfer struct {
	SignableResponse
	Amount              string `json:"amount"`
	AssetID             string `json:"asset_id"`
	ExpirationTimestamp int64  `json:"expiration_timestamp"`
	Nonce               int64  `json:"nonce"`
	ReceiverStarkKey    string `json:"receiver_stark_key"`
	ReceiverVaultID     int64  `json:"receiver_vault_id"`
	SenderStarkKey      string `json:"sender_stark_key"`
	SenderVaultID       int64  `json:"sender_vault_id"`
}

type transferRequest struct {
	Amount              string `json:"amount"`
	AssetID             string `json:"asset_id"`
	ExpirationTimestamp int64  `json:"expiration_timestamp"`
	Nonce               int64  `json:"nonce"`
	ReceiverStarkKey    string `json:"receiver_stark_key"`
	ReceiverVaultID     int64  `json:"receiver_vault_id"`
	SenderStarkKey      string `json:"sender_stark_key"`
	SenderVaultID       int64  `json:"sender_vault_id"`
	StarkSignature      string `json:"stark_signature"`
}

type transferResponse struct {
	TransferID int64 `json:"transfer_id"`
}

type SignableTradeRequest struct {
	OrderID int64  `json:"order_id"`
	User    string `json:"user"`
	Fees    []Fee  `json:"fees,omitempty"`
}

type SignableTrade struct {
	SignableResponse
	AmountBuy           string          `json:"amount_buy"`
	AmountSell          string          `json:"amount_sell"`
	AssetIDBuy          string          `json:"asset_id_buy"`
	AssetIDSell         string          `json:"asset_id_sell"`
	ExpirationTimestamp int64           `json:"expiration_timestamp"`
	FeeInfo             json.RawMessage `json:"fee_info"`
	Nonce               int64           `json:"nonce"`
	StarkKey            string          `json:"stark_key"`
	VaultIDBuy          int64           `json:"vault_id_buy"`
	VaultIDSell         int64           `json:"vault_id_sell"`
}

type tradeRequest struct {
	AmountBuy           string          `json:"amount_buy"`
	AmountSell          string          `json:"amount_sell"`
	AssetIDBuy          string          `json:"asset_id_buy"`
	AssetIDSell         string          `json:"asset_id_sell"`
	ExpirationTimestamp int64           `json:"expiration_timestamp"`
	FeeInfo             json.RawMessage `json:"fee_info"`
	Nonce               int64           `json:"nonce"`
	OrderID             int64           `json:"order_id"`
	StarkKey            string          `json:"stark_key"`
	StarkSignature      string          `json:"stark_signature"`
	VaultIDBuy          int64           `json:"vault_id_buy"`
	VaultIDSell         int64           `json:"vault_id_sell"`
	Fees                []Fee           `json:"fees,omitempty"`
}

type tradeResponse struct {
	TradeID int64 `json:"trade_id"`
}

func (c *APIClient) post(ctx context.Context, path string, body, result interface{}, headers map[string]string) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(body).
		SetResult(result).
		Post(path)
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgAPIRequestFailed, path, 0, err)
	}
	if res.IsError() {
		return i18n.NewError(ctx, msgs.MsgAPIRequestFailed, path, res.StatusCode(), res.String())
	}
	return nil
}

func checkSignable(ctx context.Context, path string, res *SignableResponse) error {
	if res.PayloadHash == "" {
		return i18n.NewError(ctx, msgs.MsgAPIResponseMissing, path, "payload_hash")
	}
	if res.SignableMessage == "" {
		return i18n.NewError(ctx, msgs.MsgAPIResponseMissing, path, "signable_message")
	}
	return nil
}

// SignableRegistration requests the payload hash and message that must be
// signed to register the given key pair.
func (c *APIClient) SignableRegistration(ctx context.Context, etherKey, starkKey string) (*SignableResponse, error) {
	var res SignableResponse
	err := c.post(ctx, signableRegistrationPath, &signableRegistrationRequest{
		EtherKey: etherKey,
		StarkKey: starkKey,
	}, &res, nil)
	if err != nil {
		return nil, err
	}
	if err := checkSignable(ctx, signableRegistrationPath, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RegisterUser submits the signed registration, returning the on-chain
// registration transaction hash.
func (c *APIClient) RegisterUser(ctx context.Context, req *RegisterUserRequest) (string, error) {
	var res registerUserResponse
	if err := c.post(ctx, registrationPath, req, &res, nil); err != nil {
		return "", err
	}
	if res.TxHash == "" {
		return "", i18n.NewError(ctx, msgs.MsgRegistrationFailed)
	}
	return res.TxHash, nil
}

// SignableTransfer requests the signable details for a transfer.
func (c *APIClient) SignableTransfer(ctx context.Context, req *SignableTransferRequest) (*SignableTransfer, error) {
	var res SignableTransfer
	if err := c.post(ctx, signableTransferPath, req, &res, nil); err != nil {
		return nil, err
	}
	if err := checkSignable(ctx, signableTransferPath, &res.SignableResponse); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateTransfer submits a signed transfer, echoing back the signable
// details alongside the Stark signature and authenticating with the
// Ethereum address and signature headers.
func (c *APIClient) CreateTransfer(ctx context.Context, details *SignableTransfer, starkSignature, ethAddress, ethSignature string) (int64, error) {
	var res transferResponse
	err := c.post(ctx, transferPath, &transferRequest{
		Amount:              details.Amount,
		AssetID:             details.AssetID,
		ExpirationTimestamp: details.ExpirationTimestamp,
		Nonce:               details.Nonce,
		ReceiverStarkKey:    details.ReceiverStarkKey,
		ReceiverVaultID:     details.ReceiverVaultID,
		SenderStarkKey:      details.SenderStarkKey,
		SenderVaultID:       details.SenderVaultID,
		StarkSignature:      starkSignature,
	}, &res, map[string]string{
		ethAddressHeader:   ethAddress,
		ethSignatureHeader: ethSignature,
	})
	if err != nil {
		return 0, err
	}
	if res.TransferID == 0 {
		return 0, i18n.NewError(ctx, msgs.MsgTransferNotCreated)
	}
	return res.TransferID, nil
}

// SignableTrade requests the signable details for a trade against an
// existing order.
func (c *APIClient) SignableTrade(ctx context.Context, req *SignableTradeRequest) (*SignableTrade, error) {
	var res SignableTrade
	if err := c.post(ctx, signableTradePath, req, &res, nil); err != nil {
		return nil, err
	}
	if err := checkSignable(ctx, signableTradePath, &res.SignableResponse); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateTrade submits a signed trade against an order.
func (c *APIClient) CreateTrade(ctx context.Context, orderID int64, details *SignableTrade, starkSignature, ethAddress, ethSignature string, fees []Fee) (int64, error) {
	var res tradeResponse
	err := c.post(ctx, tradePath, &tradeRequest{
		AmountBuy:           details.AmountBuy,
		AmountSell:          details.AmountSell,
		AssetIDBuy:          details.AssetIDBuy,
		AssetIDSell:         details.AssetIDSell,
		ExpirationTimestamp: details.ExpirationTimestamp,
		FeeInfo:             details.FeeInfo,
		Nonce:               details.Nonce,
		OrderID:             orderID,
		StarkKey:            details.StarkKey,
		StarkSignature:      starkSignature,
		VaultIDBuy:          details.VaultIDBuy,
		VaultIDSell:         details.VaultIDSell,
		Fees:                fees,
	}, &res, map[string]string{
		ethAddressHeader:   ethAddress,
		ethSignatureHeader: ethSignature,
	})
	if err != nil {
		return 0, err
	}
	if res.TradeID == 0 {
		return 0, i18n.NewError(ctx, msgs.MsgTradeNotCreated)
	}
	return res.TradeID, nil
}
