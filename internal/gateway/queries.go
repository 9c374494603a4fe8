package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Klingon-tech/terrawallet/pkg/tx"
	"github.com/Klingon-tech/terrawallet/pkg/types"
)

// Account returns the account number, sequence and coins of addr.
func (c *Client) Account(ctx context.Context, addr types.AccAddress) (Account, error) {
	var env accountEnvelope
	if err := c.getResult(ctx, "/auth/accounts/"+url.PathEscape(string(addr)), nil, &env); err != nil {
		return Account{}, fmt.Errorf("account %s: %w", addr, err)
	}
	acc := env.account()
	if acc.Address == "" {
		// Unknown accounts come back as an empty base account.
		acc.Address = addr
	}
	return acc, nil
}

// Balances returns every coin held by addr.
func (c *Client) Balances(ctx context.Context, addr types.AccAddress) (types.Coins, error) {
	var coins types.Coins
	if err := c.getResult(ctx, "/bank/balances/"+url.PathEscape(string(addr)), nil, &coins); err != nil {
		return nil, fmt.Errorf("balances %s: %w", addr, err)
	}
	return types.NewCoins(coins...), nil
}

// Validators lists bonded validators.
func (c *Client) Validators(ctx context.Context) ([]Validator, error) {
	var vals []Validator
	if err := c.getResult(ctx, "/staking/validators", nil, &vals); err != nil {
		return nil, fmt.Errorf("validators: %w", err)
	}
	return vals, nil
}

// Validator returns a single validator.
func (c *Client) Validator(ctx context.Context, addr types.ValAddress) (Validator, error) {
	var v Validator
	if err := c.getResult(ctx, "/staking/validators/"+url.PathEscape(string(addr)), nil, &v); err != nil {
		return Validator{}, fmt.Errorf("validator %s: %w", addr, err)
	}
	return v, nil
}

// Swap simulates a market swap and returns what offer would buy.
func (c *Client) Swap(ctx context.Context, offer types.Coin, askDenom string) (types.Coin, error) {
	q := url.Values{}
	q.Set("offer_coin", offer.String())
	q.Set("ask_denom", askDenom)

	var out types.Coin
	if err := c.getResult(ctx, "/market/swap", q, &out); err != nil {
		return types.Coin{}, fmt.Errorf("swap %s to %s: %w", offer, askDenom, err)
	}
	return out, nil
}

// ExchangeRates returns the oracle price of luna in every whitelisted denom.
func (c *Client) ExchangeRates(ctx context.Context) (types.DecCoins, error) {
	var rates types.DecCoins
	if err := c.getResult(ctx, "/oracle/denoms/exchange_rates", nil, &rates); err != nil {
		return nil, fmt.Errorf("exchange rates: %w", err)
	}
	return rates, nil
}

// NodeInfo returns the node's identity and chain id.
func (c *Client) NodeInfo(ctx context.Context) (NodeInfo, error) {
	var info NodeInfo
	if err := c.get(ctx, "/node_info", nil, &info); err != nil {
		return NodeInfo{}, fmt.Errorf("node info: %w", err)
	}
	return info, nil
}

// Tx looks up a transaction by hash. A transaction that is not yet in a
// block returns an error matching ErrNotFound.
func (c *Client) Tx(ctx context.Context, hash string) (TxInfo, error) {
	var info TxInfo
	if err := c.get(ctx, "/txs/"+url.PathEscape(strings.ToUpper(hash)), nil, &info); err != nil {
		return TxInfo{}, err
	}
	return info, nil
}

// Broadcast posts a signed envelope. The reply depends on env.Mode.
func (c *Client) Broadcast(ctx context.Context, env tx.Envelope) (TxInfo, error) {
	var info TxInfo
	if err := c.post(ctx, "/txs", env, &info); err != nil {
		return TxInfo{}, fmt.Errorf("broadcast: %w", err)
	}
	return info, nil
}

// EstimateFee simulates req.Tx and returns the gas it used.
func (c *Client) EstimateFee(ctx context.Context, req EstimateFeeRequest) (EstimateFeeResult, error) {
	var wrapped heightResult
	if err := c.post(ctx, "/txs/estimate_fee", req, &wrapped); err != nil {
		return EstimateFeeResult{}, fmt.Errorf("estimate fee: %w", err)
	}
	var out EstimateFeeResult
	if err := decodeResult("/txs/estimate_fee", wrapped.Result, &out); err != nil {
		return EstimateFeeResult{}, err
	}
	return out, nil
}
