// Package broadcast submits signed transactions to the gateway and polls
// for their inclusion in a block.
package broadcast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Klingon-tech/terrawallet/internal/gateway"
	klog "github.com/Klingon-tech/terrawallet/internal/log"
	"github.com/Klingon-tech/terrawallet/pkg/msg"
	"github.com/Klingon-tech/terrawallet/pkg/tx"
	"github.com/Klingon-tech/terrawallet/pkg/types"
)

// Default poll budget.
const (
	DefaultPollRetries  = 10
	DefaultPollInterval = 1 * time.Second
)

// Gateway is the subset of the LCD client the broadcaster needs.
type Gateway interface {
	Account(ctx context.Context, addr types.AccAddress) (gateway.Account, error)
	Broadcast(ctx context.Context, env tx.Envelope) (gateway.TxInfo, error)
	Tx(ctx context.Context, hash string) (gateway.TxInfo, error)
	EstimateFee(ctx context.Context, req gateway.EstimateFeeRequest) (gateway.EstimateFeeResult, error)
}

// Key signs transactions for one account.
type Key interface {
	tx.Signer
	AccAddress() types.AccAddress
}

// Options configures a Broadcaster.
type Options struct {
	ChainID       string
	Mode          tx.BroadcastMode
	GasPrices     types.DecCoins
	GasAdjustment decimal.Decimal
	PollRetries   int
	PollInterval  time.Duration
}

// Request describes a transaction to build. Nil Fee means estimate it.
// Nil AccountNumber or Sequence are fetched from the gateway.
type Request struct {
	Msgs          msg.Msgs
	Memo          string
	Fee           *tx.StdFee
	AccountNumber *uint64
	Sequence      *uint64
}

// Broadcaster builds, signs, submits and confirms transactions.
type Broadcaster struct {
	gw      Gateway
	opts    Options
	sleeper Sleeper
	logger  zerolog.Logger
}

// New creates a broadcaster. Zero options fall back to sync mode and the
// default poll budget.
func New(gw Gateway, opts Options) *Broadcaster {
	if opts.Mode == "" {
		opts.Mode = tx.ModeSync
	}
	if opts.PollRetries <= 0 {
		opts.PollRetries = DefaultPollRetries
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	return &Broadcaster{
		gw:      gw,
		opts:    opts,
		sleeper: RealSleeper{},
		logger:  klog.Broadcast.With().Str("chain_id", opts.ChainID).Logger(),
	}
}

// WithSleeper replaces the poll loop's sleeper.
func (b *Broadcaster) WithSleeper(s Sleeper) *Broadcaster {
	b.sleeper = s
	return b
}

// Options returns the effective configuration.
func (b *Broadcaster) Options() Options { return b.opts }

// Build signs req with key and wraps it in an envelope for the configured
// mode.
func (b *Broadcaster) Build(ctx context.Context, key Key, req Request) (tx.Envelope, error) {
	if b.opts.ChainID == "" {
		return tx.Envelope{}, ErrNoChainID
	}
	if err := req.Msgs.ValidateBasic(); err != nil {
		return tx.Envelope{}, err
	}

	accNum, seq := req.AccountNumber, req.Sequence
	if accNum == nil || seq == nil {
		acc, err := b.gw.Account(ctx, key.AccAddress())
		if err != nil {
			return tx.Envelope{}, err
		}
		if accNum == nil {
			accNum = &acc.AccountNumber
		}
		if seq == nil {
			seq = &acc.Sequence
		}
	}

	var fee tx.StdFee
	if req.Fee != nil {
		fee = *req.Fee
	} else {
		est, err := b.EstimateFee(ctx, req.Msgs, req.Memo)
		if err != nil {
			return tx.Envelope{}, err
		}
		fee = est
	}

	env, err := tx.NewBuilder(b.opts.ChainID).
		AddMsg(req.Msgs...).
		SetMemo(req.Memo).
		SetFee(fee).
		SetAccountNumber(*accNum).
		SetSequence(*seq).
		Envelope(b.opts.Mode, key)
	if err != nil {
		return tx.Envelope{}, fmt.Errorf("build tx: %w", err)
	}

	b.logger.Debug().
		Str("from", key.AccAddress().String()).
		Uint64("account_number", *accNum).
		Uint64("sequence", *seq).
		Int("msgs", len(req.Msgs)).
		Msg("Transaction built")
	return env, nil
}

// EstimateFee simulates msgs and prices the adjusted gas with the configured
// gas prices.
func (b *Broadcaster) EstimateFee(ctx context.Context, msgs msg.Msgs, memo string) (tx.StdFee, error) {
	res, err := b.gw.EstimateFee(ctx, gateway.EstimateFeeRequest{
		Tx: tx.StdTx{
			Msg:        msgs,
			Fee:        tx.NewStdFee(0, types.Coins{}),
			Signatures: []tx.StdSignature{},
			Memo:       memo,
		},
		GasPrices:     b.opts.GasPrices,
		GasAdjustment: "1",
	})
	if err != nil {
		return tx.StdFee{}, err
	}
	fee := tx.EstimatedFee(res.Gas, b.opts.GasAdjustment, b.opts.GasPrices)
	b.logger.Debug().
		Uint64("simulated_gas", res.Gas).
		Uint64("gas", fee.Gas).
		Str("fee", fee.Amount.String()).
		Msg("Fee estimated")
	return fee, nil
}

// Submit posts env and maps the reply onto the lifecycle. A non-zero code
// from a sync or block broadcast is returned as *TxRejectedError.
func (b *Broadcaster) Submit(ctx context.Context, env tx.Envelope) (Result, error) {
	info, err := b.gw.Broadcast(ctx, env)
	if err != nil {
		return Result{State: StateBuilt}, err
	}

	res := Result{State: StateSubmitted, TxHash: info.TxHash, Info: info}
	log := b.logger.With().Str("tx_hash", info.TxHash).Str("mode", string(env.Mode)).Logger()

	if env.Mode == tx.ModeAsync {
		log.Info().Msg("Transaction submitted")
		return res, nil
	}
	if info.Failed() {
		res.State = StateRejected
		log.Warn().Uint32("code", info.Code).Str("codespace", info.Codespace).Str("raw_log", info.RawLog).Msg("Transaction rejected")
		return res, &TxRejectedError{TxHash: info.TxHash, Code: info.Code, Codespace: info.Codespace, RawLog: info.RawLog}
	}
	if env.Mode == tx.ModeBlock {
		res.State = StateConfirmed
		log.Info().Int64("height", info.Height).Msg("Transaction confirmed")
		return res, nil
	}
	res.State = StateAccepted
	log.Info().Msg("Transaction accepted")
	return res, nil
}

// GetAndWait looks hash up until it is found, sleeping interval after every
// "not found" answer. It makes at most maxRetries lookups. Any other gateway
// error ends the loop at once: HTTP errors as *TxPollAbortedError, transport
// errors as *gateway.NetworkError.
func (b *Broadcaster) GetAndWait(ctx context.Context, hash string, maxRetries int, interval time.Duration) (gateway.TxInfo, error) {
	log := b.logger.With().Str("tx_hash", hash).Logger()

	for attempt := 1; attempt <= maxRetries; attempt++ {
		info, err := b.gw.Tx(ctx, hash)
		if err == nil {
			log.Info().Int("attempt", attempt).Int64("height", info.Height).Msg("Transaction found")
			return info, nil
		}

		var he *gateway.HTTPError
		switch {
		case errors.As(err, &he) && !gateway.IsNotFound(err):
			log.Warn().Int("attempt", attempt).Int("status", he.StatusCode).Msg("Polling aborted")
			return gateway.TxInfo{}, &TxPollAbortedError{TxHash: hash, Status: he.StatusCode, Body: he.Body}
		case !gateway.IsNotFound(err):
			return gateway.TxInfo{}, err
		}

		log.Debug().Int("attempt", attempt).Int("max_retries", maxRetries).Msg("Transaction not found yet")
		if attempt == maxRetries {
			break
		}
		if err := b.sleeper.Sleep(ctx, interval); err != nil {
			return gateway.TxInfo{}, err
		}
	}
	return gateway.TxInfo{}, &TxNotFoundError{TxHash: hash, Attempts: maxRetries}
}

// SubmitAndWait submits env and, once the node accepts it, polls with the
// configured budget until it is confirmed. Async submissions are not
// followed up and return in StateSubmitted.
func (b *Broadcaster) SubmitAndWait(ctx context.Context, env tx.Envelope) (Result, error) {
	res, err := b.Submit(ctx, env)
	if err != nil || res.State.Final() || res.State == StateSubmitted {
		return res, err
	}

	res.State = StatePolling
	info, err := b.GetAndWait(ctx, res.TxHash, b.opts.PollRetries, b.opts.PollInterval)
	if err != nil {
		var nf *TxNotFoundError
		if errors.As(err, &nf) {
			res.State = StateNotFound
		}
		return res, err
	}
	if info.Failed() {
		res.State = StateRejected
		res.Info = info
		return res, &TxRejectedError{TxHash: res.TxHash, Code: info.Code, Codespace: info.Codespace, RawLog: info.RawLog}
	}
	res.State = StateConfirmed
	res.Info = info
	return res, nil
}

// Send builds req, submits it and waits for confirmation.
func (b *Broadcaster) Send(ctx context.Context, key Key, req Request) (Result, error) {
	env, err := b.Build(ctx, key, req)
	if err != nil {
		return Result{State: StateBuilt}, err
	}
	return b.SubmitAndWait(ctx, env)
}
