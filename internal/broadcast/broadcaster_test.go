package broadcast

import (
	"context"
	"encoding/hex"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Klingon-tech/terrawallet/internal/gateway"
	"github.com/Klingon-tech/terrawallet/internal/wallet"
	"github.com/Klingon-tech/terrawallet/pkg/msg"
	"github.com/Klingon-tech/terrawallet/pkg/tx"
	"github.com/Klingon-tech/terrawallet/pkg/types"
)

const (
	testPrivHex = "4804e2bdce36d413206ccf47cc4c64db2eff924e7cc9e90339fa7579d2bd9d5b"
	testTo      = types.AccAddress("terra1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5exk7yu")
	testHash    = "9B0C3E5A4F1D"
)

var notFound = &gateway.HTTPError{Method: http.MethodGet, Path: "/txs/" + testHash, StatusCode: http.StatusNotFound, Body: `{"error":"not found"}`}

// fakeGateway answers from canned values and counts calls.
type fakeGateway struct {
	account   gateway.Account
	broadcast gateway.TxInfo
	estimate  gateway.EstimateFeeResult

	// lookups are returned in order by Tx, the last one repeating.
	lookups []lookup

	accountCalls int
	txCalls      int
	sent         []tx.Envelope
	estimates    []gateway.EstimateFeeRequest
}

type lookup struct {
	info gateway.TxInfo
	err  error
}

func (f *fakeGateway) Account(_ context.Context, addr types.AccAddress) (gateway.Account, error) {
	f.accountCalls++
	acc := f.account
	acc.Address = addr
	return acc, nil
}

func (f *fakeGateway) Broadcast(_ context.Context, env tx.Envelope) (gateway.TxInfo, error) {
	f.sent = append(f.sent, env)
	return f.broadcast, nil
}

func (f *fakeGateway) Tx(_ context.Context, _ string) (gateway.TxInfo, error) {
	i := f.txCalls
	if i >= len(f.lookups) {
		i = len(f.lookups) - 1
	}
	f.txCalls++
	return f.lookups[i].info, f.lookups[i].err
}

func (f *fakeGateway) EstimateFee(_ context.Context, req gateway.EstimateFeeRequest) (gateway.EstimateFeeResult, error) {
	f.estimates = append(f.estimates, req)
	return f.estimate, nil
}

// countingSleeper records requested sleeps without waiting.
type countingSleeper struct {
	calls int
	total time.Duration
}

func (s *countingSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.calls++
	s.total += d
	return nil
}

func newTestBroadcaster(gw Gateway, mode tx.BroadcastMode) (*Broadcaster, *countingSleeper) {
	s := &countingSleeper{}
	b := New(gw, Options{
		ChainID:       "columbus-4",
		Mode:          mode,
		GasPrices:     types.DecCoins{{Denom: "uluna", Amount: types.MustParseDec("0.015")}},
		GasAdjustment: decimal.RequireFromString("1.4"),
		PollRetries:   5,
		PollInterval:  time.Second,
	}).WithSleeper(s)
	return b, s
}

func testKey(t *testing.T) *wallet.Key {
	t.Helper()
	priv, err := hex.DecodeString(testPrivHex)
	require.NoError(t, err)
	k, err := wallet.NewKey(priv)
	require.NoError(t, err)
	return k
}

func sendRequest(from types.AccAddress) Request {
	return Request{Msgs: msg.Msgs{msg.NewSend(from, testTo, types.NewCoin("uluna", 1000))}}
}

func notFounds(n int) []lookup {
	out := make([]lookup, n)
	for i := range out {
		out[i] = lookup{err: notFound}
	}
	return out
}

func TestGetAndWait_FoundAfterRetries(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		gw := &fakeGateway{lookups: append(notFounds(n-1), lookup{info: gateway.TxInfo{TxHash: testHash, Height: 77}})}
		b, s := newTestBroadcaster(gw, tx.ModeSync)

		info, err := b.GetAndWait(context.Background(), testHash, 5, 2*time.Second)
		require.NoError(t, err, "n=%d", n)
		assert.Equal(t, int64(77), info.Height)
		assert.Equal(t, n, gw.txCalls, "lookups for n=%d", n)
		assert.Equal(t, n-1, s.calls, "sleeps for n=%d", n)
		assert.Equal(t, time.Duration(n-1)*2*time.Second, s.total)
	}
}

func TestGetAndWait_Exhausted(t *testing.T) {
	gw := &fakeGateway{lookups: notFounds(1)}
	b, s := newTestBroadcaster(gw, tx.ModeSync)

	_, err := b.GetAndWait(context.Background(), testHash, 4, time.Second)
	var nf *TxNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, 4, nf.Attempts)
	assert.Equal(t, 4, gw.txCalls)
	assert.Equal(t, 3, s.calls)
}

func TestGetAndWait_AbortsOnServerError(t *testing.T) {
	gw := &fakeGateway{lookups: []lookup{
		{err: &gateway.HTTPError{Method: http.MethodGet, Path: "/txs/x", StatusCode: http.StatusInternalServerError, Body: "boom"}},
		{info: gateway.TxInfo{TxHash: testHash}},
	}}
	b, s := newTestBroadcaster(gw, tx.ModeSync)

	_, err := b.GetAndWait(context.Background(), testHash, 5, time.Second)
	var pa *TxPollAbortedError
	require.True(t, errors.As(err, &pa))
	assert.Equal(t, http.StatusInternalServerError, pa.Status)
	assert.Equal(t, "boom", pa.Body)
	assert.Equal(t, 1, gw.txCalls)
	assert.Zero(t, s.calls)

	var nf *TxNotFoundError
	assert.False(t, errors.As(err, &nf))
}

func TestGetAndWait_AbortsOnNetworkError(t *testing.T) {
	netErr := &gateway.NetworkError{Method: http.MethodGet, URL: "http://x/txs", Err: errors.New("connection refused")}
	gw := &fakeGateway{lookups: []lookup{{err: netErr}}}
	b, s := newTestBroadcaster(gw, tx.ModeSync)

	_, err := b.GetAndWait(context.Background(), testHash, 5, time.Second)
	var ne *gateway.NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, 1, gw.txCalls)
	assert.Zero(t, s.calls)
}

func TestGetAndWait_ZeroRetries(t *testing.T) {
	gw := &fakeGateway{lookups: notFounds(1)}
	b, _ := newTestBroadcaster(gw, tx.ModeSync)

	_, err := b.GetAndWait(context.Background(), testHash, 0, time.Second)
	var nf *TxNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Zero(t, gw.txCalls)
}

func TestGetAndWait_SleeperError(t *testing.T) {
	gw := &fakeGateway{lookups: notFounds(1)}
	b, _ := newTestBroadcaster(gw, tx.ModeSync)
	b.WithSleeper(SleeperFunc(func(context.Context, time.Duration) error { return context.Canceled }))

	_, err := b.GetAndWait(context.Background(), testHash, 5, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, gw.txCalls)
}

func TestBuild_FetchesAccountAndEstimatesFee(t *testing.T) {
	key := testKey(t)
	gw := &fakeGateway{
		account:  gateway.Account{AccountNumber: 12, Sequence: 3},
		estimate: gateway.EstimateFeeResult{Gas: 100_000},
	}
	b, _ := newTestBroadcaster(gw, tx.ModeSync)

	env, err := b.Build(context.Background(), key, sendRequest(key.AccAddress()))
	require.NoError(t, err)
	assert.Equal(t, 1, gw.accountCalls)
	require.Len(t, gw.estimates, 1)
	assert.Equal(t, "1", gw.estimates[0].GasAdjustment)
	assert.NotNil(t, gw.estimates[0].Tx.Signatures)

	// 100000 * 1.4 = 140000 gas, 140000 * 0.015 = 2100 uluna.
	assert.Equal(t, uint64(140_000), env.Tx.Fee.Gas)
	assert.Equal(t, "2100", env.Tx.Fee.Amount.AmountOf("uluna").String())
	assert.Equal(t, tx.ModeSync, env.Mode)

	require.Len(t, env.Tx.Signatures, 1)
	doc := tx.SignDoc{
		AccountNumber: 12,
		ChainID:       "columbus-4",
		Fee:           env.Tx.Fee,
		Msgs:          env.Tx.Msg,
		Sequence:      3,
	}
	assert.True(t, env.Tx.Signatures[0].Verify(doc))
}

func TestBuild_SuppliedValuesSkipGateway(t *testing.T) {
	key := testKey(t)
	gw := &fakeGateway{}
	b, _ := newTestBroadcaster(gw, tx.ModeBlock)

	accNum, seq := uint64(1), uint64(2)
	fee := tx.NewStdFee(200_000, types.Coins{types.NewCoin("uluna", 3000)})
	req := sendRequest(key.AccAddress())
	req.AccountNumber, req.Sequence, req.Fee = &accNum, &seq, &fee
	req.Memo = "rent"

	env, err := b.Build(context.Background(), key, req)
	require.NoError(t, err)
	assert.Zero(t, gw.accountCalls)
	assert.Empty(t, gw.estimates)
	assert.Equal(t, "rent", env.Tx.Memo)
	assert.Equal(t, tx.ModeBlock, env.Mode)
}

func TestBuild_Errors(t *testing.T) {
	key := testKey(t)

	b := New(&fakeGateway{}, Options{})
	_, err := b.Build(context.Background(), key, sendRequest(key.AccAddress()))
	assert.ErrorIs(t, err, ErrNoChainID)

	b, _ = newTestBroadcaster(&fakeGateway{}, tx.ModeSync)
	_, err = b.Build(context.Background(), key, Request{})
	assert.ErrorIs(t, err, msg.ErrInvalidMsg)
}

func TestSubmit_Modes(t *testing.T) {
	t.Run("async", func(t *testing.T) {
		gw := &fakeGateway{broadcast: gateway.TxInfo{TxHash: testHash}}
		b, _ := newTestBroadcaster(gw, tx.ModeAsync)
		res, err := b.Submit(context.Background(), tx.Envelope{Mode: tx.ModeAsync})
		require.NoError(t, err)
		assert.Equal(t, StateSubmitted, res.State)
		assert.Equal(t, testHash, res.TxHash)
	})

	t.Run("sync accepted", func(t *testing.T) {
		gw := &fakeGateway{broadcast: gateway.TxInfo{TxHash: testHash}}
		b, _ := newTestBroadcaster(gw, tx.ModeSync)
		res, err := b.Submit(context.Background(), tx.Envelope{Mode: tx.ModeSync})
		require.NoError(t, err)
		assert.Equal(t, StateAccepted, res.State)
	})

	t.Run("sync rejected", func(t *testing.T) {
		gw := &fakeGateway{broadcast: gateway.TxInfo{TxHash: testHash, Code: 5, Codespace: "sdk", RawLog: "insufficient funds"}}
		b, _ := newTestBroadcaster(gw, tx.ModeSync)
		res, err := b.Submit(context.Background(), tx.Envelope{Mode: tx.ModeSync})
		var rej *TxRejectedError
		require.True(t, errors.As(err, &rej))
		assert.Equal(t, uint32(5), rej.Code)
		assert.Equal(t, "insufficient funds", rej.RawLog)
		assert.Contains(t, err.Error(), "insufficient funds")
		assert.Equal(t, StateRejected, res.State)
	})

	t.Run("block confirmed", func(t *testing.T) {
		gw := &fakeGateway{broadcast: gateway.TxInfo{TxHash: testHash, Height: 9}}
		b, _ := newTestBroadcaster(gw, tx.ModeBlock)
		res, err := b.Submit(context.Background(), tx.Envelope{Mode: tx.ModeBlock})
		require.NoError(t, err)
		assert.Equal(t, StateConfirmed, res.State)
		assert.Equal(t, int64(9), res.Info.Height)
	})
}

func TestSubmitAndWait(t *testing.T) {
	gw := &fakeGateway{
		broadcast: gateway.TxInfo{TxHash: testHash},
		lookups:   append(notFounds(2), lookup{info: gateway.TxInfo{TxHash: testHash, Height: 100}}),
	}
	b, s := newTestBroadcaster(gw, tx.ModeSync)

	res, err := b.SubmitAndWait(context.Background(), tx.Envelope{Mode: tx.ModeSync})
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, res.State)
	assert.Equal(t, int64(100), res.Info.Height)
	assert.Equal(t, 3, gw.txCalls)
	assert.Equal(t, 2, s.calls)
}

func TestSubmitAndWait_NotFound(t *testing.T) {
	gw := &fakeGateway{broadcast: gateway.TxInfo{TxHash: testHash}, lookups: notFounds(1)}
	b, _ := newTestBroadcaster(gw, tx.ModeSync)

	res, err := b.SubmitAndWait(context.Background(), tx.Envelope{Mode: tx.ModeSync})
	var nf *TxNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, 5, nf.Attempts)
	assert.Equal(t, StateNotFound, res.State)
}

func TestSubmitAndWait_FailedInBlock(t *testing.T) {
	gw := &fakeGateway{
		broadcast: gateway.TxInfo{TxHash: testHash},
		lookups:   []lookup{{info: gateway.TxInfo{TxHash: testHash, Code: 11, RawLog: "out of gas"}}},
	}
	b, _ := newTestBroadcaster(gw, tx.ModeSync)

	res, err := b.SubmitAndWait(context.Background(), tx.Envelope{Mode: tx.ModeSync})
	var rej *TxRejectedError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, uint32(11), rej.Code)
	assert.Equal(t, StateRejected, res.State)
}

func TestSubmitAndWait_AsyncDoesNotPoll(t *testing.T) {
	gw := &fakeGateway{broadcast: gateway.TxInfo{TxHash: testHash}, lookups: notFounds(1)}
	b, s := newTestBroadcaster(gw, tx.ModeAsync)

	res, err := b.SubmitAndWait(context.Background(), tx.Envelope{Mode: tx.ModeAsync})
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, res.State)
	assert.Equal(t, testHash, res.TxHash)
	assert.Zero(t, gw.txCalls)
	assert.Zero(t, s.calls)
}

func TestSubmitAndWait_RejectedSkipsPolling(t *testing.T) {
	gw := &fakeGateway{broadcast: gateway.TxInfo{TxHash: testHash, Code: 4}, lookups: notFounds(1)}
	b, _ := newTestBroadcaster(gw, tx.ModeSync)

	_, err := b.SubmitAndWait(context.Background(), tx.Envelope{Mode: tx.ModeSync})
	require.Error(t, err)
	assert.Zero(t, gw.txCalls)
}

func TestSend(t *testing.T) {
	key := testKey(t)
	gw := &fakeGateway{
		account:   gateway.Account{AccountNumber: 1, Sequence: 0},
		estimate:  gateway.EstimateFeeResult{Gas: 50_000},
		broadcast: gateway.TxInfo{TxHash: testHash},
		lookups:   []lookup{{info: gateway.TxInfo{TxHash: testHash, Height: 5}}},
	}
	b, _ := newTestBroadcaster(gw, tx.ModeSync)

	res, err := b.Send(context.Background(), key, sendRequest(key.AccAddress()))
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, res.State)
	require.Len(t, gw.sent, 1)
	assert.Len(t, gw.sent[0].Tx.Signatures, 1)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "confirmed", StateConfirmed.String())
	assert.Equal(t, "not_found", StateNotFound.String())
	assert.Equal(t, "State(42)", State(42).String())
	assert.True(t, StateRejected.Final())
	assert.False(t, StatePolling.Final())
}

func TestRealSleeper_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RealSleeper{}.Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
